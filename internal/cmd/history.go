package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitgen/commitgen/internal/pkg/history"
)

// NewHistoryCmd creates the history command for listing past messages.
func NewHistoryCmd() *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated commit messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyMgr, err := newHistoryManager(cmd)
			if err != nil {
				return err
			}

			entries, err := historyMgr.List(limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No history yet.")
				return nil
			}

			for _, e := range entries {
				status := " "
				if e.Committed {
					status = "*"
				}
				fmt.Printf("%s %s  %-12s  %s\n",
					status, e.Timestamp.Format("2006-01-02 15:04"), e.Model, e.Message)
			}
			fmt.Println("\n* = committed")
			return nil
		},
	}

	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyMgr, err := newHistoryManager(cmd)
			if err != nil {
				return err
			}
			if err := historyMgr.Clear(); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		},
	})

	return historyCmd
}

// newHistoryManager builds a file manager from the current configuration.
func newHistoryManager(cmd *cobra.Command) (history.Manager, error) {
	cfgMgr, err := loadConfigManager(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return nil, err
	}

	return history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries), nil
}
