// Package cmd defines the commitgen command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commitgen/commitgen/internal/app"
)

// NewRootCmd creates the root command for commitgen.
// Running it with no subcommand generates a message for the staged
// changes and commits immediately.
func NewRootCmd(version, commitHash, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "commitgen",
		Short: "Generate git commit messages from staged changes",
		Long: `commitgen reads your staged changes, asks a language model for a
Conventional Commits message, and commits with it.

Run with no arguments to generate and commit in one step, or use
'commitgen generate' to review the message first.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commitHash, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, app.ModeQuick)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "path to config file (default ~/.commitgen/config.yaml)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "model to use for this run")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewHistoryCmd())

	return rootCmd
}
