package cmd

import (
	"github.com/spf13/cobra"

	"github.com/commitgen/commitgen/internal/app"
)

// NewGenerateCmd creates the generate command: same pipeline as the
// root command, but the message is reviewed before committing.
func NewGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message and review it before committing",
		Long: `Generate a commit message from the staged changes and show it for
review. Press 'c' to commit, 'e' to type a replacement message, or
'q' to quit without committing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, app.ModeInteractive)
		},
	}
}
