package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/commitgen/commitgen/internal/app"
	"github.com/commitgen/commitgen/internal/pkg/ai"
	"github.com/commitgen/commitgen/internal/pkg/config"
	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
	"github.com/commitgen/commitgen/internal/pkg/git"
	"github.com/commitgen/commitgen/internal/pkg/history"
	"github.com/commitgen/commitgen/internal/pkg/processor"
	"github.com/commitgen/commitgen/internal/pkg/ui"
)

// runPipeline wires the collaborators from configuration and runs the
// commit pipeline in the given mode.
func runPipeline(cmd *cobra.Command, mode app.Mode) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	apperrors.SetVerbose(verbose)

	cfgMgr, err := loadConfigManager(cmd)
	if err != nil {
		return err
	}

	if err := cfgMgr.EnsureExists(); err != nil {
		apperrors.Warn("could not create config file: %v", err)
	}

	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfgMgr.SetOverride("model", model)
	}

	cfg, err := cfgMgr.Load()
	if err != nil {
		return err
	}

	generator := ai.NewOpenAIGenerator(ai.GeneratorConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})

	var historyMgr history.Manager
	if cfg.History.Enabled {
		historyMgr = history.NewFileManager(cfg.History.FilePath, cfg.History.MaxEntries)
	}

	service := app.NewCommitService(
		git.NewClient(),
		generator,
		processor.NewProcessor(),
		selectUIManager(stdoutIsTerminal(), cfg.UI.ColorEnabled),
		historyMgr,
	)

	return service.Run(context.Background(), mode)
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// selectUIManager picks the interactive manager on a terminal and the
// quiet one when output is piped or redirected.
func selectUIManager(isTerminal, colorEnabled bool) ui.Manager {
	if isTerminal {
		return ui.NewDefaultManager(colorEnabled)
	}
	return ui.NewQuietManager()
}

// loadConfigManager creates a config manager honoring the --config flag.
func loadConfigManager(cmd *cobra.Command) (*config.ViperManager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return config.NewManager(configPath)
}
