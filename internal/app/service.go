// Package app wires the collaborators into the commit pipeline.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/commitgen/commitgen/internal/pkg/ai"
	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
	"github.com/commitgen/commitgen/internal/pkg/git"
	"github.com/commitgen/commitgen/internal/pkg/history"
	"github.com/commitgen/commitgen/internal/pkg/processor"
	"github.com/commitgen/commitgen/internal/pkg/ui"
)

// Mode selects how the pipeline concludes once a message exists.
type Mode int

const (
	// ModeQuick commits the generated message without confirmation.
	ModeQuick Mode = iota
	// ModeInteractive shows the message and waits for a decision.
	ModeInteractive
)

// CommitService orchestrates the generate-and-commit pipeline.
type CommitService struct {
	gitClient     git.Client
	generator     ai.Generator
	diffProcessor processor.DiffProcessor
	uiManager     ui.Manager
	historyMgr    history.Manager
}

// NewCommitService creates a service from its collaborators.
// historyMgr may be nil when history is disabled.
func NewCommitService(
	gitClient git.Client,
	generator ai.Generator,
	diffProcessor processor.DiffProcessor,
	uiManager ui.Manager,
	historyMgr history.Manager,
) *CommitService {
	return &CommitService{
		gitClient:     gitClient,
		generator:     generator,
		diffProcessor: diffProcessor,
		uiManager:     uiManager,
		historyMgr:    historyMgr,
	}
}

// Run executes the pipeline: collect the staged diff, generate a message,
// then commit according to mode. Stopping because there is nothing to
// commit or because the user declined is not an error.
func (s *CommitService) Run(ctx context.Context, mode Mode) error {
	status, err := s.gitClient.Status(ctx)
	if err != nil {
		return err
	}

	if !status.HasStaged() {
		s.uiManager.ShowNotice("No staged changes. Stage files with 'git add' first.")
		return nil
	}

	if status.TotalChanged > len(status.StagedFiles) {
		s.uiManager.ShowNotice(fmt.Sprintf(
			"Note: %d of %d changed files are staged; only staged changes are considered.",
			len(status.StagedFiles), status.TotalChanged))
	}

	files := s.diffProcessor.FilterFiles(status.StagedFiles)
	if len(files) == 0 {
		s.uiManager.ShowNotice("All staged files are excluded from analysis (lockfiles, build artifacts). Nothing to describe.")
		return nil
	}

	diff, err := s.collectDiff(ctx, files)
	if err != nil {
		return err
	}

	cleaned := s.diffProcessor.CleanDiff(diff)
	if cleaned == "" {
		s.uiManager.ShowNotice("Staged changes produced no analyzable diff content.")
		return nil
	}

	message, err := s.generate(ctx, cleaned)
	if err != nil {
		return err
	}

	s.uiManager.ShowMessage(message)

	if mode == ModeQuick {
		return s.commit(ctx, message)
	}

	return s.confirmAndCommit(ctx, message)
}

func (s *CommitService) collectDiff(ctx context.Context, files []string) (string, error) {
	sp := s.uiManager.ShowSpinner("Collecting staged changes...")
	sp.Start()
	diff, err := s.gitClient.StagedDiff(ctx, files)
	sp.Stop()
	if err != nil {
		return "", err
	}
	return diff, nil
}

func (s *CommitService) generate(ctx context.Context, diff string) (string, error) {
	sp := s.uiManager.ShowSpinner(fmt.Sprintf("Generating commit message (%s)...", s.generator.Model()))
	sp.Start()
	message, err := s.generator.Generate(ctx, diff)
	sp.Stop()
	if err != nil {
		return "", err
	}
	return message, nil
}

// confirmAndCommit runs the interactive decision gate.
func (s *CommitService) confirmAndCommit(ctx context.Context, message string) error {
	decision, err := s.uiManager.PromptDecision()
	if err != nil {
		return err
	}

	switch decision {
	case ui.DecisionCommit:
		return s.commit(ctx, message)

	case ui.DecisionEdit:
		edited, err := s.uiManager.PromptEditLine()
		if err != nil {
			return err
		}
		edited = strings.TrimSpace(edited)
		if edited == "" {
			s.saveHistory(message, false)
			s.uiManager.ShowNotice("Commit cancelled.")
			return nil
		}
		return s.commit(ctx, edited)

	case ui.DecisionQuit:
		s.saveHistory(message, false)
		s.uiManager.ShowNotice("Commit cancelled.")
		return nil
	}

	return nil
}

func (s *CommitService) commit(ctx context.Context, message string) error {
	sp := s.uiManager.ShowSpinner("Committing...")
	sp.Start()
	err := s.gitClient.Commit(ctx, message)
	sp.Stop()
	if err != nil {
		s.saveHistory(message, false)
		return err
	}

	s.saveHistory(message, true)
	s.uiManager.ShowSuccess("Changes committed: " + message)
	return nil
}

// saveHistory records the message; failures are logged, never fatal.
func (s *CommitService) saveHistory(message string, committed bool) {
	if s.historyMgr == nil {
		return
	}
	if err := s.historyMgr.Save(message, s.generator.Model(), committed); err != nil {
		apperrors.Warn("failed to save history: %v", err)
	}
}
