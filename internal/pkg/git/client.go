// Package git provides the version-control operations commitgen depends on.
package git

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
)

const (
	// CommandTimeout is the default timeout for git commands.
	CommandTimeout = 10 * time.Second
)

// Status is a snapshot of staged vs. total changed files at a point in time.
// It is recomputed on every invocation and never persisted.
type Status struct {
	StagedFiles  []string
	TotalChanged int
}

// HasStaged reports whether any files are staged for commit.
func (s *Status) HasStaged() bool {
	return len(s.StagedFiles) > 0
}

// Client defines the interface for git operations.
type Client interface {
	// Status returns the staged file list and the total changed file count.
	Status(ctx context.Context) (*Status, error)
	// StagedDiff returns the unified diff of staged content, restricted to
	// the given files, with 1 context line and no a/ b/ prefixes.
	StagedDiff(ctx context.Context, files []string) (string, error)
	// Commit records a commit with the message passed verbatim.
	Commit(ctx context.Context, message string) error
}

// DefaultClient implements the Client interface using exec.CommandContext.
type DefaultClient struct {
	// workDir is the working directory for git commands.
	// If empty, uses the current directory.
	workDir string
}

// NewClient creates a new DefaultClient.
func NewClient() *DefaultClient {
	return &DefaultClient{}
}

// NewClientWithWorkDir creates a new DefaultClient with a specific working directory.
func NewClientWithWorkDir(workDir string) *DefaultClient {
	return &DefaultClient{workDir: workDir}
}

// Status queries `git status --porcelain` and summarizes staged vs. total
// changed files.
func (c *DefaultClient) Status(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewTimeoutError(ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return nil, apperrors.NewGitError(err, "")
	}

	return parseStatus(output), nil
}

// StagedDiff returns the staged unified diff scoped to exactly the given
// file list. An empty file list yields an empty diff without running git.
func (c *DefaultClient) StagedDiff(ctx context.Context, files []string) (string, error) {
	if len(files) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	args := []string{"diff", "--cached", "-U1", "--no-prefix", "--"}
	args = append(args, files...)

	cmd := exec.CommandContext(ctx, "git", args...)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", apperrors.NewGitError(err, string(exitErr.Stderr))
		}
		return "", apperrors.NewGitError(err, "")
	}

	return string(output), nil
}

// Commit executes `git commit -m` with the message as a single argument.
// Argv passing means the message reaches git verbatim; no shell quoting
// layer is involved.
func (c *DefaultClient) Commit(ctx context.Context, message string) error {
	ctx, cancel := context.WithTimeout(ctx, CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "commit", "-m", message)
	if c.workDir != "" {
		cmd.Dir = c.workDir
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return apperrors.NewTimeoutError(ctx.Err())
		}
		return apperrors.NewGitError(err, string(output))
	}
	return nil
}

// parseStatus parses `git status --porcelain` output.
// Each line is "XY path" where X is the index (staged) state and Y the
// worktree state. A file counts as staged when X is one of A, M, D, R, C.
func parseStatus(output []byte) *Status {
	status := &Status{}
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 3 {
			continue
		}

		indexState := line[0]
		path := strings.TrimSpace(line[3:])
		if path == "" {
			continue
		}

		status.TotalChanged++

		switch indexState {
		case 'A', 'M', 'D', 'R', 'C':
			// Renames and copies report "old -> new"; the staged content
			// lives at the new path.
			if idx := strings.Index(path, " -> "); idx >= 0 {
				path = path[idx+len(" -> "):]
			}
			status.StagedFiles = append(status.StagedFiles, unquotePath(path))
		}
	}

	return status
}

// unquotePath strips the quoting git applies to paths with special characters.
func unquotePath(path string) string {
	if len(path) >= 2 && path[0] == '"' && path[len(path)-1] == '"' {
		return path[1 : len(path)-1]
	}
	return path
}
