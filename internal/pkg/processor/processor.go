// Package processor filters staged file lists and sanitizes diff text
// before it is handed to the message generator.
package processor

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DiffProcessor defines the interface for diff preparation.
type DiffProcessor interface {
	// FilterFiles drops files whose diffs carry no signal for a commit
	// message (lockfiles, minified assets, binaries, build output).
	FilterFiles(files []string) []string
	// CleanDiff strips diff metadata lines and collapses blank runs.
	// Idempotent: CleanDiff(CleanDiff(x)) == CleanDiff(x).
	CleanDiff(diff string) string
}

// DefaultProcessor implements DiffProcessor with fixed exclusion defaults.
type DefaultProcessor struct{}

// NewProcessor creates a new DefaultProcessor.
func NewProcessor() *DefaultProcessor {
	return &DefaultProcessor{}
}

// lockFileNames contains exact lock file names that should be excluded.
var lockFileNames = []string{
	"package-lock.json",
	"npm-shrinkwrap.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"go.sum",
	"Cargo.lock",
	"Gemfile.lock",
	"composer.lock",
	"poetry.lock",
	"Pipfile.lock",
}

// excludedSuffixes matches minified assets, source maps, and binary-ish
// extensions whose diffs are noise.
var excludedSuffixes = []string{
	".min.js", ".min.css", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".bmp",
	".pdf", ".zip", ".gz", ".tar",
	".woff", ".woff2", ".ttf", ".eot", ".otf",
	".mp3", ".mp4", ".wasm",
	".exe", ".dll", ".so", ".dylib",
}

// excludedDirSegments matches build, distribution, and dependency
// directories anywhere in the path.
var excludedDirSegments = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	".next":        true,
	"coverage":     true,
}

// IsExcluded reports whether a file path matches any exclusion pattern.
func IsExcluded(path string) bool {
	base := filepath.Base(path)

	for _, name := range lockFileNames {
		if base == name {
			return true
		}
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	lower := strings.ToLower(base)
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}

	for _, segment := range strings.Split(path, "/") {
		if excludedDirSegments[segment] {
			return true
		}
	}

	return false
}

// FilterFiles returns the files that survive the exclusion patterns,
// preserving order.
func (p *DefaultProcessor) FilterFiles(files []string) []string {
	kept := make([]string, 0, len(files))
	for _, f := range files {
		if !IsExcluded(f) {
			kept = append(kept, f)
		}
	}
	return kept
}

var (
	diffHeaderPattern   = regexp.MustCompile(`(?m)^diff --git [^\n]*\n?`)
	indexLinePattern    = regexp.MustCompile(`(?m)^index [^\n]*\n?`)
	modeLinePattern     = regexp.MustCompile(`(?m)^(old mode|new mode|new file mode|deleted file mode) [^\n]*\n?`)
	binaryNoticePattern = regexp.MustCompile(`(?m)^Binary files [^\n]* differ\n?`)
	blankRunPattern     = regexp.MustCompile(`\n{4,}`)
)

// CleanDiff removes diff metadata that adds no signal for message
// generation: the per-file `diff --git` headers, blob index lines,
// file-mode header pairs, and binary-change notices. Runs of three or
// more blank lines collapse to a single blank line.
//
// Passes repeat until the text stops changing, so trimming can never
// expose a metadata line that survives to the output. Each pass only
// removes characters, so the loop terminates.
func (p *DefaultProcessor) CleanDiff(diff string) string {
	cleaned := diff
	for {
		next := cleanPass(cleaned)
		if next == cleaned {
			return cleaned
		}
		cleaned = next
	}
}

func cleanPass(diff string) string {
	cleaned := diffHeaderPattern.ReplaceAllString(diff, "")
	cleaned = indexLinePattern.ReplaceAllString(cleaned, "")
	cleaned = modeLinePattern.ReplaceAllString(cleaned, "")
	cleaned = binaryNoticePattern.ReplaceAllString(cleaned, "")
	cleaned = blankRunPattern.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
