// Package ai provides the completion-service collaborator for commitgen.
package ai

import (
	"context"
)

// GeneratorConfig contains configuration for a message generator.
type GeneratorConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	// Fallback overrides FallbackMessage when the service returns no
	// usable text. Empty means use the default.
	Fallback string
}

// Generator defines the interface for commit message generation.
type Generator interface {
	// Generate produces a single-line commit message for the given diff.
	Generate(ctx context.Context, diff string) (string, error)
	// Model returns the configured model name.
	Model() string
}
