package ai

import (
	"strings"
)

// FallbackMessage is substituted when the service returns no usable text.
// The wording is not load-bearing; it can be overridden via GeneratorConfig.
const FallbackMessage = "chore: something changed, the model won't say what"

// ExtractMessage normalizes a candidate text into the commit message that
// will be used: surrounding whitespace is trimmed, nothing else is altered.
// An empty result means the caller should substitute the fallback.
func ExtractMessage(content string) string {
	return strings.TrimSpace(content)
}
