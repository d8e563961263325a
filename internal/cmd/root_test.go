package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	rootCmd := NewRootCmd("1.2.3", "abc1234", "2026-01-01")

	assert.Equal(t, "commitgen", rootCmd.Use)
	assert.Contains(t, rootCmd.Version, "1.2.3")
	assert.Contains(t, rootCmd.Version, "abc1234")
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("model"))

	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["generate"])
	assert.True(t, names["config"])
	assert.True(t, names["history"])
}

func TestHistoryCmdHasClearSubcommand(t *testing.T) {
	historyCmd := NewHistoryCmd()

	require.NotNil(t, historyCmd.Flags().Lookup("limit"))

	var hasClear bool
	for _, sub := range historyCmd.Commands() {
		if sub.Name() == "clear" {
			hasClear = true
		}
	}
	assert.True(t, hasClear)
}

func TestFlattenSettings(t *testing.T) {
	nested := map[string]interface{}{
		"model": "gpt-4o-mini",
		"ui": map[string]interface{}{
			"color_enabled": true,
		},
		"history": map[string]interface{}{
			"enabled":     true,
			"max_entries": 1000,
		},
	}

	flat := flattenSettings("", nested)

	assert.Equal(t, "gpt-4o-mini", flat["model"])
	assert.Equal(t, true, flat["ui.color_enabled"])
	assert.Equal(t, 1000, flat["history.max_entries"])
	assert.NotContains(t, flat, "ui")
}
