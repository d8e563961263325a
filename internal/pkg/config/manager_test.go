package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	mgr, err := NewManager(testConfigPath(t))
	require.NoError(t, err)

	cfg, err := mgr.Load()

	require.NoError(t, err)
	assert.Equal(t, "", cfg.APIKey)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.True(t, cfg.UI.ColorEnabled)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 1000, cfg.History.MaxEntries)
}

func TestLoad_CorruptFileUsesDefaults(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("model:\n  - not\n  - a-string\n"), 0600))

	mgr, err := NewManager(path)
	require.NoError(t, err)

	cfg, err := mgr.Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoad_ReadsValuesFromFile(t *testing.T) {
	path := testConfigPath(t)
	content := "api_key: sk-file-key\nmodel: gpt-4o\nui:\n  color_enabled: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	mgr, err := NewManager(path)
	require.NoError(t, err)

	cfg, err := mgr.Load()

	require.NoError(t, err)
	assert.Equal(t, "sk-file-key", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.False(t, cfg.UI.ColorEnabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("model: gpt-4o\n"), 0600))
	t.Setenv("COMMITGEN_MODEL", "gpt-4-turbo")
	t.Setenv("COMMITGEN_API_KEY", "sk-env-key")

	mgr, err := NewManager(path)
	require.NoError(t, err)

	cfg, err := mgr.Load()

	require.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", cfg.Model)
	assert.Equal(t, "sk-env-key", cfg.APIKey)
}

func TestEnsureExists_CreatesFileWithRestrictedPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	mgr, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, mgr.EnsureExists())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second call is a no-op.
	require.NoError(t, mgr.EnsureExists())
}

func TestSet_PersistsValue(t *testing.T) {
	path := testConfigPath(t)

	mgr, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, mgr.Set("api_key", "sk-new-key"))
	require.NoError(t, mgr.Set("model", "gpt-4o"))

	// A fresh manager reading the same file sees the values.
	fresh, err := NewManager(path)
	require.NoError(t, err)
	cfg, err := fresh.Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-new-key", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestSet_ConvertsTypedValues(t *testing.T) {
	path := testConfigPath(t)

	mgr, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, mgr.Set("history.enabled", "false"))
	require.NoError(t, mgr.Set("history.max_entries", "50"))

	fresh, err := NewManager(path)
	require.NoError(t, err)
	cfg, err := fresh.Load()
	require.NoError(t, err)

	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.MaxEntries)
}

func TestSet_RejectsBadTypedValue(t *testing.T) {
	mgr, err := NewManager(testConfigPath(t))
	require.NoError(t, err)

	assert.Error(t, mgr.Set("history.enabled", "not-a-bool"))
}

func TestGet(t *testing.T) {
	mgr, err := NewManager(testConfigPath(t))
	require.NoError(t, err)

	model, err := mgr.Get("model")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, model)

	_, err = mgr.Get("no.such.key")
	assert.Error(t, err)
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"empty", "", "****"},
		{"short", "abc", "****"},
		{"exactly four", "abcd", "****"},
		{"normal key", "sk-abcdef123456", "***********3456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskAPIKey(tt.key))
		})
	}
}
