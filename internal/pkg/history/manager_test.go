package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T, maxEntries int) *FileManager {
	t.Helper()
	return NewFileManager(filepath.Join(t.TempDir(), "history.json"), maxEntries)
}

func TestSaveAndList(t *testing.T) {
	mgr := testManager(t, 10)

	require.NoError(t, mgr.Save("feat: first", "gpt-4o-mini", true))
	require.NoError(t, mgr.Save("fix: second", "gpt-4o-mini", false))

	entries, err := mgr.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "fix: second", entries[0].Message)
	assert.False(t, entries[0].Committed)
	assert.Equal(t, "feat: first", entries[1].Message)
	assert.True(t, entries[1].Committed)

	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestList_LimitTruncates(t *testing.T) {
	mgr := testManager(t, 10)

	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, mgr.Save(msg, "gpt-4o-mini", true))
	}

	entries, err := mgr.List(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList_MissingFileIsEmpty(t *testing.T) {
	mgr := testManager(t, 10)

	entries, err := mgr.List(0)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_RotatesBeyondCap(t *testing.T) {
	mgr := testManager(t, 3)

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, mgr.Save(msg, "gpt-4o-mini", true))
	}

	entries, err := mgr.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	messages := []string{entries[0].Message, entries[1].Message, entries[2].Message}
	assert.Equal(t, []string{"five", "four", "three"}, messages)
}

func TestSave_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	mgr := NewFileManager(path, 10)

	require.NoError(t, mgr.Save("feat: recovered", "gpt-4o-mini", true))

	entries, err := mgr.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "feat: recovered", entries[0].Message)
}

func TestClear(t *testing.T) {
	mgr := testManager(t, 10)

	require.NoError(t, mgr.Save("feat: gone soon", "gpt-4o-mini", true))
	require.NoError(t, mgr.Clear())

	entries, err := mgr.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing an already-empty history is fine.
	require.NoError(t, mgr.Clear())
}
