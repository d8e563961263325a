// Package history persists generated commit messages locally.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/commitgen/commitgen/internal/pkg/errors"
)

// Entry represents one generated commit message.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Model     string    `json:"model"`
	Committed bool      `json:"committed"`
}

// Manager defines the interface for history operations.
type Manager interface {
	Save(message, model string, committed bool) error
	List(limit int) ([]Entry, error)
	Clear() error
}

// FileManager implements Manager backed by a JSON file.
type FileManager struct {
	filePath   string
	maxEntries int
	mu         sync.Mutex
}

// NewFileManager creates a manager that stores entries at filePath,
// keeping at most maxEntries of them.
func NewFileManager(filePath string, maxEntries int) *FileManager {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &FileManager{
		filePath:   filePath,
		maxEntries: maxEntries,
	}
}

// Save appends an entry and rotates out the oldest beyond the cap.
func (m *FileManager) Save(message, model string, committed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return err
	}

	entries = append(entries, Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Message:   message,
		Model:     model,
		Committed: committed,
	})

	if len(entries) > m.maxEntries {
		entries = entries[len(entries)-m.maxEntries:]
	}

	return m.store(entries)
}

// List returns up to limit entries, newest first. A limit of zero or
// less returns all entries. Entries are stored oldest first, so newest
// first is insertion order reversed.
func (m *FileManager) List(limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.load()
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// Clear removes all stored entries.
func (m *FileManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Remove(m.filePath)
	if err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to clear history")
	}
	return nil
}

func (m *FileManager) load() ([]Entry, error) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to read history file")
	}

	if len(data) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt history file should not block generation; start over.
		apperrors.Warn("history file is corrupt, starting fresh: %v", err)
		return []Entry{}, nil
	}

	return entries, nil
}

func (m *FileManager) store(entries []Entry) error {
	dir := filepath.Dir(m.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to create history directory")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to encode history")
	}

	if err := os.WriteFile(m.filePath, data, 0600); err != nil {
		return apperrors.Wrap(err, apperrors.ErrFileSystemError, "failed to write history file")
	}

	return nil
}
