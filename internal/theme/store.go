package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	mode  Mode
	set   bool
	saves int
}

// NewMemoryStore returns a store holding mode, or an empty store when mode
// is "".
func NewMemoryStore(mode Mode) *MemoryStore {
	return &MemoryStore{mode: mode, set: mode != ""}
}

// Load implements Store.
func (m *MemoryStore) Load() (Mode, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode, m.set, nil
}

// Save implements Store.
func (m *MemoryStore) Save(mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode, m.set = mode, true
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FileStore keeps the preference as a single word in a file.
type FileStore struct {
	Path string
}

// DefaultFilePath is the CLI's preference file under the user config dir.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "benchboard", "theme"), nil
}

// Load implements Store. A missing file means nothing is stored.
func (f FileStore) Load() (Mode, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	mode, err := ParseMode(strings.TrimSpace(string(data)))
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", f.Path, err)
	}
	return mode, true, nil
}

// Save implements Store.
func (f FileStore) Save(mode Mode) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(f.Path), err)
	}
	if err := os.WriteFile(f.Path, []byte(string(mode)+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return nil
}
