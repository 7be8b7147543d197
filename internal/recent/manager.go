// Package recent keeps the recent-documents library: which files were
// opened, when, and the page the reader last settled on.
package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"flipbook-viewer/internal/types"
)

const (
	// FileName is the library file inside the base directory
	FileName = "recent.json"
	// MaxEntries caps the library; the oldest entries fall off
	MaxEntries = 20
)

// Entry is one remembered document
type Entry struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	PageCount int       `json:"page_count"`
	LastPage  int       `json:"last_page"`
	OpenedAt  time.Time `json:"opened_at"`
}

// Manager manages the recent-documents library stored in the user directory
type Manager struct {
	baseDir string
	mu      sync.RWMutex
	entries map[string]*Entry // key: document path
}

// NewManager creates a Manager rooted at baseDir. An empty baseDir uses
// ~/.flipbook-viewer.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, types.NewAppError(types.ErrIO, "failed to get home directory", err)
		}
		baseDir = filepath.Join(homeDir, ".flipbook-viewer")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, types.NewAppError(types.ErrIO, "failed to create library directory", err)
	}

	m := &Manager{
		baseDir: baseDir,
		entries: make(map[string]*Entry),
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Record adds or refreshes the entry for an opened document
func (m *Manager) Record(path, name string, pageCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &Entry{
		Path:      path,
		Name:      name,
		PageCount: pageCount,
		LastPage:  1,
		OpenedAt:  time.Now(),
	}
	if existing, ok := m.entries[path]; ok {
		entry.LastPage = existing.LastPage
	}
	m.entries[path] = entry

	m.pruneLocked()
	return m.saveLocked()
}

// SetLastPage stores the page the reader settled on
func (m *Manager) SetLastPage(path string, page int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[path]
	if !ok {
		return nil
	}
	entry.LastPage = page
	return m.saveLocked()
}

// LastPage returns the remembered page for a document, if any
func (m *Manager) LastPage(path string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[path]
	if !ok {
		return 0, false
	}
	return entry.LastPage, true
}

// List returns all entries, most recently opened first
func (m *Manager) List() []*Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OpenedAt.After(entries[j].OpenedAt)
	})
	return entries
}

// Remove drops a document from the library
func (m *Manager) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, path)
	return m.saveLocked()
}

// pruneLocked enforces MaxEntries by dropping the oldest entries
func (m *Manager) pruneLocked() {
	if len(m.entries) <= MaxEntries {
		return
	}

	entries := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OpenedAt.Before(entries[j].OpenedAt)
	})
	for _, entry := range entries[:len(entries)-MaxEntries] {
		delete(m.entries, entry.Path)
	}
}

// load reads the library file
func (m *Manager) load() error {
	filePath := filepath.Join(m.baseDir, FileName)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return types.NewAppError(types.ErrIO, "failed to read recent-documents file", err)
	}

	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return types.NewAppError(types.ErrIO, "failed to parse recent-documents file", err)
	}
	for _, entry := range entries {
		m.entries[entry.Path] = entry
	}
	return nil
}

// saveLocked writes the library file; the caller must hold the lock
func (m *Manager) saveLocked() error {
	entries := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrIO, "failed to marshal recent documents", err)
	}

	filePath := filepath.Join(m.baseDir, FileName)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return types.NewAppError(types.ErrIO, "failed to write recent-documents file", err)
	}
	return nil
}
