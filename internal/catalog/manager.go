package catalog

import "fmt"

// Manager ties a Store to its files on disk.
// It centralizes the common pattern of load → modify → save.
type Manager struct {
	path       string
	searchPath string
	opts       []Option
}

// NewManager creates a manager for the library at path. searchPath holds the
// last search results and may be empty to disable them.
func NewManager(path, searchPath string, opts ...Option) *Manager {
	return &Manager{
		path:       path,
		searchPath: searchPath,
		opts:       opts,
	}
}

// Path returns the library file path.
func (m *Manager) Path() string { return m.path }

// Load reads the library file into a new store.
// A missing file yields an empty store (not an error).
func (m *Manager) Load() (*Store, error) {
	records, err := Load(m.path)
	if err != nil {
		return nil, err
	}
	s := New(m.opts...)
	s.Load(records)
	return s, nil
}

// Save writes every game in the store back to the library file.
func (m *Manager) Save(s *Store) error {
	if err := Save(m.path, s.Records()); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}

// Update loads the library, applies fn, and saves it.
//
// Example:
//
//	err := mgr.Update(func(s *Store) error {
//	    s.ClearNew()
//	    return nil
//	})
func (m *Manager) Update(fn func(*Store) error) error {
	s, err := m.Load()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return m.Save(s)
}

// LastSearch returns the hits saved by SaveSearch.
func (m *Manager) LastSearch() (Matches, error) {
	if m.searchPath == "" {
		return nil, nil
	}
	return LoadMatches(m.searchPath)
}

// SaveSearch records hits for a later "#n" selection.
func (m *Manager) SaveSearch(hits Matches) error {
	if m.searchPath == "" {
		return nil
	}
	return SaveMatches(m.searchPath, hits)
}
