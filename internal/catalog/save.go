package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a record list to YAML bytes.
func Marshal(records []Record) ([]byte, error) {
	return encode(records)
}

// Save writes the record list to path, replacing it atomically.
func Save(path string, records []Record) error {
	data, err := Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}
	return writeAtomic(path, data)
}

// SaveMatches stores search hits so a later "run #n" can refer to them.
func SaveMatches(path string, m Matches) error {
	if m == nil {
		m = Matches{}
	}
	data, err := encode(m)
	if err != nil {
		return fmt.Errorf("encoding last search: %w", err)
	}
	return writeAtomic(path, data)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAtomic writes to a sibling temp file and renames it over path.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
