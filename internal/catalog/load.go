package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a games.yml file from disk. A missing file is an empty library.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("reading library: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a record list.
func Parse(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return []Record{}, nil
	}
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing library YAML: %w", err)
	}
	if records == nil {
		return []Record{}, nil
	}
	return records, nil
}

// LoadMatches reads the titles saved by the last search, best first as they
// were shown. A missing file yields no matches.
func LoadMatches(path string) (Matches, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading last search: %w", err)
	}
	var m Matches
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing last search: %w", err)
	}
	return m, nil
}
