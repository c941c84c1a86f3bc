package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// document is a JSON file under the data directory. Writes go through a temp
// file so readers never see a partial document.
type document struct {
	path string
	kind string
}

func (d document) exists() bool {
	_, err := os.Stat(d.path)
	return !os.IsNotExist(err)
}

// read decodes the file into v; found is false when the file does not exist
func (d document) read(v any) (found bool, err error) {
	data, err := os.ReadFile(d.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s file: %w", d.kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s file: %w", d.kind, err)
	}
	return true, nil
}

func (d document) write(v any) error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", d.kind, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", d.kind, err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", d.kind, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to replace %s file: %w", d.kind, err)
	}
	return nil
}
