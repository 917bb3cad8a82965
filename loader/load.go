// Package loader reads playbook documents from files in JSON or YAML
// format. YAML is parsed into the JSON-compatible generic shape and
// re-marshaled, so both formats funnel through one decoding path.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/transplant"
)

// Load parses a playbook document from raw bytes, using the file path's
// extension to pick the parse format. Validation matches import: a
// document missing graph or capabilities is rejected.
func Load(data []byte, filePath string) (playbook.Document, error) {
	jsonData, err := toJSON(data, filePath)
	if err != nil {
		return playbook.Document{}, fmt.Errorf("parsing %s: %w", filepath.Base(filePath), err)
	}
	return transplant.Import(jsonData)
}

// LoadFile reads and parses a playbook document from disk.
func LoadFile(filePath string) (playbook.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return playbook.Document{}, fmt.Errorf("reading file: %w", err)
	}
	return Load(data, filePath)
}

// IsYAML returns true if the file path has a YAML extension.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// toJSON converts raw bytes to JSON bytes. YAML goes through
// map[string]any, which is JSON-compatible; JSON passes through as-is.
func toJSON(data []byte, path string) ([]byte, error) {
	if !IsYAML(path) {
		return data, nil
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}
