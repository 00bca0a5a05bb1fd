package schema

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/flext/flext-db-oracle/internal/dberr"
)

// LoadYAML reads a schema from a YAML file.
func LoadYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dberr.Processing("reading schema file", err)
	}
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, dberr.Processing("parsing schema", err)
	}
	return s, nil
}

// WriteYAML writes the schema to a YAML file at the given path.
func (s *Schema) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return dberr.Processing("creating output directory", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return dberr.Processing("marshaling schema", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return dberr.Processing("writing schema file", err)
	}
	return nil
}

// ToYAML returns the schema as a YAML byte slice.
func (s *Schema) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
