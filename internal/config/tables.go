package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/meicalc/meicalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// DefaultTablesYAML returns the built-in regulatory tables document
func DefaultTablesYAML() []byte {
	return append([]byte(nil), defaultTables...)
}

// TablesLoader handles loading and validating regulatory tables
type TablesLoader struct{}

// NewTablesLoader creates a new tables loader
func NewTablesLoader() *TablesLoader {
	return &TablesLoader{}
}

// Load reads the tables from path, or the built-in tables when path is empty
func (tl *TablesLoader) Load(path string) (*domain.RegulatoryTables, error) {
	if path == "" {
		return tl.LoadDefault()
	}
	return tl.LoadFromFile(path)
}

// LoadDefault parses the embedded tables
func (tl *TablesLoader) LoadDefault() (*domain.RegulatoryTables, error) {
	tables, err := tl.Parse(defaultTables)
	if err != nil {
		return nil, fmt.Errorf("built-in tables: %w", err)
	}
	return tables, nil
}

// LoadFromFile loads regulatory tables from a YAML file
func (tl *TablesLoader) LoadFromFile(filename string) (*domain.RegulatoryTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	tables, err := tl.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return tables, nil
}

// Parse decodes and validates a tables document
func (tl *TablesLoader) Parse(data []byte) (*domain.RegulatoryTables, error) {
	var tables domain.RegulatoryTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("tables validation failed: %w", err)
	}
	return &tables, nil
}
