package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrUnknownLevel is returned when a level id is not in the catalog.
var ErrUnknownLevel = errors.New("unknown level")

type catalogFile struct {
	Levels []Level `yaml:"levels"`
}

// ParseCatalog decodes a YAML catalog and checks that ids are unique and every level has a requirement.
func ParseCatalog(data []byte) ([]Level, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, errors.New("catalog has no levels")
	}

	seen := map[int]bool{}
	for _, l := range file.Levels {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate level id %d", l.ID)
		}
		seen[l.ID] = true
		if len(l.Requirements) == 0 {
			return nil, fmt.Errorf("level %d has no requirements", l.ID)
		}
	}
	return file.Levels, nil
}

// DefaultCatalog returns the built-in levels.
func DefaultCatalog() []Level {
	levels, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return levels
}

// LoadCatalog reads a catalog file. An empty path selects the built-in catalog.
func LoadCatalog(path string) ([]Level, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	levels, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levels, nil
}
