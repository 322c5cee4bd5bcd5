package plumbing

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"gopkg.in/ini.v1"
)

// Author identifies who made a commit.
type Author struct {
	Name  string
	Email string
}

// configPath is the simulated .git/config location.
var configPath = path.Join("/", constants.GitDir, "config")

// loadConfig parses .git/config from the virtual filesystem.
func loadConfig(fs *FileSystem) (*ini.File, error) {
	data, ok := fs.GetFileContents(configPath)
	if !ok {
		return nil, fmt.Errorf("could not read %s", configPath)
	}
	return ini.Load([]byte(data))
}

// splitKey splits "section.name" and rejects keys without a section.
func splitKey(key string) (string, string, error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("key does not contain a section: %s", key)
	}
	return parts[0], parts[1], nil
}

// GetConfig returns the value stored for a "section.name" key.
func GetConfig(fs *FileSystem, key string) (string, error) {
	cfg, err := loadConfig(fs)
	if err != nil {
		return "", err
	}

	section, name, err := splitKey(key)
	if err != nil {
		return "", err
	}

	// Check val for specific key
	if !cfg.Section(section).HasKey(name) {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return cfg.Section(section).Key(name).String(), nil
}

// SetConfig stores value for a "section.name" key and writes .git/config back.
func SetConfig(fs *FileSystem, key, value string) error {
	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}

	section, name, err := splitKey(key)
	if err != nil {
		return err
	}
	cfg.Section(section).Key(name).SetValue(value)

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return err
	}
	if !fs.WriteFile(configPath, buf.String()) {
		return fmt.Errorf("could not write %s", configPath)
	}
	return nil
}

// ListConfig returns every "section.name=value" entry in file order.
func ListConfig(fs *FileSystem) ([]string, error) {
	cfg, err := loadConfig(fs)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, sec := range cfg.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		for _, k := range sec.Keys() {
			out = append(out, fmt.Sprintf("%s.%s=%s", sec.Name(), k.Name(), k.String()))
		}
	}
	return out, nil
}

// GetAuthorInfo fetches the author from .git/config, falling back to a placeholder identity.
func GetAuthorInfo(fs *FileSystem) Author {
	name, err := GetConfig(fs, "user.name")
	if err != nil {
		name = "Git Learner"
	}
	email, err := GetConfig(fs, "user.email")
	if err != nil {
		email = "learner@gitgud.local"
	}
	return Author{Name: name, Email: email}
}
