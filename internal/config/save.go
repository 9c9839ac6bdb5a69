package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePhotoDir records dir as the album for the next start and returns the
// file written. The file Load read from, or the user config file when there
// was none, is re-read without flag overrides and only photo_dir changes.
func SavePhotoDir(dir string) (string, error) {
	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		path = filepath.Join(ConfigDir(), "flipbook.yaml")
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := loadFromFile(cfg, path); err != nil {
			return path, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	cfg.Book.PhotoDir = dir
	return path, cfg.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
