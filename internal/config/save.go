package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal encodes the config as TOML when format is "toml" and as YAML
// otherwise.
func (c *Config) Marshal(format string) ([]byte, error) {
	if format == "toml" {
		return toml.Marshal(c)
	}
	return yaml.Marshal(c)
}

// SaveTo writes the config to path, as TOML for a .toml extension and YAML
// otherwise.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	format := "yaml"
	if isTOML(path) {
		format = "toml"
	}
	data, err := c.Marshal(format)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
