// Package hostconfig loads the host configuration object that carries
// per-plugin settings under plugins.entries.<id>.config.
package hostconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Plugins PluginsConfig `yaml:"plugins"`
}

type PluginsConfig struct {
	Entries map[string]PluginEntry `yaml:"entries"`
}

type PluginEntry struct {
	Enabled *bool          `yaml:"enabled,omitempty"`
	Config  map[string]any `yaml:"config"`
}

// IsEnabled: отсутствующий enabled считается true
func (e PluginEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Load читает YAML по пути path. Пустой path - пустой конфиг, не ошибка.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host config: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse host config: %w", err)
	}
	return &cfg, nil
}

// PluginConfig returns the config namespace of plugin id. A missing
// namespace or an entry with enabled: false yields an empty, non-nil map.
func (c *Config) PluginConfig(id string) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	entry, ok := c.Plugins.Entries[id]
	if !ok || entry.Config == nil || !entry.IsEnabled() {
		return map[string]any{}
	}
	return entry.Config
}
