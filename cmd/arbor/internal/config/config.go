// Package config loads and saves the demo CLI's project configuration,
// arbor.yaml. It replaces the teacher's vango.json: dev server host/port
// and file-watch globs only, with the Tailwind/PWA/WASM-target fields
// that were tied to the dropped template compiler left behind.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level arbor.yaml document.
type Config struct {
	// RoutesDir is where cmd/arbor looks for page handlers to serve.
	RoutesDir string `yaml:"routesDir,omitempty"`

	Dev   *DevConfig   `yaml:"dev,omitempty"`
	Watch *WatchConfig `yaml:"watch,omitempty"`
}

// DevConfig controls the serve subcommand's HTTP listener.
type DevConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// WatchConfig controls which paths the watch subcommand's fsnotify
// watcher follows, and how fast it may re-render after a change.
type WatchConfig struct {
	Globs      []string `yaml:"globs,omitempty"`
	DebounceMS int      `yaml:"debounceMs,omitempty"`
}

// Load reads arbor.yaml from projectPath, falling back to
// DefaultConfig when the file is absent.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, "arbor.yaml")

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to arbor.yaml under projectPath.
func Save(cfg *Config, projectPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, "arbor.yaml"), data, 0644)
}

// DefaultConfig returns the configuration used when no arbor.yaml is present.
func DefaultConfig() *Config {
	return &Config{
		RoutesDir: "app/routes",
		Dev: &DevConfig{
			Host: "localhost",
			Port: 8080,
		},
		Watch: &WatchConfig{
			Globs:      []string{"app/routes", "app/client"},
			DebounceMS: 150,
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.RoutesDir == "" {
		cfg.RoutesDir = defaults.RoutesDir
	}
	if cfg.Dev == nil {
		cfg.Dev = defaults.Dev
	} else {
		if cfg.Dev.Host == "" {
			cfg.Dev.Host = defaults.Dev.Host
		}
		if cfg.Dev.Port == 0 {
			cfg.Dev.Port = defaults.Dev.Port
		}
	}
	if cfg.Watch == nil {
		cfg.Watch = defaults.Watch
	} else {
		if len(cfg.Watch.Globs) == 0 {
			cfg.Watch.Globs = defaults.Watch.Globs
		}
		if cfg.Watch.DebounceMS == 0 {
			cfg.Watch.DebounceMS = defaults.Watch.DebounceMS
		}
	}
}

// Addr returns the host:port the dev server should bind to.
func (c *Config) Addr() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}
