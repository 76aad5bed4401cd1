// Package config provides configuration loading for cardioplan.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (CARDIOPLAN_STORE_PATH, CARDIOPLAN_OPTIMIZER_PYTHON, ...)
//  2. YAML config file (~/.cardioplan/config.yaml by default)
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CARDIOPLAN_"

// Config holds the complete cardioplan configuration.
type Config struct {
	Store     StoreConfig     `koanf:"store"`
	Optimizer OptimizerConfig `koanf:"optimizer"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// StoreConfig holds embedded clinical store settings.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// OptimizerConfig holds external optimizer process settings.
type OptimizerConfig struct {
	// Python is the interpreter used to run the optimizer scripts.
	Python string `koanf:"python"`
	// ScriptsDir is the directory containing the stage scripts.
	ScriptsDir string `koanf:"scripts_dir"`
	// Timeout is the hard wall-clock bound on one optimizer run; on expiry
	// the process is killed and the run reported as timed out.
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Debug bool `koanf:"debug"`
}

// DefaultAppDir returns the application data directory (~/.cardioplan),
// creating it if needed.
func DefaultAppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	appDir := filepath.Join(home, ".cardioplan")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create app directory: %w", err)
	}
	return appDir, nil
}

// Load reads configuration from the YAML file at configPath (skipped when
// the file does not exist), then overrides with CARDIOPLAN_* environment
// variables. An empty configPath uses the default ~/.cardioplan/config.yaml.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		appDir, err := DefaultAppDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(appDir, "config.yaml")
	}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// CARDIOPLAN_STORE_PATH -> store.path
	// CARDIOPLAN_OPTIMIZER_SCRIPTS_DIR -> optimizer.scripts_dir
	// The section is everything before the first underscore; underscores in
	// field names are preserved.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Store.Path == "" || cfg.Optimizer.ScriptsDir == "" {
		appDir, err := DefaultAppDir()
		if err != nil {
			return err
		}
		if cfg.Store.Path == "" {
			cfg.Store.Path = filepath.Join(appDir, "cardioplan.db")
		}
		if cfg.Optimizer.ScriptsDir == "" {
			cfg.Optimizer.ScriptsDir = filepath.Join(appDir, "scripts")
		}
	}
	if cfg.Optimizer.Python == "" {
		cfg.Optimizer.Python = "python3"
	}
	if cfg.Optimizer.Timeout == 0 {
		cfg.Optimizer.Timeout = 120 * time.Second
	}
	return nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if c.Optimizer.Python == "" {
		return fmt.Errorf("optimizer.python must not be empty")
	}
	if c.Optimizer.Timeout <= 0 {
		return fmt.Errorf("optimizer.timeout must be positive, got %s", c.Optimizer.Timeout)
	}
	return nil
}
