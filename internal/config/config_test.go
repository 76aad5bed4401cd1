package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Optimizer.Python != "python3" {
		t.Errorf("expected default python 'python3', got %q", cfg.Optimizer.Python)
	}
	if cfg.Optimizer.Timeout != 120*time.Second {
		t.Errorf("expected default timeout 120s, got %s", cfg.Optimizer.Timeout)
	}
	if cfg.Store.Path == "" {
		t.Error("expected default store path to be set")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
store:
  path: /tmp/clinic.db
optimizer:
  python: /usr/bin/python3.12
  scripts_dir: /opt/cardioplan/scripts
  timeout: 30s
logging:
  debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "/tmp/clinic.db" {
		t.Errorf("expected store path '/tmp/clinic.db', got %q", cfg.Store.Path)
	}
	if cfg.Optimizer.Python != "/usr/bin/python3.12" {
		t.Errorf("expected python '/usr/bin/python3.12', got %q", cfg.Optimizer.Python)
	}
	if cfg.Optimizer.ScriptsDir != "/opt/cardioplan/scripts" {
		t.Errorf("expected scripts dir '/opt/cardioplan/scripts', got %q", cfg.Optimizer.ScriptsDir)
	}
	if cfg.Optimizer.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %s", cfg.Optimizer.Timeout)
	}
	if !cfg.Logging.Debug {
		t.Error("expected debug logging enabled")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
store:
  path: /tmp/from-file.db
optimizer:
  python: python3
`)

	t.Setenv("CARDIOPLAN_STORE_PATH", "/tmp/from-env.db")
	t.Setenv("CARDIOPLAN_OPTIMIZER_SCRIPTS_DIR", "/env/scripts")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Path != "/tmp/from-env.db" {
		t.Errorf("expected env to override store path, got %q", cfg.Store.Path)
	}
	if cfg.Optimizer.ScriptsDir != "/env/scripts" {
		t.Errorf("expected env to override scripts dir, got %q", cfg.Optimizer.ScriptsDir)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Optimizer.Python != "python3" {
		t.Errorf("expected defaults for missing file, got python %q", cfg.Optimizer.Python)
	}
}

func TestValidate_RejectsNonPositiveTimeout(t *testing.T) {
	cfg := &Config{
		Store:     StoreConfig{Path: "/tmp/x.db"},
		Optimizer: OptimizerConfig{Python: "python3", Timeout: -1 * time.Second},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative timeout")
	}
}
