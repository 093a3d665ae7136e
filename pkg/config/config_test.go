package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Protocol.MaxInputItems != 1000 {
		t.Errorf("max_input_items = %d", cfg.Protocol.MaxInputItems)
	}
	if cfg.Store.Type != "memory" || cfg.Store.MaxSize != 10000 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
engine:
  default_model: gpt-test
  max_chain_length: 5
protocol:
  max_tools: 8
store:
  max_size: 100
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.DefaultModel != "gpt-test" {
		t.Errorf("default_model = %q", cfg.Engine.DefaultModel)
	}
	if cfg.Engine.MaxChainLength != 5 {
		t.Errorf("max_chain_length = %d", cfg.Engine.MaxChainLength)
	}
	if cfg.Protocol.MaxTools != 8 {
		t.Errorf("max_tools = %d", cfg.Protocol.MaxTools)
	}
	// Untouched fields keep their defaults.
	if cfg.Protocol.MaxInputItems != 1000 {
		t.Errorf("max_input_items = %d", cfg.Protocol.MaxInputItems)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  default_model: from-yaml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ANTIPHON_MODEL", "from-env")
	t.Setenv("ANTIPHON_STORE_SIZE", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.DefaultModel != "from-env" {
		t.Errorf("default_model = %q, env should win", cfg.Engine.DefaultModel)
	}
	if cfg.Store.MaxSize != 42 {
		t.Errorf("store max_size = %d", cfg.Store.MaxSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("store:\n  type: postgres\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unknown store type should fail validation")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("explicit missing file should fail")
	}
}

func TestLimitsMapping(t *testing.T) {
	cfg := Defaults()
	cfg.Protocol.MaxTools = 7
	limits := cfg.Limits()
	if limits.MaxTools != 7 || limits.MaxInputItems != 1000 {
		t.Errorf("limits = %+v", limits)
	}

	ec := cfg.EngineConfig()
	if ec.Limits.MaxTools != 7 {
		t.Errorf("engine config limits = %+v", ec.Limits)
	}
}
