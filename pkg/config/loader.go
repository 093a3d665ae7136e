package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, ANTIPHON_CONFIG env, ./config.yaml,
//     /etc/antiphon/config.yaml)
//  3. ANTIPHON_* environment variable overrides
//  4. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// explicit argument, ANTIPHON_CONFIG env var, ./config.yaml,
// /etc/antiphon/config.yaml. Returns empty string if none is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if envPath := os.Getenv("ANTIPHON_CONFIG"); envPath != "" {
		return envPath
	}
	for _, path := range []string{"config.yaml", "/etc/antiphon/config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps ANTIPHON_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ANTIPHON_MODEL"); v != "" {
		cfg.Engine.DefaultModel = v
	}
	if v := os.Getenv("ANTIPHON_MAX_CHAIN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.MaxChainLength = n
		}
	}
	if v := os.Getenv("ANTIPHON_MAX_INPUT_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Protocol.MaxInputItems = n
		}
	}
	if v := os.Getenv("ANTIPHON_MAX_TOOLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Protocol.MaxTools = n
		}
	}
	if v := os.Getenv("ANTIPHON_STORE"); v != "" {
		cfg.Store.Type = v
	}
	if v := os.Getenv("ANTIPHON_STORE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.MaxSize = n
		}
	}
	if v := os.Getenv("ANTIPHON_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Store.Type != "memory" {
		return fmt.Errorf("store.type: unknown store type %q", c.Store.Type)
	}
	if c.Store.MaxSize < 0 {
		return fmt.Errorf("store.max_size: must not be negative")
	}
	if c.Engine.MaxChainLength < 0 {
		return fmt.Errorf("engine.max_chain_length: must not be negative")
	}
	for name, v := range map[string]int{
		"protocol.max_input_items":        c.Protocol.MaxInputItems,
		"protocol.max_tools":              c.Protocol.MaxTools,
		"protocol.max_metadata_entries":   c.Protocol.MaxMetadataEntries,
		"protocol.max_metadata_key_len":   c.Protocol.MaxMetadataKeyLen,
		"protocol.max_metadata_value_len": c.Protocol.MaxMetadataValueLen,
	} {
		if v < 0 {
			return fmt.Errorf("%s: must not be negative", name)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path: required when metrics are enabled")
	}
	return nil
}
