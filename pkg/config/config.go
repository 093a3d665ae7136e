// Package config provides unified configuration for the protocol service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (ANTIPHON_ prefix)
//  4. Validation
package config

import (
	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/engine"
)

// Config holds all configuration for the protocol service.
type Config struct {
	Protocol ProtocolConfig `yaml:"protocol"`
	Engine   EngineConfig   `yaml:"engine"`
	Store    StoreConfig    `yaml:"store"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ProtocolConfig bounds request validation.
type ProtocolConfig struct {
	MaxInputItems       int `yaml:"max_input_items"`        // default: 1000
	MaxTools            int `yaml:"max_tools"`              // default: 128
	MaxMetadataEntries  int `yaml:"max_metadata_entries"`   // default: 16
	MaxMetadataKeyLen   int `yaml:"max_metadata_key_len"`   // default: 64
	MaxMetadataValueLen int `yaml:"max_metadata_value_len"` // default: 512
}

// EngineConfig holds generation orchestration settings.
type EngineConfig struct {
	DefaultModel   string `yaml:"default_model"`    // optional
	MaxChainLength int    `yaml:"max_chain_length"` // default: 100
}

// StoreConfig holds response store settings.
type StoreConfig struct {
	Type    string `yaml:"type"`     // "memory", default: "memory"
	MaxSize int    `yaml:"max_size"` // LRU bound, default: 10000, 0 = unlimited
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	limits := api.DefaultValidationLimits()
	return Config{
		Protocol: ProtocolConfig{
			MaxInputItems:       limits.MaxInputItems,
			MaxTools:            limits.MaxTools,
			MaxMetadataEntries:  limits.MaxMetadataEntries,
			MaxMetadataKeyLen:   limits.MaxMetadataKeyLen,
			MaxMetadataValueLen: limits.MaxMetadataValueLen,
		},
		Engine: EngineConfig{
			MaxChainLength: 100,
		},
		Store: StoreConfig{
			Type:    "memory",
			MaxSize: 10000,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Limits maps the protocol section to validation limits.
func (c *Config) Limits() api.ValidationLimits {
	return api.ValidationLimits{
		MaxInputItems:       c.Protocol.MaxInputItems,
		MaxTools:            c.Protocol.MaxTools,
		MaxMetadataEntries:  c.Protocol.MaxMetadataEntries,
		MaxMetadataKeyLen:   c.Protocol.MaxMetadataKeyLen,
		MaxMetadataValueLen: c.Protocol.MaxMetadataValueLen,
	}
}

// EngineConfig maps the config to the engine's own Config type.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		DefaultModel:   c.Engine.DefaultModel,
		Limits:         c.Limits(),
		MaxChainLength: c.Engine.MaxChainLength,
	}
}
