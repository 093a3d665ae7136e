package engine

import "github.com/antiphon-dev/antiphon/pkg/api"

// Config holds configuration for the engine.
type Config struct {
	// DefaultModel is used when the request omits the model field.
	// Empty string means a model is always required in the request.
	DefaultModel string

	// Limits bound request validation. The zero value disables the
	// size limits; use api.DefaultValidationLimits for protocol defaults.
	Limits api.ValidationLimits

	// MaxChainLength bounds how many stored responses a
	// previous_response_id chain may traverse. Zero or negative means
	// use the default of 100.
	MaxChainLength int
}

// maxChainLength returns the effective chain bound, defaulting to 100.
func (c Config) maxChainLength() int {
	if c.MaxChainLength <= 0 {
		return 100
	}
	return c.MaxChainLength
}
