package api

import "fmt"

// ErrorKind classifies a validation failure in a machine-readable way.
type ErrorKind string

const (
	KindMissingDiscriminator   ErrorKind = "missing_discriminator"
	KindUnknownVariant         ErrorKind = "unknown_variant"
	KindOutOfRange             ErrorKind = "out_of_range"
	KindMutuallyExclusive      ErrorKind = "mutually_exclusive_violation"
	KindUnknownToolChoice      ErrorKind = "unknown_tool_choice"
	KindToolChoiceWithoutTools ErrorKind = "tool_choice_without_tools"
	KindFilterTooDeep          ErrorKind = "filter_too_deep"
	KindMissingRequiredField   ErrorKind = "missing_required_field"
)

// ValidationError is a client-caused error raised synchronously during
// decoding, normalization, or cross-field resolution. It always names the
// offending field path (Param) and the violated constraint (Kind).
type ValidationError struct {
	Kind    ErrorKind `json:"code"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Kind, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// At returns a copy of the error with the param path prefixed, e.g.
// "input[3]" + "role" -> "input[3].role". Used when surfacing nested
// element errors with their position.
func (e *ValidationError) At(prefix string) *ValidationError {
	clone := *e
	switch {
	case clone.Param == "":
		clone.Param = prefix
	default:
		clone.Param = prefix + "." + clone.Param
	}
	return &clone
}

// ErrorResponse wraps a ValidationError for JSON serialization as the
// top-level error response body.
type ErrorResponse struct {
	Error *ValidationError `json:"error"`
}

// NewMissingDiscriminator creates a ValidationError for a union record
// without a type field.
func NewMissingDiscriminator(param string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingDiscriminator,
		Param:   param,
		Message: "missing required discriminator field \"type\"",
	}
}

// NewUnknownVariant creates a ValidationError for a discriminator value
// outside the closed variant set of a union site.
func NewUnknownVariant(param, value string) *ValidationError {
	return &ValidationError{
		Kind:    KindUnknownVariant,
		Param:   param,
		Message: fmt.Sprintf("unknown variant %q", value),
	}
}

// NewOutOfRange creates a ValidationError for an enum, numeric bound, or
// string length violation.
func NewOutOfRange(param, message string) *ValidationError {
	return &ValidationError{
		Kind:    KindOutOfRange,
		Param:   param,
		Message: message,
	}
}

// NewMutuallyExclusive creates a ValidationError for fields that must not
// (or must exclusively) be supplied together.
func NewMutuallyExclusive(param, message string) *ValidationError {
	return &ValidationError{
		Kind:    KindMutuallyExclusive,
		Param:   param,
		Message: message,
	}
}

// NewUnknownToolChoice creates a ValidationError for a tool_choice naming a
// function that is not declared in the request's tool catalog.
func NewUnknownToolChoice(name string) *ValidationError {
	return &ValidationError{
		Kind:    KindUnknownToolChoice,
		Param:   "tool_choice",
		Message: fmt.Sprintf("tool_choice references unknown tool %q", name),
	}
}

// NewToolChoiceWithoutTools creates a ValidationError for a function
// tool_choice on a request that declares no tools.
func NewToolChoiceWithoutTools() *ValidationError {
	return &ValidationError{
		Kind:    KindToolChoiceWithoutTools,
		Param:   "tool_choice",
		Message: "tool_choice requests a function but the request declares no tools",
	}
}

// NewFilterTooDeep creates a ValidationError for a filter expression nested
// beyond the maximum allowed depth.
func NewFilterTooDeep(param string) *ValidationError {
	return &ValidationError{
		Kind:    KindFilterTooDeep,
		Param:   param,
		Message: fmt.Sprintf("filter exceeds maximum nesting depth of %d", MaxFilterDepth),
	}
}

// NewMissingRequiredField creates a ValidationError for a required field
// that is absent from its variant.
func NewMissingRequiredField(param string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingRequiredField,
		Param:   param,
		Message: fmt.Sprintf("missing required field %q", param),
	}
}
