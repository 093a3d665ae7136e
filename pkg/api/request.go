package api

import (
	"encoding/json"
	"fmt"
)

// ReasoningEffort constrains deliberation on reasoning-capable models.
type ReasoningEffort string

const (
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "medium"
	ReasoningEffortHigh   ReasoningEffort = "high"
)

// ReasoningSummary selects the verbosity of generated reasoning summaries.
type ReasoningSummary string

const (
	ReasoningSummaryConcise  ReasoningSummary = "concise"
	ReasoningSummaryDetailed ReasoningSummary = "detailed"
)

// ReasoningConfig holds reasoning configuration. Only meaningful for
// reasoning-capable models; echoed back in the response.
type ReasoningConfig struct {
	Effort          *ReasoningEffort  `json:"effort"`
	GenerateSummary *ReasoningSummary `json:"generate_summary"`
}

// TextFormatType identifies a response text format variant.
type TextFormatType string

const (
	TextFormatText       TextFormatType = "text"
	TextFormatJSONSchema TextFormatType = "json_schema"
	TextFormatJSONObject TextFormatType = "json_object"
)

// TextFormat specifies the output text format. For json_schema mode the
// Name, Strict, and Schema fields carry the schema definition through the
// pipeline as opaque data.
type TextFormat struct {
	Type        TextFormatType  `json:"type"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Strict      *bool           `json:"strict,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
}

// TextConfig holds text generation configuration echoed in the response.
type TextConfig struct {
	Format *TextFormat `json:"format,omitempty"`
}

// Truncation policy literals.
const (
	TruncationAuto     = "auto"
	TruncationDisabled = "disabled"
)

// Includable names additional output data the client may request.
type Includable string

const (
	IncludeFileSearchResults   Includable = "file_search_call.results"
	IncludeInputImageURL       Includable = "message.input_image.image_url"
	IncludeComputerOutputImage Includable = "computer_call_output.output.image_url"
)

// InputItems is the canonical, ordered form of the request input. On the
// wire it is either a bare string or a heterogeneous item array; both decode
// to one ordered item sequence. Order is conversation turn order and is
// preserved exactly.
type InputItems []Item

// UnmarshalJSON normalizes the two accepted input encodings. A bare string
// is wrapped as a single user message with one input_text content part. An
// array is decoded element by element, failing fast on the first invalid
// element with its 0-based position.
func (in *InputItems) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*in = InputItems{NewUserMessage(text)}
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return NewOutOfRange("input", "input must be a string or an array of items")
	}

	items := make(InputItems, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal(raw, &items[i]); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				return verr.At(fmt.Sprintf("input[%d]", i))
			}
			return fmt.Errorf("input[%d]: %w", i, err)
		}
	}
	*in = items
	return nil
}

// CreateResponseRequest is the canonical form of a create-response call.
// It is constructed once per inbound request, immutable after validation,
// and discarded once handed to the generation collaborator.
type CreateResponseRequest struct {
	Input              InputItems        `json:"input"`
	Model              string            `json:"model"`
	Include            []Includable      `json:"include,omitempty"`
	Instructions       string            `json:"instructions,omitempty"`
	MaxOutputTokens    *int              `json:"max_output_tokens,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	ParallelToolCalls  *bool             `json:"parallel_tool_calls,omitempty"`
	PreviousResponseID string            `json:"previous_response_id,omitempty"`
	Reasoning          *ReasoningConfig  `json:"reasoning,omitempty"`
	Store              *bool             `json:"store,omitempty"`
	Stream             bool              `json:"stream,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	Text               *TextConfig       `json:"text,omitempty"`
	ToolChoice         *ToolChoice       `json:"tool_choice,omitempty"`
	Tools              []Tool            `json:"tools,omitempty"`
	TopP               *float64          `json:"top_p,omitempty"`
	Truncation         string            `json:"truncation,omitempty"`
	User               string            `json:"user,omitempty"`
}

// ResolveStore returns the effective store value, defaulting to true when nil.
func (r *CreateResponseRequest) ResolveStore() bool {
	if r.Store != nil {
		return *r.Store
	}
	return true
}

// ResolveParallelToolCalls returns the effective parallel_tool_calls value,
// defaulting to true when nil.
func (r *CreateResponseRequest) ResolveParallelToolCalls() bool {
	if r.ParallelToolCalls != nil {
		return *r.ParallelToolCalls
	}
	return true
}
