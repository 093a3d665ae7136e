package api

import (
	"encoding/json"
	"testing"
)

func TestResponseExplicitNulls(t *testing.T) {
	resp := Response{
		ID:         NewResponseID(),
		Object:     ResponseObjectType,
		CreatedAt:  1735689600,
		Status:     ResponseStatusInProgress,
		Model:      "gpt-test",
		Output:     []Item{},
		Tools:      []Tool{},
		ToolChoice: ToolChoiceAuto,
		Truncation: TruncationDisabled,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal map error: %v", err)
	}

	// Nullable fields are present with explicit null, never omitted.
	for _, field := range []string{
		"error", "incomplete_details", "instructions", "max_output_tokens",
		"metadata", "previous_response_id", "reasoning", "temperature",
		"text", "top_p", "usage",
	} {
		v, ok := m[field]
		if !ok {
			t.Errorf("field %q omitted, want explicit null", field)
			continue
		}
		if v != nil {
			t.Errorf("field %q = %v, want null", field, v)
		}
	}

	// Output and tools serialize as empty arrays, not null.
	if v, ok := m["output"].([]any); !ok || len(v) != 0 {
		t.Errorf("output = %v, want []", m["output"])
	}
	if m["tool_choice"] != "auto" {
		t.Errorf("tool_choice = %v, want auto", m["tool_choice"])
	}
}

func TestErrorCodeClosedSet(t *testing.T) {
	valid := []ErrorCode{
		ErrServerError, ErrRateLimitExceeded, ErrInvalidPrompt,
		ErrVectorStoreTimeout, ErrInvalidImage, ErrImageFileNotFound,
	}
	for _, code := range valid {
		if !code.Valid() {
			t.Errorf("%q should be a valid error code", code)
		}
	}
	for _, code := range []ErrorCode{"", "panic", "timeout"} {
		if code.Valid() {
			t.Errorf("%q should not be a valid error code", code)
		}
	}
}

func TestOutputTextAnnotationsNeverNull(t *testing.T) {
	oc := OutputContent{Type: OutputContentTypeText, Text: "hi"}
	data, err := json.Marshal(oc)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal map error: %v", err)
	}
	if v, ok := m["annotations"].([]any); !ok || len(v) != 0 {
		t.Errorf("annotations = %v, want []", m["annotations"])
	}
}

func TestIsTerminalEvent(t *testing.T) {
	terminal := []StreamEventType{
		EventResponseCompleted, EventResponseIncomplete, EventResponseFailed, EventError,
	}
	for _, e := range terminal {
		if !IsTerminalEvent(e) {
			t.Errorf("%q should be terminal", e)
		}
	}
	for _, e := range []StreamEventType{
		EventResponseCreated, EventResponseInProgress, EventOutputItemAdded, EventOutputItemDone,
	} {
		if IsTerminalEvent(e) {
			t.Errorf("%q should not be terminal", e)
		}
	}
}
