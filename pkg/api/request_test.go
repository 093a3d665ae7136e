package api

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInputItemsStringNormalization(t *testing.T) {
	var req CreateResponseRequest
	data := []byte(`{"model":"gpt-test","input":"hello"}`)
	if err := json.Unmarshal(data, &req); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if len(req.Input) != 1 {
		t.Fatalf("got %d input items, want 1", len(req.Input))
	}
	item := req.Input[0]
	if item.Type != ItemTypeMessage || item.Message == nil {
		t.Fatalf("item = %+v, want message", item)
	}
	if item.Message.Role != RoleUser {
		t.Errorf("role = %q, want user", item.Message.Role)
	}
	if len(item.Message.Content) != 1 {
		t.Fatalf("got %d content parts, want 1", len(item.Message.Content))
	}
	part := item.Message.Content[0]
	if part.Type != ContentTypeInputText || part.Text != "hello" {
		t.Errorf("part = %+v, want input_text 'hello'", part)
	}

	// The canonical form re-encodes as an array, not the bare string.
	out, err := json.Marshal(req.Input)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.HasPrefix(string(out), "[") {
		t.Errorf("canonical input encoding = %s, want array", out)
	}
}

func TestInputItemsArrayPreservesOrder(t *testing.T) {
	data := []byte(`[
		{"type":"message","role":"user","content":"first"},
		{"type":"function_call","call_id":"c1","name":"f","arguments":"{}"},
		{"type":"function_call_output","call_id":"c1","output":"ok"}
	]`)
	var in InputItems
	if err := json.Unmarshal(data, &in); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	wantTypes := []ItemType{ItemTypeMessage, ItemTypeFunctionCall, ItemTypeFunctionCallOutput}
	if len(in) != len(wantTypes) {
		t.Fatalf("got %d items, want %d", len(in), len(wantTypes))
	}
	for i, want := range wantTypes {
		if in[i].Type != want {
			t.Errorf("input[%d].type = %q, want %q", i, in[i].Type, want)
		}
	}
}

func TestInputItemsErrorCarriesPosition(t *testing.T) {
	data := []byte(`[
		{"type":"message","role":"user","content":"ok"},
		{"type":"message","content":"missing role"}
	]`)
	var in InputItems
	err := json.Unmarshal(data, &in)
	verr := wantValidationError(t, err, KindMissingRequiredField)
	if !strings.HasPrefix(verr.Param, "input[1]") {
		t.Errorf("param = %q, want input[1] prefix", verr.Param)
	}
}

func TestInputItemsRejectsOtherShapes(t *testing.T) {
	for _, data := range []string{`42`, `{"type":"message"}`, `true`} {
		var in InputItems
		err := json.Unmarshal([]byte(data), &in)
		wantValidationError(t, err, KindOutOfRange)
	}
}

func TestRequestDefaults(t *testing.T) {
	var req CreateResponseRequest
	if !req.ResolveStore() {
		t.Error("store should default to true")
	}
	if !req.ResolveParallelToolCalls() {
		t.Error("parallel_tool_calls should default to true")
	}

	f := false
	req.Store = &f
	req.ParallelToolCalls = &f
	if req.ResolveStore() {
		t.Error("explicit store=false not honored")
	}
	if req.ResolveParallelToolCalls() {
		t.Error("explicit parallel_tool_calls=false not honored")
	}
}

func TestRequestRoundTrip(t *testing.T) {
	temp := 0.7
	topP := 0.9
	maxTokens := 1024
	stored := true
	req := CreateResponseRequest{
		Input:             InputItems{NewUserMessage("hi")},
		Model:             "gpt-test",
		Include:           []Includable{IncludeFileSearchResults},
		Instructions:      "Be brief.",
		MaxOutputTokens:   &maxTokens,
		Metadata:          map[string]string{"trace": "abc"},
		ParallelToolCalls: &stored,
		Store:             &stored,
		Stream:            true,
		Temperature:       &temp,
		TopP:              &topP,
		Truncation:        TruncationAuto,
		User:              "user-1",
		ToolChoice:        &ToolChoiceAuto,
		Tools: []Tool{
			{Type: ToolTypeFunction, Function: &FunctionTool{Name: "f", Parameters: json.RawMessage(`{}`)}},
		},
	}
	got := roundTrip(t, req)
	assertDeepEqual(t, got, req)
}
