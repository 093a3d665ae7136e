package api

import (
	"encoding/json"
	"fmt"
)

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
	RoleDeveloper MessageRole = "developer"
)

// ItemType represents the type of an item in a conversation.
type ItemType string

const (
	ItemTypeMessage            ItemType = "message"
	ItemTypeFileSearchCall     ItemType = "file_search_call"
	ItemTypeWebSearchCall      ItemType = "web_search_call"
	ItemTypeComputerCall       ItemType = "computer_call"
	ItemTypeComputerCallOutput ItemType = "computer_call_output"
	ItemTypeFunctionCall       ItemType = "function_call"
	ItemTypeFunctionCallOutput ItemType = "function_call_output"
	ItemTypeReasoning          ItemType = "reasoning"
	ItemTypeItemReference      ItemType = "item_reference"
)

// ItemStatus represents the processing status of an item. Search calls
// additionally use the transient "searching" status.
type ItemStatus string

const (
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusSearching  ItemStatus = "searching"
	ItemStatusCompleted  ItemStatus = "completed"
	ItemStatusIncomplete ItemStatus = "incomplete"
	ItemStatusFailed     ItemStatus = "failed"
)

// IsTerminal reports whether the status ends an item's lifecycle.
func (s ItemStatus) IsTerminal() bool {
	switch s {
	case ItemStatusCompleted, ItemStatusIncomplete, ItemStatusFailed:
		return true
	}
	return false
}

// MessageData holds the data specific to a message item. Content carries
// user-supplied input parts; Output carries assistant-generated parts.
// Exactly one of the two is populated, selected by Role.
type MessageData struct {
	Role    MessageRole     `json:"role"`
	Content []ContentPart   `json:"content,omitempty"`
	Output  []OutputContent `json:"output,omitempty"`
}

// FileSearchResult is one retrieved chunk from a file search call.
type FileSearchResult struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	FileID     string         `json:"file_id,omitempty"`
	Filename   string         `json:"filename,omitempty"`
	Score      float64        `json:"score,omitempty"`
	Text       string         `json:"text,omitempty"`
}

// FileSearchCallData holds the data specific to a file_search_call item.
type FileSearchCallData struct {
	Queries []string           `json:"queries"`
	Results []FileSearchResult `json:"results,omitempty"`
}

// ComputerCallData holds the data specific to a computer_call item. It owns
// exactly one Action and the safety checks that must be acknowledged before
// the matching output is accepted.
type ComputerCallData struct {
	CallID              string        `json:"call_id"`
	Action              Action        `json:"action"`
	PendingSafetyChecks []SafetyCheck `json:"pending_safety_checks"`
}

// ComputerCallOutputData holds the data specific to a computer_call_output
// item: the screenshot produced for a computer call.
type ComputerCallOutputData struct {
	CallID                   string             `json:"call_id"`
	Output                   ComputerScreenshot `json:"output"`
	AcknowledgedSafetyChecks []SafetyCheck      `json:"acknowledged_safety_checks,omitempty"`
}

// FunctionCallData holds the data specific to a function_call item.
type FunctionCallData struct {
	Name      string `json:"name"`
	CallID    string `json:"call_id"`
	Arguments string `json:"arguments"`
}

// FunctionCallOutputData holds the data specific to a function_call_output item.
type FunctionCallOutputData struct {
	CallID string `json:"call_id"`
	Output string `json:"output"`
}

// SummaryPart is one ordered fragment of a reasoning summary. Its type
// discriminator is always "summary_text".
type SummaryPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SummaryTextType is the sole discriminator value for reasoning summary parts.
const SummaryTextType = "summary_text"

// ReasoningData holds the data specific to a reasoning item.
type ReasoningData struct {
	Summary []SummaryPart `json:"summary"`
}

// Item represents a single item in a conversation. The Type field selects
// which of the payload pointers is populated; exactly one is set.
type Item struct {
	ID     string     `json:"-"`
	Type   ItemType   `json:"-"`
	Status ItemStatus `json:"-"`

	Message            *MessageData            `json:"-"`
	FileSearchCall     *FileSearchCallData     `json:"-"`
	WebSearchCall      bool                    `json:"-"` // web_search_call has no payload beyond id/status
	ComputerCall       *ComputerCallData       `json:"-"`
	ComputerCallOutput *ComputerCallOutputData `json:"-"`
	FunctionCall       *FunctionCallData       `json:"-"`
	FunctionCallOutput *FunctionCallOutputData `json:"-"`
	Reasoning          *ReasoningData          `json:"-"`
}

// itemWireBase contains fields common to all item wire shapes.
type itemWireBase struct {
	Type   ItemType   `json:"type"`
	ID     string     `json:"id,omitempty"`
	Status ItemStatus `json:"status,omitempty"`
}

// MarshalJSON serializes an Item to the flat wire format: type-specific
// fields at the top level next to the discriminator. Fields foreign to the
// item's variant are never emitted.
func (item Item) MarshalJSON() ([]byte, error) {
	base := itemWireBase{Type: item.Type, ID: item.ID, Status: item.Status}

	switch item.Type {
	case ItemTypeMessage:
		return item.marshalMessage(base)
	case ItemTypeFileSearchCall:
		w := struct {
			itemWireBase
			Queries []string           `json:"queries"`
			Results []FileSearchResult `json:"results,omitempty"`
		}{itemWireBase: base}
		if item.FileSearchCall != nil {
			w.Queries = item.FileSearchCall.Queries
			w.Results = item.FileSearchCall.Results
		}
		if w.Queries == nil {
			w.Queries = []string{}
		}
		return json.Marshal(w)
	case ItemTypeWebSearchCall:
		return json.Marshal(base)
	case ItemTypeComputerCall:
		w := struct {
			itemWireBase
			CallID              string        `json:"call_id"`
			Action              Action        `json:"action"`
			PendingSafetyChecks []SafetyCheck `json:"pending_safety_checks"`
		}{itemWireBase: base}
		if item.ComputerCall != nil {
			w.CallID = item.ComputerCall.CallID
			w.Action = item.ComputerCall.Action
			w.PendingSafetyChecks = item.ComputerCall.PendingSafetyChecks
		}
		if w.PendingSafetyChecks == nil {
			w.PendingSafetyChecks = []SafetyCheck{}
		}
		return json.Marshal(w)
	case ItemTypeComputerCallOutput:
		w := struct {
			itemWireBase
			CallID                   string             `json:"call_id"`
			Output                   ComputerScreenshot `json:"output"`
			AcknowledgedSafetyChecks []SafetyCheck      `json:"acknowledged_safety_checks,omitempty"`
		}{itemWireBase: base}
		if item.ComputerCallOutput != nil {
			w.CallID = item.ComputerCallOutput.CallID
			w.Output = item.ComputerCallOutput.Output
			w.AcknowledgedSafetyChecks = item.ComputerCallOutput.AcknowledgedSafetyChecks
		}
		return json.Marshal(w)
	case ItemTypeFunctionCall:
		w := struct {
			itemWireBase
			CallID    string `json:"call_id"`
			Name      string `json:"name"`
			Arguments string `json:"arguments"`
		}{itemWireBase: base}
		if item.FunctionCall != nil {
			w.CallID = item.FunctionCall.CallID
			w.Name = item.FunctionCall.Name
			w.Arguments = item.FunctionCall.Arguments
		}
		return json.Marshal(w)
	case ItemTypeFunctionCallOutput:
		w := struct {
			itemWireBase
			CallID string `json:"call_id"`
			Output string `json:"output"`
		}{itemWireBase: base}
		if item.FunctionCallOutput != nil {
			w.CallID = item.FunctionCallOutput.CallID
			w.Output = item.FunctionCallOutput.Output
		}
		return json.Marshal(w)
	case ItemTypeReasoning:
		w := struct {
			itemWireBase
			Summary []SummaryPart `json:"summary"`
		}{itemWireBase: base}
		if item.Reasoning != nil {
			w.Summary = item.Reasoning.Summary
		}
		if w.Summary == nil {
			w.Summary = []SummaryPart{}
		}
		return json.Marshal(w)
	case ItemTypeItemReference:
		// An item_reference is an opaque back-reference: just type and id.
		return json.Marshal(struct {
			Type ItemType `json:"type"`
			ID   string   `json:"id"`
		}{item.Type, item.ID})
	default:
		return nil, NewUnknownVariant("type", string(item.Type))
	}
}

// marshalMessage produces the flat message wire format:
// {type, id, status, role, content: [...]}. Assistant messages carry output
// content parts; all other roles carry input content parts.
func (item Item) marshalMessage(base itemWireBase) ([]byte, error) {
	w := struct {
		itemWireBase
		Role    MessageRole `json:"role"`
		Content []any       `json:"content"`
	}{itemWireBase: base, Content: []any{}}

	if item.Message != nil {
		w.Role = item.Message.Role
		for _, part := range item.Message.Output {
			w.Content = append(w.Content, part)
		}
		if len(item.Message.Output) == 0 {
			for _, part := range item.Message.Content {
				w.Content = append(w.Content, part)
			}
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON deserializes an Item from the flat wire format. The type
// discriminator is mandatory and must name a known variant; unknown extra
// fields are ignored.
func (item *Item) UnmarshalJSON(data []byte) error {
	var base struct {
		Type   *ItemType  `json:"type"`
		ID     string     `json:"id"`
		Status ItemStatus `json:"status"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	if base.Type == nil {
		return NewMissingDiscriminator("type")
	}

	*item = Item{ID: base.ID, Type: *base.Type, Status: base.Status}

	switch *base.Type {
	case ItemTypeMessage:
		return item.unmarshalMessage(data)
	case ItemTypeFileSearchCall:
		var w struct {
			Queries []string           `json:"queries"`
			Results []FileSearchResult `json:"results"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.Queries == nil {
			return NewMissingRequiredField("queries")
		}
		item.FileSearchCall = &FileSearchCallData{Queries: w.Queries, Results: w.Results}
	case ItemTypeWebSearchCall:
		item.WebSearchCall = true
	case ItemTypeComputerCall:
		var w struct {
			CallID              string          `json:"call_id"`
			Action              json.RawMessage `json:"action"`
			PendingSafetyChecks []SafetyCheck   `json:"pending_safety_checks"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.CallID == "" {
			return NewMissingRequiredField("call_id")
		}
		if w.Action == nil {
			return NewMissingRequiredField("action")
		}
		var action Action
		if err := json.Unmarshal(w.Action, &action); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				return verr.At("action")
			}
			return err
		}
		item.ComputerCall = &ComputerCallData{
			CallID:              w.CallID,
			Action:              action,
			PendingSafetyChecks: w.PendingSafetyChecks,
		}
	case ItemTypeComputerCallOutput:
		var w struct {
			CallID                   string              `json:"call_id"`
			Output                   *ComputerScreenshot `json:"output"`
			AcknowledgedSafetyChecks []SafetyCheck       `json:"acknowledged_safety_checks"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.CallID == "" {
			return NewMissingRequiredField("call_id")
		}
		if w.Output == nil {
			return NewMissingRequiredField("output")
		}
		if w.Output.Type != ComputerScreenshotType {
			return NewUnknownVariant("output.type", w.Output.Type)
		}
		item.ComputerCallOutput = &ComputerCallOutputData{
			CallID:                   w.CallID,
			Output:                   *w.Output,
			AcknowledgedSafetyChecks: w.AcknowledgedSafetyChecks,
		}
	case ItemTypeFunctionCall:
		var w struct {
			CallID    string  `json:"call_id"`
			Name      string  `json:"name"`
			Arguments *string `json:"arguments"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.CallID == "" {
			return NewMissingRequiredField("call_id")
		}
		if w.Name == "" {
			return NewMissingRequiredField("name")
		}
		if w.Arguments == nil {
			return NewMissingRequiredField("arguments")
		}
		item.FunctionCall = &FunctionCallData{CallID: w.CallID, Name: w.Name, Arguments: *w.Arguments}
	case ItemTypeFunctionCallOutput:
		var w struct {
			CallID string  `json:"call_id"`
			Output *string `json:"output"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.CallID == "" {
			return NewMissingRequiredField("call_id")
		}
		if w.Output == nil {
			return NewMissingRequiredField("output")
		}
		item.FunctionCallOutput = &FunctionCallOutputData{CallID: w.CallID, Output: *w.Output}
	case ItemTypeReasoning:
		var w struct {
			Summary []SummaryPart `json:"summary"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		if w.Summary == nil {
			return NewMissingRequiredField("summary")
		}
		for i, part := range w.Summary {
			if part.Type != SummaryTextType {
				return NewUnknownVariant(fmt.Sprintf("summary[%d].type", i), part.Type)
			}
		}
		item.Reasoning = &ReasoningData{Summary: w.Summary}
	case ItemTypeItemReference:
		if base.ID == "" {
			return NewMissingRequiredField("id")
		}
	default:
		return NewUnknownVariant("type", string(*base.Type))
	}
	return nil
}

// unmarshalMessage handles the message item wire form. Content may be a bare
// string (shorthand for a single input_text part) or a part array whose
// element type depends on the role: assistant messages carry output parts,
// other roles carry input parts.
func (item *Item) unmarshalMessage(data []byte) error {
	var w struct {
		Role    *MessageRole    `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Role == nil {
		return NewMissingRequiredField("role")
	}
	switch *w.Role {
	case RoleUser, RoleAssistant, RoleSystem, RoleDeveloper:
	default:
		return NewOutOfRange("role",
			"role must be one of 'user', 'assistant', 'system', or 'developer'")
	}
	if w.Content == nil {
		return NewMissingRequiredField("content")
	}

	msg := &MessageData{Role: *w.Role}

	var text string
	if err := json.Unmarshal(w.Content, &text); err == nil {
		msg.Content = []ContentPart{{Type: ContentTypeInputText, Text: text}}
		item.Message = msg
		return nil
	}

	if *w.Role == RoleAssistant {
		var parts []OutputContent
		if err := json.Unmarshal(w.Content, &parts); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				return verr.At("content")
			}
			return err
		}
		msg.Output = parts
	} else {
		var parts []ContentPart
		if err := json.Unmarshal(w.Content, &parts); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				return verr.At("content")
			}
			return err
		}
		msg.Content = parts
	}
	item.Message = msg
	return nil
}

// NewUserMessage creates a message item wrapping a bare text string as a
// single user input_text content part.
func NewUserMessage(text string) Item {
	return Item{
		Type: ItemTypeMessage,
		Message: &MessageData{
			Role:    RoleUser,
			Content: []ContentPart{{Type: ContentTypeInputText, Text: text}},
		},
	}
}
