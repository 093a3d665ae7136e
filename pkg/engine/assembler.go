package engine

import (
	"fmt"
	"time"

	"github.com/antiphon-dev/antiphon/pkg/api"
)

// EventSink receives assembler stream events in emission order. A nil sink
// disables event emission (non-streaming assembly).
type EventSink func(api.StreamEvent) error

// Assembler is a single-writer state machine that owns one Response for its
// whole lifecycle. It appends output items in arrival order, never reorders
// or retracts them, and refuses invalid lifecycle transitions. All methods
// must be called from a single goroutine.
type Assembler struct {
	resp    *api.Response
	sink    EventSink
	seq     int
	usage   *api.Usage
	indexOf map[string]int // item ID -> position in resp.Output
}

// NewAssembler creates an assembler for the given validated request. The
// response starts in_progress and echoes the request's generation knobs.
func NewAssembler(req *api.CreateResponseRequest, sink EventSink) *Assembler {
	resp := &api.Response{
		ID:                api.NewResponseID(),
		Object:            api.ResponseObjectType,
		CreatedAt:         time.Now().Unix(),
		Status:            api.ResponseStatusInProgress,
		Model:             req.Model,
		Output:            []api.Item{},
		ParallelToolCalls: req.ResolveParallelToolCalls(),
		Store:             req.ResolveStore(),
		MaxOutputTokens:   req.MaxOutputTokens,
		Metadata:          req.Metadata,
		Reasoning:         req.Reasoning,
		Temperature:       req.Temperature,
		Text:              req.Text,
		Tools:             req.Tools,
		TopP:              req.TopP,
		Truncation:        req.Truncation,
		User:              req.User,
	}
	if resp.Tools == nil {
		resp.Tools = []api.Tool{}
	}
	if resp.Truncation == "" {
		resp.Truncation = api.TruncationDisabled
	}
	if req.Instructions != "" {
		resp.Instructions = &req.Instructions
	}
	if req.PreviousResponseID != "" {
		resp.PreviousResponseID = &req.PreviousResponseID
	}
	if req.ToolChoice != nil {
		resp.ToolChoice = *req.ToolChoice
	} else {
		resp.ToolChoice = api.ToolChoiceAuto
	}

	return &Assembler{
		resp:    resp,
		sink:    sink,
		indexOf: make(map[string]int),
	}
}

// Response returns the assembled response. The snapshot reflects every
// operation applied so far; callers must not mutate it.
func (a *Assembler) Response() *api.Response {
	return a.resp
}

// Start emits the response.created and response.in_progress lifecycle events.
// Call it once, before any item is appended, on streaming paths.
func (a *Assembler) Start() error {
	if err := a.emit(api.StreamEvent{Type: api.EventResponseCreated, Response: a.resp}); err != nil {
		return err
	}
	return a.emit(api.StreamEvent{Type: api.EventResponseInProgress, Response: a.resp})
}

// AppendItem appends an output item in arrival order. An item without an ID
// is assigned one, and a model-issued call without a call_id likewise. Items
// may arrive already terminal (bulk generation) or in_progress for later
// completion via CompleteItem.
func (a *Assembler) AppendItem(item *api.Item) error {
	if a.resp.Status.IsTerminal() {
		return fmt.Errorf("append item: response already %s", a.resp.Status)
	}
	if item.Status != "" {
		if err := api.ValidateItemTransition("", item.Status); err != nil {
			return fmt.Errorf("append item: %w", err)
		}
	}
	if item.ID == "" {
		item.ID = api.NewItemID()
	}
	// Outputs echo an existing call_id; only fresh calls get one minted.
	switch {
	case item.FunctionCall != nil && item.FunctionCall.CallID == "":
		item.FunctionCall.CallID = api.NewCallID()
	case item.ComputerCall != nil && item.ComputerCall.CallID == "":
		item.ComputerCall.CallID = api.NewCallID()
	}
	if _, dup := a.indexOf[item.ID]; dup {
		return fmt.Errorf("append item: duplicate item id %s", item.ID)
	}

	index := len(a.resp.Output)
	a.resp.Output = append(a.resp.Output, *item)
	a.indexOf[item.ID] = index

	return a.emit(api.StreamEvent{
		Type:        api.EventOutputItemAdded,
		Item:        &a.resp.Output[index],
		OutputIndex: index,
	})
}

// CompleteItem moves a previously appended item to a terminal status and
// emits output_item.done.
func (a *Assembler) CompleteItem(itemID string, status api.ItemStatus) error {
	if a.resp.Status.IsTerminal() {
		return fmt.Errorf("complete item: response already %s", a.resp.Status)
	}
	index, ok := a.indexOf[itemID]
	if !ok {
		return fmt.Errorf("complete item: unknown item id %s", itemID)
	}
	if !status.IsTerminal() {
		return fmt.Errorf("complete item: %s is not a terminal item status", status)
	}
	item := &a.resp.Output[index]
	if err := api.ValidateItemTransition(item.Status, status); err != nil {
		return fmt.Errorf("complete item: %w", err)
	}
	item.Status = status

	return a.emit(api.StreamEvent{
		Type:        api.EventOutputItemDone,
		Item:        item,
		ItemID:      itemID,
		OutputIndex: index,
	})
}

// SetUsage records token usage. It is attached to the response when a
// terminal status is reached; the response never carries usage in_progress.
func (a *Assembler) SetUsage(usage *api.Usage) error {
	if a.resp.Status.IsTerminal() {
		return fmt.Errorf("set usage: response already %s", a.resp.Status)
	}
	a.usage = usage
	return nil
}

// Complete finalizes the response as completed. Usage must have been set and
// every output item must have reached a terminal status.
func (a *Assembler) Complete() error {
	if a.usage == nil {
		return fmt.Errorf("complete: usage is required on a completed response")
	}
	if id, status, open := a.openItem(); open {
		return fmt.Errorf("complete: item %s is still %s", id, status)
	}
	if err := api.ValidateResponseTransition(a.resp.Status, api.ResponseStatusCompleted); err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	a.resp.Status = api.ResponseStatusCompleted
	a.resp.Usage = a.usage
	return a.emit(api.StreamEvent{Type: api.EventResponseCompleted, Response: a.resp})
}

// MarkIncomplete finalizes the response as incomplete with the given reason.
// A reason and usage are both required.
func (a *Assembler) MarkIncomplete(reason api.IncompleteReason) error {
	if reason == "" {
		return fmt.Errorf("mark incomplete: an incomplete response requires a reason")
	}
	if a.usage == nil {
		return fmt.Errorf("mark incomplete: usage is required on an incomplete response")
	}
	if id, status, open := a.openItem(); open {
		return fmt.Errorf("mark incomplete: item %s is still %s", id, status)
	}
	if err := api.ValidateResponseTransition(a.resp.Status, api.ResponseStatusIncomplete); err != nil {
		return fmt.Errorf("mark incomplete: %w", err)
	}
	a.resp.Status = api.ResponseStatusIncomplete
	a.resp.IncompleteDetails = &api.IncompleteDetails{Reason: reason}
	a.resp.Usage = a.usage
	return a.emit(api.StreamEvent{Type: api.EventResponseIncomplete, Response: a.resp})
}

// Fail finalizes the response as failed with a structured error. The code
// must belong to the closed generation error code set. Failed is reachable
// from any non-terminal state; usage is attached if it was reported.
func (a *Assembler) Fail(code api.ErrorCode, message string) error {
	if !code.Valid() {
		return fmt.Errorf("fail: %q is not a valid error code", code)
	}
	if err := api.ValidateResponseTransition(a.resp.Status, api.ResponseStatusFailed); err != nil {
		return fmt.Errorf("fail: %w", err)
	}
	a.resp.Status = api.ResponseStatusFailed
	a.resp.Error = &api.ResponseError{Code: code, Message: message}
	a.resp.Usage = a.usage
	return a.emit(api.StreamEvent{Type: api.EventResponseFailed, Response: a.resp})
}

// Cancel aborts an in-flight response. The closed error code set has no
// dedicated cancellation code, so it surfaces as server_error.
func (a *Assembler) Cancel() error {
	return a.Fail(api.ErrServerError, "generation cancelled")
}

// Apply dispatches one generator event to the matching operation.
func (a *Assembler) Apply(ev Event) error {
	switch ev.Kind {
	case EventAppendItem:
		if ev.Item == nil {
			return fmt.Errorf("append_item event without item")
		}
		return a.AppendItem(ev.Item)
	case EventItemStatus:
		return a.CompleteItem(ev.ItemID, ev.Status)
	case EventSetUsage:
		return a.SetUsage(ev.Usage)
	case EventSetError:
		return a.Fail(ev.Code, ev.Message)
	case EventFinalize:
		switch ev.FinalStatus {
		case api.ResponseStatusCompleted:
			return a.Complete()
		case api.ResponseStatusIncomplete:
			return a.MarkIncomplete(ev.Reason)
		case api.ResponseStatusFailed:
			if a.resp.Error == nil {
				return fmt.Errorf("finalize: a failed response requires an error")
			}
			return nil
		default:
			return fmt.Errorf("finalize: %q is not a terminal status", ev.FinalStatus)
		}
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

// openItem returns the first output item still in a non-terminal status.
func (a *Assembler) openItem() (string, api.ItemStatus, bool) {
	for i := range a.resp.Output {
		status := a.resp.Output[i].Status
		if status == api.ItemStatusInProgress || status == api.ItemStatusSearching {
			return a.resp.Output[i].ID, status, true
		}
	}
	return "", "", false
}

func (a *Assembler) emit(ev api.StreamEvent) error {
	if a.sink == nil {
		return nil
	}
	ev.SequenceNumber = a.seq
	a.seq++
	return a.sink(ev)
}
