package api

// StreamEventType identifies the type of a streaming event.
type StreamEventType string

// Lifecycle events track the response state machine; item events convey
// output items as they are appended and finalized.
const (
	EventResponseCreated    StreamEventType = "response.created"
	EventResponseInProgress StreamEventType = "response.in_progress"
	EventOutputItemAdded    StreamEventType = "response.output_item.added"
	EventOutputItemDone     StreamEventType = "response.output_item.done"
	EventResponseCompleted  StreamEventType = "response.completed"
	EventResponseIncomplete StreamEventType = "response.incomplete"
	EventResponseFailed     StreamEventType = "response.failed"
	EventError              StreamEventType = "error"
)

// terminalStreamEvents are the event types that end a streaming response.
var terminalStreamEvents = map[StreamEventType]bool{
	EventResponseCompleted:  true,
	EventResponseIncomplete: true,
	EventResponseFailed:     true,
	EventError:              true,
}

// IsTerminalEvent reports whether the event type ends a streaming response.
func IsTerminalEvent(t StreamEventType) bool {
	return terminalStreamEvents[t]
}

// StreamEvent represents a single server-sent event in a streaming response.
// Events are delivered to consumers in exactly the order they were produced;
// SequenceNumber increases monotonically from 0 within one response.
type StreamEvent struct {
	Type           StreamEventType `json:"type"`
	SequenceNumber int             `json:"sequence_number"`
	Response       *Response       `json:"response,omitempty"`
	Item           *Item           `json:"item,omitempty"`
	ItemID         string          `json:"item_id,omitempty"`
	OutputIndex    int             `json:"output_index,omitempty"`
	Error          *ResponseError  `json:"error,omitempty"`
}
