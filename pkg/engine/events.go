package engine

import "github.com/antiphon-dev/antiphon/pkg/api"

// EventKind identifies a generator event.
type EventKind string

const (
	// EventAppendItem appends a new output item to the response.
	EventAppendItem EventKind = "append_item"
	// EventItemStatus moves a previously appended item to a new status.
	EventItemStatus EventKind = "item_status"
	// EventSetUsage records token usage, attached when the response
	// reaches a terminal status.
	EventSetUsage EventKind = "set_usage"
	// EventSetError records a generation error and fails the response.
	EventSetError EventKind = "set_error"
	// EventFinalize moves the response to a terminal status.
	EventFinalize EventKind = "finalize"
)

// Event is one unit of progress reported by a Generator. Only the fields
// belonging to the Kind are read.
type Event struct {
	Kind EventKind

	// append_item
	Item *api.Item

	// item_status
	ItemID string
	Status api.ItemStatus

	// set_usage
	Usage *api.Usage

	// set_error
	Code    api.ErrorCode
	Message string

	// finalize
	FinalStatus api.ResponseStatus
	Reason      api.IncompleteReason
}

// AppendItem builds an append_item event.
func AppendItem(item *api.Item) Event {
	return Event{Kind: EventAppendItem, Item: item}
}

// ItemStatus builds an item_status event.
func ItemStatus(itemID string, status api.ItemStatus) Event {
	return Event{Kind: EventItemStatus, ItemID: itemID, Status: status}
}

// SetUsage builds a set_usage event.
func SetUsage(usage *api.Usage) Event {
	return Event{Kind: EventSetUsage, Usage: usage}
}

// SetError builds a set_error event.
func SetError(code api.ErrorCode, message string) Event {
	return Event{Kind: EventSetError, Code: code, Message: message}
}

// Finalize builds a finalize event for completed or failed responses.
func Finalize(status api.ResponseStatus) Event {
	return Event{Kind: EventFinalize, FinalStatus: status}
}

// FinalizeIncomplete builds a finalize event carrying the incomplete reason.
func FinalizeIncomplete(reason api.IncompleteReason) Event {
	return Event{
		Kind:        EventFinalize,
		FinalStatus: api.ResponseStatusIncomplete,
		Reason:      reason,
	}
}
