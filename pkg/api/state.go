package api

import "fmt"

// ValidateResponseTransition checks whether a response status transition is
// valid. An empty "from" status represents the pending state before
// generation starts. Failed is reachable from any non-terminal state;
// completed, incomplete, and failed are terminal.
func ValidateResponseTransition(from, to ResponseStatus) *ValidationError {
	valid := map[ResponseStatus][]ResponseStatus{
		"":                       {ResponseStatusInProgress, ResponseStatusFailed},
		ResponseStatusInProgress: {ResponseStatusCompleted, ResponseStatusIncomplete, ResponseStatusFailed},
	}

	allowed, exists := valid[from]
	if !exists {
		return NewOutOfRange("status",
			fmt.Sprintf("invalid transition from %s to %s", from, to))
	}

	for _, s := range allowed {
		if s == to {
			return nil
		}
	}

	return NewOutOfRange("status",
		fmt.Sprintf("invalid transition from %s to %s", from, to))
}

// ValidateItemTransition checks whether an item status transition is valid.
// Items may be appended already terminal (bulk generation) or start
// in_progress and be finalized later. Search calls pass through the
// transient "searching" status.
func ValidateItemTransition(from, to ItemStatus) *ValidationError {
	valid := map[ItemStatus][]ItemStatus{
		"": {ItemStatusInProgress, ItemStatusSearching,
			ItemStatusCompleted, ItemStatusIncomplete},
		ItemStatusInProgress: {ItemStatusSearching, ItemStatusCompleted,
			ItemStatusIncomplete, ItemStatusFailed},
		ItemStatusSearching: {ItemStatusCompleted, ItemStatusIncomplete, ItemStatusFailed},
	}

	allowed, exists := valid[from]
	if !exists {
		return NewOutOfRange("status",
			fmt.Sprintf("invalid transition from %s to %s", from, to))
	}

	for _, s := range allowed {
		if s == to {
			return nil
		}
	}

	return NewOutOfRange("status",
		fmt.Sprintf("invalid transition from %s to %s", from, to))
}
