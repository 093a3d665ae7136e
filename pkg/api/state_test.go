package api

import "testing"

func TestValidateResponseTransition(t *testing.T) {
	tests := []struct {
		from, to ResponseStatus
		valid    bool
	}{
		{"", ResponseStatusInProgress, true},
		{"", ResponseStatusFailed, true},
		{"", ResponseStatusCompleted, false},
		{ResponseStatusInProgress, ResponseStatusCompleted, true},
		{ResponseStatusInProgress, ResponseStatusIncomplete, true},
		{ResponseStatusInProgress, ResponseStatusFailed, true},
		{ResponseStatusInProgress, ResponseStatusInProgress, false},
		{ResponseStatusCompleted, ResponseStatusFailed, false},
		{ResponseStatusFailed, ResponseStatusInProgress, false},
		{ResponseStatusIncomplete, ResponseStatusCompleted, false},
	}
	for _, tt := range tests {
		err := ValidateResponseTransition(tt.from, tt.to)
		if tt.valid && err != nil {
			t.Errorf("%q -> %q should be valid: %v", tt.from, tt.to, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%q -> %q should be invalid", tt.from, tt.to)
		}
	}
}

func TestValidateItemTransition(t *testing.T) {
	tests := []struct {
		from, to ItemStatus
		valid    bool
	}{
		{"", ItemStatusInProgress, true},
		{"", ItemStatusCompleted, true},
		{"", ItemStatusSearching, true},
		{"", ItemStatusFailed, false},
		{ItemStatusInProgress, ItemStatusSearching, true},
		{ItemStatusInProgress, ItemStatusCompleted, true},
		{ItemStatusInProgress, ItemStatusFailed, true},
		{ItemStatusSearching, ItemStatusCompleted, true},
		{ItemStatusSearching, ItemStatusInProgress, false},
		{ItemStatusCompleted, ItemStatusInProgress, false},
		{ItemStatusFailed, ItemStatusCompleted, false},
	}
	for _, tt := range tests {
		err := ValidateItemTransition(tt.from, tt.to)
		if tt.valid && err != nil {
			t.Errorf("%q -> %q should be valid: %v", tt.from, tt.to, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%q -> %q should be invalid", tt.from, tt.to)
		}
	}
}

func TestResponseStatusIsTerminal(t *testing.T) {
	terminal := map[ResponseStatus]bool{
		ResponseStatusInProgress: false,
		ResponseStatusCompleted:  true,
		ResponseStatusIncomplete: true,
		ResponseStatusFailed:     true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%q.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestItemStatusIsTerminal(t *testing.T) {
	terminal := map[ItemStatus]bool{
		ItemStatusInProgress: false,
		ItemStatusSearching:  false,
		ItemStatusCompleted:  true,
		ItemStatusIncomplete: true,
		ItemStatusFailed:     true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%q.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
