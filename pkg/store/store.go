// Package store defines the response store collaborator used for
// conversation chaining via previous_response_id. Implementations persist
// finished responses together with the input that produced them, so a later
// request can splice the full prior conversation back in.
package store

import (
	"context"
	"errors"

	"github.com/antiphon-dev/antiphon/pkg/api"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a response does not exist or has been deleted.
	ErrNotFound = errors.New("response not found")

	// ErrConflict is returned when a response with the given ID already exists.
	ErrConflict = errors.New("response already exists")
)

// Record pairs a stored response with the input items that produced it.
// The wire response object does not carry its input, but chain
// reconstruction needs both sides of each turn.
type Record struct {
	Response *api.Response
	Input    []api.Item
}

// ResponseStore persists finished responses for conversation chaining.
// Implementations must be safe for concurrent use.
type ResponseStore interface {
	// SaveResponse stores a record under its response ID. Returns
	// ErrConflict if the ID is already present.
	SaveResponse(ctx context.Context, rec *Record) error

	// GetResponse retrieves a record by response ID. Returns ErrNotFound
	// if it does not exist or has been deleted.
	GetResponse(ctx context.Context, id string) (*Record, error)

	// GetResponseForChain retrieves a record for chain reconstruction.
	// Deleted responses are still returned so existing chains stay intact.
	GetResponseForChain(ctx context.Context, id string) (*Record, error)

	// DeleteResponse removes a response from retrieval. Chain lookups
	// continue to see it.
	DeleteResponse(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
