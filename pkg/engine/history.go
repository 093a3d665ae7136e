package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/store"
)

// spliceHistory reconstructs the conversation items from a chain of stored
// responses. It follows previous_response_id links iteratively, detects
// cycles, bounds chain length, and returns the items in chronological order
// (oldest first), each turn's input followed by its output.
func spliceHistory(ctx context.Context, st store.ResponseStore, responseID string, maxChain int) ([]api.Item, error) {
	if st == nil {
		return nil, api.NewOutOfRange("previous_response_id",
			"conversation chaining requires a response store")
	}

	var chain []*store.Record
	visited := make(map[string]bool)

	currentID := responseID
	for currentID != "" {
		if visited[currentID] {
			return nil, api.NewOutOfRange("previous_response_id",
				"cycle detected in response chain")
		}
		if len(chain) >= maxChain {
			return nil, api.NewOutOfRange("previous_response_id",
				fmt.Sprintf("response chain exceeds maximum length of %d", maxChain))
		}
		visited[currentID] = true

		rec, err := st.GetResponseForChain(ctx, currentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, api.NewOutOfRange("previous_response_id",
					"response "+currentID+" not found")
			}
			return nil, fmt.Errorf("load response %s: %w", currentID, err)
		}

		chain = append(chain, rec)
		if rec.Response.PreviousResponseID != nil {
			currentID = *rec.Response.PreviousResponseID
		} else {
			currentID = ""
		}
	}

	// Reverse to chronological order (oldest first).
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var items []api.Item
	for _, rec := range chain {
		items = append(items, rec.Input...)
		items = append(items, rec.Response.Output...)
	}
	return items, nil
}
