package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/store"
)

func record(id string) *store.Record {
	return &store.Record{
		Response: &api.Response{
			ID:     id,
			Object: api.ResponseObjectType,
			Status: api.ResponseStatusCompleted,
			Model:  "gpt-test",
		},
		Input: []api.Item{api.NewUserMessage("hi")},
	}
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	rec := record("resp_a")
	if err := s.SaveResponse(ctx, rec); err != nil {
		t.Fatalf("SaveResponse error: %v", err)
	}

	got, err := s.GetResponse(ctx, "resp_a")
	if err != nil {
		t.Fatalf("GetResponse error: %v", err)
	}
	if got.Response.ID != "resp_a" || len(got.Input) != 1 {
		t.Errorf("got record %+v", got)
	}
}

func TestSaveConflict(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.SaveResponse(ctx, record("resp_a")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveResponse(ctx, record("resp_a")); !errors.Is(err, store.ErrConflict) {
		t.Errorf("second save err = %v, want ErrConflict", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := New(0)
	if _, err := s.GetResponse(context.Background(), "resp_missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteHidesButKeepsChain(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	if err := s.SaveResponse(ctx, record("resp_a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteResponse(ctx, "resp_a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.GetResponse(ctx, "resp_a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetResponse after delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetResponseForChain(ctx, "resp_a"); err != nil {
		t.Errorf("GetResponseForChain after delete err = %v, want nil", err)
	}

	if err := s.DeleteResponse(ctx, "resp_a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestLRUEviction(t *testing.T) {
	ctx := context.Background()
	s := New(2)

	for _, id := range []string{"resp_a", "resp_b", "resp_c"} {
		if err := s.SaveResponse(ctx, record(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if _, err := s.GetResponse(ctx, "resp_a"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("oldest entry should be evicted, err = %v", err)
	}
	for _, id := range []string{"resp_b", "resp_c"} {
		if _, err := s.GetResponse(ctx, id); err != nil {
			t.Errorf("entry %s should survive: %v", id, err)
		}
	}
}

func TestLRUAccessRefreshesRecency(t *testing.T) {
	ctx := context.Background()
	s := New(2)

	for _, id := range []string{"resp_a", "resp_b"} {
		if err := s.SaveResponse(ctx, record(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	// Reading resp_a makes resp_b the eviction candidate.
	if _, err := s.GetResponse(ctx, "resp_a"); err != nil {
		t.Fatalf("get resp_a: %v", err)
	}
	if err := s.SaveResponse(ctx, record("resp_c")); err != nil {
		t.Fatalf("save resp_c: %v", err)
	}

	if _, err := s.GetResponse(ctx, "resp_a"); err != nil {
		t.Errorf("recently read entry should survive: %v", err)
	}
	if _, err := s.GetResponse(ctx, "resp_b"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("stale entry should be evicted, err = %v", err)
	}
}
