package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/store"
	"github.com/antiphon-dev/antiphon/pkg/store/memory"
)

// scriptedGenerator replays a fixed event script.
type scriptedGenerator struct {
	script []Event
	err    error
}

func (g *scriptedGenerator) Generate(_ context.Context, _ *api.CreateResponseRequest, emit func(Event) error) error {
	for _, ev := range g.script {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return g.err
}

// captureWriter records what the engine writes.
type captureWriter struct {
	resp   *api.Response
	events []api.StreamEvent
}

func (w *captureWriter) WriteResponse(_ context.Context, resp *api.Response) error {
	w.resp = resp
	return nil
}

func (w *captureWriter) WriteEvent(_ context.Context, ev api.StreamEvent) error {
	w.events = append(w.events, ev)
	return nil
}

func completionScript(text string) []Event {
	return []Event{
		AppendItem(textItem(text)),
		SetUsage(usage()),
		Finalize(api.ResponseStatusCompleted),
	}
}

func newTestEngine(t *testing.T, gen Generator, st store.ResponseStore) *Engine {
	t.Helper()
	e, err := New(gen, st, Config{Limits: api.DefaultValidationLimits()}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestEngineRequiresGenerator(t *testing.T) {
	if _, err := New(nil, nil, Config{}, nil, nil); err == nil {
		t.Fatal("nil generator should be rejected")
	}
}

func TestEngineNonStreaming(t *testing.T) {
	gen := &scriptedGenerator{script: completionScript("hello back")}
	e := newTestEngine(t, gen, memory.New(0))
	w := &captureWriter{}

	err := e.CreateResponse(context.Background(), testRequest(), w)
	if err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if w.resp == nil {
		t.Fatal("no response written")
	}
	if w.resp.Status != api.ResponseStatusCompleted {
		t.Errorf("status = %q", w.resp.Status)
	}
	if len(w.events) != 0 {
		t.Errorf("non-streaming path emitted %d events", len(w.events))
	}
}

func TestEngineStreaming(t *testing.T) {
	gen := &scriptedGenerator{script: completionScript("hello back")}
	e := newTestEngine(t, gen, nil)
	w := &captureWriter{}

	req := testRequest()
	req.Stream = true
	if err := e.CreateResponse(context.Background(), req, w); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if w.resp != nil {
		t.Error("streaming path should not write a full response")
	}

	want := []api.StreamEventType{
		api.EventResponseCreated,
		api.EventResponseInProgress,
		api.EventOutputItemAdded,
		api.EventResponseCompleted,
	}
	if len(w.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(w.events), len(want))
	}
	for i, ev := range w.events {
		if ev.Type != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, ev.Type, want[i])
		}
	}
}

func TestEngineValidationFailsFast(t *testing.T) {
	gen := &scriptedGenerator{script: completionScript("x")}
	e := newTestEngine(t, gen, nil)
	w := &captureWriter{}

	req := testRequest()
	req.Temperature = new(float64)
	*req.Temperature = 9.0
	err := e.CreateResponse(context.Background(), req, w)
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if w.resp != nil || len(w.events) != 0 {
		t.Error("nothing should be written on validation failure")
	}
}

func TestEngineGeneratorErrorFailsResponse(t *testing.T) {
	gen := &scriptedGenerator{
		script: []Event{AppendItem(textItem("partial"))},
		err:    fmt.Errorf("backend exploded"),
	}
	e := newTestEngine(t, gen, nil)
	w := &captureWriter{}

	if err := e.CreateResponse(context.Background(), testRequest(), w); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if w.resp.Status != api.ResponseStatusFailed {
		t.Errorf("status = %q, want failed", w.resp.Status)
	}
	if w.resp.Error == nil || w.resp.Error.Code != api.ErrServerError {
		t.Errorf("error = %+v", w.resp.Error)
	}
}

func TestEngineGeneratorMustFinalize(t *testing.T) {
	gen := &scriptedGenerator{script: []Event{AppendItem(textItem("partial"))}}
	e := newTestEngine(t, gen, nil)
	w := &captureWriter{}

	if err := e.CreateResponse(context.Background(), testRequest(), w); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if w.resp.Status != api.ResponseStatusFailed {
		t.Errorf("unfinalized response should fail, got %q", w.resp.Status)
	}
}

func TestEngineStoresAndChains(t *testing.T) {
	st := memory.New(0)
	gen := &scriptedGenerator{script: completionScript("first answer")}
	e := newTestEngine(t, gen, st)
	w := &captureWriter{}

	if err := e.CreateResponse(context.Background(), testRequest(), w); err != nil {
		t.Fatalf("first CreateResponse: %v", err)
	}
	firstID := w.resp.ID

	rec, err := st.GetResponse(context.Background(), firstID)
	if err != nil {
		t.Fatalf("stored response not found: %v", err)
	}
	if len(rec.Input) != 1 {
		t.Errorf("stored input has %d items", len(rec.Input))
	}

	// Second turn chains onto the first; the generator must see the
	// spliced history ahead of the new input.
	var seenInput int
	chained := generatorFunc(func(_ context.Context, req *api.CreateResponseRequest, emit func(Event) error) error {
		seenInput = len(req.Input)
		for _, ev := range completionScript("second answer") {
			if err := emit(ev); err != nil {
				return err
			}
		}
		return nil
	})
	e2 := newTestEngine(t, chained, st)

	req := testRequest()
	req.PreviousResponseID = firstID
	w2 := &captureWriter{}
	if err := e2.CreateResponse(context.Background(), req, w2); err != nil {
		t.Fatalf("second CreateResponse: %v", err)
	}

	// First turn's input + output, then the new user message.
	if seenInput != 3 {
		t.Errorf("generator saw %d input items, want 3", seenInput)
	}
	if w2.resp.PreviousResponseID == nil || *w2.resp.PreviousResponseID != firstID {
		t.Errorf("previous_response_id = %v", w2.resp.PreviousResponseID)
	}
}

// messageText extracts the text of a message item, whether it carries input
// content or output content.
func messageText(item api.Item) string {
	msg := item.Message
	if msg == nil {
		return ""
	}
	if len(msg.Content) > 0 {
		return msg.Content[0].Text
	}
	if len(msg.Output) > 0 {
		return msg.Output[0].Text
	}
	return ""
}

func TestEngineChainThreeTurns(t *testing.T) {
	st := memory.New(0)

	runTurn := func(userText, answer, prevID string) (*api.Response, []api.Item) {
		t.Helper()
		var seen []api.Item
		gen := generatorFunc(func(_ context.Context, req *api.CreateResponseRequest, emit func(Event) error) error {
			seen = append([]api.Item(nil), req.Input...)
			for _, ev := range completionScript(answer) {
				if err := emit(ev); err != nil {
					return err
				}
			}
			return nil
		})
		e := newTestEngine(t, gen, st)
		req := &api.CreateResponseRequest{
			Model:              "gpt-test",
			Input:              api.InputItems{api.NewUserMessage(userText)},
			PreviousResponseID: prevID,
		}
		w := &captureWriter{}
		if err := e.CreateResponse(context.Background(), req, w); err != nil {
			t.Fatalf("CreateResponse(%q): %v", userText, err)
		}
		return w.resp, seen
	}

	r1, _ := runTurn("q1", "a1", "")
	r2, _ := runTurn("q2", "a2", r1.ID)
	_, seen := runTurn("q3", "a3", r2.ID)

	// A chained turn's record holds only that turn's input, never the
	// spliced prefix.
	rec2, err := st.GetResponse(context.Background(), r2.ID)
	if err != nil {
		t.Fatalf("stored response not found: %v", err)
	}
	if len(rec2.Input) != 1 {
		t.Fatalf("second turn stored %d input items, want 1", len(rec2.Input))
	}
	if got := messageText(rec2.Input[0]); got != "q2" {
		t.Errorf("second turn stored input text = %q, want q2", got)
	}

	// The third turn replays every turn exactly once, oldest first.
	want := []string{"q1", "a1", "q2", "a2", "q3"}
	if len(seen) != len(want) {
		t.Fatalf("third turn generator saw %d items, want %d", len(seen), len(want))
	}
	for i, item := range seen {
		if got := messageText(item); got != want[i] {
			t.Errorf("input[%d] text = %q, want %q", i, got, want[i])
		}
	}
}

func TestEngineDefaultModel(t *testing.T) {
	gen := &scriptedGenerator{script: completionScript("x")}
	e, err := New(gen, nil, Config{DefaultModel: "gpt-default", Limits: api.DefaultValidationLimits()}, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w := &captureWriter{}

	req := testRequest()
	req.Model = ""
	if err := e.CreateResponse(context.Background(), req, w); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if w.resp.Model != "gpt-default" {
		t.Errorf("model = %q", w.resp.Model)
	}
}

// generatorFunc adapts a function to the Generator interface.
type generatorFunc func(ctx context.Context, req *api.CreateResponseRequest, emit func(Event) error) error

func (f generatorFunc) Generate(ctx context.Context, req *api.CreateResponseRequest, emit func(Event) error) error {
	return f(ctx, req, emit)
}
