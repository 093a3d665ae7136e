package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/observability"
	"github.com/antiphon-dev/antiphon/pkg/store"
)

// Generator is the inference collaborator. It receives a validated request
// and reports progress as ordered events through emit. It must finalize the
// response (finalize or set_error) before returning nil; returning an error
// fails the response with server_error.
type Generator interface {
	Generate(ctx context.Context, req *api.CreateResponseRequest, emit func(Event) error) error
}

// ResponseWriter receives the assembled output: one full response on the
// non-streaming path, ordered stream events on the streaming path.
type ResponseWriter interface {
	WriteResponse(ctx context.Context, resp *api.Response) error
	WriteEvent(ctx context.Context, ev api.StreamEvent) error
}

// Engine orchestrates request processing between the wire layer and the
// generator collaborator.
type Engine struct {
	gen     Generator
	store   store.ResponseStore
	cfg     Config
	metrics *observability.Metrics
	log     *slog.Logger
}

// New creates a new Engine. The generator must not be nil. The store can be
// nil for stateless operation; metrics and logger can be nil.
func New(gen Generator, st store.ResponseStore, cfg Config, metrics *observability.Metrics, log *slog.Logger) (*Engine, error) {
	if gen == nil {
		return nil, fmt.Errorf("engine: generator must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		gen:     gen,
		store:   st,
		cfg:     cfg,
		metrics: metrics,
		log:     log,
	}, nil
}

// CreateResponse handles one create-response call. The request is validated,
// prior conversation turns are spliced in when previous_response_id is set,
// and the assembler is driven from generator events. Client-caused failures
// return a *api.ValidationError before any generation starts.
func (e *Engine) CreateResponse(ctx context.Context, req *api.CreateResponseRequest, w ResponseWriter) error {
	if req.Model == "" && e.cfg.DefaultModel != "" {
		req.Model = e.cfg.DefaultModel
	}
	if verr := api.ValidateRequest(req, e.cfg.Limits); verr != nil {
		return verr
	}
	if e.metrics != nil {
		e.metrics.RequestValidated()
	}

	// The stored record must hold only this turn's items. Splicing earlier
	// turns into req.Input feeds them to the generator; persisting the
	// spliced slice would replay them again on every later chain walk.
	turnInput := req.Input
	if req.PreviousResponseID != "" {
		history, err := spliceHistory(ctx, e.store, req.PreviousResponseID, e.cfg.maxChainLength())
		if err != nil {
			return err
		}
		req.Input = append(api.InputItems(history), req.Input...)
	}

	var sink EventSink
	if req.Stream {
		sink = func(ev api.StreamEvent) error {
			if e.metrics != nil {
				e.metrics.StreamEventEmitted(string(ev.Type))
			}
			return w.WriteEvent(ctx, ev)
		}
	}

	asm := NewAssembler(req, sink)
	log := e.log.With("response_id", asm.Response().ID, "model", req.Model)
	log.Debug("response assembly started", "stream", req.Stream, "input_items", len(req.Input))

	if req.Stream {
		if err := asm.Start(); err != nil {
			return fmt.Errorf("emit lifecycle events: %w", err)
		}
	}

	if err := e.gen.Generate(ctx, req, asm.Apply); err != nil {
		log.Error("generator failed", "error", err)
		if !asm.Response().Status.IsTerminal() {
			if ferr := asm.Fail(api.ErrServerError, "generation failed"); ferr != nil {
				return ferr
			}
		}
	}

	// A generator that returns without finalizing breaks the contract.
	if !asm.Response().Status.IsTerminal() {
		log.Error("generator returned without finalizing")
		if err := asm.Fail(api.ErrServerError, "generator did not finalize the response"); err != nil {
			return err
		}
	}

	resp := asm.Response()
	e.observeTerminal(resp)
	log.Info("response finished", "status", resp.Status, "output_items", len(resp.Output))

	if req.ResolveStore() && e.store != nil {
		rec := &store.Record{Response: resp, Input: turnInput}
		if err := e.store.SaveResponse(ctx, rec); err != nil {
			return fmt.Errorf("store response %s: %w", resp.ID, err)
		}
	}

	if req.Stream {
		// Terminal event already went through the sink.
		return nil
	}
	return w.WriteResponse(ctx, resp)
}

func (e *Engine) observeTerminal(resp *api.Response) {
	if e.metrics == nil {
		return
	}
	e.metrics.ResponseFinished(string(resp.Status))
	if resp.Usage != nil {
		e.metrics.TokensUsed(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}
}
