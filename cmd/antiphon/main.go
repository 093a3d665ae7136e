// Command antiphon reads a create-response request from stdin, runs it
// through the full protocol pipeline (decode, validate, assemble), and
// writes the result to stdout: the response JSON, or SSE frames when the
// request sets "stream": true.
//
// Configuration is loaded from a YAML file (-config flag, ANTIPHON_CONFIG
// env, ./config.yaml) with ANTIPHON_* environment overrides.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/config"
	"github.com/antiphon-dev/antiphon/pkg/engine"
	"github.com/antiphon-dev/antiphon/pkg/observability"
	"github.com/antiphon-dev/antiphon/pkg/store/memory"
	"github.com/antiphon-dev/antiphon/pkg/wire"
)

func main() {
	if err := run(); err != nil {
		slog.Error("antiphon failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.New(nil)
	}

	st := memory.New(cfg.Store.MaxSize)
	defer st.Close()

	eng, err := engine.New(echoGenerator{}, st, cfg.EngineConfig(), metrics, log)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	codec := wire.NewCodec(cfg.Limits(), metrics)
	req, err := codec.DecodeRequest(body)
	if err != nil {
		return writeError(err)
	}

	w := &stdoutWriter{codec: codec}
	if err := eng.CreateResponse(context.Background(), req, w); err != nil {
		return writeError(err)
	}
	if req.Stream {
		os.Stdout.Write(wire.DoneFrame())
	}
	return nil
}

// writeError prints a validation error as the standard error body; other
// errors propagate to the caller.
func writeError(err error) error {
	if verr, ok := err.(*api.ValidationError); ok {
		data, encErr := wire.EncodeError(verr)
		if encErr != nil {
			return encErr
		}
		fmt.Println(string(data))
		return nil
	}
	return err
}

// stdoutWriter writes responses and SSE frames to stdout.
type stdoutWriter struct {
	codec *wire.Codec
}

func (w *stdoutWriter) WriteResponse(_ context.Context, resp *api.Response) error {
	data, err := w.codec.EncodeResponse(resp)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (w *stdoutWriter) WriteEvent(_ context.Context, ev api.StreamEvent) error {
	frame, err := w.codec.EncodeEvent(ev)
	if err != nil {
		return err
	}
	os.Stdout.Write(frame)
	return nil
}

// echoGenerator is a stand-in backend: it answers with a single completed
// assistant message echoing the last user input text.
type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, req *api.CreateResponseRequest, emit func(engine.Event) error) error {
	text := "(no user input)"
	for i := len(req.Input) - 1; i >= 0; i-- {
		msg := req.Input[i].Message
		if msg == nil || msg.Role != api.RoleUser || len(msg.Content) == 0 {
			continue
		}
		if msg.Content[0].Type == api.ContentTypeInputText {
			text = msg.Content[0].Text
			break
		}
	}

	item := &api.Item{
		Type:   api.ItemTypeMessage,
		Status: api.ItemStatusCompleted,
		Message: &api.MessageData{
			Role: api.RoleAssistant,
			Output: []api.OutputContent{
				{Type: api.OutputContentTypeText, Text: "echo: " + text, Annotations: []api.Annotation{}},
			},
		},
	}
	script := []engine.Event{
		engine.AppendItem(item),
		engine.SetUsage(&api.Usage{
			InputTokens:  len(req.Input),
			OutputTokens: 1,
			TotalTokens:  len(req.Input) + 1,
		}),
		engine.Finalize(api.ResponseStatusCompleted),
	}
	for _, ev := range script {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return nil
}
