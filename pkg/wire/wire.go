// Package wire is the byte-level codec surface of the protocol: strict
// request decoding with shape pre-checks, response encoding, and SSE frame
// encoding for stream events.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/antiphon-dev/antiphon/pkg/api"
)

// DecodeRequest parses and fully validates a create-response request body.
// The body must be a JSON object; union decoding is strict and validation
// runs to completion, so a returned request is ready for generation. All
// failures are *api.ValidationError values.
func DecodeRequest(data []byte, limits api.ValidationLimits) (*api.CreateResponseRequest, error) {
	if !gjson.ValidBytes(data) {
		return nil, api.NewOutOfRange("body", "request body is not valid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, api.NewOutOfRange("body", "request body must be a JSON object")
	}

	var req api.CreateResponseRequest
	if err := json.Unmarshal(data, &req); err != nil {
		if verr, ok := err.(*api.ValidationError); ok {
			return nil, verr
		}
		return nil, api.NewOutOfRange("body", err.Error())
	}

	if verr := api.ValidateRequest(&req, limits); verr != nil {
		return nil, verr
	}
	return &req, nil
}

// EncodeResponse serializes a response to its canonical JSON form.
func EncodeResponse(resp *api.Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response %s: %w", resp.ID, err)
	}
	return data, nil
}

// EncodeError serializes a validation error as the top-level error body.
func EncodeError(verr *api.ValidationError) ([]byte, error) {
	data, err := json.Marshal(api.ErrorResponse{Error: verr})
	if err != nil {
		return nil, fmt.Errorf("encode error response: %w", err)
	}
	return data, nil
}

// EncodeEvent serializes a stream event as one SSE frame:
//
//	event: {type}\n
//	data: {json}\n
//	\n
func EncodeEvent(ev api.StreamEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", ev.Type, err)
	}
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", ev.Type, data), nil
}

// DoneFrame terminates an SSE stream after the terminal event.
func DoneFrame() []byte {
	return []byte("data: [DONE]\n\n")
}
