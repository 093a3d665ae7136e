package wire

import (
	"github.com/antiphon-dev/antiphon/pkg/api"
	"github.com/antiphon-dev/antiphon/pkg/observability"
)

// Codec bundles the codec functions with validation limits and optional
// metrics. The zero limits disable size bounds; a nil metrics disables
// instrumentation.
type Codec struct {
	limits  api.ValidationLimits
	metrics *observability.Metrics
}

// NewCodec creates a codec with the given limits and optional metrics.
func NewCodec(limits api.ValidationLimits, metrics *observability.Metrics) *Codec {
	return &Codec{limits: limits, metrics: metrics}
}

// DecodeRequest decodes and validates a request body, recording failures by
// error kind.
func (c *Codec) DecodeRequest(data []byte) (*api.CreateResponseRequest, error) {
	req, err := DecodeRequest(data, c.limits)
	if err != nil {
		if c.metrics != nil {
			kind := "decode"
			if verr, ok := err.(*api.ValidationError); ok {
				kind = string(verr.Kind)
			}
			c.metrics.DecodeFailure(kind)
		}
		return nil, err
	}
	return req, nil
}

// EncodeResponse serializes a response to its canonical JSON form.
func (c *Codec) EncodeResponse(resp *api.Response) ([]byte, error) {
	return EncodeResponse(resp)
}

// EncodeEvent serializes a stream event as one SSE frame.
func (c *Codec) EncodeEvent(ev api.StreamEvent) ([]byte, error) {
	return EncodeEvent(ev)
}
