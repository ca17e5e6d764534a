// Package invoke wraps a generation call in the call_start / call_success /
// call_error event lifecycle, in a stateless and a stateful flavour.
//
// Both invokers log before returning: a failure reaches the caller only
// after its call_error record has been handed to the sink. Failures are
// returned unchanged, so callers can errors.As them to *llm.ProviderError.
package invoke

import (
	"context"
	"time"

	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/llm"
)

// Invoker runs one request cycle for a single user turn.
type Invoker interface {
	Invoke(ctx context.Context, userText, sessionID string) (string, error)
	Mode() eventlog.Mode
}

// Options configures an invoker.
type Options struct {
	Model       string   // reported on call_start and passed to the client
	MaxTokens   int      // 0 leaves the provider default
	Temperature *float64 // nil leaves the provider default
	Sink        eventlog.Sink
	Now         func() time.Time // clock override for tests
}

// caller holds what both invokers share: the client, the sink and the clock.
type caller struct {
	client llm.Client
	opts   Options
	sink   eventlog.Sink
	now    func() time.Time
}

func newCaller(client llm.Client, opts Options) caller {
	c := caller{client: client, opts: opts, sink: opts.Sink, now: opts.Now}
	if c.sink == nil {
		c.sink = eventlog.Discard
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

func (c *caller) started(mode eventlog.Mode, sessionID, userText string, t0 time.Time) {
	c.sink.Log(eventlog.Event{
		Kind:        eventlog.KindStart,
		SessionID:   sessionID,
		Timestamp:   t0,
		Mode:        mode,
		UserMessage: userText,
		Model:       c.opts.Model,
	})
}

// complete sends messages to the client and emits the matching completion
// event. On success, record runs before call_success is emitted. The
// returned response is nil exactly when err is non-nil.
func (c *caller) complete(ctx context.Context, mode eventlog.Mode, sessionID string, t0 time.Time, messages []llm.Message, record func(*llm.CompletionResponse)) (*llm.CompletionResponse, error) {
	resp, err := c.client.Complete(ctx, llm.CompletionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
	if err == nil && resp == nil {
		err = &llm.ProviderError{Provider: c.client.Name(), Message: "empty response"}
	}
	if err == nil && record != nil {
		record(resp)
	}
	done := c.now()
	latency := max(done.Sub(t0).Seconds(), 0)

	if err != nil {
		c.sink.Log(eventlog.Event{
			Kind:           eventlog.KindError,
			SessionID:      sessionID,
			Timestamp:      done,
			Mode:           mode,
			Error:          err.Error(),
			LatencySeconds: latency,
		})
		return nil, err
	}

	c.sink.Log(eventlog.Event{
		Kind:           eventlog.KindSuccess,
		SessionID:      sessionID,
		Timestamp:      done,
		Mode:           mode,
		Response:       resp.Content,
		InputTokens:    resp.Usage.InputTokens,
		OutputTokens:   resp.Usage.OutputTokens,
		LatencySeconds: latency,
	})
	return resp, nil
}
