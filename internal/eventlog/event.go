// Package eventlog defines the invocation lifecycle records and the sinks
// that receive them.
package eventlog

import "time"

// Kind distinguishes the record shapes of the event stream.
type Kind string

const (
	KindStart   Kind = "call_start"
	KindSuccess Kind = "call_success"
	KindError   Kind = "call_error"
)

// Mode is the invocation mode that produced an event.
type Mode string

const (
	ModeStateless Mode = "stateless"
	ModeStateful  Mode = "stateful"
)

// Event is one lifecycle record of a single generation call. Timestamp is
// the start of the call for KindStart and its completion otherwise.
//
// Fields outside an event's kind are left zero: UserMessage and Model
// belong to call_start; Response and the token counters to call_success;
// Error to call_error; LatencySeconds to both completion kinds.
type Event struct {
	Kind      Kind      `json:"event"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Mode      Mode      `json:"mode"`

	UserMessage string `json:"user_message,omitempty"`
	Model       string `json:"model,omitempty"`

	Response string `json:"response,omitempty"`
	// Token counts and latency are always present; a count the provider
	// did not report encodes as null, as in the log records.
	InputTokens  *int `json:"input_tokens"`
	OutputTokens *int `json:"output_tokens"`

	LatencySeconds float64 `json:"latency_seconds"`
	Error          string  `json:"error,omitempty"`
}

// Sink receives events. Log never fails from the caller's point of view:
// a sink that cannot deliver a record drops it.
type Sink interface {
	Log(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Log(e Event) { f(e) }

// Multi fans each event out to every sink, in order.
type Multi []Sink

func (m Multi) Log(e Event) {
	for _, s := range m {
		if s != nil {
			s.Log(e)
		}
	}
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})
