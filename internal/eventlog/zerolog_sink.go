package eventlog

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/soyeahso/llmsession/internal/logging"
)

// LoggerName tags every event record, matching the logger name consumers
// filter on.
const LoggerName = "llm_agent"

// LogSink writes each event as one flat structured record. call_error is
// written at error level; everything else at info level.
type LogSink struct {
	log *logging.Logger
}

// NewLogSink returns a Sink writing through log.
func NewLogSink(log *logging.Logger) *LogSink {
	return &LogSink{log: log.Sub(LoggerName)}
}

func (s *LogSink) Log(e Event) {
	var ev *zerolog.Event
	if e.Kind == KindError {
		ev = s.log.Error()
	} else {
		ev = s.log.Info()
	}

	ev = ev.
		Str("event", string(e.Kind)).
		Str("session_id", e.SessionID).
		Str("timestamp", e.Timestamp.Format(time.RFC3339Nano)).
		Str("mode", string(e.Mode))

	switch e.Kind {
	case KindStart:
		ev = ev.Str("user_message", e.UserMessage).Str("model", e.Model)
	case KindSuccess:
		ev = ev.
			Float64("latency_seconds", e.LatencySeconds).
			Str("response", e.Response)
		ev = tokenField(ev, "input_tokens", e.InputTokens)
		ev = tokenField(ev, "output_tokens", e.OutputTokens)
	case KindError:
		ev = ev.
			Float64("latency_seconds", e.LatencySeconds).
			Str("error", e.Error)
	}

	ev.Msg("")
}

// tokenField writes n, or an explicit null when the provider gave no count.
func tokenField(ev *zerolog.Event, key string, n *int) *zerolog.Event {
	if n == nil {
		return ev.Interface(key, nil)
	}
	return ev.Int(key, *n)
}
