package invoke

import (
	"context"
	"sync"

	"github.com/soyeahso/llmsession/internal/conversation"
	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/llm"
)

// Stateful sends the whole accumulated history on every call and records
// each exchange in its conversation state.
//
// The user turn is appended before the call and is kept even when the call
// fails, so a failed call leaves a user message with no assistant reply.
type Stateful struct {
	caller

	// mu serializes whole calls: call N+1 starts only after call N has
	// appended its reply (or failed).
	mu    sync.Mutex
	state *conversation.State
}

// NewStateful creates a stateful invoker that owns state.
func NewStateful(client llm.Client, state *conversation.State, opts Options) *Stateful {
	return &Stateful{caller: newCaller(client, opts), state: state}
}

// Mode returns eventlog.ModeStateful.
func (s *Stateful) Mode() eventlog.Mode { return eventlog.ModeStateful }

// State returns the conversation state the invoker appends to.
func (s *Stateful) State() *conversation.State { return s.state }

// Invoke appends userText to the history, sends the history and appends the
// reply. It returns the generated text.
func (s *Stateful) Invoke(ctx context.Context, userText, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t0 := s.now()
	s.state.Append(llm.UserMessage(userText))
	s.started(eventlog.ModeStateful, sessionID, userText, t0)

	resp, err := s.complete(ctx, eventlog.ModeStateful, sessionID, t0, s.state.Snapshot(),
		func(resp *llm.CompletionResponse) {
			s.state.Append(llm.AssistantMessage(resp.Content))
		})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
