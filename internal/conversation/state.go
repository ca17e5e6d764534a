// Package conversation holds the accumulated dialogue history sent on each
// stateful call.
package conversation

import (
	"sync"

	"github.com/soyeahso/llmsession/internal/llm"
)

// State is an ordered, append-only message history. The first message is
// the system prompt given to New and is never removed. There is no pruning:
// the history grows for as long as the State lives.
//
// A single mutex guards Append and Snapshot, so a message appended before a
// Snapshot begins is always part of it.
type State struct {
	mu       sync.Mutex
	messages []llm.Message
}

// New creates a State seeded with a system message. An empty prompt yields
// an empty history.
func New(systemPrompt string) *State {
	s := &State{}
	if systemPrompt != "" {
		s.messages = append(s.messages, llm.SystemMessage(systemPrompt))
	}
	return s
}

// Append adds msg to the end of the history.
func (s *State) Append(msg llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Snapshot returns a copy of the history in insertion order.
func (s *State) Snapshot() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
