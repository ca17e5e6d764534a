package invoke

import (
	"context"

	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/llm"
)

// StatelessSystemPrompt is sent ahead of every stateless call.
const StatelessSystemPrompt = "You are a concise, professional assistant."

// Stateless sends each user turn on its own, with no history. Two calls
// never see each other's content, whatever session id they carry.
type Stateless struct {
	caller
}

// NewStateless creates a stateless invoker over client.
func NewStateless(client llm.Client, opts Options) *Stateless {
	return &Stateless{caller: newCaller(client, opts)}
}

// Mode returns eventlog.ModeStateless.
func (s *Stateless) Mode() eventlog.Mode { return eventlog.ModeStateless }

// Invoke sends [system, user] and returns the generated text.
func (s *Stateless) Invoke(ctx context.Context, userText, sessionID string) (string, error) {
	t0 := s.now()
	s.started(eventlog.ModeStateless, sessionID, userText, t0)

	messages := []llm.Message{
		llm.SystemMessage(StatelessSystemPrompt),
		llm.UserMessage(userText),
	}

	resp, err := s.complete(ctx, eventlog.ModeStateless, sessionID, t0, messages, nil)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
