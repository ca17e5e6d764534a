// Package demo runs the fixed two-mode demonstration: the same two user
// turns sent once without history and once with it.
package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/soyeahso/llmsession/internal/invoke"
	"github.com/soyeahso/llmsession/internal/logging"
)

// Prompts are the two user turns sent in each section.
var Prompts = []string{"My name is Sunil.", "What is my name?"}

// Section titles.
const (
	TitleStateless   = "NAIVE STATELESS DEMO"
	TitleStateful    = "STATEFUL MESSAGE-BASED DEMO"
	TitleObservation = "ENTERPRISE OBSERVATION"
)

// Observation is printed after both sections.
const Observation = `
Stateless Invocation:
- Each call is independent.
- No conversation memory.
- Fails for multi-turn dialogue.

Stateful Invocation:
- Structured message history preserved.
- Enables contextual continuity.
- Required for AI Agents, RAG systems,
  enterprise chat systems, and session-based architectures.
`

const ruleWidth = 60

// Driver runs the demonstration against a stateless and a stateful
// invoker and writes the commentary to Out.
type Driver struct {
	Stateless invoke.Invoker
	Stateful  invoke.Invoker
	Out       io.Writer
	Log       *logging.Logger

	// NewSessionID mints one id per section. Defaults to a random UUID.
	NewSessionID func() string
}

// Run executes both sections and the observation. The first invoker
// error aborts the run and is returned unchanged.
func (d *Driver) Run(ctx context.Context) error {
	newID := d.NewSessionID
	if newID == nil {
		newID = uuid.NewString
	}
	if d.Log != nil {
		d.Log.Info().Msg("Application started")
	}

	sections := []struct {
		title string
		inv   invoke.Invoker
	}{
		{TitleStateless, d.Stateless},
		{TitleStateful, d.Stateful},
	}
	for _, s := range sections {
		d.separator(s.title)
		if err := d.converse(ctx, s.inv, newID()); err != nil {
			return err
		}
	}

	d.separator(TitleObservation)
	fmt.Fprint(d.Out, Observation+"\n")

	if d.Log != nil {
		d.Log.Info().Msg("Application finished")
	}
	return nil
}

func (d *Driver) converse(ctx context.Context, inv invoke.Invoker, sessionID string) error {
	for i, prompt := range Prompts {
		if i > 0 {
			fmt.Fprintln(d.Out)
		}
		fmt.Fprintf(d.Out, "User: %s\n", prompt)
		reply, err := inv.Invoke(ctx, prompt, sessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(d.Out, "Assistant: %s\n", reply)
	}
	return nil
}

func (d *Driver) separator(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(d.Out, "\n%s\n%s\n%s\n\n", rule, title, rule)
}
