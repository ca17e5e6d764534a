package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/soyeahso/llmsession/internal/config"
	"github.com/soyeahso/llmsession/internal/conversation"
	"github.com/soyeahso/llmsession/internal/eventlog"
	"github.com/soyeahso/llmsession/internal/invoke"
	"github.com/soyeahso/llmsession/internal/llm"
	"github.com/soyeahso/llmsession/internal/metrics"
	"github.com/soyeahso/llmsession/internal/store"
)

// engine is everything a command needs to make calls: the resolved client
// and the sinks every event is fanned out to.
type engine struct {
	client  llm.Client
	sink    eventlog.Sink
	metrics *metrics.Metrics
	db      *store.DB
}

// newEngine resolves the configured provider and assembles the sinks: the
// structured log always, the journal when enabled, metrics when asked for.
func newEngine(withMetrics bool) (*engine, error) {
	registry := llm.NewRegistryFromConfig(cfg, log)
	client, err := registry.Resolve(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("resolving provider %q: %w", cfg.Provider, err)
	}

	e := &engine{client: client}
	sinks := eventlog.Multi{eventlog.NewLogSink(log)}

	if cfg.Journal.Enabled {
		db, err := store.Open(journalPath(), log)
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		e.db = db
		sinks = append(sinks, store.NewJournal(db))
	}
	if withMetrics {
		e.metrics = metrics.New()
		sinks = append(sinks, e.metrics)
	}

	e.sink = sinks
	return e, nil
}

func (e *engine) options() invoke.Options {
	return invoke.Options{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Sink:        e.sink,
	}
}

func (e *engine) stateless() *invoke.Stateless {
	return invoke.NewStateless(e.client, e.options())
}

// stateful starts a fresh conversation seeded with the configured prompt.
func (e *engine) stateful() *invoke.Stateful {
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = config.DefaultSystemPrompt
	}
	return invoke.NewStateful(e.client, conversation.New(prompt), e.options())
}

// serveMetrics exposes the engine's metrics at /metrics on addr until stop
// is called. It returns the bound address, so ":0" picks a free port.
func (e *engine) serveMetrics(addr string) (bound string, stop func(), err error) {
	if e.metrics == nil {
		return "", nil, errors.New("metrics are not enabled")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", e.metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	bound = ln.Addr().String()
	log.Info().Str("addr", bound).Msg("serving metrics")
	return bound, func() { _ = srv.Close() }, nil
}

func (e *engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// checkConfig refuses to run against a config with validation issues.
func checkConfig() error {
	issues := config.Validate(&cfg)
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = errors.New(issue.String())
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

func journalPath() string {
	if cfg.Journal.Path != "" {
		return cfg.Journal.Path
	}
	return paths.Journal
}
