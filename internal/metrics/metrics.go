// Package metrics provides Prometheus metrics for invocation events.
package metrics

import (
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/soyeahso/llmsession/internal/eventlog"
)

// Call status label values.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Token direction label values.
const (
	DirectionInput  = "input"
	DirectionOutput = "output"
)

// Metrics is an eventlog.Sink that turns invocation events into Prometheus
// series. Each instance owns its registry so several can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	CallsTotal  *prometheus.CounterVec
	CallLatency *prometheus.HistogramVec
	TokensTotal *prometheus.CounterVec
}

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmsession_calls_total",
				Help: "Total number of generation calls by mode and status",
			},
			[]string{"mode", "status"},
		),
		CallLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llmsession_call_latency_seconds",
				Help:    "Latency of completed generation calls in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		TokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llmsession_tokens_total",
				Help: "Tokens reported by the provider, by mode and direction",
			},
			[]string{"mode", "direction"},
		),
	}
}

// Log records e. Token counts the provider did not report are skipped.
func (m *Metrics) Log(e eventlog.Event) {
	mode := string(e.Mode)
	switch e.Kind {
	case eventlog.KindStart:
		m.CallsTotal.WithLabelValues(mode, StatusStarted).Inc()
	case eventlog.KindSuccess:
		m.CallsTotal.WithLabelValues(mode, StatusSuccess).Inc()
		m.CallLatency.WithLabelValues(mode).Observe(e.LatencySeconds)
		if e.InputTokens != nil {
			m.TokensTotal.WithLabelValues(mode, DirectionInput).Add(float64(*e.InputTokens))
		}
		if e.OutputTokens != nil {
			m.TokensTotal.WithLabelValues(mode, DirectionOutput).Add(float64(*e.OutputTokens))
		}
	case eventlog.KindError:
		m.CallsTotal.WithLabelValues(mode, StatusError).Inc()
		m.CallLatency.WithLabelValues(mode).Observe(e.LatencySeconds)
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteText renders every gathered family in the text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	return writeFamilies(w, families)
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
