// Package telemetry records burn metrics in a Prometheus registry.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/bnema/ember/internal/application/port"
)

const namespace = "ember"

var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Reporter implements port.BurnReporter on Prometheus collectors.
type Reporter struct {
	BurnsTotal          *prometheus.CounterVec
	BurnDuration        *prometheus.HistogramVec
	BurnsInFlight       prometheus.Gauge
	StepDuration        *prometheus.HistogramVec
	StepErrors          *prometheus.CounterVec
	ResidueTotal        *prometheus.CounterVec
	InvariantViolations *prometheus.CounterVec
	OverlappingBurns    *prometheus.CounterVec
}

// NewReporter registers the burn collectors on reg.
func NewReporter(reg prometheus.Registerer) *Reporter {
	factory := promauto.With(reg)
	return &Reporter{
		BurnsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "burns_total",
				Help:      "Total number of burns started",
			},
			[]string{"kind"},
		),
		BurnDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "burn_duration_seconds",
				Help:      "Wall time of a burn until its completion fired",
				Buckets:   durationBuckets,
			},
			[]string{"kind"},
		),
		BurnsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "burns_in_flight",
				Help:      "Number of burns currently running",
			},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "burn_step_duration_seconds",
				Help:      "Duration of a single burn step",
				Buckets:   durationBuckets,
			},
			[]string{"step"},
		),
		StepErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "burn_step_errors_total",
				Help:      "Burn steps that failed or panicked",
			},
			[]string{"step"},
		),
		ResidueTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "burn_residue_total",
				Help:      "Records found outside the fireproof list after a full burn",
			},
			[]string{"step"},
		),
		InvariantViolations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "burn_invariant_violations_total",
				Help:      "Burn requests that broke an input invariant",
			},
			[]string{"kind"},
		),
		OverlappingBurns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "burn_overlapping_total",
				Help:      "Burns started while another one was running",
			},
			[]string{"kind"},
		),
	}
}

func (r *Reporter) BurnStarted(kind string) {
	r.BurnsTotal.WithLabelValues(kind).Inc()
	r.BurnsInFlight.Inc()
}

func (r *Reporter) BurnFinished(kind string, d time.Duration) {
	r.BurnDuration.WithLabelValues(kind).Observe(d.Seconds())
	r.BurnsInFlight.Dec()
}

func (r *Reporter) StepFinished(step port.BurnStep, d time.Duration, err error) {
	r.StepDuration.WithLabelValues(string(step)).Observe(d.Seconds())
	if err != nil {
		r.StepErrors.WithLabelValues(string(step)).Inc()
	}
}

func (r *Reporter) ResidueFound(step port.BurnStep, count int64) {
	r.ResidueTotal.WithLabelValues(string(step)).Add(float64(count))
}

// InvariantViolated counts one violation per request; the domains are
// left to the logs to keep label cardinality bounded.
func (r *Reporter) InvariantViolated(kind string, _ []string) {
	r.InvariantViolations.WithLabelValues(kind).Inc()
}

func (r *Reporter) OverlappingBurn(kind string) {
	r.OverlappingBurns.WithLabelValues(kind).Inc()
}

// WriteText writes every metric family of g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
