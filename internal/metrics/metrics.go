// Package metrics collects Prometheus metrics for a single report run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/JakeFAU/cus-report/internal/cus"
)

// Job is the Pushgateway job name runs are grouped under.
const Job = "cusreport"

// Run outcomes recorded by ObserveOutcome.
const (
	OutcomeSuccess        = "success"
	OutcomeEmptyResponse  = "empty_response"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
	OutcomeRenderError    = "render_error"
	OutcomeStoreError     = "store_error"
	OutcomePublishError   = "publish_error"
)

// Run owns a private registry so repeated runs in one process never collide.
type Run struct {
	registry *prometheus.Registry

	fetchedRecords  prometheus.Gauge
	selectedRecords prometheus.Gauge
	recordsByType   *prometheus.GaugeVec
	fetchedBytes    prometheus.Gauge
	documentBytes   prometheus.Gauge
	stageSeconds    *prometheus.GaugeVec
	outcomes        *prometheus.CounterVec
}

// NewRun builds the collectors for one run.
func NewRun() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Run{
		registry: reg,
		fetchedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cusreport_fetched_records",
			Help: "Number of regulatory bodies returned by the API.",
		}),
		selectedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cusreport_selected_records",
			Help: "Number of regulatory bodies matching the region filter.",
		}),
		recordsByType: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cusreport_selected_records_by_type",
			Help: "Selected regulatory bodies, labeled by body type.",
		}, []string{"type"}),
		fetchedBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cusreport_fetched_bytes",
			Help: "Size of the API response body.",
		}),
		documentBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cusreport_document_bytes",
			Help: "Size of the rendered document.",
		}),
		stageSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cusreport_stage_duration_seconds",
			Help: "Wall time spent per pipeline stage.",
		}, []string{"stage"}),
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cusreport_runs_total",
			Help: "Completed runs, labeled by outcome.",
		}, []string{"outcome"}),
	}
}

// Registry exposes the run's registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveFetch records the response size and fetch latency.
func (r *Run) ObserveFetch(bytes int, duration time.Duration) {
	r.fetchedBytes.Set(float64(bytes))
	r.ObserveStage("fetch", duration)
}

// ObserveSelection records the fetched total and the per-type breakdown of
// the selected set.
func (r *Run) ObserveSelection(fetched int, counts []cus.TypeCount) {
	r.fetchedRecords.Set(float64(fetched))
	r.selectedRecords.Set(float64(cus.Total(counts)))
	for _, c := range counts {
		r.recordsByType.WithLabelValues(c.Type).Set(float64(c.Count))
	}
}

// ObserveDocument records the rendered document size.
func (r *Run) ObserveDocument(bytes int) {
	r.documentBytes.Set(float64(bytes))
}

// ObserveStage records how long a stage took.
func (r *Run) ObserveStage(stage string, duration time.Duration) {
	r.stageSeconds.WithLabelValues(stage).Set(duration.Seconds())
}

// ObserveOutcome counts the run's final outcome.
func (r *Run) ObserveOutcome(outcome string) {
	r.outcomes.WithLabelValues(outcome).Inc()
}

// Push sends the registry to a Pushgateway, grouped by region.
func (r *Run) Push(ctx context.Context, gatewayURL, region string) error {
	pusher := push.New(gatewayURL, Job).
		Gatherer(r.registry).
		Grouping("region", region)
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
