// Package metrics exposes Prometheus counters for the order pipeline.
// Counters are registered through promauto and served via promhttp by both
// the API process and the fulfillment worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values for the "source" label of EnvelopesPublished.
const (
	PublishSourceAPI        = "api"
	PublishSourceReconciler = "reconciler"
)

var (
	// OrdersSubmitted counts orders accepted by the creation flow.
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Total number of orders persisted in Submitted status",
	})

	// EnvelopesPublished counts fulfillment envelopes handed to the broker.
	EnvelopesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_envelopes_published_total",
		Help: "Total number of fulfillment envelopes published to the broker",
	}, []string{"source"})

	// PublishFailures counts failed publish attempts after a successful persist.
	PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_envelope_publish_failures_total",
		Help: "Total number of publish attempts that failed after the order was persisted",
	})

	// FulfillmentOutcomes counts processed deliveries by outcome
	// (completed, already_satisfied, order_missing).
	FulfillmentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_fulfillment_outcomes_total",
		Help: "Total number of acknowledged deliveries by fulfillment outcome",
	}, []string{"outcome"})

	// DeliveriesRequeued counts deliveries abandoned for redelivery after a
	// transient failure.
	DeliveriesRequeued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_deliveries_requeued_total",
		Help: "Total number of deliveries returned to the queue after transient failures",
	})

	// DeliveriesDropped counts malformed deliveries dead-lettered without retry.
	DeliveriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_deliveries_dropped_total",
		Help: "Total number of malformed deliveries dead-lettered without retry",
	})

	// OrphansRepublished counts envelopes re-emitted by the reconciliation job.
	OrphansRepublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_orphans_republished_total",
		Help: "Total number of envelopes republished for orders stuck in Submitted status",
	})
)
