// Package metrics defines and registers all custom Prometheus metrics for the
// CRM platform. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; expose them through promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "craftcrm"

// AppsGeneratedTotal counts CRM apps created through the wizard.
// Label:
//   - business_type: the wizard's business type selection
var AppsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "apps_generated_total",
		Help:      "Total number of CRM apps generated from the template catalog.",
	},
	[]string{"business_type"},
)

// RecordsWrittenTotal counts record mutations that completed successfully.
// Label:
//   - op: "create", "update" or "delete"
var RecordsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_written_total",
		Help:      "Total number of successful record mutations, by operation.",
	},
	[]string{"op"},
)

// ValidationFailuresTotal counts rejected record payloads.
// Label:
//   - reason: "required", "duplicate", "type", "unknown" or "option"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of record payloads rejected by schema validation.",
	},
	[]string{"reason"},
)

// ViewEvaluationDuration measures how long evaluating a view over its
// record set takes.
// Label:
//   - view_type: "list", "kanban" or "calendar"
var ViewEvaluationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "view_evaluation_duration_seconds",
		Help:      "Duration of view filter/sort/projection evaluation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"view_type"},
)
