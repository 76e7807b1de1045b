// Package metrics defines and registers all custom Prometheus metrics for the
// bookstore catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the router under /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts committed catalog writes.
// Labels:
//   - entity: "author", "genre" or "book"
//   - action: "created", "updated", "deleted" or "image_updated"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of committed catalog mutations, by entity and action.",
	},
	[]string{"entity", "action"},
)

// ImageUploadsTotal counts cover uploads.
// Label:
//   - result: "stored" or "rejected"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of book cover uploads, labelled by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts authentication attempts.
// Labels:
//   - event: "register" or "login"
//   - result: "success" or "failure"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of register and login attempts, by result.",
	},
	[]string{"event", "result"},
)

// Result returns the "success"/"failure" label for err.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
