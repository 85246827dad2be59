// Package metrics defines the custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at package init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// AuthFailuresTotal counts rejected requests at the access guard.
// Label:
//   - reason: "missing_credential", "invalid_credential", or "insufficient_role"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// SignupsTotal counts successful account registrations by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by role.",
	},
	[]string{"role"},
)

// SignupConflictsTotal counts signups rejected because the email was taken.
var SignupConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signup_conflicts_total",
		Help:      "Total number of signups rejected due to a duplicate email.",
	},
)

// SearchesTotal counts search resolutions by source.
// Label:
//   - source: "delegate" or "local"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of resolved searches, by resolution source.",
	},
	[]string{"source"},
)

// ProductsCreatedTotal counts new listings by category.
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products created, by category.",
	},
	[]string{"category"},
)

// RateLimitedTotal counts requests rejected by the credential rate limiter.
// Label:
//   - scope: limiter scope, e.g. "auth"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"scope"},
)
