// Package metrics defines the custom Prometheus metrics of the adoption site.
// It is the single source of truth for metric names, labels and help strings.
// HTTP request metrics come from echoprometheus; these cover the domain.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adoption"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts new accounts.
// Label:
//   - role: "client" or "staff"
var AccountsRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// StaffGateAttemptsTotal counts access gate submissions.
// Label:
//   - result: "accepted" or "rejected"
var StaffGateAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "staff_gate_attempts_total",
		Help:      "Total number of staff access gate submissions, by result.",
	},
	[]string{"result"},
)

// ── Listing metrics ───────────────────────────────────────────────────────────

// ListingsCreatedTotal counts listings created by staff.
var ListingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	},
)

// ListingsRemovedTotal counts listings removed by staff.
var ListingsRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_removed_total",
		Help:      "Total number of listings removed.",
	},
)

// ── Adoption metrics ──────────────────────────────────────────────────────────

// AdoptionOperationsTotal counts workflow operations.
// Labels:
//   - action: "request", "approve" or "deny"
//   - result: "ok", "conflict" or "error"
var AdoptionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adoption_operations_total",
		Help:      "Total number of adoption workflow operations, by action and result.",
	},
	[]string{"action", "result"},
)
