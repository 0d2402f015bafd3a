// Package metrics defines and registers the custom Prometheus metrics for the
// identity API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "invalid_role", "invalid_email", "phone_taken", "verifier_error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "authenticated", "must_change_password", "bad_credentials", "wrong_role"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// DeletionsTotal counts account deletion attempts by outcome.
// Label:
//   - outcome: "deleted", "unauthorized", "not_found"
var DeletionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deletions_total",
		Help:      "Total number of account deletion attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RecoveryCodesIssuedTotal counts recovery codes generated and mailed.
var RecoveryCodesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_codes_issued_total",
		Help:      "Total number of one-time recovery codes issued.",
	},
)

// RecoveryResetsTotal counts OTP-authorized password resets by result.
// Label:
//   - result: "reset", "rejected", "no_active_otp"
var RecoveryResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovery_resets_total",
		Help:      "Total number of OTP-authorized password reset attempts, by result.",
	},
	[]string{"result"},
)
