// Package metrics holds the custom Prometheus collectors of the user registry.
// They are registered with the default registry at package init, which is
// the registry echoprometheus serves on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/psikobank/user-registry/internal/core/domain"
)

const subsystem = "users"

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeForbidden = "forbidden"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// OperationsTotal counts registry operations.
// Labels:
//   - operation: list, create, show, update, delete, register, login, logout
//   - outcome: success, forbidden, invalid, not_found, error
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Total number of user registry operations, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// AuthorizationDenialsTotal counts requests refused by the role policy.
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "authorization_denials_total",
		Help:      "Total number of operations refused by the role policy.",
	},
	[]string{"action"},
)

// Outcome classifies an operation result for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrForbidden):
		return OutcomeForbidden
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidCredentials):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrUserNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// Observe records one operation. Denials are counted a second time under the
// policy action they were refused for.
func Observe(operation string, action domain.Action, err error) {
	outcome := Outcome(err)
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeForbidden {
		AuthorizationDenialsTotal.WithLabelValues(string(action)).Inc()
	}
}
