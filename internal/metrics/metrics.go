package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportAttempts tracks secret import attempts by import kind and result
	ImportAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletlink_import_attempts_total",
			Help: "Total number of wallet secret import attempts",
		},
		[]string{"kind", "result"},
	)

	// SessionsStarted tracks sessions opened by menu actions
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletlink_sessions_started_total",
			Help: "Total number of pending sessions started",
		},
		[]string{"await"},
	)

	// TokenInputs tracks token address / symbol inputs
	TokenInputs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletlink_token_inputs_total",
			Help: "Total number of token address or symbol inputs",
		},
		[]string{"await", "result"},
	)

	// StoreErrors tracks record store failures per operation
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletlink_store_errors_total",
			Help: "Total number of record store failures",
		},
		[]string{"op"},
	)

	// NotificationsSent tracks owner alerts by result
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletlink_owner_notifications_total",
			Help: "Total number of new-user alerts sent to the owner",
		},
		[]string{"result"},
	)
)

// RegisterActiveSessions exposes the number of pending sessions as a gauge.
// Call it once per process.
func RegisterActiveSessions(count func() int) prometheus.GaugeFunc {
	return promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "walletlink_active_sessions",
			Help: "Number of pending sessions",
		},
		func() float64 { return float64(count()) },
	)
}
