// Package metrics holds the Prometheus instruments for the auth layer. All
// collectors are registered with the default registry and exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "club_login_attempts_total",
			Help: "Login attempts partitioned by result.",
		}, []string{"result"})

	GateRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "club_gate_rejections_total",
			Help: "Requests rejected by the access control gate, partitioned by reason.",
		}, []string{"reason"})

	SuperadminCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "club_bootstrap_superadmin_created_total",
			Help: "Superadmin accounts created by the startup bootstrap.",
		})
)

func init() {
	prometheus.MustRegister(
		LoginAttempts,
		GateRejections,
		SuperadminCreated,
	)
}
