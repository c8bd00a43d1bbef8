package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the service. Registered once
// in main and threaded through constructors so tests can pass nil-safe fakes.
type Metrics struct {
	ProposalExports      *prometheus.CounterVec
	ExportDurationSec    prometheus.Histogram
	PlanMergeFallbacks   prometheus.Counter
	CodesIssued          prometheus.Counter
	VerificationOutcomes *prometheus.CounterVec
	EmailSendFailures    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ProposalExports: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propale_proposal_exports_total",
			Help: "PDF exports served, by document kind",
		}, []string{"kind"}),
		ExportDurationSec: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "propale_export_duration_seconds",
			Help:    "Wall time to build and serialize a proposal PDF",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PlanMergeFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propale_plan_merge_fallbacks_total",
			Help: "Exports that fell back to the unmerged proposal",
		}),
		CodesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propale_verification_codes_issued_total",
			Help: "Verification codes generated and stored",
		}),
		VerificationOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propale_verification_attempts_total",
			Help: "Verification attempts, by outcome",
		}, []string{"outcome"}),
		EmailSendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propale_email_send_failures_total",
			Help: "Verification emails the transactional API refused",
		}),
	}
}
