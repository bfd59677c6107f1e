package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the posting engine and HTTP surface.
type Metrics struct {
	// Posting engine
	JournalsPosted   prometheus.Counter
	JournalsReversed prometheus.Counter
	PostingFailures  *prometheus.CounterVec
	PostingRetries   prometheus.Counter
	PostingDuration  prometheus.Histogram

	// Fiscal calendar
	PeriodsClosed   prometheus.Counter
	PeriodsReopened prometheus.Counter

	// GST
	ReturnsPrepared  prometheus.Counter
	ReturnsFinalized prometheus.Counter

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		JournalsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_journals_posted_total",
			Help: "Total number of journal entries posted to the ledger",
		}),
		JournalsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_journals_reversed_total",
			Help: "Total number of journal entries reversed",
		}),
		PostingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brightbooks_posting_failures_total",
			Help: "Total number of failed post attempts by reason",
		}, []string{"reason"}),
		PostingRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_posting_retries_total",
			Help: "Total number of posting transaction retries after serialization failures",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "brightbooks_posting_duration_seconds",
			Help:    "Duration of the posting transaction",
			Buckets: prometheus.DefBuckets,
		}),
		PeriodsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_fiscal_periods_closed_total",
			Help: "Total number of fiscal periods closed",
		}),
		PeriodsReopened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_fiscal_periods_reopened_total",
			Help: "Total number of fiscal periods reopened via the privileged override",
		}),
		ReturnsPrepared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_gst_returns_prepared_total",
			Help: "Total number of GST returns prepared",
		}),
		ReturnsFinalized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brightbooks_gst_returns_finalized_total",
			Help: "Total number of GST returns finalized",
		}),
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brightbooks_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brightbooks_http_request_duration_seconds",
			Help:    "HTTP request duration by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}
