package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Client metrics
	ClientsCreated    prometheus.Counter
	ClientsDeleted    prometheus.Counter
	ClientsRestored   prometheus.Counter
	DeleteGuardDenied *prometheus.CounterVec

	// Movement metrics
	MovementsCreated prometheus.Counter
	MovementsDeleted prometheus.Counter
	MovementAmount   prometheus.Histogram

	// Receipt metrics
	ReceiptsCreated prometheus.Counter
	ReceiptTotal    prometheus.Histogram

	// Certificate metrics
	CertificatesExpiring prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Client metrics
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_clients_created_total",
			Help: "Total number of clients created",
		}),
		ClientsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_clients_deleted_total",
			Help: "Total number of clients soft-deleted",
		}),
		ClientsRestored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_clients_restored_total",
			Help: "Total number of clients restored",
		}),
		DeleteGuardDenied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesoreria_client_delete_denied_total",
				Help: "Client deletions rejected by the ledger guard, by reason",
			},
			[]string{"reason"},
		),

		// Movement metrics
		MovementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_movements_created_total",
			Help: "Total number of current-account movements created",
		}),
		MovementsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_movements_deleted_total",
			Help: "Total number of current-account movements deleted",
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tesoreria_movement_amount",
			Help:    "Movement amounts (debe or haber)",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Receipt metrics
		ReceiptsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tesoreria_receipts_created_total",
			Help: "Total number of receipts created",
		}),
		ReceiptTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tesoreria_receipt_total",
			Help:    "Receipt totals",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Certificate metrics
		CertificatesExpiring: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tesoreria_certificates_expiring",
			Help: "Certificates expiring within the alert window at last check",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesoreria_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tesoreria_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesoreria_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
