package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "cari_ledger"

// Metrics holds the collectors exported by the service. A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	ledgerOperations   *prometheus.CounterVec
	balanceAdjustments *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ledgerOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "operations_total",
			Help:      "Movement ledger operations by operation and result.",
		}, []string{"operation", "result"}),
		balanceAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "balance_adjustments_total",
			Help:      "Committed account balance adjustments by sign.",
		}, []string{"sign"}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{m.httpRequests, m.httpDuration, m.ledgerOperations, m.balanceAdjustments} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}

// ObserveHTTPRequest records one completed request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLedgerOperation records the outcome of a ledger operation.
func (m *Metrics) ObserveLedgerOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.ledgerOperations.WithLabelValues(operation, result).Inc()
}

// ObserveBalanceAdjustments records committed balance deltas.
func (m *Metrics) ObserveBalanceAdjustments(deltas ...decimal.Decimal) {
	if m == nil {
		return
	}
	for _, d := range deltas {
		switch d.Sign() {
		case 1:
			m.balanceAdjustments.WithLabelValues("positive").Inc()
		case -1:
			m.balanceAdjustments.WithLabelValues("negative").Inc()
		}
	}
}
