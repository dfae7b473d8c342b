package utils

import (
	"strconv"
	"time"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that records the outcome and duration of every
// delivered transaction.
//
//   ledger_tx_total{path, result}         counter, result is "ok" or the ABCI error code
//   ledger_tx_duration_seconds{path}      histogram
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ ledger.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
// It panics if the collectors are already registered. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "tx",
			Name:      "total",
			Help:      "Number of delivered transactions by message path and result.",
		}, []string{"path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Time spent delivering a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path"}),
	}
	if reg != nil {
		reg.MustRegister(m.total, m.duration)
	}
	return m
}

// Check passes the request along.
func (m *Metrics) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver measures the execution of the rest of the chain.
func (m *Metrics) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	path := ledger.GetPath(tx)
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.total.WithLabelValues(path, resultLabel(err)).Inc()
	return res, err
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	code, _ := errors.ABCIInfo(err, false)
	return strconv.FormatUint(uint64(code), 10)
}
