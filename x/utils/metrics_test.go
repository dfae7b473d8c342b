package utils

import (
	"context"
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ctx := context.Background()
	db := store.MemStore()
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "timelock/release"}}

	_, err := m.Deliver(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &ledgertest.Handler{DeliverErr: errors.ErrExpired})
	assert.True(t, errors.ErrExpired.Is(err))

	// Check is not measured.
	_, err = m.Check(ctx, db, tx, &ledgertest.Handler{})
	assert.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.total.WithLabelValues("timelock/release", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.total.WithLabelValues("timelock/release", "14")))

	families, err := reg.Gather()
	assert.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["ledger_tx_total"])
	assert.True(t, names["ledger_tx_duration_seconds"])

	assert.Panics(t, func() { NewMetrics(reg) })
}
