package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()

	_, err := NewLogging().Deliver(ctx, db, nil, &ledgertest.Handler{
		DeliverResult: ledger.DeliverResult{Log: "lock created"},
	})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "lock created")
	assert.Contains(t, buf.String(), "duration")

	buf.Reset()
	_, err = NewLogging().Deliver(ctx, db, nil, &ledgertest.Handler{DeliverErr: errors.ErrExpired})
	assert.True(t, errors.ErrExpired.Is(err))
	assert.Contains(t, buf.String(), "expired")

	// Successful checks are logged at debug level only.
	buf.Reset()
	filtered := ledger.WithLogger(context.Background(), log.NewFilter(log.NewTMLogger(&buf), log.AllowInfo()))
	_, err = NewLogging().Check(filtered, db, nil, &ledgertest.Handler{CheckResult: ledger.CheckResult{Log: "checked"}})
	assert.NoError(t, err)
	assert.Equal(t, "", buf.String())
}
