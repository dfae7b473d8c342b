package app

import (
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseAppDecoding(t *testing.T) {
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "timelock/release"}}

	cases := map[string]struct {
		decoder  ledger.TxDecoder
		wantCode uint32
		wantRuns int
	}{
		"decoded": {
			decoder:  func([]byte) (ledger.Tx, error) { return tx, nil },
			wantRuns: 1,
		},
		"decoder error": {
			decoder:  func([]byte) (ledger.Tx, error) { return nil, errors.Wrap(errors.ErrInput, "garbage") },
			wantCode: errors.ErrInput.ABCICode(),
		},
		"decoder panic": {
			decoder:  func([]byte) (ledger.Tx, error) { panic("truncated") },
			wantCode: errors.ErrPanic.ABCICode(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			store, cleanup := newTestApp(t)
			defer cleanup()
			h := &ledgertest.Handler{DeliverResult: ledger.DeliverResult{Log: "released"}}
			b := NewBaseApp(store, tc.decoder, h, false)
			b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{ChainID: "test-chain", Height: 1}})

			dres := b.DeliverTx([]byte{0x01})
			assert.Equal(t, tc.wantCode, dres.Code)
			cres := b.CheckTx([]byte{0x01})
			assert.Equal(t, tc.wantCode, cres.Code)

			assert.Equal(t, tc.wantRuns, h.DeliverCallCount())
			assert.Equal(t, tc.wantRuns, h.CheckCallCount())
			if tc.wantRuns > 0 {
				assert.Equal(t, "released", dres.Log)
			}
		})
	}
}
