package utils

import (
	"context"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the decorator
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    ledger.Decorator
		handler *ledgertest.Handler
		check   bool
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, error keeps writes": {
			save:    NewSavepoint(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}, CheckErr: errors.ErrAmount},
			check:   true,
			wantErr: errors.ErrAmount,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back": {
			save:    NewSavepoint().OnCheck(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}, CheckErr: errors.ErrAmount},
			check:   true,
			wantErr: errors.ErrAmount,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back": {
			save:    NewSavepoint().OnDeliver(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}, DeliverErr: errors.ErrState},
			wantErr: errors.ErrState,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation keeps both": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}, DeliverErr: errors.ErrState},
			wantErr: errors.ErrState,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}, DeliverErr: errors.ErrState},
			wantErr: errors.ErrState,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &ledgertest.Handler{Write: &ledger.Model{Key: nk, Value: nv}},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
