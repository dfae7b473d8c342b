package x

import (
	"context"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/ledgertest/assert"
)

func TestAuth(t *testing.T) {
	a := ledgertest.NewCondition()
	b := ledgertest.NewCondition()
	c := ledgertest.NewCondition()

	ctx1 := &ledgertest.CtxAuth{Key: "foo"}
	ctx2 := &ledgertest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          ledger.Context
		auth         Authenticator
		mainSigner   ledger.Condition
		wantInCtx    ledger.Condition
		wantNotInCtx ledger.Condition
		wantAll      []ledger.Condition
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &ledgertest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &ledgertest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []ledger.Condition{a},
		},
		"signer b": {
			ctx: context.Background(),
			auth: ChainAuth(
				&ledgertest.Auth{Signer: b},
				&ledgertest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []ledger.Condition{b, a},
		},
		"ctxAuth checks what is set by same key": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx1,
			mainSigner:   a,
			wantInCtx:    b,
			wantNotInCtx: c,
			wantAll:      []ledger.Condition{a, b},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetConditions(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if tc.wantInCtx != nil && !tc.auth.HasAddress(tc.ctx, tc.wantInCtx.Address()) {
				t.Fatal("condition address that was expected in context not found")
			}

			if tc.wantNotInCtx != nil && tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx.Address()) {
				t.Fatal("condition address that was expected not to be in context found")
			}

			all := tc.auth.GetConditions(tc.ctx)
			assert.Equal(t, tc.wantAll, all)

			if !HasAllConditions(tc.ctx, tc.auth, all) {
				t.Fatal("has all conditions check failed")
			}
			if HasAllConditions(tc.ctx, tc.auth, append(all, tc.wantNotInCtx)) {
				t.Fatal("has all condition succeeded after adding non existing condition")
			}

			if len(all) > 0 {
				if !HasNConditions(tc.ctx, tc.auth, all, len(all)-1) {
					t.Fatal("want condition check of a subset to succeed")
				}
				if HasNConditions(tc.ctx, tc.auth, all, len(all)+1) {
					t.Fatal("want condition check of a superset to fail")
				}
			}
		})
	}
}

func TestRequireMainSigner(t *testing.T) {
	a := ledgertest.NewCondition()

	got, err := RequireMainSigner(context.Background(), &ledgertest.Auth{Signer: a})
	assert.Nil(t, err)
	assert.Equal(t, a, got)

	_, err = RequireMainSigner(context.Background(), &ledgertest.Auth{})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}
