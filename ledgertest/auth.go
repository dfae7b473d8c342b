package ledgertest

import (
	"context"
	"fmt"

	"github.com/fluxur/ledger"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer, when
// set, is reported first and therefore acts as the main signer.
type Auth struct {
	Signer  ledger.Condition
	Signers []ledger.Condition
}

func (a *Auth) GetConditions(ledger.Context) []ledger.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]ledger.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetConditions(ctx ledger.Context, permissions ...ledger.Condition) ledger.Context {
	return context.WithValue(ctx, a.Key, permissions)
}

func (a *CtxAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]ledger.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []ledger.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
