package timelock

import (
	"context"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/x"
)

type contextKey int // local to the timelock module

const (
	contextKeyVaults contextKey = iota
)

// withVault grants the vault derivation proof to the context. Only this
// module can do so, after the release checks passed.
func withVault(ctx ledger.Context, cond ledger.Condition) ledger.Context {
	prev := Authenticate{}.GetConditions(ctx)
	conds := make([]ledger.Condition, 0, len(prev)+1)
	conds = append(conds, prev...)
	conds = append(conds, cond)
	return context.WithValue(ctx, contextKeyVaults, conds)
}

// Authenticate reports the vault proofs granted by the release handler.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the granted vault conditions. May be empty.
func (Authenticate) GetConditions(ctx ledger.Context) []ledger.Condition {
	val, _ := ctx.Value(contextKeyVaults).([]ledger.Condition)
	return val
}

// HasAddress returns true if a vault proof for the address was granted.
func (a Authenticate) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
