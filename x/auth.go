package x

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

// Authenticator extracts authentication info from the context. Handlers
// receive one in their constructor, so signatures and derivation proofs
// granted by other extensions are checked the same way.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(ledger.Context) []ledger.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(ledger.Context, ledger.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx ledger.Context) []ledger.Condition {
	var res []ledger.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first permission if any, otherwise nil.
// The main signer is the one paying for the transaction.
func MainSigner(ctx ledger.Context, auth Authenticator) ledger.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllConditions returns true if all elements in required are
// also in context.
func HasAllConditions(ctx ledger.Context, auth Authenticator, required []ledger.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions returns true if at least n elements in requested are
// also in context.
// Useful for threshold conditions (1 of 3, 3 of 5, etc...)
func HasNConditions(ctx ledger.Context, auth Authenticator, requested []ledger.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	perms := auth.GetConditions(ctx)
	for _, perm := range requested {
		if hasPerm(perms, perm) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasPerm(perms []ledger.Condition, perm ledger.Condition) bool {
	for _, p := range perms {
		if p.Equals(perm) {
			return true
		}
	}
	return false
}

// RequireMainSigner returns the main signer or fails with ErrUnauthorized
// when the transaction carries no signature.
func RequireMainSigner(ctx ledger.Context, auth Authenticator) (ledger.Condition, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer, nil
}
