package ledgertest

import (
	"crypto/rand"
	"testing"

	"github.com/fluxur/ledger"
)

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) ledger.Address {
	raw := make([]byte, ledger.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return ledger.Address(raw)
}
