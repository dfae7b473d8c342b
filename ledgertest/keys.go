package ledgertest

import (
	"crypto/sha256"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/crypto"
)

// NewKey returns a random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a random key.
func NewCondition() ledger.Condition {
	return NewKey().PublicKey().Condition()
}

// SeededKey returns a key that is always the same for the same name.
func SeededKey(t testing.TB, name string) *crypto.PrivateKey {
	t.Helper()
	seed := sha256.Sum256([]byte(name))
	key, err := crypto.PrivKeyEd25519FromSeed(seed[:])
	if err != nil {
		t.Fatalf("cannot create %q key: %s", name, err)
	}
	return key
}
