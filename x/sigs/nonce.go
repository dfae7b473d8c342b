package sigs

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

// NextNonce returns the next numeric nonce value that should be used during a
// transaction signing.
// You can get the signers address by calling
//   address := <crypto.Signer>.PublicKey().Address()
func NextNonce(db ledger.ReadOnlyKVStore, signer ledger.Address) (int64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "bucket get")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}

	// If not yet present, nonce counting starts with zero.
	return 0, nil
}
