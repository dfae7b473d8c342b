package ledger

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/fluxur/ledger/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can be
	// computed from, the nonce included.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivedAddressMarker = "DerivedAddress"
)

// CreateDerivedAddress computes the address owned by the given program for
// the given seeds. It fails if the result is a valid ed25519 curve point,
// because such an address could have a private key.
//
// The digest is sha256(seed_0 | ... | seed_n | program | "DerivedAddress").
func CreateDerivedAddress(program string, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	addr := derivedDigest(program, seeds...)
	if IsOnCurve(addr) {
		return nil, errors.Wrap(errors.ErrInput, "derived address is on the ed25519 curve")
	}
	return addr, nil
}

// FindDerivedAddress searches for a nonce that, appended as the last seed,
// gives an off curve derived address. Nonces are tried from 255 down to 0 and
// the first match is returned together with the nonce used.
//
// The search is deterministic, so the same program and seeds always result
// in the same address and nonce.
func FindDerivedAddress(program string, seeds ...[]byte) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	withNonce := make([][]byte, len(seeds)+1)
	copy(withNonce, seeds)
	for n := 255; n >= 0; n-- {
		withNonce[len(seeds)] = []byte{uint8(n)}
		addr := derivedDigest(program, withNonce...)
		if !IsOnCurve(addr) {
			return addr, uint8(n), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInput, "no off curve address for given seeds")
}

// IsOnCurve returns true if given bytes are a valid compressed ed25519
// point, that is a value that can be a public key.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInput, "seed %d longer than %d bytes", i, MaxSeedLength)
		}
	}
	return nil
}

func derivedDigest(program string, seeds ...[]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte(program))
	_, _ = h.Write([]byte(derivedAddressMarker))
	return h.Sum(nil)
}
