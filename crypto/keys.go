/*
Package crypto holds the ed25519 keys used to sign transactions.

A public key is the raw 32 byte ed25519 key and doubles as the account
address of its holder. Private keys are kept in the 64 byte expanded form
of golang.org/x/crypto/ed25519.
*/
package crypto

import (
	"bytes"
	"encoding/hex"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (Signature, error)
	PublicKey() PublicKey
}

// Signature is a raw ed25519 signature.
type Signature []byte

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// Validate checks the key length.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes, got %d", ed25519.PublicKeySize, len(p))
	}
	return nil
}

// Verify verifies the signature was created with this message and public key
func (p PublicKey) Verify(message []byte, sig Signature) bool {
	if len(p) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition encodes the public key into a ledger condition
func (p PublicKey) Condition() ledger.Condition {
	return ledger.NewCondition(ledger.SigsExtension, ledger.Ed25519Type, p)
}

// Address returns the address of the key holder.
func (p PublicKey) Address() ledger.Address {
	return p.Condition().Address()
}

// Equals compares two keys.
func (p PublicKey) Equals(o PublicKey) bool {
	return bytes.Equal(p, o)
}

// String returns the hex encoded key.
func (p PublicKey) String() string {
	return hex.EncodeToString(p)
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) (Signature, error) {
	if len(p.key) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "private key not initialized")
	}
	return ed25519.Sign(p.key, message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PublicKey {
	pub := p.key.Public().(ed25519.PublicKey)
	return PublicKey(pub)
}

// Seed returns the 32 byte seed the key was built from.
func (p *PrivateKey) Seed() []byte {
	return p.key.Seed()
}

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// DefaultPath is the SLIP-0010 path of the first account key.
const DefaultPath = "m/44'/234'/0'"

// DeriveEd25519 creates a hierarchical deterministic key from a master seed
// following SLIP-0010 for the given path, for example DefaultPath.
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key)
}
