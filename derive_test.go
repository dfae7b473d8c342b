package ledger

import (
	"bytes"
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestFindDerivedAddressIsDeterministic(t *testing.T) {
	a1, n1, err := FindDerivedAddress("timelock", []byte("lock"), []byte("ABC"))
	require.NoError(t, err)
	a2, n2, err := FindDerivedAddress("timelock", []byte("lock"), []byte("ABC"))
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, n1, n2)
	assert.Len(t, a1, AddressLength)
	assert.False(t, IsOnCurve(a1))

	again, err := CreateDerivedAddress("timelock", []byte("lock"), []byte("ABC"), []byte{n1})
	require.NoError(t, err)
	assert.Equal(t, a1, again)
}

func TestFindDerivedAddressReturnsHighestNonce(t *testing.T) {
	seeds := [][]byte{[]byte("vault"), []byte("subject")}
	addr, nonce, err := FindDerivedAddress("timelock", seeds...)
	require.NoError(t, err)

	// Every higher nonce must produce an on curve digest.
	for n := 255; n > int(nonce); n-- {
		d := derivedDigest("timelock", seeds[0], seeds[1], []byte{byte(n)})
		assert.True(t, IsOnCurve(d), "nonce %d", n)
	}
	assert.Equal(t, derivedDigest("timelock", seeds[0], seeds[1], []byte{nonce}), addr)
}

func TestDerivedAddressesDoNotCollide(t *testing.T) {
	seen := make(map[string]string)
	for _, role := range []string{"lock", "vault"} {
		for _, subject := range []string{"ABC", "ABD", "a", "another-subject"} {
			addr, _, err := FindDerivedAddress("timelock", []byte(role), []byte(subject))
			require.NoError(t, err)
			name := role + "/" + subject
			if prev, ok := seen[string(addr)]; ok {
				t.Fatalf("%s collides with %s", name, prev)
			}
			seen[string(addr)] = name
		}
	}

	// Program identity is part of the digest.
	a, _, err := FindDerivedAddress("timelock", []byte("lock"), []byte("ABC"))
	require.NoError(t, err)
	b, _, err := FindDerivedAddress("escrow", []byte("lock"), []byte("ABC"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDerivedAddressIsNeverASigner(t *testing.T) {
	for i := 0; i < 20; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		assert.True(t, IsOnCurve(pub))
	}
	addr, _, err := FindDerivedAddress("timelock", []byte("vault"), []byte("ABC"))
	require.NoError(t, err)
	assert.False(t, IsOnCurve(addr))
}

func TestDerivationSeedLimits(t *testing.T) {
	long := bytes.Repeat([]byte{1}, MaxSeedLength+1)
	_, _, err := FindDerivedAddress("timelock", long)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = CreateDerivedAddress("timelock", long)
	assert.True(t, errors.ErrInput.Is(err))

	many := make([][]byte, MaxSeeds)
	for i := range many {
		many[i] = []byte{byte(i)}
	}
	// The nonce would be seed number 17.
	_, _, err = FindDerivedAddress("timelock", many...)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = CreateDerivedAddress("timelock", append(many, []byte{1})...)
	assert.True(t, errors.ErrInput.Is(err))

	exact := bytes.Repeat([]byte{7}, MaxSeedLength)
	_, _, err = FindDerivedAddress("timelock", []byte("lock"), exact)
	assert.NoError(t, err)
}

func TestCreateDerivedAddressRejectsCurvePoints(t *testing.T) {
	seeds := [][]byte{[]byte("vault"), []byte("subject")}
	_, nonce, err := FindDerivedAddress("timelock", seeds...)
	require.NoError(t, err)
	if nonce == 255 {
		t.Skip("first nonce is already off curve")
	}
	_, err = CreateDerivedAddress("timelock", seeds[0], seeds[1], []byte{255})
	assert.True(t, errors.ErrInput.Is(err))
}
