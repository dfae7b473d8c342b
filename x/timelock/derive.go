package timelock

import (
	"github.com/fluxur/ledger"
)

const (
	// ProgramName is the program identity all derived addresses of this
	// extension are computed with. It is also the owner of lock accounts.
	ProgramName = "timelock"

	lockRole  = "lock"
	vaultRole = "vault"
)

// LockCondition is the derivation proof of the lock record address for
// given subject and nonce.
func LockCondition(subject []byte, nonce uint8) ledger.Condition {
	return derivedCondition(lockRole, subject, nonce)
}

// VaultCondition is the derivation proof of the vault address for given
// subject and nonce. Granting it to the context authorizes transfers out
// of the vault.
func VaultCondition(subject []byte, nonce uint8) ledger.Condition {
	return derivedCondition(vaultRole, subject, nonce)
}

func derivedCondition(role string, subject []byte, nonce uint8) ledger.Condition {
	data := make([]byte, 0, len(subject)+1)
	data = append(data, subject...)
	data = append(data, nonce)
	return ledger.NewCondition(ProgramName, role, data)
}

// FindLockAddress returns the lock record address for given subject and
// the nonce that makes it fall off the curve.
func FindLockAddress(subject []byte) (ledger.Address, uint8, error) {
	return ledger.FindDerivedAddress(ProgramName, []byte(lockRole), subject)
}

// FindVaultAddress returns the vault address for given subject and the
// nonce that makes it fall off the curve.
func FindVaultAddress(subject []byte) (ledger.Address, uint8, error) {
	return ledger.FindDerivedAddress(ProgramName, []byte(vaultRole), subject)
}

// lockAddress re-derives the lock address from a stored nonce.
func lockAddress(subject []byte, nonce uint8) (ledger.Address, error) {
	return ledger.CreateDerivedAddress(ProgramName, []byte(lockRole), subject, []byte{nonce})
}

// vaultAddress re-derives the vault address from a stored nonce.
func vaultAddress(subject []byte, nonce uint8) (ledger.Address, error) {
	return ledger.CreateDerivedAddress(ProgramName, []byte(vaultRole), subject, []byte{nonce})
}
