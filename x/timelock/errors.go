package timelock

import "github.com/fluxur/ledger/errors"

var (
	ErrUnlockTimeInPast   = errors.Register(1100, "unlock time in the past")
	ErrLockNotExpired     = errors.Register(1101, "lock not expired")
	ErrInvalidBeneficiary = errors.Register(1102, "invalid beneficiary")
	ErrAddressMismatch    = errors.Register(1103, "address mismatch")
)
