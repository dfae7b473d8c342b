package timelock

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

const (
	pathCreateLockMsg  = "timelock/create"
	pathReleaseLockMsg = "timelock/release"
)

var _ ledger.Msg = (*CreateLockMsg)(nil)

// Path returns the routing path for this message
func (CreateLockMsg) Path() string {
	return pathCreateLockMsg
}

// Validate checks the message in isolation. Comparing the release time
// with the block time is done by the handler.
func (m *CreateLockMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "SubjectKey", validateSubject(m.SubjectKey))
	if m.ReleaseTime <= 0 {
		errs = errors.AppendField(errs, "ReleaseTime", errors.Wrap(errors.ErrInput, "must be positive"))
	}
	if m.Lock != nil {
		errs = errors.AppendField(errs, "Lock", m.Lock.Validate())
	}
	if m.Vault != nil {
		errs = errors.AppendField(errs, "Vault", m.Vault.Validate())
	}
	return errs
}

var _ ledger.Msg = (*ReleaseLockMsg)(nil)

// Path returns the routing path for this message
func (ReleaseLockMsg) Path() string {
	return pathReleaseLockMsg
}

// Validate requires all accounts of the release.
func (m *ReleaseLockMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "SubjectKey", validateSubject(m.SubjectKey))
	errs = errors.AppendField(errs, "Lock", m.Lock.Validate())
	errs = errors.AppendField(errs, "Vault", m.Vault.Validate())
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	return errs
}
