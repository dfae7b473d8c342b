package cash

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

var _ ledger.Msg = (*SendMsg)(nil)

const maxMemoSize int = 128

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	if s.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "Src", s.Src.Validate())
	errs = errors.AppendField(errs, "Dest", s.Dest.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return errs
}
