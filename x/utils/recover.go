package utils

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

// Recovery turns a panic anywhere below it in the chain into an ErrPanic
// failure of the current transaction. The panic value is logged but never
// returned to the client.
type Recovery struct{}

var _ ledger.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (res *ledger.CheckResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (res *ledger.DeliverResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverInto must be deferred directly, recover only works one frame up.
func recoverInto(ctx ledger.Context, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	ledger.GetLogger(ctx).Error("transaction panicked", "panic", r)
}
