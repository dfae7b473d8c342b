package ledgertest

import "github.com/fluxur/ledger"

// Decorator is a ledger.Decorator that counts its calls. A set CheckErr or
// DeliverErr is returned instead of calling the next handler, which is how
// an authorization failure in front of a handler is simulated.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	checkCall, deliverCall int
}

var _ ledger.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	d.checkCall++
	if err := d.CheckErr; err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	d.deliverCall++
	if err := d.DeliverErr; err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int   { return d.checkCall }
func (d *Decorator) DeliverCallCount() int { return d.deliverCall }
func (d *Decorator) CallCount() int        { return d.checkCall + d.deliverCall }

// Decorate puts d in front of h.
func Decorate(h ledger.Handler, d ledger.Decorator) ledger.Handler {
	return decorated{next: h, dec: d}
}

type decorated struct {
	next ledger.Handler
	dec  ledger.Decorator
}

func (d decorated) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
