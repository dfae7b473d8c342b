package ledgertest

import "github.com/fluxur/ledger"

// Handler is a mock handler that counts calls and returns the configured
// results.
type Handler struct {
	checkCall   int
	CheckResult ledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult ledger.DeliverResult
	DeliverErr    error

	// Panic if set makes both methods panic with it.
	Panic interface{}
	// Write if set is stored in the database before returning.
	Write *ledger.Model
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	h.checkCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.deliverCall++
	if err := h.act(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) act(db ledger.KVStore) error {
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.Write != nil {
		return db.Set(h.Write.Key, h.Write.Value)
	}
	return nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
