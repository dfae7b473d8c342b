package app

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the full ABCI application: StoreApp handles state, genesis
// and queries, BaseApp decodes transactions and runs them through the
// handler stack.
type BaseApp struct {
	*StoreApp
	decoder ledger.TxDecoder
	handler ledger.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp wires a decoder and a handler stack on top of store. With
// debug set, internal error details are included in the responses.
func NewBaseApp(store *StoreApp, decoder ledger.TxDecoder, handler ledger.Handler, debug bool) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler, debug: debug}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.begin("deliver_tx", raw)
	if err != nil {
		return ledger.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return ledger.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.begin("check_tx", raw)
	if err != nil {
		return ledger.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return ledger.CheckOrError(res, err, b.debug)
}

// begin decodes raw and returns the block context tagged for logging.
func (b BaseApp) begin(call string, raw []byte) (ledger.Context, ledger.Tx, error) {
	tx, err := b.decode(raw)
	if err != nil {
		return nil, nil, err
	}
	ctx := ledger.WithLogInfo(b.BlockContext(), "call", call, "path", ledger.GetPath(tx))
	return ctx, tx, nil
}

// decode never panics, a broken decoder gives ErrPanic.
func (b BaseApp) decode(raw []byte) (tx ledger.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
