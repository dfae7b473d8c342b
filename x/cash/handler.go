package cash

import (
	"fmt"
	"strconv"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr ledger.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// SendHandler will handle sending native units
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ ledger.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the units from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := h.control.Transfer(ctx, store, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}

	return &ledger.DeliverResult{
		Log: fmt.Sprintf("sent %d from %s to %s", msg.Amount, msg.Src, msg.Dest),
		Tags: []ledger.KVPair{
			ledger.Tag("action", []byte(SendMsg{}.Path())),
			ledger.Tag("cash.src", []byte(msg.Src.String())),
			ledger.Tag("cash.dest", []byte(msg.Dest.String())),
			ledger.Tag("cash.amount", []byte(strconv.FormatUint(msg.Amount, 10))),
		},
	}, nil
}

func (h SendHandler) validate(ctx ledger.Context, tx ledger.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return msg, nil
}
