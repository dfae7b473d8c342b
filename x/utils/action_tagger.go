package utils

import (
	"github.com/fluxur/ledger"
)

// ActionTagger will inspect the message being executed and
// add a tag `action = msg.Path()`, so clients have a standard way to
// search and subscribe to lock creation and release.
//
// Handlers that already tag the action are not tagged twice.
type ActionTagger struct{}

var _ ledger.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	// if we error in reporting, let's do so early before dispatching
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	for _, t := range res.Tags {
		if string(t.Key) == ActionKey {
			return res, nil
		}
	}
	res.Tags = append(res.Tags, ledger.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
