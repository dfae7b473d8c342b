package app

import (
	"context"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &ledgertest.Decorator{}
	c2 := &ledgertest.Decorator{}
	c3 := &ledgertest.Decorator{}
	h := &ledgertest.Handler{}

	var missing *ledgertest.Decorator
	stack := ChainDecorators(c1, nil, c2).Chain(missing, c3).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &ledgertest.Tx{}

	_, err := stack.Check(ctx, db, tx)
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	require.NoError(t, err)

	for _, d := range []*ledgertest.Decorator{c1, c2, c3} {
		assert.Equal(t, 1, d.CheckCallCount())
		assert.Equal(t, 1, d.DeliverCallCount())
	}
	assert.Equal(t, 2, h.CallCount())

	// An error stops the chain before the following decorators.
	c2.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, c1.DeliverCallCount())
	assert.Equal(t, 2, c2.DeliverCallCount())
	assert.Equal(t, 1, c3.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainOrder(t *testing.T) {
	var order []string
	rec := func(name string) ledger.Decorator {
		return orderDecorator{name: name, order: &order}
	}
	stack := ChainDecorators(rec("a"), rec("b"), rec("c")).WithHandler(&ledgertest.Handler{})

	_, err := stack.Check(context.Background(), store.MemStore(), &ledgertest.Tx{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

type orderDecorator struct {
	name  string
	order *[]string
}

func (d orderDecorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	*d.order = append(*d.order, d.name)
	return next.Check(ctx, db, tx)
}

func (d orderDecorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	*d.order = append(*d.order, d.name)
	return next.Deliver(ctx, db, tx)
}
