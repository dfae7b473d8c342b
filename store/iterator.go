package store

import (
	"bytes"

	"github.com/fluxur/ledger/errors"
	"github.com/google/btree"
)

// collectItems returns a snapshot of all btree items in [start, end).
// Taking a copy lets the caller keep writing to the cache while iterating.
func collectItems(bt *btree.BTree, start, end []byte, ascending bool) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	if !ascending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// mergeIterator combines the items of a cache layer with the iterator of
// its parent. Cached values shadow the parent and deleted items hide them.
type mergeIterator struct {
	items     []btree.Item
	idx       int
	parent    Iterator
	ascending bool

	// next parent pair, read ahead to compare keys
	pKey, pValue []byte
	pLoaded      bool
	pDone        bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []btree.Item, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

// Next returns the next key value pair in iteration order or
// ErrIteratorDone.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}
		hasItem := m.idx < len(m.items)

		switch {
		case !hasItem && !m.pLoaded:
			return nil, nil, errors.ErrIteratorDone
		case !hasItem:
			return m.takeParent()
		case !m.pLoaded:
			if k, v, ok := m.takeItem(); ok {
				return k, v, nil
			}
			continue
		}

		cmp := bytes.Compare(m.items[m.idx].(keyer).Key(), m.pKey)
		if !m.ascending {
			cmp = -cmp
		}
		switch {
		case cmp > 0:
			return m.takeParent()
		case cmp == 0:
			// The cache overrides the parent value.
			m.pLoaded = false
		}
		if k, v, ok := m.takeItem(); ok {
			return k, v, nil
		}
	}
}

func (m *mergeIterator) loadParent() error {
	if m.pLoaded || m.pDone || m.parent == nil {
		return nil
	}
	k, v, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.pDone = true
		return nil
	}
	if err != nil {
		return err
	}
	m.pKey, m.pValue, m.pLoaded = k, v, true
	return nil
}

func (m *mergeIterator) takeParent() ([]byte, []byte, error) {
	m.pLoaded = false
	return m.pKey, m.pValue, nil
}

// takeItem advances over the current cache item. ok is false for
// deleted items.
func (m *mergeIterator) takeItem() ([]byte, []byte, bool) {
	item := m.items[m.idx]
	m.idx++
	if s, ok := item.(setItem); ok {
		return s.key, s.value, true
	}
	return nil, nil, false
}

// Release releases the parent iterator.
func (m *mergeIterator) Release() {
	if m.parent != nil {
		m.parent.Release()
	}
	m.items = nil
}
