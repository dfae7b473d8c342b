package app

import (
	"bytes"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// RegisterQuery registers the raw store access under "/". Data is the
// full database key.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	switch mod {
	case ledger.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []ledger.Model{ledger.Pair(data, value)}, nil
	case ledger.PrefixQueryMod:
		it, err := db.Iterator(store.PrefixRange(data))
		if err != nil {
			return nil, err
		}
		return store.ReadAll(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}

// ABCIStore exposes the abci.Query interface as a ReadOnlyKVStore. It
// requires the raw store query to be registered.
type ABCIStore struct {
	app abci.Application
}

var _ ledger.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
// This can be wrapped with a bucket to reuse key/index/parse logic
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query code %d: %s", query.Code, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(errors.ErrState, "unmarshal result set")
	}
	if len(value.Results) == 0 {
		return nil, nil
	}
	return value.Results[0], nil
}

// Has returns true if the given key is in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator performs a prefix query over the abci server. Only a range
// produced by store.PrefixRange or the entire range is supported.
func (a *ABCIStore) Iterator(start, end []byte) (ledger.Iterator, error) {
	if _, pend := store.PrefixRange(start); !bytes.Equal(pend, end) {
		return nil, errors.Wrap(errors.ErrInput, "only prefix ranges are supported")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + ledger.PrefixQueryMod,
		Data: start,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query code %d: %s", query.Code, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (ledger.Iterator, error) {
	it, err := a.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	models, err := store.ReadAll(it)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func toModels(keys, values []byte) ([]ledger.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(errors.ErrState, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(errors.ErrState, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
