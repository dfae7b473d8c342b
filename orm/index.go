package orm

import (
	"bytes"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/store"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or a MultiRef of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ ledger.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db ledger.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	}

	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey == nil {
		return nil
	}
	return i.insert(db, newKey, save.Key())
}

func (i Index) insert(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := refs.Unmarshal(cur); err != nil {
			return errors.Wrap(errors.ErrState, err.Error())
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

func (i Index) remove(db ledger.KVStore, key []byte, pk []byte) error {
	dbkey := i.IndexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index ref")
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "index points to another object")
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	bz, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

// Refs returns the primary keys of all objects indexed under given key.
func (i Index) Refs(db ledger.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(key))
	if err != nil || val == nil {
		return nil, err
	}
	return i.decode(val)
}

func (i Index) decode(val []byte) ([][]byte, error) {
	if i.unique {
		return [][]byte{val}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(val); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter. The result holds the
// referenced objects, not the index entries.
func (i Index) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	var refs [][]byte
	switch mod {
	case ledger.KeyQueryMod:
		r, err := i.Refs(db, data)
		if err != nil {
			return nil, err
		}
		refs = r
	case ledger.PrefixQueryMod:
		it, err := db.Iterator(store.PrefixRange(i.IndexKey(data)))
		if err != nil {
			return nil, err
		}
		entries, err := store.ReadAll(it)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			r, err := i.decode(e.Value)
			if err != nil {
				return nil, err
			}
			refs = append(refs, r...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
	return i.loadRefs(db, refs)
}

func (i Index) loadRefs(db ledger.ReadOnlyKVStore, refs [][]byte) ([]ledger.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]ledger.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, ledger.Pair(key, value))
	}
	return res, nil
}
