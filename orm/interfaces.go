package orm

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/x"
)

// Object is a keyed record as a bucket stores it. The bucket prefixes Key
// with its name; Value is what gets serialized.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Cloneable
	// Validate is called before every save.
	x.Validater
	Value() ledger.Persistent
}

// Cloneable produces an empty object of the same kind, used by buckets as
// the prototype records are decoded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a Value that SimpleObj can wrap: accounts, lock records,
// signer sequences.
type CloneableData interface {
	x.Validater
	ledger.Persistent
	Copy() CloneableData
}
