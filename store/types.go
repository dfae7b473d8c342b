package store

import "github.com/fluxur/ledger"

// Move references for all storage types into this package
// for shorter names everywhere.

type (
	ReadOnlyKVStore  = ledger.ReadOnlyKVStore
	SetDeleter       = ledger.SetDeleter
	KVStore          = ledger.KVStore
	Batch            = ledger.Batch
	Iterator         = ledger.Iterator
	CacheableKVStore = ledger.CacheableKVStore
	KVCacheWrap      = ledger.KVCacheWrap
	CommitKVStore    = ledger.CommitKVStore
	CommitID         = ledger.CommitID
	Model            = ledger.Model
)

// Pair constructs a model from a key-value pair.
var Pair = ledger.Pair
