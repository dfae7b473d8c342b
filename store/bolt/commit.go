// Package bolt provides a commit store persisted in a single bbolt file.
//
// Unlike the iavl store it keeps no history and no merkle proofs. The
// application hash is a hash chain over all committed changes, which is
// enough for a node to detect diverging state.
package bolt

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/store"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	stateBucket = []byte("state") // application key value pairs
	metaBucket  = []byte("meta")  // commit information
)

// Meta keys
var (
	metaVersion = []byte("version")
	metaHash    = []byte("hash")
)

// CommitStore keeps the committed state in a bbolt database. Changes written
// through cache wraps are held in memory until Commit.
type CommitStore struct {
	db      *bolt.DB
	pending store.BTreeCacheWrap
	ops     *store.NonAtomicBatch
	latest  store.CommitID
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore opens or creates the database file at given path.
func NewCommitStore(path string) (*CommitStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{stateBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create buckets: %s", err)
	}
	s := &CommitStore{db: db}
	s.resetPending()
	return s, nil
}

// Close releases the database file.
func (s *CommitStore) Close() error {
	return s.db.Close()
}

func (s *CommitStore) resetPending() {
	// The batch is never written directly, Commit replays its operations
	// inside a single bolt transaction.
	s.ops = store.NewNonAtomicBatch(nil)
	s.pending = store.NewBTreeCacheWrap(reader{db: s.db}, s.ops, nil)
}

// Get returns the value at last committed state.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	return reader{db: s.db}.Get(key)
}

// CacheWrap returns a cache on top of the not yet committed changes.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return s.pending.CacheWrap()
}

// Commit writes all pending changes in one transaction and returns the new
// version and hash.
func (s *CommitStore) Commit() (store.CommitID, error) {
	ops := s.ops.ShowOps()
	id := store.CommitID{Version: s.latest.Version + 1}

	h := sha256.New()
	_, _ = h.Write(s.latest.Hash)
	err := s.db.Update(func(tx *bolt.Tx) error {
		state := tx.Bucket(stateBucket)
		for _, op := range ops {
			writeOp(h, op)
			if err := op.Apply(bucketWriter{state}); err != nil {
				return err
			}
		}
		id.Hash = h.Sum(nil)

		meta := tx.Bucket(metaBucket)
		var version [8]byte
		binary.BigEndian.PutUint64(version[:], uint64(id.Version))
		if err := meta.Put(metaVersion, version[:]); err != nil {
			return err
		}
		return meta.Put(metaHash, id.Hash)
	})
	if err != nil {
		return store.CommitID{}, errors.Wrapf(errors.ErrDatabase, "commit %d: %s", id.Version, err)
	}
	s.latest = id
	s.resetPending()
	return id, nil
}

// writeOp feeds an unambiguous encoding of the operation to the hash.
func writeOp(h interface{ Write([]byte) (int, error) }, op store.Op) {
	var buf [binary.MaxVarintLen64]byte
	if op.IsSetOp() {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{2})
	}
	for _, b := range [][]byte{op.Key(), op.Value()} {
		n := binary.PutUvarint(buf[:], uint64(len(b)))
		_, _ = h.Write(buf[:n])
		_, _ = h.Write(b)
	}
}

// LoadLatestVersion reads the last commit information. Pending changes are
// dropped.
func (s *CommitStore) LoadLatestVersion() error {
	err := s.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if raw := meta.Get(metaVersion); len(raw) == 8 {
			s.latest.Version = int64(binary.BigEndian.Uint64(raw))
		}
		s.latest.Hash = append([]byte(nil), meta.Get(metaHash)...)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.resetPending()
	return nil
}

// LatestVersion returns info on the latest committed version.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return s.latest, nil
}

type bucketWriter struct {
	b *bolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return w.b.Put(key, value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.b.Delete(key)
}

// reader gives read only access to the committed state.
type reader struct {
	db *bolt.DB
}

var _ store.ReadOnlyKVStore = reader{}

func (r reader) Get(key []byte) ([]byte, error) {
	var val []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(stateBucket).Get(key); v != nil {
			// Copy, the slice is only valid during the transaction.
			val = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

func (r reader) Has(key []byte) (bool, error) {
	val, err := r.Get(key)
	return val != nil, err
}

func (r reader) Iterator(start, end []byte) (store.Iterator, error) {
	models, err := r.collect(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

func (r reader) ReverseIterator(start, end []byte) (store.Iterator, error) {
	models, err := r.collect(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

// collect returns all pairs in [start, end) in ascending order.
func (r reader) collect(start, end []byte) ([]store.Model, error) {
	var res []store.Model
	err := r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(stateBucket).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			res = append(res, store.Pair(append([]byte{}, k...), append([]byte{}, v...)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}
