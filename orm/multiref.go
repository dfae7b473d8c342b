package orm

import (
	"bytes"
	"sort"

	"github.com/fluxur/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// MultiRef contains a sorted set of primary keys. It is the value kept
// under a non unique index entry.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

type wireMultiRef MultiRef

func (m *wireMultiRef) Reset()         { *m = wireMultiRef{} }
func (m *wireMultiRef) String() string { return proto.CompactTextString(m) }
func (*wireMultiRef) ProtoMessage()    {}

// Marshal encodes the reference set with protobuf.
func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*wireMultiRef)(m))
}

// Unmarshal decodes a protobuf encoded reference set.
func (m *MultiRef) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireMultiRef)(m))
}

func (m *MultiRef) Validate() error {
	for i, r := range m.Refs {
		if len(r) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "ref %d", i)
		}
	}
	return nil
}

func (m *MultiRef) Copy() CloneableData {
	refs := make([][]byte, len(m.Refs))
	copy(refs, m.Refs)
	return &MultiRef{Refs: refs}
}

// Add inserts a ref in sorted order. Adding an existing ref fails.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.find(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "cannot add a ref twice")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove deletes a ref. Removing a missing ref fails.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.find(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "cannot remove non-existent ref")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

func (m *MultiRef) find(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}
