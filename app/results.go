package app

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// ResultSet contains a list of keys or values returned by a query.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

type wireResultSet ResultSet

func (m *wireResultSet) Reset()         { *m = wireResultSet{} }
func (m *wireResultSet) String() string { return proto.CompactTextString(m) }
func (*wireResultSet) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*wireResultSet)(m))
}

func (m *ResultSet) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireResultSet)(m))
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrState, "mismatched result set size: %d keys, %d values", len(kref), len(vref))
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o ledger.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
