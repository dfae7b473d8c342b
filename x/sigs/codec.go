package sigs

import (
	"github.com/gogo/protobuf/proto"
)

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
type StdSignature struct {
	Sequence  int64  `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    []byte `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte `protobuf:"bytes,3,opt,name=signature,proto3" json:"signature,omitempty"`
}

type wireStdSignature StdSignature

func (m *wireStdSignature) Reset()         { *m = wireStdSignature{} }
func (m *wireStdSignature) String() string { return proto.CompactTextString(m) }
func (*wireStdSignature) ProtoMessage()    {}

func (m *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*wireStdSignature)(m))
}

func (m *StdSignature) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireStdSignature)(m))
}

// Reset, String and ProtoMessage let StdSignature be embedded as a
// repeated field of a transaction.
func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString((*wireStdSignature)(m)) }
func (*StdSignature) ProtoMessage()    {}

// UserData is the state of a signer: the public key and the sequence
// expected in the next signature.
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

type wireUserData UserData

func (m *wireUserData) Reset()         { *m = wireUserData{} }
func (m *wireUserData) String() string { return proto.CompactTextString(m) }
func (*wireUserData) ProtoMessage()    {}

func (m *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*wireUserData)(m))
}

func (m *UserData) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireUserData)(m))
}
