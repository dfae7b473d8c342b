package cash

import (
	"github.com/fluxur/ledger"
	"github.com/gogo/protobuf/proto"
)

// Account holds native units for one address.
type Account struct {
	// Owner is the name of the extension allowed to manage the account.
	Owner string `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Balance in native units.
	Balance uint64 `protobuf:"varint,2,opt,name=balance,proto3" json:"balance,omitempty"`
	// Space is the number of data bytes the account pays rent for.
	Space uint32 `protobuf:"varint,3,opt,name=space,proto3" json:"space,omitempty"`
}

type wireAccount Account

func (m *wireAccount) Reset()         { *m = wireAccount{} }
func (m *wireAccount) String() string { return proto.CompactTextString(m) }
func (*wireAccount) ProtoMessage()    {}

func (m *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*wireAccount)(m))
}

func (m *Account) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireAccount)(m))
}

// SendMsg moves native units between two accounts.
type SendMsg struct {
	Src    ledger.Address `protobuf:"bytes,1,opt,name=src,proto3" json:"src,omitempty"`
	Dest   ledger.Address `protobuf:"bytes,2,opt,name=dest,proto3" json:"dest,omitempty"`
	Amount uint64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo   string         `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type wireSendMsg SendMsg

func (m *wireSendMsg) Reset()         { *m = wireSendMsg{} }
func (m *wireSendMsg) String() string { return proto.CompactTextString(m) }
func (*wireSendMsg) ProtoMessage()    {}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireSendMsg)(m))
}

func (m *SendMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireSendMsg)(m))
}

// Reset, String and ProtoMessage let SendMsg be embedded in a
// transaction.
func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString((*wireSendMsg)(m)) }
func (*SendMsg) ProtoMessage()    {}

// Configuration holds the reserve economics. An account must hold at least
// MinimumBalance(space) units to be created.
type Configuration struct {
	RentPerByteYear    uint64 `protobuf:"varint,1,opt,name=rent_per_byte_year,proto3" json:"rent_per_byte_year"`
	ExemptionThreshold uint64 `protobuf:"varint,2,opt,name=exemption_threshold,proto3" json:"exemption_threshold"`
	AccountOverhead    uint64 `protobuf:"varint,3,opt,name=account_overhead,proto3" json:"account_overhead"`
}

type wireConfiguration Configuration

func (m *wireConfiguration) Reset()         { *m = wireConfiguration{} }
func (m *wireConfiguration) String() string { return proto.CompactTextString(m) }
func (*wireConfiguration) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*wireConfiguration)(m))
}

func (m *Configuration) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireConfiguration)(m))
}
