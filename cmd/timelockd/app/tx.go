package app

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/x/cash"
	"github.com/fluxur/ledger/x/sigs"
	"github.com/fluxur/ledger/x/timelock"
	"github.com/gogo/protobuf/proto"
)

// Tx carries the signatures and exactly one message.
type Tx struct {
	Signatures         []*sigs.StdSignature     `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CashSendMsg        *cash.SendMsg            `protobuf:"bytes,2,opt,name=cash_send_msg,proto3" json:"cash_send_msg,omitempty"`
	TimelockCreateMsg  *timelock.CreateLockMsg  `protobuf:"bytes,3,opt,name=timelock_create_msg,proto3" json:"timelock_create_msg,omitempty"`
	TimelockReleaseMsg *timelock.ReleaseLockMsg `protobuf:"bytes,4,opt,name=timelock_release_msg,proto3" json:"timelock_release_msg,omitempty"`
}

type wireTx Tx

func (m *wireTx) Reset()         { *m = wireTx{} }
func (m *wireTx) String() string { return proto.CompactTextString(m) }
func (*wireTx) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*wireTx)(tx))
}

func (tx *Tx) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireTx)(tx))
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString((*wireTx)(tx)) }
func (*Tx) ProtoMessage()     {}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (ledger.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message set on the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	var msgs []ledger.Msg
	if tx.CashSendMsg != nil {
		msgs = append(msgs, tx.CashSendMsg)
	}
	if tx.TimelockCreateMsg != nil {
		msgs = append(msgs, tx.TimelockCreateMsg)
	}
	if tx.TimelockReleaseMsg != nil {
		msgs = append(msgs, tx.TimelockReleaseMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages, one allowed", len(msgs))
	}
}

// GetSignatures returns the signatures of all signers.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without any
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := *tx
	unsigned.Signatures = nil
	return unsigned.Marshal()
}
