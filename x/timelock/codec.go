package timelock

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/gogo/protobuf/proto"
)

// LockRecord binds a subject key to a beneficiary and a release time.
// It is immutable once created.
type LockRecord struct {
	Beneficiary ledger.Address
	SubjectKey  []byte
	ReleaseTime ledger.UnixTime
	LockNonce   uint8
	VaultNonce  uint8
}

const (
	// LockRecordSize is the persisted size of a LockRecord in bytes.
	LockRecordSize = 83

	maxSubjectLength = 32
	discriminatorLen = 8
)

var lockRecordDiscriminator = func() []byte {
	sum := sha256.Sum256([]byte("account:LockRecord"))
	return sum[:discriminatorLen]
}()

// Marshal writes the fixed size record layout:
//
//   [0:8)   discriminator
//   [8:40)  beneficiary
//   [40:72) subject key, zero padded
//   [72:80) release time, little endian
//   80      lock nonce
//   81      vault nonce
//   82      subject key length
func (r *LockRecord) Marshal() ([]byte, error) {
	if len(r.Beneficiary) != ledger.AddressLength {
		return nil, errors.Wrap(errors.ErrModel, "beneficiary")
	}
	if n := len(r.SubjectKey); n == 0 || n > maxSubjectLength {
		return nil, errors.Wrap(errors.ErrModel, "subject key")
	}
	bz := make([]byte, LockRecordSize)
	copy(bz[0:8], lockRecordDiscriminator)
	copy(bz[8:40], r.Beneficiary)
	copy(bz[40:72], r.SubjectKey)
	binary.LittleEndian.PutUint64(bz[72:80], uint64(r.ReleaseTime))
	bz[80] = r.LockNonce
	bz[81] = r.VaultNonce
	bz[82] = uint8(len(r.SubjectKey))
	return bz, nil
}

// Unmarshal reads the layout written by Marshal.
func (r *LockRecord) Unmarshal(bz []byte) error {
	if len(bz) != LockRecordSize {
		return errors.Wrapf(errors.ErrModel, "lock record of %d bytes", len(bz))
	}
	if !bytes.Equal(bz[0:8], lockRecordDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not a lock record")
	}
	n := int(bz[82])
	if n == 0 || n > maxSubjectLength {
		return errors.Wrapf(errors.ErrModel, "subject key length %d", n)
	}
	r.Beneficiary = append(ledger.Address(nil), bz[8:40]...)
	r.SubjectKey = append([]byte(nil), bz[40:40+n]...)
	r.ReleaseTime = ledger.UnixTime(int64(binary.LittleEndian.Uint64(bz[72:80])))
	r.LockNonce = bz[80]
	r.VaultNonce = bz[81]
	return nil
}

// CreateLockMsg creates a lock for a subject key. The signer paying the
// fee becomes the beneficiary.
type CreateLockMsg struct {
	// SubjectKey identifies the lock, 1 to 32 bytes.
	SubjectKey []byte `protobuf:"bytes,1,opt,name=subject_key,proto3" json:"subject_key,omitempty"`
	// ReleaseTime is the unix time after which the vault can be released.
	ReleaseTime ledger.UnixTime `protobuf:"varint,2,opt,name=release_time,proto3" json:"release_time,omitempty"`
	// Lock and Vault are optional. When set they must match the derived
	// addresses.
	Lock  ledger.Address `protobuf:"bytes,3,opt,name=lock,proto3" json:"lock,omitempty"`
	Vault ledger.Address `protobuf:"bytes,4,opt,name=vault,proto3" json:"vault,omitempty"`
}

type wireCreateLockMsg CreateLockMsg

func (m *wireCreateLockMsg) Reset()         { *m = wireCreateLockMsg{} }
func (m *wireCreateLockMsg) String() string { return proto.CompactTextString(m) }
func (*wireCreateLockMsg) ProtoMessage()    {}

func (m *CreateLockMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireCreateLockMsg)(m))
}

func (m *CreateLockMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireCreateLockMsg)(m))
}

func (m *CreateLockMsg) Reset()         { *m = CreateLockMsg{} }
func (m *CreateLockMsg) String() string { return proto.CompactTextString((*wireCreateLockMsg)(m)) }
func (*CreateLockMsg) ProtoMessage()    {}

// ReleaseLockMsg moves the excess vault balance to the beneficiary once the
// release time has passed. Anyone can submit it.
type ReleaseLockMsg struct {
	SubjectKey  []byte         `protobuf:"bytes,1,opt,name=subject_key,proto3" json:"subject_key,omitempty"`
	Lock        ledger.Address `protobuf:"bytes,2,opt,name=lock,proto3" json:"lock,omitempty"`
	Vault       ledger.Address `protobuf:"bytes,3,opt,name=vault,proto3" json:"vault,omitempty"`
	Beneficiary ledger.Address `protobuf:"bytes,4,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
}

type wireReleaseLockMsg ReleaseLockMsg

func (m *wireReleaseLockMsg) Reset()         { *m = wireReleaseLockMsg{} }
func (m *wireReleaseLockMsg) String() string { return proto.CompactTextString(m) }
func (*wireReleaseLockMsg) ProtoMessage()    {}

func (m *ReleaseLockMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*wireReleaseLockMsg)(m))
}

func (m *ReleaseLockMsg) Unmarshal(bz []byte) error {
	return proto.Unmarshal(bz, (*wireReleaseLockMsg)(m))
}

func (m *ReleaseLockMsg) Reset()         { *m = ReleaseLockMsg{} }
func (m *ReleaseLockMsg) String() string { return proto.CompactTextString((*wireReleaseLockMsg)(m)) }
func (*ReleaseLockMsg) ProtoMessage()    {}
