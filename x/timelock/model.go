package timelock

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/orm"
)

// BucketName is where lock records are stored, keyed by lock address.
const BucketName = "locks"

var _ orm.CloneableData = (*LockRecord)(nil)

// Validate ensures the record can be persisted.
func (r *LockRecord) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Beneficiary", r.Beneficiary.Validate())
	errs = errors.AppendField(errs, "SubjectKey", validateSubject(r.SubjectKey))
	if r.ReleaseTime <= 0 {
		errs = errors.AppendField(errs, "ReleaseTime", errors.ErrInput)
	}
	return errs
}

// Copy makes a deep copy of the record.
func (r *LockRecord) Copy() orm.CloneableData {
	return &LockRecord{
		Beneficiary: r.Beneficiary.Clone(),
		SubjectKey:  append([]byte(nil), r.SubjectKey...),
		ReleaseTime: r.ReleaseTime,
		LockNonce:   r.LockNonce,
		VaultNonce:  r.VaultNonce,
	}
}

func validateSubject(subject []byte) error {
	switch n := len(subject); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "subject key")
	case n > maxSubjectLength:
		return errors.Wrapf(errors.ErrInput, "subject key longer than %d bytes", maxSubjectLength)
	}
	return nil
}

// NewLock creates a lock record object stored under the lock address.
func NewLock(lock ledger.Address, rec *LockRecord) orm.Object {
	return orm.NewSimpleObj(lock, rec)
}

// AsLock will safely type-cast any value from Bucket to a LockRecord.
func AsLock(obj orm.Object) *LockRecord {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*LockRecord)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the lock bucket with a beneficiary index.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, NewLock(nil, new(LockRecord))).
		WithIndex("beneficiary", beneficiaryIndex, false)
	return Bucket{Bucket: b}
}

func beneficiaryIndex(obj orm.Object) ([]byte, error) {
	rec := AsLock(obj)
	if rec == nil {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return rec.Beneficiary, nil
}

// GetLock returns the record stored at the lock address or ErrNotFound.
func (b Bucket) GetLock(db ledger.ReadOnlyKVStore, lock ledger.Address) (*LockRecord, error) {
	obj, err := b.Get(db, lock)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "lock %s", lock)
	}
	return AsLock(obj), nil
}

// ByBeneficiary returns all locks a beneficiary can release.
func (b Bucket) ByBeneficiary(db ledger.ReadOnlyKVStore, beneficiary ledger.Address) ([]*LockRecord, error) {
	objs, err := b.GetIndexed(db, "beneficiary", beneficiary)
	if err != nil {
		return nil, err
	}
	res := make([]*LockRecord, 0, len(objs))
	for _, o := range objs {
		res = append(res, AsLock(o))
	}
	return res, nil
}
