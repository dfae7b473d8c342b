package cash

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// OwnerName is the owner of accounts that hold value only. Only accounts
// owned by cash can be debited with Transfer.
const OwnerName = "cash"

var _ orm.CloneableData = (*Account)(nil)

// Validate requires an owner name.
func (a *Account) Validate() error {
	if a.Owner == "" {
		return errors.Field("Owner", errors.ErrEmpty, "required")
	}
	return nil
}

// Copy makes a new account with the same state
func (a *Account) Copy() orm.CloneableData {
	cpy := *a
	return &cpy
}

// Add increases the balance, failing on overflow.
func (a *Account) Add(amount uint64) error {
	if a.Balance+amount < a.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	a.Balance += amount
	return nil
}

// Subtract decreases the balance, failing when funds are insufficient.
func (a *Account) Subtract(amount uint64) error {
	if a.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", a.Balance, amount)
	}
	a.Balance -= amount
	return nil
}

// NewAccount creates an account object stored under given address.
func NewAccount(addr ledger.Address, owner string, balance uint64, space uint32) orm.Object {
	return orm.NewSimpleObj(addr, &Account{
		Owner:   owner,
		Balance: balance,
		Space:   space,
	})
}

// AsAccount will safely type-cast any value from Bucket to an Account
func AsAccount(obj orm.Object) *Account {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Account)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewAccount(nil, "", 0, 0)),
	}
}

// GetOrCreate returns the account at addr, or a new empty account owned by
// cash if none exists yet.
func (b Bucket) GetOrCreate(db ledger.ReadOnlyKVStore, addr ledger.Address) (orm.Object, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		obj = NewAccount(addr, OwnerName, 0, 0)
	}
	return obj, nil
}
