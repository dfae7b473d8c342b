package cash

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/x"
)

// Controller is the native value primitive other extensions build on.
type Controller interface {
	// Balance returns the balance at addr, zero for a missing account.
	Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (uint64, error)

	// Account returns the account at addr or ErrNotFound.
	Account(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error)

	// CreateAccount materializes a new account at addr owned by owner,
	// funded with amount taken from payer. Payer must be authorized and
	// amount must cover the reserve for space bytes.
	CreateAccount(ctx ledger.Context, db ledger.KVStore, payer, addr ledger.Address, amount uint64, space uint32, owner string) error

	// Transfer moves amount from one account to another. Source must be
	// authorized and owned by cash.
	Transfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, amount uint64) error

	// MinimumBalance returns the reserve for an account holding space
	// bytes of data.
	MinimumBalance(db ledger.ReadOnlyKVStore, space uint32) (uint64, error)

	// Mint adds amount to the account at addr without a source. It is
	// meant for genesis only.
	Mint(db ledger.KVStore, addr ledger.Address, amount uint64) error
}

// BaseController is the default Controller.
type BaseController struct {
	bucket Bucket
	auth   x.Authenticator
}

var _ Controller = BaseController{}

// NewController returns a controller authorizing through auth.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		bucket: NewBucket(),
		auth:   auth,
	}
}

func (c BaseController) Balance(db ledger.ReadOnlyKVStore, addr ledger.Address) (uint64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if a := AsAccount(obj); a != nil {
		return a.Balance, nil
	}
	return 0, nil
}

func (c BaseController) Account(db ledger.ReadOnlyKVStore, addr ledger.Address) (*Account, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	return AsAccount(obj), nil
}

func (c BaseController) MinimumBalance(db ledger.ReadOnlyKVStore, space uint32) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumBalance(space)
}

func (c BaseController) CreateAccount(ctx ledger.Context, db ledger.KVStore, payer, addr ledger.Address, amount uint64, space uint32, owner string) error {
	if owner == "" {
		return errors.Wrap(errors.ErrInput, "owner required")
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "account address")
	}
	if !c.auth.HasAddress(ctx, payer) {
		return errors.Wrapf(errors.ErrUnauthorized, "payer %s did not sign", payer)
	}

	existing, err := c.bucket.Get(db, addr)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Wrapf(errors.ErrDuplicate, "account %s already exists", addr)
	}

	reserve, err := c.MinimumBalance(db, space)
	if err != nil {
		return err
	}
	if amount < reserve {
		return errors.Wrapf(errors.ErrAmount, "account with %d bytes needs %d, got %d", space, reserve, amount)
	}

	payerObj, err := c.bucket.Get(db, payer)
	if err != nil {
		return err
	}
	if payerObj == nil {
		return errors.Wrapf(errors.ErrAmount, "payer %s has no funds", payer)
	}
	if err := AsAccount(payerObj).Subtract(amount); err != nil {
		return errors.Wrap(err, "payer")
	}

	if err := c.bucket.Save(db, payerObj); err != nil {
		return err
	}
	return c.bucket.Save(db, NewAccount(addr, owner, amount, space))
}

func (c BaseController) Transfer(ctx ledger.Context, db ledger.KVStore, from, to ledger.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if !c.auth.HasAddress(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "source %s not authorized", from)
	}

	sender, err := c.bucket.Get(db, from)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrAmount, "source %s has no funds", from)
	}
	src := AsAccount(sender)
	if src.Owner != OwnerName {
		return errors.Wrapf(errors.ErrUnauthorized, "account owned by %q cannot be debited", src.Owner)
	}
	if err := src.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Save(db, sender); err != nil {
		return err
	}

	// Recipient is loaded after the debit is saved so that sending to
	// oneself is a no-op.
	recipient, err := c.bucket.GetOrCreate(db, to)
	if err != nil {
		return err
	}
	if err := AsAccount(recipient).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

func (c BaseController) Mint(db ledger.KVStore, addr ledger.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	obj, err := c.bucket.GetOrCreate(db, addr)
	if err != nil {
		return err
	}
	if err := AsAccount(obj).Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, obj)
}
