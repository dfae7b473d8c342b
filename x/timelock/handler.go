package timelock

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/x"
	"github.com/fluxur/ledger/x/cash"
)

const (
	createLockCost  int64 = 300
	releaseLockCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathCreateLockMsg, CreateLockHandler{auth: auth, bucket: bucket, bank: bank})
	r.Handle(pathReleaseLockMsg, ReleaseLockHandler{bucket: bucket, bank: bank})
}

// RegisterQuery will register this bucket as "/locks" together with the
// beneficiary index and a lookup by subject key.
func RegisterQuery(qr ledger.QueryRouter) {
	b := NewBucket()
	b.Register(BucketName, qr)
	qr.Register("/"+BucketName+"/subject", subjectQuery{bucket: b})
}

// CreateLockHandler creates the lock record together with its vault.
type CreateLockHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

var _ ledger.Handler = CreateLockHandler{}

// lockPlan is everything create_lock computes before writing.
type lockPlan struct {
	payer      ledger.Address
	now        ledger.UnixTime
	lock       ledger.Address
	vault      ledger.Address
	lockNonce  uint8
	vaultNonce uint8
}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateLockHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: createLockCost}, nil
}

// Deliver materializes the vault and lock accounts, paid by the main signer,
// and stores the lock record.
func (h CreateLockHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, plan, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultReserve, err := h.bank.MinimumBalance(db, 0)
	if err != nil {
		return nil, errors.Wrap(err, "vault reserve")
	}
	lockReserve, err := h.bank.MinimumBalance(db, LockRecordSize)
	if err != nil {
		return nil, errors.Wrap(err, "lock reserve")
	}
	if err := h.ensureFree(db, plan, vaultReserve+lockReserve); err != nil {
		return nil, err
	}

	if err := h.bank.CreateAccount(ctx, db, plan.payer, plan.vault, vaultReserve, 0, cash.OwnerName); err != nil {
		return nil, errors.Wrap(err, "create vault")
	}
	if err := h.bank.CreateAccount(ctx, db, plan.payer, plan.lock, lockReserve, LockRecordSize, ProgramName); err != nil {
		return nil, errors.Wrap(err, "create lock account")
	}

	rec := &LockRecord{
		Beneficiary: plan.payer,
		SubjectKey:  msg.SubjectKey,
		ReleaseTime: msg.ReleaseTime,
		LockNonce:   plan.lockNonce,
		VaultNonce:  plan.vaultNonce,
	}
	if err := h.bucket.Save(db, NewLock(plan.lock, rec)); err != nil {
		return nil, errors.Wrap(err, "cannot store lock")
	}

	ledger.GetLogger(ctx).Info("timelock created",
		"subject", fmt.Sprintf("%X", msg.SubjectKey),
		"beneficiary", plan.payer,
		"release_time", msg.ReleaseTime,
		"created_at", plan.now)

	return &ledger.DeliverResult{
		Data: plan.lock,
		Log: fmt.Sprintf("timelock created: subject=%X beneficiary=%s release_time=%d created_at=%d",
			msg.SubjectKey, plan.payer, msg.ReleaseTime, plan.now),
		Tags: []ledger.KVPair{
			ledger.Tag("action", []byte(pathCreateLockMsg)),
			ledger.Tag("timelock.subject", []byte(fmt.Sprintf("%X", msg.SubjectKey))),
			ledger.Tag("timelock.beneficiary", []byte(plan.payer.String())),
			ledger.Tag("timelock.release_time", []byte(strconv.FormatInt(int64(msg.ReleaseTime), 10))),
			ledger.Tag("timelock.created_at", []byte(strconv.FormatInt(int64(plan.now), 10))),
		},
	}, nil
}

// ensureFree fails unless both accounts and the record can be created and
// the payer can cover the reserves. It must pass before any write.
func (h CreateLockHandler) ensureFree(db ledger.KVStore, plan *lockPlan, cost uint64) error {
	if obj, err := h.bucket.Get(db, plan.lock); err != nil {
		return err
	} else if obj != nil {
		return errors.Wrap(errors.ErrDuplicate, "lock already exists")
	}
	for _, addr := range []ledger.Address{plan.lock, plan.vault} {
		_, err := h.bank.Account(db, addr)
		switch {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "account %s already exists", addr)
		case !errors.ErrNotFound.Is(err):
			return err
		}
	}
	funds, err := h.bank.Balance(db, plan.payer)
	if err != nil {
		return err
	}
	if funds < cost {
		return errors.Wrapf(errors.ErrAmount, "creating a lock costs %d, payer has %d", cost, funds)
	}
	return nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateLockHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*CreateLockMsg, *lockPlan, error) {
	var msg *CreateLockMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	signer, err := x.RequireMainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	payer := signer.Address()
	if payer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "signer has no address")
	}

	now, err := ledger.BlockUnixTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if msg.ReleaseTime <= now {
		return nil, nil, errors.Wrapf(ErrUnlockTimeInPast, "release time %d, now %d", msg.ReleaseTime, now)
	}

	lock, lockNonce, err := FindLockAddress(msg.SubjectKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "lock address")
	}
	vault, vaultNonce, err := FindVaultAddress(msg.SubjectKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault address")
	}
	if msg.Lock != nil && !msg.Lock.Equals(lock) {
		return nil, nil, errors.Wrapf(ErrAddressMismatch, "lock %s, derived %s", msg.Lock, lock)
	}
	if msg.Vault != nil && !msg.Vault.Equals(vault) {
		return nil, nil, errors.Wrapf(ErrAddressMismatch, "vault %s, derived %s", msg.Vault, vault)
	}

	plan := &lockPlan{
		payer:      payer,
		now:        now,
		lock:       lock,
		vault:      vault,
		lockNonce:  lockNonce,
		vaultNonce: vaultNonce,
	}
	return msg, plan, nil
}

// ReleaseLockHandler moves the vault balance above its reserve to the
// beneficiary once the lock expired. The vault is never closed, so it can
// be refilled and released again.
type ReleaseLockHandler struct {
	bucket Bucket
	bank   cash.Controller
}

var _ ledger.Handler = ReleaseLockHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ReleaseLockHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: releaseLockCost}, nil
}

// Deliver transfers the excess vault balance to the beneficiary.
func (h ReleaseLockHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	balance, err := h.bank.Balance(db, msg.Vault)
	if err != nil {
		return nil, err
	}
	reserve, err := h.bank.MinimumBalance(db, 0)
	if err != nil {
		return nil, errors.Wrap(err, "vault reserve")
	}
	var amount uint64
	if balance > reserve {
		amount = balance - reserve
	}

	subject := fmt.Sprintf("%X", rec.SubjectKey)
	res := &ledger.DeliverResult{
		Data: make([]byte, 8),
		Tags: []ledger.KVPair{
			ledger.Tag("action", []byte(pathReleaseLockMsg)),
			ledger.Tag("timelock.subject", []byte(subject)),
			ledger.Tag("timelock.amount", []byte(strconv.FormatUint(amount, 10))),
			ledger.Tag("timelock.beneficiary", []byte(rec.Beneficiary.String())),
		},
	}
	binary.BigEndian.PutUint64(res.Data, amount)

	if amount == 0 {
		ledger.GetLogger(ctx).Info("vault is empty, nothing to release", "subject", subject)
		res.Log = "vault is empty, nothing to release"
		return res, nil
	}

	ctx = withVault(ctx, VaultCondition(rec.SubjectKey, rec.VaultNonce))
	if err := h.bank.Transfer(ctx, db, msg.Vault, rec.Beneficiary, amount); err != nil {
		return nil, errors.Wrap(err, "release")
	}

	ledger.GetLogger(ctx).Info("released",
		"subject", subject,
		"amount", amount,
		"beneficiary", rec.Beneficiary)
	res.Log = fmt.Sprintf("released %d to %s", amount, rec.Beneficiary)
	return res, nil
}

// validate loads the lock record and runs every release check.
func (h ReleaseLockHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ReleaseLockMsg, *LockRecord, error) {
	var msg *ReleaseLockMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	rec, err := h.bucket.GetLock(db, msg.Lock)
	if err != nil {
		return nil, nil, err
	}
	if string(rec.SubjectKey) != string(msg.SubjectKey) {
		return nil, nil, errors.Wrap(ErrAddressMismatch, "lock belongs to another subject")
	}
	lock, err := lockAddress(rec.SubjectKey, rec.LockNonce)
	if err != nil {
		return nil, nil, errors.Wrap(ErrAddressMismatch, err.Error())
	}
	if !lock.Equals(msg.Lock) {
		return nil, nil, errors.Wrapf(ErrAddressMismatch, "lock %s, derived %s", msg.Lock, lock)
	}
	vault, err := vaultAddress(rec.SubjectKey, rec.VaultNonce)
	if err != nil {
		return nil, nil, errors.Wrap(ErrAddressMismatch, err.Error())
	}
	if !vault.Equals(msg.Vault) {
		return nil, nil, errors.Wrapf(ErrAddressMismatch, "vault %s, derived %s", msg.Vault, vault)
	}

	now, err := ledger.BlockUnixTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if now < rec.ReleaseTime {
		return nil, nil, errors.Wrapf(ErrLockNotExpired, "releases at %d, now %d", rec.ReleaseTime, now)
	}

	if !msg.Beneficiary.Equals(rec.Beneficiary) {
		return nil, nil, errors.Wrapf(ErrInvalidBeneficiary, "want %s", rec.Beneficiary)
	}
	return msg, rec, nil
}

// subjectQuery finds the lock of a subject key by deriving its address.
type subjectQuery struct {
	bucket Bucket
}

func (q subjectQuery) Query(db ledger.ReadOnlyKVStore, mod string, data []byte) ([]ledger.Model, error) {
	if mod != ledger.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported query mod: %q", mod)
	}
	if err := validateSubject(data); err != nil {
		return nil, err
	}
	lock, _, err := FindLockAddress(data)
	if err != nil {
		return nil, err
	}
	return q.bucket.Query(db, ledger.KeyQueryMod, lock)
}
