package app

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/app"
	"github.com/fluxur/ledger/crypto"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/x"
	"github.com/fluxur/ledger/x/cash"
	"github.com/fluxur/ledger/x/sigs"
	"github.com/fluxur/ledger/x/timelock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	chainID      = "test-chain-67"
	vaultReserve = 890880
)

type testNode struct {
	t      *testing.T
	runner *ledgertest.Runner
	abci   *app.ABCIStore
	key    *crypto.PrivateKey
}

func newTestNode(t *testing.T, balance uint64) *testNode {
	t.Helper()
	application := Application(Name, Stack(prometheus.NewRegistry()), TxDecoder, mustStore(t), false)
	application.WithLogger(log.NewNopLogger())

	key := ledgertest.SeededKey(t, "alice")
	runner := ledgertest.NewRunner(t, application, chainID, time.Unix(1700000000, 0).UTC())
	runner.InitChain(map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: key.PublicKey().Address(), Balance: balance},
		},
	})
	return &testNode{
		t:      t,
		runner: runner,
		abci:   app.NewABCIStore(application),
		key:    key,
	}
}

func mustStore(t *testing.T) ledger.CommitKVStore {
	t.Helper()
	kv, err := CommitKVStore("", "")
	require.NoError(t, err)
	return kv
}

func (n *testNode) addr() ledger.Address {
	return n.key.PublicKey().Address()
}

// signed wraps the message into a transaction signed with the next
// sequence of the node key.
func (n *testNode) signed(msg ledger.Msg) *Tx {
	n.t.Helper()
	return n.signedBy(n.key, msg)
}

func (n *testNode) signedBy(key *crypto.PrivateKey, msg ledger.Msg) *Tx {
	n.t.Helper()
	tx := &Tx{}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *timelock.CreateLockMsg:
		tx.TimelockCreateMsg = m
	case *timelock.ReleaseLockMsg:
		tx.TimelockReleaseMsg = m
	default:
		n.t.Fatalf("unsupported message %T", msg)
	}
	seq, err := sigs.NextNonce(n.abci, key.PublicKey().Address())
	require.NoError(n.t, err)
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	require.NoError(n.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	return tx
}

func (n *testNode) balance(addr ledger.Address) uint64 {
	n.t.Helper()
	b, err := cash.NewController(x.ChainAuth()).Balance(n.abci, addr)
	require.NoError(n.t, err)
	return b
}

func TestTimelockLifecycle(t *testing.T) {
	lockReserve := uint64((128 + timelock.LockRecordSize) * 3480 * 2)
	node := newTestNode(t, lockReserve+3*vaultReserve)
	subject := []byte("ABC")
	lock, _, err := timelock.FindLockAddress(subject)
	require.NoError(t, err)
	vault, _, err := timelock.FindVaultAddress(subject)
	require.NoError(t, err)
	release := &timelock.ReleaseLockMsg{SubjectKey: subject, Lock: lock, Vault: vault, Beneficiary: node.addr()}

	releaseAt := ledger.AsUnixTime(node.runner.Now()).Add(100 * time.Second)
	node.runner.InBlock(func() error {
		res := node.runner.DeliverOK(node.signed(&timelock.CreateLockMsg{SubjectKey: subject, ReleaseTime: releaseAt}))
		assert.Equal(t, []byte(lock), res.Data)
		return nil
	})
	node.runner.InBlock(func() error {
		node.runner.DeliverOK(node.signed(&cash.SendMsg{Src: node.addr(), Dest: vault, Amount: vaultReserve}))
		return nil
	})
	assert.Equal(t, uint64(2*vaultReserve), node.balance(vault))
	assert.Equal(t, uint64(vaultReserve), node.balance(node.addr()))

	node.runner.Advance(50 * time.Second)
	node.runner.InBlock(func() error {
		res := node.runner.DeliverTx(node.signed(release))
		assert.Equal(t, timelock.ErrLockNotExpired.ABCICode(), res.Code)
		return nil
	})
	assert.Equal(t, uint64(2*vaultReserve), node.balance(vault))

	// Anyone may submit the release once it is due, the value still goes
	// to the stored beneficiary.
	bob := ledgertest.SeededKey(t, "bob")
	redirect := *release
	redirect.Beneficiary = bob.PublicKey().Address()
	node.runner.Advance(100 * time.Second)
	node.runner.InBlock(func() error {
		res := node.runner.DeliverTx(node.signedBy(bob, &redirect))
		assert.Equal(t, timelock.ErrInvalidBeneficiary.ABCICode(), res.Code)
		return nil
	})
	node.runner.InBlock(func() error {
		res := node.runner.DeliverOK(node.signedBy(bob, release))
		assert.Equal(t, uint64(vaultReserve), binary.BigEndian.Uint64(res.Data))
		return nil
	})
	assert.Equal(t, uint64(vaultReserve), node.balance(vault))
	assert.Equal(t, uint64(2*vaultReserve), node.balance(node.addr()))
	assert.Equal(t, uint64(0), node.balance(bob.PublicKey().Address()))

	resp := node.runner.Query("/locks/subject", subject)
	var rec timelock.LockRecord
	require.NoError(t, app.UnmarshalOneResult(resp.Value, &rec))
	assert.Equal(t, node.addr(), rec.Beneficiary)
	assert.Equal(t, releaseAt, rec.ReleaseTime)
}

func TestUnsignedTxRejected(t *testing.T) {
	node := newTestNode(t, 10)
	node.runner.InBlock(func() error { return nil })
	tx := &Tx{CashSendMsg: &cash.SendMsg{Src: node.addr(), Dest: ledgertest.RandomAddr(t), Amount: 5}}
	res := node.runner.CheckTx(tx)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
}

func TestTxGetMsg(t *testing.T) {
	send := &cash.SendMsg{Amount: 1}
	create := &timelock.CreateLockMsg{SubjectKey: []byte("a")}

	_, err := (&Tx{}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	_, err = (&Tx{CashSendMsg: send, TimelockCreateMsg: create}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))

	msg, err := (&Tx{TimelockCreateMsg: create}).GetMsg()
	require.NoError(t, err)
	assert.Equal(t, create, msg)
}

func TestTxCodec(t *testing.T) {
	tx := &Tx{TimelockReleaseMsg: &timelock.ReleaseLockMsg{SubjectKey: []byte("ABC")}}
	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	tx.Signatures = []*sigs.StdSignature{{Sequence: 3, Pubkey: []byte{1, 2}, Signature: []byte{3}}}
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed, "signatures are not signed")

	bz, err := tx.Marshal()
	require.NoError(t, err)
	got, err := TxDecoder(bz)
	require.NoError(t, err)
	assert.Equal(t, tx, got)

	_, err = TxDecoder([]byte{0xff, 0xff})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestExamples(t *testing.T) {
	ex := Examples()
	require.Len(t, ex, 6)
	// Deterministic keys give the same signed tx every time.
	again := Examples()
	assert.Equal(t, ex[len(ex)-1].Obj, again[len(again)-1].Obj)
}
