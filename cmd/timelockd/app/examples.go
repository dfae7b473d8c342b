package app

import (
	"bytes"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/commands"
	"github.com/fluxur/ledger/crypto"
	"github.com/fluxur/ledger/x"
	"github.com/fluxur/ledger/x/cash"
	"github.com/fluxur/ledger/x/sigs"
	"github.com/fluxur/ledger/x/timelock"
)

// ExampleChainID is the chain the example transactions are signed for.
const ExampleChainID = "test-chain-123"

// Examples generates some example structs to dump out with testgen.
// Keys are derived from a fixed seed so the output is stable.
func Examples() []commands.Example {
	priv, err := crypto.DeriveEd25519(bytes.Repeat([]byte{7}, 32), crypto.DefaultPath)
	if err != nil {
		panic(err)
	}
	owner := priv.PublicKey().Address()

	subject := []byte("ABC")
	lock, _, err := timelock.FindLockAddress(subject)
	if err != nil {
		panic(err)
	}
	vault, _, err := timelock.FindVaultAddress(subject)
	if err != nil {
		panic(err)
	}

	create := &timelock.CreateLockMsg{
		SubjectKey:  subject,
		ReleaseTime: ledger.UnixTime(1700000000),
		Lock:        lock,
		Vault:       vault,
	}
	fund := &cash.SendMsg{
		Src:    owner,
		Dest:   vault,
		Amount: 1781760,
		Memo:   "fund ABC",
	}
	release := &timelock.ReleaseLockMsg{
		SubjectKey:  subject,
		Lock:        lock,
		Vault:       vault,
		Beneficiary: owner,
	}

	x.MustValidate(create)
	x.MustValidate(release)

	unsigned := Tx{TimelockCreateMsg: create}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, ExampleChainID, 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "send_msg", Obj: fund},
		{Filename: "create_lock_msg", Obj: create},
		{Filename: "release_lock_msg", Obj: release},
		{Filename: "signature", Obj: sig},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
