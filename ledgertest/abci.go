package ledgertest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B.
type Tester interface {
	Helper()
	Fatalf(string, ...interface{})
}

// Runner provides a translation layer between an ABCI interface and the
// ledger API. It takes care of serializing transactions and creating
// blocks with a controlled block time.
type Runner struct {
	chainID string
	height  int64
	now     time.Time
	t       Tester
	app     abci.Application
}

// NewRunner creates a Runner that produces blocks starting at given time.
func NewRunner(t Tester, app abci.Application, chainID string, start time.Time) *Runner {
	return &Runner{
		chainID: chainID,
		now:     start,
		t:       t,
		app:     app,
	}
}

// InitChain serializes given genesis to JSON and loads it.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		r.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}
	r.app.InitChain(abci.RequestInitChain{
		Time:          r.now,
		ChainId:       r.chainID,
		AppStateBytes: raw,
	})
	r.app.Commit()
}

// Height returns the height of the last block.
func (r *Runner) Height() int64 {
	return r.height
}

// Now returns the time of the next block.
func (r *Runner) Now() time.Time {
	return r.now
}

// Advance moves the clock used for the next block.
func (r *Runner) Advance(d time.Duration) {
	r.now = r.now.Add(d)
}

// CheckTx runs given transaction through the ABCI check path.
func (r *Runner) CheckTx(tx ledger.Tx) abci.ResponseCheckTx {
	r.t.Helper()
	raw, err := tx.Marshal()
	if err != nil {
		r.t.Fatalf("cannot marshal transaction: %s", err)
	}
	return r.app.CheckTx(raw)
}

// DeliverTx runs given transaction through the ABCI deliver path. It must
// be called within InBlock.
func (r *Runner) DeliverTx(tx ledger.Tx) abci.ResponseDeliverTx {
	r.t.Helper()
	raw, err := tx.Marshal()
	if err != nil {
		r.t.Fatalf("cannot marshal transaction: %s", err)
	}
	return r.app.DeliverTx(raw)
}

// DeliverOK delivers given transaction and fails the test on error.
func (r *Runner) DeliverOK(tx ledger.Tx) abci.ResponseDeliverTx {
	r.t.Helper()
	resp := r.DeliverTx(tx)
	if resp.Code != 0 {
		r.t.Fatalf("deliver failed with %d: %s", resp.Code, resp.Log)
	}
	return resp
}

// InBlock begins a block and runs given function. All transactions executed
// within given function are part of newly created block. Upon return the
// block is finished and changes committed.
// InBlock returns true if the application state was modified.
func (r *Runner) InBlock(executeTx func() error) bool {
	r.t.Helper()

	r.height++
	initialHash := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: r.chainID,
			Height:  r.height,
			Time:    r.now,
		},
	})

	if err := executeTx(); err != nil {
		r.t.Fatalf("operation failed with %+v", err)
	}

	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})

	finalHash := r.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

// Query runs an ABCI query and fails the test on an error code.
func (r *Runner) Query(path string, data []byte) abci.ResponseQuery {
	r.t.Helper()
	resp := r.app.Query(abci.RequestQuery{Path: path, Data: data})
	if resp.Code != 0 {
		r.t.Fatalf("query %s: %s", path, errors.Wrapf(errors.ErrInput, "code %d: %s", resp.Code, resp.Log))
	}
	return resp
}
