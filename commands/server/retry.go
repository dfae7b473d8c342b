package server

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	iavlstore "github.com/fluxur/ledger/store/iavl"
	"github.com/tendermint/iavl"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/types"
)

const (
	flagUntilError = "error"
	flagMaxTries   = "max"
)

type retryArgs struct {
	dbPath     string
	blockPath  string
	debug      bool
	untilError bool
	maxTries   int
}

func parseRetryArgs(args []string) (retryArgs, error) {
	if len(args) < 2 {
		return retryArgs{}, errors.Wrap(errors.ErrInput,
			"usage: cmd retry <path to state.db> <path to block.json> [-debug] [-error] [-max=N]")
	}
	res := retryArgs{
		dbPath:    args[0],
		blockPath: args[1],
	}
	retryFlags := flag.NewFlagSet("retry", flag.ContinueOnError)
	retryFlags.BoolVar(&res.debug, flagDebug, false, "print out debug info")
	retryFlags.BoolVar(&res.untilError, flagUntilError, false, "retry multiple times until an error appears")
	retryFlags.IntVar(&res.maxTries, flagMaxTries, 10, "maximum number of times to retry if -error is passed")
	if err := retryFlags.Parse(args[2:]); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	return res, nil
}

// InlineAppGenerator builds the application on top of an opened store.
type InlineAppGenerator func(ledger.CommitKVStore, log.Logger, bool) abci.Application

// RetryCmd takes the iavl app state and the last block from the file
// system. It verifies that they match, then rolls back one block and
// re-runs the given block, printing the recomputed app hash to out.
//
// With -error the block is re-run up to -max times until the app hash
// differs, which exposes non deterministic handlers.
func RetryCmd(makeApp InlineAppGenerator, logger log.Logger, out io.Writer, args []string) error {
	flags, err := parseRetryArgs(args)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "--> Loading Block")
	blockJSON, err := ioutil.ReadFile(flags.blockPath)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "read block: %s", err)
	}
	block := new(types.Block)
	if err := cdc.UnmarshalJSON(bytes.TrimSpace(blockJSON), block); err != nil {
		return errors.Wrapf(errors.ErrInput, "decode block: %s", err)
	}

	fmt.Fprintln(out, "--> Loading Database")
	db, err := openDb(flags.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	tree, ver, err := readTree(db)
	if err != nil {
		return errors.Wrap(err, "cannot read app state")
	}
	if ver != block.Header.Height {
		return errors.Wrapf(errors.ErrState,
			"height mismatch - block=%d, state=%d", block.Header.Height, ver)
	}

	r := replay{
		out: out,
		build: func(kv ledger.CommitKVStore) abci.Application {
			return makeApp(kv, logger, flags.debug)
		},
	}
	return r.retryBlock(tree, block, flags.untilError, flags.maxTries)
}

func readTree(db dbm.DB) (*iavl.MutableTree, int64, error) {
	tree := iavl.NewMutableTree(db, iavlstore.DefaultCacheSize)
	ver, err := tree.Load()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if ver == 0 {
		return nil, 0, errors.Wrap(errors.ErrState, "iavl tree is empty")
	}
	return tree, ver, nil
}

type replay struct {
	out   io.Writer
	build func(ledger.CommitKVStore) abci.Application
}

func (r replay) retryBlock(tree *iavl.MutableTree, block *types.Block, untilError bool, maxTries int) error {
	fmt.Fprintf(r.out, "Original Height: %d\n", block.Header.Height)
	fmt.Fprintf(r.out, "Original Hash: %X\n", tree.Hash())

	same, err := r.rerunBlock(tree, block)
	if err != nil {
		return err
	}
	for same && untilError && maxTries > 0 {
		maxTries--
		same, err = r.rerunBlock(tree, block)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r replay) rerunBlock(tree *iavl.MutableTree, block *types.Block) (bool, error) {
	origHash := tree.Hash()
	backHeight := block.Header.Height - 1

	fmt.Fprintf(r.out, "Rollback to height: %d\n", backHeight)
	if _, err := tree.LoadVersionForOverwriting(backHeight); err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	app := r.build(iavlstore.NewCommitStoreFromTree(tree))

	fmt.Fprintln(r.out, "---> Begin Block")
	app.BeginBlock(abci.RequestBeginBlock{Hash: block.Header.Hash(), Header: toAbciHeader(block.Header)})
	for i, tx := range block.Txs {
		res := app.DeliverTx(tx)
		fmt.Fprintf(r.out, "---> Deliver Tx %d: code=%d %s\n", i, res.Code, res.Log)
	}
	fmt.Fprintln(r.out, "---> End Block")
	app.EndBlock(abci.RequestEndBlock{Height: block.Header.Height})
	hash := app.Commit().Data
	same := bytes.Equal(origHash, hash)
	fmt.Fprintf(r.out, "Recomputed Hash: %X\n", hash)
	fmt.Fprintf(r.out, "Hash matches: %t\n", same)
	return same, nil
}

// toAbciHeader carries the fields the application reads from a header.
func toAbciHeader(h types.Header) abci.Header {
	return abci.Header{
		ChainID:         h.ChainID,
		Height:          h.Height,
		Time:            h.Time,
		NumTxs:          h.NumTxs,
		TotalTxs:        h.TotalTxs,
		LastCommitHash:  h.LastCommitHash,
		DataHash:        h.DataHash,
		ValidatorsHash:  h.ValidatorsHash,
		AppHash:         h.AppHash,
		ProposerAddress: h.ProposerAddress,
	}
}
