package server

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fluxur/ledger/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const (
	flagHeight = "height"
)

var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

func parseGetBlockArgs(args []string) (string, int64, error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "usage: cmd getblock <path to blockstore.db> [-height=H]")
	}
	var height int64
	getBlockFlags := flag.NewFlagSet("getblock", flag.ContinueOnError)
	getBlockFlags.Int64Var(&height, flagHeight, 0, "height of the block to extract (default latest)")
	if err := getBlockFlags.Parse(args[1:]); err != nil {
		return "", 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	return args[0], height, nil
}

// GetBlockCmd extracts a block from a tendermint blockstore.db and writes
// it as JSON to out. It takes the last block unless -height is given. The
// output is the input of RetryCmd.
func GetBlockCmd(logger log.Logger, out io.Writer, args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	db, err := openDb(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := blockchain.NewBlockStore(db)
	if height == 0 {
		height = store.Height()
	}
	logger.Debug("Loading block", "height", height)
	return printBlock(store, height, out)
}

// openDb opens a leveldb database directory. The path must end with ".db",
// the way tendermint names them.
func openDb(dir string) (dbm.DB, error) {
	dir = strings.TrimSuffix(filepath.Clean(dir), string(filepath.Separator))
	if filepath.Ext(dir) != ".db" {
		return nil, errors.Wrapf(errors.ErrInput, "database directory must end with .db: %s", dir)
	}
	name := strings.TrimSuffix(filepath.Base(dir), ".db")
	db, err := dbm.NewGoLevelDB(name, filepath.Dir(dir))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", dir, err)
	}
	return db, nil
}

func printBlock(store *blockchain.BlockStore, height int64, out io.Writer) error {
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}
