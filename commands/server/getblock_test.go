package server

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestParseGetBlockArgs(t *testing.T) {
	_, _, err := parseGetBlockArgs(nil)
	assert.True(t, errors.ErrInput.Is(err))

	path, height, err := parseGetBlockArgs([]string{"data/blockstore.db", "-height=7"})
	require.NoError(t, err)
	assert.Equal(t, "data/blockstore.db", path)
	assert.Equal(t, int64(7), height)

	_, _, err = parseGetBlockArgs([]string{"data/blockstore.db", "-size=7"})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestGetBlockFromEmptyStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledger-getblock")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	err = GetBlockCmd(log.NewNopLogger(), ioutil.Discard, []string{filepath.Join(dir, "blockstore")})
	assert.True(t, errors.ErrInput.Is(err), "missing .db suffix: %+v", err)

	var out bytes.Buffer
	err = GetBlockCmd(log.NewNopLogger(), &out, []string{filepath.Join(dir, "blockstore.db")})
	assert.True(t, errors.ErrNotFound.Is(err), "empty store: %+v", err)
	assert.Equal(t, 0, out.Len())
}

func TestParseRetryArgs(t *testing.T) {
	_, err := parseRetryArgs([]string{"state.db"})
	assert.True(t, errors.ErrInput.Is(err))

	args, err := parseRetryArgs([]string{"state.db", "block.json", "-error", "-max=3"})
	require.NoError(t, err)
	assert.Equal(t, retryArgs{
		dbPath:     "state.db",
		blockPath:  "block.json",
		untilError: true,
		maxTries:   3,
	}, args)
}
