package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const tmGenesis = `{
  "genesis_time": "2019-05-01T10:00:00Z",
  "chain_id": "test-chain-LgVOZ0",
  "validators": [{"power": "10"}],
  "app_hash": ""
}`

// setupHome creates a home dir with a genesis file, the way
// `tendermint init` leaves it.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "ledger-init")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, "config"), 0755))
	genFile := filepath.Join(home, "config", "genesis.json")
	require.NoError(t, ioutil.WriteFile(genFile, []byte(tmGenesis), 0600))
	return home, func() { os.RemoveAll(home) }
}

func readDoc(t *testing.T, home string) genesisDoc {
	t.Helper()
	doc, err := readGenesisDoc(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t)
	defer cleanup()

	var gotArgs []string
	gen := func(args []string) (json.RawMessage, error) {
		gotArgs = args
		return json.RawMessage(`{"cash":[]}`), nil
	}

	err := InitCmd(gen, log.NewNopLogger(), home, []string{"deadbeef"})
	require.NoError(t, err)
	assert.Equal(t, []string{"deadbeef"}, gotArgs)

	doc := readDoc(t, home)
	// keep old values, and add our values
	assert.EqualValues(t, []byte(`"test-chain-LgVOZ0"`), doc["chain_id"])
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"cash":[]}`, string(doc[appStateKey]))

	// A second run does not overwrite without -f.
	other := func([]string) (json.RawMessage, error) { return json.RawMessage(`{"cash":null}`), nil }
	require.NoError(t, InitCmd(other, log.NewNopLogger(), home, nil))
	assert.JSONEq(t, `{"cash":[]}`, string(readDoc(t, home)[appStateKey]))

	require.NoError(t, InitCmd(other, log.NewNopLogger(), home, []string{"-f"}))
	assert.JSONEq(t, `{"cash":null}`, string(readDoc(t, home)[appStateKey]))
}

func TestInitWithoutGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "ledger-init")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	gen := func([]string) (json.RawMessage, error) { return json.RawMessage(`{}`), nil }
	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestParseStartArgs(t *testing.T) {
	args, err := parseStartArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, StoreIAVL, args.store)
	assert.Equal(t, "tcp://localhost:26658", args.bind)
	assert.False(t, args.debug)

	args, err = parseStartArgs([]string{"-store=bolt", "-debug", "-metrics=:9100"})
	require.NoError(t, err)
	assert.Equal(t, StoreBolt, args.store)
	assert.True(t, args.debug)
	assert.Equal(t, ":9100", args.metrics)

	_, err = parseStartArgs([]string{"-store=sqlite"})
	assert.True(t, errors.ErrInput.Is(err))
}
