package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/commands/server"
	"github.com/fluxur/ledger/crypto"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is the application name reported over ABCI.
const Name = "timelock"

// genesisBalance is what the dev account starts with.
const genesisBalance = 1000000000000

// GenInitOptions produces the app_state with one rich account, to use for
// dev mode. The account address can be given as the first argument in any
// form ledger.ParseAddress accepts. Otherwise a key is derived from a fresh
// seed and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr ledger.Address
	if len(args) > 0 {
		a, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "account address")
		}
		addr = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	state := struct {
		Cash []cash.GenesisAccount `json:"cash"`
		Conf struct {
			Cash *cash.Configuration `json:"cash"`
		} `json:"conf"`
	}{
		Cash: []cash.GenesisAccount{{Address: addr, Balance: genesisBalance}},
	}
	state.Conf.Cash = cash.DefaultConfiguration()
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "timelock.db")
	}
	kv, err := CommitKVStore(options.Store, dbPath)
	if err != nil {
		return nil, err
	}
	application := Application(Name, Stack(options.Registry), TxDecoder, kv, options.Debug)
	application.WithLogger(options.Logger)
	return application, nil
}

// InlineApp builds the application on an already opened store, for the
// block replay tooling. Metrics are not collected.
func InlineApp(kv ledger.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	application := Application(Name, Stack(nil), TxDecoder, kv, debug)
	application.WithLogger(logger)
	return application
}

type output struct {
	Seed    string         `json:"seed"`
	Path    string         `json:"path"`
	Pubkey  string         `json:"pub_key"`
	Address ledger.Address `json:"address"`
}

// GenerateCoinKey creates a key from a fresh seed along the default
// derivation path. It returns the address and a JSON document holding
// the seed, which is all a client needs to recover the key.
func GenerateCoinKey() (ledger.Address, string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, "", errors.Wrap(errors.ErrState, err.Error())
	}
	key, err := crypto.DeriveEd25519(seed, crypto.DefaultPath)
	if err != nil {
		return nil, "", err
	}
	pub := key.PublicKey()
	out := output{
		Seed:    hex.EncodeToString(seed),
		Path:    crypto.DefaultPath,
		Pubkey:  pub.String(),
		Address: pub.Address(),
	}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return out.Address, string(keys), nil
}
