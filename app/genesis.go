package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
)

// Genesis file format, designed to be overlayed with tendermint genesis
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

// loadGenesis tries to load a given file into a Genesis struct
func loadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	return gen, nil
}

// LoadGenesis reads the genesis file and initializes the application
// state from it. It is meant for running the application without a
// consensus engine driving InitChain.
func (s *StoreApp) LoadGenesis(filePath string, init ledger.Initializer) error {
	gen, err := loadGenesis(filePath)
	if err != nil {
		return err
	}
	return s.parseAppState(gen.AppState, gen.ChainID, init)
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...ledger.Initializer) ledger.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []ledger.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
