package cash

import (
	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/gconf"
	"github.com/fluxur/ledger/x"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address ledger.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database. The reserve configuration is read from
// conf.cash and defaults to DefaultConfiguration.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	if err := gconf.InitConfig(db, opts, confPkg, &Configuration{}, DefaultConfiguration()); err != nil {
		return err
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	// Minting needs no authorization.
	control := NewController(x.ChainAuth())
	for i, acct := range accts {
		if err := control.Mint(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
	}
	return nil
}
