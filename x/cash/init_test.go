package cash

import (
	"encoding/json"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/gconf"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/ledgertest/assert"
	"github.com/fluxur/ledger/store"
)

func TestGenesis(t *testing.T) {
	addr := ledgertest.RandomAddr(t)

	cases := map[string]struct {
		genesis  string
		wantErr  *errors.Error
		wantConf *Configuration
		wantBal  uint64
	}{
		"accounts with default configuration": {
			genesis:  `{"cash": [{"address": "` + addr.String() + `", "balance": 5000000}]}`,
			wantConf: DefaultConfiguration(),
			wantBal:  5000000,
		},
		"custom configuration": {
			genesis: `{
				"conf": {"cash": {"rent_per_byte_year": 10, "exemption_threshold": 1, "account_overhead": 1}},
				"cash": [{"address": "` + addr.String() + `", "balance": 7}]
			}`,
			wantConf: &Configuration{RentPerByteYear: 10, ExemptionThreshold: 1, AccountOverhead: 1},
			wantBal:  7,
		},
		"empty genesis": {
			genesis:  `{}`,
			wantConf: DefaultConfiguration(),
		},
		"invalid account address": {
			genesis: `{"cash": [{"address": "00AA", "balance": 1}]}`,
			wantErr: errors.ErrInput,
		},
		"invalid configuration": {
			genesis: `{"conf": {"cash": {"rent_per_byte_year": 10}}}`,
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot decode genesis: %s", err)
			}
			db := store.MemStore()

			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			var conf Configuration
			assert.Nil(t, gconf.Load(db, confPkg, &conf))
			assert.Equal(t, tc.wantConf, &conf)

			bal, err := NewController(&ledgertest.Auth{}).Balance(db, addr)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBal, bal)
		})
	}
}
