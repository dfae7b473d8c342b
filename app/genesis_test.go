package app

import (
	"context"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/store/iavl"
	"github.com/stretchr/testify/assert"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		parseError   bool
		initErr      bool
		expectChain  string
		expectCalled int
		expectValue  []byte
	}{
		"no such file": {
			file:       "bad_file.json",
			parseError: true,
			initErr:    true,
		},
		"proper parse": {
			file:         "testdata/genesis.json",
			expectChain:  "test-chain-67",
			expectCalled: 1,
			expectValue:  []byte("secret"),
		},
		"parse genesis, bad init": {
			file:        "testdata/bad_genesis.json",
			initErr:     true,
			expectChain: "super-chain-22",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := loadGenesis(tc.file)
			if tc.parseError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectChain, gen.ChainID)

			c := new(countInit)
			init := ChainInitializers(dummyInit{}, c)
			assert.Equal(t, 0, c.called)
			store := NewStoreApp("foo", iavl.MockCommitStore(), ledger.NewQueryRouter(), context.Background())
			assert.Equal(t, "", store.GetChainID())

			err = store.LoadGenesis(tc.file, init)
			if tc.initErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if !tc.parseError {
				// The chain id is stored before the extensions initialize.
				assert.Equal(t, tc.expectChain, store.GetChainID())
			}
			assert.Equal(t, tc.expectCalled, c.called)
			val, err := store.DeliverStore().Get([]byte(dummyKey))
			assert.NoError(t, err)
			assert.Equal(t, tc.expectValue, val)
		})
	}
}

func TestChainIDIsImmutable(t *testing.T) {
	store := NewStoreApp("foo", iavl.MockCommitStore(), ledger.NewQueryRouter(), context.Background())
	assert.NoError(t, store.LoadGenesis("testdata/genesis.json", dummyInit{}))
	assert.Error(t, store.LoadGenesis("testdata/genesis.json", dummyInit{}))
	assert.Equal(t, "test-chain-67", store.GetChainID())
}
