/*
Package app links together all the various components
to construct the timelock node application.
*/
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/app"
	"github.com/fluxur/ledger/commands/server"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/store/bolt"
	"github.com/fluxur/ledger/store/iavl"
	"github.com/fluxur/ledger/x"
	"github.com/fluxur/ledger/x/cash"
	"github.com/fluxur/ledger/x/sigs"
	"github.com/fluxur/ledger/x/timelock"
	"github.com/fluxur/ledger/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator accepts public key signatures and the vault proofs
// granted by a timelock release.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, timelock.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(reg prometheus.Registerer) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(reg),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failing message is rolled back but the
		// signature sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router dispatches cash and timelock messages. Only signatures
// authorize the message handlers; the vault proofs are accepted by the
// cash controller alone.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := cash.NewController(Authenticator())
	cash.RegisterRoutes(r, authFn, control)
	timelock.RegisterRoutes(r, authFn, control)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/accounts", "/auth", "/locks" and "/"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		timelock.RegisterQuery,
		app.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) ledger.Handler {
	return Chain(reg).WithHandler(Router(sigs.Authenticate{}))
}

// Initializers loads the genesis state of every extension.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h ledger.Handler, tx ledger.TxDecoder, kv ledger.CommitKVStore, debug bool) app.BaseApp {
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore opens the state at dbPath with the given backend. An
// empty path gives an in memory store, for tests only.
func CommitKVStore(kind, dbPath string) (ledger.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	switch kind {
	case server.StoreBolt:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		kv, err := bolt.NewCommitStore(path + ".bolt")
		if err != nil {
			return nil, err
		}
		return kv, nil
	case server.StoreIAVL, "":
		kv, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown store %q", kind)
	}
}
