package server

import (
	"flag"
	"net/http"

	"github.com/fluxur/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagStore   = "store"
	flagMetrics = "metrics"

	// StoreIAVL keeps the state in a merkle tree on leveldb.
	StoreIAVL = "iavl"
	// StoreBolt keeps the state in a single bbolt file.
	StoreBolt = "bolt"
)

// Options are the settings an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
	// Store is the state backend, StoreIAVL or StoreBolt.
	Store string
	// Registry collects the application metrics.
	Registry prometheus.Registerer
}

type startArgs struct {
	bind    string
	debug   bool
	store   string
	metrics string
}

func parseStartArgs(args []string) (startArgs, error) {
	var res startArgs
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&res.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&res.debug, flagDebug, false, "call stack returned on error")
	startFlags.StringVar(&res.store, flagStore, StoreIAVL, "state backend: iavl or bolt")
	startFlags.StringVar(&res.metrics, flagMetrics, "", "address to serve prometheus metrics on, disabled if empty")
	if err := startFlags.Parse(args); err != nil {
		return res, errors.Wrap(errors.ErrInput, err.Error())
	}
	switch res.store {
	case StoreIAVL, StoreBolt:
	default:
		return res, errors.Wrapf(errors.ErrInput, "unknown store %q", res.store)
	}
	return res, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd initializes the application and serves it over the ABCI
// socket until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseStartArgs(args)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	app, err := gen(&Options{
		Home:     home,
		Logger:   logger,
		Debug:    flags.debug,
		Store:    flags.store,
		Registry: reg,
	})
	if err != nil {
		return err
	}

	if flags.metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("Serving metrics", "bind", flags.metrics)
			if err := http.ListenAndServe(flags.metrics, mux); err != nil {
				logger.Error("Metrics server stopped", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", flags.bind, "store", flags.store)

	svr, err := server.NewServer(flags.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		// Cleanup
		svr.Stop()
	})
	return nil
}
