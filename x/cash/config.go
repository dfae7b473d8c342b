package cash

import (
	"math/bits"

	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/gconf"
)

const confPkg = "cash"

// DefaultConfiguration returns the economics used when genesis does not
// declare any.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		RentPerByteYear:    3480,
		ExemptionThreshold: 2,
		AccountOverhead:    128,
	}
}

func (c *Configuration) Validate() error {
	var errs error
	if c.RentPerByteYear == 0 {
		errs = errors.AppendField(errs, "RentPerByteYear", errors.ErrEmpty)
	}
	if c.ExemptionThreshold == 0 {
		errs = errors.AppendField(errs, "ExemptionThreshold", errors.ErrEmpty)
	}
	if c.AccountOverhead == 0 {
		errs = errors.AppendField(errs, "AccountOverhead", errors.ErrEmpty)
	}
	return errs
}

// MinimumBalance returns the reserve an account with space bytes of data
// must hold.
func (c *Configuration) MinimumBalance(space uint32) (uint64, error) {
	size := c.AccountOverhead + uint64(space)
	hi, perYear := bits.Mul64(size, c.RentPerByteYear)
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "minimum balance")
	}
	hi, total := bits.Mul64(perYear, c.ExemptionThreshold)
	if hi != 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "minimum balance")
	}
	return total, nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
