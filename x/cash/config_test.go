package cash

import (
	"math"
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest/assert"
)

func TestMinimumBalance(t *testing.T) {
	conf := DefaultConfiguration()
	assert.Nil(t, conf.Validate())

	cases := map[string]struct {
		conf    *Configuration
		space   uint32
		want    uint64
		wantErr *errors.Error
	}{
		"no data":     {conf: conf, space: 0, want: 890880},
		"lock record": {conf: conf, space: 83, want: (128 + 83) * 3480 * 2},
		"overflow": {
			conf:    &Configuration{RentPerByteYear: math.MaxUint64, ExemptionThreshold: 2, AccountOverhead: 1},
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.conf.MinimumBalance(tc.space)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfigurationValidate(t *testing.T) {
	err := (&Configuration{RentPerByteYear: 1}).Validate()
	assert.FieldError(t, err, "ExemptionThreshold", errors.ErrEmpty)
	assert.FieldError(t, err, "AccountOverhead", errors.ErrEmpty)
	assert.FieldError(t, err, "RentPerByteYear", nil)
}
