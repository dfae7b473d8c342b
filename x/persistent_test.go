package x

import (
	"testing"

	"github.com/fluxur/ledger/errors"
	"github.com/stretchr/testify/assert"
)

type fixedMarshal struct {
	bz  []byte
	err error
}

func (f fixedMarshal) Marshal() ([]byte, error) { return f.bz, f.err }
func (f fixedMarshal) Validate() error          { return f.err }

func TestMustHelpers(t *testing.T) {
	good := fixedMarshal{bz: []byte("ok")}
	bad := fixedMarshal{err: errors.ErrModel}

	assert.Equal(t, []byte("ok"), MustMarshal(good))
	assert.Panics(t, func() { MustMarshal(bad) })
	assert.NotPanics(t, func() { MustValidate(good) })
	assert.Panics(t, func() { MustValidate(bad) })
}
