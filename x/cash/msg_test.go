package cash

import (
	"strings"
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/ledgertest"
	"github.com/fluxur/ledger/ledgertest/assert"
)

func TestSendMsgValidate(t *testing.T) {
	src := ledgertest.RandomAddr(t)
	dest := ledgertest.RandomAddr(t)

	cases := map[string]struct {
		msg        *SendMsg
		wantFields map[string]*errors.Error
	}{
		"valid": {
			msg: &SendMsg{Src: src, Dest: dest, Amount: 1, Memo: "thanks"},
			wantFields: map[string]*errors.Error{
				"Amount": nil,
				"Src":    nil,
				"Dest":   nil,
				"Memo":   nil,
			},
		},
		"empty message": {
			msg: &SendMsg{},
			wantFields: map[string]*errors.Error{
				"Amount": errors.ErrAmount,
				"Src":    errors.ErrInput,
				"Dest":   errors.ErrInput,
				"Memo":   nil,
			},
		},
		"memo too long": {
			msg: &SendMsg{Src: src, Dest: dest, Amount: 7, Memo: strings.Repeat("x", maxMemoSize+1)},
			wantFields: map[string]*errors.Error{
				"Amount": nil,
				"Memo":   errors.ErrInput,
			},
		},
		"short destination": {
			msg: &SendMsg{Src: src, Dest: ledger.Address("abc"), Amount: 7},
			wantFields: map[string]*errors.Error{
				"Dest": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			for field, want := range tc.wantFields {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestSendMsgCodec(t *testing.T) {
	msg := &SendMsg{
		Src:    ledgertest.RandomAddr(t),
		Dest:   ledgertest.RandomAddr(t),
		Amount: 42,
		Memo:   "rent",
	}
	bz, err := msg.Marshal()
	assert.Nil(t, err)

	var got SendMsg
	assert.Nil(t, got.Unmarshal(bz))
	assert.Equal(t, msg, &got)
	assert.Equal(t, "cash/send", got.Path())
}
