package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fluxur/ledger/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  *errors.Error
		wantTime UnixTime
	}{
		"zero value": {
			raw:      "0",
			wantTime: 0,
		},
		"a number": {
			raw:      "123456789",
			wantTime: 123456789,
		},
		"a string": {
			raw:      `"2019-04-11T11:27:11Z"`,
			wantTime: AsUnixTime(time.Date(2019, 4, 11, 11, 27, 11, 0, time.UTC)),
		},
		"invalid string": {
			raw:     `"not a date"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.wantTime {
				t.Fatalf("want %d, got %d", tc.wantTime, got)
			}
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	base := UnixTime(100)
	if got := base.Add(150 * time.Second); got != 250 {
		t.Fatalf("unexpected result: %d", got)
	}
	if got := base.Add(-50 * time.Second); got != 50 {
		t.Fatalf("unexpected result: %d", got)
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("negative time must be invalid: %v", err)
	}
	if got := UnixTime(0).String(); got != "1970-01-01T00:00:00Z" {
		t.Fatalf("unexpected format: %s", got)
	}
}
