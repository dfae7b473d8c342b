package bech32

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDecodeKnownValue(t *testing.T) {
	// bech32 -e -h tlock 746573742d7061796c6f6164
	const enc = `tlock1w3jhxapdwpshjmr0v9jq8pydwt`

	want, _ := hex.DecodeString("746573742d7061796c6f6164")
	hrp, payload, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}
	if hrp != "tlock" {
		t.Fatalf("unexpected prefix %q", hrp)
	}
	if !bytes.Equal(want, payload) {
		t.Fatalf("invalid decode: %X", payload)
	}
	raw, err := Encode(hrp, payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if raw != enc {
		t.Fatalf("invalid encoding: %q", raw)
	}
}

func TestRoundTripAddress(t *testing.T) {
	addr := bytes.Repeat([]byte{0xab}, 32)
	enc, err := Encode("lock", addr)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	hrp, got, err := Decode(enc)
	if err != nil {
		t.Fatalf("cannot decode %q: %s", enc, err)
	}
	if hrp != "lock" || !bytes.Equal(got, addr) {
		t.Fatalf("got %q %X", hrp, got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, _, err := Decode("lock1invalidchecksum"); err == nil {
		t.Fatal("malformed value must not decode")
	}
}
