package errors

import (
	"testing"
)

func TestFieldErrors(t *testing.T) {
	var err error
	err = AppendField(err, "Subject", ErrEmpty)
	err = AppendField(err, "ReleaseTime", ErrInput)
	err = AppendField(err, "Subject", nil)
	err = AppendField(err, "Beneficiary", Field("Beneficiary", ErrUnauthorized, "must be %s", "signer"))

	if got := FieldErrors(err, "Subject"); len(got) != 1 || !ErrEmpty.Is(got[0]) {
		t.Fatalf("unexpected subject errors: %v", got)
	}
	if got := FieldErrors(err, "ReleaseTime"); len(got) != 1 || !ErrInput.Is(got[0]) {
		t.Fatalf("unexpected release time errors: %v", got)
	}
	if got := FieldErrors(err, "Vault"); len(got) != 0 {
		t.Fatalf("unexpected vault errors: %v", got)
	}
	if got := FieldErrors(nil, "Subject"); got != nil {
		t.Fatalf("nil error has no field errors: %v", got)
	}
}

func TestFieldMessage(t *testing.T) {
	err := Field("Amount", ErrAmount, "got %d", 3)
	if want := `field "Amount": got 3: invalid amount`; err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
	if Field("Amount", nil, "ignored") != nil {
		t.Fatal("nil error must produce nil field error")
	}
}
