package ledgertest

import (
	"context"
	"reflect"
	"testing"

	"github.com/fluxur/ledger"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetConditions(nil); got != nil {
		t.Fatalf("unexpected conditions: %+v", got)
	}
	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestAuthSignerComesFirst(t *testing.T) {
	conds := []ledger.Condition{
		NewCondition(),
		NewCondition(),
		NewCondition(),
	}

	a := Auth{
		Signer:  conds[0],
		Signers: conds[1:],
	}

	if got := a.GetConditions(nil); !reflect.DeepEqual(got, conds) {
		for i, c := range got {
			t.Logf("condition %d: %s", i, c)
		}
		t.Fatalf("unexpected conditions")
	}

	for i, c := range conds {
		if !a.HasAddress(nil, c.Address()) {
			t.Errorf("condition %d (%s) address should be present", i, c)
		}
	}
	if a.HasAddress(nil, NewCondition().Address()) {
		t.Fatal("random condition must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	b := CtxAuth{Key: "other"}
	cond := NewCondition()

	ctx := a.SetConditions(context.Background(), cond)
	if !a.HasAddress(ctx, cond.Address()) {
		t.Fatal("condition set in the context not found")
	}
	if b.HasAddress(ctx, cond.Address()) {
		t.Fatal("condition found using a different key")
	}
	if got := b.GetConditions(ctx); got != nil {
		t.Fatalf("unexpected conditions: %+v", got)
	}
}

func TestSeededKey(t *testing.T) {
	a := SeededKey(t, "alice")
	if !a.PublicKey().Equals(SeededKey(t, "alice").PublicKey()) {
		t.Fatal("seeded key must be deterministic")
	}
	if a.PublicKey().Equals(SeededKey(t, "bob").PublicKey()) {
		t.Fatal("different names must give different keys")
	}
}
