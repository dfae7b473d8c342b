package ledgertest

import (
	"testing"

	"github.com/fluxur/ledger"
	"github.com/fluxur/ledger/errors"
	"github.com/fluxur/ledger/store"
)

func TestSuccessfulDecorator(t *testing.T) {
	var (
		d Decorator
		h Handler
	)

	_, _ = d.Check(nil, nil, nil, &h)
	assertHCounts(t, &h, 1, 0)

	_, _ = d.Deliver(nil, nil, nil, &h)
	assertHCounts(t, &h, 1, 1)
}

func TestDecoratorWithError(t *testing.T) {
	d := Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrNotFound,
	}

	// When using an error returning decorator, handler is never called.
	// Otherwise using nil would panic.
	var handler ledger.Handler

	_, err := d.Check(nil, nil, nil, handler)
	if want := errors.ErrUnauthorized; !want.Is(err) {
		t.Errorf("want %q, got %q", want, err)
	}

	_, err = d.Deliver(nil, nil, nil, handler)
	if want := errors.ErrNotFound; !want.Is(err) {
		t.Errorf("want %q, got %q", want, err)
	}
	if d.CallCount() != 2 {
		t.Errorf("want 2 calls, got %d", d.CallCount())
	}
}

func TestDecorateWritingHandler(t *testing.T) {
	h := Handler{Write: &ledger.Model{Key: []byte("k"), Value: []byte("v")}}
	var d Decorator
	db := store.MemStore()

	if _, err := Decorate(&h, &d).Deliver(nil, db, nil); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v, _ := db.Get([]byte("k")); string(v) != "v" {
		t.Fatalf("unexpected value: %q", v)
	}
	assertHCounts(t, &h, 0, 1)
	if d.DeliverCallCount() != 1 {
		t.Fatal("decorator not called")
	}
}

func assertHCounts(t testing.TB, h *Handler, wantCheck, wantDeliver int) {
	t.Helper()
	if got := h.CheckCallCount(); got != wantCheck {
		t.Errorf("want %d check calls, got %d", wantCheck, got)
	}
	if got := h.DeliverCallCount(); got != wantDeliver {
		t.Errorf("want %d deliver calls, got %d", wantDeliver, got)
	}
}
