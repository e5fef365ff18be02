package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Conflict(CodePhoneAlreadyUsed))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("errors.Is(ErrConflict): want=true got=false")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("errors.Is(ErrNotFound): want=false got=true")
	}
	if got := CodeOf(err); got != CodePhoneAlreadyUsed {
		t.Fatalf("CodeOf: want=%q got=%q", CodePhoneAlreadyUsed, got)
	}
	if got := KindOf(err); got != KindConflict {
		t.Fatalf("KindOf: want=%q got=%q", KindConflict, got)
	}
}

func TestStoreKeepsTypedErrors(t *testing.T) {
	nf := NotFound("trick", "t1")
	if got := Store("get trick", nf); got != error(nf) {
		t.Fatalf("Store: typed error should pass through, got=%v", got)
	}

	raw := errors.New("connection reset")
	wrapped := Store("get trick", raw)
	if !errors.Is(wrapped, ErrStore) {
		t.Fatalf("Store: want kind store, got=%v", wrapped)
	}
	if !errors.Is(wrapped, raw) {
		t.Fatalf("Store: cause lost")
	}
	if Store("noop", nil) != nil {
		t.Fatalf("Store(nil): want nil")
	}
}

func TestErrorString(t *testing.T) {
	err := InvalidInput(CodeInvalidAmount, "amount %q is not a number", "abc")
	want := `invalid_input (InvalidAmount): amount "abc" is not a number`
	if err.Error() != want {
		t.Fatalf("Error(): want=%q got=%q", want, err.Error())
	}
}
