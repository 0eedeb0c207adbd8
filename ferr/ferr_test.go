package ferr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewPreconditionDefaultMessage(t *testing.T) {
	err := NewPrecondition("")
	if err.Error() != "ferr: precondition failed" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestNewPreconditionCustomMessage(t *testing.T) {
	err := NewPrecondition("age must be positive")
	if err.Error() != "ferr: precondition failed: age must be positive" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestPreconditionFailureMatchesViaErrorsAs(t *testing.T) {
	var wrapped error = fmt.Errorf("wrap: %w", NewPrecondition("x"))
	var pf *PreconditionFailure
	if !errors.As(wrapped, &pf) {
		t.Fatal("expected errors.As to match PreconditionFailure through wrapping")
	}
	if pf.Message != "x" {
		t.Fatalf("expected message 'x', got %q", pf.Message)
	}
}

func TestPropertyViolationUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	pv := &PropertyViolation{Bindings: map[string]any{"n": 1}, Cause: cause}
	if !errors.Is(pv, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
	if pv.Error() != "ferr: property violated: boom" {
		t.Fatalf("unexpected message: %q", pv.Error())
	}
}

func TestPropertyViolationWithoutCause(t *testing.T) {
	pv := &PropertyViolation{Bindings: map[string]any{"n": 1}}
	if pv.Error() != "ferr: property violated" {
		t.Fatalf("unexpected message: %q", pv.Error())
	}
	if pv.Unwrap() != nil {
		t.Fatal("expected a nil Unwrap when there is no cause")
	}
}

func TestGenerationFailureMessage(t *testing.T) {
	err := &GenerationFailure{Arbitrary: "intRange(1,10)", Tries: 100}
	want := `ferr: generation failed for "intRange(1,10)" after 100 tries`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestBudgetExceededMessage(t *testing.T) {
	err := &BudgetExceeded{Budget: "maxAttempts", Limit: 50}
	want := "ferr: budget maxAttempts exceeded (limit 50)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestTimeoutMessage(t *testing.T) {
	err := &Timeout{DeadlineMs: 1500}
	want := "ferr: timeout after 1500ms"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestInvariantFailureUnwrapsCause(t *testing.T) {
	cause := errors.New("counter diverged")
	err := &InvariantFailure{Step: 3, Command: "incr", Cause: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
	want := `ferr: invariant failed at step 3 (command "incr"): counter diverged`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestUserCallbackErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("panic: boom")
	err := &UserCallbackError{Callback: "onProgress", Cause: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestNewMisuseMessage(t *testing.T) {
	err := NewMisuse("event called outside a property callback")
	want := "ferr: misuse: event called outside a property callback"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestDistinctErrorKindsDoNotMatchEachOther(t *testing.T) {
	var pf *PreconditionFailure
	err := &GenerationFailure{Arbitrary: "x", Tries: 1}
	if errors.As(error(err), &pf) {
		t.Fatal("expected a GenerationFailure not to match as a PreconditionFailure")
	}
}
