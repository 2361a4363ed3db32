package crud

import (
	"errors"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound("Project")

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected errors.Is(err, ErrNotFound) to be true")
	}
	if got := err.Error(); got != "Project not found" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestInvalid_joinsViolations(t *testing.T) {
	err := Invalid([]string{"Name is required", "Price must be a positive number"})

	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected errors.Is(err, ErrValidation) to be true")
	}
	want := "Validation failed: Name is required, Price must be a positive number"
	if got := err.Error(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("A project with this title already exists")

	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is(err, ErrConflict) to be true")
	}
	if got := err.Error(); got != "A project with this title already exists" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestErrorKinds_doNotCrossMatch(t *testing.T) {
	if errors.Is(NotFound("User"), ErrValidation) {
		t.Error("not-found error must not match ErrValidation")
	}
	if errors.Is(Invalid([]string{"x"}), ErrConflict) {
		t.Error("validation error must not match ErrConflict")
	}
}
