package errors

import (
	"errors"
	"testing"
)

func TestErrorHelpers(t *testing.T) {
	err := NewInvalidArgument("bad")
	if !IsInvalidArgument(err) {
		t.Fatal("expected invalid argument")
	}

	wrapped := WrapInternal(err, "ctx")
	if !IsInternal(wrapped) {
		t.Fatal("expected internal")
	}
	// WrapInternal keeps only the message of the cause.
	if IsInvalidArgument(wrapped) {
		t.Fatal("internal error must not leak the wrapped kind")
	}
}

func TestKindsAreDistinct(t *testing.T) {
	if IsNotFound(NewForbidden("tag 1")) {
		t.Fatal("forbidden must not be not-found")
	}
	if IsForbidden(NewNotFound("tag 1")) {
		t.Fatal("not-found must not be forbidden")
	}
	if !IsAlreadyExists(NewAlreadyExists("email")) {
		t.Fatal("expected already exists")
	}
	if errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Fatal("user not found is its own kind")
	}
}
