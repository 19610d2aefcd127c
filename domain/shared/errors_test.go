package shared

import (
	"errors"
	"testing"
)

func TestDomainErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewNotFoundError("product"), ErrNotFound},
		{"forbidden", NewForbiddenError(), ErrForbidden},
		{"unauthenticated", NewUnauthenticatedError(), ErrUnauthenticated},
		{"integrity", NewIntegrityError("product", "referential integrity violation"), ErrIntegrity},
		{"conflict", NewConflictError("user", "duplicate email"), ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	fields := []FieldMessage{
		{Field: "name", Message: "Required field"},
		{Field: "price", Message: "Price must be positive"},
	}
	err := NewValidationError("product", fields)

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation error must classify as invalid input")
	}

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if len(domainErr.Fields) != 2 {
		t.Errorf("len(Fields) = %d, want 2", len(domainErr.Fields))
	}
}

func TestDomainErrorStack(t *testing.T) {
	err := NewNotFoundError("product")

	var stacker Stacker
	if !errors.As(err, &stacker) {
		t.Fatal("domain errors must expose their stack")
	}
	if len(stacker.Stack()) == 0 {
		t.Error("captured stack is empty")
	}
}
