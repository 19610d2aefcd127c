package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/juanpineyrob/dscommerce/domain/shared"
)

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"not found", shared.NewNotFoundError("product"), CodeNotFound, http.StatusNotFound},
		{"forbidden", shared.NewForbiddenError(), CodeForbidden, http.StatusForbidden},
		{"unauthenticated", shared.NewUnauthenticatedError(), CodeUnauthorized, http.StatusUnauthorized},
		{"integrity", shared.NewIntegrityError("product", "referential integrity violation"), CodeIntegrity, http.StatusBadRequest},
		{"conflict", shared.NewConflictError("user", "duplicate email"), CodeConflict, http.StatusConflict},
		{"validation", shared.NewValidationError("product", []shared.FieldMessage{{Field: "name", Message: "Required field"}}), CodeValidation, http.StatusUnprocessableEntity},
		{"unclassified", stderrors.New("driver: bad connection"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(tt.err)
			if appErr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", appErr.Code, tt.wantCode)
			}
			if got := appErr.HTTPStatusCode(); got != tt.wantStatus {
				t.Errorf("HTTPStatusCode() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestFromDomainErrorKeepsValidationFields(t *testing.T) {
	fields := []shared.FieldMessage{
		{Field: "name", Message: "Required field"},
		{Field: "price", Message: "Price must be positive"},
	}

	appErr := FromDomainError(shared.NewValidationError("product", fields))
	if len(appErr.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(appErr.Fields))
	}
	if appErr.Fields[0].Field != "name" || appErr.Fields[1].Field != "price" {
		t.Errorf("Fields = %+v", appErr.Fields)
	}
}

func TestFromDomainErrorHidesInternalDetail(t *testing.T) {
	appErr := FromDomainError(stderrors.New("password hash leaked somehow"))
	if appErr.Message != "internal server error" {
		t.Errorf("Message = %q, internal detail must not reach clients", appErr.Message)
	}
	if appErr.Err == nil {
		t.Error("the original error must stay available for logging")
	}
}

func TestFromDomainErrorPassthrough(t *testing.T) {
	original := NotFound("order not found")
	if got := FromDomainError(original); got != original {
		t.Error("already-translated errors must pass through unchanged")
	}
	if FromDomainError(nil) != nil {
		t.Error("nil must stay nil")
	}
}

func TestIs(t *testing.T) {
	err := Forbidden("access denied")
	if !Is(err, CodeForbidden) {
		t.Error("Is() should match the carried code")
	}
	if Is(err, CodeNotFound) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Error("Is() should not match plain errors")
	}
}
