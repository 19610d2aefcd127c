/*
Package shared holds the error vocabulary common to every subdomain.

Design:
 1. Sentinel errors classify faults for errors.Is() checks.
 2. DomainError carries business context and captures the stack at creation
    time; formatting is deferred until a log line actually needs it.
 3. Domain errors know nothing about HTTP status codes; that mapping lives
    in the API layer.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors. Each one is a stable fault kind the caller can branch on.
var (
	// ErrNotFound requested entity id does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden the authenticated principal lacks rights over the target.
	ErrForbidden = errors.New("access denied")

	// ErrUnauthenticated no resolvable authenticated principal.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrIntegrity a write would violate a referential constraint.
	ErrIntegrity = errors.New("database integrity violation")

	// ErrInvalidInput malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict unique constraint conflict (e.g. duplicate email).
	ErrConflict = errors.New("conflict")
)

// FieldMessage is one (field, message) pair of a validation failure.
// Validation errors report a set of these so callers can render
// per-field feedback.
type FieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError structured error carrying business context and the stack of
// the point where it was created.
type DomainError struct {
	// Err underlying sentinel, used by errors.Is().
	Err error

	// Entity name of the entity involved ("product", "order", "user").
	Entity string

	// Message human-readable description.
	Message string

	// Fields per-field validation messages; only set for ErrInvalidInput.
	Fields []FieldMessage

	stack []uintptr
}

func (e *DomainError) Error() string { return e.Message }

// Unwrap supports errors.Is() / errors.As() against the sentinel.
func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured stack on demand.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// Stacker is implemented by errors that can report where they were created.
// The API layer uses it when logging failures.
type Stacker interface {
	Stack() []string
}

// CaptureStack captures the current call stack.
// skip counts the frames to drop (usually 3: Callers, CaptureStack, NewXxx).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders stack frames, filtering runtime internals.
// At most 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" error for the given entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates an "access denied" error. The message is
// deliberately generic; the denied resource is not named.
func NewForbiddenError() error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  "user",
		Message: "access denied",
		stack:   CaptureStack(3),
	}
}

// NewUnauthenticatedError creates an "authentication required" error.
func NewUnauthenticatedError() error {
	return &DomainError{
		Err:     ErrUnauthenticated,
		Entity:  "user",
		Message: "authentication required",
		stack:   CaptureStack(3),
	}
}

// NewIntegrityError creates a referential-integrity violation error.
func NewIntegrityError(entity, reason string) error {
	return &DomainError{
		Err:     ErrIntegrity,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a unique-constraint conflict error.
func NewConflictError(entity, reason string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation error carrying the full set of
// (field, message) pairs collected at the input boundary.
func NewValidationError(entity string, fields []FieldMessage) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Message: "invalid " + entity + " data",
		Fields:  fields,
		stack:   CaptureStack(3),
	}
}
