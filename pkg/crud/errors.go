package crud

import (
	"errors"
	"strings"
)

// Sentinel error kinds for the CRUD core. Use errors.Is() to check these;
// the concrete errors returned by Service carry the client-facing message.
var (
	// ErrNotFound indicates the referenced entity does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the candidate attributes violate domain rules.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
)

// Error pairs a sentinel kind with the exact message surfaced to clients.
// errors.Is(err, crud.ErrNotFound) matches through Unwrap.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// NotFound returns a not-found error whose message is "<resource> not found".
func NotFound(resource string) error {
	return &Error{kind: ErrNotFound, msg: resource + " not found"}
}

// Invalid returns a validation error joining every collected violation,
// e.g. "Validation failed: Name is required, Price must be a positive number".
func Invalid(violations []string) error {
	return &Error{kind: ErrValidation, msg: "Validation failed: " + strings.Join(violations, ", ")}
}

// Conflict returns a uniqueness-violation error with the given message.
func Conflict(msg string) error {
	return &Error{kind: ErrConflict, msg: msg}
}
