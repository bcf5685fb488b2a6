// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can map it to a response code
// without parsing message strings.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindDuplicate  Kind = "DUPLICATE"
	KindNotFound   Kind = "NOT_FOUND"
	KindPermission Kind = "PERMISSION_DENIED"
	KindConflict   Kind = "STATE_CONFLICT"
	KindExternal   Kind = "EXTERNAL_SERVICE_ERROR"
	KindInternal   Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause for logging while the message stays user-facing.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error  { return New(KindValidation, message) }
func Duplicate(message string) *Error   { return New(KindDuplicate, message) }
func NotFound(resource string) *Error   { return Newf(KindNotFound, "%s not found", resource) }
func Permission(message string) *Error  { return New(KindPermission, message) }
func Conflict(message string) *Error    { return New(KindConflict, message) }
func External(message string, err error) *Error { return Wrap(KindExternal, message, err) }
func Internal(err error) *Error         { return Wrap(KindInternal, "internal error", err) }

// KindOf returns the classification of err, or KindInternal for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
