// Package apperror defines the closed set of failures returned by repositories
// and use cases. Anything that crosses those boundaries is an *Error.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error variants.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindRepository         Kind = "repository"
	KindUnexpected         Kind = "unexpected"
	KindUnauthorized       Kind = "unauthorized"
	KindEmailAlreadyExists Kind = "email_already_exists"
)

// Error is a tagged error value. Which fields are populated depends on Kind:
//   - NotFound: Entity, ID
//   - Validation: Message, Field (optional)
//   - Repository: Operation, Cause
//   - Unexpected: Cause
//   - Unauthorized: Message
//   - EmailAlreadyExists: ID holds the email
type Error struct {
	Kind      Kind
	Entity    string
	ID        string
	Field     string
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
	case KindValidation:
		if e.Field != "" {
			return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
		}
		return "validation failed: " + e.Message
	case KindRepository:
		return fmt.Sprintf("repository %s failed: %v", e.Operation, e.Cause)
	case KindUnauthorized:
		return e.Message
	case KindEmailAlreadyExists:
		return "email already exists: " + e.ID
	default:
		return fmt.Sprintf("unexpected error: %v", e.Cause)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusCode maps the kind to the HTTP status used by the transport layer.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusForbidden
	case KindEmailAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Operational reports whether the failure is an infrastructure problem the
// caller cannot fix by resubmitting.
func (e *Error) Operational() bool {
	return e.Kind == KindRepository || e.Kind == KindUnexpected
}

func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func Validation(message, field string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

func Repository(operation string, cause error) *Error {
	return &Error{Kind: KindRepository, Operation: operation, Cause: cause}
}

func Unexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Cause: cause}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func EmailAlreadyExists(email string) *Error {
	return &Error{Kind: KindEmailAlreadyExists, ID: email}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Wrap keeps taxonomy errors untouched and classifies anything else as Unexpected.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Unexpected(err)
}

// KindOf returns the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindUnexpected
}

func IsNotFound(err error) bool     { return err != nil && KindOf(err) == KindNotFound }
func IsValidation(err error) bool   { return err != nil && KindOf(err) == KindValidation }
func IsRepository(err error) bool   { return err != nil && KindOf(err) == KindRepository }
func IsUnauthorized(err error) bool { return err != nil && KindOf(err) == KindUnauthorized }
func IsEmailAlreadyExists(err error) bool {
	return err != nil && KindOf(err) == KindEmailAlreadyExists
}
