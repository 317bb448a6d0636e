package domain

import (
	"errors"
	"strings"
)

// ErrKind groups errors by how the transport layer must answer them.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 422
	KindConflict       ErrKind = "conflict"       // 400
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error carries a stable Code clients may key on and a Message that is safe
// to show them. Cause is for logs only and never leaves the process.
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString("/")
	b.WriteString(e.Code)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// With attaches one meta entry and returns e.
func (e *Error) With(key, value string) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]string, 2)
	}
	e.Meta[key] = value
	return e
}

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	e := New(kind, code, msg)
	e.Cause = cause
	return e
}

func as(err error) (*Error, bool) {
	var de *Error
	ok := errors.As(err, &de)
	return de, ok
}

// Is reports whether err is, or wraps, a domain error with the given code.
func Is(err error, code string) bool {
	de, ok := as(err)
	return ok && de.Code == code
}

// KindOf returns KindInternal for anything that is not a domain error.
func KindOf(err error) ErrKind {
	if de, ok := as(err); ok {
		return de.Kind
	}
	return KindInternal
}

// Request input.

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return New(KindValidation, "missing_field", field+" is required").With("field", field)
}

func ErrInvalidField(field, reason string) *Error {
	return New(KindValidation, "invalid_field", field+" "+reason).
		With("field", field).
		With("reason", reason)
}

// Accounts.

func ErrEmailAlreadyRegistered() *Error {
	return New(KindConflict, "email_already_registered", "Email already registered")
}

func ErrEmailNotRegistered() *Error {
	return New(KindNotFound, "email_not_registered", "Email not registered. Please register first.")
}

func ErrInvalidPassword() *Error {
	return New(KindAuth, "invalid_password", "Invalid password")
}

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

func ErrProfileNotFound() *Error {
	return New(KindNotFound, "profile_not_found", "Profile not found")
}

// Bearer tokens. Clients get the same message whatever went wrong.

const tokenRejected = "Invalid or expired token"

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "Invalid or missing token")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", tokenRejected)
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", tokenRejected)
}

// Backing services and programming errors.

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrRedisUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "redis_unavailable", "cache unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
