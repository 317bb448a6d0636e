package client

import (
	"errors"
	"fmt"
)

// Errors returned by Client. Pre-flight errors are reported before any
// request is sent.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered, try logging in")
	ErrEmailNotRegistered     = errors.New("email not registered, please register first")
	ErrInvalidPassword        = errors.New("invalid password, please try again")
	ErrUnauthorized           = errors.New("not logged in or session expired")
	ErrUserNotFound           = errors.New("user not found")
	ErrBackendUnreachable     = errors.New("backend not reachable, please try again later")

	ErrMissingFields      = errors.New("please fill out all fields")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAgeGroupRequired   = errors.New("please select a valid age group")
	ErrUnknownOption      = errors.New("please choose one of the offered options")
)

// APIError is a non-2xx response that has no dedicated sentinel.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
}
