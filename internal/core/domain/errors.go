package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an error for presentation and propagation.
type Kind string

const (
	KindNetwork    Kind = "network"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindServer     Kind = "server"
	KindForbidden  Kind = "forbidden"
)

var (
	ErrNetwork    = errors.New("network error")
	ErrAuth       = errors.New("authentication error")
	ErrValidation = errors.New("validation error")
	ErrServer     = errors.New("server error")
	ErrForbidden  = errors.New("access forbidden")

	// ErrVotePending is returned when a vote call is ignored because one is already in flight.
	ErrVotePending = errors.New("vote already in progress")
	// ErrNotAuthenticated is returned when an operation needs a session and there is none.
	ErrNotAuthenticated = &Error{Kind: KindAuth, Message: "please log in to continue", Err: ErrAuth}
	// ErrSessionExpired is attached to expiry events.
	ErrSessionExpired = &Error{Kind: KindAuth, Message: "session expired", Err: ErrAuth}

	// Reference backend errors.
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProjectNotFound    = errors.New("project not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNoActiveLaunch     = errors.New("no active launch")
	ErrImageNotFound      = errors.New("image not found")
)

var kindSentinels = map[Kind]error{
	KindNetwork:    ErrNetwork,
	KindAuth:       ErrAuth,
	KindValidation: ErrValidation,
	KindServer:     ErrServer,
	KindForbidden:  ErrForbidden,
}

// Error is the normalized client error. Message is always safe to show to a user.
type Error struct {
	Kind    Kind
	Message string
	Field   string // validation only
	Status  int    // HTTP status when the error came from a response
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, status int, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: fmt.Sprintf(format, args...),
		Err:     kindSentinels[kind],
	}
}

// NetworkError reports a timeout, unreachable host or open circuit.
func NetworkError(format string, args ...any) *Error {
	return newError(KindNetwork, 0, format, args...)
}

// AuthError reports a rejected credential or a malformed auth response.
func AuthError(status int, format string, args ...any) *Error {
	return newError(KindAuth, status, format, args...)
}

// ServerError reports a non-2xx response or a response of the wrong shape.
func ServerError(status int, format string, args ...any) *Error {
	return newError(KindServer, status, format, args...)
}

// ValidationFailed reports a client-side form check failing on field.
func ValidationFailed(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field, Err: ErrValidation}
}

// Forbidden reports an action the current identity may not perform.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message, Err: ErrForbidden}
}

// KindOf returns the kind of err, or "" when err is not a classified error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message renders err as the single human-readable line shown in banners.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
