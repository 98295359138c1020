// Package apperr defines the error kinds handlers return and the single
// translation point from an error kind to an HTTP status plus the standard
// error envelope.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"storefront/utils"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Auth
	Forbidden
	NotFound
	Conflict
	External
)

type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func WithDetails(kind Kind, msg string, details any) *Error {
	return &Error{Kind: kind, Message: msg, Details: details}
}

func status(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case External:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Write translates err to the error envelope. Unknown errors are logged and
// surfaced as a generic message so no internal detail leaks.
func Write(w http.ResponseWriter, err error) {
	var e *Error
	if !errors.As(err, &e) {
		log.Printf("unhandled error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if e.Kind == Internal {
		log.Printf("internal error: %v", e)
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if e.Details != nil {
		utils.RespondWithErrorDetails(w, status(e.Kind), e.Message, e.Details)
		return
	}
	utils.RespondWithError(w, status(e.Kind), e.Message)
}
