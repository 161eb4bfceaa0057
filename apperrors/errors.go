package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error independently of its message.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConfiguration    Kind = "configuration"
	KindGateway          Kind = "gateway"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindInternal         Kind = "internal"
)

// Error represents an application error
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"error"`
	// Details carries the raw upstream body for gateway failures.
	Details string `json:"details,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.Code, e.Details)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, apperrors.ErrNotFound) works for any not-found message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// Configuration signals a deployment problem (missing secrets). It is not
// retryable by the caller.
func Configuration(message string) *Error {
	return New(KindConfiguration, http.StatusInternalServerError, message, nil)
}

// Gateway wraps an upstream rejection, keeping the provider's status code and
// raw body verbatim.
func Gateway(statusCode int, body string) *Error {
	return &Error{
		Kind:    KindGateway,
		Code:    statusCode,
		Message: "Payment creation failed",
		Details: body,
	}
}

func MethodNotAllowed() *Error {
	return New(KindMethodNotAllowed, http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func Internal(message string, err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, message, err)
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrConfiguration    = &Error{Kind: KindConfiguration}
	ErrGateway          = &Error{Kind: KindGateway}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed}
	ErrInternal         = &Error{Kind: KindInternal}
)

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var target *Error
	if errors.As(err, &target) {
		return target
	}
	return Internal("Internal server error", err)
}
