package models

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies every failure that can leave the model façade.
type ErrorKind string

const (
	KindConfigMissing      ErrorKind = "config_missing"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindQuotaExceeded      ErrorKind = "quota_exceeded"
	KindUnknown            ErrorKind = "unknown"
)

// Error is the typed error returned by the façade and the providers.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Err    error
}

func NewError(kind ErrorKind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

func WrapError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Detail: err.Error(), Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, KindUnknown for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Classify converts any error into *Error. Typed errors keep their kind and
// get op filled in when it is missing.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Op != "" {
			return e
		}
		return &Error{Kind: e.Kind, Op: op, Detail: e.Detail, Err: e.Err}
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return WrapError(KindServiceUnavailable, op, err)
	case errors.As(err, &netErr):
		return WrapError(KindServiceUnavailable, op, err)
	}
	return WrapError(KindUnknown, op, err)
}

// KindFromStatus maps an upstream HTTP status code to an ErrorKind.
func KindFromStatus(code int) ErrorKind {
	switch {
	case code == http.StatusTooManyRequests:
		return KindQuotaExceeded
	case code == http.StatusBadRequest,
		code == http.StatusNotFound,
		code == http.StatusRequestEntityTooLarge,
		code == http.StatusUnprocessableEntity:
		return KindInvalidInput
	case code == http.StatusRequestTimeout, code >= 500:
		return KindServiceUnavailable
	}
	return KindUnknown
}

// HTTPStatus is the status the JSON API answers with for kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindConfigMissing:
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}
