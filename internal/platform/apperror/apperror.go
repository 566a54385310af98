// Package apperror is the shared typed-error model consulted by every
// module and translated verbatim at the HTTP edge. It generalizes the
// teacher's per-module errors.go + GetErrorCode/GetErrorMessage pair
// into one type so that pattern stops being re-implemented five times.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL"
)

// Error carries a stable code, its HTTP mapping, and a message.
type Error struct {
	Code       Code
	HTTPStatus int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap lets errors.Is/errors.As reach the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

func newErr(code Code, status int, message string) *Error {
	return &Error{Code: code, HTTPStatus: status, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return newErr(CodeUnauthorized, http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "not allowed"
	}
	return newErr(CodeForbidden, http.StatusForbidden, message)
}

func BadRequest(message string) *Error {
	if message == "" {
		message = "malformed request"
	}
	return newErr(CodeBadRequest, http.StatusBadRequest, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "not found"
	}
	return newErr(CodeNotFound, http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	if message == "" {
		message = "conflict"
	}
	return newErr(CodeConflict, http.StatusConflict, message)
}

// Internal wraps cause (if any) while keeping the public message stable.
func Internal(cause error) *Error {
	e := newErr(CodeInternal, http.StatusInternalServerError, "internal server error")
	e.cause = cause
	return e
}

// As extracts an *Error from err, falling back to an Internal wrapper
// for anything the core didn't raise as a typed error itself.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
