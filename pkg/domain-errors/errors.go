// Package domainerrors carries the error codes the core and transport agree on.
//
// Only inputs that prevent a check from running are errors. A check that ran
// and did not match is a normal result and never surfaces here.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the kind of failure in a transport-independent way.
type Code string

const (
	CodeInvalidPayload     Code = "invalid_payload"
	CodeMissingField       Code = "missing_field"
	CodeUnknownBenefitType Code = "unknown_benefit_type"
	CodeUnrecognizedStep   Code = "unrecognized_step"
	CodeUnauthorized       Code = "unauthorized"
	CodeNotFound           Code = "not_found"
	CodeRateLimited        Code = "rate_limited"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error. Fields lists the request fields the caller
// has to supply when the payload was rejected.
type Error struct {
	Code    Code
	Message string
	Fields  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// WithFields returns a copy of e carrying the list of required fields.
func (e *Error) WithFields(fields ...string) *Error {
	cp := *e
	cp.Fields = append([]string(nil), fields...)
	return &cp
}

// InvalidPayload is the error returned for malformed or non-object input.
func InvalidPayload(msg string, required ...string) *Error {
	return New(CodeInvalidPayload, msg).WithFields(required...)
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// ToHTTPStatus maps a code to the status the transport layer answers with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidPayload, CodeMissingField, CodeUnknownBenefitType:
		return http.StatusBadRequest
	case CodeUnrecognizedStep, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
