// Package errors carries coded errors from the domain out to the http envelope.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
)

// Error is a coded error. msg is safe to show clients, orig is not
type Error struct {
	code  ErrorCode
	msg   string
	field string
	orig  error
}

// Wire is the error as clients see it
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig == nil:
		return e.msg
	}
	return e.msg + ": " + e.orig.Error()
}

func (e *Error) Unwrap() error { return e.orig }

// Code of the error
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// New builds an error with a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap attaches code and msg to orig; orig stays reachable through errors.Is
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// WithField returns a copy of err naming field. Foreign errors pass through
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.field = field
	return &cp
}

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps err through its code
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WireFrom never includes the wrapped cause of a coded error.
// nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field}
}

// Root is the innermost error in the chain
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}

func ModelUnavailablef(format string, a ...any) error {
	return Newf(ErrorCodeModelUnavailable, format, a...)
}

// ClassificationFailed hides orig behind the client message "Prediction failed"
func ClassificationFailed(orig error) error {
	return Wrap(orig, ErrorCodeClassificationFailed, "Prediction failed")
}
