// Package apperr carries business failures from services up to the HTTP layer.
// Every failure is raised where it is detected and mapped to a status code
// exactly once, in the server's error handler.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	NotFound   Code = "NOT_FOUND"
	Validation Code = "VALIDATION"
	Conflict   Code = "CONFLICT"
	Forbidden  Code = "FORBIDDEN"
)

type Error struct {
	code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Code() Code    { return e.code }

func NotFoundf(format string, args ...any) error {
	return &Error{code: NotFound, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error {
	return &Error{code: Validation, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{code: Conflict, msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) error {
	return &Error{code: Forbidden, msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the business code, or "" for unclassified errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
