// Package errors attaches process exit codes to errors.
package errors

import (
	pkgerrors "github.com/pkg/errors"
)

type ExitCodeError struct {
	code ExitCode
	error
}

func NewError(err error, exitCode ExitCode) *ExitCodeError {
	if err == nil {
		return nil
	}
	return &ExitCodeError{exitCode, err}
}

func (e *ExitCodeError) GetExitCode() ExitCode {
	if e == nil {
		return SuccessExitCode
	}
	return e.code
}

func (e *ExitCodeError) Cause() error {
	return e.error
}

// GetExitCode returns the code of the outermost ExitCodeError in err's cause
// chain, FailureExitCode for any other non-nil error and SuccessExitCode for nil.
func GetExitCode(err error) ExitCode {
	for err != nil {
		if e, ok := err.(*ExitCodeError); ok {
			return e.GetExitCode()
		}
		c, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		next := c.Cause()
		if next == err {
			break
		}
		err = next
	}
	if err == nil {
		return SuccessExitCode
	}
	return FailureExitCode
}

// Wrapf annotates err while keeping its exit code reachable.
func Wrapf(err error, exitCode ExitCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return NewError(pkgerrors.Wrapf(err, format, args...), exitCode)
}
