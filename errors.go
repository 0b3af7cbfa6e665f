// Package uringrt is a single-threaded, cooperatively scheduled io_uring
// runtime: a reactor, an operation façade, an executor, and a poll-fallback
// adapter for buffer-aliasing-sensitive read/write paths.
package uringrt

import (
	"errors"
	"fmt"
	"syscall"
)

// Code is the high-level error category of an Error, per the taxonomy in
// the error handling design.
type Code string

const (
	// CodeOpKernelError marks a completion whose result was a negative
	// errno: an ordinary result the task sees, not a fatal condition.
	CodeOpKernelError Code = "op kernel error"
	// CodeSubmissionFull marks a submit that found the ring still full
	// after one flush-and-retry.
	CodeSubmissionFull Code = "submission queue full"
	// CodeKernelSyncFailed marks a submit/submit-and-wait syscall failure
	// surfaced from tick.
	CodeKernelSyncFailed Code = "kernel sync failed"
	// CodeInvariantViolation marks a fatal condition: a CQE whose
	// user-data names no live slot, or a oneshot capability that received
	// a completion with MORE set.
	CodeInvariantViolation Code = "invariant violation"
)

// Error is this module's structured error type: an operation name, a
// high-level Code, the kernel errno when one is available, a message, and
// an optionally wrapped cause.
type Error struct {
	Op    string
	Code  Code
	Errno syscall.Errno
	Msg   string
	Inner error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op == "" {
		return fmt.Sprintf("uringrt: %s", msg)
	}
	if e.Errno != 0 {
		return fmt.Sprintf("uringrt: %s: %s (errno=%d)", e.Op, msg, e.Errno)
	}
	return fmt.Sprintf("uringrt: %s: %s", e.Op, msg)
}

// Unwrap returns the wrapped cause, for errors.Is/errors.As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is comparison by Code.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// NewError creates a structured Error.
func NewError(op string, code Code, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// NewKernelError wraps a negative CQE result (already negated to a positive
// errno by the caller) into an *Error with CodeOpKernelError.
func NewKernelError(op string, errno syscall.Errno) *Error {
	return &Error{Op: op, Code: CodeOpKernelError, Errno: errno, Msg: errno.Error()}
}

// WrapError wraps an arbitrary error with module context, mapping a raw
// syscall.Errno to CodeOpKernelError and leaving an existing *Error's code
// untouched.
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	if e, ok := inner.(*Error); ok {
		return &Error{Op: op, Code: e.Code, Errno: e.Errno, Msg: e.Msg, Inner: e.Inner}
	}
	if errno, ok := inner.(syscall.Errno); ok {
		return &Error{Op: op, Code: CodeOpKernelError, Errno: errno, Msg: errno.Error(), Inner: inner}
	}
	return &Error{Op: op, Code: CodeKernelSyncFailed, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is an *Error carrying the given Code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
