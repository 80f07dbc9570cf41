package as5600

import (
	"errors"
	"fmt"
)

// ErrUnimplemented is returned by bus implementations that do not support
// an operation. The simulated register space returns it from Transaction;
// callers can tell it apart from a transport failure with errors.Is.
var ErrUnimplemented = errors.New("as5600: operation not implemented")

// TransportError is returned when the underlying bus fails. It is the
// only error kind the driver surfaces: register decoding is total and
// never fails, so every Device error wraps a bus-level cause.
type TransportError struct {
	Op  string // driver operation that failed, e.g. "read raw angle"
	Err error  // underlying bus error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("as5600: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func transportErr(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
