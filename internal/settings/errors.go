package settings

import (
	"errors"
	"fmt"
)

// Sentinel errors for persistence failures
var (
	ErrParse = errors.New("settings file is not a valid document")
	ErrIO    = errors.New("settings file i/o failed")
)

// ErrorKind classifies a persistence failure
type ErrorKind string

const (
	KindIO     ErrorKind = "io"
	KindParse  ErrorKind = "parse"
	KindDecode ErrorKind = "decode"
)

// OpError wraps a failure with the operation and file it concerns.
// For KindDecode the wrapped error is the domain error
// (MissingFieldsError, TypeMismatchError or ValidationError).
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrIO and ErrParse by kind
func (e *OpError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

// IsKind reports whether err is an *OpError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
