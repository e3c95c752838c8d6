package app

import (
	"errors"
	"fmt"
)

// ErrNoBridges is returned when the discovery service lists no bridge at all.
var ErrNoBridges = errors.New("discovery service returned no bridges")

// Failure is an expected, operator-facing failure: the message is printed as is and
// nothing was persisted. Any other error returned by an App operation is fatal.
type Failure struct {
	Msg string
	Err error
}

func (f *Failure) Error() string {
	return f.Msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func failf(format string, args ...any) *Failure {
	return &Failure{Msg: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is a reported (non-fatal) failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
