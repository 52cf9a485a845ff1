package sysmonitor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned when the running platform exposes no
	// accessor for the requested counter.
	ErrUnsupported = errors.New("not supported on this platform")

	// ErrParse matches every *ParseError.
	ErrParse = errors.New("malformed counter source")
)

// ParseError reports a textual counter source (a /proc entry) that is
// missing an expected field or holds a value that does not parse. It points
// at a kernel ABI change or a torn read, never at a permission or existence
// problem, which surface as the underlying OS error instead.
type ParseError struct {
	Source string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to parse %s in %s", e.Field, e.Source)
	}
	return fmt.Sprintf("failed to parse %s in %s: %v", e.Field, e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// KernReturn is a non-success mach kern_return_t.
type KernReturn int32

func (k KernReturn) Error() string {
	return fmt.Sprintf("kern_return_t=%d", int32(k))
}
