package taxonomy

import (
	"errors"
	"fmt"
)

// ErrLinkbaseNotFound indicates no file ending in label.xml exists under the
// taxonomy directory.
var ErrLinkbaseNotFound = errors.New("no file ending in label.xml found")

// LoadError reports a missing or unreadable label linkbase. Distinguished
// from ParseError so callers can branch on the failure mode.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("taxonomy: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ParseError reports a label linkbase that exists but is malformed XML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("taxonomy: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
