package version

import (
	"errors"
	"fmt"
)

type ParseKind string

const (
	VersionSyntax = ParseKind("version")
	SpecSyntax    = ParseKind("version spec")
)

var (
	ErrVersionSyntax = errors.New("invalid version")
	ErrSpecSyntax    = errors.New("invalid version spec")
)

// ParseError reports malformed version or version spec text.
// Both kinds can be checked with errors.Is against
// ErrVersionSyntax or ErrSpecSyntax.
type ParseError struct {
	Kind ParseKind
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrVersionSyntax:
		return e.Kind == VersionSyntax
	case ErrSpecSyntax:
		return e.Kind == SpecSyntax
	}
	return false
}
