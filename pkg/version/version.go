package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a semantic version. It is a value type, all
// operations return new versions.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   string
	Build string
}

func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses text according to MAJOR.MINOR.PATCH[-pre][+build].
func Parse(text string) (Version, error) {
	v, err := semver.StrictNewVersion(strings.TrimSpace(text))
	if err != nil {
		return Version{}, &ParseError{Kind: VersionSyntax, Text: text, Err: err}
	}
	return Version{
		Major: v.Major(),
		Minor: v.Minor(),
		Patch: v.Patch(),
		Pre:   v.Prerelease(),
		Build: v.Metadata(),
	}, nil
}

func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, v.Pre, v.Build)
}

// Release returns the version without pre-release and build information.
func (v Version) Release() Version {
	return New(v.Major, v.Minor, v.Patch)
}

// IsStable reports whether the version has left the initial
// development phase (major version zero).
func (v Version) IsStable() bool {
	return v.Major > 0
}

// Compare compares versions by semantic version precedence.
// Build metadata is ignored.
func Compare(a, b Version) int {
	return a.semver().Compare(b.semver())
}

func (v Version) Compare(o Version) int {
	return Compare(v, o)
}

func (v Version) LessThan(o Version) bool {
	return Compare(v, o) < 0
}

// BumpSeverity classifies the change from v to o by its most
// significant differing field. For initial development versions
// a change of the minor field is breaking and classified as MAJOR.
func (v Version) BumpSeverity(o Version) Severity {
	switch {
	case v.Major != o.Major:
		return MAJOR
	case v.Minor != o.Minor:
		if v.Major == 0 {
			return MAJOR
		}
		return MINOR
	default:
		return PATCH
	}
}

// Bump increments the field selected by the severity and resets
// all less significant ones. A PATCH bump of a pre-release yields
// its release version.
func (v Version) Bump(s Severity) Version {
	switch s {
	case MAJOR:
		return New(v.Major+1, 0, 0)
	case MINOR:
		return New(v.Major, v.Minor+1, 0)
	case PATCH:
		if v.Pre != "" {
			return v.Release()
		}
		return New(v.Major, v.Minor, v.Patch+1)
	default:
		return v
	}
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(data []byte) error {
	p, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
