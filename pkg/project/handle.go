package project

import (
	"fmt"
	"strings"
)

// Handle identifies a project of a workspace. The optional namespace
// denotes the owner (organization) of the project's repository.
type Handle struct {
	Namespace string
	Name      string
}

func New(name string, ns ...string) Handle {
	h := Handle{Name: name}
	if len(ns) > 0 {
		h.Namespace = ns[0]
	}
	return h
}

// Parse parses a handle in the form <name> or <namespace>/<name>.
func Parse(s string) (Handle, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	for _, p := range parts {
		if p == "" {
			return Handle{}, fmt.Errorf("invalid project handle %q: empty segment", s)
		}
	}
	switch len(parts) {
	case 1:
		return Handle{Name: parts[0]}, nil
	case 2:
		return Handle{Namespace: parts[0], Name: parts[1]}, nil
	default:
		return Handle{}, fmt.Errorf("invalid project handle %q: too many segments", s)
	}
}

func MustParse(s string) Handle {
	h, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Handle) String() string {
	if h.Namespace == "" {
		return h.Name
	}
	return h.Namespace + "/" + h.Name
}

func (h Handle) IsZero() bool {
	return h.Name == ""
}

func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Handle) UnmarshalText(data []byte) error {
	p, err := Parse(string(data))
	if err != nil {
		return err
	}
	*h = p
	return nil
}

func Compare(a, b Handle) int {
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
