package version

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mandelsoft/relplan/pkg/scanner"
)

type Operator string

const (
	OP_EQUAL      = Operator("==")
	OP_NOT_EQUAL  = Operator("!=")
	OP_GREATER    = Operator(">")
	OP_GREATER_EQ = Operator(">=")
	OP_LESS       = Operator("<")
	OP_LESS_EQ    = Operator("<=")
	OP_COMPATIBLE = Operator("~>")
)

var operators = map[Operator]struct{}{
	OP_EQUAL:      {},
	OP_NOT_EQUAL:  {},
	OP_GREATER:    {},
	OP_GREATER_EQ: {},
	OP_LESS:       {},
	OP_LESS_EQ:    {},
	OP_COMPATIBLE: {},
}

// Clause is a single requirement. Parts records whether the version
// has been given with two or three numeric components, so that the
// clause renders as it was written.
type Clause struct {
	Op      Operator
	Version Version
	Parts   int
}

func (c Clause) String() string {
	v := c.Version.String()
	if c.Parts == 2 {
		v = fmt.Sprintf("%d.%d", c.Version.Major, c.Version.Minor)
	}
	return string(c.Op) + " " + v
}

// upper is the exclusive upper bound of a compatible clause.
func (c Clause) upper() Version {
	if c.Version.Major == 0 {
		return New(0, c.Version.Minor+1, 0)
	}
	return New(c.Version.Major+1, 0, 0)
}

func (c Clause) Matches(v Version) bool {
	r := Compare(v, c.Version)
	switch c.Op {
	case OP_EQUAL:
		return r == 0
	case OP_NOT_EQUAL:
		return r != 0
	case OP_GREATER:
		return r > 0
	case OP_GREATER_EQ:
		return r >= 0
	case OP_LESS:
		return r < 0
	case OP_LESS_EQ:
		return r <= 0
	case OP_COMPATIBLE:
		// pre-releases of the upper bound are not compatible
		return r >= 0 && Compare(v.Release(), c.upper()) < 0
	}
	return false
}

// Spec is a version range constraint: a disjunction (or) of
// conjunctions (and) of clauses.
type Spec struct {
	alternatives [][]Clause
}

func NewSpec(clauses ...Clause) Spec {
	return Spec{alternatives: [][]Clause{clauses}}
}

// Compatible returns the spec ~> v with the given number of parts.
func Compatible(v Version, parts int) Spec {
	return NewSpec(Clause{Op: OP_COMPATIBLE, Version: v, Parts: parts})
}

// Exact returns the spec == v.
func Exact(v Version) Spec {
	return NewSpec(Clause{Op: OP_EQUAL, Version: v, Parts: 3})
}

func (s Spec) IsZero() bool {
	return len(s.alternatives) == 0
}

func (s Spec) Alternatives() [][]Clause {
	r := make([][]Clause, len(s.alternatives))
	for i, a := range s.alternatives {
		r[i] = append([]Clause(nil), a...)
	}
	return r
}

// Satisfies reports whether the version is in the range. The zero
// spec matches nothing.
func (s Spec) Satisfies(v Version) bool {
	for _, alt := range s.alternatives {
		ok := true
		for _, c := range alt {
			if !c.Matches(v) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Targeting returns the canonical compatible spec anchored at v,
// ~> MAJOR.MINOR for stable versions and ~> 0.MINOR.PATCH for
// initial development versions. Pre-releases are kept.
func (s Spec) Targeting(v Version) Spec {
	switch {
	case v.Pre != "":
		return Compatible(Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Pre: v.Pre}, 3)
	case v.Major == 0:
		return Compatible(New(0, v.Minor, v.Patch), 3)
	default:
		return Compatible(New(v.Major, v.Minor, 0), 2)
	}
}

func (s Spec) String() string {
	alts := make([]string, len(s.alternatives))
	for i, alt := range s.alternatives {
		clauses := make([]string, len(alt))
		for j, c := range alt {
			clauses[j] = c.String()
		}
		alts[i] = strings.Join(clauses, " and ")
	}
	return strings.Join(alts, " or ")
}

func (s Spec) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Spec) UnmarshalText(data []byte) error {
	p, err := ParseSpec(string(data))
	if err != nil {
		return err
	}
	*s = p
	return nil
}

func MustParseSpec(text string) Spec {
	s, err := ParseSpec(text)
	if err != nil {
		panic(err)
	}
	return s
}

////////////////////////////////////////////////////////////////////////////////

// ParseSpec parses a requirement like "~> 1.0", ">= 1.2.0 and < 2.0.0"
// or "== 1.0.0 or ~> 2.1". A bare version means ==.
func ParseSpec(text string) (Spec, error) {
	p := &specParser{Scanner: scanner.NewScanner(text)}
	s, err := p.parse()
	if err != nil {
		return Spec{}, &ParseError{Kind: SpecSyntax, Text: text, Err: err}
	}
	return s, nil
}

type specParser struct {
	scanner.Scanner
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("=!<>~", r)
}

func isVersionRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '+'
}

func (p *specParser) parse() (Spec, error) {
	var spec Spec

	for {
		var alt []Clause
		for {
			c, err := p.parseClause()
			if err != nil {
				return Spec{}, err
			}
			alt = append(alt, c)
			p.SkipBlanks()
			if !p.ConsumeString("and") {
				break
			}
		}
		spec.alternatives = append(spec.alternatives, alt)
		if !p.ConsumeString("or") {
			break
		}
	}
	if !p.AtEnd() {
		return Spec{}, p.Errorf("unexpected %q", string(p.Current()))
	}
	return spec, nil
}

func (p *specParser) parseClause() (Clause, error) {
	p.SkipBlanks()
	op := Operator(p.Token(isOperatorRune))
	if op == "" {
		op = OP_EQUAL
	}
	if _, ok := operators[op]; !ok {
		return Clause{}, p.Errorf("unknown operator %q", op)
	}
	p.SkipBlanks()
	tok := p.Token(isVersionRune)
	if tok == "" {
		return Clause{}, p.Errorf("version expected")
	}
	v, parts, err := parsePartial(tok)
	if err != nil {
		return Clause{}, err
	}
	return Clause{Op: op, Version: v, Parts: parts}, nil
}

// parsePartial accepts MAJOR.MINOR or a full semantic version.
func parsePartial(tok string) (Version, int, error) {
	core := tok
	if i := strings.IndexAny(tok, "-+"); i >= 0 {
		core = tok[:i]
	}
	switch strings.Count(core, ".") {
	case 1:
		if core != tok {
			return Version{}, 0, fmt.Errorf("%q: pre-release or build requires a full version", tok)
		}
		v, err := Parse(tok + ".0")
		if err != nil {
			return Version{}, 0, fmt.Errorf("%q: %w", tok, errorCause(err))
		}
		return v, 2, nil
	case 2:
		v, err := Parse(tok)
		if err != nil {
			return Version{}, 0, fmt.Errorf("%q: %w", tok, errorCause(err))
		}
		return v, 3, nil
	default:
		return Version{}, 0, fmt.Errorf("%q: two or three version components expected", tok)
	}
}

func errorCause(err error) error {
	if pe, ok := err.(*ParseError); ok {
		return pe.Err
	}
	return err
}
