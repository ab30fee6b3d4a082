package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Scanner interface {
	Next() rune
	ConsumeRune(r rune) error
	ConsumeString(s string) bool
	SkipBlanks() rune
	Current() rune
	Position() int
	AtEnd() bool

	Token(accept func(rune) bool) string

	Errorf(msg string, args ...interface{}) error
}

type scanner struct {
	in      []byte
	offset  int
	no      int
	current rune
}

func NewScanner(in string) Scanner {
	s := &scanner{
		in: []byte(in),
	}
	s.Next()
	return s
}

func (s *scanner) Next() rune {
	if s.offset >= len(s.in) {
		s.current = 0
		return 0
	}
	r, size := utf8.DecodeRune(s.in[s.offset:])
	s.current = r
	if r == utf8.RuneError {
		return r
	}
	s.offset += size
	s.no++
	return r
}

func (s *scanner) ConsumeRune(r rune) error {
	if s.Current() != r {
		return s.Errorf("%q expected", string(r))
	}
	s.Next()
	return nil
}

// ConsumeString consumes the given literal if the input continues
// with it starting at the current rune.
func (s *scanner) ConsumeString(lit string) bool {
	if s.AtEnd() || lit == "" {
		return false
	}
	start := s.offset - utf8.RuneLen(s.current)
	if !strings.HasPrefix(string(s.in[start:]), lit) {
		return false
	}
	for range lit {
		s.Next()
	}
	return true
}

func (s *scanner) Current() rune {
	return s.current
}

func (s *scanner) Position() int {
	return s.no
}

func (s *scanner) AtEnd() bool {
	return s.current == 0 && s.offset >= len(s.in)
}

func (s *scanner) SkipBlanks() rune {
	n := s.Current()
	for unicode.IsSpace(n) {
		n = s.Next()
	}
	return n
}

// Token scans the longest sequence of runes matching accept.
func (s *scanner) Token(accept func(rune) bool) string {
	tok := ""
	for !s.AtEnd() && accept(s.Current()) {
		tok += string(s.Current())
		s.Next()
	}
	return tok
}

func (s *scanner) Errorf(msg string, args ...interface{}) error {
	return fmt.Errorf("%q %d: %s", string(s.in), s.Position(), fmt.Sprintf(msg, args...))
}
