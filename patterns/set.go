package patterns

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrPatternNotFound is returned when a name has no pattern.
var ErrPatternNotFound = errors.New("pattern not found")

// Flags change how an expression is compiled.
type Flags uint8

const (
	// IgnoreCase matches letters case-insensitively (i)
	IgnoreCase Flags = 1 << iota
	// Multiline lets ^ and $ match at line boundaries (m)
	Multiline
	// DotAll lets . match newlines (s)
	DotAll
)

// prefix returns the inline flag group for f.
func (f Flags) prefix() string {
	s := ""
	if f&IgnoreCase != 0 {
		s += "i"
	}
	if f&Multiline != 0 {
		s += "m"
	}
	if f&DotAll != 0 {
		s += "s"
	}
	if s == "" {
		return ""
	}
	return "(?" + s + ")"
}

// Pattern is a compiled named expression.
type Pattern struct {
	Name  string
	Expr  string
	Flags Flags

	re       *regexp.Regexp
	anchored *regexp.Regexp
}

// Regexp returns the compiled program.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// Set is a collection of named patterns. A Set is safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	patterns map[string]*Pattern
	order    []string
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{patterns: make(map[string]*Pattern)}
}

// Add compiles expr and stores it under name. It reports whether an
// existing pattern was replaced. On a compile error the set is unchanged.
func (s *Set) Add(name, expr string, flags Flags) (bool, error) {
	full := flags.prefix() + expr
	re, err := compile(full)
	if err != nil {
		return false, fmt.Errorf("pattern %q: %w", name, err)
	}
	anchored, err := compile(`\A(?:` + full + `)`)
	if err != nil {
		return false, fmt.Errorf("pattern %q: %w", name, err)
	}

	p := &Pattern{Name: name, Expr: expr, Flags: flags, re: re, anchored: anchored}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, replaced := s.patterns[name]
	if !replaced {
		s.order = append(s.order, name)
	}
	s.patterns[name] = p
	return replaced, nil
}

// MustAdd is like Add but panics on a compile error.
func (s *Set) MustAdd(name, expr string, flags Flags) *Set {
	if _, err := s.Add(name, expr, flags); err != nil {
		panic(err)
	}
	return s
}

// AddAll adds every expression of exprs with the same flags. It stops at
// the first compile error; patterns added before it are kept.
func (s *Set) AddAll(exprs map[string]string, flags Flags) error {
	for name, expr := range exprs {
		if _, err := s.Add(name, expr, flags); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the pattern stored under name
func (s *Set) Get(name string) (*Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patterns[name]
	return p, ok
}

// Has reports whether name has a pattern
func (s *Set) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the pattern names in the order they were first added.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of patterns
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns)
}

// Remove deletes the pattern under name and reports whether it existed.
func (s *Set) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patterns[name]; !ok {
		return false
	}
	delete(s.patterns, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every pattern
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = make(map[string]*Pattern)
	s.order = nil
}

func (s *Set) lookup(name string) (*Pattern, error) {
	p, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPatternNotFound, name)
	}
	return p, nil
}

// Match matches the pattern at the start of text and returns the submatches,
// or nil when it does not match there.
func (s *Set) Match(name, text string) ([]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.anchored.FindStringSubmatch(text), nil
}

// Search returns the submatches of the first match anywhere in text, or nil.
func (s *Set) Search(name, text string) ([]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.re.FindStringSubmatch(text), nil
}

// FindAll returns every non-overlapping match in text.
func (s *Set) FindAll(name, text string) ([]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.re.FindAllString(text, -1), nil
}

// FindAllSubmatch returns the submatches of every non-overlapping match.
func (s *Set) FindAllSubmatch(name, text string) ([][]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.re.FindAllStringSubmatch(text, -1), nil
}

// Replace replaces the first match in text with repl. repl may refer to
// submatches as $1 or ${name}.
func (s *Set) Replace(name, text, repl string) (string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil
	}
	var dst []byte
	dst = p.re.ExpandString(dst, repl, text, loc)
	return text[:loc[0]] + string(dst) + text[loc[1]:], nil
}

// ReplaceAll replaces every match in text with repl.
func (s *Set) ReplaceAll(name, text, repl string) (string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	return p.re.ReplaceAllString(text, repl), nil
}

// Split slices text around matches. n follows regexp.Regexp.Split: a
// negative n returns every substring.
func (s *Set) Split(name, text string, n int) ([]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return p.re.Split(text, n), nil
}

// Groups matches the pattern anywhere in text and returns its named groups.
func (s *Set) Groups(name, text string) (map[string]string, error) {
	p, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	groups := make(map[string]string)
	for i, g := range p.re.SubexpNames() {
		if g != "" {
			groups[g] = m[i]
		}
	}
	return groups, nil
}
