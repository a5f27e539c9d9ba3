// Package patterns keeps named regular expressions.
//
// A Set holds patterns by name so parsers can refer to them as "fd" or
// "socket" rather than repeating expressions:
//
//	s := patterns.NewSet()
//	s.Add("fd", `^(\d+)([rwu])?$`, 0)
//	m, err := s.Match("fd", "45u")
//
// Unknown names return ErrPatternNotFound.
//
// Compiled programs are shared between sets through a process-wide cache
// keyed by flags and expression, so many sets built from the same
// definitions compile each expression once.
package patterns
