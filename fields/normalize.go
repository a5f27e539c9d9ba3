package fields

import "strings"

// Normalize turns a column name into a lower-case identifier: every run of
// characters other than ASCII letters and digits becomes a single
// underscore, and leading or trailing underscores are dropped. A name with
// no letters or digits is returned lower-cased.
//
//	Normalize("%CPU")      // "cpu"
//	Normalize("SIZE/OFF")  // "size_off"
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pending := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
			fallthrough
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteByte(c)
		default:
			pending = true
		}
	}

	if b.Len() == 0 {
		return strings.ToLower(name)
	}
	return b.String()
}
