package fields

import (
	"sort"
	"strings"

	"github.com/tsawler/textable/table"
)

// Mapping is an immutable alias table from raw header names to fields.
// A Mapping is safe for concurrent use.
type Mapping struct {
	name    string
	aliases map[string]Field
	targets map[Field]bool
}

// NewMapping creates a mapping named name from aliases. Alias keys are
// matched case-insensitively; when two keys differ only in case the one
// that sorts last wins, so construction is deterministic. Entries with an
// invalid field are ignored.
func NewMapping(name string, aliases map[string]Field) *Mapping {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &Mapping{
		name:    name,
		aliases: make(map[string]Field, len(aliases)),
		targets: make(map[Field]bool),
	}
	for _, k := range keys {
		f := aliases[k]
		if !f.Valid() {
			continue
		}
		m.aliases[strings.ToUpper(k)] = f
		m.targets[f] = true
	}
	return m
}

// Name returns the mapping name, usually the command it describes
func (m *Mapping) Name() string {
	return m.name
}

// Lookup resolves a raw header name. A name that is exactly the canonical
// name of a field this mapping produces resolves to that field. Otherwise
// the upper-cased name is looked up, then its normalized form.
func (m *Mapping) Lookup(raw string) (Field, bool) {
	if f, ok := Parse(raw); ok && m.targets[f] {
		return f, true
	}
	if f, ok := m.aliases[strings.ToUpper(raw)]; ok {
		return f, true
	}
	if f, ok := m.aliases[strings.ToUpper(Normalize(raw))]; ok {
		return f, true
	}
	return Unknown, false
}

// Resolve returns the canonical name for raw, or raw unchanged when the
// mapping does not know it.
func (m *Mapping) Resolve(raw string) string {
	if f, ok := m.Lookup(raw); ok {
		return f.String()
	}
	return raw
}

// Known reports whether raw resolves to a field.
func (m *Mapping) Known(raw string) bool {
	_, ok := m.Lookup(raw)
	return ok
}

// Aliases returns the upper-case aliases of f, sorted.
func (m *Mapping) Aliases(f Field) []string {
	var out []string
	for alias, target := range m.aliases {
		if target == f {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Keywords returns every alias of the mapping, sorted. They make good
// table.Config.HeaderKeywords for output of the mapped command.
func (m *Mapping) Keywords() []string {
	out := make([]string, 0, len(m.aliases))
	for alias := range m.aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}

// Fields returns the fields this mapping can produce, in declaration order.
func (m *Mapping) Fields() []Field {
	var out []Field
	for _, f := range All() {
		if m.targets[f] {
			out = append(out, f)
		}
	}
	return out
}

// Canonicalize renames the cells of row with mapping m. Unknown names pass
// through unchanged; when several columns resolve to the same name the
// later column wins. A nil mapping keeps every raw name.
func Canonicalize(row table.Row, m *Mapping) map[string]string {
	out := make(map[string]string, len(row))
	for _, c := range row {
		name := c.Name
		if m != nil {
			name = m.Resolve(c.Name)
		}
		out[name] = c.Value
	}
	return out
}

// Apply returns a copy of row with canonical cell names, keeping column
// order. Duplicates are kept; table.Row accessors already prefer the later
// cell.
func (m *Mapping) Apply(row table.Row) table.Row {
	out := make(table.Row, len(row))
	for i, c := range row {
		out[i] = table.Cell{Name: m.Resolve(c.Name), Value: c.Value}
	}
	return out
}

// Unmapped returns the column names m does not know, in order.
func (m *Mapping) Unmapped(columns []string) []string {
	var out []string
	for _, c := range columns {
		if !m.Known(c) {
			out = append(out, c)
		}
	}
	return out
}
