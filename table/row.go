package table

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cell is one column value of a row
type Cell struct {
	Name  string
	Value string
}

// Row is one sliced data line, one cell per column in column order.
type Row []Cell

// Get returns the value of the last cell named name, or "" if there is none.
func (r Row) Get(name string) string {
	v, _ := r.Lookup(name)
	return v
}

// Lookup returns the value of the last cell named name.
func (r Row) Lookup(name string) (string, bool) {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i].Name == name {
			return r[i].Value, true
		}
	}
	return "", false
}

// Values returns the cell values in column order.
func (r Row) Values() []string {
	values := make([]string, len(r))
	for i, c := range r {
		values[i] = c.Value
	}
	return values
}

// Map returns the row as a map. With duplicate column names the later
// column wins.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, c := range r {
		m[c.Name] = c.Value
	}
	return m
}

// IsEmpty reports whether every cell is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if c.Value != "" {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (r Row) EmptyCount() int {
	n := 0
	for _, c := range r {
		if c.Value == "" {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the row as a JSON object that keeps column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	seen := make(map[string]int, len(r))
	for i, c := range r {
		seen[c.Name] = i
	}
	first := true
	for i, c := range r {
		// duplicate names: only the last one is written, as in Map
		if seen[c.Name] != i {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings into cells in key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row: expected JSON object, got %v", tok)
	}

	row := Row{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("row: column %q: %w", name, err)
		}
		row = append(row, Cell{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}
