package table

// Unbounded is the End of the last column: it runs to the end of every line.
const Unbounded = -1

// ColumnSpan is one inferred column.
type ColumnSpan struct {
	// Name is the header token exactly as it appeared
	Name string `json:"name"`

	// Start is the display cell where the header token begins
	Start int `json:"start"`

	// End is the display cell where the header token ends, or Unbounded
	// for the last column
	End int `json:"end"`

	// Label is the display width of the header token
	Label int `json:"label"`
}

// Bounded reports whether the column has a right edge.
func (s ColumnSpan) Bounded() bool {
	return s.End != Unbounded
}

// LabelEnd returns the cell just past the header token, also for the last column.
func (s ColumnSpan) LabelEnd() int {
	return s.Start + s.Label
}

// Boundary returns the cut between two neighbouring columns: the midpoint of
// the gap between the left label's end and the right label's start.
func Boundary(left, right ColumnSpan) int {
	return (left.LabelEnd() + right.Start) / 2
}

// Names returns the column names in order.
func Names(spans []ColumnSpan) []string {
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name
	}
	return names
}

// assign picks the column a data token belongs to. The leftmost column whose
// label overlaps the token wins. A token in a gap goes to the nearer label.
func assign(spans []ColumnSpan, t token) int {
	for i, s := range spans {
		if t.start < s.LabelEnd() && s.Start < t.end {
			return i
		}
	}

	if t.end <= spans[0].Start {
		return 0
	}

	for i := 0; i < len(spans)-1; i++ {
		left, right := spans[i].LabelEnd(), spans[i+1].Start
		if t.start >= left && t.end <= right {
			// doubled positions keep the midpoint integral
			if t.start+t.end <= left+right {
				return i
			}
			return i + 1
		}
	}

	return len(spans) - 1
}
