package table

import "strings"

// Table is a parsed document
type Table struct {
	// Columns inferred from the header
	Columns []ColumnSpan

	// Index of the header within the input lines
	HeaderIndex int

	// The header line as given
	Header string

	// One row per kept data line
	Rows []Row

	// Index of each row's source line within the input lines
	LineNumbers []int
}

// Parse analyzes and slices a whole document using the default configuration.
func Parse(lines []string) (*Table, error) {
	return defaultAnalyzer.Parse(lines)
}

// Parse analyzes the header of lines and slices every data line after it.
// Blank and comment data lines are dropped according to the configuration;
// every other line yields a row, however malformed.
func (a *Analyzer) Parse(lines []string) (*Table, error) {
	idx, err := a.FindHeader(lines)
	if err != nil {
		return nil, err
	}

	spans, err := a.AnalyzeHeader(lines[idx])
	if err != nil {
		return nil, err
	}

	t := &Table{
		Columns:     spans,
		HeaderIndex: idx,
		Header:      lines[idx],
	}

	for i := idx + 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && a.config.SkipBlank {
			continue
		}
		if trimmed != "" && a.config.SkipComments && a.isComment(trimmed) {
			continue
		}
		t.Rows = append(t.Rows, a.Slice(spans, line))
		t.LineNumbers = append(t.LineNumbers, i)
	}

	return t, nil
}

// ColumnNames returns the header names in order
func (t *Table) ColumnNames() []string {
	return Names(t.Columns)
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}
