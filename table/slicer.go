package table

import "strings"

// Slice maps a data line onto spans using the default configuration.
func Slice(spans []ColumnSpan, line string) Row {
	return defaultAnalyzer.Slice(spans, line)
}

// Slice maps a data line onto spans. It never fails: the result has exactly
// one cell per span, empty where the line has nothing for that column.
func (a *Analyzer) Slice(spans []ColumnSpan, line string) Row {
	row := make(Row, len(spans))
	for i, s := range spans {
		row[i] = Cell{Name: s.Name}
	}
	if len(spans) == 0 {
		return row
	}

	last := len(spans) - 1
	from := make([]int, len(spans))
	to := make([]int, len(spans))
	for i := range from {
		from[i] = -1
	}

	cur := 0
	for _, t := range scan(line, a.config.TabWidth) {
		col := assign(spans, t)
		if col < cur {
			col = cur
		}
		if col == last {
			row[last].Value = strings.TrimSpace(line[t.from:])
			break
		}
		if from[col] < 0 {
			from[col] = t.from
		}
		to[col] = t.to
		cur = col
	}

	for i := 0; i < last; i++ {
		if from[i] >= 0 {
			row[i].Value = strings.TrimSpace(line[from[i]:to[i]])
		}
	}

	return row
}
