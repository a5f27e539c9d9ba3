// Package table infers the structure of whitespace-aligned text tables, the
// kind printed by ps, lsof, netstat and most other Unix tools.
//
// Nothing about the producing command is known up front. The layout is
// derived from the header line alone: every header token becomes a column,
// and data lines are cut into the same columns no matter which command or
// arguments produced them.
//
// # Header Analysis
//
// An [Analyzer] picks the header line and turns it into [ColumnSpan] values:
//
//	spans, err := table.Analyze(lines)
//	if errors.Is(err, table.ErrNoHeaderFound) {
//	    // skip the document
//	}
//
// The header is the first line that is neither blank nor a comment. When
// [Config].HeaderKeywords is set, the first line containing at least
// MinKeywordHits keywords is used instead.
//
// # Row Slicing
//
// [Slice] maps one data line onto the spans and never fails:
//
//	row := table.Slice(spans, " 1234 pts/0    00:00:01 bash -l")
//	row.Get("CMD") // "bash -l"
//
// Slicing works on whitespace-delimited tokens rather than raw character
// ranges, so a value that is wider than its header label stays whole:
//
//   - a token overlapping a header label belongs to that label's column
//   - a token sitting in the gap between two labels belongs to the nearer one
//     (the gap midpoint is the boundary, ties go left)
//   - columns are filled left to right; skipped columns stay empty
//   - the last column absorbs the rest of the line, embedded spaces included
//
// Data shifted left of its header is not re-aligned. That is the price of a
// purely header-positional strategy.
//
// # Offsets
//
// Offsets are terminal display cells, not bytes: wide East Asian runes take
// two cells, tabs advance to the next tab stop and combining marks take none.
//
// # Documents
//
// [Parse] runs both steps over a whole document and returns a [Table].
package table
