package table

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// token is a run of non-space text within a line
type token struct {
	text string

	// display cells
	start, end int

	// byte offsets into the line
	from, to int
}

// cellWidth returns how many terminal cells r occupies.
func cellWidth(r rune) int {
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// DisplayWidth returns the number of terminal cells s occupies when printed
// from column zero, expanding tabs to tabWidth.
func DisplayWidth(s string, tabWidth int) int {
	col := 0
	for _, r := range s {
		col = advance(col, r, tabWidth)
	}
	return col
}

func advance(col int, r rune, tabWidth int) int {
	if r == '\t' {
		return (col/tabWidth + 1) * tabWidth
	}
	return col + cellWidth(r)
}

// scan splits line into whitespace-separated tokens with their positions.
func scan(line string, tabWidth int) []token {
	var tokens []token
	col := 0
	inToken := false
	var cur token

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if unicode.IsSpace(r) {
			if inToken {
				cur.end = col
				cur.to = i
				cur.text = line[cur.from:cur.to]
				tokens = append(tokens, cur)
				inToken = false
			}
		} else if !inToken {
			cur = token{start: col, from: i}
			inToken = true
		}
		col = advance(col, r, tabWidth)
		i += size
	}

	if inToken {
		cur.end = col
		cur.to = len(line)
		cur.text = line[cur.from:]
		tokens = append(tokens, cur)
	}

	return tokens
}
