package ocr

import (
	"image"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// Word is one recognized word and its position in the image.
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// Layout turns word boxes back into monospaced text lines. Terminal
// screenshots use a fixed-width font, so the column of a word is its left
// edge divided by the cell width, estimated as the median width per
// character. Words are grouped into lines by vertical position and always
// keep at least one space between them.
func Layout(words []Word) []string {
	words = nonEmpty(words)
	if len(words) == 0 {
		return nil
	}

	cell := cellWidth(words)
	origin := words[0].Box.Min.X
	for _, w := range words {
		origin = min(origin, w.Box.Min.X)
	}

	var lines []string
	for _, line := range groupLines(words) {
		var b strings.Builder
		width := 0
		for _, w := range line {
			col := int(math.Round(float64(w.Box.Min.X-origin) / cell))
			if width > 0 && col <= width {
				col = width + 1
			}
			b.WriteString(strings.Repeat(" ", col-width))
			b.WriteString(w.Text)
			width = col + utf8.RuneCountInString(w.Text)
		}
		lines = append(lines, b.String())
	}
	return lines
}

func nonEmpty(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text != "" && !w.Box.Empty() {
			out = append(out, w)
		}
	}
	return out
}

// cellWidth returns the median pixel width of one character.
func cellWidth(words []Word) float64 {
	widths := make([]float64, 0, len(words))
	for _, w := range words {
		widths = append(widths, float64(w.Box.Dx())/float64(utf8.RuneCountInString(w.Text)))
	}
	sort.Float64s(widths)

	m := widths[len(widths)/2]
	if len(widths)%2 == 0 {
		m = (widths[len(widths)/2-1] + m) / 2
	}
	if m <= 0 {
		return 1
	}
	return m
}

// groupLines sorts words top to bottom and starts a new line whenever a
// word's vertical center falls below the current line's box.
func groupLines(words []Word) [][]Word {
	sorted := append([]Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return center(sorted[i]) < center(sorted[j])
	})

	var lines [][]Word
	var bottom int
	for _, w := range sorted {
		n := len(lines)
		if n == 0 || center(w) > bottom {
			lines = append(lines, []Word{w})
			bottom = w.Box.Max.Y
			continue
		}
		lines[n-1] = append(lines[n-1], w)
		bottom = max(bottom, w.Box.Max.Y)
	}

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].Box.Min.X < line[j].Box.Min.X
		})
	}
	return lines
}

func center(w Word) int {
	return (w.Box.Min.Y + w.Box.Max.Y) / 2
}
