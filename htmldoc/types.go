package htmldoc

// Block is one preformatted element of an HTML document.
type Block struct {
	// Position among the document's blocks, from 0
	Index int

	// id and class attributes of the element, if any
	ID    string
	Class string

	// Text content with markup removed and whitespace kept
	Text string
}

// Lines splits the block text into lines, dropping one trailing newline.
func (b Block) Lines() []string {
	text := b.Text
	if n := len(text); n > 0 && text[n-1] == '\n' {
		text = text[:n-1]
	}
	if text == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, trimCR(text[start:i]))
			start = i + 1
		}
	}
	return append(lines, trimCR(text[start:]))
}

func trimCR(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}
