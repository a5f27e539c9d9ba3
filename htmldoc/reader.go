// Package htmldoc extracts command output captured as HTML, such as a
// terminal session saved from a browser or converted by ansi2html.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/textable/reader"
)

// ErrNoPreformatted is returned when a document has no <pre> block.
var ErrNoPreformatted = errors.New("no preformatted block found")

// Reader provides access to the preformatted blocks of an HTML document.
type Reader struct {
	doc      *html.Node
	title    string
	metadata map[string]string
	blocks   []Block
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, "")
}

// OpenReader parses HTML from an io.Reader. contentType, if not empty, is
// the Content-Type the document was served with and is used to pick the
// character encoding.
func OpenReader(r io.Reader, contentType string) (*Reader, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:      doc,
		metadata: make(map[string]string),
	}

	reader.extractHead(doc)
	reader.extractBlocks(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title
func (r *Reader) Title() string {
	return r.title
}

// Metadata returns the document's <meta> name/content pairs
func (r *Reader) Metadata() map[string]string {
	return r.metadata
}

// Blocks returns every <pre> block in document order.
func (r *Reader) Blocks() []Block {
	return r.blocks
}

// Lines returns the lines of the first non-empty <pre> block, cleaned up
// with the reader package the same way plain text captures are.
func (r *Reader) Lines(config reader.Config) ([]string, error) {
	for _, b := range r.blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		text, err := reader.Decode([]byte(b.Text), config)
		if err != nil {
			return nil, err
		}
		return text.Lines, nil
	}
	return nil, ErrNoPreformatted
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = strings.TrimSpace(getTextContent(c))
			case "meta":
				name, content := getAttr(c, "name"), getAttr(c, "content")
				if name == "" {
					name = getAttr(c, "property")
				}
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// extractBlocks collects every <pre> element below the body. Nested <pre>
// elements are part of their outer block.
func (r *Reader) extractBlocks(n *html.Node) {
	body := findElement(n, "body")
	if body == nil {
		body = n
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if shouldSkipElement(n.Data) {
				return
			}
			if n.Data == "pre" || n.Data == "xmp" || n.Data == "plaintext" {
				r.blocks = append(r.blocks, Block{
					Index: len(r.blocks),
					ID:    getAttr(n, "id"),
					Class: getAttr(n, "class"),
					Text:  getPreformattedText(n),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
}

// shouldSkipElement returns true for elements whose text is never shown.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "head":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result, false)
	return result.String()
}

// getPreformattedText is getTextContent with <br> kept as a line break.
func getPreformattedText(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result, true)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder, pre bool) {
	switch n.Type {
	case html.TextNode:
		result.WriteString(n.Data)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		if pre && n.Data == "br" {
			result.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result, pre)
	}
}
