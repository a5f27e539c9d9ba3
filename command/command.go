package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/table"
)

var (
	// ErrUnknownCommand is returned when no command is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoOutputDir is returned when the capture directory does not exist.
	ErrNoOutputDir = errors.New("command output directory not found")
)

// Command parses the output of one command line tool.
type Command interface {
	// Name returns the command name, also the file name prefix of its captures
	Name() string

	// SupportedArguments lists the arguments the command is known to be
	// run with. It is informational only.
	SupportedArguments() []string

	// Mapping returns the field mapping for the command's columns
	Mapping() *fields.Mapping

	// Parse turns a document into records
	Parse(ctx context.Context, doc *Document) ([]Record, []Warning, error)
}

// Record is one parsed row of a command's output.
type Record interface {
	// CommandName returns the name of the command the record came from
	CommandName() string

	// Row returns the record's canonical fields in a fixed order
	Row() table.Row
}

// Document is one capture to parse.
type Document struct {
	// Unique ID assigned when the document is created
	ID string

	// Base file name, used to derive arguments
	Name string

	// Path the document was read from, if any
	Path string

	// Decoded lines
	Lines []string

	// Source encoding, if known
	Encoding string
}

// NewDocument creates a document from lines already in memory.
func NewDocument(name string, lines []string) *Document {
	return &Document{
		ID:    uuid.NewString(),
		Name:  name,
		Lines: lines,
	}
}

// LoadDocument reads and decodes a capture file.
func LoadDocument(path string, config reader.Config) (*Document, error) {
	text, err := reader.ReadFile(path, config)
	if err != nil {
		return nil, err
	}
	doc := NewDocument(filepath.Base(path), text.Lines)
	doc.Path = path
	doc.Encoding = text.Encoding
	return doc, nil
}

// Source returns the path of the document, or its name if it has no path.
func (d *Document) Source() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name
}

// Warning is a non-fatal problem found while parsing.
type Warning struct {
	// Document the warning applies to
	Source string `json:"source,omitempty"`

	// 1-based line number, 0 for the whole document
	Line int `json:"line,omitempty"`

	// Column name, if the warning is about a column
	Column string `json:"column,omitempty"`

	Message string `json:"message"`
}

// String formats the warning as source:line: message.
func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Source)
	if w.Line > 0 {
		fmt.Fprintf(&b, ":%d", w.Line)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	if w.Column != "" {
		fmt.Fprintf(&b, "column %s: ", w.Column)
	}
	b.WriteString(w.Message)
	return b.String()
}

// FormatWarnings joins warnings into a single string, one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
