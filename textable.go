// Package textable provides a fluent API for parsing whitespace-aligned
// command output, such as ps or lsof listings, into rows and records.
//
// Basic usage:
//
//	rows, warnings, err := textable.Open("ps_aux.txt").Rows()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", textable.FormatWarnings(warnings))
//	}
//
// With options:
//
//	records, _, err := textable.FromString(output).
//	    TabWidth(4).
//	    HeaderKeywords(table.DefaultHeaderKeywords...).
//	    Mapping(fields.PS).
//	    Records()
//
// Captures may be plain text in any common encoding, HTML with a <pre>
// block, or a terminal screenshot when built with the "ocr" tag.
//
// For advanced use cases, the lower-level table, fields and command
// packages are also available.
package textable

import (
	"bytes"
	"io"

	"github.com/tsawler/textable/command"
)

// Warning is a non-fatal problem found while reading or parsing.
type Warning = command.Warning

// FormatWarnings joins warnings into a single string, one per line.
func FormatWarnings(warnings []Warning) string {
	return command.FormatWarnings(warnings)
}

// Open opens a capture file and returns an Extractor for fluent
// configuration. The file is read by the terminal operation.
//
// Example:
//
//	rows, warnings, err := textable.Open("ps_aux.txt").Rows()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromString creates an Extractor over text already in memory.
//
// Example:
//
//	rows, _, err := textable.FromString("PID CMD\n1 init\n").Rows()
func FromString(s string) *Extractor {
	return &Extractor{
		data:    []byte(s),
		options: defaultOptions(),
	}
}

// FromLines creates an Extractor over lines that are already decoded.
// The lines are used as given.
func FromLines(lines []string) *Extractor {
	return &Extractor{
		lines:   append([]string(nil), lines...),
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor from r, which is read to the end at
// once. The content may be text, HTML or an image. name, if not empty, is
// the capture's file name, used to detect its format and command.
func FromReader(r io.Reader, name string) *Extractor {
	e := &Extractor{
		name:    name,
		options: defaultOptions(),
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		e.err = err
		return e
	}
	e.data = buf.Bytes()
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	spans := textable.Must(textable.FromString(out).Columns())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows is a helper that wraps a call to Rows() or Records() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	rows := textable.MustRows(textable.Open("ps.txt").Rows())
func MustRows[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
