package textable

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/format"
	"github.com/tsawler/textable/htmldoc"
	"github.com/tsawler/textable/ocr"
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/table"
)

// ErrUnsupportedFormat is returned for input that is neither text, HTML
// nor a supported image.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Extractor provides a fluent interface for parsing command output.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining. Input is read by
// each terminal operation.
type Extractor struct {
	// Source, exactly one of these
	filename string
	data     []byte
	lines    []string

	// File name for in-memory input
	name string

	// Configuration
	options ParseOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		lines:    e.lines,
		name:     e.name,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Config replaces the analyzer configuration.
//
// Example:
//
//	rows, _, err := textable.Open("ps.txt").Config(table.DefaultConfig()).Rows()
func (e *Extractor) Config(config table.Config) *Extractor {
	newExt := e.clone()
	newExt.options.table = config
	newExt.options = newExt.options.clone()
	return newExt
}

// TabWidth sets the width of a tab stop in display cells.
func (e *Extractor) TabWidth(n int) *Extractor {
	newExt := e.clone()
	if n <= 0 {
		newExt.err = fmt.Errorf("invalid tab width %d", n)
		return newExt
	}
	newExt.options.table.TabWidth = n
	return newExt
}

// HeaderKeywords makes the header the first line with at least two of the
// given words, skipping banners and summaries above the table. Calling it
// without words restores the first-line rule.
//
// Example:
//
//	rows, _, err := textable.Open("top.txt").
//	    HeaderKeywords(table.DefaultHeaderKeywords...).
//	    Rows()
func (e *Extractor) HeaderKeywords(keywords ...string) *Extractor {
	newExt := e.clone()
	newExt.options.table.HeaderKeywords = append([]string(nil), keywords...)
	if len(keywords) == 0 {
		newExt.options.table.HeaderKeywords = nil
	}
	return newExt
}

// Mapping sets the field mapping used by Records and Parse.
//
// Example:
//
//	records, _, err := textable.Open("ps.txt").Mapping(fields.PS).Records()
func (e *Extractor) Mapping(m *fields.Mapping) *Extractor {
	newExt := e.clone()
	newExt.options.mapping = m
	return newExt
}

// Command selects the registered command Parse uses. Without it Parse
// picks a command from the file name.
func (e *Extractor) Command(name string) *Extractor {
	newExt := e.clone()
	newExt.options.command = name
	return newExt
}

// KeepBlank keeps blank and comment lines after the header as rows.
func (e *Extractor) KeepBlank() *Extractor {
	newExt := e.clone()
	newExt.options.table.SkipBlank = false
	newExt.options.table.SkipComments = false
	return newExt
}

// ReaderConfig replaces the input decoding configuration.
func (e *Extractor) ReaderConfig(config reader.Config) *Extractor {
	newExt := e.clone()
	newExt.options.reader = config
	return newExt
}

// OCRLanguage sets the Tesseract languages used for screenshots, e.g.
// "eng+deu".
func (e *Extractor) OCRLanguage(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrLang = lang
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Lines returns the decoded lines of the input.
func (e *Extractor) Lines() ([]string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Lines, warnings, nil
}

// Document reads the input into a command.Document with a new ID.
func (e *Extractor) Document() (*command.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	doc := command.NewDocument(e.docName(), nil)
	doc.Path = e.filename

	if e.lines != nil {
		doc.Lines = e.lines
		return doc, nil, nil
	}

	data := e.data
	if e.filename != "" {
		var err error
		data, err = reader.ReadBytes(e.filename, e.options.reader)
		if err != nil {
			return nil, nil, err
		}
	}
	if len(data) == 0 {
		return nil, nil, wrapSource(doc, reader.ErrEmptyInput)
	}

	var warnings []Warning
	switch f := format.DetectFile(doc.Name, data); {
	case f == format.Text:
		text, err := reader.Decode(data, e.options.reader)
		if err != nil {
			return nil, nil, wrapSource(doc, err)
		}
		doc.Lines = text.Lines
		doc.Encoding = text.Encoding
		if text.Replaced > 0 {
			warnings = append(warnings, Warning{
				Source:  doc.Name,
				Message: fmt.Sprintf("%d undecodable byte sequences replaced", text.Replaced),
			})
		}

	case f == format.HTML:
		hr, err := htmldoc.OpenReader(bytes.NewReader(data), "")
		if err != nil {
			return nil, nil, wrapSource(doc, err)
		}
		defer hr.Close()
		doc.Lines, err = hr.Lines(e.options.reader)
		if err != nil {
			return nil, nil, wrapSource(doc, err)
		}

	case f.IsImage():
		lines, err := e.recognize(data)
		if err != nil {
			return nil, nil, wrapSource(doc, err)
		}
		doc.Lines = lines
		warnings = append(warnings, Warning{
			Source:  doc.Name,
			Message: fmt.Sprintf("text recognized from %s image", f),
		})

	default:
		return nil, nil, wrapSource(doc, ErrUnsupportedFormat)
	}

	return doc, warnings, nil
}

// Columns returns the column spans inferred from the header.
//
// Example:
//
//	spans, err := textable.FromString(out).Columns()
func (e *Extractor) Columns() ([]table.ColumnSpan, error) {
	doc, _, err := e.Document()
	if err != nil {
		return nil, err
	}
	spans, err := e.analyzer().Analyze(doc.Lines)
	if err != nil {
		return nil, wrapSource(doc, err)
	}
	return spans, nil
}

// Table parses the input into a table.
func (e *Extractor) Table() (*table.Table, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	tbl, err := e.analyzer().Parse(doc.Lines)
	if err != nil {
		return nil, warnings, wrapSource(doc, err)
	}
	return tbl, warnings, nil
}

// Rows parses the input into rows under the raw header names. Rows with
// empty fields are reported as warnings.
//
// Example:
//
//	rows, _, err := textable.Open("ps_aux.txt").Rows()
//	for _, row := range rows {
//	    fmt.Println(row.Get("PID"), row.Get("COMMAND"))
//	}
func (e *Extractor) Rows() ([]table.Row, []Warning, error) {
	tbl, warnings, err := e.Table()
	if err != nil {
		return nil, warnings, err
	}

	name := e.docName()
	for i, row := range tbl.Rows {
		if n := row.EmptyCount(); n > 0 && !row.IsEmpty() {
			warnings = append(warnings, Warning{
				Source:  name,
				Line:    tbl.LineNumbers[i] + 1,
				Message: fmt.Sprintf("%d of %d fields empty", n, len(row)),
			})
		}
	}
	return tbl.Rows, warnings, nil
}

// Records parses the input into maps keyed by canonical field name, using
// the configured mapping. Columns the mapping does not know keep their raw
// name and are reported as warnings.
//
// Example:
//
//	records, _, err := textable.Open("ps.txt").Mapping(fields.PS).Records()
//	fmt.Println(records[0]["pid"])
func (e *Extractor) Records() ([]map[string]string, []Warning, error) {
	tbl, warnings, err := e.Table()
	if err != nil {
		return nil, warnings, err
	}

	m := e.options.mapping
	if m != nil {
		for _, col := range m.Unmapped(tbl.ColumnNames()) {
			warnings = append(warnings, Warning{
				Source:  e.docName(),
				Line:    tbl.HeaderIndex + 1,
				Column:  col,
				Message: "no canonical field, kept under its raw name",
			})
		}
	}

	records := make([]map[string]string, len(tbl.Rows))
	for i, row := range tbl.Rows {
		records[i] = fields.Canonicalize(row, m)
	}
	return records, warnings, nil
}

// Parse turns the input into command records. The command is the one set
// with Command, else the registered command matching the file name, else
// a generic command using the configured mapping and analyzer settings.
//
// Example:
//
//	records, warnings, err := textable.Open("command_outputs/ps_aux.txt").Parse(ctx)
func (e *Extractor) Parse(ctx context.Context) ([]command.Record, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}

	cmd, err := e.resolveCommand(doc.Name)
	if err != nil {
		return nil, warnings, err
	}

	records, parseWarnings, err := cmd.Parse(ctx, doc)
	if err != nil {
		return nil, warnings, err
	}
	return records, append(warnings, parseWarnings...), nil
}

// resolveCommand picks the command for a document named name.
func (e *Extractor) resolveCommand(name string) (command.Command, error) {
	if e.options.command != "" {
		return command.Lookup(e.options.command)
	}
	if cmd := command.Default().Match(name); cmd != nil {
		return cmd, nil
	}
	return command.NewGenericWithConfig("table", e.options.mapping, e.options.table), nil
}

// recognize runs OCR over an image capture.
func (e *Extractor) recognize(data []byte) ([]string, error) {
	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if e.options.ocrLang != "" {
		if err := client.SetLanguage(e.options.ocrLang); err != nil {
			return nil, err
		}
	}
	return client.RecognizeLines(data)
}

func (e *Extractor) analyzer() *table.Analyzer {
	return table.NewAnalyzerWithConfig(e.options.table)
}

// wrapSource prefixes err with the document's path or name, if it has one.
func wrapSource(doc *command.Document, err error) error {
	if src := doc.Source(); src != "" {
		return fmt.Errorf("%s: %w", src, err)
	}
	return err
}

// docName returns the base name of the input, if it has one.
func (e *Extractor) docName() string {
	if e.filename != "" {
		return filepath.Base(e.filename)
	}
	return e.name
}
