// Package export writes parsed rows and command records as JSON Lines,
// JSON, CSV, TSV or Excel workbooks.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/table"
)

// ErrUnsupportedFormat is returned for an unknown format name or value.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format defines the available export formats
type Format int

const (
	// JSONL exports as JSON Lines (one JSON object per line)
	JSONL Format = iota
	// JSON exports as a JSON array
	JSON
	// CSV exports as comma-separated values
	CSV
	// TSV exports as tab-separated values
	TSV
	// XLSX exports as an Excel workbook with one sheet per command
	XLSX
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case JSONL:
		return "jsonl"
	case JSON:
		return "json"
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	case XLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case JSONL:
		return ".jsonl"
	case JSON:
		return ".json"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case XLSX:
		return ".xlsx"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type of this format
func (f Format) ContentType() string {
	switch f {
	case JSONL:
		return "application/x-ndjson"
	case JSON:
		return "application/json"
	case CSV:
		return "text/csv; charset=utf-8"
	case TSV:
		return "text/tab-separated-values; charset=utf-8"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat returns the format named s, case-insensitively. A leading
// dot is accepted so file extensions can be passed directly.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jsonl", "ndjson":
		return JSONL, nil
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "tsv", "tab":
		return TSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// Delimiter for CSV export (TSV always uses a tab)
	Delimiter rune

	// IncludeHeader includes the header row in CSV, TSV and XLSX exports
	IncludeHeader bool

	// PrettyPrint indents JSON formats
	PrettyPrint bool

	// SheetName names the sheet of an XLSX export of plain rows
	SheetName string
}

// DefaultConfig returns sensible defaults for export configuration
func DefaultConfig() Config {
	return Config{
		Format:        JSONL,
		Delimiter:     ',',
		IncludeHeader: true,
		SheetName:     "rows",
	}
}

// ConfigFor returns the default configuration with the given format
func ConfigFor(format Format) Config {
	config := DefaultConfig()
	config.Format = format
	return config
}

// Exporter writes rows in one format.
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	if config.SheetName == "" {
		config.SheetName = "rows"
	}
	return &Exporter{config: config}
}

// Config returns the exporter configuration
func (e *Exporter) Config() Config {
	return e.config
}

// sheet is a named group of rows, one worksheet in XLSX output.
type sheet struct {
	name string
	rows []table.Row
}

// ExportRows writes rows to w.
func (e *Exporter) ExportRows(rows []table.Row, w io.Writer) error {
	return e.export([]sheet{{name: e.config.SheetName, rows: rows}}, w)
}

// ExportRecords writes command records to w. For XLSX each command gets
// its own sheet; the other formats write all records in order.
func (e *Exporter) ExportRecords(records []command.Record, w io.Writer) error {
	var sheets []sheet
	index := make(map[string]int)
	for _, rec := range records {
		name := rec.CommandName()
		i, ok := index[name]
		if !ok {
			i = len(sheets)
			index[name] = i
			sheets = append(sheets, sheet{name: name})
		}
		sheets[i].rows = append(sheets[i].rows, rec.Row())
	}

	if e.config.Format == XLSX {
		return e.export(sheets, w)
	}

	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return e.ExportRows(rows, w)
}

// ExportToFile writes records to filename.
func (e *Exporter) ExportToFile(records []command.Record, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := e.ExportRecords(records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString writes rows to a string.
func (e *Exporter) ExportToString(rows []table.Row) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportRows(rows, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) export(sheets []sheet, w io.Writer) error {
	var rows []table.Row
	for _, s := range sheets {
		rows = append(rows, s.rows...)
	}

	switch e.config.Format {
	case JSONL:
		return e.exportJSONL(rows, w)
	case JSON:
		return e.exportJSON(rows, w)
	case CSV:
		return e.exportCSV(rows, w, e.config.Delimiter)
	case TSV:
		return e.exportCSV(rows, w, '\t')
	case XLSX:
		return e.exportXLSX(sheets, w)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, e.config.Format)
	}
}

// encodeRow marshals a row as an ordered JSON object.
func (e *Exporter) encodeRow(row table.Row) ([]byte, error) {
	data, err := row.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if !e.config.PrettyPrint {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportJSONL exports rows as JSON Lines (one JSON object per line)
func (e *Exporter) exportJSONL(rows []table.Row, w io.Writer) error {
	for i, row := range rows {
		data, err := e.encodeRow(row)
		if err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// exportJSON exports rows as a JSON array
func (e *Exporter) exportJSON(rows []table.Row, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		data, err := e.encodeRow(row)
		if err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if e.config.PrettyPrint {
			buf.WriteString("\n  ")
			data = bytes.ReplaceAll(data, []byte("\n"), []byte("\n  "))
		}
		buf.Write(data)
	}
	if e.config.PrettyPrint && len(rows) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// exportCSV exports rows as CSV or TSV
func (e *Exporter) exportCSV(rows []table.Row, w io.Writer, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	columns := Columns(rows)

	if e.config.IncludeHeader {
		if err := csvWriter.Write(columns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for i, row := range rows {
		if err := csvWriter.Write(values(row, columns)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// Columns returns every cell name used in rows, in first-seen order.
func Columns(rows []table.Row) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, c := range row {
			if !seen[c.Name] {
				seen[c.Name] = true
				columns = append(columns, c.Name)
			}
		}
	}
	return columns
}

func values(row table.Row, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = row.Get(c)
	}
	return out
}
