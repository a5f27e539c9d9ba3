package export

import (
	"fmt"
	"io"
	"sync"

	"github.com/tsawler/textable/command"
)

// StreamExporter writes records one at a time as JSON Lines, for output
// that never ends such as a watched directory.
type StreamExporter struct {
	mu       sync.Mutex
	exporter *Exporter
	writer   io.Writer
	count    int
}

// NewStreamExporter creates a new stream exporter
func NewStreamExporter(w io.Writer) *StreamExporter {
	return &StreamExporter{
		exporter: NewExporterWithConfig(ConfigFor(JSONL)),
		writer:   w,
	}
}

// WriteRecord writes a single record to the stream. It is safe for
// concurrent use.
func (se *StreamExporter) WriteRecord(rec command.Record) error {
	data, err := se.exporter.encodeRow(rec.Row())
	if err != nil {
		return fmt.Errorf("encoding record %d: %w", se.count, err)
	}

	se.mu.Lock()
	defer se.mu.Unlock()
	if _, err := se.writer.Write(append(data, '\n')); err != nil {
		return err
	}
	se.count++
	return nil
}

// Count returns the number of records written
func (se *StreamExporter) Count() int {
	se.mu.Lock()
	defer se.mu.Unlock()
	return se.count
}
