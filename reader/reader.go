package reader

import (
	"fmt"
	"os"
	"path/filepath"
)

// Reader reads one captured output file
type Reader struct {
	file   *os.File
	name   string
	config Config
	text   *Text // decoded on first use
}

// NewReader creates a reader for an open file with default configuration.
func NewReader(file *os.File) *Reader {
	return NewReaderWithConfig(file, DefaultConfig())
}

// NewReaderWithConfig creates a reader for an open file.
func NewReaderWithConfig(file *os.File, config Config) *Reader {
	return &Reader{
		file:   file,
		name:   filepath.Base(file.Name()),
		config: config,
	}
}

// Open opens a capture file with default configuration.
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, DefaultConfig())
}

// OpenWithConfig opens a capture file.
func OpenWithConfig(filename string, config Config) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%s is a directory", filename)
	}
	if config.MaxSize > 0 && info.Size() > config.MaxSize {
		file.Close()
		return nil, fmt.Errorf("%s: %w", filename, ErrTooLarge)
	}

	return NewReaderWithConfig(file, config), nil
}

// Close closes the file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Name returns the base name of the file
func (r *Reader) Name() string {
	return r.name
}

// Path returns the path the file was opened with
func (r *Reader) Path() string {
	return r.file.Name()
}

// Text reads and decodes the whole file. The result is cached.
func (r *Reader) Text() (*Text, error) {
	if r.text != nil {
		return r.text, nil
	}
	t, err := ReadAll(r.file, r.config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	r.text = t
	return t, nil
}

// Bytes reads the whole file without decoding it. It does not share the
// cache of Text.
func (r *Reader) Bytes() ([]byte, error) {
	data, err := readLimited(r.file, r.config.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.name, err)
	}
	return data, nil
}

// Lines returns the decoded lines of the file.
func (r *Reader) Lines() ([]string, error) {
	t, err := r.Text()
	if err != nil {
		return nil, err
	}
	return t.Lines, nil
}

// ReadBytes opens, reads and closes filename without decoding it.
func ReadBytes(filename string, config Config) ([]byte, error) {
	r, err := OpenWithConfig(filename, config)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Bytes()
}

// ReadFile opens, decodes and closes filename.
func ReadFile(filename string, config Config) (*Text, error) {
	r, err := OpenWithConfig(filename, config)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Text()
}
