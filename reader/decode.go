package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/textable/patterns"
)

// Text is decoded command output.
type Text struct {
	// Lines without line terminators
	Lines []string

	// Name of the source encoding, e.g. "utf-8" or "utf-16le"
	Encoding string

	// Whether the input started with a byte order mark
	BOM bool

	// Number of undecodable byte sequences replaced with U+FFFD
	Replaced int

	// Input size in bytes
	Size int64
}

// String returns the text joined with newlines.
func (t *Text) String() string {
	return strings.Join(t.Lines, "\n")
}

var escapes = patterns.NewSet().
	MustAdd("csi", `\x1b\[[0-9;?]*[ -/]*[@-~]`, 0).
	MustAdd("osc", `\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`, 0).
	MustAdd("esc", `\x1b[()][0-9A-Za-z]|\x1b[=>78]`, 0)

// ReadAll reads r to the end and decodes it.
func ReadAll(r io.Reader, config Config) (*Text, error) {
	data, err := readLimited(r, config.MaxSize)
	if err != nil {
		return nil, err
	}
	return Decode(data, config)
}

// readLimited reads r to the end, failing with ErrTooLarge past maxSize
// bytes. A maxSize of 0 means no limit.
func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Decode decodes data into lines.
func Decode(data []byte, config Config) (*Text, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	t := &Text{Size: int64(len(data))}

	s, err := t.decode(data, config.ContentType)
	if err != nil {
		return nil, err
	}

	if config.StripANSI && strings.IndexByte(s, 0x1b) >= 0 {
		s = StripANSI(s)
	}
	if config.Normalize {
		s = norm.NFC.String(s)
	}

	t.Lines = SplitLines(s)
	return t, nil
}

func (t *Text) decode(data []byte, contentType string) (string, error) {
	if name, ok := bomEncoding(data); ok {
		t.BOM = true
		t.Encoding = name
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
		if err != nil {
			return "", fmt.Errorf("failed to decode %s: %w", name, err)
		}
		return t.valid(out), nil
	}

	if contentType == "" && utf8.Valid(data) {
		t.Encoding = "utf-8"
		return string(data), nil
	}

	enc, name, _ := charset.DetermineEncoding(data, contentType)
	t.Encoding = name
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return t.valid(out), nil
}

// valid replaces invalid UTF-8 sequences and counts them.
func (t *Text) valid(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			t.Replaced++
			// a run of invalid bytes becomes one replacement
			for i < len(b) {
				if r, size = utf8.DecodeRune(b[i:]); r != utf8.RuneError || size != 1 {
					break
				}
				i++
			}
			continue
		}
		i += size
	}
	return string(bytes.ToValidUTF8(b, []byte("\uFFFD")))
}

func bomEncoding(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", true
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", true
	}
	return "", false
}

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	for _, name := range escapes.Names() {
		s, _ = escapes.ReplaceAll(name, s, "")
	}
	return s
}

// SplitLines splits s on newlines, dropping a trailing CR from each line
// and the empty line after a final newline.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
