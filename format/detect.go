// Package format provides input format detection for the textable library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported capture format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Text indicates plain text command output.
	Text
	// HTML indicates command output saved as an HTML page.
	HTML
	// PNG indicates a PNG terminal screenshot.
	PNG
	// JPEG indicates a JPEG terminal screenshot.
	JPEG
	// GIF indicates a GIF terminal screenshot.
	GIF
	// TIFF indicates a TIFF terminal screenshot.
	TIFF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case TIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case HTML:
		return ".html"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case TIFF:
		return ".tiff"
	default:
		return ""
	}
}

// IsImage reports whether the format needs OCR to be read.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, GIF, TIFF:
		return true
	}
	return false
}

// Detect determines the format from the filename extension. Capture names
// often carry arguments with dots, so only well-known extensions count.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".out", ".log", ".text":
		return Text
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".tif", ".tiff":
		return TIFF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format. Data that
// is neither markup nor an image is Text when it looks like text, Unknown
// otherwise.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return PNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return JPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return GIF
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return TIFF
	}

	if detectHTMLMagic(data) {
		return HTML
	}
	if looksLikeText(data) {
		return Text
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	// fragments saved from a terminal viewer
	return strings.HasPrefix(upper, "<PRE")
}

// looksLikeText accepts UTF-8, UTF-16 with a BOM, and single-byte text
// without NUL bytes.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		return true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	if utf8.Valid(data) {
		return true
	}

	// legacy single-byte encodings: mostly printable with few controls
	controls := 0
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != 0x1b && b != '\f' {
			controls++
		}
	}
	return controls*20 < len(data)
}

// DetectFromReader inspects the first bytes of the content to determine
// the format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile picks the format from content when it is recognizable and
// from the file name otherwise.
func DetectFile(filename string, data []byte) Format {
	if f := DetectFromMagic(data); f != Unknown && f != Text {
		return f
	}
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromMagic(data)
}
