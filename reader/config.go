package reader

import "errors"

var (
	// ErrEmptyInput is returned when there are no bytes to decode.
	ErrEmptyInput = errors.New("empty input")

	// ErrTooLarge is returned when input exceeds Config.MaxSize.
	ErrTooLarge = errors.New("input exceeds maximum size")
)

// Config holds reader configuration
type Config struct {
	// Content type of the input, e.g. "text/plain; charset=iso-8859-1".
	// Only its charset parameter is used.
	ContentType string

	// Normalize text to NFC
	Normalize bool

	// Remove ANSI escape sequences
	StripANSI bool

	// Maximum input size in bytes; 0 means no limit
	MaxSize int64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Normalize: true,
		StripANSI: true,
		MaxSize:   64 << 20,
	}
}
