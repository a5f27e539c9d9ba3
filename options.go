package textable

import (
	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/table"
)

// ParseOptions holds configuration for parsing.
type ParseOptions struct {
	// Header detection and slicing
	table table.Config

	// Input decoding
	reader reader.Config

	// Column names for Records; nil keeps raw names
	mapping *fields.Mapping

	// Registered command for Parse; empty picks one from the file name
	command string

	// Tesseract languages for screenshots
	ocrLang string
}

// defaultOptions returns the default parse options.
func defaultOptions() ParseOptions {
	return ParseOptions{
		table:   table.DefaultConfig(),
		reader:  reader.DefaultConfig(),
		ocrLang: "eng",
	}
}

// clone creates a deep copy of ParseOptions.
func (o ParseOptions) clone() ParseOptions {
	newOpts := o
	newOpts.table.CommentPrefixes = append([]string(nil), o.table.CommentPrefixes...)
	if o.table.HeaderKeywords != nil {
		newOpts.table.HeaderKeywords = append([]string(nil), o.table.HeaderKeywords...)
	}
	return newOpts
}
