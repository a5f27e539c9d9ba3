// Package config loads textable CLI and server settings.
package config

import (
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/table"
)

// Config represents the complete textable configuration.
// It can be loaded from .textable.yaml with environment variable overrides.
type Config struct {
	Parse  ParseConfig  `yaml:"parse" mapstructure:"parse"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Run    RunConfig    `yaml:"run" mapstructure:"run"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

// ParseConfig configures header detection and slicing.
type ParseConfig struct {
	TabWidth        int      `yaml:"tab_width" mapstructure:"tab_width" validate:"min=1,max=16"`
	CommentPrefixes []string `yaml:"comment_prefixes" mapstructure:"comment_prefixes"`
	HeaderKeywords  []string `yaml:"header_keywords" mapstructure:"header_keywords"` // empty: first non-blank line is the header
	MinKeywordHits  int      `yaml:"min_keyword_hits" mapstructure:"min_keyword_hits" validate:"min=1"`
	KeepBlank       bool     `yaml:"keep_blank" mapstructure:"keep_blank"`
}

// InputConfig configures how captures are decoded.
type InputConfig struct {
	Charset   string `yaml:"charset" mapstructure:"charset"` // forced charset, e.g. "iso-8859-1"
	Normalize bool   `yaml:"normalize" mapstructure:"normalize"`
	StripANSI bool   `yaml:"strip_ansi" mapstructure:"strip_ansi"`
	MaxSize   int64  `yaml:"max_size" mapstructure:"max_size" validate:"min=0"` // bytes, 0 for no limit
	OCRLang   string `yaml:"ocr_lang" mapstructure:"ocr_lang"`                  // tesseract languages, e.g. "eng+deu"
}

// RunConfig configures directory runs.
type RunConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers" validate:"min=0"` // 0 uses GOMAXPROCS
}

// OutputConfig configures record output.
type OutputConfig struct {
	Format    string `yaml:"format" mapstructure:"format" validate:"oneof=jsonl json csv tsv xlsx"`
	Pretty    bool   `yaml:"pretty" mapstructure:"pretty"`
	Canonical bool   `yaml:"canonical" mapstructure:"canonical"` // rename columns to canonical fields
}

// StoreConfig configures the SQLite store.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // empty disables the store
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string `yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"min=1"`
	Mode         string `yaml:"mode" mapstructure:"mode" validate:"oneof=debug release test"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	tc := table.DefaultConfig()
	rc := reader.DefaultConfig()
	return &Config{
		Parse: ParseConfig{
			TabWidth:        tc.TabWidth,
			CommentPrefixes: tc.CommentPrefixes,
			MinKeywordHits:  tc.MinKeywordHits,
		},
		Input: InputConfig{
			Normalize: rc.Normalize,
			StripANSI: rc.StripANSI,
			MaxSize:   rc.MaxSize,
			OCRLang:   "eng",
		},
		Output: OutputConfig{
			Format: "jsonl",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 8 << 20,
			Mode:         "release",
		},
	}
}

// TableConfig returns the analyzer configuration.
func (c *Config) TableConfig() table.Config {
	tc := table.DefaultConfig()
	tc.TabWidth = c.Parse.TabWidth
	tc.CommentPrefixes = c.Parse.CommentPrefixes
	tc.HeaderKeywords = c.Parse.HeaderKeywords
	tc.MinKeywordHits = c.Parse.MinKeywordHits
	tc.SkipBlank = !c.Parse.KeepBlank
	tc.SkipComments = !c.Parse.KeepBlank
	return tc
}

// ReaderConfig returns the decoding configuration.
func (c *Config) ReaderConfig() reader.Config {
	rc := reader.Config{
		Normalize: c.Input.Normalize,
		StripANSI: c.Input.StripANSI,
		MaxSize:   c.Input.MaxSize,
	}
	if c.Input.Charset != "" {
		rc.ContentType = "text/plain; charset=" + c.Input.Charset
	}
	return rc
}
