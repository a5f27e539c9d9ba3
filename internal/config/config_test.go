package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textable/table"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8, cfg.Parse.TabWidth)
	assert.Equal(t, 2, cfg.Parse.MinKeywordHits)
	assert.Equal(t, "jsonl", cfg.Output.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.Input.StripANSI)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Parse.TabWidth, cfg.Parse.TabWidth)
	assert.Equal(t, defaults.Parse.CommentPrefixes, cfg.Parse.CommentPrefixes)
	assert.Empty(t, cfg.Parse.HeaderKeywords)
	assert.Equal(t, defaults.Input, cfg.Input)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Server, cfg.Server)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
parse:
  tab_width: 4
  header_keywords: [PID, COMMAND]
output:
  format: csv
store:
  path: captures.db
`)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Parse.TabWidth)
	assert.Equal(t, []string{"PID", "COMMAND"}, cfg.Parse.HeaderKeywords)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "captures.db", cfg.Store.Path)

	// untouched sections keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Parse.MinKeywordHits)
}

func TestLoad_SearchOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeConfig(t, second, "output:\n  format: tsv\n")

	cfg, err := NewLoader(first, second).Load()
	require.NoError(t, err)
	assert.Equal(t, "tsv", cfg.Output.Format)

	writeConfig(t, first, "output:\n  format: json\n")
	cfg, err = NewLoader(first, second).Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "parse:\n  tab_width: 4\n")

	t.Setenv("TEXTABLE_PARSE_TAB_WIDTH", "2")
	t.Setenv("TEXTABLE_SERVER_ADDR", "localhost:9090")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Parse.TabWidth)
	assert.Equal(t, "localhost:9090", cfg.Server.Addr)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "parse:\n  tab_width: 0\noutput:\n  format: yaml\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "parse.tab_width must be at least 1")
	assert.Contains(t, err.Error(), `output.format must be one of [jsonl json csv tsv xlsx], got "yaml"`)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "parse: [unclosed\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNewFileLoader(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "run:\n  workers: 3\n")

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Run.Workers)

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"tab width too large", func(c *Config) { c.Parse.TabWidth = 17 }, "parse.tab_width must be at most 16"},
		{"keyword hits", func(c *Config) { c.Parse.MinKeywordHits = 0 }, "parse.min_keyword_hits must be at least 1"},
		{"negative workers", func(c *Config) { c.Run.Workers = -1 }, "run.workers must be at least 0"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr is required"},
		{"bad addr", func(c *Config) { c.Server.Addr = "nope" }, "server.addr must be host:port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTableConfig(t *testing.T) {
	cfg := Default()
	cfg.Parse.TabWidth = 4
	cfg.Parse.HeaderKeywords = table.DefaultHeaderKeywords
	cfg.Parse.KeepBlank = true

	tc := cfg.TableConfig()
	assert.Equal(t, 4, tc.TabWidth)
	assert.Equal(t, table.DefaultHeaderKeywords, tc.HeaderKeywords)
	assert.False(t, tc.SkipBlank)
	assert.False(t, tc.SkipComments)

	assert.Equal(t, table.DefaultConfig(), Default().TableConfig())
}

func TestReaderConfig(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.ReaderConfig().ContentType)

	cfg.Input.Charset = "iso-8859-1"
	rc := cfg.ReaderConfig()
	assert.Equal(t, "text/plain; charset=iso-8859-1", rc.ContentType)
	assert.Equal(t, cfg.Input.MaxSize, rc.MaxSize)
}
