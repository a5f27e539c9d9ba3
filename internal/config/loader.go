package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TEXTABLE_PARSE_TAB_WIDTH
const EnvPrefix = "TEXTABLE"

// FileName is the config file searched for, without extension
const FileName = ".textable"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	dirs []string
	file string
}

// NewLoader creates a loader that searches the given directories, in
// order, for .textable.yaml.
func NewLoader(dirs ...string) Loader {
	return &loader{dirs: dirs}
}

// NewFileLoader creates a loader for an explicit config file. A missing
// file is an error.
func NewFileLoader(path string) Loader {
	return &loader{file: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (TEXTABLE_*)
// 2. Config file
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		for _, dir := range l.dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults configures viper with default values. Every key must have a
// default for AutomaticEnv to see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("parse.tab_width", defaults.Parse.TabWidth)
	v.SetDefault("parse.comment_prefixes", defaults.Parse.CommentPrefixes)
	v.SetDefault("parse.header_keywords", defaults.Parse.HeaderKeywords)
	v.SetDefault("parse.min_keyword_hits", defaults.Parse.MinKeywordHits)
	v.SetDefault("parse.keep_blank", defaults.Parse.KeepBlank)

	v.SetDefault("input.charset", defaults.Input.Charset)
	v.SetDefault("input.normalize", defaults.Input.Normalize)
	v.SetDefault("input.strip_ansi", defaults.Input.StripANSI)
	v.SetDefault("input.max_size", defaults.Input.MaxSize)
	v.SetDefault("input.ocr_lang", defaults.Input.OCRLang)

	v.SetDefault("run.workers", defaults.Run.Workers)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.pretty", defaults.Output.Pretty)
	v.SetDefault("output.canonical", defaults.Output.Canonical)

	v.SetDefault("store.path", defaults.Store.Path)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.max_body_bytes", defaults.Server.MaxBodyBytes)
	v.SetDefault("server.mode", defaults.Server.Mode)
}

// LoadConfig loads configuration from the working directory and the home
// directory, in that order.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	dirs := []string{wd}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return NewLoader(dirs...).Load()
}
