package table

import (
	"strings"
)

// Analyzer locates header lines and infers column spans from them. An
// Analyzer holds only configuration and is safe for concurrent use.
type Analyzer struct {
	config   Config
	keywords map[string]bool
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	config = config.normalized()

	a := &Analyzer{config: config}
	if len(config.HeaderKeywords) > 0 {
		a.keywords = make(map[string]bool, len(config.HeaderKeywords))
		for _, kw := range config.HeaderKeywords {
			a.keywords[strings.ToUpper(kw)] = true
		}
	}
	return a
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.config
}

var defaultAnalyzer = NewAnalyzer()

// Analyze finds the header in lines and returns its column spans using the
// default configuration.
func Analyze(lines []string) ([]ColumnSpan, error) {
	return defaultAnalyzer.Analyze(lines)
}

// AnalyzeHeader returns the column spans of a known header line using the
// default configuration.
func AnalyzeHeader(header string) ([]ColumnSpan, error) {
	return defaultAnalyzer.AnalyzeHeader(header)
}

// Analyze finds the header in lines and returns its column spans.
func (a *Analyzer) Analyze(lines []string) ([]ColumnSpan, error) {
	idx, err := a.FindHeader(lines)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeHeader(lines[idx])
}

// FindHeader returns the index of the header line.
func (a *Analyzer) FindHeader(lines []string) (int, error) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || a.isComment(trimmed) {
			continue
		}
		if a.keywords == nil {
			return i, nil
		}
		if a.keywordHits(trimmed) >= a.config.MinKeywordHits {
			return i, nil
		}
	}
	return -1, ErrNoHeaderFound
}

// AnalyzeHeader turns a header line into column spans, one per token. The
// header is not trimmed: offsets refer to the line as given.
func (a *Analyzer) AnalyzeHeader(header string) ([]ColumnSpan, error) {
	tokens := scan(header, a.config.TabWidth)
	if len(tokens) == 0 {
		return nil, ErrNoHeaderFound
	}

	spans := make([]ColumnSpan, len(tokens))
	for i, t := range tokens {
		spans[i] = ColumnSpan{
			Name:  t.text,
			Start: t.start,
			End:   t.end,
			Label: t.end - t.start,
		}
	}
	spans[len(spans)-1].End = Unbounded

	return spans, nil
}

func (a *Analyzer) isComment(trimmed string) bool {
	for _, prefix := range a.config.CommentPrefixes {
		if prefix != "" && strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func (a *Analyzer) keywordHits(line string) int {
	words := strings.Fields(line)
	if len(words) < 2 {
		return 0
	}
	hits := 0
	for _, w := range words {
		if a.keywords[strings.ToUpper(w)] {
			hits++
		}
	}
	return hits
}
