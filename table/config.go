package table

// Config holds analyzer configuration
type Config struct {
	// Width of a tab stop in display cells
	TabWidth int

	// Lines starting with one of these (after leading whitespace) are
	// comments and never become the header
	CommentPrefixes []string

	// Words that identify a header line (case-insensitive). Empty means the
	// first non-blank, non-comment line is the header.
	HeaderKeywords []string

	// Minimum number of keyword tokens a header line must contain
	MinKeywordHits int

	// Whether Parse drops blank data lines
	SkipBlank bool

	// Whether Parse drops comment data lines
	SkipComments bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		TabWidth:        8,
		CommentPrefixes: []string{"#", "//"},
		HeaderKeywords:  nil,
		MinKeywordHits:  2,
		SkipBlank:       true,
		SkipComments:    true,
	}
}

// DefaultHeaderKeywords are column names common to Unix process, socket and
// file listings. Callers that must find a header below banner lines can set
// them as Config.HeaderKeywords.
var DefaultHeaderKeywords = []string{
	"PID", "PPID", "USER", "TIME", "CMD", "COMMAND", "STAT", "RSS", "VSZ",
	"PORT", "PROTO", "STATE", "ADDRESS", "NAME", "TYPE", "SIZE",
}

// normalized fills in zero values so a partially filled Config still works.
func (c Config) normalized() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 8
	}
	if c.MinKeywordHits <= 0 {
		c.MinKeywordHits = 2
	}
	return c
}
