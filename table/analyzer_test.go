package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHeader_OneSpanPerToken(t *testing.T) {
	headers := []string{
		"PID TTY TIME CMD",
		"  PID TTY          TIME CMD",
		"USER       PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND",
		"UID          PID    PPID  C STIME TTY          TIME CMD",
		" PPID   PID  PGID   SID TTY      TPGID STAT   UID   TIME COMMAND",
		"COMMAND     PID USER   FD   TYPE             DEVICE SIZE/OFF NODE NAME",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			spans, err := AnalyzeHeader(header)
			require.NoError(t, err)
			require.Len(t, spans, len(strings.Fields(header)))

			for i := 1; i < len(spans); i++ {
				assert.Less(t, spans[i-1].Start, spans[i].Start, "spans must ascend")
				assert.LessOrEqual(t, spans[i-1].End, spans[i].Start, "spans must not overlap")
			}
			for i, s := range spans[:len(spans)-1] {
				assert.True(t, s.Bounded(), "span %d should be bounded", i)
			}
			assert.False(t, spans[len(spans)-1].Bounded(), "last span should be unbounded")
			assert.Equal(t, strings.Fields(header), Names(spans))
		})
	}
}

func TestAnalyzeHeader_Offsets(t *testing.T) {
	spans, err := AnalyzeHeader("  PID TTY          TIME CMD")
	require.NoError(t, err)

	want := []ColumnSpan{
		{Name: "PID", Start: 2, End: 5, Label: 3},
		{Name: "TTY", Start: 6, End: 9, Label: 3},
		{Name: "TIME", Start: 19, End: 23, Label: 4},
		{Name: "CMD", Start: 24, End: Unbounded, Label: 3},
	}
	assert.Equal(t, want, spans)
	assert.Equal(t, 27, spans[3].LabelEnd())
}

func TestAnalyzeHeader_SingleToken(t *testing.T) {
	spans, err := AnalyzeHeader("COMMAND")
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, Unbounded, spans[0].End)

	row := Slice(spans, "/usr/bin/python3 -m http.server 8080")
	assert.Equal(t, "/usr/bin/python3 -m http.server 8080", row.Get("COMMAND"))
}

func TestAnalyzeHeader_Empty(t *testing.T) {
	for _, header := range []string{"", "   ", "\t\t"} {
		_, err := AnalyzeHeader(header)
		assert.ErrorIs(t, err, ErrNoHeaderFound)
	}
}

func TestAnalyze_NoLines(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, ErrNoHeaderFound)

	_, err = Analyze([]string{"", "  ", "# just a comment"})
	assert.ErrorIs(t, err, ErrNoHeaderFound)
}

func TestFindHeader_SkipsBlankAndComments(t *testing.T) {
	lines := []string{
		"",
		"# collected by triage script",
		"// second comment style",
		"USER       PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND",
		"root         1  0.0  0.1  19356  1516 ?        Ss   Jan01   0:01 /sbin/init",
	}

	idx, err := NewAnalyzer().FindHeader(lines)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
}

func TestFindHeader_Keywords(t *testing.T) {
	config := DefaultConfig()
	config.HeaderKeywords = DefaultHeaderKeywords
	a := NewAnalyzerWithConfig(config)

	lines := []string{
		"Sat Oct 17 10:00:00 UTC 2026",
		"host: web-01",
		"USER       PID COMMAND",
		"root         1 /sbin/init",
	}
	idx, err := a.FindHeader(lines)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	// lowercase headers still count
	idx, err = a.FindHeader([]string{"pid tty time cmd"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestFindHeader_KeywordsNoMatch(t *testing.T) {
	config := DefaultConfig()
	config.HeaderKeywords = DefaultHeaderKeywords
	a := NewAnalyzerWithConfig(config)

	lines := []string{
		"this is not a valid ps output",
		"no header here",
		"1234 pts/0 bash",
	}
	_, err := a.FindHeader(lines)
	assert.ErrorIs(t, err, ErrNoHeaderFound)

	_, err = a.Parse(lines)
	assert.ErrorIs(t, err, ErrNoHeaderFound)
}

func TestNewAnalyzerWithConfig_ZeroValues(t *testing.T) {
	a := NewAnalyzerWithConfig(Config{})
	assert.Equal(t, 8, a.Config().TabWidth)
	assert.Equal(t, 2, a.Config().MinKeywordHits)
}

func TestBoundary(t *testing.T) {
	spans, err := AnalyzeHeader("AAAA      BBBB")
	require.NoError(t, err)
	assert.Equal(t, 7, Boundary(spans[0], spans[1]))
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"bash", 4},
		{"a\tb", 9},
		{"\t", 8},
		{"日本", 4},
		{"ｆｕｌｌ", 8},
		{"é", 1},
	}

	for _, tt := range tests {
		if got := DisplayWidth(tt.in, 8); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
