package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textable/table"
)

func TestField_String(t *testing.T) {
	tests := []struct {
		f    Field
		want string
	}{
		{PID, "pid"},
		{CPUPercent, "cpu_percent"},
		{SizeOff, "size_off"},
		{Unknown, "unknown"},
		{Field(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("Field(%d).String() = %q, want %q", int(tt.f), got, tt.want)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, f := range All() {
		got, ok := Parse(f.String())
		require.True(t, ok, f.String())
		assert.Equal(t, f, got)
	}

	_, ok := Parse("PID")
	assert.False(t, ok, "Parse matches canonical names exactly")
	_, ok = Parse("unknown")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PID", "pid"},
		{"%CPU", "cpu"},
		{"USER-NAME", "user_name"},
		{"SIZE/OFF", "size_off"},
		{"__TEST__", "test"},
		{"a  b", "a_b"},
		{"%", "%"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapping_CaseInsensitive(t *testing.T) {
	for _, raw := range []string{"pid", "PID", "Pid"} {
		assert.Equal(t, "pid", PS.Resolve(raw), raw)
	}
	for _, raw := range []string{"euser", "EUSER", "EUser"} {
		assert.Equal(t, "user", PS.Resolve(raw), raw)
	}
}

func TestMapping_Idempotent(t *testing.T) {
	for _, m := range []*Mapping{PS, Lsof} {
		for _, f := range m.Fields() {
			assert.Equal(t, f.String(), m.Resolve(f.String()), "%s: %s", m.Name(), f)
		}
	}

	// COMMAND is an alias of args, but the canonical name stays put
	assert.Equal(t, "args", PS.Resolve("COMMAND"))
	assert.Equal(t, "command", PS.Resolve("command"))
}

func TestMapping_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "WIDGET", PS.Resolve("WIDGET"))
	assert.Equal(t, "My-Col", PS.Resolve("My-Col"))
	assert.False(t, PS.Known("WIDGET"))
	assert.Equal(t, []string{"WIDGET"}, PS.Unmapped([]string{"PID", "WIDGET", "%CPU"}))
}

func TestPS_Aliases(t *testing.T) {
	tests := map[string]string{
		"PID":     "pid",
		"SPID":    "flags",
		"PENDING": "flags",
		"RUSER":   "ruser",
		"SUPGID":  "gid",
		"CMD":     "command",
		"COMM":    "command",
		"COMMAND": "args",
		"ARGS":    "args",
		"%CPU":    "cpu_percent",
		"%MEM":    "mem_percent",
		"C":       "cpu_utilization",
		"STIME":   "start_time",
		"ETIME":   "elapsed_time",
		"SESS":    "sid",
		"RTPRIO":  "priority",
		"SCHED":   "flags",
		"NI":      "nice",
		"ADDR":    "wchan",
	}

	for raw, want := range tests {
		assert.Equal(t, want, PS.Resolve(raw), raw)
	}

	assert.Equal(t, []string{"ARGS", "COMMAND"}, PS.Aliases(Args))
}

func TestLsof_Aliases(t *testing.T) {
	tests := map[string]string{
		"COMMAND":  "command",
		"PROCESS":  "command",
		"OWNER":    "user",
		"SIZE/OFF": "size_off",
		"OFFSET":   "size_off",
		"INODE":    "node",
		"FILEPATH": "name",
		"size/off": "size_off",
	}

	for raw, want := range tests {
		assert.Equal(t, want, Lsof.Resolve(raw), raw)
	}
}

func TestNewMapping_IgnoresInvalid(t *testing.T) {
	m := NewMapping("test", map[string]Field{
		"GOOD": PID,
		"BAD":  Unknown,
		"ALSO": Field(999),
	})

	assert.True(t, m.Known("good"))
	assert.False(t, m.Known("BAD"))
	assert.False(t, m.Known("ALSO"))
	assert.Equal(t, []string{"GOOD"}, m.Keywords())
	assert.Equal(t, []Field{PID}, m.Fields())
}

func TestCanonicalize_ReorderedHeader(t *testing.T) {
	spans, err := table.AnalyzeHeader("COMMAND         USER       PID  PPID   RSS %CPU STAT TTY      TIME")
	require.NoError(t, err)
	row := table.Slice(spans, "python3         user      5678  1234 20480  5.2 R    pts/1    1:02")

	got := Canonicalize(row, PS)

	assert.Equal(t, map[string]string{
		"args":        "python3",
		"user":        "user",
		"pid":         "5678",
		"ppid":        "1234",
		"rss":         "20480",
		"cpu_percent": "5.2",
		"state":       "R",
		"tty":         "pts/1",
		"time":        "1:02",
	}, got)
}

func TestCanonicalize_LastWriteWins(t *testing.T) {
	row := table.Row{
		{Name: "USER", Value: "root"},
		{Name: "EUSER", Value: "daemon"},
		{Name: "PID", Value: "1"},
	}

	got := Canonicalize(row, PS)
	assert.Equal(t, map[string]string{"user": "daemon", "pid": "1"}, got)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	row := table.Row{
		{Name: "PID", Value: "1"},
		{Name: "CMD", Value: "init"},
		{Name: "WIDGET", Value: "x"},
	}

	once := Canonicalize(row, PS)

	again := table.Row{}
	for _, name := range []string{"pid", "command", "WIDGET"} {
		again = append(again, table.Cell{Name: name, Value: once[name]})
	}
	assert.Equal(t, once, Canonicalize(again, PS))
}

func TestCanonicalize_NilMapping(t *testing.T) {
	row := table.Row{{Name: "PID", Value: "1"}}
	assert.Equal(t, map[string]string{"PID": "1"}, Canonicalize(row, nil))
}

func TestMapping_Apply(t *testing.T) {
	row := table.Row{
		{Name: "PID", Value: "1"},
		{Name: "WIDGET", Value: "x"},
		{Name: "CMD", Value: "init"},
	}

	got := PS.Apply(row)
	assert.Equal(t, table.Row{
		{Name: "pid", Value: "1"},
		{Name: "WIDGET", Value: "x"},
		{Name: "command", Value: "init"},
	}, got)
	assert.Equal(t, "PID", row[0].Name, "Apply must not modify its input")
}
