package command

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/table"
)

const testdataDir = "testdata/command_outputs"

func loadTestDoc(t *testing.T, name string) *Document {
	t.Helper()
	doc, err := LoadDocument(filepath.Join(testdataDir, name), reader.DefaultConfig())
	require.NoError(t, err)
	return doc
}

func parsePs(t *testing.T, name string) []*PsRecord {
	t.Helper()
	records, _, err := NewPs().Parse(context.Background(), loadTestDoc(t, name))
	require.NoError(t, err)

	out := make([]*PsRecord, len(records))
	for i, r := range records {
		out[i] = r.(*PsRecord)
	}
	return out
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name, filename string
		want           []string
	}{
		{"ps", "ps.txt", []string{}},
		{"ps", "ps_aux.txt", []string{"aux"}},
		{"ps", "ps_-ef.txt", []string{"-ef"}},
		{"ps", "ps_-eo_pid,ppid,user,command.txt", []string{"-eo", "pid,ppid,user,command"}},
		{"ps", "ps_-u_root_-f", []string{"-u", "root", "-f"}},
		{"lsof", "lsof_-i_-n_-P.out", []string{"-i", "-n", "-P"}},
		{"ps", "lsof.txt", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseArguments(tt.name, tt.filename), tt.filename)
	}
}

func TestPsFormat(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, FormatBasic},
		{[]string{"aux"}, FormatBSDAllProcesses},
		{[]string{"-ef"}, FormatSysVFull},
		{[]string{"-eo", "pid,user"}, FormatCustom},
		{[]string{"axjf"}, FormatTree},
		{[]string{"-elyf"}, FormatTree},
		{[]string{"-l"}, FormatLong},
		{[]string{"-u", "root"}, FormatUser},
		{[]string{"-v"}, FormatVirtualMemory},
		{[]string{"-j"}, FormatJob},
		{[]string{"-T"}, FormatCustomOrMixed},
	}

	for _, tt := range tests {
		if got := PsFormat(tt.args); got != tt.want {
			t.Errorf("PsFormat(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestPs_Basic(t *testing.T) {
	records := parsePs(t, "ps.txt")
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "1234", r.PID)
	assert.Equal(t, "pts/0", r.TTY)
	assert.Equal(t, "00:00:01", r.Time)
	assert.Equal(t, "bash", r.Command)
	assert.Equal(t, []string{}, r.Arguments)
	assert.Equal(t, FormatBasic, r.FormatInfo)
	assert.Equal(t, "ps.txt", r.SourceFile)
	assert.Equal(t, 2, r.Line)
	assert.Equal(t, "ps", r.CommandName())
}

func TestPs_Aux(t *testing.T) {
	records := parsePs(t, "ps_aux.txt")
	require.Len(t, records, 3)

	r := records[0]
	assert.Equal(t, "root", r.User)
	assert.Equal(t, "1", r.PID)
	assert.Equal(t, "0.0", r.CPUPercent)
	assert.Equal(t, "0.1", r.MemPercent)
	assert.Equal(t, "19356", r.VSZ)
	assert.Equal(t, "1516", r.RSS)
	assert.Equal(t, "?", r.TTY)
	assert.Equal(t, "Ss", r.State)
	assert.Equal(t, "Jan01", r.StartTime)
	assert.Equal(t, "/sbin/init", r.Args)
	assert.Equal(t, FormatBSDAllProcesses, r.FormatInfo)

	assert.Equal(t, "[kthreadd]", records[1].Args)
	assert.Equal(t, "-bash --login", records[2].Args)
	assert.Equal(t, "169356", records[2].VSZ)
}

func TestPs_EF(t *testing.T) {
	records := parsePs(t, "ps_-ef.txt")
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "root", r.UID)
	assert.Equal(t, "1", r.PID)
	assert.Equal(t, "0", r.PPID)
	assert.Equal(t, "0", r.CPUUtilization)
	assert.Equal(t, "10:00", r.StartTime)
	assert.Equal(t, "/sbin/init splash", r.Command)
	assert.Equal(t, FormatSysVFull, r.FormatInfo)
}

func TestPs_Custom(t *testing.T) {
	records := parsePs(t, "ps_-eo_pid,ppid,user,command.txt")
	require.Len(t, records, 3)

	assert.Equal(t, []string{"-eo", "pid,ppid,user,command"}, records[0].Arguments)
	assert.Equal(t, FormatCustom, records[0].FormatInfo)
	assert.Equal(t, "5678", records[2].PID)
	assert.Equal(t, "1234", records[2].PPID)
	assert.Equal(t, "python3 app.py --port 8080", records[2].Args)
}

func TestPs_Tree(t *testing.T) {
	records := parsePs(t, "ps_axjf.txt")
	require.Len(t, records, 3)

	r := records[2]
	assert.Equal(t, "456", r.PPID)
	assert.Equal(t, "1234", r.PGID)
	assert.Equal(t, "1234", r.SID)
	assert.Equal(t, "5678", r.TPGID)
	assert.Equal(t, "1000", r.UID)
	assert.Equal(t, `\_ -bash`, r.Args)
	assert.Equal(t, FormatTree, r.FormatInfo)
	assert.Equal(t, "-1", records[0].TPGID)
}

func TestPs_CustomOrder(t *testing.T) {
	records := parsePs(t, "ps_custom_order.txt")
	require.Len(t, records, 2)

	r := records[1]
	assert.Equal(t, "python3", r.Args)
	assert.Equal(t, "user", r.User)
	assert.Equal(t, "5678", r.PID)
	assert.Equal(t, "1234", r.PPID)
	assert.Equal(t, "20480", r.RSS)
	assert.Equal(t, "5.2", r.CPUPercent)
	assert.Equal(t, "R", r.State)
	assert.Equal(t, "pts/1", r.TTY)
	assert.Equal(t, "1:02", r.Time)
}

func TestPs_RawData(t *testing.T) {
	records := parsePs(t, "ps.txt")

	var raw map[string]string
	require.NoError(t, json.Unmarshal(records[0].RawData, &raw))
	assert.Equal(t, map[string]string{"PID": "1234", "TTY": "pts/0", "TIME": "00:00:01", "CMD": "bash"}, raw)

	b, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"raw_data":{"PID":"1234","TTY":"pts/0","TIME":"00:00:01","CMD":"bash"}`)
}

func TestPs_NoHeader(t *testing.T) {
	_, _, err := NewPs().Parse(context.Background(), loadTestDoc(t, "ps_broken.txt"))
	assert.ErrorIs(t, err, table.ErrNoHeaderFound)
}

func TestPs_UnmappedColumnWarning(t *testing.T) {
	doc := NewDocument("ps_-o_pid,widget.txt", []string{
		"  PID TTY   WIDGET",
		"    1 pts/0 gear",
	})

	records, warnings, err := NewPs().Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, "WIDGET", warnings[0].Column)
	assert.Equal(t, 1, warnings[0].Line)
	assert.Equal(t, "ps_-o_pid,widget.txt:1: column WIDGET: no canonical field, kept under its raw name", warnings[0].String())
}

func TestPs_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewPs().Parse(ctx, loadTestDoc(t, "ps.txt"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLsof(t *testing.T) {
	records, warnings, err := NewLsof().Parse(context.Background(), loadTestDoc(t, "lsof_-i.txt"))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 2)

	r := records[0].(*LsofRecord)
	assert.Equal(t, "sshd", r.Command)
	assert.Equal(t, 845, r.PID)
	assert.Equal(t, "root", r.User)
	assert.Equal(t, "3u", r.FD)
	assert.Equal(t, 3, r.FDNumber)
	assert.Equal(t, "u", r.FDMode)
	assert.Equal(t, "IPv4", r.Type)
	assert.Equal(t, "12345", r.Device)
	assert.Equal(t, "0t0", r.SizeOff)
	assert.Equal(t, "TCP", r.Node)
	assert.Equal(t, "TCP *:22 (LISTEN)", r.Name)
	assert.Equal(t, "sshd        845 root    3u  IPv4              12345      0t0  TCP *:22 (LISTEN)", r.RawData)
	assert.Equal(t, "lsof", r.CommandName())

	r = records[1].(*LsofRecord)
	assert.Equal(t, "TCP [::1]:5432->[::1]:43210 (ESTABLISHED)", r.Name)
	assert.Equal(t, "0xffff8a1b2c3d4e5f", r.Device)
}

func TestLsof_Files(t *testing.T) {
	records, _, err := NewLsof().Parse(context.Background(), loadTestDoc(t, "lsof.txt"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	r := records[0].(*LsofRecord)
	assert.Equal(t, "cwd", r.FD)
	assert.Equal(t, -1, r.FDNumber)
	assert.Equal(t, "", r.FDMode)
	assert.Equal(t, "/", r.Name)

	r = records[1].(*LsofRecord)
	assert.Equal(t, "REG", r.Type)
	assert.Equal(t, "2029592", r.SizeOff)
	assert.Equal(t, "1234", r.Node)
	assert.Equal(t, "/usr/lib/x86_64-linux-gnu/libc.so.6", r.Name)
}

func TestLsof_NonNumericPID(t *testing.T) {
	doc := NewDocument("lsof.txt", []string{
		"COMMAND     PID USER   FD   TYPE DEVICE SIZE/OFF NODE NAME",
		"kworker     ??? root  cwd    DIR    8,1     4096    2 /",
	})

	records, _, err := NewLsof().Parse(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].(*LsofRecord).PID)
}

func TestSocketName(t *testing.T) {
	tests := []struct {
		node, name, want string
	}{
		{"TCP", "*:22 (LISTEN)", "TCP *:22 (LISTEN)"},
		{"udp", "*:53", "udp *:53"},
		{"TCP", "", "TCP"},
		{"1234", "/etc/passwd", "/etc/passwd"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := socketName(tt.node, tt.name); got != tt.want {
			t.Errorf("socketName(%q, %q) = %q, want %q", tt.node, tt.name, got, tt.want)
		}
	}
}

func TestGeneric(t *testing.T) {
	doc := NewDocument("df_-h.txt", []string{
		"Filesystem      Size  Used Avail Use% Mounted on",
		"/dev/sda1        50G   20G   28G  42% /",
	})

	records, warnings, err := NewGeneric("df", nil).Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)

	rec := records[0].(*GenericRecord)
	assert.Equal(t, "df", rec.CommandName())
	assert.Equal(t, []string{"-h"}, rec.Arguments)
	assert.Equal(t, "/dev/sda1", rec.Row().Get("Filesystem"))
	assert.Equal(t, "42%", rec.Row().Get("Use%"))
	assert.Equal(t, "/", rec.Row().Get("Mounted"))
	assert.Equal(t, "", rec.Row().Get("on"))
}

func TestGenericWithConfig(t *testing.T) {
	config := table.DefaultConfig()
	config.HeaderKeywords = []string{"PID", "CMD"}
	doc := NewDocument("top.txt", []string{
		"Tasks: 2 total",
		"  PID CMD",
		"    1 init",
	})

	records, warnings, err := NewGenericWithConfig("top", fields.PS, config).Parse(context.Background(), doc)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, records, 1)

	rec := records[0].(*GenericRecord)
	assert.Equal(t, 3, rec.Line)
	assert.Equal(t, "1", rec.Row().Get("pid"))
	assert.Equal(t, "init", rec.Row().Get("command"))
}

func TestDocument(t *testing.T) {
	a := NewDocument("ps.txt", nil)
	b := NewDocument("ps.txt", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.Equal(t, "ps.txt", a.Source())

	doc := loadTestDoc(t, "ps.txt")
	assert.Equal(t, filepath.Join(testdataDir, "ps.txt"), doc.Source())
	assert.Equal(t, "utf-8", doc.Encoding)
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Source: "ps.txt", Message: "first"},
		{Source: "ps.txt", Line: 3, Column: "X", Message: "second"},
		{Message: "bare"},
	}
	assert.Equal(t, "ps.txt: first\nps.txt:3: column X: second\nbare", FormatWarnings(warnings))
}
