package command

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/table"
)

// Ps parses ps output in any format: BSD (aux, axjf), System V (-ef,
// -elyf), custom -o field lists and tree views alike.
type Ps struct {
	tabular
}

// NewPs creates the ps command
func NewPs() *Ps {
	return &Ps{tabular: newTabular("ps", fields.PS)}
}

// SupportedArguments returns ps arguments commonly found in capture names
func (p *Ps) SupportedArguments() []string {
	return []string{
		"", "aux", "-ef", "-elyf", "axjf", "-eo", "-ax", "-u", "-l", "-f",
		"-j", "-v", "-m", "-H", "-T", "--forest", "-C", "-p", "-g", "-t", "-U",
	}
}

// PsRecord is one process from ps output. Columns the capture did not
// include are empty.
type PsRecord struct {
	PID            string `json:"pid"`
	PPID           string `json:"ppid"`
	User           string `json:"user"`
	RUser          string `json:"ruser"`
	UID            string `json:"uid"`
	GID            string `json:"gid"`
	Command        string `json:"command"`
	Args           string `json:"args"`
	State          string `json:"state"`
	TTY            string `json:"tty"`
	Time           string `json:"time"`
	CPUPercent     string `json:"cpu_percent"`
	MemPercent     string `json:"mem_percent"`
	VSZ            string `json:"vsz"`
	RSS            string `json:"rss"`
	Priority       string `json:"priority"`
	Nice           string `json:"nice"`
	StartTime      string `json:"start_time"`
	ElapsedTime    string `json:"elapsed_time"`
	WChan          string `json:"wchan"`
	Flags          string `json:"flags"`
	PGID           string `json:"pgid"`
	SID            string `json:"sid"`
	TPGID          string `json:"tpgid"`
	RUID           string `json:"ruid"`
	RGID           string `json:"rgid"`
	CPUUtilization string `json:"cpu_utilization"`

	// Arguments recovered from the capture file name
	Arguments []string `json:"arguments"`

	// Output style suggested by Arguments
	FormatInfo string `json:"format_info"`

	SourceFile string `json:"source_file"`
	Line       int    `json:"line"`

	// The row under its original column names
	RawData json.RawMessage `json:"raw_data"`
}

// CommandName returns "ps"
func (r *PsRecord) CommandName() string {
	return "ps"
}

// Row returns the record fields in declaration order.
func (r *PsRecord) Row() table.Row {
	return table.Row{
		{Name: "pid", Value: r.PID},
		{Name: "ppid", Value: r.PPID},
		{Name: "user", Value: r.User},
		{Name: "ruser", Value: r.RUser},
		{Name: "uid", Value: r.UID},
		{Name: "gid", Value: r.GID},
		{Name: "command", Value: r.Command},
		{Name: "args", Value: r.Args},
		{Name: "state", Value: r.State},
		{Name: "tty", Value: r.TTY},
		{Name: "time", Value: r.Time},
		{Name: "cpu_percent", Value: r.CPUPercent},
		{Name: "mem_percent", Value: r.MemPercent},
		{Name: "vsz", Value: r.VSZ},
		{Name: "rss", Value: r.RSS},
		{Name: "priority", Value: r.Priority},
		{Name: "nice", Value: r.Nice},
		{Name: "start_time", Value: r.StartTime},
		{Name: "elapsed_time", Value: r.ElapsedTime},
		{Name: "wchan", Value: r.WChan},
		{Name: "flags", Value: r.Flags},
		{Name: "pgid", Value: r.PGID},
		{Name: "sid", Value: r.SID},
		{Name: "tpgid", Value: r.TPGID},
		{Name: "ruid", Value: r.RUID},
		{Name: "rgid", Value: r.RGID},
		{Name: "cpu_utilization", Value: r.CPUUtilization},
		{Name: "arguments", Value: strings.Join(r.Arguments, " ")},
		{Name: "format_info", Value: r.FormatInfo},
		{Name: "source_file", Value: r.SourceFile},
		{Name: "line", Value: strconv.Itoa(r.Line)},
		{Name: "raw_data", Value: string(r.RawData)},
	}
}

// Parse turns ps output into PsRecords.
func (p *Ps) Parse(ctx context.Context, doc *Document) ([]Record, []Warning, error) {
	tbl, warnings, err := p.parseTable(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	args := ParseArguments(p.Name(), doc.Name)
	if args == nil {
		args = []string{}
	}
	format := PsFormat(args)

	records := make([]Record, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		m := fields.Canonicalize(row, p.mapping)
		raw, err := row.MarshalJSON()
		if err != nil {
			return nil, warnings, err
		}

		records = append(records, &PsRecord{
			PID:            m["pid"],
			PPID:           m["ppid"],
			User:           m["user"],
			RUser:          m["ruser"],
			UID:            m["uid"],
			GID:            m["gid"],
			Command:        m["command"],
			Args:           m["args"],
			State:          m["state"],
			TTY:            m["tty"],
			Time:           m["time"],
			CPUPercent:     m["cpu_percent"],
			MemPercent:     m["mem_percent"],
			VSZ:            m["vsz"],
			RSS:            m["rss"],
			Priority:       m["priority"],
			Nice:           m["nice"],
			StartTime:      m["start_time"],
			ElapsedTime:    m["elapsed_time"],
			WChan:          m["wchan"],
			Flags:          m["flags"],
			PGID:           m["pgid"],
			SID:            m["sid"],
			TPGID:          m["tpgid"],
			RUID:           m["ruid"],
			RGID:           m["rgid"],
			CPUUtilization: m["cpu_utilization"],
			Arguments:      args,
			FormatInfo:     format,
			SourceFile:     doc.Name,
			Line:           tbl.LineNumbers[i] + 1,
			RawData:        raw,
		})
	}

	return records, warnings, nil
}
