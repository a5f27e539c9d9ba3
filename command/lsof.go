package command

import (
	"context"
	"strconv"
	"strings"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/patterns"
	"github.com/tsawler/textable/table"
)

// lsof FD column: a descriptor number with access mode and lock
// characters, or a name such as cwd, txt or mem
var lsofPatterns = patterns.NewSet().
	MustAdd("fd", `^(?P<num>\d+)(?P<mode>[rwu-]?)(?P<lock>[NrRwWuUxX]?)$`, 0)

// socket protocols lsof prints in the NODE column
var lsofProtocols = []string{"TCP", "UDP", "UNIX", "IPv4", "IPv6"}

// Lsof parses lsof output.
type Lsof struct {
	tabular
}

// NewLsof creates the lsof command
func NewLsof() *Lsof {
	return &Lsof{tabular: newTabular("lsof", fields.Lsof)}
}

// SupportedArguments returns lsof arguments commonly found in capture names
func (l *Lsof) SupportedArguments() []string {
	return []string{
		"-i", "-p", "-u", "-c", "-d", "-t", "-n", "-P", "-l", "-R", "-r",
		"-a", "-o", "+D", "+d", "+L", "-L", "-b", "-w",
	}
}

// LsofRecord is one open file from lsof output.
type LsofRecord struct {
	Command string `json:"command"`

	// PID is 0 when the column is missing or not a number
	PID int `json:"pid"`

	User string `json:"user"`
	FD   string `json:"fd"`

	// Descriptor number, or -1 for named descriptors such as cwd
	FDNumber int `json:"fd_number"`

	// Access mode character of a numbered descriptor: r, w, u or -
	FDMode string `json:"fd_mode,omitempty"`

	Type    string `json:"type"`
	Device  string `json:"device"`
	SizeOff string `json:"size_off"`
	Node    string `json:"node"`

	// File name; for sockets prefixed with the protocol, e.g.
	// "TCP *:22 (LISTEN)"
	Name string `json:"name"`

	SourceFile string `json:"source_file"`
	Line       int    `json:"line"`

	// The source line, trimmed
	RawData string `json:"raw_data"`
}

// CommandName returns "lsof"
func (r *LsofRecord) CommandName() string {
	return "lsof"
}

// Row returns the record fields in declaration order.
func (r *LsofRecord) Row() table.Row {
	return table.Row{
		{Name: "command", Value: r.Command},
		{Name: "pid", Value: strconv.Itoa(r.PID)},
		{Name: "user", Value: r.User},
		{Name: "fd", Value: r.FD},
		{Name: "fd_number", Value: strconv.Itoa(r.FDNumber)},
		{Name: "fd_mode", Value: r.FDMode},
		{Name: "type", Value: r.Type},
		{Name: "device", Value: r.Device},
		{Name: "size_off", Value: r.SizeOff},
		{Name: "node", Value: r.Node},
		{Name: "name", Value: r.Name},
		{Name: "source_file", Value: r.SourceFile},
		{Name: "line", Value: strconv.Itoa(r.Line)},
		{Name: "raw_data", Value: r.RawData},
	}
}

// Parse turns lsof output into LsofRecords.
func (l *Lsof) Parse(ctx context.Context, doc *Document) ([]Record, []Warning, error) {
	tbl, warnings, err := l.parseTable(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	records := make([]Record, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		m := fields.Canonicalize(row, l.mapping)
		lineNo := tbl.LineNumbers[i]

		rec := &LsofRecord{
			Command:    m["command"],
			PID:        atoi(m["pid"]),
			User:       m["user"],
			FD:         m["fd"],
			FDNumber:   -1,
			Type:       m["type"],
			Device:     m["device"],
			SizeOff:    m["size_off"],
			Node:       m["node"],
			Name:       socketName(m["node"], m["name"]),
			SourceFile: doc.Name,
			Line:       lineNo + 1,
			RawData:    strings.TrimSpace(doc.Lines[lineNo]),
		}

		if g, _ := lsofPatterns.Groups("fd", rec.FD); g != nil {
			rec.FDNumber = atoi(g["num"])
			rec.FDMode = g["mode"]
		}

		records = append(records, rec)
	}

	return records, warnings, nil
}

// socketName prefixes name with node when node is a socket protocol.
func socketName(node, name string) string {
	for _, proto := range lsofProtocols {
		if strings.EqualFold(node, proto) {
			if name == "" {
				return node
			}
			return node + " " + name
		}
	}
	return name
}

// atoi returns 0 for anything that is not a base-10 integer
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
