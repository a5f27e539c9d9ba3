package command

import (
	"context"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/table"
)

// Generic parses the output of any tool with a header line. Column names
// are resolved through its mapping when it has one.
type Generic struct {
	tabular
}

// NewGeneric creates a command named name. A nil mapping keeps every
// column under its raw name and takes the first line as the header, since
// there are no known column names to look for.
func NewGeneric(name string, mapping *fields.Mapping) *Generic {
	if mapping == nil {
		return &Generic{tabular: tabular{
			name:     name,
			mapping:  fields.NewMapping(name, nil),
			analyzer: table.NewAnalyzer(),
		}}
	}
	return &Generic{tabular: newTabular(name, mapping)}
}

// NewGenericWithConfig creates a command named name whose analyzer uses
// config as given. A nil mapping keeps every column under its raw name.
func NewGenericWithConfig(name string, mapping *fields.Mapping, config table.Config) *Generic {
	if mapping == nil {
		mapping = fields.NewMapping(name, nil)
	}
	return &Generic{tabular: tabular{
		name:     name,
		mapping:  mapping,
		analyzer: table.NewAnalyzerWithConfig(config),
	}}
}

// SupportedArguments returns nil; any arguments are accepted
func (g *Generic) SupportedArguments() []string {
	return nil
}

// GenericRecord is one row under canonical or raw column names.
type GenericRecord struct {
	Name       string    `json:"command"`
	Fields     table.Row `json:"fields"`
	Arguments  []string  `json:"arguments"`
	SourceFile string    `json:"source_file"`
	Line       int       `json:"line"`
}

// CommandName returns the name of the command that produced the record
func (r *GenericRecord) CommandName() string {
	return r.Name
}

// Row returns the record's fields
func (r *GenericRecord) Row() table.Row {
	return r.Fields
}

// Parse turns any headed table into GenericRecords.
func (g *Generic) Parse(ctx context.Context, doc *Document) ([]Record, []Warning, error) {
	tbl, warnings, err := g.parseTable(ctx, doc)
	if err != nil {
		return nil, nil, err
	}

	// an empty mapping knows no column, so every one would warn
	if len(g.mapping.Keywords()) == 0 {
		warnings = nil
	}

	args := ParseArguments(g.Name(), doc.Name)
	records := make([]Record, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		records = append(records, &GenericRecord{
			Name:       g.Name(),
			Fields:     g.mapping.Apply(row),
			Arguments:  args,
			SourceFile: doc.Name,
			Line:       tbl.LineNumbers[i] + 1,
		})
	}
	return records, warnings, nil
}
