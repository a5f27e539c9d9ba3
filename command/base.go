package command

import (
	"context"
	"fmt"

	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/table"
)

// tabular holds what every header-driven command shares.
type tabular struct {
	name     string
	mapping  *fields.Mapping
	analyzer *table.Analyzer
}

func newTabular(name string, mapping *fields.Mapping) tabular {
	config := table.DefaultConfig()
	config.HeaderKeywords = append(append([]string(nil), table.DefaultHeaderKeywords...), mapping.Keywords()...)
	return tabular{
		name:     name,
		mapping:  mapping,
		analyzer: table.NewAnalyzerWithConfig(config),
	}
}

// Name returns the command name
func (c *tabular) Name() string {
	return c.name
}

// Mapping returns the field mapping
func (c *tabular) Mapping() *fields.Mapping {
	return c.mapping
}

// Analyzer returns the analyzer used to find headers
func (c *tabular) Analyzer() *table.Analyzer {
	return c.analyzer
}

// parseTable slices doc and warns about columns the mapping does not know.
func (c *tabular) parseTable(ctx context.Context, doc *Document) (*table.Table, []Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	tbl, err := c.analyzer.Parse(doc.Lines)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", doc.Source(), err)
	}

	var warnings []Warning
	for _, col := range c.mapping.Unmapped(tbl.ColumnNames()) {
		warnings = append(warnings, Warning{
			Source:  doc.Name,
			Line:    tbl.HeaderIndex + 1,
			Column:  col,
			Message: "no canonical field, kept under its raw name",
		})
	}
	return tbl, warnings, nil
}
