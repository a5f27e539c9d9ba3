package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/textable/table"
)

// maximum worksheet name length in Excel
const maxSheetName = 31

// exportXLSX writes one worksheet per sheet with a bold, frozen header row.
func (e *Exporter) exportXLSX(sheets []sheet, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if len(sheets) == 0 {
		sheets = []sheet{{name: e.config.SheetName}}
	}

	used := make(map[string]bool)
	for i, s := range sheets {
		name := uniqueSheetName(sheetName(s.name), used)
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}

		if err := e.writeSheet(f, name, s.rows, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func (e *Exporter) writeSheet(f *excelize.File, name string, rows []table.Row, headerStyle int) error {
	columns := Columns(rows)
	line := 1

	if e.config.IncludeHeader && len(columns) > 0 {
		if err := setRow(f, name, line, columns); err != nil {
			return err
		}
		if err := f.SetRowStyle(name, line, line, headerStyle); err != nil {
			return fmt.Errorf("styling header of %q: %w", name, err)
		}
		if err := f.SetPanes(name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing header of %q: %w", name, err)
		}
		line++
	}

	for _, row := range rows {
		if err := setRow(f, name, line, values(row, columns)); err != nil {
			return err
		}
		line++
	}
	return nil
}

func setRow(f *excelize.File, name string, line int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(name, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d of %q: %w", line, name, err)
	}
	return nil
}

// sheetName replaces characters Excel does not allow in sheet names and
// truncates to the maximum length.
func sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(name, "'"))
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// uniqueSheetName appends a counter when name is taken; Excel compares
// sheet names case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
