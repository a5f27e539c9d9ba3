package textable_test

import (
	"context"
	"fmt"
	"log"

	"github.com/tsawler/textable"
	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/table"
)

const psOutput = `  PID TTY          TIME CMD
    1 ?        00:00:01 init
  812 pts/0    00:00:00 bash -l
`

func ExampleFromString() {
	rows, _, err := textable.FromString(psOutput).Rows()
	if err != nil {
		log.Fatal(err)
	}

	for _, row := range rows {
		fmt.Printf("%s %q\n", row.Get("PID"), row.Get("CMD"))
	}
	// Output:
	// 1 "init"
	// 812 "bash -l"
}

func ExampleExtractor_Columns() {
	spans := textable.Must(textable.FromString(psOutput).Columns())

	for _, s := range spans {
		fmt.Println(s.Name, s.Start)
	}
	// Output:
	// PID 2
	// TTY 6
	// TIME 19
	// CMD 24
}

func ExampleExtractor_Records() {
	records, warnings, err := textable.FromString(psOutput).
		Mapping(fields.PS).
		Records()
	if err != nil {
		log.Fatal(err)
	}
	if len(warnings) > 0 {
		log.Println(textable.FormatWarnings(warnings))
	}

	fmt.Println(records[1]["pid"], records[1]["tty"], records[1]["command"])
	// Output:
	// 812 pts/0 bash -l
}

func ExampleExtractor_HeaderKeywords() {
	out := "Tasks: 2 total, 1 running\n" + psOutput

	rows := textable.MustRows(textable.FromString(out).
		HeaderKeywords(table.DefaultHeaderKeywords...).
		Rows())

	fmt.Println(len(rows), rows[0].Get("TIME"))
	// Output:
	// 2 00:00:01
}

func ExampleExtractor_Parse() {
	records, _, err := textable.FromString(psOutput).
		Command("ps").
		Parse(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	for _, rec := range records {
		fmt.Println(rec.CommandName(), rec.Row().Get("pid"), rec.Row().Get("command"))
	}
	// Output:
	// ps 1 init
	// ps 812 bash -l
}
