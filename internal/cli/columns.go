package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/table"
)

// columnsCmd represents the columns command
var columnsCmd = &cobra.Command{
	Use:   "columns FILE",
	Short: "Show the columns inferred from a capture's header",
	Long: `Columns prints each column found in the header of a capture with the
display cells it covers. The last column has no end; it takes the rest of
every line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		return runColumns(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, args[0])
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}

func runColumns(in io.Reader, w io.Writer, cfg *config.Config, path string) error {
	spans, err := newExtractor(cfg, path, in).Columns()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSTART\tEND")
	for i, s := range spans {
		end := "-"
		if s.End != table.Unbounded {
			end = fmt.Sprint(s.End)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, s.Name, s.Start, end)
	}
	return tw.Flush()
}
