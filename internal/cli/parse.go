package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/tsawler/textable"
	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/export"
	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/table"
)

var (
	parseCommandFlag   string
	parseFormatFlag    string
	parseCanonicalFlag bool
	parsePrettyFlag    bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Parse captures and print their rows",
	Long: `Parse reads one or more captures and writes their rows to standard output.
Use "-" to read standard input.

By default each row keeps the column names of its header. With --canonical
each capture is parsed by the registered command matching its file name
(ps_aux.txt is parsed by ps) and rows carry canonical field names.

Examples:
  # Print ps output as JSON Lines
  textable parse ps_aux.txt

  # Canonical records as CSV
  textable parse --canonical --format csv captures/ps*.txt

  # Force a command for input without a telling name
  ps -ef | textable parse --command ps -
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}

		name := parseFormatFlag
		if name == "" {
			name = cfg.Output.Format
		}
		format, err := export.ParseFormat(name)
		if err != nil {
			return err
		}

		opts := parseOptions{
			command:   parseCommandFlag,
			format:    format,
			canonical: parseCanonicalFlag || cfg.Output.Canonical,
			pretty:    parsePrettyFlag || cfg.Output.Pretty,
		}
		return runParse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts, args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseCommandFlag, "command", "c", "", "parse with this registered command (implies --canonical)")
	parseCmd.Flags().StringVarP(&parseFormatFlag, "format", "f", "", "output format: jsonl, json, csv, tsv or xlsx (default from config)")
	parseCmd.Flags().BoolVar(&parseCanonicalFlag, "canonical", false, "emit canonical field names through the matching command")
	parseCmd.Flags().BoolVar(&parsePrettyFlag, "pretty", false, "indent JSON output")
}

type parseOptions struct {
	command   string
	format    export.Format
	canonical bool
	pretty    bool
}

// runParse parses every path and writes all rows to w in one export.
func runParse(ctx context.Context, in io.Reader, w io.Writer, cfg *config.Config, opts parseOptions, paths []string) error {
	canonical := opts.canonical || opts.command != ""

	var rows []table.Row
	var records []command.Record
	for _, path := range paths {
		ext := newExtractor(cfg, path, in)
		if opts.command != "" {
			ext = ext.Command(opts.command)
		}

		if canonical {
			recs, warnings, err := ext.Parse(ctx)
			if err != nil {
				return err
			}
			logWarnings(path, warnings)
			records = append(records, recs...)
			continue
		}

		rs, warnings, err := ext.Rows()
		if err != nil {
			return err
		}
		logWarnings(path, warnings)
		rows = append(rows, rs...)
	}

	exportConfig := export.ConfigFor(opts.format)
	exportConfig.PrettyPrint = opts.pretty
	exporter := export.NewExporterWithConfig(exportConfig)

	if canonical {
		return exporter.ExportRecords(records, w)
	}
	return exporter.ExportRows(rows, w)
}

// newExtractor opens path, or reads in when path is "-", with the
// configured parse and input settings.
func newExtractor(cfg *config.Config, path string, in io.Reader) *textable.Extractor {
	var ext *textable.Extractor
	if path == "-" {
		ext = textable.FromReader(in, "")
	} else {
		ext = textable.Open(path)
	}
	return ext.
		Config(cfg.TableConfig()).
		ReaderConfig(cfg.ReaderConfig()).
		OCRLanguage(cfg.Input.OCRLang)
}
