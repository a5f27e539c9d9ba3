package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/export"
	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/store"
)

var (
	runDBFlag      string
	runOutFlag     string
	runFormatFlag  string
	runWorkersFlag int
	runQuietFlag   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run DIR",
	Short: "Parse every capture in a directory",
	Long: `Run discovers the captures of every registered command in DIR, or in
DIR/command_outputs when it exists, and parses them in parallel. A capture
belongs to a command when its file name is the command name, optionally
followed by "." or "_" and more text: ps.txt, ps_aux.txt, lsof_-i.txt.

Files that fail to parse are reported and skipped.

Examples:
  # Parse everything and print JSON Lines
  textable run ./captures

  # Save to SQLite and write a workbook with one sheet per command
  textable run ./captures --db captures.db --out captures.xlsx
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		opts := runOptions{
			db:      runDBFlag,
			out:     runOutFlag,
			format:  runFormatFlag,
			workers: runWorkersFlag,
			quiet:   runQuietFlag,
		}
		return runRun(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, opts, args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDBFlag, "db", "", "save results to this SQLite database (default from config)")
	runCmd.Flags().StringVarP(&runOutFlag, "out", "o", "", "write records to this file instead of standard output")
	runCmd.Flags().StringVarP(&runFormatFlag, "format", "f", "", "output format (default from --out extension or config)")
	runCmd.Flags().IntVarP(&runWorkersFlag, "workers", "w", 0, "files parsed at once (default from config, then CPU count)")
	runCmd.Flags().BoolVarP(&runQuietFlag, "quiet", "q", false, "disable the progress bar and summary")
}

type runOptions struct {
	db      string
	out     string
	format  string
	workers int
	quiet   bool
}

func runRun(ctx context.Context, w, progressOut io.Writer, cfg *config.Config, opts runOptions, dir string) error {
	format, err := outputFormat(opts.format, opts.out, cfg.Output.Format)
	if err != nil {
		return err
	}

	runner := command.NewRunner()
	runner.ReaderConfig = cfg.ReaderConfig()
	if cfg.Run.Workers > 0 {
		runner.Workers = cfg.Run.Workers
	}
	if opts.workers > 0 {
		runner.Workers = opts.workers
	}

	jobs, err := runner.Plan(command.ResolveOutputDir(dir))
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		if !opts.quiet {
			log.Printf("no captures found in %s", dir)
		}
		return nil
	}

	dbPath := opts.db
	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	progress := newRunProgress(progressOut, opts.quiet, len(jobs))
	var saveErr error
	runner.OnResult = func(res command.Result) {
		progress.OnResult(res)
		if st == nil || saveErr != nil {
			return
		}
		if _, err := st.SaveResult(ctx, res); err != nil {
			saveErr = fmt.Errorf("saving %s: %w", res.Path, err)
		}
	}

	results, err := runner.RunJobs(ctx, jobs)
	progress.Finish()
	if err != nil {
		return err
	}
	if saveErr != nil {
		return saveErr
	}

	var records []command.Record
	for _, res := range results {
		if res.Err == nil {
			records = append(records, res.Records...)
		}
	}

	exportConfig := export.ConfigFor(format)
	exportConfig.PrettyPrint = cfg.Output.Pretty
	exporter := export.NewExporterWithConfig(exportConfig)

	if opts.out != "" {
		return exporter.ExportToFile(records, opts.out)
	}
	return exporter.ExportRecords(records, w)
}

// outputFormat picks the export format: the named one, else the one the
// output file's extension names, else the fallback.
func outputFormat(name, out, fallback string) (export.Format, error) {
	if name != "" {
		return export.ParseFormat(name)
	}
	if ext := strings.TrimPrefix(filepath.Ext(out), "."); ext != "" {
		if f, err := export.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return export.ParseFormat(fallback)
}
