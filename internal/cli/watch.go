package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/export"
	"github.com/tsawler/textable/internal/config"
	"github.com/tsawler/textable/store"
)

var (
	watchDBFlag      string
	watchInitialFlag bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Parse captures as they are written to a directory",
	Long: `Watch parses every capture created or rewritten in DIR and streams its
records to standard output as JSON Lines until interrupted.

Examples:
  # Stream records while a collector writes captures
  textable watch ./captures

  # Parse what is already there first, and keep everything in SQLite
  textable watch ./captures --initial --db captures.db
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return runWatch(ctx, cmd.OutOrStdout(), cfg, args[0], watchDBFlag, watchInitialFlag)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchDBFlag, "db", "", "also save results to this SQLite database (default from config)")
	watchCmd.Flags().BoolVar(&watchInitialFlag, "initial", false, "parse the captures already in DIR before watching")
}

func runWatch(ctx context.Context, w io.Writer, cfg *config.Config, dir, dbPath string, initial bool) error {
	dir = command.ResolveOutputDir(dir)

	if dbPath == "" {
		dbPath = cfg.Store.Path
	}
	var st *store.Store
	if dbPath != "" {
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	stream := export.NewStreamExporter(w)
	handle := func(res command.Result) {
		if res.Err != nil {
			log.Printf("%s: %v", res.Path, res.Err)
			return
		}
		logWarnings(res.Path, res.Warnings)
		for _, rec := range res.Records {
			if err := stream.WriteRecord(rec); err != nil {
				log.Printf("%s: %v", res.Path, err)
				return
			}
		}
		if st != nil {
			if _, err := st.SaveResult(ctx, res); err != nil {
				log.Printf("%s: %v", res.Path, err)
			}
		}
	}

	cw, err := newCaptureWatcher(dir, command.Default(), cfg)
	if err != nil {
		return err
	}
	defer cw.Close()

	if initial {
		if err := cw.runExisting(ctx, handle); err != nil {
			return err
		}
	}

	log.Printf("watching %s", dir)
	err = cw.Run(ctx, handle)
	log.Printf("%d records written", stream.Count())
	return err
}

// captureWatcher parses captures when they are created or written.
type captureWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	registry *command.Registry
	runner   *command.Runner

	// Quiet period after the last event for a file before it is parsed
	debounce time.Duration
}

func newCaptureWatcher(dir string, reg *command.Registry, cfg *config.Config) (*captureWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	runner := command.NewRunner()
	runner.Registry = reg
	runner.ReaderConfig = cfg.ReaderConfig()
	if cfg.Run.Workers > 0 {
		runner.Workers = cfg.Run.Workers
	}

	return &captureWatcher{
		watcher:  watcher,
		dir:      dir,
		registry: reg,
		runner:   runner,
		debounce: 200 * time.Millisecond,
	}, nil
}

// Close stops watching
func (cw *captureWatcher) Close() error {
	return cw.watcher.Close()
}

// runExisting parses the captures already in the directory.
func (cw *captureWatcher) runExisting(ctx context.Context, handle func(command.Result)) error {
	jobs, err := cw.runner.Plan(cw.dir)
	if err != nil {
		return err
	}
	results, err := cw.runner.RunJobs(ctx, jobs)
	for _, res := range results {
		if res.Path != "" {
			handle(res)
		}
	}
	return err
}

// Run handles events until ctx is cancelled. handle is called from this
// goroutine only.
func (cw *captureWatcher) Run(ctx context.Context, handle func(command.Result)) error {
	done := make(chan struct{})
	defer close(done)

	ready := make(chan string, 16)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if cw.registry.Match(filepath.Base(event.Name)) == nil {
				continue
			}

			path := event.Name
			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(cw.debounce, func() {
				select {
				case ready <- path:
				case <-done:
				}
			})

		case path := <-ready:
			delete(timers, path)
			cmd := cw.registry.Match(filepath.Base(path))
			if cmd == nil {
				continue
			}
			results, err := cw.runner.RunJobs(ctx, []command.Job{{Command: cmd, Path: path}})
			if err != nil {
				// cancelled
				return nil
			}
			handle(results[0])

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
