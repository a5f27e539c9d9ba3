package command

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/textable/reader"
)

// Result is the outcome of parsing one capture file.
type Result struct {
	Document *Document
	Command  string
	Path     string
	Records  []Record
	Warnings []Warning

	// Err is set when the file could not be read or had no header. The
	// rest of the run is unaffected.
	Err error
}

// Runner parses every capture in a directory.
type Runner struct {
	// Commands to run; defaults to the global registry
	Registry *Registry

	// Maximum number of files parsed at once; defaults to GOMAXPROCS
	Workers int

	// Reader configuration for capture files
	ReaderConfig reader.Config

	// Called once per finished file, from the worker goroutine
	OnResult func(Result)
}

// NewRunner creates a runner over the global registry
func NewRunner() *Runner {
	return &Runner{
		Registry:     Default(),
		Workers:      runtime.GOMAXPROCS(0),
		ReaderConfig: reader.DefaultConfig(),
	}
}

// Job is one file to parse with one command
type Job struct {
	Command Command
	Path    string
}

// Plan lists the jobs for dir, grouped by command in registry order. A
// missing directory returns ErrNoOutputDir.
func (r *Runner) Plan(dir string) ([]Job, error) {
	reg := r.registry()

	var jobs []Job
	for _, name := range reg.List() {
		paths, err := Discover(dir, name)
		if err != nil {
			return nil, err
		}
		cmd := reg.Get(name)
		for _, p := range paths {
			jobs = append(jobs, Job{Command: cmd, Path: p})
		}
	}
	return jobs, nil
}

// Run discovers and parses every capture in dir. Results are returned in
// plan order. Per-file failures are reported in Result.Err; only
// cancellation or a missing directory fails the run.
func (r *Runner) Run(ctx context.Context, dir string) ([]Result, error) {
	jobs, err := r.Plan(dir)
	if err != nil {
		return nil, err
	}
	return r.RunJobs(ctx, jobs)
}

// RunJobs parses the given jobs in parallel.
func (r *Runner) RunJobs(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	var mu sync.Mutex // serializes OnResult
	for i, job := range jobs {
		i, job := i, job
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			res := r.runOne(gCtx, job)
			results[i] = res

			if r.OnResult != nil {
				mu.Lock()
				r.OnResult(res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, job Job) Result {
	res := Result{Command: job.Command.Name(), Path: job.Path}

	doc, err := LoadDocument(job.Path, r.ReaderConfig)
	if err != nil {
		res.Err = err
		return res
	}
	res.Document = doc

	res.Records, res.Warnings, res.Err = job.Command.Parse(ctx, doc)
	return res
}

func (r *Runner) registry() *Registry {
	if r.Registry == nil {
		return Default()
	}
	return r.Registry
}

func (r *Runner) workers() int {
	if r.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Workers
}
