package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tsawler/textable/command"
)

// runProgress reports runner results with a progress bar.
type runProgress struct {
	quiet   bool
	bar     *progressbar.ProgressBar
	files   int
	failed  int
	records int
	start   time.Time
}

// newRunProgress creates a progress reporter for total files, drawing on w.
func newRunProgress(w io.Writer, quiet bool, total int) *runProgress {
	p := &runProgress{quiet: quiet, start: time.Now()}
	if quiet {
		return p
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Parsing captures"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return p
}

// OnResult records one finished file. Runner calls it serially.
func (p *runProgress) OnResult(res command.Result) {
	p.files++
	if res.Err != nil {
		p.failed++
		if !p.quiet {
			log.Printf("%s: %v", res.Path, res.Err)
		}
	} else {
		p.records += len(res.Records)
		if !p.quiet {
			logWarnings(res.Path, res.Warnings)
		}
	}

	if p.bar != nil {
		p.bar.Add(1)
	}
}

// Finish closes the bar and prints a summary.
func (p *runProgress) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
	if p.quiet {
		return
	}
	log.Printf("parsed %d files in %.1fs: %d records, %d failed",
		p.files, time.Since(p.start).Seconds(), p.records, p.failed)
}
