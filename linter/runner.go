package linter

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Report aggregates the outcome of linting a set of files under one run
// identifier
type Report struct {
	RunID string        `json:"run_id"`
	Files []*FileReport `json:"files"`
}

// TotalViolations counts violations across every file in the run
func (r *Report) TotalViolations() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Violations)
	}

	return total
}

// Runner fans file linting out across workers. Linting independent files is
// embarrassingly parallel: the linter, dialect, and rule registry are all
// read-only after construction.
type Runner struct {
	linter  *Linter
	workers int
}

// NewRunner creates a Runner; workers <= 0 means one worker per CPU
func NewRunner(l *Linter, workers int) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{linter: l, workers: workers}
}

// LintPaths lints the given files concurrently. Results keep the order of the
// input paths regardless of completion order. Unreadable files fail the run;
// empty files produce an empty report entry.
func (r *Runner) LintPaths(ctx context.Context, paths []string) (*Report, error) {
	reports := make([]*FileReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			report, err := r.linter.LintText(string(data), path)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{RunID: uuid.NewString(), Files: reports}, nil
}
