package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/squill-sql/squill/linter"
)

// FixCmd represents the fix command
type FixCmd struct {
	Paths   []string `arg:"" help:"Files or directories to fix" type:"path"`
	Dialect string   `help:"Override the configured dialect"`
	DryRun  bool     `help:"Print fixed output instead of rewriting files"`
}

// Run executes the fix command
func (cmd *FixCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Dialect != "" {
		config.Dialect = cmd.Dialect
	}

	l, err := linter.New(config)
	if err != nil {
		return err
	}

	files, err := collectSQLFiles(cmd.Paths)
	if err != nil {
		return err
	}

	fixedFiles := 0
	totalEdits := 0
	remaining := 0

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		outcome, err := l.FixText(string(data), path)
		if err != nil {
			return err
		}

		if outcome.Err != nil && !ctx.Quiet {
			color.Yellow("%s: %v", path, outcome.Err)
		}

		remaining += len(outcome.Report.Violations)

		if outcome.Applied == 0 {
			continue
		}

		totalEdits += outcome.Applied
		fixedFiles++

		if cmd.DryRun {
			fmt.Print(outcome.Text)
			continue
		}

		if err := os.WriteFile(path, []byte(outcome.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		if ctx.Verbose {
			color.Blue("fixed %s (%d edits in %d passes)", path, outcome.Applied, outcome.Passes)
		}
	}

	if !ctx.Quiet && !cmd.DryRun {
		if totalEdits == 0 {
			color.Green("Nothing to fix (%d files)", len(files))
		} else {
			color.Green("Applied %d edit(s) across %d file(s)", totalEdits, fixedFiles)
		}

		if remaining > 0 {
			color.Yellow("%d violation(s) remain; run lint for details", remaining)
		}
	}

	return nil
}
