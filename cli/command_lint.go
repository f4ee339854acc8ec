package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/squill-sql/squill/linter"
)

// LintCmd represents the lint command
type LintCmd struct {
	Paths   []string `arg:"" help:"Files or directories to lint" type:"path"`
	Dialect string   `help:"Override the configured dialect"`
	Format  string   `help:"Output format" default:"text" enum:"text,json"`
	Workers int      `help:"Number of parallel workers (0 = CPU count)" default:"0"`
}

// Run executes the lint command
func (cmd *LintCmd) Run(ctx *Context) error {
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

	if len(files) == 0 {
		if !ctx.Quiet {
			color.Yellow("No SQL files found")
		}

		return nil
	}

	runner := linter.NewRunner(l, cmd.Workers)

	report, err := runner.LintPaths(context.Background(), files)
	if err != nil {
		return err
	}

	if cmd.Format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		renderReport(report, ctx)
	}

	if report.TotalViolations() > 0 {
		return ErrViolationsFound
	}

	return nil
}
