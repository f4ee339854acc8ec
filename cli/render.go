package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/squill-sql/squill/linter"
)

func severityColor(severity string) *color.Color {
	switch severity {
	case "warning":
		return color.New(color.FgYellow)
	case "info":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgRed)
	}
}

// renderReport prints the human-readable lint report
func renderReport(report *linter.Report, ctx *Context) {
	filesWithFindings := 0

	for _, file := range report.Files {
		if len(file.Violations) == 0 && len(file.RuleErrors) == 0 {
			continue
		}

		filesWithFindings++

		for _, v := range file.Violations {
			code := severityColor(v.Severity).Sprint(v.RuleCode)
			fmt.Printf("%s:%d:%d  %s  %s\n", v.File, v.Line, v.Column, code, v.Description)
		}

		for _, ruleErr := range file.RuleErrors {
			color.Yellow("%s: rule %s failed: %v", file.File, ruleErr.RuleCode, ruleErr.Err)
		}
	}

	if ctx.Quiet {
		return
	}

	total := report.TotalViolations()
	if total == 0 {
		color.Green("All checks passed (%d files)", len(report.Files))
	} else {
		color.Red("%d violation(s) in %d of %d files", total, filesWithFindings, len(report.Files))
	}

	if ctx.Verbose {
		fmt.Printf("run %s\n", report.RunID)
	}
}
