// Package linter ties the pipeline together: parse, evaluate rules, apply
// fixes to convergence, and report. It owns the error policy for a run: rule
// defects and unparsable regions are reported per file, never fatal; only
// configuration problems abort before any parsing.
package linter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/squill-sql/squill"
	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/parser"
	"github.com/squill-sql/squill/rules"
	"github.com/squill-sql/squill/segment"
)

// Sentinel errors
var (
	// ErrFixConvergenceExceeded is reported when fixing still produced edits at
	// the pass limit. The file is left at its best-effort state.
	ErrFixConvergenceExceeded = errors.New("fix passes exceeded without convergence")
	// ErrLosslessnessViolated marks an internal invariant breach: a parse tree
	// no longer reproduces its own source. It indicates a bug, not bad input.
	ErrLosslessnessViolated = errors.New("parse tree does not reproduce source")
)

// RuleCodeParse is the pseudo rule code carried by unparsable-region records
const RuleCodeParse = "PRS"

// Linter lints and fixes SQL text under one configuration. A Linter is
// immutable after New and safe for concurrent use.
type Linter struct {
	cfg     *squill.Config
	dialect *dialect.Dialect
	active  []rules.Rule
}

// New validates the configuration against the rule registry and loads the
// dialect. All ConfigurationError-class failures surface here, before any
// parsing happens.
func New(cfg *squill.Config) (*Linter, error) {
	d, err := dialect.Load(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	active, err := rules.ForConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Linter{cfg: cfg, dialect: d, active: active}, nil
}

// Dialect returns the loaded dialect
func (l *Linter) Dialect() *dialect.Dialect {
	return l.dialect
}

// ViolationRecord is one reported finding in external shape
type ViolationRecord struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	RuleCode    string `json:"rule"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// FileReport is the lint outcome for one file
type FileReport struct {
	File       string                  `json:"file"`
	Violations []ViolationRecord       `json:"violations"`
	RuleErrors []rules.EvaluationError `json:"-"`
}

// LintText lints one file's content. Unparsable regions are reported as PRS
// records alongside rule violations; both respect noqa suppressions. Empty
// content is valid and yields an empty report.
func (l *Linter) LintText(src, path string) (*FileReport, error) {
	root, unparsable, err := parser.Parse(src, l.dialect)
	if err != nil {
		return nil, err
	}

	if root.Raw() != src {
		return nil, fmt.Errorf("%w: %s", ErrLosslessnessViolated, path)
	}

	return l.report(root, unparsable, path), nil
}

func (l *Linter) report(root *segment.Segment, unparsable []parser.Unparsable, path string) *FileReport {
	report := &FileReport{File: path}

	suppressions := rules.ParseSuppressions(root)

	for _, region := range unparsable {
		if suppressions.Suppressed(RuleCodeParse, region.Position.Line) {
			continue
		}

		report.Violations = append(report.Violations, ViolationRecord{
			File:        path,
			Line:        region.Position.Line,
			Column:      region.Position.Column,
			RuleCode:    RuleCodeParse,
			Description: fmt.Sprintf("Could not parse: %q", region.Raw),
			Severity:    rules.SeverityError,
		})
	}

	eval := rules.Evaluate(root, l.dialect, l.cfg, l.active)
	report.RuleErrors = eval.Errors

	for _, result := range eval.Results {
		violation := result.Violation
		if suppressions.Suppressed(violation.RuleCode, violation.Position.Line) {
			continue
		}

		report.Violations = append(report.Violations, ViolationRecord{
			File:        path,
			Line:        violation.Position.Line,
			Column:      violation.Position.Column,
			RuleCode:    violation.RuleCode,
			Description: violation.Description,
			Severity:    violation.Severity,
		})
	}

	sort.SliceStable(report.Violations, func(i, j int) bool {
		a, b := report.Violations[i], report.Violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}

		if a.Column != b.Column {
			return a.Column < b.Column
		}

		return a.RuleCode < b.RuleCode
	})

	return report
}
