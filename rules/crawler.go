package rules

import (
	"fmt"
	"sort"

	"github.com/squill-sql/squill"
	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/segment"
)

// EvaluationError records a rule that failed internally during a run. One
// broken rule never prevents the others from reporting.
type EvaluationError struct {
	RuleCode string
	Err      error
}

// Evaluation is the outcome of one full rule pass over a tree
type Evaluation struct {
	Results []Result
	Errors  []EvaluationError
}

// Evaluate runs the active rules over the tree in a single shared depth-first
// crawl, dispatching each segment to the rules that declared interest in its
// type tag. Results are sorted by source position, then rule code. A rule
// that panics is disabled for the remainder of the run and reported as an
// EvaluationError.
func Evaluate(root *segment.Segment, d *dialect.Dialect, cfg *squill.Config, active []Rule) Evaluation {
	var eval Evaluation

	failed := map[string]bool{}

	root.Walk(func(seg *segment.Segment, ancestors []*segment.Segment) bool {
		for _, rule := range active {
			if failed[rule.Code()] {
				continue
			}

			interests := rule.Interest()
			if len(interests) > 0 && !seg.IsType(interests...) {
				continue
			}

			ctx := &Context{
				Dialect:   d,
				Config:    cfg,
				Root:      root,
				Segment:   seg,
				Ancestors: ancestors,
			}

			results, err := runRule(rule, ctx)
			if err != nil {
				failed[rule.Code()] = true
				eval.Errors = append(eval.Errors, EvaluationError{RuleCode: rule.Code(), Err: err})

				continue
			}

			for i := range results {
				results[i].Violation.Severity = severityFor(cfg, rule.Code())
			}

			eval.Results = append(eval.Results, results...)
		}

		return true
	})

	sort.SliceStable(eval.Results, func(i, j int) bool {
		a, b := eval.Results[i].Violation, eval.Results[j].Violation
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}

		return a.RuleCode < b.RuleCode
	})

	return eval
}

func runRule(rule Rule, ctx *Context) (results []Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s panicked: %v", ErrRuleEvaluation, rule.Code(), r)
		}
	}()

	return rule.Evaluate(ctx), nil
}

func severityFor(cfg *squill.Config, code string) string {
	if cfg != nil {
		if rc, ok := cfg.Rules[code]; ok && rc.Severity != "" {
			return rc.Severity
		}
	}

	return SeverityError
}
