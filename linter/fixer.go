package linter

import (
	"fmt"
	"sort"

	"github.com/squill-sql/squill/parser"
	"github.com/squill-sql/squill/rules"
	"github.com/squill-sql/squill/segment"
)

// FixOutcome is the result of running fixes to convergence
type FixOutcome struct {
	Text    string      // best-effort fixed text
	Passes  int         // fix passes that applied at least one edit
	Applied int         // total edits applied
	Report  *FileReport // residual violations on the final text
	Err     error       // ErrFixConvergenceExceeded when the pass bound was hit
}

// FixText applies rule fixes to one file's content, iterating
// evaluate-then-apply passes until a pass proposes no edits or the configured
// pass limit is reached. Each pass rebuilds a fresh tree, re-serializes, and
// reparses, so edit positions are always evaluated against current text.
func (l *Linter) FixText(src, path string) (*FixOutcome, error) {
	outcome := &FixOutcome{Text: src}
	text := src

	converged := false

	for pass := 0; pass < l.cfg.MaxFixPasses; pass++ {
		root, _, err := parser.Parse(text, l.dialect)
		if err != nil {
			return nil, err
		}

		if root.Raw() != text {
			return nil, fmt.Errorf("%w: %s", ErrLosslessnessViolated, path)
		}

		accepted := l.collectEdits(root)
		if len(accepted) == 0 {
			converged = true
			break
		}

		fixed := applyEdits(root, accepted)

		text = fixed.Raw()
		outcome.Passes++
		outcome.Applied += len(accepted)
	}

	if !converged {
		// Either the last pass still applied edits or the limit is zero;
		// report, keep the best-effort text.
		outcome.Err = fmt.Errorf("%w: %s after %d passes", ErrFixConvergenceExceeded, path, l.cfg.MaxFixPasses)
	}

	outcome.Text = text

	report, err := l.LintText(text, path)
	if err != nil {
		return nil, err
	}

	outcome.Report = report

	return outcome, nil
}

// collectEdits evaluates the rules once and selects the edits to apply this
// pass. Candidates are ordered by rule declaration order, then source
// position; an edit whose span overlaps an already-accepted edit is deferred
// to the next pass. The result maps anchors to their winning edit.
func (l *Linter) collectEdits(root *segment.Segment) map[*segment.Segment]*rules.Edit {
	eval := rules.Evaluate(root, l.dialect, l.cfg, l.active)
	suppressions := rules.ParseSuppressions(root)

	type candidate struct {
		edit     *rules.Edit
		priority int
		start    int
		code     string
	}

	var candidates []candidate

	for _, result := range eval.Results {
		if result.Edit == nil {
			continue
		}

		if suppressions.Suppressed(result.Violation.RuleCode, result.Violation.Position.Line) {
			continue
		}

		candidates = append(candidates, candidate{
			edit:     result.Edit,
			priority: rules.DeclarationIndex(result.Violation.RuleCode),
			start:    result.Edit.Span().Start,
			code:     result.Violation.RuleCode,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}

		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}

		return candidates[i].code < candidates[j].code
	})

	accepted := map[*segment.Segment]*rules.Edit{}

	var spans []segment.Span

	for _, c := range candidates {
		span := c.edit.Span()

		conflict := false

		for _, other := range spans {
			if span.Overlaps(other) {
				conflict = true
				break
			}
		}

		if conflict {
			continue
		}

		if _, taken := accepted[c.edit.Anchor]; taken {
			continue
		}

		accepted[c.edit.Anchor] = c.edit
		spans = append(spans, span)
	}

	return accepted
}

// applyEdits rebuilds the tree with the accepted edits applied. The old tree
// is left untouched; unchanged leaves are shared between old and new trees.
func applyEdits(root *segment.Segment, edits map[*segment.Segment]*rules.Edit) *segment.Segment {
	rebuilt := rebuild(root, edits)
	if len(rebuilt) == 1 {
		return rebuilt[0]
	}

	return segment.NewNode(segment.TypeFile, rebuilt...)
}

func rebuild(seg *segment.Segment, edits map[*segment.Segment]*rules.Edit) []*segment.Segment {
	if edit, ok := edits[seg]; ok {
		switch edit.Kind {
		case rules.EditReplace:
			return edit.Segments
		case rules.EditDelete:
			return nil
		case rules.EditInsertBefore:
			return append(append([]*segment.Segment{}, edit.Segments...), seg)
		case rules.EditInsertAfter:
			return append([]*segment.Segment{seg}, edit.Segments...)
		}
	}

	if seg.IsLeaf() {
		return []*segment.Segment{seg}
	}

	children := make([]*segment.Segment, 0, len(seg.Children))
	for _, child := range seg.Children {
		children = append(children, rebuild(child, edits)...)
	}

	return []*segment.Segment{segment.NewNode(seg.Type, children...)}
}
