// Package rules defines the lint rule contract and the built-in rule set.
// Rules are tree visitors: they inspect segments handed to them by the
// crawler and return violations, optionally paired with proposed edits. Rules
// never mutate the tree; every change is expressed as an Edit and applied by
// the fixer.
package rules

import (
	"errors"

	"github.com/squill-sql/squill"
	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

// ErrRuleEvaluation marks a defect inside a rule implementation (a recovered
// panic). It is reported per rule and never aborts the lint run.
var ErrRuleEvaluation = errors.New("rule evaluation failed")

// Severity levels for violations
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Rule is the contract every lint rule implements. Interest declares the
// segment type tags the rule wants to visit; an empty list means every
// segment. Evaluate is called once per matching segment and must not retain
// the context.
type Rule interface {
	Code() string
	Name() string
	Description() string
	Groups() []string
	Interest() []string
	Evaluate(ctx *Context) []Result
}

// Context is the per-visit evaluation context: the segment under inspection,
// its ancestor chain (root first), and read-only run state.
type Context struct {
	Dialect   *dialect.Dialect
	Config    *squill.Config
	Root      *segment.Segment
	Segment   *segment.Segment
	Ancestors []*segment.Segment
}

// Parent returns the immediate parent of the current segment, or nil at the
// root
func (ctx *Context) Parent() *segment.Segment {
	if len(ctx.Ancestors) == 0 {
		return nil
	}

	return ctx.Ancestors[len(ctx.Ancestors)-1]
}

// SiblingIndex returns the current segment's index among its parent's
// children, or -1 at the root
func (ctx *Context) SiblingIndex() int {
	parent := ctx.Parent()
	if parent == nil {
		return -1
	}

	for i, child := range parent.Children {
		if child == ctx.Segment {
			return i
		}
	}

	return -1
}

// Param returns a string rule parameter from the configuration
func (ctx *Context) Param(code, name, fallback string) string {
	if ctx.Config == nil {
		return fallback
	}

	return ctx.Config.RuleParam(code, name, fallback)
}

// Violation is one reported finding
type Violation struct {
	RuleCode    string
	Description string
	Position    tokenizer.Position
	Span        segment.Span
	Severity    string
}

// Result pairs a violation with its proposed fix, when the rule has one
type Result struct {
	Violation Violation
	Edit      *Edit
}

// EditKind enumerates the supported tree edits
type EditKind int

const (
	EditReplace EditKind = iota
	EditInsertBefore
	EditInsertAfter
	EditDelete
)

// Edit is a proposed tree change. The anchor references a segment of the
// current tree by identity, so edits stay valid across other non-overlapping
// edits within the same pass.
type Edit struct {
	Kind     EditKind
	Anchor   *segment.Segment
	Segments []*segment.Segment
}

// Replace proposes swapping the anchor for new segments
func Replace(anchor *segment.Segment, with ...*segment.Segment) *Edit {
	return &Edit{Kind: EditReplace, Anchor: anchor, Segments: with}
}

// InsertBefore proposes inserting segments immediately before the anchor
func InsertBefore(anchor *segment.Segment, segments ...*segment.Segment) *Edit {
	return &Edit{Kind: EditInsertBefore, Anchor: anchor, Segments: segments}
}

// InsertAfter proposes inserting segments immediately after the anchor
func InsertAfter(anchor *segment.Segment, segments ...*segment.Segment) *Edit {
	return &Edit{Kind: EditInsertAfter, Anchor: anchor, Segments: segments}
}

// Delete proposes removing the anchor
func Delete(anchor *segment.Segment) *Edit {
	return &Edit{Kind: EditDelete, Anchor: anchor}
}

// Span returns the source range the edit touches. Insertions are zero-width
// at the insertion point, so two insertions at the same point conflict while
// insertions at different points never do.
func (e *Edit) Span() segment.Span {
	span := e.Anchor.Span()

	switch e.Kind {
	case EditInsertBefore:
		return segment.Span{Start: span.Start, End: span.Start}
	case EditInsertAfter:
		return segment.Span{Start: span.End, End: span.End}
	default:
		return span
	}
}

// Leaf fabrication helpers for edits. Positions are left zero; the fixer
// reparses after every pass, which reassigns real positions.

func whitespaceLeaf(value string) *segment.Segment {
	return segment.NewLeaf(segment.TypeWhitespace, tokenizer.Token{
		Type:  tokenizer.WHITESPACE,
		Value: value,
	})
}

func newlineLeaf() *segment.Segment {
	return segment.NewLeaf(segment.TypeNewline, tokenizer.Token{
		Type:  tokenizer.NEWLINE,
		Value: "\n",
	})
}

func keywordLeaf(value string) *segment.Segment {
	return segment.NewLeaf(segment.TypeKeyword, tokenizer.Token{
		Type:    tokenizer.WORD,
		Value:   value,
		Keyword: true,
	})
}

// recasedLeaf clones a word leaf with new casing, preserving the segment type
// tag and keyword flags
func recasedLeaf(leaf *segment.Segment, value string) *segment.Segment {
	token := *leaf.Token
	token.Value = value

	return segment.NewLeaf(leaf.Type, token)
}
