package rules

import (
	"fmt"
	"strings"

	"github.com/squill-sql/squill/segment"
)

// SpacingRule (LT01) flags whitespace between code elements that is not a
// single space: runs of spaces and tabs collapse to one space, and a comma
// directly followed by code gets a space inserted after it. Indentation
// (whitespace after a newline) and trailing whitespace before a newline are
// out of its scope.
type SpacingRule struct{}

func (r *SpacingRule) Code() string     { return "LT01" }
func (r *SpacingRule) Name() string     { return "layout.spacing" }
func (r *SpacingRule) Groups() []string { return []string{"layout"} }
func (r *SpacingRule) Interest() []string {
	return []string{segment.TypeWhitespace, segment.TypeComma}
}
func (r *SpacingRule) Description() string { return "Inappropriate spacing between code elements" }

func (r *SpacingRule) Evaluate(ctx *Context) []Result {
	if ctx.Segment.IsType(segment.TypeComma) {
		return r.evaluateComma(ctx)
	}

	if ctx.Segment.Token.Value == " " {
		return nil
	}

	parent := ctx.Parent()
	if parent == nil {
		return nil
	}

	index := ctx.SiblingIndex()
	if index <= 0 || index == len(parent.Children)-1 {
		return nil
	}

	prev := parent.Children[index-1].LastLeaf()
	next := parent.Children[index+1].FirstLeaf()

	if prev == nil || next == nil || !prev.Token.IsCode() || !next.Token.IsCode() {
		return nil
	}

	// Report at the first redundant character
	position := ctx.Segment.Token.Position
	if len(ctx.Segment.Token.Value) > 1 {
		position.Column++
		position.Offset++
	}

	description := fmt.Sprintf("Expected a single space, found %q", ctx.Segment.Token.Value)
	if strings.ContainsRune(ctx.Segment.Token.Value, '\t') {
		description = "Expected a single space, found tab characters"
	}

	return []Result{{
		Violation: Violation{
			RuleCode:    r.Code(),
			Description: description,
			Position:    position,
			Span:        ctx.Segment.Span(),
		},
		Edit: Replace(ctx.Segment, whitespaceLeaf(" ")),
	}}
}

// evaluateComma flags a comma directly followed by code on the same line
func (r *SpacingRule) evaluateComma(ctx *Context) []Result {
	parent := ctx.Parent()
	if parent == nil {
		return nil
	}

	index := ctx.SiblingIndex()
	if index < 0 || index == len(parent.Children)-1 {
		return nil
	}

	next := parent.Children[index+1].FirstLeaf()
	if next == nil || !next.Token.IsCode() {
		return nil
	}

	end := ctx.Segment.Token.End()

	return []Result{{
		Violation: Violation{
			RuleCode:    r.Code(),
			Description: "Expected a single space after comma",
			Position:    next.Token.Position,
			Span:        segment.Span{Start: end, End: end},
		},
		Edit: InsertAfter(ctx.Segment, whitespaceLeaf(" ")),
	}}
}
