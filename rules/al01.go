package rules

import (
	"github.com/squill-sql/squill/segment"
)

// TableAliasRule (AL01) requires table aliases to use an explicit AS keyword
type TableAliasRule struct{}

func (r *TableAliasRule) Code() string        { return "AL01" }
func (r *TableAliasRule) Name() string        { return "aliasing.table" }
func (r *TableAliasRule) Groups() []string    { return []string{"aliasing"} }
func (r *TableAliasRule) Interest() []string  { return []string{"alias_expression"} }
func (r *TableAliasRule) Description() string { return "Table aliases should use the AS keyword" }

func (r *TableAliasRule) Evaluate(ctx *Context) []Result {
	parent := ctx.Parent()
	if parent == nil || !parent.IsType("table_expression") {
		return nil
	}

	first := ctx.Segment.FirstLeaf()
	if first == nil || first.IsType(segment.TypeKeyword) {
		return nil
	}

	return []Result{{
		Violation: Violation{
			RuleCode:    r.Code(),
			Description: "Implicit table alias; use explicit AS",
			Position:    first.Token.Position,
			Span:        ctx.Segment.Span(),
		},
		Edit: InsertBefore(first, keywordLeaf("AS"), whitespaceLeaf(" ")),
	}}
}
