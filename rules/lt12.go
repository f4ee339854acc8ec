package rules

import (
	"github.com/squill-sql/squill/segment"
)

// EndOfFileRule (LT12) requires files to end with exactly one trailing
// newline. A missing newline gets one inserted; extra blank trailing lines
// are removed one per pass.
type EndOfFileRule struct{}

func (r *EndOfFileRule) Code() string        { return "LT12" }
func (r *EndOfFileRule) Name() string        { return "layout.end_of_file" }
func (r *EndOfFileRule) Groups() []string    { return []string{"layout"} }
func (r *EndOfFileRule) Interest() []string  { return []string{segment.TypeFile} }
func (r *EndOfFileRule) Description() string { return "Files must end with a single trailing newline" }

func (r *EndOfFileRule) Evaluate(ctx *Context) []Result {
	leaves := ctx.Segment.Leaves()
	if len(leaves) == 0 {
		return nil
	}

	last := leaves[len(leaves)-1]

	if !last.IsType(segment.TypeNewline) {
		return []Result{{
			Violation: Violation{
				RuleCode:    r.Code(),
				Description: "File does not end with a trailing newline",
				Position:    last.Token.Position,
				Span:        segment.Span{Start: last.Token.End(), End: last.Token.End()},
			},
			Edit: InsertAfter(last, newlineLeaf()),
		}}
	}

	if len(leaves) >= 2 && leaves[len(leaves)-2].IsType(segment.TypeNewline) {
		return []Result{{
			Violation: Violation{
				RuleCode:    r.Code(),
				Description: "File ends with more than one trailing newline",
				Position:    last.Token.Position,
				Span:        last.Span(),
			},
			Edit: Delete(last),
		}}
	}

	return nil
}
