package rules

import (
	"fmt"

	"github.com/squill-sql/squill"
)

// IdentifierCapitalisationRule (CP02) enforces a casing policy on unquoted
// identifiers. Quoted identifiers are case-significant and never touched.
type IdentifierCapitalisationRule struct{}

func (r *IdentifierCapitalisationRule) Code() string     { return "CP02" }
func (r *IdentifierCapitalisationRule) Name() string     { return "capitalisation.identifiers" }
func (r *IdentifierCapitalisationRule) Groups() []string { return []string{"capitalisation"} }

func (r *IdentifierCapitalisationRule) Interest() []string {
	return []string{"naked_identifier"}
}

func (r *IdentifierCapitalisationRule) Description() string {
	return "Inconsistent capitalisation of unquoted identifiers"
}

func (r *IdentifierCapitalisationRule) ValidateConfig(cfg *squill.Config) error {
	policy := cfg.RuleParam(r.Code(), "capitalisation_policy", PolicyLower)
	if !validPolicy(policy) {
		return fmt.Errorf("%w: CP02 capitalisation_policy %q", squill.ErrInvalidRuleParameter, policy)
	}

	return nil
}

func (r *IdentifierCapitalisationRule) Evaluate(ctx *Context) []Result {
	token := ctx.Segment.Token
	if token == nil {
		return nil
	}

	policy := ctx.Param(r.Code(), "capitalisation_policy", PolicyLower)

	want := applyPolicy(policy, token.Value)
	if want == token.Value {
		return nil
	}

	return []Result{{
		Violation: Violation{
			RuleCode:    r.Code(),
			Description: fmt.Sprintf("Identifier %q should be %q", token.Value, want),
			Position:    token.Position,
			Span:        ctx.Segment.Span(),
		},
		Edit: Replace(ctx.Segment, recasedLeaf(ctx.Segment, want)),
	}}
}
