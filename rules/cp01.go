package rules

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/squill-sql/squill"
	"github.com/squill-sql/squill/segment"
)

// Capitalisation policies shared by CP01 and CP02
const (
	PolicyUpper      = "upper"
	PolicyLower      = "lower"
	PolicyCapitalise = "capitalise"
)

func applyPolicy(policy, value string) string {
	switch policy {
	case PolicyLower:
		return cases.Lower(language.English).String(value)
	case PolicyCapitalise:
		return cases.Title(language.English).String(value)
	default:
		return cases.Upper(language.English).String(value)
	}
}

func validPolicy(policy string) bool {
	switch policy {
	case PolicyUpper, PolicyLower, PolicyCapitalise:
		return true
	default:
		return false
	}
}

// KeywordCapitalisationRule (CP01) enforces a casing policy on keywords,
// including unreserved keywords used in identifier position.
type KeywordCapitalisationRule struct{}

func (r *KeywordCapitalisationRule) Code() string     { return "CP01" }
func (r *KeywordCapitalisationRule) Name() string     { return "capitalisation.keywords" }
func (r *KeywordCapitalisationRule) Groups() []string { return []string{"capitalisation"} }

func (r *KeywordCapitalisationRule) Interest() []string {
	return []string{segment.TypeKeyword, "naked_identifier"}
}

func (r *KeywordCapitalisationRule) Description() string {
	return "Inconsistent capitalisation of keywords"
}

func (r *KeywordCapitalisationRule) ValidateConfig(cfg *squill.Config) error {
	policy := cfg.RuleParam(r.Code(), "capitalisation_policy", PolicyUpper)
	if !validPolicy(policy) {
		return fmt.Errorf("%w: CP01 capitalisation_policy %q", squill.ErrInvalidRuleParameter, policy)
	}

	return nil
}

func (r *KeywordCapitalisationRule) Evaluate(ctx *Context) []Result {
	token := ctx.Segment.Token
	if token == nil || !token.Keyword {
		return nil
	}

	policy := ctx.Param(r.Code(), "capitalisation_policy", PolicyUpper)

	want := applyPolicy(policy, token.Value)
	if want == token.Value {
		return nil
	}

	return []Result{{
		Violation: Violation{
			RuleCode:    r.Code(),
			Description: fmt.Sprintf("Keyword %q should be %q", token.Value, want),
			Position:    token.Position,
			Span:        ctx.Segment.Span(),
		},
		Edit: Replace(ctx.Segment, recasedLeaf(ctx.Segment, want)),
	}}
}
