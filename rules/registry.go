package rules

import (
	"fmt"

	"github.com/squill-sql/squill"
)

// builtin lists every shipped rule. The order here is the fix priority: when
// two rules propose overlapping edits in one pass, the rule listed first
// wins and the others are deferred.
var builtin = []Rule{
	&SpacingRule{},
	&EndOfFileRule{},
	&KeywordCapitalisationRule{},
	&IdentifierCapitalisationRule{},
	&TableAliasRule{},
}

// configValidator is implemented by rules with parameter constraints; it runs
// during rule selection, before any parsing
type configValidator interface {
	ValidateConfig(cfg *squill.Config) error
}

// All returns every registered rule in declaration order
func All() []Rule {
	out := make([]Rule, len(builtin))
	copy(out, builtin)

	return out
}

// Lookup returns the rule with the given code
func Lookup(code string) (Rule, bool) {
	for _, rule := range builtin {
		if rule.Code() == code {
			return rule, true
		}
	}

	return nil, false
}

// DeclarationIndex returns a rule's position in the declaration order; the
// fixer uses it as edit priority. Unknown codes sort last.
func DeclarationIndex(code string) int {
	for i, rule := range builtin {
		if rule.Code() == code {
			return i
		}
	}

	return len(builtin)
}

// ForConfig resolves the active rule set for a configuration: every rule
// code the configuration mentions must exist, rule parameters must validate,
// and the include/exclude/enabled selections are applied in that order.
func ForConfig(cfg *squill.Config) ([]Rule, error) {
	for code := range cfg.Rules {
		if _, ok := Lookup(code); !ok {
			return nil, fmt.Errorf("%w: %s", squill.ErrUnknownRuleCode, code)
		}
	}

	for _, code := range append(append([]string{}, cfg.IncludeRules...), cfg.ExcludeRules...) {
		if _, ok := Lookup(code); !ok {
			return nil, fmt.Errorf("%w: %s", squill.ErrUnknownRuleCode, code)
		}
	}

	for _, rule := range builtin {
		if validator, ok := rule.(configValidator); ok {
			if err := validator.ValidateConfig(cfg); err != nil {
				return nil, err
			}
		}
	}

	included := func(code string) bool {
		if len(cfg.IncludeRules) == 0 {
			return true
		}

		for _, c := range cfg.IncludeRules {
			if c == code {
				return true
			}
		}

		return false
	}

	excluded := func(code string) bool {
		for _, c := range cfg.ExcludeRules {
			if c == code {
				return true
			}
		}

		return false
	}

	var active []Rule

	for _, rule := range builtin {
		code := rule.Code()

		if !included(code) || excluded(code) {
			continue
		}

		if rc, ok := cfg.Rules[code]; ok && !rc.IsEnabled() {
			continue
		}

		active = append(active, rule)
	}

	return active, nil
}
