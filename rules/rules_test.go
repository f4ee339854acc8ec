package rules

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/squill-sql/squill"
	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/parser"
	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

func fakeToken(value string, offset int) tokenizer.Token {
	return tokenizer.Token{
		Type:     tokenizer.WHITESPACE,
		Value:    value,
		Position: tokenizer.Position{Line: 1, Column: offset + 1, Offset: offset},
	}
}

func lintSource(t *testing.T, src string, cfg *squill.Config) Evaluation {
	t.Helper()

	d, err := dialect.Load(cfg.Dialect)
	assert.NoError(t, err)

	root, _, err := parser.Parse(src, d)
	assert.NoError(t, err)

	active, err := ForConfig(cfg)
	assert.NoError(t, err)

	return Evaluate(root, d, cfg, active)
}

func onlyRules(codes ...string) *squill.Config {
	cfg := squill.DefaultConfig()
	cfg.IncludeRules = codes

	return cfg
}

func codesOf(eval Evaluation) []string {
	codes := make([]string, 0, len(eval.Results))
	for _, result := range eval.Results {
		codes = append(codes, result.Violation.RuleCode)
	}

	return codes
}

func TestSpacingRule(t *testing.T) {
	eval := lintSource(t, "SELECT  1", onlyRules("LT01"))

	assert.Equal(t, 1, len(eval.Results))

	violation := eval.Results[0].Violation
	assert.Equal(t, "LT01", violation.RuleCode)
	assert.Equal(t, 1, violation.Position.Line)
	assert.Equal(t, 8, violation.Position.Column)

	edit := eval.Results[0].Edit
	assert.NotZero(t, edit)
	assert.Equal(t, EditReplace, edit.Kind)
	assert.Equal(t, " ", edit.Segments[0].Token.Value)
}

func TestSpacingRuleIgnoresIndentationAndSingleSpaces(t *testing.T) {
	for _, src := range []string{
		"SELECT a\n    FROM t",
		"SELECT a FROM t",
		"SELECT a FROM t   \nWHERE a = 1",
	} {
		eval := lintSource(t, src, onlyRules("LT01"))
		assert.Equal(t, 0, len(eval.Results))
	}
}

func TestSpacingRuleFlagsTabs(t *testing.T) {
	eval := lintSource(t, "SELECT\t1", onlyRules("LT01"))

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, "LT01", eval.Results[0].Violation.RuleCode)
}

func TestSpacingRuleMissingSpaceAfterComma(t *testing.T) {
	eval := lintSource(t, "SELECT a,b FROM t\n", onlyRules("LT01"))

	assert.Equal(t, 1, len(eval.Results))

	violation := eval.Results[0].Violation
	assert.Equal(t, "LT01", violation.RuleCode)
	assert.Equal(t, 1, violation.Position.Line)
	assert.Equal(t, 10, violation.Position.Column)

	edit := eval.Results[0].Edit
	assert.NotZero(t, edit)
	assert.Equal(t, EditInsertAfter, edit.Kind)
	assert.Equal(t, " ", edit.Segments[0].Token.Value)
}

func TestSpacingRuleCommaBeforeTriviaNotFlagged(t *testing.T) {
	for _, src := range []string{
		"SELECT a, b FROM t\n",
		"SELECT a,\n  b FROM t\n",
		"SELECT a, /* mid */ b FROM t\n",
	} {
		eval := lintSource(t, src, onlyRules("LT01"))
		assert.Equal(t, 0, len(eval.Results))
	}
}

func TestEndOfFileRule(t *testing.T) {
	eval := lintSource(t, "SELECT 1;", onlyRules("LT12"))
	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, EditInsertAfter, eval.Results[0].Edit.Kind)

	eval = lintSource(t, "SELECT 1;\n", onlyRules("LT12"))
	assert.Equal(t, 0, len(eval.Results))

	eval = lintSource(t, "SELECT 1;\n\n\n", onlyRules("LT12"))
	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, EditDelete, eval.Results[0].Edit.Kind)
}

func TestKeywordCapitalisation(t *testing.T) {
	eval := lintSource(t, "select 1\n", onlyRules("CP01"))

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, "CP01", eval.Results[0].Violation.RuleCode)
	assert.Equal(t, "SELECT", eval.Results[0].Edit.Segments[0].Token.Value)

	eval = lintSource(t, "SELECT 1\n", onlyRules("CP01"))
	assert.Equal(t, 0, len(eval.Results))
}

func TestKeywordCapitalisationPolicy(t *testing.T) {
	cfg := onlyRules("CP01")
	cfg.Rules = map[string]squill.RuleConfig{
		"CP01": {Params: map[string]any{"capitalisation_policy": "lower"}},
	}

	eval := lintSource(t, "SELECT 1\n", cfg)

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, "select", eval.Results[0].Edit.Segments[0].Token.Value)
}

func TestIdentifierCapitalisation(t *testing.T) {
	eval := lintSource(t, "SELECT Foo FROM t\n", onlyRules("CP02"))

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, "CP02", eval.Results[0].Violation.RuleCode)
	assert.Equal(t, "foo", eval.Results[0].Edit.Segments[0].Token.Value)
}

func TestQuotedIdentifiersUntouched(t *testing.T) {
	eval := lintSource(t, "SELECT \"Foo\" FROM t\n", onlyRules("CP02"))
	assert.Equal(t, 0, len(eval.Results))
}

func TestTableAliasRule(t *testing.T) {
	eval := lintSource(t, "SELECT * FROM orders o\n", onlyRules("AL01"))

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, "AL01", eval.Results[0].Violation.RuleCode)

	edit := eval.Results[0].Edit
	assert.Equal(t, EditInsertBefore, edit.Kind)
	assert.Equal(t, "AS", edit.Segments[0].Token.Value)

	eval = lintSource(t, "SELECT * FROM orders AS o\n", onlyRules("AL01"))
	assert.Equal(t, 0, len(eval.Results))
}

func TestColumnAliasNotFlagged(t *testing.T) {
	// AL01 covers table aliases only
	eval := lintSource(t, "SELECT a b FROM t\n", onlyRules("AL01"))
	assert.Equal(t, 0, len(eval.Results))
}

func TestResultsSortedByPositionThenCode(t *testing.T) {
	eval := lintSource(t, "select  Foo from t\n", onlyRules("LT01", "CP01", "CP02"))

	codes := codesOf(eval)
	assert.True(t, len(codes) >= 3)

	for i := 1; i < len(eval.Results); i++ {
		a, b := eval.Results[i-1].Violation, eval.Results[i].Violation
		if a.Span.Start == b.Span.Start {
			assert.True(t, a.RuleCode <= b.RuleCode)
		} else {
			assert.True(t, a.Span.Start < b.Span.Start)
		}
	}
}

func TestForConfigUnknownRule(t *testing.T) {
	cfg := squill.DefaultConfig()
	cfg.Rules = map[string]squill.RuleConfig{"ZZ99": {}}

	_, err := ForConfig(cfg)
	assert.IsError(t, err, squill.ErrUnknownRuleCode)

	cfg = squill.DefaultConfig()
	cfg.ExcludeRules = []string{"ZZ99"}

	_, err = ForConfig(cfg)
	assert.IsError(t, err, squill.ErrUnknownRuleCode)
}

func TestForConfigInvalidParameter(t *testing.T) {
	cfg := squill.DefaultConfig()
	cfg.Rules = map[string]squill.RuleConfig{
		"CP01": {Params: map[string]any{"capitalisation_policy": "shouty"}},
	}

	_, err := ForConfig(cfg)
	assert.IsError(t, err, squill.ErrInvalidRuleParameter)
}

func TestForConfigSelection(t *testing.T) {
	cfg := squill.DefaultConfig()

	active, err := ForConfig(cfg)
	assert.NoError(t, err)
	assert.Equal(t, len(All()), len(active))

	cfg.ExcludeRules = []string{"AL01"}

	active, err = ForConfig(cfg)
	assert.NoError(t, err)

	for _, rule := range active {
		assert.NotEqual(t, "AL01", rule.Code())
	}

	disabled := false
	cfg = squill.DefaultConfig()
	cfg.Rules = map[string]squill.RuleConfig{"LT12": {Enabled: &disabled}}

	active, err = ForConfig(cfg)
	assert.NoError(t, err)

	for _, rule := range active {
		assert.NotEqual(t, "LT12", rule.Code())
	}
}

type panickyRule struct{}

func (r *panickyRule) Code() string        { return "XX01" }
func (r *panickyRule) Name() string        { return "test.panic" }
func (r *panickyRule) Description() string { return "always panics" }
func (r *panickyRule) Groups() []string    { return nil }
func (r *panickyRule) Interest() []string  { return nil }
func (r *panickyRule) Evaluate(ctx *Context) []Result {
	panic("boom")
}

func TestPanickingRuleIsIsolated(t *testing.T) {
	cfg := squill.DefaultConfig()

	d, err := dialect.Load("ansi")
	assert.NoError(t, err)

	root, _, err := parser.Parse("select  1\n", d)
	assert.NoError(t, err)

	active := append([]Rule{&panickyRule{}}, All()...)
	eval := Evaluate(root, d, cfg, active)

	// The broken rule is reported once; the healthy rules still fire
	assert.Equal(t, 1, len(eval.Errors))
	assert.Equal(t, "XX01", eval.Errors[0].RuleCode)
	assert.IsError(t, eval.Errors[0].Err, ErrRuleEvaluation)
	assert.True(t, len(eval.Results) >= 2)
}

func TestSeverityFromConfig(t *testing.T) {
	cfg := onlyRules("LT01")
	cfg.Rules = map[string]squill.RuleConfig{"LT01": {Severity: "warning"}}

	eval := lintSource(t, "SELECT  1", cfg)

	assert.Equal(t, 1, len(eval.Results))
	assert.Equal(t, SeverityWarning, eval.Results[0].Violation.Severity)
}

func TestEditSpans(t *testing.T) {
	leaf := segment.NewLeaf(segment.TypeWhitespace, fakeToken("  ", 7))

	replace := Replace(leaf, whitespaceLeaf(" "))
	assert.Equal(t, segment.Span{Start: 7, End: 9}, replace.Span())

	before := InsertBefore(leaf, keywordLeaf("AS"))
	assert.Equal(t, segment.Span{Start: 7, End: 7}, before.Span())

	after := InsertAfter(leaf, newlineLeaf())
	assert.Equal(t, segment.Span{Start: 9, End: 9}, after.Span())
}
