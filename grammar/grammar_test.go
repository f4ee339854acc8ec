package grammar

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

type table map[string]Definition

func (t table) Rule(name string) (Definition, bool) {
	def, ok := t[name]
	return def, ok
}

func (t table) add(name, segmentType string, match Matchable) {
	t[name] = Definition{Name: name, SegmentType: segmentType, Match: match}
}

func tokensFor(sql string) []tokenizer.Token {
	profile := &tokenizer.LexProfile{
		Name:             "test",
		IdentifierQuotes: []rune{'"'},
		StringQuotes:     []rune{'\''},
		Keywords: map[string]tokenizer.KeywordInfo{
			"SELECT": {Keyword: true, Reserved: true},
			"FROM":   {Keyword: true, Reserved: true},
			"AS":     {Keyword: true, Reserved: true},
		},
	}

	return tokenizer.NewSqlTokenizer(sql, profile).AllTokens()
}

func contextFor(sql string, rules table) *Context {
	brackets := []BracketPair{{Start: tokenizer.OPENED_PARENS, End: tokenizer.CLOSED_PARENS}}
	return NewContext(tokensFor(sql), rules, brackets)
}

func rawOf(segments []*segment.Segment) string {
	var out string
	for _, seg := range segments {
		out += seg.Raw()
	}

	return out
}

func TestSequenceCapturesTrivia(t *testing.T) {
	ctx := contextFor("SELECT  /* hint */ 1", nil)

	seq := Seq(Kw("SELECT"), Typed(tokenizer.NUMBER, segment.TypeNumericLiteral))

	result, err := seq.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "SELECT  /* hint */ 1", rawOf(result.Segments))
	assert.Equal(t, len(ctx.Tokens), result.NextPos)
}

func TestSequenceRewindsOnFailure(t *testing.T) {
	ctx := contextFor("SELECT FROM", nil)

	seq := Seq(Kw("SELECT"), Typed(tokenizer.NUMBER, segment.TypeNumericLiteral))

	result, err := seq.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, result.NextPos)
}

func TestOneOfFirstMatchWins(t *testing.T) {
	ctx := contextFor("SELECT", nil)

	alt := OneOf(
		StringParser("SELECT", "first_choice"),
		StringParser("SELECT", "second_choice"),
	)

	result, err := alt.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "first_choice", result.Segments[0].Type)
}

func TestOptional(t *testing.T) {
	ctx := contextFor("1", nil)

	opt := Opt(Kw("SELECT"))

	result, err := opt.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, 0, result.NextPos)
	assert.Equal(t, 0, len(result.Segments))
}

func TestAnyNumberOf(t *testing.T) {
	ctx := contextFor("1 2 3", nil)

	number := Typed(tokenizer.NUMBER, segment.TypeNumericLiteral)

	result, err := AnyNumberOf(1, number).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "1 2 3", rawOf(result.Segments))

	// Max bounds the repetition
	capped := &AnyNumberOfGrammar{Inner: number, Min: 1, Max: 2}

	result, err = capped.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "1 2", rawOf(result.Segments))

	// Min not reached fails and rewinds
	ctx = contextFor("SELECT", nil)

	result, err = AnyNumberOf(1, number).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, result.NextPos)
}

func TestDelimited(t *testing.T) {
	word := Typed(tokenizer.WORD, segment.TypeWord)
	comma := Typed(tokenizer.COMMA, segment.TypeComma)

	ctx := contextFor("a, b ,c", nil)

	result, err := Delimited(word, comma).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "a, b ,c", rawOf(result.Segments))

	// Trailing delimiter is left unconsumed by default
	ctx = contextFor("a, b,", nil)

	result, err = Delimited(word, comma).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "a, b", rawOf(result.Segments))

	// ... and consumed when the dialect allows it
	trailing := &DelimitedGrammar{Element: word, Delimiter: comma, MinElements: 1, AllowTrailing: true}

	result, err = trailing.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "a, b,", rawOf(result.Segments))
}

func TestBracketed(t *testing.T) {
	number := Typed(tokenizer.NUMBER, segment.TypeNumericLiteral)

	ctx := contextFor("( 42 )", nil)

	result, err := Bracketed(number).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "( 42 )", rawOf(result.Segments))
}

func TestBracketedMissingCloseRecovers(t *testing.T) {
	number := Typed(tokenizer.NUMBER, segment.TypeNumericLiteral)

	ctx := contextFor("(42 more stuff", nil)

	result, err := Bracketed(number).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, 1, len(result.Segments))
	assert.Equal(t, segment.TypeUnparsable, result.Segments[0].Type)
	assert.Equal(t, "(42 more stuff", result.Segments[0].Raw())
	assert.Equal(t, len(ctx.Tokens), result.NextPos)
}

func TestRefWrapsNamedSegments(t *testing.T) {
	rules := table{}
	rules.add("NumberLiteral", "literal", Typed(tokenizer.NUMBER, segment.TypeNumericLiteral))

	ctx := contextFor("7", rules)

	result, err := Ref("NumberLiteral").MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "literal", result.Segments[0].Type)
	assert.Equal(t, "7", result.Segments[0].Raw())
}

func TestRefUnresolved(t *testing.T) {
	ctx := contextFor("7", table{})

	_, err := Ref("Missing").MatchAt(ctx, 0)
	assert.IsError(t, err, ErrUnresolvedRuleReference)
}

func TestCyclicGrammarTerminates(t *testing.T) {
	// expression := number | '(' expression ')'
	rules := table{}
	rules.add("Expression", "expression", OneOf(
		Typed(tokenizer.NUMBER, segment.TypeNumericLiteral),
		Bracketed(Ref("Expression")),
	))

	ctx := contextFor("((7))", rules)

	result, err := ctx.MatchRule("Expression", 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, "((7))", rawOf(result.Segments))
}

func TestLeftRecursionHitsDepthGuard(t *testing.T) {
	rules := table{}
	rules.add("Loop", "", Seq(Ref("Loop"), Kw("SELECT")))

	ctx := contextFor("SELECT", rules)

	_, err := ctx.MatchRule("Loop", 0)
	assert.IsError(t, err, ErrGrammarTooDeep)
}

func TestMemoizationIsDeterministic(t *testing.T) {
	rules := table{}
	rules.add("NumberLiteral", "literal", Typed(tokenizer.NUMBER, segment.TypeNumericLiteral))

	ctx := contextFor("7", rules)

	first, err := ctx.MatchRule("NumberLiteral", 0)
	assert.NoError(t, err)

	second, err := ctx.MatchRule("NumberLiteral", 0)
	assert.NoError(t, err)
	assert.Equal(t, first.NextPos, second.NextPos)
	assert.Equal(t, first.Matched, second.Matched)
}

func TestTypedRejectsReservedAsIdentifier(t *testing.T) {
	ctx := contextFor("SELECT", nil)

	result, err := Typed(tokenizer.WORD, segment.TypeWord).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.False(t, result.Matched)

	allowed := &TypedParserGrammar{TokenType: tokenizer.WORD, SegmentType: segment.TypeWord, AllowReserved: true}

	result, err = allowed.MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
}

func TestRegexParser(t *testing.T) {
	ctx := contextFor("users_tbl", nil)

	result, err := RegexParser(`[a-z_]+`, segment.TypeWord).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)

	ctx = contextFor("42", nil)

	result, err = RegexParser(`[a-z_]+`, segment.TypeWord).MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.False(t, result.Matched)
}

func TestNothing(t *testing.T) {
	ctx := contextFor("SELECT", nil)

	result, err := Nothing().MatchAt(ctx, 0)
	assert.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Equal(t, 0, result.NextPos)
}
