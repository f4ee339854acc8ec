// Package grammar implements the combinator-based matching engine. Grammar
// rules are data: named definitions built from a small set of combinators
// (Sequence, OneOf, AnyNumberOf, Delimited, Bracketed, Ref, ...) stored in a
// per-dialect rule table. Rules reference each other by name and references
// resolve lazily at match time, so rule graphs may contain cycles
// (statement -> expression -> statement) without diverging.
package grammar

import (
	"errors"
	"fmt"

	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

// Sentinel errors
var (
	// ErrGrammarTooDeep is returned when rule recursion exceeds the depth
	// guard; it indicates either a pathological grammar or pathological
	// input, and fails the parse closed instead of blowing the stack.
	ErrGrammarTooDeep = errors.New("grammar recursion too deep")
	// ErrUnresolvedRuleReference is returned when a Ref names a rule that the
	// dialect's table does not define. Dialect loading validates references
	// up front, so hitting this at match time indicates a table built
	// without validation.
	ErrUnresolvedRuleReference = errors.New("unresolved grammar rule reference")
)

// MaxDepth bounds rule recursion per match context
const MaxDepth = 500

// Definition is a named grammar rule. SegmentType, when non-empty, wraps the
// matched children in a structural segment carrying that type tag; an empty
// SegmentType splices the children into the caller (a pure grouping alias).
type Definition struct {
	Name        string
	SegmentType string
	Match       Matchable
}

// RuleTable resolves rule names. Implemented by dialect.Dialect.
type RuleTable interface {
	Rule(name string) (Definition, bool)
}

// BracketPair associates an opening token type with its closing counterpart
type BracketPair struct {
	Start tokenizer.TokenType
	End   tokenizer.TokenType
}

// Result is the outcome of one match attempt. An unmatched result leaves the
// caller's cursor where it was, so alternatives can be tried without any
// separate rollback step.
type Result struct {
	Matched  bool
	Segments []*segment.Segment
	NextPos  int
}

func noMatch(pos int) Result {
	return Result{NextPos: pos}
}

// Matchable is the contract all grammar variants implement
type Matchable interface {
	// MatchAt attempts to match starting at pos. On failure the returned
	// Result has Matched=false and NextPos=pos. The only errors are the
	// depth guard and unresolved references; ordinary mismatch is not an
	// error.
	MatchAt(ctx *Context, pos int) (Result, error)
}

type memoKey struct {
	rule string
	pos  int
}

// Context carries the per-parse state for one statement match: the token
// slice, the dialect rule table, bracket pairs, the (rule, position)
// memoization table, and the recursion depth guard. Contexts are cheap and
// single-use; dialects themselves are immutable and shared.
type Context struct {
	Tokens   []tokenizer.Token
	Rules    RuleTable
	Brackets []BracketPair

	depth int
	memo  map[memoKey]Result
}

// NewContext creates a match context over a token slice
func NewContext(tokens []tokenizer.Token, rules RuleTable, brackets []BracketPair) *Context {
	return &Context{
		Tokens:   tokens,
		Rules:    rules,
		Brackets: brackets,
		memo:     make(map[memoKey]Result),
	}
}

// At returns the token at pos, or an EOF token past the end
func (ctx *Context) At(pos int) tokenizer.Token {
	if pos >= len(ctx.Tokens) {
		return tokenizer.Token{Type: tokenizer.EOF}
	}

	return ctx.Tokens[pos]
}

// SkipTrivia returns the first position at or after pos holding a non-trivia
// token
func (ctx *Context) SkipTrivia(pos int) int {
	for pos < len(ctx.Tokens) && ctx.Tokens[pos].IsTrivia() {
		pos++
	}

	return pos
}

// leavesFor returns leaf segments for the tokens in [from, to)
func (ctx *Context) leavesFor(from, to int) []*segment.Segment {
	if from >= to {
		return nil
	}

	leaves := make([]*segment.Segment, 0, to-from)
	for i := from; i < to; i++ {
		leaves = append(leaves, segment.LeafFor(ctx.Tokens[i]))
	}

	return leaves
}

// closingFor returns the closing token type for an opening bracket token
func (ctx *Context) closingFor(t tokenizer.TokenType) (tokenizer.TokenType, bool) {
	for _, pair := range ctx.Brackets {
		if pair.Start == t {
			return pair.End, true
		}
	}

	return tokenizer.EOF, false
}

// MatchRule matches the named rule at pos, memoizing on (name, pos)
func (ctx *Context) MatchRule(name string, pos int) (Result, error) {
	key := memoKey{rule: name, pos: pos}
	if cached, ok := ctx.memo[key]; ok {
		return cached, nil
	}

	def, ok := ctx.Rules.Rule(name)
	if !ok {
		return noMatch(pos), fmt.Errorf("%w: %s", ErrUnresolvedRuleReference, name)
	}

	ctx.depth++
	if ctx.depth > MaxDepth {
		ctx.depth--
		return noMatch(pos), fmt.Errorf("%w: while matching %s", ErrGrammarTooDeep, name)
	}

	result, err := def.Match.MatchAt(ctx, pos)
	ctx.depth--

	if err != nil {
		return noMatch(pos), err
	}

	if result.Matched && def.SegmentType != "" && len(result.Segments) > 0 {
		result.Segments = []*segment.Segment{
			segment.NewNode(def.SegmentType, result.Segments...),
		}
	}

	ctx.memo[key] = result

	return result, nil
}
