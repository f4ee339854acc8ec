// Package parser is the file-level parse driver: it tokenizes source with the
// dialect's lexer profile, splits the token stream into statements on
// top-level semicolons, matches each statement against the dialect's root
// grammar rule, and assembles a lossless file tree. Regions the grammar
// cannot account for are wrapped in unparsable segments instead of failing
// the parse, so one malformed statement never hides the rest of the file.
package parser

import (
	"github.com/squill-sql/squill/dialect"
	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

// Unparsable describes one region of source the grammar could not account
// for. The region itself is still present in the tree (wrapped in an
// unparsable segment), so these are diagnostics, not omissions.
type Unparsable struct {
	Position tokenizer.Position
	Raw      string
}

// Parse builds the lossless parse tree for src under the given dialect. The
// returned root is a file segment whose leaf concatenation reproduces src
// byte-for-byte. The error return covers engine failures (recursion guard);
// malformed SQL is reported through the Unparsable list instead.
func Parse(src string, d *dialect.Dialect) (*segment.Segment, []Unparsable, error) {
	tokens := tokenizer.NewSqlTokenizer(src, d.LexProfile()).AllTokens()
	balanced := balancedBrackets(tokens, d.Brackets())

	var children []*segment.Segment

	start := 0
	depth := 0

	for i, token := range tokens {
		switch {
		case isOpening(token.Type, d.Brackets()):
			if balanced[i] {
				depth++
			}
		case isClosing(token.Type, d.Brackets()):
			if balanced[i] && depth > 0 {
				depth--
			}
		case token.Type == tokenizer.SEMICOLON && depth == 0:
			parsed, err := parseStatement(tokens[start:i], d)
			if err != nil {
				return nil, nil, err
			}

			children = append(children, parsed...)
			children = append(children, segment.LeafFor(token))
			start = i + 1
		}
	}

	parsed, err := parseStatement(tokens[start:], d)
	if err != nil {
		return nil, nil, err
	}

	children = append(children, parsed...)

	root := segment.NewNode(segment.TypeFile, children...)

	return root, collectUnparsable(root), nil
}

// parseStatement matches one semicolon-delimited region and returns the
// file-level segments covering exactly its tokens: leading trivia leaves, the
// statement node, trailing trivia leaves, and an unparsable segment for any
// remainder the grammar did not consume.
func parseStatement(tokens []tokenizer.Token, d *dialect.Dialect) ([]*segment.Segment, error) {
	var out []*segment.Segment

	pos := 0
	for pos < len(tokens) && tokens[pos].IsTrivia() {
		out = append(out, segment.LeafFor(tokens[pos]))
		pos++
	}

	if pos == len(tokens) {
		return out, nil
	}

	rest := tokens[pos:]
	ctx := grammar.NewContext(rest, d, d.Brackets())

	result, err := ctx.MatchRule(d.RootRule(), 0)
	if err != nil {
		return nil, err
	}

	if !result.Matched {
		return append(out, unparsableFor(rest)), nil
	}

	out = append(out, segment.NewNode(segment.TypeStatement, result.Segments...))

	next := result.NextPos
	for next < len(rest) && rest[next].IsTrivia() {
		out = append(out, segment.LeafFor(rest[next]))
		next++
	}

	if next < len(rest) {
		out = append(out, unparsableFor(rest[next:]))
	}

	return out, nil
}

func unparsableFor(tokens []tokenizer.Token) *segment.Segment {
	leaves := make([]*segment.Segment, 0, len(tokens))
	for _, token := range tokens {
		leaves = append(leaves, segment.LeafFor(token))
	}

	return segment.NewNode(segment.TypeUnparsable, leaves...)
}

// collectUnparsable gathers diagnostics for every unparsable region in the
// tree, including ones produced inside bracket recovery, in source order
func collectUnparsable(root *segment.Segment) []Unparsable {
	var problems []Unparsable

	root.Walk(func(seg *segment.Segment, _ []*segment.Segment) bool {
		if seg.IsType(segment.TypeUnparsable) {
			problems = append(problems, Unparsable{
				Position: seg.Position(),
				Raw:      seg.Raw(),
			})

			return false
		}

		return true
	})

	return problems
}

// balancedBrackets marks the bracket tokens that have a matching partner.
// Only matched pairs suppress statement splitting: a semicolon behind an
// unclosed bracket still terminates its statement, so the statements after
// it parse on their own.
func balancedBrackets(tokens []tokenizer.Token, pairs []grammar.BracketPair) []bool {
	balanced := make([]bool, len(tokens))

	type open struct {
		index int
		end   tokenizer.TokenType
	}

	var stack []open

	for i, token := range tokens {
		if end, ok := closingFor(token.Type, pairs); ok {
			stack = append(stack, open{index: i, end: end})
			continue
		}

		if !isClosing(token.Type, pairs) {
			continue
		}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if top.end == token.Type {
				balanced[top.index] = true
				balanced[i] = true

				break
			}
		}
	}

	return balanced
}

func closingFor(t tokenizer.TokenType, pairs []grammar.BracketPair) (tokenizer.TokenType, bool) {
	for _, pair := range pairs {
		if pair.Start == t {
			return pair.End, true
		}
	}

	return 0, false
}

func isOpening(t tokenizer.TokenType, pairs []grammar.BracketPair) bool {
	for _, pair := range pairs {
		if pair.Start == t {
			return true
		}
	}

	return false
}

func isClosing(t tokenizer.TokenType, pairs []grammar.BracketPair) bool {
	for _, pair := range pairs {
		if pair.End == t {
			return true
		}
	}

	return false
}
