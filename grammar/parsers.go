package grammar

import (
	"regexp"
	"strings"

	"github.com/squill-sql/squill/segment"
	"github.com/squill-sql/squill/tokenizer"
)

// StringParserGrammar matches a single code token whose text equals a
// literal, case-insensitively, producing a leaf with the given segment type
type StringParserGrammar struct {
	Template    string
	SegmentType string
}

// Kw matches a keyword literal and tags the leaf as a keyword
func Kw(template string) *StringParserGrammar {
	return &StringParserGrammar{Template: template, SegmentType: segment.TypeKeyword}
}

// StringParser matches a literal with an explicit segment type tag
func StringParser(template, segmentType string) *StringParserGrammar {
	return &StringParserGrammar{Template: template, SegmentType: segmentType}
}

func (g *StringParserGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	token := ctx.At(pos)
	if !token.IsCode() || !strings.EqualFold(token.Value, g.Template) {
		return noMatch(pos), nil
	}

	leaf := segment.NewLeaf(g.SegmentType, token)

	return Result{Matched: true, Segments: []*segment.Segment{leaf}, NextPos: pos + 1}, nil
}

// RegexParserGrammar matches a single code token whose full text matches a
// compiled pattern
type RegexParserGrammar struct {
	Pattern     *regexp.Regexp
	SegmentType string
}

// RegexParser compiles the pattern (anchored to the whole token) at grammar
// construction time; dialect loading panics on invalid patterns, which is a
// programming error in the dialect definition
func RegexParser(pattern, segmentType string) *RegexParserGrammar {
	return &RegexParserGrammar{
		Pattern:     regexp.MustCompile(`^(?:` + pattern + `)$`),
		SegmentType: segmentType,
	}
}

func (g *RegexParserGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	token := ctx.At(pos)
	if !token.IsCode() || !g.Pattern.MatchString(token.Value) {
		return noMatch(pos), nil
	}

	leaf := segment.NewLeaf(g.SegmentType, token)

	return Result{Matched: true, Segments: []*segment.Segment{leaf}, NextPos: pos + 1}, nil
}

// TypedParserGrammar matches a single token by token type. Reserved keywords
// are rejected when matching WORD tokens unless AllowReserved is set, which
// is how `SELECT SELECT` fails to parse as a column reference while non
// reserved keywords still work as identifiers.
type TypedParserGrammar struct {
	TokenType     tokenizer.TokenType
	SegmentType   string
	AllowReserved bool
}

// Typed matches a token type, producing a leaf with the given segment type
func Typed(tokenType tokenizer.TokenType, segmentType string) *TypedParserGrammar {
	return &TypedParserGrammar{TokenType: tokenType, SegmentType: segmentType}
}

func (g *TypedParserGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	token := ctx.At(pos)
	if token.Type != g.TokenType {
		return noMatch(pos), nil
	}

	if token.Type == tokenizer.WORD && token.Reserved && !g.AllowReserved {
		return noMatch(pos), nil
	}

	leaf := segment.NewLeaf(g.SegmentType, token)

	return Result{Matched: true, Segments: []*segment.Segment{leaf}, NextPos: pos + 1}, nil
}
