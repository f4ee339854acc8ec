// Package segment defines the lossless parse tree node. Every leaf wraps
// exactly one token (whitespace and comments included) and every structural
// node owns an ordered child sequence, so concatenating the leaves of any
// subtree reproduces the covered source slice byte-for-byte.
package segment

import (
	"strings"

	"github.com/squill-sql/squill/tokenizer"
)

// Common segment type tags. Dialect grammars add their own structural tags
// (select_statement, from_clause, ...); these are the ones produced directly
// by the matcher and the tokenizer mapping.
const (
	TypeFile       = "file"
	TypeStatement  = "statement"
	TypeUnparsable = "unparsable"

	TypeWhitespace       = "whitespace"
	TypeNewline          = "newline"
	TypeComment          = "comment"
	TypeWord             = "word"
	TypeKeyword          = "keyword"
	TypeQuotedIdentifier = "quoted_identifier"
	TypeStringLiteral    = "string_literal"
	TypeNumericLiteral   = "numeric_literal"
	TypeComma            = "comma"
	TypeSemicolon        = "semicolon"
	TypeDot              = "dot"
	TypeStartBracket     = "start_bracket"
	TypeEndBracket       = "end_bracket"
	TypeOperator         = "operator"
	TypeUnknown          = "unknown"
)

// Span is a half-open byte range [Start, End) in the original source
type Span struct {
	Start int
	End   int
}

// Segment is a node in the lossless parse tree. A Segment is either a leaf
// (Token non-nil, no children) or a structural node (children, no token).
// Segments are immutable once a parse completes; fixes build new trees.
type Segment struct {
	Type     string
	Token    *tokenizer.Token
	Children []*Segment
}

// NewLeaf creates a leaf segment wrapping a single token
func NewLeaf(segmentType string, token tokenizer.Token) *Segment {
	return &Segment{Type: segmentType, Token: &token}
}

// NewNode creates a structural segment
func NewNode(segmentType string, children ...*Segment) *Segment {
	return &Segment{Type: segmentType, Children: children}
}

// LeafFor creates a leaf with the default type tag for the token's type
func LeafFor(token tokenizer.Token) *Segment {
	return NewLeaf(DefaultLeafType(token), token)
}

// DefaultLeafType maps a token to its default segment type tag
func DefaultLeafType(token tokenizer.Token) string {
	switch token.Type {
	case tokenizer.WHITESPACE:
		return TypeWhitespace
	case tokenizer.NEWLINE:
		return TypeNewline
	case tokenizer.LINE_COMMENT, tokenizer.BLOCK_COMMENT:
		return TypeComment
	case tokenizer.WORD:
		if token.Keyword {
			return TypeKeyword
		}
		return TypeWord
	case tokenizer.QUOTED_IDENTIFIER:
		return TypeQuotedIdentifier
	case tokenizer.STRING:
		return TypeStringLiteral
	case tokenizer.NUMBER:
		return TypeNumericLiteral
	case tokenizer.COMMA:
		return TypeComma
	case tokenizer.SEMICOLON:
		return TypeSemicolon
	case tokenizer.DOT:
		return TypeDot
	case tokenizer.OPENED_PARENS:
		return TypeStartBracket
	case tokenizer.CLOSED_PARENS:
		return TypeEndBracket
	case tokenizer.UNKNOWN:
		return TypeUnknown
	default:
		return TypeOperator
	}
}

// IsLeaf reports whether the segment wraps a single token
func (s *Segment) IsLeaf() bool {
	return s.Token != nil
}

// IsTrivia reports whether the segment is a whitespace/newline/comment leaf
func (s *Segment) IsTrivia() bool {
	return s.Token != nil && s.Token.IsTrivia()
}

// IsType reports whether the segment has one of the given type tags
func (s *Segment) IsType(types ...string) bool {
	for _, t := range types {
		if s.Type == t {
			return true
		}
	}

	return false
}

// Raw returns the exact source text covered by this segment
func (s *Segment) Raw() string {
	if s.Token != nil {
		return s.Token.Value
	}

	var builder strings.Builder
	s.appendRaw(&builder)

	return builder.String()
}

func (s *Segment) appendRaw(builder *strings.Builder) {
	if s.Token != nil {
		builder.WriteString(s.Token.Value)
		return
	}

	for _, child := range s.Children {
		child.appendRaw(builder)
	}
}

// Leaves returns all leaf segments in source order
func (s *Segment) Leaves() []*Segment {
	var leaves []*Segment

	s.Walk(func(seg *Segment, _ []*Segment) bool {
		if seg.IsLeaf() {
			leaves = append(leaves, seg)
		}

		return true
	})

	return leaves
}

// FirstLeaf returns the first leaf in the subtree, or nil for an empty node
func (s *Segment) FirstLeaf() *Segment {
	if s.Token != nil {
		return s
	}

	for _, child := range s.Children {
		if leaf := child.FirstLeaf(); leaf != nil {
			return leaf
		}
	}

	return nil
}

// LastLeaf returns the last leaf in the subtree, or nil for an empty node
func (s *Segment) LastLeaf() *Segment {
	if s.Token != nil {
		return s
	}

	for i := len(s.Children) - 1; i >= 0; i-- {
		if leaf := s.Children[i].LastLeaf(); leaf != nil {
			return leaf
		}
	}

	return nil
}

// Span returns the byte range this segment covers. An empty structural
// segment yields a zero span.
func (s *Segment) Span() Span {
	first := s.FirstLeaf()
	if first == nil {
		return Span{}
	}

	last := s.LastLeaf()

	return Span{Start: first.Token.Position.Offset, End: last.Token.End()}
}

// Position returns the source position of the segment's first leaf
func (s *Segment) Position() tokenizer.Position {
	if leaf := s.FirstLeaf(); leaf != nil {
		return leaf.Token.Position
	}

	return tokenizer.Position{Line: 1, Column: 1}
}

// Overlaps reports whether two spans share at least one byte. Zero-width
// spans (pure insertions) overlap when they touch the same point.
func (a Span) Overlaps(b Span) bool {
	if a.Start == a.End || b.Start == b.End {
		return a.Start <= b.End && b.Start <= a.End
	}

	return a.Start < b.End && b.Start < a.End
}

// Walk performs a depth-first traversal. fn receives the segment and its
// ancestor chain (root first); returning false prunes the subtree. The
// ancestors slice is reused between calls; callers must copy it to retain it.
func (s *Segment) Walk(fn func(seg *Segment, ancestors []*Segment) bool) {
	var walk func(seg *Segment, ancestors []*Segment)

	walk = func(seg *Segment, ancestors []*Segment) {
		if !fn(seg, ancestors) {
			return
		}

		if len(seg.Children) == 0 {
			return
		}

		childAncestors := append(ancestors, seg)
		for _, child := range seg.Children {
			walk(child, childAncestors)
		}
	}

	walk(s, nil)
}

// FindAll returns every descendant (including s itself) with one of the
// given type tags, in source order
func (s *Segment) FindAll(types ...string) []*Segment {
	var found []*Segment

	s.Walk(func(seg *Segment, _ []*Segment) bool {
		if seg.IsType(types...) {
			found = append(found, seg)
		}

		return true
	})

	return found
}
