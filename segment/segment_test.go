package segment

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/squill-sql/squill/tokenizer"
)

func leafTokens(sql string) []tokenizer.Token {
	profile := &tokenizer.LexProfile{
		Name:             "test",
		IdentifierQuotes: []rune{'"'},
		StringQuotes:     []rune{'\''},
		Keywords: map[string]tokenizer.KeywordInfo{
			"SELECT": {Keyword: true, Reserved: true},
			"FROM":   {Keyword: true, Reserved: true},
		},
	}

	return tokenizer.NewSqlTokenizer(sql, profile).AllTokens()
}

func treeFor(sql string) *Segment {
	tokens := leafTokens(sql)

	leaves := make([]*Segment, 0, len(tokens))
	for _, token := range tokens {
		leaves = append(leaves, LeafFor(token))
	}

	return NewNode(TypeFile, NewNode(TypeStatement, leaves...))
}

func TestRawReproducesSource(t *testing.T) {
	sources := []string{
		"SELECT  a, b FROM t -- done\n",
		"",
		"   \n\t",
		"SELECT 'x''y' FROM \"T\"",
	}

	for _, src := range sources {
		assert.Equal(t, src, treeFor(src).Raw())
	}
}

func TestLeafTyping(t *testing.T) {
	tree := treeFor("SELECT a FROM t")
	leaves := tree.Leaves()

	assert.Equal(t, TypeKeyword, leaves[0].Type)
	assert.Equal(t, TypeWhitespace, leaves[1].Type)
	assert.Equal(t, TypeWord, leaves[2].Type)
	assert.True(t, leaves[1].IsTrivia())
	assert.False(t, leaves[0].IsTrivia())
}

func TestSpanAndPosition(t *testing.T) {
	tree := treeFor("SELECT a\nFROM t")

	span := tree.Span()
	assert.Equal(t, 0, span.Start)
	assert.Equal(t, 15, span.End)

	statement := tree.Children[0]
	assert.Equal(t, 1, statement.Position().Line)

	empty := NewNode(TypeStatement)
	assert.Equal(t, Span{}, empty.Span())
	assert.Equal(t, 1, empty.Position().Line)
}

func TestFindAll(t *testing.T) {
	tree := treeFor("SELECT a, b FROM t")

	words := tree.FindAll(TypeWord)
	assert.Equal(t, 3, len(words)) // a, b, t

	keywords := tree.FindAll(TypeKeyword)
	assert.Equal(t, 2, len(keywords)) // SELECT, FROM
}

func TestWalkPrune(t *testing.T) {
	tree := treeFor("SELECT a")

	var visited []string

	tree.Walk(func(seg *Segment, ancestors []*Segment) bool {
		visited = append(visited, seg.Type)
		return seg.Type != TypeStatement // prune below statement
	})

	assert.Equal(t, []string{TypeFile, TypeStatement}, visited)
}

func TestWalkAncestors(t *testing.T) {
	tree := treeFor("SELECT a")

	tree.Walk(func(seg *Segment, ancestors []*Segment) bool {
		if seg.IsLeaf() {
			assert.Equal(t, 2, len(ancestors))
			assert.Equal(t, TypeFile, ancestors[0].Type)
			assert.Equal(t, TypeStatement, ancestors[1].Type)
		}

		return true
	})
}

func TestSpanOverlaps(t *testing.T) {
	assert.True(t, Span{0, 5}.Overlaps(Span{4, 8}))
	assert.False(t, Span{0, 5}.Overlaps(Span{5, 8}))
	assert.True(t, Span{3, 3}.Overlaps(Span{0, 5}))  // insertion point inside
	assert.True(t, Span{5, 5}.Overlaps(Span{5, 8}))  // insertion at boundary
	assert.False(t, Span{9, 9}.Overlaps(Span{0, 5}))
}
