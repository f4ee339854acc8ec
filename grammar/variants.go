package grammar

import (
	"github.com/squill-sql/squill/segment"
)

// SequenceGrammar matches its elements in order. Trivia (whitespace,
// newlines, comments) between elements is consumed implicitly and captured
// into the result, never discarded. Any element failure fails the whole
// sequence and leaves the cursor where it started.
type SequenceGrammar struct {
	Elements []Matchable
}

// Seq builds a SequenceGrammar
func Seq(elements ...Matchable) *SequenceGrammar {
	return &SequenceGrammar{Elements: elements}
}

func (g *SequenceGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	var segments []*segment.Segment

	cur := pos

	for i, element := range g.Elements {
		scan := cur
		if i > 0 {
			scan = ctx.SkipTrivia(cur)
		}

		result, err := element.MatchAt(ctx, scan)
		if err != nil {
			return noMatch(pos), err
		}

		if !result.Matched {
			return noMatch(pos), nil
		}

		if result.NextPos == scan && len(result.Segments) == 0 {
			// Empty match (Optional miss, Nothing): leave the trivia for the
			// next element so it is captured exactly once.
			continue
		}

		segments = append(segments, ctx.leavesFor(cur, scan)...)
		segments = append(segments, result.Segments...)
		cur = result.NextPos
	}

	return Result{Matched: true, Segments: segments, NextPos: cur}, nil
}

// OneOfGrammar tries alternatives in declared order; the first success wins.
// Grammars list the most specific alternative first, which resolves
// ambiguity deterministically.
type OneOfGrammar struct {
	Alternatives []Matchable
}

// OneOf builds a OneOfGrammar
func OneOf(alternatives ...Matchable) *OneOfGrammar {
	return &OneOfGrammar{Alternatives: alternatives}
}

func (g *OneOfGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	for _, alternative := range g.Alternatives {
		result, err := alternative.MatchAt(ctx, pos)
		if err != nil {
			return noMatch(pos), err
		}

		if result.Matched {
			return result, nil
		}
	}

	return noMatch(pos), nil
}

// OptionalGrammar matches its inner grammar or succeeds empty
type OptionalGrammar struct {
	Inner Matchable
}

// Opt builds an OptionalGrammar
func Opt(inner Matchable) *OptionalGrammar {
	return &OptionalGrammar{Inner: inner}
}

func (g *OptionalGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	result, err := g.Inner.MatchAt(ctx, pos)
	if err != nil {
		return noMatch(pos), err
	}

	if result.Matched {
		return result, nil
	}

	return Result{Matched: true, NextPos: pos}, nil
}

// AnyNumberOfGrammar matches its inner grammar repeatedly. Max of zero means
// unbounded. Succeeds only when at least Min repetitions matched.
type AnyNumberOfGrammar struct {
	Inner Matchable
	Min   int
	Max   int
}

// AnyNumberOf builds an unbounded repetition with the given minimum
func AnyNumberOf(min int, inner Matchable) *AnyNumberOfGrammar {
	return &AnyNumberOfGrammar{Inner: inner, Min: min}
}

func (g *AnyNumberOfGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	var segments []*segment.Segment

	cur := pos
	count := 0

	for g.Max == 0 || count < g.Max {
		scan := cur
		if count > 0 {
			scan = ctx.SkipTrivia(cur)
		}

		result, err := g.Inner.MatchAt(ctx, scan)
		if err != nil {
			return noMatch(pos), err
		}

		if !result.Matched {
			break
		}

		if result.NextPos == scan && len(result.Segments) == 0 {
			// Zero-width match would loop forever
			break
		}

		segments = append(segments, ctx.leavesFor(cur, scan)...)
		segments = append(segments, result.Segments...)
		cur = result.NextPos
		count++
	}

	if count < g.Min {
		return noMatch(pos), nil
	}

	return Result{Matched: true, Segments: segments, NextPos: cur}, nil
}

// DelimitedGrammar matches Element (Delimiter Element)*, requiring at least
// MinElements elements. A trailing delimiter is consumed only when
// AllowTrailing is set (dialect-configurable).
type DelimitedGrammar struct {
	Element       Matchable
	Delimiter     Matchable
	MinElements   int
	AllowTrailing bool
}

// Delimited builds a comma-style list grammar with a one-element minimum
func Delimited(element, delimiter Matchable) *DelimitedGrammar {
	return &DelimitedGrammar{Element: element, Delimiter: delimiter, MinElements: 1}
}

func (g *DelimitedGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	var segments []*segment.Segment

	cur := pos
	count := 0

	for {
		scan := cur
		if count > 0 {
			scan = ctx.SkipTrivia(cur)
		}

		element, err := g.Element.MatchAt(ctx, scan)
		if err != nil {
			return noMatch(pos), err
		}

		if !element.Matched {
			break
		}

		segments = append(segments, ctx.leavesFor(cur, scan)...)
		segments = append(segments, element.Segments...)
		cur = element.NextPos
		count++

		delimScan := ctx.SkipTrivia(cur)

		delimiter, err := g.Delimiter.MatchAt(ctx, delimScan)
		if err != nil {
			return noMatch(pos), err
		}

		if !delimiter.Matched {
			break
		}

		// Only commit the delimiter if another element follows, unless
		// trailing delimiters are allowed.
		nextScan := ctx.SkipTrivia(delimiter.NextPos)

		probe, err := g.Element.MatchAt(ctx, nextScan)
		if err != nil {
			return noMatch(pos), err
		}

		if !probe.Matched && !g.AllowTrailing {
			break
		}

		segments = append(segments, ctx.leavesFor(cur, delimScan)...)
		segments = append(segments, delimiter.Segments...)
		cur = delimiter.NextPos

		if !probe.Matched {
			break
		}
	}

	minElements := g.MinElements
	if count < minElements {
		return noMatch(pos), nil
	}

	return Result{Matched: true, Segments: segments, NextPos: cur}, nil
}

// BracketedGrammar matches a configured opening bracket, the inner grammar,
// and the matching closing bracket. When the closing bracket is missing it
// recovers by producing an unparsable segment spanning to the end of the
// statement instead of failing the whole parse.
type BracketedGrammar struct {
	Inner Matchable
}

// Bracketed builds a BracketedGrammar
func Bracketed(inner Matchable) *BracketedGrammar {
	return &BracketedGrammar{Inner: inner}
}

func (g *BracketedGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	open := ctx.At(pos)

	closing, ok := ctx.closingFor(open.Type)
	if !ok {
		return noMatch(pos), nil
	}

	segments := []*segment.Segment{segment.LeafFor(open)}
	cur := pos + 1

	scan := ctx.SkipTrivia(cur)

	inner, err := g.Inner.MatchAt(ctx, scan)
	if err != nil {
		return noMatch(pos), err
	}

	if inner.Matched {
		segments = append(segments, ctx.leavesFor(cur, scan)...)
		segments = append(segments, inner.Segments...)
		cur = inner.NextPos
	}

	closeScan := ctx.SkipTrivia(cur)

	if ctx.At(closeScan).Type != closing {
		// Missing closing bracket: swallow the remainder of the statement as
		// unparsable so subsequent statements still parse.
		rest := ctx.leavesFor(cur, len(ctx.Tokens))
		children := append(segments[1:], rest...)

		unparsable := []*segment.Segment{segments[0]}
		if len(children) > 0 {
			unparsable = append(unparsable, children...)
		}

		node := segment.NewNode(segment.TypeUnparsable, unparsable...)

		return Result{Matched: true, Segments: []*segment.Segment{node}, NextPos: len(ctx.Tokens)}, nil
	}

	segments = append(segments, ctx.leavesFor(cur, closeScan)...)
	segments = append(segments, segment.LeafFor(ctx.At(closeScan)))

	return Result{Matched: true, Segments: segments, NextPos: closeScan + 1}, nil
}

// RefGrammar resolves a named rule lazily through the match context
type RefGrammar struct {
	Name string
}

// Ref builds a reference to a named rule
func Ref(name string) *RefGrammar {
	return &RefGrammar{Name: name}
}

func (g *RefGrammar) MatchAt(ctx *Context, pos int) (Result, error) {
	return ctx.MatchRule(g.Name, pos)
}

// NothingGrammar always matches without consuming anything
type NothingGrammar struct{}

// Nothing builds a NothingGrammar
func Nothing() *NothingGrammar {
	return &NothingGrammar{}
}

func (g *NothingGrammar) MatchAt(_ *Context, pos int) (Result, error) {
	return Result{Matched: true, NextPos: pos}, nil
}
