package grammar

// Walk visits m and every grammar node reachable from it without following
// Ref indirections (references are by name; following them would diverge on
// cyclic rule graphs). Dialect loading uses this to validate that every Ref
// in an effective grammar resolves.
func Walk(m Matchable, fn func(Matchable)) {
	if m == nil {
		return
	}

	fn(m)

	switch g := m.(type) {
	case *SequenceGrammar:
		for _, element := range g.Elements {
			Walk(element, fn)
		}
	case *OneOfGrammar:
		for _, alternative := range g.Alternatives {
			Walk(alternative, fn)
		}
	case *OptionalGrammar:
		Walk(g.Inner, fn)
	case *AnyNumberOfGrammar:
		Walk(g.Inner, fn)
	case *DelimitedGrammar:
		Walk(g.Element, fn)
		Walk(g.Delimiter, fn)
	case *BracketedGrammar:
		Walk(g.Inner, fn)
	}
}

// RefsIn returns the names of all rule references reachable from m
func RefsIn(m Matchable) []string {
	var refs []string

	Walk(m, func(node Matchable) {
		if ref, ok := node.(*RefGrammar); ok {
			refs = append(refs, ref.Name)
		}
	})

	return refs
}
