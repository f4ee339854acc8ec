package rules

import (
	"strings"

	pc "github.com/shibukawa/parsercombinator"

	"github.com/squill-sql/squill/segment"
)

// noqa comment directives suppress violations:
//
//	-- noqa                      suppress every rule on this line
//	-- noqa: LT01,CP01           suppress the listed rules on this line
//	-- noqa: disable=LT01        suppress from this line onward
//	-- noqa: disable=all         suppress everything from this line onward
//	-- noqa: enable=LT01         stop an earlier disable
type noqaDirective struct {
	line   int
	action string   // "line", "disable", "enable"
	codes  []string // nil means all rules
}

func (d noqaDirective) applies(code string) bool {
	if d.codes == nil {
		return true
	}

	for _, c := range d.codes {
		if strings.EqualFold(c, code) {
			return true
		}
	}

	return false
}

// Suppressions holds the parsed noqa directives of one file, in source order
type Suppressions struct {
	directives []noqaDirective
}

// ParseSuppressions scans the tree's comment leaves for noqa directives
func ParseSuppressions(root *segment.Segment) *Suppressions {
	var s Suppressions

	for _, leaf := range root.FindAll(segment.TypeComment) {
		directive, ok := parseNoqa(leaf.Token.Value, leaf.Token.Position.Line)
		if ok {
			s.directives = append(s.directives, directive)
		}
	}

	return &s
}

// Suppressed reports whether the rule code is silenced on the given line
func (s *Suppressions) Suppressed(code string, line int) bool {
	active := false

	for _, d := range s.directives {
		switch d.action {
		case "line":
			if d.line == line && d.applies(code) {
				return true
			}
		case "disable":
			if d.line <= line && d.applies(code) {
				active = true
			}
		case "enable":
			if d.line <= line && d.applies(code) {
				active = false
			}
		}
	}

	return active
}

// Directive micro-grammar over the scanned comment body.

func noqaWordToken(word string) pc.Parser[string] {
	return func(pctx *pc.ParseContext[string], tokens []pc.Token[string]) (int, []pc.Token[string], error) {
		if len(tokens) == 0 || tokens[0].Type != "word" || !strings.EqualFold(tokens[0].Val, word) {
			return 0, nil, pc.ErrNotMatch
		}

		return 1, tokens[:1], nil
	}
}

func noqaSymbol(typeName string) pc.Parser[string] {
	return func(pctx *pc.ParseContext[string], tokens []pc.Token[string]) (int, []pc.Token[string], error) {
		if len(tokens) == 0 || tokens[0].Type != typeName {
			return 0, nil, pc.ErrNotMatch
		}

		return 1, tokens[:1], nil
	}
}

func noqaCode() pc.Parser[string] {
	return func(pctx *pc.ParseContext[string], tokens []pc.Token[string]) (int, []pc.Token[string], error) {
		if len(tokens) == 0 || tokens[0].Type != "word" {
			return 0, nil, pc.ErrNotMatch
		}

		return 1, []pc.Token[string]{{Type: "code", Val: tokens[0].Val, Pos: tokens[0].Pos}}, nil
	}
}

var noqaCodeList = pc.Seq(
	noqaCode(),
	pc.ZeroOrMore("more-codes", pc.Seq(pc.Drop(noqaSymbol("comma")), noqaCode())),
)

// parseNoqa recognizes one directive inside a comment's text. Comments that
// do not start with "noqa" are ignored; comments that start with "noqa" but
// do not parse are treated as plain comments, not errors.
func parseNoqa(comment string, line int) (noqaDirective, bool) {
	tokens := scanNoqa(commentBody(comment))

	pctx := pc.NewParseContext[string]()

	consumed, _, err := noqaWordToken("noqa")(pctx, tokens)
	if err != nil {
		return noqaDirective{}, false
	}

	rest := tokens[consumed:]
	if len(rest) == 0 {
		return noqaDirective{line: line, action: "line"}, true
	}

	consumed, _, err = noqaSymbol("colon")(pctx, rest)
	if err != nil {
		return noqaDirective{}, false
	}

	rest = rest[consumed:]

	action := "line"

	for _, kind := range []string{"disable", "enable"} {
		marker := pc.Seq(pc.Drop(noqaWordToken(kind)), pc.Drop(noqaSymbol("equals")))

		if n, _, err := marker(pctx, rest); err == nil {
			action = kind
			rest = rest[n:]

			break
		}
	}

	if _, _, err := noqaWordToken("all")(pctx, rest); err == nil && action != "line" {
		return noqaDirective{line: line, action: action}, true
	}

	_, matched, err := noqaCodeList(pctx, rest)
	if err != nil {
		return noqaDirective{}, false
	}

	var codes []string

	for _, token := range matched {
		if token.Type == "code" {
			codes = append(codes, strings.ToUpper(token.Val))
		}
	}

	return noqaDirective{line: line, action: action, codes: codes}, true
}

// commentBody strips the comment delimiters
func commentBody(comment string) string {
	body := strings.TrimSpace(comment)

	switch {
	case strings.HasPrefix(body, "--"):
		body = body[2:]
	case strings.HasPrefix(body, "#"):
		body = body[1:]
	case strings.HasPrefix(body, "/*"):
		body = strings.TrimPrefix(body, "/*")
		body = strings.TrimSuffix(body, "*/")
	}

	return strings.TrimSpace(body)
}

// scanNoqa splits a comment body into word/colon/comma/equals tokens
func scanNoqa(body string) []pc.Token[string] {
	var tokens []pc.Token[string]

	emit := func(typeName, value string) {
		tokens = append(tokens, pc.Token[string]{Type: typeName, Val: value, Raw: value})
	}

	i := 0
	for i < len(body) {
		c := body[i]

		switch {
		case c == ' ' || c == '\t':
			i++
		case c == ':':
			emit("colon", ":")
			i++
		case c == ',':
			emit("comma", ",")
			i++
		case c == '=':
			emit("equals", "=")
			i++
		default:
			start := i
			for i < len(body) && !strings.ContainsRune(" \t:,=", rune(body[i])) {
				i++
			}

			emit("word", body[start:i])
		}
	}

	return tokens
}
