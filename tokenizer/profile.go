package tokenizer

import "strings"

// KeywordInfo holds information about a SQL keyword.
type KeywordInfo struct {
	// Keyword is always true (for quick lookup)
	Keyword bool
	// Reserved is true if the keyword cannot be used as a plain identifier
	Reserved bool
}

// LexProfile carries the dialect-specific pieces of lexing: quoting rules and
// the keyword set. Grammar-level differences live in the dialect package;
// the lexer only needs to know how to slice text and how to tag words.
type LexProfile struct {
	Name string

	// IdentifierQuotes are runes that open a quoted identifier, each closed
	// by the same rune (doubled rune escapes it inside).
	IdentifierQuotes []rune

	// StringQuotes are runes that open a string literal
	StringQuotes []rune

	// BacktickIdentifiers enables `ident` quoting (MySQL)
	BacktickIdentifiers bool

	// BracketIdentifiers enables [ident] quoting (SQLite compat mode)
	BracketIdentifiers bool

	// BackslashEscapes enables backslash escapes inside string literals
	// (MySQL). ANSI dialects only escape by doubling the quote.
	BackslashEscapes bool

	// HashLineComments enables # line comments (MySQL)
	HashLineComments bool

	// Keywords maps upper-cased words to keyword info
	Keywords map[string]KeywordInfo
}

// KeywordFor returns keyword info for a word (case-insensitive)
func (p *LexProfile) KeywordFor(word string) (KeywordInfo, bool) {
	info, ok := p.Keywords[strings.ToUpper(word)]
	return info, ok
}

func (p *LexProfile) isIdentifierQuote(r rune) bool {
	for _, q := range p.IdentifierQuotes {
		if q == r {
			return true
		}
	}

	return p.BacktickIdentifiers && r == '`'
}

func (p *LexProfile) isStringQuote(r rune) bool {
	for _, q := range p.StringQuotes {
		if q == r {
			return true
		}
	}

	return false
}
