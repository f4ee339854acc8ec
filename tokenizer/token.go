package tokenizer

import "strconv"

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NEWLINE
	WORD              // identifiers, keywords (dialect decides which)
	QUOTED_IDENTIFIER // "ident", `ident`, [ident]
	STRING            // 'text'
	NUMBER            // numeric literals
	OPENED_PARENS     // (
	CLOSED_PARENS     // )
	COMMA             // ,
	SEMICOLON         // ;
	DOT               // .

	// SQL operators
	EQUAL         // =
	NOT_EQUAL     // <>, !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /
	MODULO        // %
	CONCAT        // ||
	CASTER        // ::

	// Comments
	LINE_COMMENT  // -- line comment (or # in MySQL)
	BLOCK_COMMENT // /* block comment */

	// Others
	UNKNOWN // unrecognized characters; kept so lexing is total
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NEWLINE:
		return "NEWLINE"
	case WORD:
		return "WORD"
	case QUOTED_IDENTIFIER:
		return "QUOTED_IDENTIFIER"
	case STRING:
		return "STRING"
	case NUMBER:
		return "NUMBER"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case COMMA:
		return "COMMA"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case MODULO:
		return "MODULO"
	case CONCAT:
		return "CONCAT"
	case CASTER:
		return "CASTER"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	case BLOCK_COMMENT:
		return "BLOCK_COMMENT"
	case UNKNOWN:
		return "UNKNOWN"
	default:
		return "INVALID"
	}
}

// Position represents the location of a token in the source text.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns "line:column" for error messages
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token represents a single lexical token. Value is always the exact source
// slice: concatenating Value over a token stream reproduces the input
// byte-for-byte.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
	Keyword  bool // true if a WORD is a keyword in the lexing dialect
	Reserved bool // true if a WORD is a reserved keyword in the lexing dialect
}

// End returns the byte offset just past this token
func (t Token) End() int {
	return t.Position.Offset + len(t.Value)
}

// IsTrivia reports whether the token is whitespace, a newline, or a comment.
// Trivia never participates in grammar matching but is always captured into
// the parse tree.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case WHITESPACE, NEWLINE, LINE_COMMENT, BLOCK_COMMENT:
		return true
	default:
		return false
	}
}

// IsCode reports whether the token is a non-trivia, non-EOF token
func (t Token) IsCode() bool {
	return t.Type != EOF && !t.IsTrivia()
}
