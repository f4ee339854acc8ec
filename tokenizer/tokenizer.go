package tokenizer

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq[Token]

// SqlTokenizer is a lossless, dialect-aware SQL tokenizer. It is total:
// every input produces a token stream whose concatenated values reproduce
// the input exactly. Unrecognized characters become UNKNOWN tokens and
// unterminated strings or comments run to end of input instead of failing,
// so malformed files can still be linted.
type SqlTokenizer struct {
	input   string
	profile *LexProfile
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewSqlTokenizer creates a new SqlTokenizer
func NewSqlTokenizer(input string, profile *LexProfile, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &SqlTokenizer{
		input:   input,
		profile: profile,
		options: opts,
	}
}

// Tokens returns an iterator of tokens, ending with an EOF token
func (t *SqlTokenizer) Tokens() TokenIterator {
	return func(yield func(Token) bool) {
		s := &scanner{
			input:   t.input,
			line:    1,
			column:  1,
			profile: t.profile,
		}

		for {
			token := s.nextToken()

			if token.Type == EOF {
				yield(token)
				return
			}

			if t.options.SkipWhitespace && (token.Type == WHITESPACE || token.Type == NEWLINE) {
				continue
			}

			if t.options.SkipComments && (token.Type == LINE_COMMENT || token.Type == BLOCK_COMMENT) {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, excluding the trailing EOF token
func (t *SqlTokenizer) AllTokens() []Token {
	tokens := make([]Token, 0, 64)

	for token := range t.Tokens() {
		if token.Type == EOF {
			break
		}

		tokens = append(tokens, token)
	}

	return tokens
}

// Internal scanner implementation
type scanner struct {
	input   string
	pos     int // byte offset of the next unread character
	line    int
	column  int
	profile *LexProfile
}

type mark struct {
	pos    int
	line   int
	column int
}

func (s *scanner) mark() mark {
	return mark{pos: s.pos, line: s.line, column: s.column}
}

func (s *scanner) token(tokenType TokenType, m mark) Token {
	return Token{
		Type:  tokenType,
		Value: s.input[m.pos:s.pos],
		Position: Position{
			Line:   m.line,
			Column: m.column,
			Offset: m.pos,
		},
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

// peek returns the next rune without consuming it, or 0 at end of input
func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])

	return r
}

// peekSecond returns the rune after the next one, or 0 at end of input
func (s *scanner) peekSecond() rune {
	if s.eof() {
		return 0
	}

	_, size := utf8.DecodeRuneInString(s.input[s.pos:])
	if s.pos+size >= len(s.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos+size:])

	return r
}

// bump consumes one rune, tracking line and column
func (s *scanner) bump() rune {
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size

	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}

	return r
}

// nextToken scans the next token (maximal munch per class)
func (s *scanner) nextToken() Token {
	m := s.mark()

	if s.eof() {
		return s.token(EOF, m)
	}

	r := s.peek()

	switch {
	case r == '\n':
		s.bump()
		return s.token(NEWLINE, m)
	case r == '\r':
		s.bump()
		if s.peek() == '\n' {
			s.bump()
			return s.token(NEWLINE, m)
		}
		return s.token(WHITESPACE, m)
	case r == ' ' || r == '\t':
		for s.peek() == ' ' || s.peek() == '\t' {
			s.bump()
		}
		return s.token(WHITESPACE, m)
	case r == '-':
		if s.peekSecond() == '-' {
			return s.scanLineComment(m)
		}
		s.bump()
		return s.token(MINUS, m)
	case r == '#' && s.profile.HashLineComments:
		return s.scanLineComment(m)
	case r == '/':
		if s.peekSecond() == '*' {
			return s.scanBlockComment(m)
		}
		s.bump()
		return s.token(DIVIDE, m)
	case s.profile.isStringQuote(r):
		return s.scanQuoted(m, r, STRING, s.profile.BackslashEscapes)
	case s.profile.isIdentifierQuote(r):
		return s.scanQuoted(m, r, QUOTED_IDENTIFIER, false)
	case r == '[' && s.profile.BracketIdentifiers:
		return s.scanBracketIdentifier(m)
	case unicode.IsLetter(r) || r == '_':
		return s.scanWord(m)
	case unicode.IsDigit(r):
		return s.scanNumber(m)
	case r == '.':
		if unicode.IsDigit(s.peekSecond()) {
			return s.scanNumber(m)
		}
		s.bump()
		return s.token(DOT, m)
	}

	return s.scanOperator(m, r)
}

func (s *scanner) scanOperator(m mark, r rune) Token {
	switch r {
	case '(':
		s.bump()
		return s.token(OPENED_PARENS, m)
	case ')':
		s.bump()
		return s.token(CLOSED_PARENS, m)
	case ',':
		s.bump()
		return s.token(COMMA, m)
	case ';':
		s.bump()
		return s.token(SEMICOLON, m)
	case '=':
		s.bump()
		return s.token(EQUAL, m)
	case '+':
		s.bump()
		return s.token(PLUS, m)
	case '*':
		s.bump()
		return s.token(MULTIPLY, m)
	case '%':
		s.bump()
		return s.token(MODULO, m)
	case '<':
		s.bump()
		switch s.peek() {
		case '=':
			s.bump()
			return s.token(LESS_EQUAL, m)
		case '>':
			s.bump()
			return s.token(NOT_EQUAL, m)
		}
		return s.token(LESS_THAN, m)
	case '>':
		s.bump()
		if s.peek() == '=' {
			s.bump()
			return s.token(GREATER_EQUAL, m)
		}
		return s.token(GREATER_THAN, m)
	case '!':
		if s.peekSecond() == '=' {
			s.bump()
			s.bump()
			return s.token(NOT_EQUAL, m)
		}
	case '|':
		if s.peekSecond() == '|' {
			s.bump()
			s.bump()
			return s.token(CONCAT, m)
		}
	case ':':
		if s.peekSecond() == ':' {
			s.bump()
			s.bump()
			return s.token(CASTER, m)
		}
	}

	// Anything else is preserved as UNKNOWN so the stream stays lossless
	s.bump()

	return s.token(UNKNOWN, m)
}

func (s *scanner) scanWord(m mark) Token {
	for {
		r := s.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			break
		}

		s.bump()
	}

	token := s.token(WORD, m)
	if info, ok := s.profile.KeywordFor(token.Value); ok {
		token.Keyword = true
		token.Reserved = info.Reserved
	}

	return token
}

func (s *scanner) scanNumber(m mark) Token {
	for unicode.IsDigit(s.peek()) {
		s.bump()
	}

	if s.peek() == '.' && unicode.IsDigit(s.peekSecond()) {
		s.bump()

		for unicode.IsDigit(s.peek()) {
			s.bump()
		}
	}

	// Exponent only when well formed; otherwise leave the 'e' for the next
	// token so lexing stays total
	if r := s.peek(); r == 'e' || r == 'E' {
		second := s.peekSecond()
		if unicode.IsDigit(second) {
			s.bump()
			for unicode.IsDigit(s.peek()) {
				s.bump()
			}
		} else if second == '+' || second == '-' {
			rest := s.input[s.pos:]
			if len(rest) > 2 && rest[2] >= '0' && rest[2] <= '9' {
				s.bump()
				s.bump()
				for unicode.IsDigit(s.peek()) {
					s.bump()
				}
			}
		}
	}

	return s.token(NUMBER, m)
}

// scanQuoted scans a delimited literal. The delimiter escapes by doubling;
// backslash escapes are honored when the profile enables them. An
// unterminated literal runs to end of input.
func (s *scanner) scanQuoted(m mark, delimiter rune, tokenType TokenType, backslashEscapes bool) Token {
	s.bump() // opening quote

	for !s.eof() {
		r := s.peek()

		if backslashEscapes && r == '\\' {
			s.bump()
			if !s.eof() {
				s.bump()
			}
			continue
		}

		if r == delimiter {
			s.bump()
			if s.peek() == delimiter { // doubled delimiter, stay inside
				s.bump()
				continue
			}
			break
		}

		s.bump()
	}

	return s.token(tokenType, m)
}

func (s *scanner) scanBracketIdentifier(m mark) Token {
	s.bump() // '['

	for !s.eof() {
		if s.peek() == ']' {
			s.bump()
			break
		}

		s.bump()
	}

	return s.token(QUOTED_IDENTIFIER, m)
}

func (s *scanner) scanLineComment(m mark) Token {
	// consume the prefix ('--' or '#') then everything up to, but not
	// including, the newline
	if s.peek() == '#' {
		s.bump()
	} else {
		s.bump()
		s.bump()
	}

	for !s.eof() && s.peek() != '\n' && s.peek() != '\r' {
		s.bump()
	}

	return s.token(LINE_COMMENT, m)
}

func (s *scanner) scanBlockComment(m mark) Token {
	s.bump() // '/'
	s.bump() // '*'

	for !s.eof() {
		if s.peek() == '*' && s.peekSecond() == '/' {
			s.bump()
			s.bump()
			break
		}

		s.bump()
	}

	return s.token(BLOCK_COMMENT, m)
}
