package dialect

import (
	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/tokenizer"
)

func init() {
	register("mysql", "ansi", buildMySQL)
}

func buildMySQL(d *Dialect) {
	d.AddKeywords(true, "STRAIGHT_JOIN", "REGEXP", "RLIKE", "DIV", "MOD")

	// MySQL quoting: backtick identifiers, backslash escapes in strings,
	// double quotes are string delimiters (not identifiers), # line comments
	d.PatchProfile(func(p *tokenizer.LexProfile) {
		p.IdentifierQuotes = nil
		p.BacktickIdentifiers = true
		p.StringQuotes = []rune{'\'', '"'}
		p.BackslashEscapes = true
		p.HashLineComments = true
	})

	// LIMIT offset, count is MySQL-only
	d.ReplaceRule("LimitClause", "limit_clause", grammar.Seq(
		grammar.Kw("LIMIT"), grammar.Ref("Expression"),
		grammar.Opt(grammar.OneOf(
			grammar.Seq(grammar.Kw("OFFSET"), grammar.Ref("Expression")),
			grammar.Seq(grammar.Ref("Comma"), grammar.Ref("Expression")),
		)),
	))
}
