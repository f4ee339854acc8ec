package dialect

import (
	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/tokenizer"
)

func init() {
	register("sqlite", "ansi", buildSQLite)
}

func buildSQLite(d *Dialect) {
	d.AddKeywords(true, "RETURNING")
	d.AddKeywords(false, "AUTOINCREMENT", "GLOB", "PRAGMA")

	// SQLite accepts [bracketed] identifiers for compatibility
	d.PatchProfile(func(p *tokenizer.LexProfile) {
		p.BracketIdentifiers = true
	})

	d.AddRule("ReturningClause", "returning_clause", grammar.Seq(
		grammar.Kw("RETURNING"),
		grammar.Delimited(grammar.Ref("SelectTarget"), grammar.Ref("Comma")),
	))

	d.ReplaceRule("UpdateStatement", "update_statement", grammar.Seq(
		grammar.Kw("UPDATE"),
		grammar.Ref("TableReference"),
		grammar.Kw("SET"),
		grammar.Delimited(grammar.Ref("SetClause"), grammar.Ref("Comma")),
		grammar.Opt(grammar.Ref("WhereClause")),
		grammar.Opt(grammar.Ref("ReturningClause")),
	))

	d.ReplaceRule("DeleteStatement", "delete_statement", grammar.Seq(
		grammar.Kw("DELETE"), grammar.Kw("FROM"),
		grammar.Ref("TableReference"),
		grammar.Opt(grammar.Ref("WhereClause")),
		grammar.Opt(grammar.Ref("ReturningClause")),
	))
}
