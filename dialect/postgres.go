package dialect

import (
	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/tokenizer"
)

func init() {
	register("postgres", "ansi", buildPostgres)
}

func buildPostgres(d *Dialect) {
	d.AddKeywords(true, "RETURNING", "ILIKE", "LATERAL")

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

	// Postgres adds ILIKE and the :: cast operator
	d.ReplaceRule("BinaryOperator", "", grammar.OneOf(
		grammar.Typed(tokenizer.EQUAL, "comparison_operator"),
		grammar.Typed(tokenizer.NOT_EQUAL, "comparison_operator"),
		grammar.Typed(tokenizer.LESS_EQUAL, "comparison_operator"),
		grammar.Typed(tokenizer.GREATER_EQUAL, "comparison_operator"),
		grammar.Typed(tokenizer.LESS_THAN, "comparison_operator"),
		grammar.Typed(tokenizer.GREATER_THAN, "comparison_operator"),
		grammar.Typed(tokenizer.PLUS, "binary_operator"),
		grammar.Typed(tokenizer.MINUS, "binary_operator"),
		grammar.Typed(tokenizer.MULTIPLY, "binary_operator"),
		grammar.Typed(tokenizer.DIVIDE, "binary_operator"),
		grammar.Typed(tokenizer.MODULO, "binary_operator"),
		grammar.Typed(tokenizer.CONCAT, "binary_operator"),
		grammar.Typed(tokenizer.CASTER, "cast_operator"),
		grammar.Seq(grammar.Kw("IS"), grammar.Opt(grammar.Kw("NOT"))),
		grammar.Seq(grammar.Kw("NOT"), grammar.OneOf(
			grammar.Kw("LIKE"), grammar.Kw("ILIKE"), grammar.Kw("IN"),
		)),
		grammar.Kw("AND"),
		grammar.Kw("OR"),
		grammar.Kw("LIKE"),
		grammar.Kw("ILIKE"),
		grammar.Kw("IN"),
	))
}
