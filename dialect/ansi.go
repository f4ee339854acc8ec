package dialect

import (
	"github.com/squill-sql/squill/grammar"
	"github.com/squill-sql/squill/tokenizer"
)

// RootRuleName is the entry rule every dialect must define: the grammar for
// a single statement (terminators are handled by the parser, not the
// grammar).
const RootRuleName = "StatementSegment"

func init() {
	register("ansi", "", buildAnsi)
}

// buildAnsi defines the ANSI root dialect: the grammar, keywords, brackets,
// and lexer profile every other dialect patches. Rule granularity follows
// the clause structure so lint rules can target clause-level segment types.
func buildAnsi(d *Dialect) {
	d.AddKeywords(true, ansiReservedKeywords...)
	d.AddKeywords(false, ansiUnreservedKeywords...)

	d.AddBracketPair(tokenizer.OPENED_PARENS, tokenizer.CLOSED_PARENS)

	d.PatchProfile(func(p *tokenizer.LexProfile) {
		p.IdentifierQuotes = []rune{'"'}
		p.StringQuotes = []rune{'\''}
	})

	// Terminals and small shared pieces
	d.AddRule("Comma", "", grammar.Typed(tokenizer.COMMA, "comma"))
	d.AddRule("Dot", "", grammar.Typed(tokenizer.DOT, "dot"))
	d.AddRule("Star", "", grammar.Typed(tokenizer.MULTIPLY, "star"))

	d.AddRule("Identifier", "", grammar.OneOf(
		grammar.Typed(tokenizer.WORD, "naked_identifier"),
		grammar.Typed(tokenizer.QUOTED_IDENTIFIER, "quoted_identifier"),
	))

	d.AddRule("Literal", "", grammar.OneOf(
		grammar.Typed(tokenizer.NUMBER, "numeric_literal"),
		grammar.Typed(tokenizer.STRING, "string_literal"),
		grammar.StringParser("TRUE", "boolean_literal"),
		grammar.StringParser("FALSE", "boolean_literal"),
		grammar.StringParser("NULL", "null_literal"),
	))

	d.AddRule("ColumnReference", "column_reference", grammar.Seq(
		grammar.Ref("Identifier"),
		grammar.AnyNumberOf(0, grammar.Seq(grammar.Ref("Dot"), grammar.Ref("Identifier"))),
	))

	d.AddRule("TableReference", "table_reference", grammar.Seq(
		grammar.Ref("Identifier"),
		grammar.AnyNumberOf(0, grammar.Seq(grammar.Ref("Dot"), grammar.Ref("Identifier"))),
	))

	// Expressions: a flat binary chain. Precedence does not matter for
	// linting; what matters is that every token lands in a typed segment.
	d.AddRule("Expression", "expression", grammar.Seq(
		grammar.Ref("Term"),
		grammar.AnyNumberOf(0, grammar.Seq(grammar.Ref("BinaryOperator"), grammar.Ref("Term"))),
	))

	d.AddRule("Term", "", grammar.OneOf(
		grammar.Ref("CaseExpression"),
		grammar.Ref("FunctionCall"),
		grammar.Ref("Literal"),
		grammar.Ref("ColumnReference"),
		grammar.Bracketed(grammar.OneOf(
			grammar.Ref("SelectStatement"),
			grammar.Delimited(grammar.Ref("Expression"), grammar.Ref("Comma")),
		)),
		grammar.Seq(grammar.Ref("UnaryOperator"), grammar.Ref("Term")),
	))

	d.AddRule("UnaryOperator", "", grammar.OneOf(
		grammar.Kw("NOT"),
		grammar.Typed(tokenizer.MINUS, "operator"),
		grammar.Typed(tokenizer.PLUS, "operator"),
	))

	d.AddRule("BinaryOperator", "", grammar.OneOf(
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
		grammar.Seq(grammar.Kw("IS"), grammar.Opt(grammar.Kw("NOT"))),
		grammar.Seq(grammar.Kw("NOT"), grammar.OneOf(grammar.Kw("LIKE"), grammar.Kw("IN"))),
		grammar.Kw("AND"),
		grammar.Kw("OR"),
		grammar.Kw("LIKE"),
		grammar.Kw("IN"),
	))

	d.AddRule("FunctionCall", "function", grammar.Seq(
		&grammar.TypedParserGrammar{
			TokenType:     tokenizer.WORD,
			SegmentType:   "function_name",
			AllowReserved: true,
		},
		grammar.Bracketed(grammar.Opt(grammar.OneOf(
			grammar.Ref("Star"),
			grammar.Seq(
				grammar.Opt(grammar.Kw("DISTINCT")),
				grammar.Delimited(grammar.Ref("Expression"), grammar.Ref("Comma")),
			),
		))),
	))

	d.AddRule("CaseExpression", "case_expression", grammar.Seq(
		grammar.Kw("CASE"),
		grammar.AnyNumberOf(1, grammar.Seq(
			grammar.Kw("WHEN"), grammar.Ref("Expression"),
			grammar.Kw("THEN"), grammar.Ref("Expression"),
		)),
		grammar.Opt(grammar.Seq(grammar.Kw("ELSE"), grammar.Ref("Expression"))),
		grammar.Kw("END"),
	))

	// SELECT
	d.AddRule("AliasExpression", "alias_expression", grammar.Seq(
		grammar.Opt(grammar.Kw("AS")),
		grammar.Ref("Identifier"),
	))

	d.AddRule("SelectTarget", "select_target", grammar.OneOf(
		grammar.Ref("Star"),
		grammar.Seq(grammar.Ref("Expression"), grammar.Opt(grammar.Ref("AliasExpression"))),
	))

	d.AddRule("SelectClause", "select_clause", grammar.Seq(
		grammar.Kw("SELECT"),
		grammar.Opt(grammar.OneOf(grammar.Kw("DISTINCT"), grammar.Kw("ALL"))),
		grammar.Delimited(grammar.Ref("SelectTarget"), grammar.Ref("Comma")),
	))

	d.AddRule("TableExpression", "table_expression", grammar.Seq(
		grammar.OneOf(
			grammar.Bracketed(grammar.Ref("SelectStatement")),
			grammar.Ref("TableReference"),
		),
		grammar.Opt(grammar.Ref("AliasExpression")),
	))

	d.AddRule("JoinClause", "join_clause", grammar.Seq(
		grammar.Opt(grammar.OneOf(
			grammar.Kw("INNER"),
			grammar.Seq(grammar.Kw("LEFT"), grammar.Opt(grammar.Kw("OUTER"))),
			grammar.Seq(grammar.Kw("RIGHT"), grammar.Opt(grammar.Kw("OUTER"))),
			grammar.Seq(grammar.Kw("FULL"), grammar.Opt(grammar.Kw("OUTER"))),
			grammar.Kw("CROSS"),
		)),
		grammar.Kw("JOIN"),
		grammar.Ref("TableExpression"),
		grammar.Opt(grammar.OneOf(
			grammar.Seq(grammar.Kw("ON"), grammar.Ref("Expression")),
			grammar.Seq(grammar.Kw("USING"), grammar.Bracketed(
				grammar.Delimited(grammar.Ref("Identifier"), grammar.Ref("Comma")),
			)),
		)),
	))

	d.AddRule("FromClause", "from_clause", grammar.Seq(
		grammar.Kw("FROM"),
		grammar.Delimited(grammar.Ref("TableExpression"), grammar.Ref("Comma")),
		grammar.AnyNumberOf(0, grammar.Ref("JoinClause")),
	))

	d.AddRule("WhereClause", "where_clause", grammar.Seq(
		grammar.Kw("WHERE"), grammar.Ref("Expression"),
	))

	d.AddRule("GroupByClause", "groupby_clause", grammar.Seq(
		grammar.Kw("GROUP"), grammar.Kw("BY"),
		grammar.Delimited(grammar.Ref("Expression"), grammar.Ref("Comma")),
	))

	d.AddRule("HavingClause", "having_clause", grammar.Seq(
		grammar.Kw("HAVING"), grammar.Ref("Expression"),
	))

	d.AddRule("OrderByClause", "orderby_clause", grammar.Seq(
		grammar.Kw("ORDER"), grammar.Kw("BY"),
		grammar.Delimited(
			grammar.Seq(
				grammar.Ref("Expression"),
				grammar.Opt(grammar.OneOf(grammar.Kw("ASC"), grammar.Kw("DESC"))),
			),
			grammar.Ref("Comma"),
		),
	))

	d.AddRule("LimitClause", "limit_clause", grammar.Seq(
		grammar.Kw("LIMIT"), grammar.Ref("Expression"),
		grammar.Opt(grammar.Seq(grammar.Kw("OFFSET"), grammar.Ref("Expression"))),
	))

	d.AddRule("SelectStatement", "select_statement", grammar.Seq(
		grammar.Ref("SelectClause"),
		grammar.Opt(grammar.Ref("FromClause")),
		grammar.Opt(grammar.Ref("WhereClause")),
		grammar.Opt(grammar.Ref("GroupByClause")),
		grammar.Opt(grammar.Ref("HavingClause")),
		grammar.Opt(grammar.Ref("OrderByClause")),
		grammar.Opt(grammar.Ref("LimitClause")),
	))

	// DML
	d.AddRule("SetClause", "set_clause", grammar.Seq(
		grammar.Ref("ColumnReference"),
		grammar.Typed(tokenizer.EQUAL, "comparison_operator"),
		grammar.Ref("Expression"),
	))

	d.AddRule("UpdateStatement", "update_statement", grammar.Seq(
		grammar.Kw("UPDATE"),
		grammar.Ref("TableReference"),
		grammar.Kw("SET"),
		grammar.Delimited(grammar.Ref("SetClause"), grammar.Ref("Comma")),
		grammar.Opt(grammar.Ref("WhereClause")),
	))

	d.AddRule("InsertStatement", "insert_statement", grammar.Seq(
		grammar.Kw("INSERT"), grammar.Kw("INTO"),
		grammar.Ref("TableReference"),
		grammar.Opt(grammar.Bracketed(
			grammar.Delimited(grammar.Ref("ColumnReference"), grammar.Ref("Comma")),
		)),
		grammar.OneOf(
			grammar.Seq(
				grammar.Kw("VALUES"),
				grammar.Delimited(
					grammar.Bracketed(grammar.Delimited(grammar.Ref("Expression"), grammar.Ref("Comma"))),
					grammar.Ref("Comma"),
				),
			),
			grammar.Ref("SelectStatement"),
		),
	))

	d.AddRule("DeleteStatement", "delete_statement", grammar.Seq(
		grammar.Kw("DELETE"), grammar.Kw("FROM"),
		grammar.Ref("TableReference"),
		grammar.Opt(grammar.Ref("WhereClause")),
	))

	d.AddRule(RootRuleName, "", grammar.OneOf(
		grammar.Ref("SelectStatement"),
		grammar.Ref("InsertStatement"),
		grammar.Ref("UpdateStatement"),
		grammar.Ref("DeleteStatement"),
	))
}
