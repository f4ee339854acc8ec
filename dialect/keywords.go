package dialect

// ANSI keyword sets. Reserved words cannot be used as naked identifiers;
// unreserved keywords are recognized in keyword positions but still lex as
// plain identifiers elsewhere. Dialects patch these by name (add or remove),
// the same way they patch grammar rules.

var ansiReservedKeywords = []string{
	"ALL", "AND", "AS", "ASC", "BETWEEN", "BY", "CASE", "CROSS",
	"DELETE", "DESC", "DISTINCT", "ELSE", "END", "EXCEPT", "EXISTS",
	"FROM", "FULL", "GROUP", "HAVING", "IN", "INNER", "INSERT",
	"INTERSECT", "INTO", "IS", "JOIN", "LEFT", "LIKE", "LIMIT", "NOT",
	"NULL", "OFFSET", "ON", "OR", "ORDER", "OUTER", "RIGHT", "SELECT",
	"SET", "THEN", "UNION", "UPDATE", "USING", "VALUES", "WHEN", "WHERE",
}

var ansiUnreservedKeywords = []string{
	"AVG", "COUNT", "FALSE", "FIRST", "KEY", "LAST", "MAX", "MIN",
	"NULLS", "SUM", "TRUE",
}
