// Package oracle provides an Oracle 11g compatibility layer for database/sql.
//
// Oracle 11g predates the SQL:2008 FETCH FIRST clause and has no native
// identity columns. This package rewrites modern row-limiting SQL into
// ROWNUM-based equivalents at the driver level and emulates auto-increment
// primary keys with a sequence + trigger pair per column.
package oracle

import (
	"regexp"
	"strings"
)

var (
	fetchFirstPattern = regexp.MustCompile(`(?i)FETCH FIRST (\d+) ROWS ONLY`)
	orderByPattern    = regexp.MustCompile(`(?i)\bORDER\s+BY\b`)
	wherePattern      = regexp.MustCompile(`(?i)\bWHERE\b`)
	fromPattern       = regexp.MustCompile(`(?i)\bFROM\s+[\w".]+`)
)

// RewriteFetchFirst converts a FETCH FIRST N ROWS ONLY clause into Oracle
// 11g ROWNUM syntax. Statements without the clause are returned unchanged,
// and bind placeholders are never touched.
//
// A statement with an ORDER BY is wrapped whole in a subquery: ROWNUM is
// assigned before sorting, so the inner query must materialize the order
// first or the limit would cut physical retrieval order instead of the
// requested one. Without an ORDER BY the limit is injected into the first
// WHERE clause, or a new WHERE is appended after the FROM table reference.
// A limit-only statement with no FROM clause cannot be rewritten safely and
// is passed through as-is to fail at the driver.
//
// Detection is first-match: a nested subquery carrying its own FETCH FIRST
// is not handled. At most one top-level limited clause per statement.
func RewriteFetchFirst(sql string) string {
	m := fetchFirstPattern.FindStringSubmatchIndex(sql)
	if m == nil {
		return sql
	}

	original := sql
	limit := sql[m[2]:m[3]]
	sql = strings.TrimRight(sql[:m[0]], " \t\r\n") + sql[m[1]:]

	if orderByPattern.MatchString(sql) {
		return "SELECT * FROM (" + sql + ") WHERE ROWNUM <= " + limit
	}

	if loc := wherePattern.FindStringIndex(sql); loc != nil {
		return sql[:loc[0]] + "WHERE ROWNUM <= " + limit + " AND" + sql[loc[1]:]
	}

	if loc := fromPattern.FindStringIndex(sql); loc != nil {
		return sql[:loc[1]] + " WHERE ROWNUM <= " + limit + sql[loc[1]:]
	}

	// No FROM clause to anchor the limit on. Surfacing the unrewritten
	// statement is deliberate: a driver syntax error beats a silently
	// corrupted query.
	return original
}
