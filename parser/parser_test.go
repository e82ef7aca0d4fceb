package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
)

func TestParseSimpleSelect(t *testing.T) {
	stmt, err := Parse("SELECT a, b FROM users WHERE id = 1", dialect.Default)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	assert.Len(t, sel.Columns, 2)
	require.NotNil(t, sel.From)
	require.NotNil(t, sel.Where)
}

func TestParseIsCaseInsensitiveToKeywords(t *testing.T) {
	_, err1 := Parse("select a from t", dialect.Default)
	_, err2 := Parse("SeLeCt a FrOm t", dialect.Default)
	require.NoError(t, err1)
	require.NoError(t, err2)
}

func TestParseUnionStatement(t *testing.T) {
	stmt, err := Parse("SELECT a FROM t1 UNION ALL SELECT a FROM t2", dialect.Default)
	require.NoError(t, err)
	u, ok := stmt.(*ast.UnionStatement)
	require.True(t, ok)
	require.Len(t, u.Legs, 1)
	assert.Equal(t, "ALL", u.Legs[0].AllOrDistinct.Upper())
}

func TestParseNestedUnionInsideSubselect(t *testing.T) {
	stmt, err := Parse("SELECT * FROM (SELECT a FROM t1 UNION SELECT a FROM t2) s", dialect.Default)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	fc, ok := sel.From.(*ast.FromClause)
	require.True(t, ok)
	sub, ok := fc.Table.(*ast.SubqueryTableExpr)
	require.True(t, ok)
	_, ok = sub.Subselect.Select.(*ast.UnionStatement)
	assert.True(t, ok)
}

func TestParseBetweenAndNotBetween(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE x BETWEEN 1 AND 10", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	wc, ok := sel.Where.(*ast.WhereClause)
	require.True(t, ok)
	b, ok := wc.Expr.(*ast.BetweenExpr)
	require.True(t, ok)
	assert.Nil(t, b.Not)

	stmt2, err := Parse("SELECT * FROM t WHERE x NOT BETWEEN 1 AND 10", dialect.Default)
	require.NoError(t, err)
	sel2 := stmt2.(*ast.SelectStmt)
	wc2, ok := sel2.Where.(*ast.WhereClause)
	require.True(t, ok)
	b2, ok := wc2.Expr.(*ast.BetweenExpr)
	require.True(t, ok)
	assert.NotNil(t, b2.Not)
}

func TestParseNullSafeEquals(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a <=> b", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	wc, ok := sel.Where.(*ast.WhereClause)
	require.True(t, ok)
	bin, ok := wc.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "<=>", bin.Op.Text())
}

func TestParsePrecedenceAndBeforeOr(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a OR b AND c", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	wc, ok := sel.Where.(*ast.WhereClause)
	require.True(t, ok)
	top, ok := wc.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "OR", top.Op.Upper())
	right, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "AND", right.Op.Upper())
}

func TestParseInWithSubselectAndList(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE a IN (1, 2, 3)", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	wc, ok := sel.Where.(*ast.WhereClause)
	require.True(t, ok)
	in, ok := wc.Expr.(*ast.InExpr)
	require.True(t, ok)
	list, ok := in.RHS.(*ast.InExprList)
	require.True(t, ok)
	assert.Len(t, list.Values, 3)

	stmt2, err := Parse("SELECT * FROM t WHERE a IN (SELECT id FROM u)", dialect.Default)
	require.NoError(t, err)
	sel2 := stmt2.(*ast.SelectStmt)
	wc2, ok := sel2.Where.(*ast.WhereClause)
	require.True(t, ok)
	in2, ok := wc2.Expr.(*ast.InExpr)
	require.True(t, ok)
	_, ok = in2.RHS.(*ast.InSubselect)
	assert.True(t, ok)
}

func TestParseInsertIgnoreAllowedWithOrWithoutIntoUnderMySQL(t *testing.T) {
	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	_, err := Parse("INSERT IGNORE t (a) VALUES (1)", mysql)
	assert.NoError(t, err)

	_, err2 := Parse("INSERT IGNORE INTO t (a) VALUES (1)", mysql)
	assert.NoError(t, err2)
}

func TestParseInsertIgnoreRejectedUnderRedshift(t *testing.T) {
	redshift := dialect.Dialect{Vendor: dialect.Redshift}
	_, err := Parse("INSERT IGNORE INTO t (a) VALUES (1)", redshift)
	assert.Error(t, err)
}

func TestParseDeleteRequiresFromUnderMySQL(t *testing.T) {
	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	_, err := Parse("DELETE t WHERE id = 1", mysql)
	assert.Error(t, err)

	redshift := dialect.Dialect{Vendor: dialect.Redshift}
	_, err2 := Parse("DELETE t WHERE id = 1", redshift)
	assert.NoError(t, err2)
}

func TestParseLimitAllGatedByDialect(t *testing.T) {
	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	_, err := Parse("SELECT * FROM t LIMIT ALL", mysql)
	assert.Error(t, err)

	redshift := dialect.Dialect{Vendor: dialect.Redshift}
	_, err2 := Parse("SELECT * FROM t LIMIT ALL", redshift)
	assert.NoError(t, err2)
}

func TestParseCommaOffsetLimitGatedByDialect(t *testing.T) {
	redshift := dialect.Dialect{Vendor: dialect.Redshift}
	_, err := Parse("SELECT * FROM t LIMIT 5, 10", redshift)
	assert.Error(t, err)

	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	_, err2 := Parse("SELECT * FROM t LIMIT 5, 10", mysql)
	assert.NoError(t, err2)
}

func TestParseJoinWithOnCondition(t *testing.T) {
	stmt, err := Parse("SELECT * FROM a JOIN b ON a.id = b.a_id", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	fc, ok := sel.From.(*ast.FromClause)
	require.True(t, ok)
	j, ok := fc.Table.(*ast.JoinExpr)
	require.True(t, ok)
	assert.NotNil(t, j.Cond)
}

func TestParseCreateTable(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t (id INT PRIMARY KEY, name VARCHAR(255))", dialect.Default)
	require.NoError(t, err)
	c, ok := stmt.(*ast.CreateTableStmt)
	require.True(t, ok)
	assert.Len(t, c.Elements, 2)
}

func TestParseCaseExpression(t *testing.T) {
	stmt, err := Parse("SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	ae, ok := sel.Columns[0].Item.(*ast.AliasedExpr)
	require.True(t, ok)
	c, ok := ae.Expr.(*ast.CaseExpr)
	require.True(t, ok)
	assert.Len(t, c.Whens, 1)
	assert.NotNil(t, c.ElseVal)
}

func TestLocationsAreMonotonicAcrossTokens(t *testing.T) {
	stmt, err := Parse("SELECT a, b FROM t", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	prevEnd := -1
	for _, c := range sel.Columns {
		assert.GreaterOrEqual(t, c.Item.Pos(), prevEnd)
		prevEnd = c.Item.End()
	}
}

func TestParseWherePlaceholderStandsInForClause(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t ?", dialect.Default)
	require.NoError(t, err)
	sel := stmt.(*ast.SelectStmt)
	ph, ok := sel.Where.(*ast.PlaceholderClause)
	require.True(t, ok)
	assert.Equal(t, "?", ph.Tok.Text())
	assert.Nil(t, sel.GroupBy)
}

func TestParseGroupByAndHavingPlaceholdersStandInForTheirSlots(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE x = 1 ? ? ORDER BY x", dialect.Default)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	_, ok = sel.GroupBy.(*ast.PlaceholderClause)
	assert.True(t, ok)
	_, ok = sel.Having.(*ast.PlaceholderClause)
	assert.True(t, ok)
	_, ok = sel.OrderBy.(*ast.OrderByClause)
	assert.True(t, ok)
}

func TestParseOrderByLimitIntoLockPlaceholdersStandInForTheirSlots(t *testing.T) {
	stmt, err := Parse(
		"SELECT * FROM t WHERE x = 1 GROUP BY x HAVING x > 0 ORDER BY x LIMIT 1 ? ? ?",
		dialect.Default)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	_, ok = sel.OrderBy.(*ast.OrderByClause)
	assert.True(t, ok)
	_, ok = sel.Limit.(*ast.LimitClause)
	assert.True(t, ok)
	_, ok = sel.Into2.(*ast.PlaceholderClause)
	assert.True(t, ok)
	_, ok = sel.Lock.(*ast.PlaceholderClause)
	assert.True(t, ok)
	_, ok = sel.Into3.(*ast.PlaceholderClause)
	assert.True(t, ok)
}

func TestParseIntoAndFromPlaceholdersStandInIndependently(t *testing.T) {
	stmt, err := Parse("SELECT * ? ? WHERE x = 1", dialect.Default)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	_, ok = sel.Into1.(*ast.PlaceholderClause)
	assert.True(t, ok)
	_, ok = sel.From.(*ast.PlaceholderClause)
	assert.True(t, ok)
	require.NotNil(t, sel.Where)
}

func TestParseRejectsBareReservedWordAsColumnName(t *testing.T) {
	_, err := Parse("SELECT FROM FROM x", dialect.Default)
	require.Error(t, err)
}

func TestParseAcceptsQuotedReservedWordAsIdentifier(t *testing.T) {
	stmt, err := Parse("SELECT `from` FROM x", dialect.Dialect{Vendor: dialect.MySQL})
	require.NoError(t, err)
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	ae, ok := sel.Columns[0].Item.(*ast.AliasedExpr)
	require.True(t, ok)
	_, ok = ae.Expr.(*ast.Name)
	assert.True(t, ok)
}

func TestParseIsDeterministic(t *testing.T) {
	sql := "SELECT a FROM t WHERE x = 1 AND y = 2 ORDER BY a LIMIT 10"
	stmt1, err1 := Parse(sql, dialect.Default)
	stmt2, err2 := Parse(sql, dialect.Default)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, stmt1.Pos(), stmt2.Pos())
	assert.Equal(t, stmt1.End(), stmt2.End())
}
