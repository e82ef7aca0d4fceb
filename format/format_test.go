package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/parser"
)

func formatSQL(t *testing.T, sql string, d dialect.Dialect) string {
	t.Helper()
	stmt, err := parser.Parse(sql, d)
	require.NoError(t, err)
	return Format(stmt, d)
}

func TestFormatSimpleSelectNormalizesKeywordCase(t *testing.T) {
	out := formatSQL(t, "select a, b from users where id = 1", dialect.Default)
	assert.Equal(t, "SELECT a, b\nFROM users\nWHERE id = 1", out)
}

func TestFormatIdempotent(t *testing.T) {
	d := dialect.Default
	first := formatSQL(t, "SELECT a FROM t WHERE x = 1 AND y = 2 ORDER BY a LIMIT 10", d)
	stmt2, err := parser.Parse(first, d)
	require.NoError(t, err)
	second := Format(stmt2, d)
	assert.Equal(t, first, second)
}

func TestFormatLimitCommaOffsetMySQL(t *testing.T) {
	out := formatSQL(t, "SELECT * FROM t LIMIT 5, 10", dialect.Dialect{Vendor: dialect.MySQL})
	assert.Equal(t, "SELECT *\nFROM t\nLIMIT 10 OFFSET 5", out)
}

func TestFormatLimitCommaOffsetCanonicalizesToOffsetForm(t *testing.T) {
	out := formatSQL(t, "select x from y limit 1, 2", dialect.Dialect{Vendor: dialect.MySQL})
	assert.Equal(t, "SELECT x\nFROM y\nLIMIT 2 OFFSET 1", out)
}

func TestFormatLimitAllRedshift(t *testing.T) {
	out := formatSQL(t, "SELECT * FROM t LIMIT ALL", dialect.Dialect{Vendor: dialect.Redshift})
	assert.Equal(t, "SELECT *\nFROM t\nLIMIT ALL", out)
}

func TestFormatInsertValuesOnDuplicateKeyUpdate(t *testing.T) {
	out := formatSQL(t,
		"INSERT INTO t (a, b) VALUE (1, 2) ON DUPLICATE KEY UPDATE a = a + 1",
		dialect.Dialect{Vendor: dialect.MySQL})
	assert.Equal(t,
		"INSERT INTO t (a, b)\nVALUE (1, 2)\nON DUPLICATE KEY UPDATE a = a + 1",
		out)
}

func TestFormatBooleanChainReflowsWhenTooLong(t *testing.T) {
	opts := Options{MaxLineLength: 30, Indent: "    "}
	d := dialect.Default
	stmt, err := parser.Parse(
		"SELECT * FROM t WHERE aaaaaaaaaa = 1 AND bbbbbbbbbb = 2 AND cccccccccc = 3", d)
	require.NoError(t, err)
	out := FormatWithOptions(stmt, d, opts)
	assert.Contains(t, out, "WHERE aaaaaaaaaa = 1\nAND bbbbbbbbbb = 2\nAND cccccccccc = 3")
}

func TestFormatUnionStatement(t *testing.T) {
	out := formatSQL(t, "SELECT a FROM t1 UNION ALL SELECT a FROM t2", dialect.Default)
	assert.Equal(t, "SELECT a\nFROM t1\nUNION ALL\nSELECT a\nFROM t2", out)
}

func TestFormatIdentQuotesReservedWord(t *testing.T) {
	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	out := formatSQL(t, "SELECT `from` FROM t", mysql)
	assert.Equal(t, "SELECT `from`\nFROM t", out)
}

func TestFormatIdentDropsUnneededSourceQuoting(t *testing.T) {
	mysql := dialect.Dialect{Vendor: dialect.MySQL}
	out := formatSQL(t, "SELECT `name` FROM t", mysql)
	assert.Equal(t, "SELECT name\nFROM t", out)
}

func TestFormatWherePlaceholderClause(t *testing.T) {
	out := formatSQL(t, "SELECT * FROM t ?", dialect.Default)
	assert.Equal(t, "SELECT *\nFROM t\n?", out)
}

func TestFormatGetTablesScenario(t *testing.T) {
	out := formatSQL(t,
		"SELECT u.id, o.total FROM users u JOIN orders o ON u.id = o.user_id WHERE u.active = 1",
		dialect.Default)
	assert.Equal(t,
		"SELECT u.id, o.total\nFROM users u\nJOIN orders o ON u.id = o.user_id\nWHERE u.active = 1",
		out)
}
