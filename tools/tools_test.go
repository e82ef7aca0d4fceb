package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/dialect"
)

func TestGetTablesSimpleSelect(t *testing.T) {
	tables, err := GetTables("SELECT * FROM users", dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, tables)
}

func TestGetTablesJoin(t *testing.T) {
	tables, err := GetTables(
		"SELECT u.id FROM users u JOIN orders o ON u.id = o.user_id", dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, tables)
}

func TestGetTablesDottedSchemaQualified(t *testing.T) {
	tables, err := GetTables("SELECT * FROM app.users", dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.users"}, tables)
}

func TestGetTablesSubqueryAndInsert(t *testing.T) {
	tables, err := GetTables(
		"INSERT INTO logs (a) SELECT a FROM staging", dialect.Dialect{Vendor: dialect.MySQL})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"logs", "staging"}, tables)
}

func TestGetDistinctTablesDedupes(t *testing.T) {
	tables, err := GetDistinctTables(
		"SELECT * FROM users WHERE id IN (SELECT id FROM users WHERE active = 1)", dialect.Default)
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, tables)
}

func TestGetTablesPropagatesParseError(t *testing.T) {
	_, err := GetTables("SELECT FROM FROM FROM", dialect.Default)
	assert.Error(t, err)
}
