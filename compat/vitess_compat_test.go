//go:build compat_vitess

// Package compat cross-checks this module's table extraction against
// github.com/blastrain/vitess-sqlparser on a shared MySQL corpus,
// grounded on the teacher's compare_test.go/compat_test.go (same
// "run both parsers over the same queries" shape, originally used for
// benchmarking and full AST round-tripping here narrowed to the one
// comparison that survives across two independently-built grammars:
// which tables each says a statement touches).
package compat

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vitess "github.com/blastrain/vitess-sqlparser/sqlparser"

	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/tools"
)

var corpus = []string{
	"SELECT id, name FROM users",
	"SELECT * FROM users WHERE status = 'active' AND age > 18",
	"SELECT u.id, o.total FROM users u JOIN orders o ON u.id = o.user_id",
	"SELECT * FROM users WHERE id IN (SELECT user_id FROM orders WHERE total > 100)",
	"SELECT status, COUNT(*) FROM users GROUP BY status HAVING COUNT(*) > 10",
	"INSERT INTO users (id, name) VALUES (1, 'John')",
	"UPDATE users SET name = 'Jane' WHERE id = 1",
	"DELETE FROM users WHERE status = 'deleted'",
}

// vitessTables walks a vitess-sqlparser AST and collects the table
// names it resolves, the same dotted-qualifier join tools.GetTables
// uses, so the two sorted lists can be compared directly.
func vitessTables(t *testing.T, sql string) []string {
	t.Helper()
	stmt, err := vitess.Parse(sql)
	require.NoError(t, err)

	var tables []string
	err = vitess.Walk(func(node vitess.SQLNode) (bool, error) {
		if tn, ok := node.(vitess.TableName); ok {
			if tn.Qualifier.IsEmpty() {
				tables = append(tables, tn.Name.String())
			} else {
				tables = append(tables, tn.Qualifier.String()+"."+tn.Name.String())
			}
		}
		return true, nil
	}, stmt)
	require.NoError(t, err)
	return tables
}

func TestTableExtractionMatchesVitess(t *testing.T) {
	for _, sql := range corpus {
		t.Run(sql, func(t *testing.T) {
			ours, err := tools.GetTables(sql, dialect.Dialect{Vendor: dialect.MySQL})
			require.NoError(t, err)
			theirs := vitessTables(t, sql)

			sort.Strings(ours)
			sort.Strings(theirs)
			assert.Equal(t, theirs, ours)
		})
	}
}
