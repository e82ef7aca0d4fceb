package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/parser"
)

func TestWalkDescendsIntoAlterTableActions(t *testing.T) {
	stmt, err := parser.Parse(
		"ALTER TABLE t ADD COLUMN c INT DEFAULT (1+1), DROP COLUMN d, RENAME COLUMN e TO f",
		dialect.Default)
	require.NoError(t, err)

	var idents []string
	Inspect(stmt, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			idents = append(idents, id.Text())
		}
		return true
	})

	assert.Contains(t, idents, "c")
	assert.Contains(t, idents, "d")
	assert.Contains(t, idents, "e")
	assert.Contains(t, idents, "f")
}

type upperRewriter struct{}

func (upperRewriter) Transform(n ast.Node) ast.Node {
	if num, ok := n.(*ast.NumberLit); ok {
		num.Tok.Text = "99"
	}
	return n
}

func TestRewriteDescendsIntoAlterTableActionDefaultExpr(t *testing.T) {
	stmt, err := parser.Parse("ALTER TABLE t ADD COLUMN c INT DEFAULT 1", dialect.Default)
	require.NoError(t, err)

	Rewrite(upperRewriter{}, stmt)

	alter, ok := stmt.(*ast.AlterTableStmt)
	require.True(t, ok)
	col, ok := alter.Actions[0].Item.Element.(*ast.ColumnDef)
	require.True(t, ok)
	require.Len(t, col.Constraints, 1)
	lit, ok := col.Constraints[0].Default.(*ast.NumberLit)
	require.True(t, ok)
	assert.Equal(t, "99", lit.Tok.Text)
}
