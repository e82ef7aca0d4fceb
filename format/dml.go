package format

import "github.com/relaysql/sqltree/ast"

func (p *printer) formatInsert(n *ast.InsertStmt) {
	p.writeKeyword("INSERT")
	if n.Ignore != nil {
		p.write(" ")
		p.writeKeyword("IGNORE")
	}
	if n.Into != nil {
		p.write(" ")
		p.writeKeyword("INTO")
	}
	p.write(" ")
	p.formatSimpleTableName(n.Table)
	if n.Columns != nil {
		p.write(" ")
		p.formatColumnList(n.Columns)
	}
	p.newline()
	p.formatInsertValues(n.Values)
	if n.OnDup != nil {
		p.newline()
		p.formatOnDuplicate(n.OnDup)
	}
}

func (p *printer) formatReplace(n *ast.ReplaceStmt) {
	p.writeKeyword("REPLACE")
	if n.Into != nil {
		p.write(" ")
		p.writeKeyword("INTO")
	}
	p.write(" ")
	p.formatSimpleTableName(n.Table)
	if n.Columns != nil {
		p.write(" ")
		p.formatColumnList(n.Columns)
	}
	p.newline()
	p.formatInsertValues(n.Values)
}

func (p *printer) formatColumnList(c *ast.ColumnList) {
	p.write("(")
	formatCommaList(p, c.Columns, func(id *ast.Ident) { p.formatIdent(id) })
	p.write(")")
}

func (p *printer) formatInsertValues(v ast.InsertValues) {
	switch n := v.(type) {
	case *ast.ValuesClause:
		p.writeKeyword(n.Values.Upper())
		p.write(" ")
		formatCommaList(p, n.Rows, func(row *ast.ValuesRow) { p.formatValuesRow(row) })
	case *ast.DefaultValuesClause:
		p.writeKeyword("DEFAULT")
		p.write(" ")
		p.writeKeyword("VALUES")
	case *ast.SelectValues:
		p.formatSubselect(n.Subselect)
	}
}

func (p *printer) formatValuesRow(row *ast.ValuesRow) {
	p.write("(")
	formatCommaList(p, row.Values, func(e ast.Expr) { p.formatExpr(e) })
	p.write(")")
}

func (p *printer) formatOnDuplicate(o *ast.OnDuplicateClause) {
	p.writeKeyword("ON")
	p.write(" ")
	p.writeKeyword("DUPLICATE")
	p.write(" ")
	p.writeKeyword("KEY")
	p.write(" ")
	p.writeKeyword("UPDATE")
	p.write(" ")
	formatCommaList(p, o.Assignments, func(a *ast.Assignment) { p.formatAssignment(a) })
}

func (p *printer) formatUpdate(n *ast.UpdateStmt) {
	p.writeKeyword("UPDATE")
	p.write(" ")
	p.formatTableExpr(n.Table)
	p.newline()
	p.writeKeyword("SET")
	p.write(" ")
	formatCommaList(p, n.Assignments, func(a *ast.Assignment) { p.formatAssignment(a) })
	if n.From != nil {
		p.newline()
		p.writeKeyword("FROM")
		p.write(" ")
		p.formatTableExpr(n.From.Table)
	}
	if n.Where != nil {
		p.newline()
		p.formatWhereSlot(n.Where)
	}
	if n.OrderBy != nil {
		p.newline()
		p.formatOrderBy(n.OrderBy)
	}
	if n.Limit != nil {
		p.newline()
		p.formatLimit(n.Limit)
	}
}

func (p *printer) formatDelete(n *ast.DeleteStmt) {
	p.writeKeyword("DELETE")
	if n.From != nil {
		p.write(" ")
		p.writeKeyword("FROM")
	}
	p.write(" ")
	p.formatTableExpr(n.Table)
	if n.Using != nil {
		p.newline()
		p.writeKeyword("USING")
		p.write(" ")
		p.formatTableExpr(n.Using.Table)
	}
	if n.Where != nil {
		p.newline()
		p.formatWhereSlot(n.Where)
	}
	if n.OrderBy != nil {
		p.newline()
		p.formatOrderBy(n.OrderBy)
	}
	if n.Limit != nil {
		p.newline()
		p.formatLimit(n.Limit)
	}
}
