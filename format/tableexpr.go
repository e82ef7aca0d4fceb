package format

import "github.com/relaysql/sqltree/ast"

func (p *printer) formatTableExpr(e ast.TableExpr) {
	switch n := e.(type) {
	case *ast.SimpleTableName:
		p.formatSimpleTableName(n)
	case *ast.AliasedTableExpr:
		p.formatAliasedTableExpr(n)
	case *ast.SubqueryTableExpr:
		p.formatSubqueryTableExpr(n)
	case *ast.ParenTableExpr:
		p.write("(")
		p.formatTableExpr(n.Expr)
		p.write(")")
	case *ast.JoinExpr:
		p.formatJoin(n)
	}
}

func (p *printer) formatAliasedTableExpr(n *ast.AliasedTableExpr) {
	p.formatTableExpr(n.Expr)
	if n.Alias != nil {
		p.write(" ")
		if n.As != nil {
			p.writeKeyword("AS")
			p.write(" ")
		}
		p.formatIdent(n.Alias)
	}
	for _, hint := range n.Hints {
		p.write(" ")
		p.formatIndexHint(hint)
	}
}

func (p *printer) formatIndexHint(h *ast.IndexHint) {
	for i, kw := range h.Keywords {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	p.write(" (")
	formatCommaList(p, h.Names, func(id *ast.Ident) { p.formatIdent(id) })
	p.write(")")
}

func (p *printer) formatSubqueryTableExpr(n *ast.SubqueryTableExpr) {
	if n.Lateral != nil {
		p.writeKeyword("LATERAL")
		p.write(" ")
	}
	p.formatSubselect(n.Subselect)
	p.write(" ")
	if n.As != nil {
		p.writeKeyword("AS")
		p.write(" ")
	}
	p.formatIdent(n.Alias)
	if n.Cols != nil {
		p.write(" (")
		formatCommaList(p, n.Cols, func(id *ast.Ident) { p.formatIdent(id) })
		p.write(")")
	}
}

func (p *printer) formatJoin(n *ast.JoinExpr) {
	p.formatTableExpr(n.Left)
	p.newline()
	for i, kw := range n.JoinOp {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	p.write(" ")
	p.formatTableExpr(n.Right)
	if n.On != nil {
		p.write(" ")
		p.writeKeyword("ON")
		p.write(" ")
		p.formatExpr(n.Cond)
	}
	if n.Using != nil {
		p.write(" ")
		p.writeKeyword("USING")
		p.write(" (")
		formatCommaList(p, n.UCols, func(id *ast.Ident) { p.formatIdent(id) })
		p.write(")")
	}
}
