package format

import "github.com/relaysql/sqltree/ast"

func (p *printer) formatCreateTable(n *ast.CreateTableStmt) {
	p.writeKeyword("CREATE")
	p.write(" ")
	if n.Temporary != nil {
		p.writeKeyword("TEMPORARY")
		p.write(" ")
	}
	p.writeKeyword("TABLE")
	p.write(" ")
	if n.If != nil {
		p.writeKeyword("IF")
		p.write(" ")
		p.writeKeyword("NOT")
		p.write(" ")
		p.writeKeyword("EXISTS")
		p.write(" ")
	}
	p.formatSimpleTableName(n.Name)
	p.write(" (")
	p.indented(func() {
		for i, elem := range n.Elements {
			p.newline()
			p.formatTableElement(elem.Item)
			if i < len(n.Elements)-1 {
				p.write(",")
			}
		}
	})
	p.newline()
	p.write(")")
	for _, opt := range n.Options {
		p.write(" ")
		p.formatTableOption(opt)
	}
}

func (p *printer) formatTableElement(e ast.TableElement) {
	switch n := e.(type) {
	case *ast.ColumnDef:
		p.formatColumnDef(n)
	case *ast.TableConstraint:
		p.formatTableConstraint(n)
	}
}

func (p *printer) formatColumnDef(n *ast.ColumnDef) {
	p.formatIdent(n.Name)
	p.write(" ")
	p.formatName(n.Type)
	if n.TypeArgs != nil {
		p.write("(")
		formatCommaList(p, n.TypeArgs, func(lit *ast.NumberLit) { p.write(lit.Text()) })
		p.write(")")
	}
	for _, c := range n.Constraints {
		p.write(" ")
		p.formatColumnConstraint(c)
	}
}

func (p *printer) formatColumnConstraint(c *ast.ColumnConstraint) {
	for i, kw := range c.Keywords {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	switch {
	case c.Default != nil:
		p.write(" ")
		p.formatExpr(c.Default)
	case c.RefTable != nil:
		p.write(" ")
		p.formatSimpleTableName(c.RefTable)
		if c.RefCols != nil {
			p.write(" ")
			p.formatColumnList(c.RefCols)
		}
	}
}

func (p *printer) formatTableConstraint(n *ast.TableConstraint) {
	if n.ConstraintKw != nil {
		p.writeKeyword("CONSTRAINT")
		p.write(" ")
		p.formatIdent(n.Name)
		p.write(" ")
	}
	for i, kw := range n.Keywords {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	if n.Cols != nil {
		p.write(" ")
		p.formatColumnList(n.Cols)
	}
	if n.RefTable != nil {
		p.write(" ")
		p.writeKeyword("REFERENCES")
		p.write(" ")
		p.formatSimpleTableName(n.RefTable)
		if n.RefCols != nil {
			p.write(" ")
			p.formatColumnList(n.RefCols)
		}
	}
	if n.CheckExpr != nil {
		p.write(" (")
		p.formatExpr(n.CheckExpr)
		p.write(")")
	}
}

func (p *printer) formatTableOption(o *ast.TableOption) {
	for i, kw := range o.Keywords {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	if o.Eq != nil {
		p.write("=")
	} else if o.Value != nil {
		p.write(" ")
	}
	if o.Value != nil {
		p.formatOptionValue(o.Value)
	}
}

func (p *printer) formatOptionValue(v ast.Node) {
	switch n := v.(type) {
	case *ast.Ident:
		p.formatIdent(n)
	case *ast.StringLit:
		p.write(n.Text())
	case *ast.NumberLit:
		p.write(n.Text())
	}
}

func (p *printer) formatCreateIndex(n *ast.CreateIndexStmt) {
	p.writeKeyword("CREATE")
	p.write(" ")
	if n.Unique != nil {
		p.writeKeyword("UNIQUE")
		p.write(" ")
	}
	p.writeKeyword("INDEX")
	p.write(" ")
	p.formatIdent(n.Name)
	p.write(" ")
	p.writeKeyword("ON")
	p.write(" ")
	p.formatSimpleTableName(n.Table)
	p.write(" ")
	p.formatColumnList(n.Cols)
}

func (p *printer) formatAlterTable(n *ast.AlterTableStmt) {
	p.writeKeyword("ALTER")
	p.write(" ")
	p.writeKeyword("TABLE")
	p.write(" ")
	p.formatSimpleTableName(n.Name)
	p.write(" ")
	formatCommaList(p, n.Actions, func(a *ast.AlterTableAction) { p.formatAlterTableAction(a) })
}

func (p *printer) formatAlterTableAction(a *ast.AlterTableAction) {
	lead := a.Keywords
	if a.RenameTo != nil {
		// The trailing TO keyword is written between the two names below.
		lead = lead[:len(lead)-1]
	}
	for i, kw := range lead {
		if i > 0 {
			p.write(" ")
		}
		p.writeKeyword(kw.Upper())
	}
	switch {
	case a.Element != nil:
		p.write(" ")
		p.formatTableElement(a.Element)
	case a.RenameTo != nil:
		p.write(" ")
		p.formatIdent(a.Column)
		p.write(" ")
		p.writeKeyword("TO")
		p.write(" ")
		p.formatIdent(a.RenameTo)
	case a.Column != nil:
		p.write(" ")
		p.formatIdent(a.Column)
	}
}
