package format

import "github.com/relaysql/sqltree/ast"

func (p *printer) formatStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.SelectStmt:
		p.formatSelect(n)
	case *ast.UnionStatement:
		p.formatUnion(n)
	case *ast.InsertStmt:
		p.formatInsert(n)
	case *ast.ReplaceStmt:
		p.formatReplace(n)
	case *ast.UpdateStmt:
		p.formatUpdate(n)
	case *ast.DeleteStmt:
		p.formatDelete(n)
	case *ast.TransactionStmt:
		p.writeKeyword(n.Verb.Text())
		p.formatOpaqueTail(n.Tail)
	case *ast.SetStmt:
		p.writeKeyword("SET")
		p.write(" ")
		formatCommaList(p, n.Assignments, func(a *ast.Assignment) { p.formatAssignment(a) })
	case *ast.ShowStmt:
		p.writeKeyword(n.Verb.Text())
		p.formatOpaqueTail(n.Tail)
	case *ast.FlushStmt:
		p.writeKeyword("FLUSH")
		p.formatOpaqueTail(n.Tail)
	case *ast.RenameTableStmt:
		p.writeKeyword("RENAME")
		p.write(" ")
		p.writeKeyword("TABLE")
		p.write(" ")
		formatCommaList(p, n.Pairs, func(r *ast.RenamePair) {
			p.formatSimpleTableName(r.Old)
			p.write(" ")
			p.writeKeyword("TO")
			p.write(" ")
			p.formatSimpleTableName(r.New)
		})
	case *ast.TruncateStmt:
		p.writeKeyword("TRUNCATE")
		p.write(" ")
		p.writeKeyword("TABLE")
		p.write(" ")
		p.formatSimpleTableName(n.Name)
	case *ast.DropTableStmt:
		p.writeKeyword("DROP")
		p.write(" ")
		p.writeKeyword("TABLE")
		if n.If != nil {
			p.write(" ")
			p.writeKeyword("IF")
			p.write(" ")
			p.writeKeyword("EXISTS")
		}
		p.write(" ")
		formatCommaList(p, n.Tables, func(t *ast.SimpleTableName) { p.formatSimpleTableName(t) })
	case *ast.DropIndexStmt:
		p.writeKeyword("DROP")
		p.write(" ")
		p.writeKeyword("INDEX")
		p.write(" ")
		p.formatIdent(n.Name)
		p.write(" ")
		p.writeKeyword("ON")
		p.write(" ")
		p.formatSimpleTableName(n.Table)
	case *ast.CreateTableStmt:
		p.formatCreateTable(n)
	case *ast.CreateIndexStmt:
		p.formatCreateIndex(n)
	case *ast.AlterTableStmt:
		p.formatAlterTable(n)
	case *ast.ExplainStmt:
		p.writeKeyword("EXPLAIN")
		p.formatOpaqueTail(n.Options)
		p.write(" ")
		p.formatStatement(n.Stmt)
	}
}

func (p *printer) formatOpaqueTail(tail *ast.OpaqueTail) {
	if tail == nil {
		return
	}
	for _, leaf := range tail.Leaves {
		p.write(" ")
		p.write(leaf.Text())
	}
}

func (p *printer) formatAssignment(a *ast.Assignment) {
	p.formatName(a.Column)
	p.write(" = ")
	p.formatExpr(a.Value)
}

func (p *printer) formatSubselect(s *ast.Subselect) {
	if s.Parenthesized() {
		p.write("(")
		p.formatStatement(s.Select)
		p.write(")")
		return
	}
	p.formatStatement(s.Select)
}

func (p *printer) formatUnion(u *ast.UnionStatement) {
	p.formatSubselect(u.Head)
	for _, leg := range u.Legs {
		p.newline()
		p.writeKeyword("UNION")
		if leg.AllOrDistinct != nil {
			p.write(" ")
			p.writeKeyword(leg.AllOrDistinct.Upper())
		}
		p.newline()
		p.formatSubselect(leg.Subselect)
	}
	if u.OrderBy != nil {
		p.newline()
		p.formatOrderBy(u.OrderBy)
	}
	if u.Limit != nil {
		p.newline()
		p.formatLimit(u.Limit)
	}
}

func (p *printer) formatSelect(s *ast.SelectStmt) {
	if s.With != nil {
		p.formatWith(s.With)
		p.newline()
	}
	p.writeKeyword("SELECT")
	for _, m := range s.Modifiers {
		p.write(" ")
		p.writeKeyword(m.Upper())
	}
	p.write(" ")
	formatCommaList(p, s.Columns, func(c ast.SelectExpr) { p.formatSelectExpr(c) })

	if s.Into1 != nil {
		p.newline()
		p.formatIntoSlot(s.Into1)
	}
	if s.From != nil {
		p.newline()
		p.formatFromSlot(s.From)
	}
	if s.Where != nil {
		p.newline()
		p.formatWhereSlot(s.Where)
	}
	if s.GroupBy != nil {
		p.newline()
		p.formatGroupBySlot(s.GroupBy)
	}
	if s.Having != nil {
		p.newline()
		p.formatHavingSlot(s.Having)
	}
	if s.OrderBy != nil {
		p.newline()
		p.formatOrderBySlot(s.OrderBy)
	}
	if s.Limit != nil {
		p.newline()
		p.formatLimitSlot(s.Limit)
	}
	if s.Into2 != nil {
		p.newline()
		p.formatIntoSlot(s.Into2)
	}
	if s.Lock != nil {
		p.newline()
		p.formatLockSlot(s.Lock)
	}
	if s.Into3 != nil {
		p.newline()
		p.formatIntoSlot(s.Into3)
	}
}

func (p *printer) formatWith(w *ast.WithClause) {
	p.writeKeyword("WITH")
	if w.Recursive != nil {
		p.write(" ")
		p.writeKeyword("RECURSIVE")
	}
	p.write(" ")
	formatCommaList(p, w.CTEs, func(c *ast.CTE) { p.formatCTE(c) })
}

func (p *printer) formatCTE(c *ast.CTE) {
	p.formatIdent(c.Name)
	if c.Cols != nil {
		p.write(" (")
		formatCommaList(p, c.Cols, func(id *ast.Ident) { p.formatIdent(id) })
		p.write(")")
	}
	p.write(" ")
	p.writeKeyword("AS")
	p.write(" ")
	p.formatSubselect(c.Subselect)
}

func (p *printer) formatInto(into *ast.IntoClause) {
	p.writeKeyword("INTO")
	p.write(" ")
	formatCommaList(p, into.Targets, func(id *ast.Ident) { p.formatIdent(id) })
}

func (p *printer) formatOrderBy(ob *ast.OrderByClause) {
	p.writeKeyword("ORDER BY")
	p.write(" ")
	formatCommaList(p, ob.Items, func(it *ast.OrderByItem) {
		p.formatExpr(it.Expr)
		if it.Direction != nil {
			p.write(" ")
			p.writeKeyword(it.Direction.Upper())
		}
	})
}

func (p *printer) formatLimit(l *ast.LimitClause) {
	p.writeKeyword("LIMIT")
	p.write(" ")
	if l.All != nil {
		p.writeKeyword("ALL")
		return
	}
	p.formatExpr(l.Count)
	if l.OffsetExpr != nil {
		p.write(" ")
		p.writeKeyword("OFFSET")
		p.write(" ")
		p.formatExpr(l.OffsetExpr)
	}
}

func (p *printer) formatWhereSlot(s ast.WhereSlot) {
	switch n := s.(type) {
	case *ast.WhereClause:
		p.writeKeyword("WHERE")
		p.write(" ")
		p.formatExpr(n.Expr)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatGroupBySlot(s ast.GroupBySlot) {
	switch n := s.(type) {
	case *ast.GroupByClause:
		p.writeKeyword("GROUP BY")
		p.write(" ")
		formatCommaList(p, n.Items, func(e ast.Expr) { p.formatExpr(e) })
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatHavingSlot(s ast.HavingSlot) {
	switch n := s.(type) {
	case *ast.HavingClause:
		p.writeKeyword("HAVING")
		p.write(" ")
		p.formatExpr(n.Expr)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatIntoSlot(s ast.IntoSlot) {
	switch n := s.(type) {
	case *ast.IntoClause:
		p.formatInto(n)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatFromSlot(s ast.FromSlot) {
	switch n := s.(type) {
	case *ast.FromClause:
		p.writeKeyword("FROM")
		p.write(" ")
		p.formatTableExpr(n.Table)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatOrderBySlot(s ast.OrderBySlot) {
	switch n := s.(type) {
	case *ast.OrderByClause:
		p.formatOrderBy(n)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatLimitSlot(s ast.LimitSlot) {
	switch n := s.(type) {
	case *ast.LimitClause:
		p.formatLimit(n)
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatLockSlot(s ast.LockSlot) {
	switch n := s.(type) {
	case *ast.LockClause:
		p.writeKeyword("FOR")
		p.write(" ")
		p.writeKeyword(n.Mode.Upper())
		for _, kw := range n.Wait {
			p.write(" ")
			p.writeKeyword(kw.Upper())
		}
	case *ast.PlaceholderClause:
		p.write(n.Tok.Text())
	}
}

func (p *printer) formatSelectExpr(e ast.SelectExpr) {
	switch n := e.(type) {
	case *ast.StarExpr:
		p.write("*")
	case *ast.QualifiedStar:
		p.formatName(n.Qualifier)
		p.write(".*")
	case *ast.AliasedExpr:
		p.formatExpr(n.Expr)
		if n.Alias != nil {
			p.write(" ")
			if n.As != nil {
				p.writeKeyword("AS")
				p.write(" ")
			}
			p.formatIdent(n.Alias)
		}
	}
}
