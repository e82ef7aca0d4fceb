package visitor

import "github.com/relaysql/sqltree/ast"

// Transformer rewrites one node at a time. Transform returns the node
// that should replace n in its parent (n itself, to leave it
// unchanged); Rewrite then recurses into whatever node Transform
// returned.
type Transformer interface {
	Transform(n ast.Node) ast.Node
}

// Rewrite applies t to node and every descendant, bottom-up being
// unnecessary here since Transform sees a node before its children are
// rewritten (top-down, matching Walk's pre-order in visitor.go).
func Rewrite(t Transformer, node ast.Node) ast.Node {
	if node == nil || isNilNode(node) {
		return node
	}
	node = t.Transform(node)
	rewriteChildren(t, node)
	return node
}

func rewriteExpr(t Transformer, e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	out := Rewrite(t, e)
	if out == nil {
		return nil
	}
	return out.(ast.Expr)
}

// rewriteWhereSlot rewrites the expression inside a WHERE clause,
// leaving a PlaceholderClause (or an absent slot) untouched.
func rewriteWhereSlot(t Transformer, w ast.WhereSlot) {
	if wc, ok := w.(*ast.WhereClause); ok {
		wc.Expr = rewriteExpr(t, wc.Expr)
	}
}

func rewriteTableExpr(t Transformer, e ast.TableExpr) ast.TableExpr {
	if e == nil {
		return nil
	}
	out := Rewrite(t, e)
	if out == nil {
		return nil
	}
	return out.(ast.TableExpr)
}

func rewriteChildren(t Transformer, node ast.Node) {
	switch n := node.(type) {

	case *ast.SelectStmt:
		if n.With != nil {
			for i, cte := range n.With.CTEs {
				Rewrite(t, cte.Item)
				n.With.CTEs[i] = cte
			}
		}
		for i := range n.Columns {
			Rewrite(t, n.Columns[i].Item)
		}
		if fc, ok := n.From.(*ast.FromClause); ok {
			fc.Table = rewriteTableExpr(t, fc.Table)
		}
		rewriteWhereSlot(t, n.Where)
		if gb, ok := n.GroupBy.(*ast.GroupByClause); ok {
			for i := range gb.Items {
				gb.Items[i].Item = rewriteExpr(t, gb.Items[i].Item)
			}
		}
		if hv, ok := n.Having.(*ast.HavingClause); ok {
			hv.Expr = rewriteExpr(t, hv.Expr)
		}
		if ob, ok := n.OrderBy.(*ast.OrderByClause); ok {
			for i := range ob.Items {
				ob.Items[i].Item.Expr = rewriteExpr(t, ob.Items[i].Item.Expr)
			}
		}
		if lim, ok := n.Limit.(*ast.LimitClause); ok {
			if lim.Count != nil {
				lim.Count = rewriteExpr(t, lim.Count)
			}
			if lim.OffsetExpr != nil {
				lim.OffsetExpr = rewriteExpr(t, lim.OffsetExpr)
			}
		}

	case *ast.CTE:
		Rewrite(t, n.Subselect)

	case *ast.Subselect:
		n.Select = Rewrite(t, n.Select).(ast.Statement)

	case *ast.UnionStatement:
		Rewrite(t, n.Head)
		for _, leg := range n.Legs {
			Rewrite(t, leg.Subselect)
		}

	case *ast.InsertStmt:
		n.Table = Rewrite(t, n.Table).(*ast.SimpleTableName)
		Rewrite(t, n.Values)
		if n.OnDup != nil {
			for _, a := range n.OnDup.Assignments {
				a.Item.Value = rewriteExpr(t, a.Item.Value)
			}
		}

	case *ast.ReplaceStmt:
		n.Table = Rewrite(t, n.Table).(*ast.SimpleTableName)
		Rewrite(t, n.Values)

	case *ast.ValuesClause:
		for _, row := range n.Rows {
			for i := range row.Item.Values {
				row.Item.Values[i].Item = rewriteExpr(t, row.Item.Values[i].Item)
			}
		}

	case *ast.SelectValues:
		Rewrite(t, n.Subselect)

	case *ast.UpdateStmt:
		n.Table = rewriteTableExpr(t, n.Table)
		for _, a := range n.Assignments {
			a.Item.Value = rewriteExpr(t, a.Item.Value)
		}
		if n.From != nil {
			n.From.Table = rewriteTableExpr(t, n.From.Table)
		}
		rewriteWhereSlot(t, n.Where)

	case *ast.DeleteStmt:
		n.Table = rewriteTableExpr(t, n.Table)
		if n.Using != nil {
			n.Using.Table = rewriteTableExpr(t, n.Using.Table)
		}
		rewriteWhereSlot(t, n.Where)

	case *ast.BinaryExpr:
		n.Left = rewriteExpr(t, n.Left)
		n.Right = rewriteExpr(t, n.Right)

	case *ast.UnaryExpr:
		n.Operand = rewriteExpr(t, n.Operand)

	case *ast.ParenExpr:
		n.Expr = rewriteExpr(t, n.Expr)

	case *ast.FuncCall:
		for i := range n.Args {
			n.Args[i].Item = rewriteExpr(t, n.Args[i].Item)
		}

	case *ast.CastExpr:
		n.Expr = rewriteExpr(t, n.Expr)

	case *ast.CaseExpr:
		if n.Operand != nil {
			n.Operand = rewriteExpr(t, n.Operand)
		}
		for _, w := range n.Whens {
			w.Cond = rewriteExpr(t, w.Cond)
			w.Result = rewriteExpr(t, w.Result)
		}
		if n.ElseVal != nil {
			n.ElseVal = rewriteExpr(t, n.ElseVal)
		}

	case *ast.InExpr:
		n.Expr = rewriteExpr(t, n.Expr)
		Rewrite(t, n.RHS)

	case *ast.InExprList:
		for i := range n.Values {
			n.Values[i].Item = rewriteExpr(t, n.Values[i].Item)
		}

	case *ast.InSubselect:
		Rewrite(t, n.Subselect)

	case *ast.BetweenExpr:
		n.Expr = rewriteExpr(t, n.Expr)
		n.Low = rewriteExpr(t, n.Low)
		n.High = rewriteExpr(t, n.High)

	case *ast.LikeExpr:
		n.Expr = rewriteExpr(t, n.Expr)
		n.Pattern = rewriteExpr(t, n.Pattern)
		if n.EscExpr != nil {
			n.EscExpr = rewriteExpr(t, n.EscExpr)
		}

	case *ast.SubqueryExpr:
		Rewrite(t, n.Subselect)

	case *ast.ExistsExpr:
		Rewrite(t, n.Subselect)

	case *ast.AliasedExpr:
		n.Expr = rewriteExpr(t, n.Expr)

	case *ast.AliasedTableExpr:
		n.Expr = rewriteTableExpr(t, n.Expr)

	case *ast.SubqueryTableExpr:
		Rewrite(t, n.Subselect)

	case *ast.ParenTableExpr:
		n.Expr = rewriteTableExpr(t, n.Expr)

	case *ast.JoinExpr:
		n.Left = rewriteTableExpr(t, n.Left)
		n.Right = rewriteTableExpr(t, n.Right)
		if n.Cond != nil {
			n.Cond = rewriteExpr(t, n.Cond)
		}

	case *ast.ExplainStmt:
		n.Stmt = Rewrite(t, n.Stmt).(ast.Statement)

	case *ast.CreateTableStmt:
		for i := range n.Elements {
			Rewrite(t, n.Elements[i].Item)
		}

	case *ast.ColumnDef:
		Rewrite(t, n.Name)
		for _, c := range n.Constraints {
			if c.Default != nil {
				c.Default = rewriteExpr(t, c.Default)
			}
		}

	case *ast.TableConstraint:
		if n.CheckExpr != nil {
			n.CheckExpr = rewriteExpr(t, n.CheckExpr)
		}

	case *ast.SetStmt:
		for _, a := range n.Assignments {
			a.Item.Value = rewriteExpr(t, a.Item.Value)
		}

	case *ast.AlterTableStmt:
		for _, a := range n.Actions {
			act := a.Item
			if act.Element != nil {
				Rewrite(t, act.Element)
			}
			if act.Column != nil {
				Rewrite(t, act.Column)
			}
			if act.RenameTo != nil {
				Rewrite(t, act.RenameTo)
			}
		}

	default:
		// Leaves and nodes with no rewritable children: *ast.Name,
		// *ast.Ident, *ast.StringLit, *ast.NumberLit, *ast.Placeholder,
		// *ast.PlaceholderClause, *ast.StarExpr, *ast.Keyword,
		// *ast.Punct, *ast.SimpleTableName, TransactionStmt, ShowStmt,
		// FlushStmt, RenameTableStmt, TruncateStmt, DefaultValuesClause,
		// CreateIndexStmt, DropIndexStmt, DropTableStmt.
	}
}
