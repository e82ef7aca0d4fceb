// Package visitor provides CST traversal scaffolding: a Visitor
// dispatches on dynamic node type (spec §4.5), with Walk driving a
// pre-order traversal over every descendant.
package visitor

import "github.com/relaysql/sqltree/ast"

// Visitor is implemented by callers that want to inspect each node
// during a Walk. Visit returns the Visitor to use for node's children,
// or nil to skip them.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses the CST rooted at node in depth-first, pre-order
// fashion, visiting node itself before any of its children.
func Walk(v Visitor, node ast.Node) {
	if node == nil || isNilNode(node) {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {

	case *ast.SelectStmt:
		if n.With != nil {
			for _, cte := range n.With.CTEs {
				Walk(v, cte.Item)
			}
		}
		for _, col := range n.Columns {
			Walk(v, col.Item)
		}
		if n.Into1 != nil {
			Walk(v, n.Into1)
		}
		if n.From != nil {
			Walk(v, n.From)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}
		if n.GroupBy != nil {
			Walk(v, n.GroupBy)
		}
		if n.Having != nil {
			Walk(v, n.Having)
		}
		if n.OrderBy != nil {
			Walk(v, n.OrderBy)
		}
		if n.Limit != nil {
			Walk(v, n.Limit)
		}
		if n.Into2 != nil {
			Walk(v, n.Into2)
		}
		if n.Lock != nil {
			Walk(v, n.Lock)
		}
		if n.Into3 != nil {
			Walk(v, n.Into3)
		}

	case *ast.WhereClause:
		Walk(v, n.Expr)

	case *ast.GroupByClause:
		for _, it := range n.Items {
			Walk(v, it.Item)
		}

	case *ast.HavingClause:
		Walk(v, n.Expr)

	case *ast.IntoClause:
		walkIntoTargets(v, n)

	case *ast.FromClause:
		Walk(v, n.Table)

	case *ast.OrderByClause:
		for _, it := range n.Items {
			Walk(v, it.Item.Expr)
		}

	case *ast.LimitClause:
		if n.Count != nil {
			Walk(v, n.Count)
		}
		if n.OffsetExpr != nil {
			Walk(v, n.OffsetExpr)
		}

	case *ast.CTE:
		Walk(v, n.Subselect)

	case *ast.Subselect:
		Walk(v, n.Select)

	case *ast.UnionStatement:
		Walk(v, n.Head)
		for _, leg := range n.Legs {
			Walk(v, leg.Subselect)
		}

	case *ast.InsertStmt:
		Walk(v, n.Table)
		Walk(v, n.Values)
		if n.OnDup != nil {
			for _, a := range n.OnDup.Assignments {
				Walk(v, a.Item.Value)
			}
		}

	case *ast.ReplaceStmt:
		Walk(v, n.Table)
		Walk(v, n.Values)

	case *ast.ValuesClause:
		for _, row := range n.Rows {
			for _, val := range row.Item.Values {
				Walk(v, val.Item)
			}
		}

	case *ast.SelectValues:
		Walk(v, n.Subselect)

	case *ast.UpdateStmt:
		Walk(v, n.Table)
		for _, a := range n.Assignments {
			Walk(v, a.Item.Value)
		}
		if n.From != nil {
			Walk(v, n.From.Table)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}

	case *ast.DeleteStmt:
		Walk(v, n.Table)
		if n.Using != nil {
			Walk(v, n.Using.Table)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}

	case *ast.BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ast.UnaryExpr:
		Walk(v, n.Operand)

	case *ast.ParenExpr:
		Walk(v, n.Expr)

	case *ast.FuncCall:
		Walk(v, n.Name)
		for _, arg := range n.Args {
			Walk(v, arg.Item)
		}

	case *ast.CastExpr:
		Walk(v, n.Expr)

	case *ast.CaseExpr:
		if n.Operand != nil {
			Walk(v, n.Operand)
		}
		for _, w := range n.Whens {
			Walk(v, w.Cond)
			Walk(v, w.Result)
		}
		if n.ElseVal != nil {
			Walk(v, n.ElseVal)
		}

	case *ast.InExpr:
		Walk(v, n.Expr)
		Walk(v, n.RHS)

	case *ast.InExprList:
		for _, val := range n.Values {
			Walk(v, val.Item)
		}

	case *ast.InSubselect:
		Walk(v, n.Subselect)

	case *ast.BetweenExpr:
		Walk(v, n.Expr)
		Walk(v, n.Low)
		Walk(v, n.High)

	case *ast.LikeExpr:
		Walk(v, n.Expr)
		Walk(v, n.Pattern)
		if n.EscExpr != nil {
			Walk(v, n.EscExpr)
		}

	case *ast.SubqueryExpr:
		Walk(v, n.Subselect)

	case *ast.ExistsExpr:
		Walk(v, n.Subselect)

	case *ast.AliasedExpr:
		Walk(v, n.Expr)

	case *ast.QualifiedStar:
		Walk(v, n.Qualifier)

	case *ast.AliasedTableExpr:
		Walk(v, n.Expr)

	case *ast.SubqueryTableExpr:
		Walk(v, n.Subselect)

	case *ast.ParenTableExpr:
		Walk(v, n.Expr)

	case *ast.JoinExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
		if n.Cond != nil {
			Walk(v, n.Cond)
		}

	case *ast.ExplainStmt:
		Walk(v, n.Stmt)

	case *ast.CreateTableStmt:
		Walk(v, n.Name)
		for _, el := range n.Elements {
			Walk(v, el.Item)
		}

	case *ast.ColumnDef:
		Walk(v, n.Name)
		for _, c := range n.Constraints {
			if c.Default != nil {
				Walk(v, c.Default)
			}
		}

	case *ast.TableConstraint:
		if n.CheckExpr != nil {
			Walk(v, n.CheckExpr)
		}

	case *ast.CreateIndexStmt:
		Walk(v, n.Table)

	case *ast.DropIndexStmt:
		Walk(v, n.Table)

	case *ast.DropTableStmt:
		for _, t := range n.Tables {
			Walk(v, t.Item)
		}

	case *ast.TruncateStmt:
		Walk(v, n.Name)

	case *ast.RenameTableStmt:
		for _, pair := range n.Pairs {
			Walk(v, pair.Item.Old)
			Walk(v, pair.Item.New)
		}

	case *ast.AlterTableStmt:
		Walk(v, n.Name)
		for _, a := range n.Actions {
			act := a.Item
			if act.Element != nil {
				Walk(v, act.Element)
			}
			if act.Column != nil {
				Walk(v, act.Column)
			}
			if act.RenameTo != nil {
				Walk(v, act.RenameTo)
			}
		}

	case *ast.SimpleTableName:
		Walk(v, n.Name)

	case *ast.SetStmt:
		for _, a := range n.Assignments {
			Walk(v, a.Item.Value)
		}

	// Leaves and nodes with no children worth descending into:
	// *ast.Name, *ast.Ident, *ast.StringLit, *ast.NumberLit,
	// *ast.Placeholder, *ast.PlaceholderClause, *ast.StarExpr,
	// *ast.Keyword, *ast.Punct, *ast.LockClause, TransactionStmt,
	// ShowStmt, FlushStmt, DefaultValuesClause.
	default:
	}
}

func walkIntoTargets(v Visitor, into *ast.IntoClause) {
	for _, t := range into.Targets {
		Walk(v, t.Item)
	}
}

// isNilNode reports whether node holds a typed nil pointer, which a
// plain `node == nil` comparison on the ast.Node interface misses.
func isNilNode(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.SelectStmt:
		return n == nil
	case *ast.Subselect:
		return n == nil
	case *ast.UnionStatement:
		return n == nil
	case *ast.InsertStmt:
		return n == nil
	case *ast.UpdateStmt:
		return n == nil
	case *ast.DeleteStmt:
		return n == nil
	default:
		return false
	}
}

// WalkFunc is a convenience wrapper that calls fn for each node,
// continuing into children only while fn returns true.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(&funcVisitor{fn: fn}, node)
}

type funcVisitor struct {
	fn func(ast.Node) bool
}

func (v *funcVisitor) Visit(node ast.Node) Visitor {
	if v.fn(node) {
		return v
	}
	return nil
}

// Inspect calls f for each node in the CST in pre-order.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	WalkFunc(node, f)
}
