package ast

import "github.com/relaysql/sqltree/token"

// Assignment is `column = expr`, used by UPDATE's SET list and
// INSERT's ON DUPLICATE KEY UPDATE list.
type Assignment struct {
	Column *Name
	Eq     *Punct
	Value  Expr
}

func (a *Assignment) Pos() int { return a.Column.Pos() }
func (a *Assignment) End() int { return a.Value.End() }

// ColumnList is a parenthesized, comma-separated column-name list,
// e.g. the `(a, b, c)` after a table name in INSERT.
type ColumnList struct {
	LParen  *Punct
	Columns []WithTrailingComma[*Ident]
	RParen  *Punct
}

func (c *ColumnList) Pos() int { return c.LParen.Pos() }
func (c *ColumnList) End() int { return c.RParen.End() }

// ValuesRow is one parenthesized `(expr, expr, ...)` tuple.
type ValuesRow struct {
	LParen *Punct
	Values []WithTrailingComma[Expr]
	RParen *Punct
}

func (v *ValuesRow) Pos() int { return v.LParen.Pos() }
func (v *ValuesRow) End() int { return v.RParen.End() }

// InsertValues is the source of rows for an INSERT: a VALUES/VALUE
// list, DEFAULT VALUES, or a SELECT.
type InsertValues interface {
	Node
	insertValuesNode()
}

// ValuesClause is `VALUES (...), (...) ...` or, where the dialect's
// support_value_for_insert feature allows it, `VALUE (...)`.
type ValuesClause struct {
	Values *Keyword // text is "VALUES" or "VALUE"
	Rows   []WithTrailingComma[*ValuesRow]
}

func (v *ValuesClause) Pos() int { return v.Values.Pos() }
func (v *ValuesClause) End() int { return v.Rows[len(v.Rows)-1].End() }
func (v *ValuesClause) insertValuesNode() {}

// DefaultValuesClause is `DEFAULT VALUES` (default_values_on_insert
// feature).
type DefaultValuesClause struct {
	Default *Keyword
	Values  *Keyword
}

func (d *DefaultValuesClause) Pos() int { return d.Default.Pos() }
func (d *DefaultValuesClause) End() int { return d.Values.End() }
func (d *DefaultValuesClause) insertValuesNode() {}

// SelectValues is `INSERT ... SELECT ...`, optionally required to be
// parenthesized by the insert_select_require_parens feature.
type SelectValues struct {
	Subselect *Subselect
}

func (s *SelectValues) Pos() int { return s.Subselect.Pos() }
func (s *SelectValues) End() int { return s.Subselect.End() }
func (s *SelectValues) insertValuesNode() {}

// OnDuplicateClause is MySQL's trailing `ON DUPLICATE KEY UPDATE
// assignment, assignment, ...` (insert_on_duplicate_key_update
// feature).
type OnDuplicateClause struct {
	On          *Keyword
	Duplicate   *Keyword
	Key         *Keyword
	Update      *Keyword
	Assignments []WithTrailingComma[*Assignment]
}

func (o *OnDuplicateClause) Pos() int { return o.On.Pos() }
func (o *OnDuplicateClause) End() int {
	return o.Assignments[len(o.Assignments)-1].End()
}

// InsertStmt is `INSERT [IGNORE] [INTO] table [(cols)] values
// [ON DUPLICATE KEY UPDATE ...]`.
type InsertStmt struct {
	Leading []token.Item
	Insert  *Keyword
	Ignore  *Keyword // nil if absent (insert_ignore feature)
	Into    *Keyword // nil if omitted (require_into_for_ignore feature)
	Table   *SimpleTableName
	Columns *ColumnList // nil if no explicit column list
	Values  InsertValues
	OnDup   *OnDuplicateClause // nil if absent
}

func (i *InsertStmt) Pos() int { return i.Insert.Pos() }
func (i *InsertStmt) End() int {
	if i.OnDup != nil {
		return i.OnDup.End()
	}
	return i.Values.End()
}
func (i *InsertStmt) LeadingComments() []token.Item { return i.Leading }
func (i *InsertStmt) statementNode()                {}

// ReplaceStmt mirrors InsertStmt for MySQL's REPLACE statement
// (replace feature); it shares the same values grammar.
type ReplaceStmt struct {
	Leading []token.Item
	Replace *Keyword
	Into    *Keyword
	Table   *SimpleTableName
	Columns *ColumnList
	Values  InsertValues
}

func (r *ReplaceStmt) Pos() int { return r.Replace.Pos() }
func (r *ReplaceStmt) End() int { return r.Values.End() }
func (r *ReplaceStmt) LeadingComments() []token.Item { return r.Leading }
func (r *ReplaceStmt) statementNode()                {}

// UpdateStmt is `UPDATE table SET assignment, ... [FROM table]
// [WHERE expr] [ORDER BY ...] [LIMIT ...]`. OrderBy and Limit are
// gated by the update_limit feature. FROM, modeled as the same
// FromClause SELECT uses, is accepted in every dialect.
type UpdateStmt struct {
	Leading     []token.Item
	Update      *Keyword
	Table       TableExpr
	Set         *Keyword
	Assignments []WithTrailingComma[*Assignment]
	From        *FromClause
	Where       WhereSlot
	OrderBy     *OrderByClause
	Limit       *LimitClause
}

func (u *UpdateStmt) Pos() int { return u.Update.Pos() }
func (u *UpdateStmt) End() int {
	switch {
	case u.Limit != nil:
		return u.Limit.End()
	case u.OrderBy != nil:
		return u.OrderBy.End()
	case u.Where != nil:
		return u.Where.End()
	case u.From != nil:
		return u.From.End()
	default:
		return u.Assignments[len(u.Assignments)-1].End()
	}
}
func (u *UpdateStmt) LeadingComments() []token.Item { return u.Leading }
func (u *UpdateStmt) statementNode()                {}

// UsingClause is DELETE's `USING table_ref` (delete_using feature).
type UsingClause struct {
	Using *Keyword
	Table TableExpr
}

func (u *UsingClause) Pos() int { return u.Using.Pos() }
func (u *UsingClause) End() int { return u.Table.End() }

// DeleteStmt is `DELETE [FROM] table [USING table] [WHERE expr]
// [ORDER BY ...] [LIMIT ...]`. From is nil only when the
// require_from_for_delete feature permits omitting FROM.
type DeleteStmt struct {
	Leading []token.Item
	Delete  *Keyword
	From    *Keyword // nil when FROM was omitted
	Table   TableExpr
	Using   *UsingClause
	Where   WhereSlot
	OrderBy *OrderByClause
	Limit   *LimitClause
}

func (d *DeleteStmt) Pos() int { return d.Delete.Pos() }
func (d *DeleteStmt) End() int {
	switch {
	case d.Limit != nil:
		return d.Limit.End()
	case d.OrderBy != nil:
		return d.OrderBy.End()
	case d.Where != nil:
		return d.Where.End()
	case d.Using != nil:
		return d.Using.End()
	default:
		return d.Table.End()
	}
}
func (d *DeleteStmt) LeadingComments() []token.Item { return d.Leading }
func (d *DeleteStmt) statementNode()                {}
