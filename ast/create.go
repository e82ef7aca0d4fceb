package ast

import "github.com/relaysql/sqltree/token"

// ColumnConstraint is one constraint clause attached to a column
// definition: `NOT NULL`, `NULL`, `DEFAULT expr`, `PRIMARY KEY`,
// `UNIQUE`, `REFERENCES table (col)`, or a raw keyword run for
// anything else (column constraint grammar is dialect-heavy; sqltree
// keeps unrecognised forms as an opaque keyword run rather than
// rejecting them).
type ColumnConstraint struct {
	Keywords []*Keyword
	Default  Expr        // set only for a DEFAULT constraint
	RefTable *SimpleTableName // set only for a REFERENCES constraint
	RefCols  *ColumnList      // set only for a REFERENCES constraint with a column list
}

func (c *ColumnConstraint) Pos() int { return c.Keywords[0].Pos() }
func (c *ColumnConstraint) End() int {
	switch {
	case c.RefCols != nil:
		return c.RefCols.End()
	case c.RefTable != nil:
		return c.RefTable.End()
	case c.Default != nil:
		return c.Default.End()
	default:
		return c.Keywords[len(c.Keywords)-1].End()
	}
}

// ColumnDef is `name type constraint*` in a CREATE TABLE column list.
type ColumnDef struct {
	Name        *Ident
	Type        *Name
	TypeParen   *Punct // nil if the type has no (size[, scale]) argument
	TypeArgs    []WithTrailingComma[*NumberLit]
	TypeRParen  *Punct
	Constraints []*ColumnConstraint
}

func (c *ColumnDef) Pos() int { return c.Name.Pos() }
func (c *ColumnDef) End() int {
	if len(c.Constraints) > 0 {
		return c.Constraints[len(c.Constraints)-1].End()
	}
	if c.TypeRParen != nil {
		return c.TypeRParen.End()
	}
	return c.Type.End()
}

// TableConstraint is a standalone table-level constraint:
// `[CONSTRAINT name] PRIMARY KEY (cols)`, `UNIQUE (cols)`,
// `FOREIGN KEY (cols) REFERENCES table (cols)`, or `CHECK (expr)`.
type TableConstraint struct {
	ConstraintKw *Keyword // nil if no CONSTRAINT name given
	Name         *Ident   // nil if no CONSTRAINT name given
	Keywords     []*Keyword
	Cols         *ColumnList
	RefTable     *SimpleTableName // set only for FOREIGN KEY
	RefCols      *ColumnList      // set only for FOREIGN KEY
	CheckExpr    Expr             // set only for CHECK
	CheckParen   *Punct
	CheckRParen  *Punct
}

func (t *TableConstraint) Pos() int {
	if t.ConstraintKw != nil {
		return t.ConstraintKw.Pos()
	}
	return t.Keywords[0].Pos()
}
func (t *TableConstraint) End() int {
	switch {
	case t.CheckRParen != nil:
		return t.CheckRParen.End()
	case t.RefCols != nil:
		return t.RefCols.End()
	case t.Cols != nil:
		return t.Cols.End()
	default:
		return t.Keywords[len(t.Keywords)-1].End()
	}
}

// TableElement is one entry in a CREATE TABLE element list: either a
// column definition or a table-level constraint.
type TableElement interface {
	Node
	tableElementNode()
}

func (c *ColumnDef) tableElementNode()       {}
func (t *TableConstraint) tableElementNode() {}

// TableOption is one `KEY value` pair in a MySQL CREATE TABLE's
// trailing option list (ENGINE=..., CHARSET=..., etc).
type TableOption struct {
	Keywords []*Keyword
	Eq       *Punct // nil if the option has no "=" (rare but permitted)
	Value    Node   // an Ident, StringLit, or NumberLit
}

func (o *TableOption) Pos() int { return o.Keywords[0].Pos() }
func (o *TableOption) End() int {
	if o.Value != nil {
		return o.Value.End()
	}
	return o.Keywords[len(o.Keywords)-1].End()
}

// CreateTableStmt is `CREATE [TEMPORARY] TABLE [IF NOT EXISTS] name
// (element, ...) [option ...]`.
type CreateTableStmt struct {
	Leading     []token.Item
	Create      *Keyword
	Temporary   *Keyword // nil if absent
	Table       *Keyword
	If          *Keyword // nil if absent
	Not         *Keyword // nil if absent
	Exists      *Keyword // nil if absent
	Name        *SimpleTableName
	LParen      *Punct
	Elements    []WithTrailingComma[TableElement]
	RParen      *Punct
	Options     []*TableOption
}

func (c *CreateTableStmt) Pos() int { return c.Create.Pos() }
func (c *CreateTableStmt) End() int {
	if len(c.Options) > 0 {
		return c.Options[len(c.Options)-1].End()
	}
	return c.RParen.End()
}
func (c *CreateTableStmt) LeadingComments() []token.Item { return c.Leading }
func (c *CreateTableStmt) statementNode()                {}

// CreateIndexStmt is `CREATE [UNIQUE] INDEX name ON table (cols)`.
type CreateIndexStmt struct {
	Leading []token.Item
	Create  *Keyword
	Unique  *Keyword // nil if absent
	Index   *Keyword
	Name    *Ident
	On      *Keyword
	Table   *SimpleTableName
	Cols    *ColumnList
}

func (c *CreateIndexStmt) Pos() int { return c.Create.Pos() }
func (c *CreateIndexStmt) End() int { return c.Cols.End() }
func (c *CreateIndexStmt) LeadingComments() []token.Item { return c.Leading }
func (c *CreateIndexStmt) statementNode()                {}

// DropIndexStmt is `DROP INDEX name ON table`.
type DropIndexStmt struct {
	Leading []token.Item
	Drop    *Keyword
	Index   *Keyword
	Name    *Ident
	On      *Keyword
	Table   *SimpleTableName
}

func (d *DropIndexStmt) Pos() int { return d.Drop.Pos() }
func (d *DropIndexStmt) End() int { return d.Table.End() }
func (d *DropIndexStmt) LeadingComments() []token.Item { return d.Leading }
func (d *DropIndexStmt) statementNode()                {}

// AlterTableStmt is `ALTER TABLE name action, action, ...`, where each
// action is a keyword run plus its element: `ADD [COLUMN] column-def`,
// `ADD table-constraint`, `DROP COLUMN name`, or `RENAME COLUMN old TO
// new`. Any other action is a parse error.
type AlterTableAction struct {
	Keywords []*Keyword
	Element  TableElement // set when the action carries a column/constraint def (ADD ...)
	Column   *Ident       // set when the action names a bare column (DROP COLUMN x, RENAME COLUMN x TO y)
	RenameTo *Ident       // set for RENAME COLUMN x TO y
}

func (a *AlterTableAction) Pos() int { return a.Keywords[0].Pos() }
func (a *AlterTableAction) End() int {
	switch {
	case a.RenameTo != nil:
		return a.RenameTo.End()
	case a.Column != nil:
		return a.Column.End()
	case a.Element != nil:
		return a.Element.End()
	default:
		return a.Keywords[len(a.Keywords)-1].End()
	}
}

type AlterTableStmt struct {
	Leading []token.Item
	Alter   *Keyword
	Table   *Keyword
	Name    *SimpleTableName
	Actions []WithTrailingComma[*AlterTableAction]
}

func (a *AlterTableStmt) Pos() int { return a.Alter.Pos() }
func (a *AlterTableStmt) End() int { return a.Actions[len(a.Actions)-1].End() }
func (a *AlterTableStmt) LeadingComments() []token.Item { return a.Leading }
func (a *AlterTableStmt) statementNode()                {}
