package ast

import "github.com/relaysql/sqltree/token"

// AliasedExpr is one `expr [[AS] alias]` item in a SELECT column list.
type AliasedExpr struct {
	Expr  Expr
	As    *Keyword // nil if alias written without AS, or no alias
	Alias *Ident   // nil if no alias present
}

func (a *AliasedExpr) Pos() int { return a.Expr.Pos() }
func (a *AliasedExpr) End() int {
	if a.Alias != nil {
		return a.Alias.End()
	}
	return a.Expr.End()
}
func (a *AliasedExpr) selectExprNode() {}

// QualifiedStar is `table.*`.
type QualifiedStar struct {
	Qualifier *Name
	Dot       *Punct
	Star      *StarExpr
}

func (q *QualifiedStar) Pos() int          { return q.Qualifier.Pos() }
func (q *QualifiedStar) End() int          { return q.Star.End() }
func (q *QualifiedStar) selectExprNode()   {}

// CTE is one `name [(cols)] AS (subselect)` entry of a WITH clause.
type CTE struct {
	Name      *Ident
	ColParen  *Punct
	Cols      []WithTrailingComma[*Ident]
	ColRParen *Punct
	As        *Keyword
	Subselect *Subselect
}

func (c *CTE) Pos() int { return c.Name.Pos() }
func (c *CTE) End() int { return c.Subselect.End() }

// WithClause is a leading `WITH [RECURSIVE] cte, cte, ...`.
type WithClause struct {
	With      *Keyword
	Recursive *Keyword // nil if absent
	CTEs      []WithTrailingComma[*CTE]
}

func (w *WithClause) Pos() int { return w.With.Pos() }
func (w *WithClause) End() int { return w.CTEs[len(w.CTEs)-1].End() }

// IntoClause models one of SELECT's three possible INTO positions
// (spec §4.4): `INTO target, target, ...`.
type IntoClause struct {
	Into    *Keyword
	Targets []WithTrailingComma[*Ident]
}

func (i *IntoClause) Pos() int       { return i.Into.Pos() }
func (i *IntoClause) End() int       { return i.Targets[len(i.Targets)-1].End() }
func (i *IntoClause) intoSlotNode()  {}

// IntoSlot is one of SELECT's three INTO positions' optional-clause
// slot; see WhereSlot. The same interface serves all three positions,
// since a placeholder there is indistinguishable from any other.
type IntoSlot interface {
	Node
	intoSlotNode()
}

// FromClause is `FROM table_ref`.
type FromClause struct {
	From  *Keyword
	Table TableExpr
}

func (f *FromClause) Pos() int      { return f.From.Pos() }
func (f *FromClause) End() int      { return f.Table.End() }
func (f *FromClause) fromSlotNode() {}

// FromSlot is FROM's optional-clause slot; see WhereSlot.
type FromSlot interface {
	Node
	fromSlotNode()
}

// WhereClause is `WHERE expr`.
type WhereClause struct {
	Where *Keyword
	Expr  Expr
}

func (w *WhereClause) Pos() int       { return w.Where.Pos() }
func (w *WhereClause) End() int       { return w.Expr.End() }
func (w *WhereClause) whereSlotNode() {}

// WhereSlot is WHERE's optional-clause slot: a real WhereClause, or a
// bare placeholder token standing in for one so a templating host can
// stitch one in later.
type WhereSlot interface {
	Node
	whereSlotNode()
}

// GroupByClause is `GROUP BY expr, expr, ...`.
type GroupByClause struct {
	Group *Keyword
	By    *Keyword
	Items []WithTrailingComma[Expr]
}

func (g *GroupByClause) Pos() int         { return g.Group.Pos() }
func (g *GroupByClause) End() int         { return g.Items[len(g.Items)-1].End() }
func (g *GroupByClause) groupBySlotNode() {}

// GroupBySlot is GROUP BY's optional-clause slot; see WhereSlot.
type GroupBySlot interface {
	Node
	groupBySlotNode()
}

// HavingClause is `HAVING expr`.
type HavingClause struct {
	Having *Keyword
	Expr   Expr
}

func (h *HavingClause) Pos() int        { return h.Having.Pos() }
func (h *HavingClause) End() int        { return h.Expr.End() }
func (h *HavingClause) havingSlotNode() {}

// HavingSlot is HAVING's optional-clause slot; see WhereSlot.
type HavingSlot interface {
	Node
	havingSlotNode()
}

// OrderByItem is one `expr [ASC|DESC]` entry of an ORDER BY clause.
type OrderByItem struct {
	Expr      Expr
	Direction *Keyword // nil if unspecified
}

func (o *OrderByItem) Pos() int { return o.Expr.Pos() }
func (o *OrderByItem) End() int {
	if o.Direction != nil {
		return o.Direction.End()
	}
	return o.Expr.End()
}

// OrderByClause is `ORDER BY item, item, ...`.
type OrderByClause struct {
	Order *Keyword
	By    *Keyword
	Items []WithTrailingComma[*OrderByItem]
}

func (o *OrderByClause) Pos() int           { return o.Order.Pos() }
func (o *OrderByClause) End() int           { return o.Items[len(o.Items)-1].End() }
func (o *OrderByClause) orderBySlotNode()   {}

// OrderBySlot is ORDER BY's optional-clause slot; see WhereSlot.
type OrderBySlot interface {
	Node
	orderBySlotNode()
}

// LimitClause is `LIMIT count [OFFSET offset]`, `LIMIT offset, count`
// (MySQL comma_offset feature), or `LIMIT ALL` (Redshift limit_all
// feature). CommaOffset distinguishes the comma form, in which case
// Count holds the row count and OffsetExpr holds the offset written
// first but logically second; Offset, the OFFSET keyword, is nil.
type LimitClause struct {
	Limit       *Keyword
	All         *Keyword // set instead of Count for LIMIT ALL
	Count       Expr     // nil when All is set
	CommaOffset bool
	OffsetComma *Punct // the comma in "LIMIT offset, count" form
	Offset      *Keyword // the OFFSET keyword in "LIMIT count OFFSET offset" form
	OffsetExpr  Expr
}

func (l *LimitClause) Pos() int { return l.Limit.Pos() }
func (l *LimitClause) End() int {
	switch {
	case l.All != nil:
		return l.All.End()
	case l.CommaOffset:
		return l.Count.End()
	case l.OffsetExpr != nil:
		return l.OffsetExpr.End()
	default:
		return l.Count.End()
	}
}
func (l *LimitClause) limitSlotNode() {}

// LimitSlot is LIMIT's optional-clause slot; see WhereSlot.
type LimitSlot interface {
	Node
	limitSlotNode()
}

// LockClause is a trailing `FOR UPDATE|SHARE [NOWAIT | SKIP LOCKED]`.
type LockClause struct {
	For      *Keyword
	Mode     *Keyword // UPDATE or SHARE
	Wait     []*Keyword // NOWAIT, or SKIP LOCKED (two keywords)
}

func (l *LockClause) Pos() int { return l.For.Pos() }
func (l *LockClause) End() int {
	if len(l.Wait) > 0 {
		return l.Wait[len(l.Wait)-1].End()
	}
	return l.Mode.End()
}
func (l *LockClause) lockSlotNode() {}

// LockSlot is the trailing locking-read clause's optional-clause slot;
// see WhereSlot.
type LockSlot interface {
	Node
	lockSlotNode()
}

// SelectStmt is a single (non-UNION) SELECT, assembled in the strict
// clause order spec §4.4 describes, including the three optional INTO
// slots MySQL allows. Every optional clause from Into1 on is modeled
// as a slot interface so a bare placeholder token can stand in for it
// (spec §4.4); With is the one exception — see Open Question (e) in
// SPEC_FULL.md for why a placeholder can't stand in for the WITH
// clause itself.
type SelectStmt struct {
	Leading   []token.Item
	With      *WithClause
	Select    *Keyword
	Modifiers []*Keyword
	Columns   []WithTrailingComma[SelectExpr]
	Into1     IntoSlot
	From      FromSlot
	Where     WhereSlot
	GroupBy   GroupBySlot
	Having    HavingSlot
	OrderBy   OrderBySlot
	Limit     LimitSlot
	Into2     IntoSlot
	Lock      LockSlot
	Into3     IntoSlot
}

func (s *SelectStmt) Pos() int {
	if s.With != nil {
		return s.With.Pos()
	}
	return s.Select.Pos()
}

func (s *SelectStmt) End() int {
	switch {
	case s.Into3 != nil:
		return s.Into3.End()
	case s.Lock != nil:
		return s.Lock.End()
	case s.Into2 != nil:
		return s.Into2.End()
	case s.Limit != nil:
		return s.Limit.End()
	case s.OrderBy != nil:
		return s.OrderBy.End()
	case s.Having != nil:
		return s.Having.End()
	case s.GroupBy != nil:
		return s.GroupBy.End()
	case s.Where != nil:
		return s.Where.End()
	case s.From != nil:
		return s.From.End()
	case s.Into1 != nil:
		return s.Into1.End()
	default:
		return s.Columns[len(s.Columns)-1].End()
	}
}

func (s *SelectStmt) LeadingComments() []token.Item { return s.Leading }
func (s *SelectStmt) statementNode()                {}

// UnionLeg is one `UNION [ALL|DISTINCT] subselect` continuation.
type UnionLeg struct {
	Union         *Keyword
	AllOrDistinct *Keyword // nil if bare UNION
	Subselect     *Subselect
}

func (u *UnionLeg) Pos() int { return u.Union.Pos() }
func (u *UnionLeg) End() int { return u.Subselect.End() }

// UnionStatement is `head (UNION [ALL|DISTINCT] subselect)+`, with an
// optional trailing ORDER BY/LIMIT binding to the union as a whole.
type UnionStatement struct {
	Leading []token.Item
	Head    *Subselect
	Legs    []*UnionLeg
	OrderBy *OrderByClause
	Limit   *LimitClause
}

func (u *UnionStatement) Pos() int { return u.Head.Pos() }
func (u *UnionStatement) End() int {
	switch {
	case u.Limit != nil:
		return u.Limit.End()
	case u.OrderBy != nil:
		return u.OrderBy.End()
	default:
		return u.Legs[len(u.Legs)-1].End()
	}
}

func (u *UnionStatement) LeadingComments() []token.Item { return u.Leading }
func (u *UnionStatement) statementNode()                {}
