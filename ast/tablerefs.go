package ast

// Subselect is a SELECT or UNION appearing where a subquery is
// expected, recording whether the source wrote surrounding
// parentheses (spec §3's Subselect convention).
type Subselect struct {
	LParen        *Punct // nil when not parenthesized
	Select        Statement
	RParen        *Punct // nil when not parenthesized
}

func (s *Subselect) Pos() int {
	if s.LParen != nil {
		return s.LParen.Pos()
	}
	return s.Select.Pos()
}

func (s *Subselect) End() int {
	if s.RParen != nil {
		return s.RParen.End()
	}
	return s.Select.End()
}

// Parenthesized reports whether the source wrapped this subselect in
// parentheses.
func (s *Subselect) Parenthesized() bool { return s.LParen != nil }

// SimpleTableName is a (possibly dotted) bare table reference.
type SimpleTableName struct {
	Name *Name
}

func (t *SimpleTableName) Pos() int        { return t.Name.Pos() }
func (t *SimpleTableName) End() int        { return t.Name.End() }
func (t *SimpleTableName) tableExprNode()  {}

// AliasedTableExpr wraps any TableExpr with an optional `[AS] alias`.
type AliasedTableExpr struct {
	Expr  TableExpr
	As    *Keyword // nil if the alias was written without AS
	Alias *Ident   // nil if no alias present
	Hints []*IndexHint // nil if no index hints follow (MySQL table_factor)
}

func (a *AliasedTableExpr) Pos() int { return a.Expr.Pos() }
func (a *AliasedTableExpr) End() int {
	if len(a.Hints) > 0 {
		return a.Hints[len(a.Hints)-1].End()
	}
	if a.Alias != nil {
		return a.Alias.End()
	}
	return a.Expr.End()
}
func (a *AliasedTableExpr) tableExprNode() {}

// SubqueryTableExpr is `[LATERAL] ( subselect ) [AS] alias [(col, ...)]`
// used as a table factor.
type SubqueryTableExpr struct {
	Lateral   *Keyword // nil if absent
	Subselect *Subselect
	As        *Keyword // nil if alias written without AS
	Alias     *Ident
	ColParen  *Punct // nil if no column-list
	Cols      []WithTrailingComma[*Ident]
	ColRParen *Punct
}

func (s *SubqueryTableExpr) Pos() int {
	if s.Lateral != nil {
		return s.Lateral.Pos()
	}
	return s.Subselect.Pos()
}
func (s *SubqueryTableExpr) End() int {
	if s.ColRParen != nil {
		return s.ColRParen.End()
	}
	return s.Alias.End()
}
func (s *SubqueryTableExpr) tableExprNode() {}

// ParenTableExpr is a parenthesized table_ref list: `( table_ref (, table_ref)* )`.
type ParenTableExpr struct {
	LParen *Punct
	Expr   TableExpr
	RParen *Punct
}

func (p *ParenTableExpr) Pos() int       { return p.LParen.Pos() }
func (p *ParenTableExpr) End() int       { return p.RParen.End() }
func (p *ParenTableExpr) tableExprNode() {}

// JoinExpr is `left join_op right [ON cond | USING (cols)]`. JoinOp
// holds the full keyword run (e.g. `LEFT`, `OUTER`, `JOIN`) in source
// order so the formatter can re-emit exactly what was written.
type JoinExpr struct {
	Left    TableExpr
	JoinOp  []*Keyword
	Right   TableExpr
	On      *Keyword // nil if absent
	Cond    Expr     // nil unless On is set
	Using   *Keyword // nil if absent
	UParen  *Punct
	UCols   []WithTrailingComma[*Ident]
	URParen *Punct
}

func (j *JoinExpr) Pos() int { return j.Left.Pos() }
func (j *JoinExpr) End() int {
	switch {
	case j.URParen != nil:
		return j.URParen.End()
	case j.Cond != nil:
		return j.Cond.End()
	default:
		return j.Right.End()
	}
}
func (j *JoinExpr) tableExprNode() {}

// IndexHint is the teacher-style shallow representation
// of an index hint as an opaque keyword run; sqltree does not
// validate index-hint grammar beyond round-tripping it.
type IndexHint struct {
	Keywords []*Keyword
	LParen   *Punct
	Names    []WithTrailingComma[*Ident]
	RParen   *Punct
}

func (h *IndexHint) Pos() int { return h.Keywords[0].Pos() }
func (h *IndexHint) End() int { return h.RParen.End() }
