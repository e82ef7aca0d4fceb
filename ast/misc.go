package ast

import "github.com/relaysql/sqltree/token"

// OpaqueTail is a raw run of leaf tokens captured verbatim to the end
// of a statement whose internal grammar this implementation does not
// validate (SHOW, DESCRIBE, DESC, FLUSH, the transaction
// statements) — still fully lossless, since every token is retained
// as a Leaf, just not structured into named fields. original_source's
// parser treats these the same way: a few lines each next to
// _parse_select's hundreds.
type OpaqueTail struct {
	Leaves []Leaf
}

func (o *OpaqueTail) Pos() int {
	if len(o.Leaves) == 0 {
		return 0
	}
	return o.Leaves[0].Pos()
}
func (o *OpaqueTail) End() int {
	if len(o.Leaves) == 0 {
		return 0
	}
	return o.Leaves[len(o.Leaves)-1].End()
}

// TransactionStmt covers START TRANSACTION, BEGIN, COMMIT, and
// ROLLBACK [TO SAVEPOINT name].
type TransactionStmt struct {
	Leading []token.Item
	Verb    *Keyword // START, BEGIN, COMMIT, or ROLLBACK
	Tail    *OpaqueTail // nil if nothing follows the verb
}

func (t *TransactionStmt) Pos() int { return t.Verb.Pos() }
func (t *TransactionStmt) End() int {
	if t.Tail != nil && len(t.Tail.Leaves) > 0 {
		return t.Tail.End()
	}
	return t.Verb.End()
}
func (t *TransactionStmt) LeadingComments() []token.Item { return t.Leading }
func (t *TransactionStmt) statementNode()                {}

// SetStmt is `SET assignment, assignment, ...`, where each assignment
// is captured losslessly but not validated beyond `name = value`.
type SetStmt struct {
	Leading     []token.Item
	Set         *Keyword
	Assignments []WithTrailingComma[*Assignment]
}

func (s *SetStmt) Pos() int { return s.Set.Pos() }
func (s *SetStmt) End() int { return s.Assignments[len(s.Assignments)-1].End() }
func (s *SetStmt) LeadingComments() []token.Item { return s.Leading }
func (s *SetStmt) statementNode()                {}

// ShowStmt covers SHOW, DESCRIBE, and DESC: a single introducer
// keyword followed by an unvalidated opaque tail.
type ShowStmt struct {
	Leading []token.Item
	Verb    *Keyword
	Tail    *OpaqueTail
}

func (s *ShowStmt) Pos() int { return s.Verb.Pos() }
func (s *ShowStmt) End() int {
	if s.Tail != nil && len(s.Tail.Leaves) > 0 {
		return s.Tail.End()
	}
	return s.Verb.End()
}
func (s *ShowStmt) LeadingComments() []token.Item { return s.Leading }
func (s *ShowStmt) statementNode()                {}

// FlushStmt is `FLUSH ...`, opaque beyond the introducer keyword.
type FlushStmt struct {
	Leading []token.Item
	Flush   *Keyword
	Tail    *OpaqueTail
}

func (f *FlushStmt) Pos() int { return f.Flush.Pos() }
func (f *FlushStmt) End() int {
	if f.Tail != nil && len(f.Tail.Leaves) > 0 {
		return f.Tail.End()
	}
	return f.Flush.End()
}
func (f *FlushStmt) LeadingComments() []token.Item { return f.Leading }
func (f *FlushStmt) statementNode()                {}

// RenameTableStmt is `RENAME TABLE old TO new, ...`.
type RenamePair struct {
	Old *SimpleTableName
	To  *Keyword
	New *SimpleTableName
}

func (r *RenamePair) Pos() int { return r.Old.Pos() }
func (r *RenamePair) End() int { return r.New.End() }

type RenameTableStmt struct {
	Leading []token.Item
	Rename  *Keyword
	Table   *Keyword
	Pairs   []WithTrailingComma[*RenamePair]
}

func (r *RenameTableStmt) Pos() int { return r.Rename.Pos() }
func (r *RenameTableStmt) End() int { return r.Pairs[len(r.Pairs)-1].End() }
func (r *RenameTableStmt) LeadingComments() []token.Item { return r.Leading }
func (r *RenameTableStmt) statementNode()                {}

// DropTableStmt is `DROP TABLE [IF EXISTS] table, table, ...`.
type DropTableStmt struct {
	Leading  []token.Item
	Drop     *Keyword
	Table    *Keyword
	If       *Keyword // nil if absent
	Exists   *Keyword // nil if absent
	Tables   []WithTrailingComma[*SimpleTableName]
}

func (d *DropTableStmt) Pos() int { return d.Drop.Pos() }
func (d *DropTableStmt) End() int { return d.Tables[len(d.Tables)-1].End() }
func (d *DropTableStmt) LeadingComments() []token.Item { return d.Leading }
func (d *DropTableStmt) statementNode()                {}

// TruncateStmt is `TRUNCATE [TABLE] table`.
type TruncateStmt struct {
	Leading  []token.Item
	Truncate *Keyword
	Table    *Keyword // nil if omitted
	Name     *SimpleTableName
}

func (t *TruncateStmt) Pos() int { return t.Truncate.Pos() }
func (t *TruncateStmt) End() int { return t.Name.End() }
func (t *TruncateStmt) LeadingComments() []token.Item { return t.Leading }
func (t *TruncateStmt) statementNode()                {}

// ExplainStmt is `EXPLAIN [options] stmt`.
type ExplainStmt struct {
	Leading []token.Item
	Explain *Keyword
	Options *OpaqueTail // captured verbatim between EXPLAIN and the wrapped statement; nil if none
	Stmt    Statement
}

func (e *ExplainStmt) Pos() int { return e.Explain.Pos() }
func (e *ExplainStmt) End() int { return e.Stmt.End() }
func (e *ExplainStmt) LeadingComments() []token.Item { return e.Leading }
func (e *ExplainStmt) statementNode()                {}

// PlaceholderClause lets a bare placeholder token stand in for any
// optional clause slot, so templating hosts can stitch a placeholder
// into any position the grammar names as optional (spec §4.4).
type PlaceholderClause struct {
	Tok *Placeholder
}

func (p *PlaceholderClause) Pos() int { return p.Tok.Pos() }
func (p *PlaceholderClause) End() int { return p.Tok.End() }

// A PlaceholderClause can stand in for any of these optional-clause
// slots (spec §4.4's "checks for a bare placeholder token" rule).
func (p *PlaceholderClause) whereSlotNode()   {}
func (p *PlaceholderClause) groupBySlotNode() {}
func (p *PlaceholderClause) havingSlotNode()  {}
func (p *PlaceholderClause) intoSlotNode()    {}
func (p *PlaceholderClause) fromSlotNode()    {}
func (p *PlaceholderClause) orderBySlotNode() {}
func (p *PlaceholderClause) limitSlotNode()   {}
func (p *PlaceholderClause) lockSlotNode()    {}
