// Package ast defines sqltree's lossless concrete syntax tree: every
// keyword, punctuation mark, and comment in the source is a node, so
// the tree can be walked to reconstruct the input exactly.
package ast

import "github.com/relaysql/sqltree/token"

// Node is the base of every CST type: leaves, composites, and
// statements alike.
type Node interface {
	Pos() int
	End() int
}

// Expr is any node that can appear where an expression is expected.
type Expr interface {
	Node
	exprNode()
}

// TableExpr is any node that can appear where a table reference is
// expected (a bare table name, a join, a parenthesized subselect, or a
// parenthesized table_ref list).
type TableExpr interface {
	Node
	tableExprNode()
}

// SelectExpr is one item in a SELECT's column list: an aliased
// expression or a bare/table-qualified star.
type SelectExpr interface {
	Node
	selectExprNode()
}

// Statement is a top-level parse result. Every statement may carry
// comments that appeared before its first real token.
type Statement interface {
	Node
	LeadingComments() []token.Item
	statementNode()
}

// Leaf wraps a single lexed token with no children; it is the unit
// every composite and statement node is ultimately built from.
type Leaf struct {
	Tok token.Item
}

func (l Leaf) Pos() int { return l.Tok.Location.Start }
func (l Leaf) End() int { return l.Tok.Location.End }

// Text returns the exact source text of the wrapped token.
func (l Leaf) Text() string { return l.Tok.Text }

// Keyword is a reserved-word leaf, emitted upper-case by the
// formatter regardless of the source's casing.
type Keyword struct{ Leaf }

// Punct is a punctuation-mark leaf: ( ) , . ; [ ] or an operator.
type Punct struct{ Leaf }

// Ident is a bare or quote-delimited identifier leaf.
type Ident struct{ Leaf }

func (i *Ident) exprNode() {}

// StringLit is a string literal leaf; Text() retains the original
// quote characters.
type StringLit struct{ Leaf }

func (s *StringLit) exprNode() {}

// NumberLit is a numeric literal leaf stored as the exact source
// lexeme, never parsed to a Go numeric type (SPEC_FULL.md Open
// Question (b)).
type NumberLit struct{ Leaf }

func (n *NumberLit) exprNode() {}

// Placeholder is a `?`, `%s`, `%(name)s`, or `{name}` template slot.
type Placeholder struct{ Leaf }

func (p *Placeholder) exprNode() {}

// StarExpr is a bare `*` in a SELECT list or after a table qualifier.
type StarExpr struct{ Leaf }

func (s *StarExpr) exprNode()       {}
func (s *StarExpr) selectExprNode() {}

// WithTrailingComma wraps a list element together with the comma, if
// any, that followed it in the source. The formatter and round-trip
// equality both depend on knowing whether a dangling trailing comma
// was present.
type WithTrailingComma[T Node] struct {
	Item  T
	Comma *Punct // nil if no trailing comma followed this element
}

func (w WithTrailingComma[T]) Pos() int { return w.Item.Pos() }
func (w WithTrailingComma[T]) End() int {
	if w.Comma != nil {
		return w.Comma.End()
	}
	return w.Item.End()
}

// HasComma reports whether a trailing comma followed this element.
func (w WithTrailingComma[T]) HasComma() bool { return w.Comma != nil }

// Name is a dot-separated identifier chain: `a`, `a.b`, `a.b.c`.
type Name struct {
	Parts []*Ident
	Dots  []*Punct // len(Dots) == len(Parts)-1
}

func (n *Name) Pos() int { return n.Parts[0].Pos() }
func (n *Name) End() int { return n.Parts[len(n.Parts)-1].End() }

func (n *Name) exprNode() {}

// Last returns the final identifier component (the unqualified name).
func (n *Name) Last() *Ident { return n.Parts[len(n.Parts)-1] }
