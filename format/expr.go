package format

import (
	"strings"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
)

func (p *printer) formatExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		switch n.Tok.Upper() {
		case "NULL", "TRUE", "FALSE":
			p.writeKeyword(n.Tok.Upper())
		default:
			p.formatIdent(n)
		}
	case *ast.Name:
		p.formatName(n)
	case *ast.StringLit:
		p.write(n.Text())
	case *ast.NumberLit:
		p.write(n.Text())
	case *ast.Placeholder:
		p.write(n.Text())
	case *ast.StarExpr:
		p.write("*")
	case *ast.ParenExpr:
		p.write("(")
		p.formatExpr(n.Expr)
		p.write(")")
	case *ast.UnaryExpr:
		p.formatUnary(n)
	case *ast.BinaryExpr:
		p.formatBinary(n)
	case *ast.FuncCall:
		p.formatFuncCall(n)
	case *ast.CastExpr:
		p.formatCast(n)
	case *ast.CaseExpr:
		p.formatCase(n)
	case *ast.InExpr:
		p.formatIn(n)
	case *ast.BetweenExpr:
		p.formatBetween(n)
	case *ast.LikeExpr:
		p.formatLike(n)
	case *ast.SubqueryExpr:
		p.formatSubselect(n.Subselect)
	case *ast.ExistsExpr:
		p.writeKeyword("EXISTS")
		p.write(" ")
		p.formatSubselect(n.Subselect)
	}
}

func (p *printer) formatName(n *ast.Name) {
	for i, part := range n.Parts {
		if i > 0 {
			p.write(".")
		}
		p.formatIdent(part)
	}
}

// formatIdent normalizes an identifier's quoting: source quoting is
// stripped down to the bare name, then the name is re-quoted with the
// dialect's identifier quote only if it needs it — because it
// collides with a reserved keyword or contains a character other than
// a letter, digit, or underscore (spec §4.6's output-discipline rule).
func (p *printer) formatIdent(id *ast.Ident) {
	name := bareIdentText(id.Text())
	if identNeedsQuote(name, p.dialect) {
		q := p.dialect.IdentifierQuote()
		p.write(string(q) + name + string(q))
		return
	}
	p.write(name)
}

// bareIdentText strips a quoted identifier's surrounding backtick or
// double-quote pair, leaving a bare or already-bare name.
func bareIdentText(text string) string {
	if len(text) >= 2 {
		first := text[0]
		if (first == '`' || first == '"') && text[len(text)-1] == first {
			return text[1 : len(text)-1]
		}
	}
	return text
}

func identNeedsQuote(name string, d dialect.Dialect) bool {
	if name == "" {
		return true
	}
	if d.IsKeyword(strings.ToUpper(name)) {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		isAlnumUnderscore := c == '_' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9')
		if !isAlnumUnderscore {
			return true
		}
	}
	return false
}

func (p *printer) formatSimpleTableName(t *ast.SimpleTableName) {
	p.formatName(t.Name)
}

func (p *printer) formatUnary(n *ast.UnaryExpr) {
	if n.Op != nil {
		p.writeKeyword(n.Op.Upper())
		p.write(" ")
	} else {
		p.write(n.OpPunct.Text())
	}
	p.formatExpr(n.Operand)
}

// formatBinary renders a binary operator application. AND/OR/XOR
// chains get a dedicated strategy (formatBooleanExpr) that always
// puts each operand on its own line, as original_source does; every
// other operator tries one line and falls
// back to putting the whole right operand on an indented continuation
// line.
func (p *printer) formatBinary(n *ast.BinaryExpr) {
	if n.IsBooleanOp() {
		p.formatBooleanExpr(n)
		return
	}
	if p.tryOneLine(func() { p.formatBinaryOneLine(n) }) {
		return
	}
	p.formatExpr(n.Left)
	p.write(" ")
	p.writeKeyword(n.Op.Upper())
	p.indented(func() {
		p.newline()
		p.formatExpr(n.Right)
	})
}

func (p *printer) formatBinaryOneLine(n *ast.BinaryExpr) {
	p.formatExpr(n.Left)
	p.write(" ")
	p.writeKeyword(n.Op.Upper())
	p.write(" ")
	p.formatExpr(n.Right)
}

// formatBooleanExpr flattens a left-leaning chain of the same AND/OR
// operator into a list and always renders one operand per line, the
// operator leading each continuation line (spec §4.6). Unlike other
// binary operators this never tries a one-line rendering first: an
// AND/OR/XOR chain is always split across lines, matching
// original_source's visit_BinOp, which routes every boolean-precedence
// node straight to its multiline renderer.
func (p *printer) formatBooleanExpr(n *ast.BinaryExpr) {
	op, operands := flattenBooleanChain(n)
	for i, operand := range operands {
		if i > 0 {
			p.newline()
			p.writeKeyword(op)
			p.write(" ")
		}
		p.formatExpr(operand)
	}
}

// flattenBooleanChain walks both operands of n, descending into every
// BinaryExpr with the same operator spelling, and collects the other
// operands left to right.
func flattenBooleanChain(n *ast.BinaryExpr) (string, []ast.Expr) {
	op := n.Op.Upper()
	var operands []ast.Expr
	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		if b, ok := e.(*ast.BinaryExpr); ok && b.Op.Upper() == op {
			walk(b.Left)
			walk(b.Right)
			return
		}
		operands = append(operands, e)
	}
	walk(n)
	return op, operands
}

func (p *printer) formatFuncCall(n *ast.FuncCall) {
	p.formatName(n.Name)
	p.write("(")
	if n.Distinct != nil {
		p.writeKeyword("DISTINCT")
		p.write(" ")
	}
	formatCommaList(p, n.Args, func(e ast.Expr) { p.formatExpr(e) })
	p.write(")")
}

func (p *printer) formatCast(n *ast.CastExpr) {
	p.writeKeyword("CAST")
	p.write("(")
	p.formatExpr(n.Expr)
	p.write(" ")
	p.writeKeyword("AS")
	p.write(" ")
	p.formatName(n.Type)
	p.write(")")
}

func (p *printer) formatCase(n *ast.CaseExpr) {
	p.writeKeyword("CASE")
	if n.Operand != nil {
		p.write(" ")
		p.formatExpr(n.Operand)
	}
	p.indented(func() {
		for _, w := range n.Whens {
			p.newline()
			p.writeKeyword("WHEN")
			p.write(" ")
			p.formatExpr(w.Cond)
			p.write(" ")
			p.writeKeyword("THEN")
			p.write(" ")
			p.formatExpr(w.Result)
		}
		if n.ElseVal != nil {
			p.newline()
			p.writeKeyword("ELSE")
			p.write(" ")
			p.formatExpr(n.ElseVal)
		}
	})
	p.newline()
	p.writeKeyword("END")
}

func (p *printer) formatIn(n *ast.InExpr) {
	p.formatExpr(n.Expr)
	p.write(" ")
	p.writeKeyword(n.Op.Upper())
	p.write(" ")
	switch rhs := n.RHS.(type) {
	case *ast.InExprList:
		p.write("(")
		formatCommaList(p, rhs.Values, func(e ast.Expr) { p.formatExpr(e) })
		p.write(")")
	case *ast.InSubselect:
		p.formatSubselect(rhs.Subselect)
	case *ast.InPlaceholder:
		p.write(rhs.Tok.Text())
	}
}

func (p *printer) formatBetween(n *ast.BetweenExpr) {
	p.formatExpr(n.Expr)
	p.write(" ")
	if n.Not != nil {
		p.writeKeyword("NOT")
		p.write(" ")
	}
	p.writeKeyword("BETWEEN")
	p.write(" ")
	p.formatExpr(n.Low)
	p.write(" ")
	p.writeKeyword("AND")
	p.write(" ")
	p.formatExpr(n.High)
}

func (p *printer) formatLike(n *ast.LikeExpr) {
	p.formatExpr(n.Expr)
	p.write(" ")
	p.writeKeyword(n.Op.Upper())
	p.write(" ")
	p.formatExpr(n.Pattern)
	if n.Escape != nil {
		p.write(" ")
		p.writeKeyword("ESCAPE")
		p.write(" ")
		p.formatExpr(n.EscExpr)
	}
}
