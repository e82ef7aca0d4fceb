package parser

import (
	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/token"
)

// precedenceLevel lists, for one rung of the precedence ladder, the
// operator spellings that bind at that rung. Ladder order matches
// spec §4.4: OR/|| < XOR < AND/&& < comparison < | < & < << >> <
// + - < * / DIV % %% MOD < ^, read lowest-precedence first so
// parseLevel(0) is the widest-reaching call.
var precedenceLevels = [][]string{
	{"OR", "||"},
	{"XOR"},
	{"AND", "&&"},
	nil, // comparison level is handled specially by parseComparison
	{"|"},
	{"&"},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "DIV", "%", "%%", "MOD"},
	{"^"},
}

const comparisonLevel = 3

var symbolicComparisonOps = map[string]bool{
	"=": true, "<=>": true, ">=": true, ">": true,
	"<=": true, "<": true, "<>": true, "!=": true,
}

var keywordComparisonOps = map[string]bool{
	"IS": true, "IS NOT": true, "REGEXP": true, "NOT REGEXP": true,
}

// ParseExpr parses a single expression at the top of the precedence
// ladder (spec §4.4's parse_binop(0)).
func (p *Parser) ParseExpr() (ast.Expr, error) {
	return p.parseLevel(0)
}

func (p *Parser) parseLevel(level int) (ast.Expr, error) {
	if level == comparisonLevel {
		return p.parseComparison()
	}
	if level >= len(precedenceLevels) {
		return p.parseUnary()
	}

	left, err := p.parseLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperatorAt(precedenceLevels[level])
		if !ok {
			return left, nil
		}
		right, err := p.parseLevel(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// matchOperatorAt consumes and returns the current token as a Keyword
// if it spells one of names, accepting either an Ident (AND, OR, XOR,
// DIV, MOD) or an Op token (+, -, *, /, %, ^, |, &, <<, >>, ||, &&).
func (p *Parser) matchOperatorAt(names []string) (*ast.Keyword, bool) {
	tok := p.cur()
	var text string
	switch tok.Kind {
	case token.Ident:
		text = tok.Upper()
	case token.Op:
		text = tok.Text
	default:
		return nil, false
	}
	for _, n := range names {
		if text == n {
			return p.keyword(), true
		}
	}
	return nil, false
}

// parseComparison handles the comparison rung, which is not a simple
// operator set: IN, BETWEEN, and LIKE each carry their own right-hand
// side grammar rather than a plain sub-expression.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseLevel(comparisonLevel + 1)
	if err != nil {
		return nil, err
	}
	for {
		next, err := p.tryComparisonOp(left)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return left, nil
		}
		left = next
	}
}

func (p *Parser) tryComparisonOp(left ast.Expr) (ast.Expr, error) {
	tok := p.cur()

	if tok.Kind == token.Op && symbolicComparisonOps[tok.Text] {
		op := p.keyword()
		right, err := p.parseLevel(comparisonLevel + 1)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Left: left, Op: op, Right: right}, nil
	}

	if tok.Kind != token.Ident {
		return nil, nil
	}

	upper := tok.Upper()

	if keywordComparisonOps[upper] {
		op := p.keyword()
		right, err := p.parseLevel(comparisonLevel + 1)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Left: left, Op: op, Right: right}, nil
	}

	switch upper {
	case "LIKE", "NOT LIKE":
		return p.parseLike(left)
	case "IN", "NOT IN":
		return p.parseIn(left)
	case "BETWEEN":
		return p.parseBetween(left, nil)
	case "NOT":
		if mark := p.it.Mark(); true {
			p.advance()
			if p.isKeyword("BETWEEN") {
				notKw := &ast.Keyword{Leaf: ast.Leaf{Tok: tok}}
				return p.parseBetween(left, notKw)
			}
			p.it.Reset(mark)
		}
	}
	return nil, nil
}

func (p *Parser) parseLike(left ast.Expr) (ast.Expr, error) {
	op := p.keyword()
	pattern, err := p.parseLevel(comparisonLevel + 1)
	if err != nil {
		return nil, err
	}
	like := &ast.LikeExpr{Expr: left, Op: op, Pattern: pattern}
	if kw, ok := p.maybeConsumeKeyword("ESCAPE"); ok {
		like.Escape = kw
		escExpr, err := p.parseLevel(comparisonLevel + 1)
		if err != nil {
			return nil, err
		}
		like.EscExpr = escExpr
	}
	return like, nil
}

func (p *Parser) parseBetween(left ast.Expr, not *ast.Keyword) (ast.Expr, error) {
	between, err := p.expectKeyword("BETWEEN")
	if err != nil {
		return nil, err
	}
	low, err := p.parseLevel(comparisonLevel + 1)
	if err != nil {
		return nil, err
	}
	and, err := p.expectKeyword("AND")
	if err != nil {
		return nil, err
	}
	high, err := p.parseLevel(comparisonLevel + 1)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Expr: left, Not: not, Between: between, Low: low, And: and, High: high}, nil
}

func (p *Parser) parseIn(left ast.Expr) (ast.Expr, error) {
	op := p.keyword()
	rhs, err := p.parseInRHS()
	if err != nil {
		return nil, err
	}
	return &ast.InExpr{Expr: left, Op: op, RHS: rhs}, nil
}

func (p *Parser) parseInRHS() (ast.InRHS, error) {
	if tok := p.cur(); tok.Kind == token.Param {
		return &ast.InPlaceholder{Tok: &ast.Placeholder{Leaf: p.leaf()}}, nil
	}
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	if p.startsSelectOrWith() {
		sub, err := p.parseSubselectBody(lparen)
		if err != nil {
			return nil, err
		}
		return &ast.InSubselect{Subselect: sub}, nil
	}
	values, err := parseCommaSeparated(p, p.ParseExpr)
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.InExprList{LParen: lparen, Values: values, RParen: rparen}, nil
}

func (p *Parser) startsSelectOrWith() bool {
	tok := p.cur()
	return tok.Kind == token.Ident && (tok.Upper() == "SELECT" || tok.Upper() == "WITH")
}

// parseUnary handles the prefix operators that bind tighter than any
// binary operator: -x, ~x, NOT x, BINARY x, DISTINCT x.
func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.cur()
	if tok.Kind == token.Op && (tok.Text == "-" || tok.Text == "~" || tok.Text == "+") {
		opPunct := &ast.Punct{Leaf: p.leaf()}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{OpPunct: opPunct, Operand: operand}, nil
	}
	if tok.Kind == token.Ident {
		switch tok.Upper() {
		case "NOT", "BINARY", "DISTINCT":
			op := p.keyword()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpr{Op: op, Operand: operand}, nil
		}
	}
	return p.parsePrimary()
}

// parsePrimary handles the leaves of the expression grammar: literals,
// parenthesized/subselect expressions, function calls, CAST, CASE,
// EXISTS, and (possibly dotted) identifiers.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.Number:
		return &ast.NumberLit{Leaf: p.leaf()}, nil
	case token.String:
		if len(tok.Text) > 0 && tok.Text[0] == p.dialect.IdentifierQuote() {
			return p.parseDottedFromIdent()
		}
		return &ast.StringLit{Leaf: p.leaf()}, nil
	case token.Param:
		return &ast.Placeholder{Leaf: p.leaf()}, nil
	case token.Star:
		return &ast.StarExpr{Leaf: p.leaf()}, nil
	case token.LParen:
		return p.parseParenExpr()
	}

	if tok.Kind == token.QuotedIdent {
		return p.parseDottedFromIdent()
	}

	if tok.Kind != token.Ident {
		return nil, fromUnexpectedToken(tok, "expression")
	}

	switch tok.Upper() {
	case "NULL", "TRUE", "FALSE":
		return &ast.Ident{Leaf: p.leaf()}, nil
	case "CAST":
		return p.parseCast()
	case "CASE":
		return p.parseCase()
	case "EXISTS":
		return p.parseExists()
	}

	return p.parseDottedFromIdent()
}

func (p *Parser) parseParenExpr() (ast.Expr, error) {
	lparen := &ast.Punct{Leaf: p.leaf()}
	if p.startsSelectOrWith() {
		sub, err := p.parseSubselectBody(lparen)
		if err != nil {
			return nil, err
		}
		return &ast.SubqueryExpr{Subselect: sub}, nil
	}
	inner, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.ParenExpr{LParen: lparen, Expr: inner, RParen: rparen}, nil
}

func (p *Parser) parseCast() (ast.Expr, error) {
	cast := p.keyword()
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	as, err := p.expectKeyword("AS")
	if err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.CastExpr{Cast: cast, LParen: lparen, Expr: expr, As: as, Type: typ, RParen: rparen}, nil
}

// parseTypeName parses the type name in a CAST as a bare, possibly
// dotted Name. A size argument such as `(10)` is not accepted: the
// CAST's closing `)` is expected right after the name.
func (p *Parser) parseTypeName() (*ast.Name, error) {
	return p.parseName()
}

func (p *Parser) parseCase() (ast.Expr, error) {
	caseKw := p.keyword()
	c := &ast.CaseExpr{Case: caseKw}
	if !p.isKeyword("WHEN") {
		operand, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		c.Operand = operand
	}
	for p.isKeyword("WHEN") {
		when := p.keyword()
		cond, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		then, err := p.expectKeyword("THEN")
		if err != nil {
			return nil, err
		}
		result, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		c.Whens = append(c.Whens, &ast.CaseWhen{When: when, Cond: cond, Then: then, Result: result})
	}
	if len(c.Whens) == 0 {
		return nil, fromUnexpectedToken(p.cur(), "WHEN")
	}
	if kw, ok := p.maybeConsumeKeyword("ELSE"); ok {
		c.Else = kw
		elseVal, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		c.ElseVal = elseVal
	}
	end, err := p.expectKeyword("END")
	if err != nil {
		return nil, err
	}
	c.End_ = end
	return c, nil
}

func (p *Parser) parseExists() (ast.Expr, error) {
	exists := p.keyword()
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	sub, err := p.parseSubselectBody(lparen)
	if err != nil {
		return nil, err
	}
	return &ast.ExistsExpr{Exists: exists, Subselect: sub}, nil
}

// parseSubselectBody parses a SELECT or UNION statement body following
// an already-consumed opening paren, then consumes the matching close
// paren, producing a parenthesized Subselect.
func (p *Parser) parseSubselectBody(lparen *ast.Punct) (*ast.Subselect, error) {
	inner, err := p.parseSelectOrUnionBody()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("UNION") {
		u := &ast.UnionStatement{Head: &ast.Subselect{Select: inner}}
		if err := p.parseUnionLegsInto(u); err != nil {
			return nil, err
		}
		inner = u
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.Subselect{LParen: lparen, Select: inner, RParen: rparen}, nil
}

// parseDottedFromIdent parses an identifier and, if followed by `(`,
// turns it into a function call; if followed by `.`, continues into a
// dotted Name (collapsing into `qualifier.*` when the final part is a
// bare star).
func (p *Parser) parseDottedFromIdent() (ast.Expr, error) {
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if p.isPunct(token.LParen) {
		return p.parseFuncCallTail(&ast.Name{Parts: []*ast.Ident{first}})
	}

	name := &ast.Name{Parts: []*ast.Ident{first}}
	for p.isPunct(token.Dot) {
		dot := &ast.Punct{Leaf: p.leaf()}
		if p.isPunct(token.Star) {
			star := &ast.StarExpr{Leaf: p.leaf()}
			return &ast.QualifiedStar{Qualifier: name, Dot: dot, Star: star}, nil
		}
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		name.Dots = append(name.Dots, dot)
		name.Parts = append(name.Parts, part)
	}
	if p.isPunct(token.LParen) {
		return p.parseFuncCallTail(name)
	}
	return name, nil
}

func (p *Parser) parseFuncCallTail(name *ast.Name) (ast.Expr, error) {
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	call := &ast.FuncCall{Name: name, LParen: lparen}
	if kw, ok := p.maybeConsumeKeyword("DISTINCT"); ok {
		call.Distinct = kw
	}
	if !p.isPunct(token.RParen) {
		args, err := parseCommaSeparated(p, p.ParseExpr)
		if err != nil {
			return nil, err
		}
		call.Args = args
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	call.RParen = rparen
	return call, nil
}
