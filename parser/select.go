package parser

import (
	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/token"
)

// parseParenOrUnion handles a top-level statement whose first token is
// `(`: a parenthesized SELECT/UNION that re-enters the subselect
// grammar and may be followed by further UNION legs.
func (p *Parser) parseParenOrUnion(leading []token.Item) (ast.Statement, error) {
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	sub, err := p.parseSubselectBody(lparen)
	if err != nil {
		return nil, err
	}
	return p.continueUnion(leading, sub)
}

// parseSelectOrUnion parses a leading SELECT or WITH clause as a
// Subselect head, then continues into zero or more UNION legs.
func (p *Parser) parseSelectOrUnion(leading []token.Item) (ast.Statement, error) {
	stmt, err := p.parseWithAndSelect(leading)
	if err != nil {
		return nil, err
	}
	sub := &ast.Subselect{Select: stmt}
	return p.continueUnion(leading, sub)
}

// parseSelectOrUnionBody parses one SELECT statement (with its own
// optional WITH clause), without consuming any following UNION legs;
// used whenever a subselect is re-entered.
func (p *Parser) parseSelectOrUnionBody() (ast.Statement, error) {
	return p.parseWithAndSelect(p.takeLeadingComments())
}

func (p *Parser) parseWithAndSelect(leading []token.Item) (ast.Statement, error) {
	var with *ast.WithClause
	if p.isKeyword("WITH") {
		w, err := p.parseWithClause()
		if err != nil {
			return nil, err
		}
		if err := p.requireFeature(dialect.WithClause, "WITH clause", w.With.Tok); err != nil {
			return nil, err
		}
		with = w
	}
	return p.parseSelect(leading, with)
}

func (p *Parser) continueUnion(leading []token.Item, head *ast.Subselect) (ast.Statement, error) {
	if !p.isKeyword("UNION") {
		return head.Select, nil
	}
	u := &ast.UnionStatement{Leading: leading, Head: head}
	if err := p.parseUnionLegsInto(u); err != nil {
		return nil, err
	}
	return u, nil
}

// parseUnionLegsInto consumes the `(UNION ... subselect)+ [ORDER BY]
// [LIMIT]` tail shared by a top-level UNION and a parenthesized one.
func (p *Parser) parseUnionLegsInto(u *ast.UnionStatement) error {
	for p.isKeyword("UNION") {
		leg, err := p.parseUnionLeg()
		if err != nil {
			return err
		}
		u.Legs = append(u.Legs, leg)
	}
	if p.isKeyword("ORDER") {
		ob, err := p.parseOrderByClause()
		if err != nil {
			return err
		}
		u.OrderBy = ob
	}
	if p.isKeyword("LIMIT") {
		lim, err := p.parseLimitClause()
		if err != nil {
			return err
		}
		u.Limit = lim
	}
	return nil
}

func (p *Parser) parseUnionLeg() (*ast.UnionLeg, error) {
	union := p.keyword()
	var allOrDistinct *ast.Keyword
	if kw, ok := p.maybeConsumeOneOf("ALL", "DISTINCT"); ok {
		allOrDistinct = kw
	}
	if p.isPunct(token.LParen) {
		lparen := &ast.Punct{Leaf: p.leaf()}
		sub, err := p.parseSubselectBody(lparen)
		if err != nil {
			return nil, err
		}
		return &ast.UnionLeg{Union: union, AllOrDistinct: allOrDistinct, Subselect: sub}, nil
	}
	stmt, err := p.parseSelectOrUnionBody()
	if err != nil {
		return nil, err
	}
	return &ast.UnionLeg{Union: union, AllOrDistinct: allOrDistinct, Subselect: &ast.Subselect{Select: stmt}}, nil
}

func (p *Parser) parseWithClause() (*ast.WithClause, error) {
	with := p.keyword()
	w := &ast.WithClause{With: with}
	if kw, ok := p.maybeConsumeKeyword("RECURSIVE"); ok {
		w.Recursive = kw
	}
	ctes, err := parseCommaSeparated(p, p.parseCTE)
	if err != nil {
		return nil, err
	}
	w.CTEs = ctes
	return w, nil
}

func (p *Parser) parseCTE() (*ast.CTE, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c := &ast.CTE{Name: name}
	if p.isPunct(token.LParen) {
		c.ColParen = &ast.Punct{Leaf: p.leaf()}
		cols, err := parseCommaSeparated(p, p.parseIdent)
		if err != nil {
			return nil, err
		}
		c.Cols = cols
		rparen, err := p.expectPunct(token.RParen, ")")
		if err != nil {
			return nil, err
		}
		c.ColRParen = rparen
	}
	as, err := p.expectKeyword("AS")
	if err != nil {
		return nil, err
	}
	c.As = as
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	sub, err := p.parseSubselectBody(lparen)
	if err != nil {
		return nil, err
	}
	c.Subselect = sub
	return c, nil
}

// parseSelect assembles one SELECT statement in the strict clause
// order spec §4.4 describes.
func (p *Parser) parseSelect(leading []token.Item, with *ast.WithClause) (*ast.SelectStmt, error) {
	selectKw, err := p.expectKeyword("SELECT")
	if err != nil {
		return nil, err
	}
	s := &ast.SelectStmt{Leading: leading, With: with, Select: selectKw}

	for _, group := range p.dialect.SelectModifiers() {
		if kw, ok := p.maybeConsumeOneOf(group...); ok {
			s.Modifiers = append(s.Modifiers, kw)
		}
	}

	cols, err := parseCommaSeparated(p, p.parseSelectExpr)
	if err != nil {
		return nil, err
	}
	s.Columns = cols

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Into1 = ph
	} else if p.isKeyword("INTO") {
		into, err := p.parseIntoClause()
		if err != nil {
			return nil, err
		}
		s.Into1 = into
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.From = ph
	} else if p.isKeyword("FROM") {
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		s.From = from
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Where = ph
	} else if kw, ok := p.maybeConsumeKeyword("WHERE"); ok {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		s.Where = &ast.WhereClause{Where: kw, Expr: expr}
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.GroupBy = ph
	} else if p.isKeyword("GROUP") {
		gb, err := p.parseGroupByClause()
		if err != nil {
			return nil, err
		}
		s.GroupBy = gb
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Having = ph
	} else if kw, ok := p.maybeConsumeKeyword("HAVING"); ok {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		s.Having = &ast.HavingClause{Having: kw, Expr: expr}
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.OrderBy = ph
	} else if p.isKeyword("ORDER") {
		ob, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		s.OrderBy = ob
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Limit = ph
	} else if p.isKeyword("LIMIT") {
		lim, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		s.Limit = lim
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Into2 = ph
	} else if p.isKeyword("INTO") {
		into, err := p.parseIntoClause()
		if err != nil {
			return nil, err
		}
		s.Into2 = into
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Lock = ph
	} else if p.isKeyword("FOR") {
		lock, err := p.parseLockClause()
		if err != nil {
			return nil, err
		}
		s.Lock = lock
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		s.Into3 = ph
	} else if p.isKeyword("INTO") {
		into, err := p.parseIntoClause()
		if err != nil {
			return nil, err
		}
		s.Into3 = into
	}

	return s, nil
}

func (p *Parser) parseSelectExpr() (ast.SelectExpr, error) {
	if p.isPunct(token.Star) {
		return &ast.StarExpr{Leaf: p.leaf()}, nil
	}
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if q, ok := expr.(*ast.QualifiedStar); ok {
		return q, nil
	}
	a := &ast.AliasedExpr{Expr: expr}
	if kw, ok := p.maybeConsumeKeyword("AS"); ok {
		a.As = kw
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Alias = alias
	} else if p.canStartBareAlias() {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Alias = alias
	}
	return a, nil
}

// canStartBareAlias reports whether the current token could begin an
// alias written without AS: an identifier that is not itself reserved
// as a clause-introducing keyword in this dialect.
func (p *Parser) canStartBareAlias() bool {
	tok := p.cur()
	if tok.Kind != token.Ident && tok.Kind != token.QuotedIdent {
		if tok.Kind == token.String && len(tok.Text) > 0 && tok.Text[0] == p.dialect.IdentifierQuote() {
			return true
		}
		return false
	}
	if tok.Kind == token.QuotedIdent {
		return true
	}
	return !p.dialect.IsKeyword(tok.Upper())
}

func (p *Parser) parseIntoClause() (*ast.IntoClause, error) {
	into := p.keyword()
	targets, err := parseCommaSeparated(p, p.parseIdent)
	if err != nil {
		return nil, err
	}
	return &ast.IntoClause{Into: into, Targets: targets}, nil
}

func (p *Parser) parseGroupByClause() (*ast.GroupByClause, error) {
	group := p.keyword()
	by, err := p.expectKeyword("BY")
	if err != nil {
		return nil, err
	}
	items, err := parseCommaSeparated(p, p.ParseExpr)
	if err != nil {
		return nil, err
	}
	return &ast.GroupByClause{Group: group, By: by, Items: items}, nil
}

func (p *Parser) parseOrderByClause() (*ast.OrderByClause, error) {
	order := p.keyword()
	by, err := p.expectKeyword("BY")
	if err != nil {
		return nil, err
	}
	items, err := parseCommaSeparated(p, p.parseOrderByItem)
	if err != nil {
		return nil, err
	}
	return &ast.OrderByClause{Order: order, By: by, Items: items}, nil
}

func (p *Parser) parseOrderByItem() (*ast.OrderByItem, error) {
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	item := &ast.OrderByItem{Expr: expr}
	if kw, ok := p.maybeConsumeOneOf("ASC", "DESC"); ok {
		item.Direction = kw
	}
	return item, nil
}

func (p *Parser) parseLimitClause() (*ast.LimitClause, error) {
	limit := p.keyword()
	l := &ast.LimitClause{Limit: limit}

	if kw, ok := p.maybeConsumeKeyword("ALL"); ok {
		if err := p.requireFeature(dialect.LimitAll, "LIMIT ALL", kw.Tok); err != nil {
			return nil, err
		}
		l.All = kw
		return l, nil
	}

	first, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	if p.isPunct(token.Comma) {
		if err := p.requireFeature(dialect.CommaOffset, "LIMIT offset, count", p.cur()); err != nil {
			return nil, err
		}
		comma := &ast.Punct{Leaf: p.leaf()}
		count, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		l.CommaOffset = true
		l.OffsetComma = comma
		l.OffsetExpr = first
		l.Count = count
		return l, nil
	}

	l.Count = first
	if kw, ok := p.maybeConsumeKeyword("OFFSET"); ok {
		l.Offset = kw
		offset, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		l.OffsetExpr = offset
	}
	return l, nil
}

func (p *Parser) parseLockClause() (*ast.LockClause, error) {
	forKw := p.keyword()
	mode, ok := p.maybeConsumeOneOf("UPDATE", "SHARE")
	if !ok {
		return nil, fromUnexpectedToken(p.cur(), "UPDATE or SHARE")
	}
	l := &ast.LockClause{For: forKw, Mode: mode}
	if kw, ok := p.maybeConsumeKeyword("NOWAIT"); ok {
		l.Wait = []*ast.Keyword{kw}
	} else if kws, ok := p.maybeConsumeKeywordSequence("SKIP", "LOCKED"); ok {
		l.Wait = kws
	}
	return l, nil
}

// --- table references ---

func (p *Parser) parseFromClause() (*ast.FromClause, error) {
	from := p.keyword()
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	return &ast.FromClause{From: from, Table: table}, nil
}

// parseTableRef parses `table_factor (join_op table_factor join_spec?)*`.
func (p *Parser) parseTableRef() (ast.TableExpr, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	for {
		joinOp, ok := p.matchJoinOp()
		if !ok {
			return left, nil
		}
		right, err := p.parseTableFactor()
		if err != nil {
			return nil, err
		}
		j := &ast.JoinExpr{Left: left, JoinOp: joinOp, Right: right}
		if kw, ok := p.maybeConsumeKeyword("ON"); ok {
			j.On = kw
			cond, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			j.Cond = cond
		} else if kw, ok := p.maybeConsumeKeyword("USING"); ok {
			j.Using = kw
			lparen, err := p.expectPunct(token.LParen, "(")
			if err != nil {
				return nil, err
			}
			j.UParen = lparen
			cols, err := parseCommaSeparated(p, p.parseIdent)
			if err != nil {
				return nil, err
			}
			j.UCols = cols
			rparen, err := p.expectPunct(token.RParen, ")")
			if err != nil {
				return nil, err
			}
			j.URParen = rparen
		}
		left = j
	}
}

var joinLeadWords = map[string]bool{
	"JOIN": true, "INNER": true, "CROSS": true, "LEFT": true,
	"RIGHT": true, "FULL": true, "STRAIGHT_JOIN": true,
}

// matchJoinOp greedily consumes a run of join-introducing keywords:
// an optional LEFT/RIGHT/FULL/INNER/CROSS qualifier, an optional
// OUTER, then JOIN (or a bare STRAIGHT_JOIN), plus a bare comma
// standing in for an implicit cross join.
func (p *Parser) matchJoinOp() ([]*ast.Keyword, bool) {
	if p.isPunct(token.Comma) {
		return []*ast.Keyword{{Leaf: ast.Leaf{Tok: p.advance()}}}, true
	}
	tok := p.cur()
	if tok.Kind != token.Ident || !joinLeadWords[tok.Upper()] {
		return nil, false
	}
	mark := p.it.Mark()
	var kws []*ast.Keyword
	if kw, ok := p.maybeConsumeOneOf("LEFT", "RIGHT", "FULL", "INNER", "CROSS"); ok {
		kws = append(kws, kw)
	}
	if kw, ok := p.maybeConsumeKeyword("OUTER"); ok {
		kws = append(kws, kw)
	}
	if kw, ok := p.maybeConsumeOneOf("JOIN", "STRAIGHT_JOIN"); ok {
		kws = append(kws, kw)
		if kw.Upper() == "STRAIGHT_JOIN" {
			if err := p.requireFeature(dialect.StraightJoin, "STRAIGHT_JOIN", kw.Tok); err != nil {
				p.it.Reset(mark)
				return nil, false
			}
		}
		return kws, true
	}
	p.it.Reset(mark)
	return nil, false
}

func (p *Parser) parseTableFactor() (ast.TableExpr, error) {
	if p.isPunct(token.LParen) {
		return p.parseParenTableFactor()
	}
	if kw, ok := p.maybeConsumeKeyword("LATERAL"); ok {
		if err := p.requireFeature(dialect.LateralJoin, "LATERAL", kw.Tok); err != nil {
			return nil, err
		}
		return p.parseSubqueryTableFactor(kw)
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	base := ast.TableExpr(&ast.SimpleTableName{Name: name})
	return p.parseTableAlias(base)
}

func (p *Parser) parseParenTableFactor() (ast.TableExpr, error) {
	mark := p.it.Mark()
	lparen := &ast.Punct{Leaf: p.leaf()}
	if p.startsSelectOrWith() {
		p.it.Reset(mark)
		return p.parseSubqueryTableFactor(nil)
	}
	inner, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.ParenTableExpr{LParen: lparen, Expr: inner, RParen: rparen}, nil
}

func (p *Parser) parseSubqueryTableFactor(lateral *ast.Keyword) (ast.TableExpr, error) {
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	sub, err := p.parseSubselectBody(lparen)
	if err != nil {
		return nil, err
	}
	s := &ast.SubqueryTableExpr{Lateral: lateral, Subselect: sub}
	as, ok := p.maybeConsumeKeyword("AS")
	if ok {
		s.As = as
	}
	alias, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	s.Alias = alias
	if p.isPunct(token.LParen) {
		s.ColParen = &ast.Punct{Leaf: p.leaf()}
		cols, err := parseCommaSeparated(p, p.parseIdent)
		if err != nil {
			return nil, err
		}
		s.Cols = cols
		rparen, err := p.expectPunct(token.RParen, ")")
		if err != nil {
			return nil, err
		}
		s.ColRParen = rparen
	}
	return s, nil
}

// parseTableAlias attaches an optional `[AS] alias` and any MySQL
// index hints to a bare table reference. A SubqueryTableExpr is
// returned unchanged: parseSubqueryTableFactor reads its alias.
func (p *Parser) parseTableAlias(base ast.TableExpr) (ast.TableExpr, error) {
	if sub, ok := base.(*ast.SubqueryTableExpr); ok {
		return p.finishSubqueryAlias(sub)
	}
	a := &ast.AliasedTableExpr{Expr: base}
	hasAlias := false
	if kw, ok := p.maybeConsumeKeyword("AS"); ok {
		a.As = kw
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Alias = alias
		hasAlias = true
	} else if p.canStartBareAlias() && !p.isJoinOrClauseLead() {
		alias, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Alias = alias
		hasAlias = true
	}
	for p.isKeyword("USE") || p.isKeyword("IGNORE") || p.isKeyword("FORCE") {
		hint, err := p.parseIndexHint()
		if err != nil {
			return nil, err
		}
		a.Hints = append(a.Hints, hint)
	}
	if !hasAlias && len(a.Hints) == 0 {
		return base, nil
	}
	return a, nil
}

func (p *Parser) finishSubqueryAlias(sub *ast.SubqueryTableExpr) (ast.TableExpr, error) {
	return sub, nil
}

// isJoinOrClauseLead reports whether the current keyword introduces a
// join or a following SELECT clause, so the bare-alias heuristic does
// not mistake it for an alias.
func (p *Parser) isJoinOrClauseLead() bool {
	tok := p.cur()
	if tok.Kind != token.Ident {
		return false
	}
	switch tok.Upper() {
	case "JOIN", "INNER", "CROSS", "LEFT", "RIGHT", "FULL", "STRAIGHT_JOIN",
		"ON", "USING", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT",
		"INTO", "FOR", "UNION", "USE", "IGNORE", "FORCE":
		return true
	}
	return false
}

func (p *Parser) parseIndexHint() (*ast.IndexHint, error) {
	verb, ok := p.maybeConsumeOneOf("USE", "IGNORE", "FORCE")
	if !ok {
		return nil, fromUnexpectedToken(p.cur(), "USE, IGNORE, or FORCE")
	}
	h := &ast.IndexHint{Keywords: []*ast.Keyword{verb}}
	kind, ok := p.maybeConsumeOneOf("INDEX", "KEY")
	if !ok {
		return nil, fromUnexpectedToken(p.cur(), "INDEX or KEY")
	}
	h.Keywords = append(h.Keywords, kind)
	if kws, ok := p.maybeConsumeKeywordSequence("FOR", "JOIN"); ok {
		h.Keywords = append(h.Keywords, kws...)
	} else if kws, ok := p.maybeConsumeKeywordSequence("FOR", "ORDER", "BY"); ok {
		h.Keywords = append(h.Keywords, kws...)
	} else if kws, ok := p.maybeConsumeKeywordSequence("FOR", "GROUP", "BY"); ok {
		h.Keywords = append(h.Keywords, kws...)
	}
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	h.LParen = lparen
	names, err := parseCommaSeparated(p, p.parseIdent)
	if err != nil {
		return nil, err
	}
	h.Names = names
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	h.RParen = rparen
	return h, nil
}
