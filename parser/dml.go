package parser

import (
	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/token"
)

func (p *Parser) parseSimpleTableName() (*ast.SimpleTableName, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.SimpleTableName{Name: name}, nil
}

// parseInsert parses `INSERT [IGNORE] [INTO] table [(cols)] values
// [ON DUPLICATE KEY UPDATE ...]` (spec §4.4).
func (p *Parser) parseInsert(leading []token.Item) (ast.Statement, error) {
	insert := p.keyword()
	i := &ast.InsertStmt{Leading: leading, Insert: insert}

	if kw, ok := p.maybeConsumeKeyword("IGNORE"); ok {
		if err := p.requireFeature(dialect.InsertIgnore, "INSERT IGNORE", kw.Tok); err != nil {
			return nil, err
		}
		i.Ignore = kw
	}

	into, hasInto := p.maybeConsumeKeyword("INTO")
	i.Into = into
	if i.Ignore != nil && !hasInto && p.dialect.Supports(dialect.RequireIntoForIgnore) {
		return nil, fromUnexpectedToken(p.cur(), "INTO")
	}

	table, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	i.Table = table

	if p.isPunct(token.LParen) {
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		i.Columns = cols
	}

	values, err := p.parseInsertValues()
	if err != nil {
		return nil, err
	}
	i.Values = values

	if p.isKeyword("ON") {
		onDup, err := p.parseOnDuplicateClause()
		if err != nil {
			return nil, err
		}
		if err := p.requireFeature(dialect.InsertOnDuplicateKeyUpdate, "ON DUPLICATE KEY UPDATE", onDup.On.Tok); err != nil {
			return nil, err
		}
		i.OnDup = onDup
	}

	return i, nil
}

func (p *Parser) parseColumnList() (*ast.ColumnList, error) {
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	cols, err := parseCommaSeparated(p, p.parseIdent)
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.ColumnList{LParen: lparen, Columns: cols, RParen: rparen}, nil
}

func (p *Parser) parseInsertValues() (ast.InsertValues, error) {
	if kw, ok := p.maybeConsumeKeyword("DEFAULT"); ok {
		values, err := p.expectKeyword("VALUES")
		if err != nil {
			return nil, err
		}
		if err := p.requireFeature(dialect.DefaultValuesOnInsert, "DEFAULT VALUES", kw.Tok); err != nil {
			return nil, err
		}
		return &ast.DefaultValuesClause{Default: kw, Values: values}, nil
	}

	if kw, ok := p.maybeConsumeOneOf("VALUES", "VALUE"); ok {
		if kw.Upper() == "VALUE" {
			if err := p.requireFeature(dialect.SupportValueForInsert, "VALUE (...)", kw.Tok); err != nil {
				return nil, err
			}
		}
		rows, err := parseCommaSeparated(p, p.parseValuesRow)
		if err != nil {
			return nil, err
		}
		return &ast.ValuesClause{Values: kw, Rows: rows}, nil
	}

	requireParens := p.dialect.Supports(dialect.InsertSelectRequireParens)
	if p.isPunct(token.LParen) {
		lparen, err := p.expectPunct(token.LParen, "(")
		if err != nil {
			return nil, err
		}
		sub, err := p.parseSubselectBody(lparen)
		if err != nil {
			return nil, err
		}
		return &ast.SelectValues{Subselect: sub}, nil
	}
	if requireParens {
		return nil, fromDisallowed(p.cur(), p.dialect, "INSERT ... SELECT without parentheses")
	}
	stmt, err := p.parseSelectOrUnionBody()
	if err != nil {
		return nil, err
	}
	return &ast.SelectValues{Subselect: &ast.Subselect{Select: stmt}}, nil
}

func (p *Parser) parseValuesRow() (*ast.ValuesRow, error) {
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	values, err := parseCommaSeparated(p, p.ParseExpr)
	if err != nil {
		return nil, err
	}
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	return &ast.ValuesRow{LParen: lparen, Values: values, RParen: rparen}, nil
}

func (p *Parser) parseOnDuplicateClause() (*ast.OnDuplicateClause, error) {
	on := p.keyword()
	dup, err := p.expectKeyword("DUPLICATE")
	if err != nil {
		return nil, err
	}
	key, err := p.expectKeyword("KEY")
	if err != nil {
		return nil, err
	}
	update, err := p.expectKeyword("UPDATE")
	if err != nil {
		return nil, err
	}
	assignments, err := parseCommaSeparated(p, p.parseAssignment)
	if err != nil {
		return nil, err
	}
	return &ast.OnDuplicateClause{On: on, Duplicate: dup, Key: key, Update: update, Assignments: assignments}, nil
}

func (p *Parser) parseAssignment() (*ast.Assignment, error) {
	col, err := p.parseName()
	if err != nil {
		return nil, err
	}
	eq, err := p.expectPunct(token.Op, "=")
	if err != nil {
		return nil, err
	}
	if eq.Text() != "=" {
		return nil, fromUnexpectedToken(eq.Tok, "=")
	}
	value, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Column: col, Eq: eq, Value: value}, nil
}

// parseReplace parses MySQL's `REPLACE [INTO] table [(cols)] values`,
// gated by the replace feature.
func (p *Parser) parseReplace(leading []token.Item) (ast.Statement, error) {
	replace := p.keyword()
	if err := p.requireFeature(dialect.Replace, "REPLACE", replace.Tok); err != nil {
		return nil, err
	}
	r := &ast.ReplaceStmt{Leading: leading, Replace: replace}
	if kw, ok := p.maybeConsumeKeyword("INTO"); ok {
		r.Into = kw
	}
	table, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	r.Table = table
	if p.isPunct(token.LParen) {
		cols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		r.Columns = cols
	}
	values, err := p.parseInsertValues()
	if err != nil {
		return nil, err
	}
	r.Values = values
	return r, nil
}

// parseUpdate parses `UPDATE table SET assignment, ... [FROM table]
// [WHERE expr] [ORDER BY ...] [LIMIT ...]`.
func (p *Parser) parseUpdate(leading []token.Item) (ast.Statement, error) {
	update := p.keyword()
	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	set, err := p.expectKeyword("SET")
	if err != nil {
		return nil, err
	}
	assignments, err := parseCommaSeparated(p, p.parseAssignment)
	if err != nil {
		return nil, err
	}
	u := &ast.UpdateStmt{Leading: leading, Update: update, Table: table, Set: set, Assignments: assignments}

	if kw, ok := p.maybeConsumeKeyword("FROM"); ok {
		fromTable, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		u.From = &ast.FromClause{From: kw, Table: fromTable}
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		u.Where = ph
	} else if kw, ok := p.maybeConsumeKeyword("WHERE"); ok {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		u.Where = &ast.WhereClause{Where: kw, Expr: expr}
	}

	if p.isKeyword("ORDER") {
		if err := p.requireFeature(dialect.UpdateLimit, "UPDATE ... ORDER BY", p.cur()); err != nil {
			return nil, err
		}
		ob, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		u.OrderBy = ob
	}

	if p.isKeyword("LIMIT") {
		if err := p.requireFeature(dialect.UpdateLimit, "UPDATE ... LIMIT", p.cur()); err != nil {
			return nil, err
		}
		lim, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		u.Limit = lim
	}

	return u, nil
}

// parseDelete parses `DELETE [FROM] table [USING table] [WHERE expr]
// [ORDER BY ...] [LIMIT ...]`.
func (p *Parser) parseDelete(leading []token.Item) (ast.Statement, error) {
	del := p.keyword()
	d := &ast.DeleteStmt{Leading: leading, Delete: del}

	from, hasFrom := p.maybeConsumeKeyword("FROM")
	d.From = from
	if !hasFrom && p.dialect.Supports(dialect.RequireFromForDelete) {
		return nil, fromUnexpectedToken(p.cur(), "FROM")
	}

	table, err := p.parseTableRef()
	if err != nil {
		return nil, err
	}
	d.Table = table

	if kw, ok := p.maybeConsumeKeyword("USING"); ok {
		if err := p.requireFeature(dialect.DeleteUsing, "DELETE ... USING", kw.Tok); err != nil {
			return nil, err
		}
		usingTable, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		d.Using = &ast.UsingClause{Using: kw, Table: usingTable}
	}

	if ph, ok := p.maybeConsumePlaceholder(); ok {
		d.Where = ph
	} else if kw, ok := p.maybeConsumeKeyword("WHERE"); ok {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		d.Where = &ast.WhereClause{Where: kw, Expr: expr}
	}

	if p.isKeyword("ORDER") {
		ob, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		d.OrderBy = ob
	}

	if p.isKeyword("LIMIT") {
		lim, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		d.Limit = lim
	}

	return d, nil
}
