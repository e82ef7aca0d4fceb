package parser

import (
	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/token"
)

// parseOpaqueTail captures every remaining leaf token up to (but not
// including) the statement-terminating eof, losslessly, for the
// handful of statement kinds this implementation does not parse
// beyond their introducer keyword.
func (p *Parser) parseOpaqueTail() *ast.OpaqueTail {
	var leaves []ast.Leaf
	for !p.atEOF() {
		leaves = append(leaves, p.leaf())
	}
	if len(leaves) == 0 {
		return nil
	}
	return &ast.OpaqueTail{Leaves: leaves}
}

// parseTransaction parses START TRANSACTION, BEGIN, COMMIT, and
// ROLLBACK [TO SAVEPOINT name], none of which this implementation
// validates beyond the verb.
func (p *Parser) parseTransaction(leading []token.Item) (ast.Statement, error) {
	verb := p.keyword()
	return &ast.TransactionStmt{Leading: leading, Verb: verb, Tail: p.parseOpaqueTail()}, nil
}

// parseSet parses `SET assignment, assignment, ...`.
func (p *Parser) parseSet(leading []token.Item) (ast.Statement, error) {
	set := p.keyword()
	assignments, err := parseCommaSeparated(p, p.parseSetAssignment)
	if err != nil {
		return nil, err
	}
	return &ast.SetStmt{Leading: leading, Set: set, Assignments: assignments}, nil
}

// parseSetAssignment parses one `name = value` entry through
// parseAssignment. Variable-scope prefixes (GLOBAL, SESSION, @@, @) are
// not accepted.
func (p *Parser) parseSetAssignment() (*ast.Assignment, error) {
	return p.parseAssignment()
}

// parseShow parses SHOW, DESCRIBE, and DESC, none of which this
// implementation validates beyond the introducer keyword.
func (p *Parser) parseShow(leading []token.Item) (ast.Statement, error) {
	verb := p.keyword()
	return &ast.ShowStmt{Leading: leading, Verb: verb, Tail: p.parseOpaqueTail()}, nil
}

// parseFlush parses FLUSH, unvalidated beyond the introducer keyword.
func (p *Parser) parseFlush(leading []token.Item) (ast.Statement, error) {
	flush := p.keyword()
	return &ast.FlushStmt{Leading: leading, Flush: flush, Tail: p.parseOpaqueTail()}, nil
}

// parseRenameTable parses `RENAME TABLE old TO new, old TO new, ...`.
func (p *Parser) parseRenameTable(leading []token.Item) (ast.Statement, error) {
	rename := p.keyword()
	table, err := p.expectKeyword("TABLE")
	if err != nil {
		return nil, err
	}
	pairs, err := parseCommaSeparated(p, p.parseRenamePair)
	if err != nil {
		return nil, err
	}
	return &ast.RenameTableStmt{Leading: leading, Rename: rename, Table: table, Pairs: pairs}, nil
}

func (p *Parser) parseRenamePair() (*ast.RenamePair, error) {
	oldName, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	to, err := p.expectKeyword("TO")
	if err != nil {
		return nil, err
	}
	newName, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	return &ast.RenamePair{Old: oldName, To: to, New: newName}, nil
}

// parseTruncate parses `TRUNCATE [TABLE] table`.
func (p *Parser) parseTruncate(leading []token.Item) (ast.Statement, error) {
	truncate := p.keyword()
	t := &ast.TruncateStmt{Leading: leading, Truncate: truncate}
	if kw, ok := p.maybeConsumeKeyword("TABLE"); ok {
		t.Table = kw
	}
	name, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	t.Name = name
	return t, nil
}

// parseDrop dispatches between DROP TABLE and DROP INDEX, the two
// DROP forms this implementation structures; any other DROP form is
// out of scope per spec.md's Non-goals on the DDL surface.
func (p *Parser) parseDrop(leading []token.Item) (ast.Statement, error) {
	drop := p.keyword()
	if p.isKeyword("INDEX") {
		return p.parseDropIndex(leading, drop)
	}
	table, err := p.expectKeyword("TABLE")
	if err != nil {
		return nil, err
	}
	d := &ast.DropTableStmt{Leading: leading, Drop: drop, Table: table}
	if kw, ok := p.maybeConsumeKeyword("IF"); ok {
		d.If = kw
		exists, err := p.expectKeyword("EXISTS")
		if err != nil {
			return nil, err
		}
		d.Exists = exists
	}
	tables, err := parseCommaSeparated(p, p.parseSimpleTableName)
	if err != nil {
		return nil, err
	}
	d.Tables = tables
	return d, nil
}

func (p *Parser) parseDropIndex(leading []token.Item, drop *ast.Keyword) (ast.Statement, error) {
	index := p.keyword()
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	on, err := p.expectKeyword("ON")
	if err != nil {
		return nil, err
	}
	table, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	return &ast.DropIndexStmt{Leading: leading, Drop: drop, Index: index, Name: name, On: on, Table: table}, nil
}

// parseCreate dispatches between CREATE [TEMPORARY] TABLE and CREATE
// [UNIQUE] INDEX, the two CREATE forms this implementation structures.
func (p *Parser) parseCreate(leading []token.Item) (ast.Statement, error) {
	create := p.keyword()
	if p.isKeyword("TEMPORARY") || p.isKeyword("TABLE") {
		return p.parseCreateTable(leading, create)
	}
	return p.parseCreateIndex(leading, create)
}

func (p *Parser) parseCreateTable(leading []token.Item, create *ast.Keyword) (ast.Statement, error) {
	c := &ast.CreateTableStmt{Leading: leading, Create: create}
	if kw, ok := p.maybeConsumeKeyword("TEMPORARY"); ok {
		c.Temporary = kw
	}
	table, err := p.expectKeyword("TABLE")
	if err != nil {
		return nil, err
	}
	c.Table = table
	if kw, ok := p.maybeConsumeKeyword("IF"); ok {
		c.If = kw
		not, err := p.expectKeyword("NOT")
		if err != nil {
			return nil, err
		}
		c.Not = not
		exists, err := p.expectKeyword("EXISTS")
		if err != nil {
			return nil, err
		}
		c.Exists = exists
	}
	name, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	c.Name = name
	lparen, err := p.expectPunct(token.LParen, "(")
	if err != nil {
		return nil, err
	}
	c.LParen = lparen
	elements, err := parseCommaSeparated(p, p.parseTableElement)
	if err != nil {
		return nil, err
	}
	c.Elements = elements
	rparen, err := p.expectPunct(token.RParen, ")")
	if err != nil {
		return nil, err
	}
	c.RParen = rparen
	for p.canStartTableOption() {
		opt, err := p.parseTableOption()
		if err != nil {
			return nil, err
		}
		c.Options = append(c.Options, opt)
	}
	return c, nil
}

var tableConstraintLead = map[string]bool{
	"CONSTRAINT": true, "PRIMARY": true, "UNIQUE": true, "FOREIGN": true, "CHECK": true, "KEY": true,
}

func (p *Parser) parseTableElement() (ast.TableElement, error) {
	if tok := p.cur(); tok.Kind == token.Ident && tableConstraintLead[tok.Upper()] {
		return p.parseTableConstraint()
	}
	return p.parseColumnDef()
}

func (p *Parser) parseColumnDef() (*ast.ColumnDef, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var typ *ast.Name
	if tok := p.cur(); tok.Kind == token.Ident {
		// Type names such as INT and VARCHAR are reserved words in MySQL,
		// so a bare type word is taken without the reserved-word check.
		typ = &ast.Name{Parts: []*ast.Ident{{Leaf: p.leaf()}}}
	} else if typ, err = p.parseName(); err != nil {
		return nil, err
	}
	c := &ast.ColumnDef{Name: name, Type: typ}
	if p.isPunct(token.LParen) {
		c.TypeParen = &ast.Punct{Leaf: p.leaf()}
		args, err := parseCommaSeparated(p, p.parseNumberLit)
		if err != nil {
			return nil, err
		}
		c.TypeArgs = args
		rparen, err := p.expectPunct(token.RParen, ")")
		if err != nil {
			return nil, err
		}
		c.TypeRParen = rparen
	}
	for p.canStartColumnConstraint() {
		con, err := p.parseColumnConstraint()
		if err != nil {
			return nil, err
		}
		c.Constraints = append(c.Constraints, con)
	}
	return c, nil
}

func (p *Parser) parseNumberLit() (*ast.NumberLit, error) {
	tok := p.cur()
	if tok.Kind != token.Number {
		return nil, fromUnexpectedToken(tok, "number")
	}
	return &ast.NumberLit{Leaf: p.leaf()}, nil
}

var columnConstraintLead = map[string]bool{
	"NOT": true, "NULL": true, "DEFAULT": true, "PRIMARY": true,
	"UNIQUE": true, "REFERENCES": true, "AUTO_INCREMENT": true, "KEY": true,
	"COMMENT": true, "COLLATE": true, "CHARACTER": true,
}

func (p *Parser) canStartColumnConstraint() bool {
	tok := p.cur()
	return tok.Kind == token.Ident && columnConstraintLead[tok.Upper()]
}

func (p *Parser) parseColumnConstraint() (*ast.ColumnConstraint, error) {
	if p.isKeyword("DEFAULT") {
		kw := p.keyword()
		val, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ColumnConstraint{Keywords: []*ast.Keyword{kw}, Default: val}, nil
	}
	if p.isKeyword("REFERENCES") {
		kw := p.keyword()
		table, err := p.parseSimpleTableName()
		if err != nil {
			return nil, err
		}
		con := &ast.ColumnConstraint{Keywords: []*ast.Keyword{kw}, RefTable: table}
		if p.isPunct(token.LParen) {
			cols, err := p.parseColumnList()
			if err != nil {
				return nil, err
			}
			con.RefCols = cols
		}
		return con, nil
	}
	var kws []*ast.Keyword
	kws = append(kws, p.keyword())
	for p.canStartColumnConstraint() && !p.isKeyword("DEFAULT") && !p.isKeyword("REFERENCES") {
		kws = append(kws, p.keyword())
	}
	return &ast.ColumnConstraint{Keywords: kws}, nil
}

func (p *Parser) parseTableConstraint() (*ast.TableConstraint, error) {
	t := &ast.TableConstraint{}
	if kw, ok := p.maybeConsumeKeyword("CONSTRAINT"); ok {
		t.ConstraintKw = kw
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		t.Name = name
	}

	if kw, ok := p.maybeConsumeKeyword("CHECK"); ok {
		t.Keywords = []*ast.Keyword{kw}
		lparen, err := p.expectPunct(token.LParen, "(")
		if err != nil {
			return nil, err
		}
		t.CheckParen = lparen
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		t.CheckExpr = expr
		rparen, err := p.expectPunct(token.RParen, ")")
		if err != nil {
			return nil, err
		}
		t.CheckRParen = rparen
		return t, nil
	}

	if kws, ok := p.maybeConsumeKeywordSequence("PRIMARY", "KEY"); ok {
		t.Keywords = append(t.Keywords, kws...)
	} else if kw, ok := p.maybeConsumeOneOf("UNIQUE", "KEY"); ok {
		t.Keywords = append(t.Keywords, kw)
	} else if kws, ok := p.maybeConsumeKeywordSequence("FOREIGN", "KEY"); ok {
		t.Keywords = append(t.Keywords, kws...)
	} else {
		return nil, fromUnexpectedToken(p.cur(), "table constraint")
	}

	cols, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}
	t.Cols = cols

	if p.isKeyword("REFERENCES") {
		t.Keywords = append(t.Keywords, p.keyword())
		refTable, err := p.parseSimpleTableName()
		if err != nil {
			return nil, err
		}
		t.RefTable = refTable
		refCols, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		t.RefCols = refCols
	}

	return t, nil
}

func (p *Parser) canStartTableOption() bool {
	return p.cur().Kind == token.Ident && !p.atEOF()
}

func (p *Parser) parseTableOption() (*ast.TableOption, error) {
	var kws []*ast.Keyword
	kws = append(kws, p.keyword())
	for p.cur().Kind == token.Ident && !p.isPunct(token.Op) {
		// A second bare keyword (e.g. "DEFAULT CHARSET") extends the
		// option name only when no "=" or value has been seen yet.
		if p.peekLooksLikeOptionValue() {
			break
		}
		kws = append(kws, p.keyword())
	}
	opt := &ast.TableOption{Keywords: kws}
	if p.isPunct(token.Op) && p.cur().Text == "=" {
		opt.Eq = &ast.Punct{Leaf: p.leaf()}
	}
	if !p.atEOF() && !p.isPunct(token.Comma) {
		switch p.cur().Kind {
		case token.Ident, token.QuotedIdent:
			opt.Value = &ast.Ident{Leaf: p.leaf()}
		case token.String:
			opt.Value = &ast.StringLit{Leaf: p.leaf()}
		case token.Number:
			opt.Value = &ast.NumberLit{Leaf: p.leaf()}
		}
	}
	return opt, nil
}

// peekLooksLikeOptionValue always reports false, so every bare word
// that follows an option keyword extends the option name; a bare-word
// value is only taken after "=".
func (p *Parser) peekLooksLikeOptionValue() bool {
	return false
}

func (p *Parser) parseCreateIndex(leading []token.Item, create *ast.Keyword) (ast.Statement, error) {
	c := &ast.CreateIndexStmt{Leading: leading, Create: create}
	if kw, ok := p.maybeConsumeKeyword("UNIQUE"); ok {
		c.Unique = kw
	}
	index, err := p.expectKeyword("INDEX")
	if err != nil {
		return nil, err
	}
	c.Index = index
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	c.Name = name
	on, err := p.expectKeyword("ON")
	if err != nil {
		return nil, err
	}
	c.On = on
	table, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	c.Table = table
	cols, err := p.parseColumnList()
	if err != nil {
		return nil, err
	}
	c.Cols = cols
	return c, nil
}

// parseAlterTable parses `ALTER TABLE name action, action, ...`,
// where each action is an opaque keyword-and-element run (see
// ast.AlterTableAction's doc comment).
func (p *Parser) parseAlterTable(leading []token.Item) (ast.Statement, error) {
	alter := p.keyword()
	table, err := p.expectKeyword("TABLE")
	if err != nil {
		return nil, err
	}
	name, err := p.parseSimpleTableName()
	if err != nil {
		return nil, err
	}
	actions, err := parseCommaSeparated(p, p.parseAlterTableAction)
	if err != nil {
		return nil, err
	}
	return &ast.AlterTableStmt{Leading: leading, Alter: alter, Table: table, Name: name, Actions: actions}, nil
}

func (p *Parser) parseAlterTableAction() (*ast.AlterTableAction, error) {
	a := &ast.AlterTableAction{}
	if kws, ok := p.maybeConsumeKeywordSequence("ADD", "COLUMN"); ok {
		a.Keywords = kws
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		a.Element = col
		return a, nil
	}
	if kw, ok := p.maybeConsumeKeyword("ADD"); ok {
		a.Keywords = []*ast.Keyword{kw}
		if tok := p.cur(); tok.Kind == token.Ident && tableConstraintLead[tok.Upper()] {
			con, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			a.Element = con
			return a, nil
		}
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		a.Element = col
		return a, nil
	}
	if kws, ok := p.maybeConsumeKeywordSequence("DROP", "COLUMN"); ok {
		a.Keywords = kws
		col, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Column = col
		return a, nil
	}
	if kws, ok := p.maybeConsumeKeywordSequence("RENAME", "COLUMN"); ok {
		a.Keywords = kws
		col, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.Column = col
		to, err := p.expectKeyword("TO")
		if err != nil {
			return nil, err
		}
		a.Keywords = append(a.Keywords, to)
		newName, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		a.RenameTo = newName
		return a, nil
	}
	return nil, fromUnexpectedToken(p.cur(), "ALTER TABLE action")
}

// parseExplain parses `EXPLAIN [options] stmt`.
func (p *Parser) parseExplain(leading []token.Item) (ast.Statement, error) {
	explain := p.keyword()
	var options *ast.OpaqueTail
	var optLeaves []ast.Leaf
	for !p.atEOF() && !p.startsExplainableStatement() {
		optLeaves = append(optLeaves, p.leaf())
	}
	if len(optLeaves) > 0 {
		options = &ast.OpaqueTail{Leaves: optLeaves}
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.ExplainStmt{Leading: leading, Explain: explain, Options: options, Stmt: stmt}, nil
}

var explainableStarters = map[string]bool{
	"SELECT": true, "WITH": true, "INSERT": true, "REPLACE": true,
	"UPDATE": true, "DELETE": true,
}

func (p *Parser) startsExplainableStatement() bool {
	tok := p.cur()
	if tok.Kind == token.LParen {
		return true
	}
	return tok.Kind == token.Ident && explainableStarters[tok.Upper()]
}
