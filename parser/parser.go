// Package parser implements sqltree's Pratt-style recursive-descent
// parser: an explicit one-token-lookahead cursor over the mangled
// token stream producing a lossless CST.
package parser

import (
	"fmt"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/lexer"
	"github.com/relaysql/sqltree/location"
	"github.com/relaysql/sqltree/mangle"
	"github.com/relaysql/sqltree/peekiter"
	"github.com/relaysql/sqltree/token"
)

// ParseError is raised when the input does not match the grammar or
// violates a dialect gating rule.
type ParseError struct {
	Message  string
	Location location.Location
}

func (e *ParseError) Error() string {
	return e.Message + "\n" + e.Location.Excerpt()
}

func fromUnexpectedToken(tok token.Item, expected string) *ParseError {
	got := tok.Text
	if tok.Kind == token.EOF {
		got = "end of input"
	}
	return &ParseError{
		Message:  fmt.Sprintf("expected %s, found %q", expected, got),
		Location: tok.Location,
	}
}

func fromDisallowed(tok token.Item, d dialect.Dialect, feature string) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf("%v does not support %s", d, feature),
		Location: tok.Location,
	}
}

// EOFError signals an attempt to read past the synthetic eof token.
// It indicates an internal bug in this package, never a user-visible
// condition, and is only ever produced by a programming error that
// advances the cursor past EOF.
type EOFError struct{}

func (EOFError) Error() string { return "parser: read past eof" }

// Parser is a single-use cursor over one statement's mangled token
// stream.
type Parser struct {
	sql     string
	dialect dialect.Dialect
	it      *peekiter.Iter[token.Item]
}

// New lexes, distinguishes, and mangles sql, returning a Parser ready
// to parse a single statement under d.
func New(sql string, d dialect.Dialect) (*Parser, error) {
	items, err := lexer.Lex(sql)
	if err != nil {
		return nil, err
	}
	items = mangle.Mangle(mangle.Distinguish(items, d), d)
	return &Parser{sql: sql, dialect: d, it: peekiter.New(items)}, nil
}

// Parse tokenizes, distinguishes, mangles, and parses sql into a
// single Statement under d. It is the `sqltree(sql, dialect)` library
// entry point (spec §6).
func Parse(sql string, d dialect.Dialect) (ast.Statement, error) {
	p, err := New(sql, d)
	if err != nil {
		return nil, err
	}
	return p.ParseStatement()
}

func (p *Parser) cur() token.Item {
	it, ok := p.it.Peek(0)
	if !ok {
		panic(EOFError{})
	}
	return it
}

func (p *Parser) advance() token.Item {
	it, ok := p.it.Next()
	if !ok {
		panic(EOFError{})
	}
	return it
}

func (p *Parser) peekUpper() string {
	return p.cur().Upper()
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) leaf() ast.Leaf {
	return ast.Leaf{Tok: p.advance()}
}

func (p *Parser) keyword() *ast.Keyword {
	return &ast.Keyword{Leaf: p.leaf()}
}

func (p *Parser) expectKeyword(word string) (*ast.Keyword, error) {
	tok := p.cur()
	if tok.Kind != token.Ident || tok.Upper() != word {
		return nil, fromUnexpectedToken(tok, word)
	}
	return p.keyword(), nil
}

func (p *Parser) expectPunct(kind token.Kind, desc string) (*ast.Punct, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return nil, fromUnexpectedToken(tok, desc)
	}
	return &ast.Punct{Leaf: p.leaf()}, nil
}

// maybeConsumeKeyword consumes and returns a keyword leaf if the
// current token's upper-cased text equals word; otherwise it does not
// advance and returns (nil, false).
func (p *Parser) maybeConsumeKeyword(word string) (*ast.Keyword, bool) {
	tok := p.cur()
	if tok.Kind == token.Ident && tok.Upper() == word {
		return p.keyword(), true
	}
	return nil, false
}

// maybeConsumeOneOf tries each candidate keyword in order.
func (p *Parser) maybeConsumeOneOf(words ...string) (*ast.Keyword, bool) {
	tok := p.cur()
	if tok.Kind != token.Ident {
		return nil, false
	}
	for _, w := range words {
		if tok.Upper() == w {
			return p.keyword(), true
		}
	}
	return nil, false
}

// maybeConsumeKeywordSequence consumes a run of keywords only if every
// one of them matches in order; otherwise the cursor is left
// unmoved.
func (p *Parser) maybeConsumeKeywordSequence(words ...string) ([]*ast.Keyword, bool) {
	mark := p.it.Mark()
	out := make([]*ast.Keyword, 0, len(words))
	for _, w := range words {
		kw, ok := p.maybeConsumeKeyword(w)
		if !ok {
			p.it.Reset(mark)
			return nil, false
		}
		out = append(out, kw)
	}
	return out, true
}

func (p *Parser) isKeyword(word string) bool {
	tok := p.cur()
	return tok.Kind == token.Ident && tok.Upper() == word
}

func (p *Parser) isPunct(kind token.Kind) bool {
	return p.cur().Kind == kind
}

// maybeConsumePlaceholder consumes a bare placeholder token and wraps
// it as an ast.PlaceholderClause, for callers that check for one
// before parsing an optional clause (spec §4.4).
func (p *Parser) maybeConsumePlaceholder() (*ast.PlaceholderClause, bool) {
	if p.cur().Kind != token.Param {
		return nil, false
	}
	return &ast.PlaceholderClause{Tok: &ast.Placeholder{Leaf: p.leaf()}}, true
}

// parseCommaSeparated parses one or more items via inner, consuming a
// comma between elements and recording whether each element had a
// trailing comma.
func parseCommaSeparated[T ast.Node](p *Parser, inner func() (T, error)) ([]ast.WithTrailingComma[T], error) {
	var out []ast.WithTrailingComma[T]
	for {
		item, err := inner()
		if err != nil {
			return nil, err
		}
		entry := ast.WithTrailingComma[T]{Item: item}
		if p.isPunct(token.Comma) {
			comma := &ast.Punct{Leaf: p.leaf()}
			entry.Comma = comma
			out = append(out, entry)
			continue
		}
		out = append(out, entry)
		return out, nil
	}
}

func (p *Parser) parseIdent() (*ast.Ident, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.Ident:
		// A bare word reserved under this dialect is a keyword, not an
		// identifier, even though the lexer/mangle pipeline never mints
		// a separate Kind for it (spec §4.3/§4.4).
		if token.IsReservedIn(p.dialect, tok.Text) {
			return nil, fromUnexpectedToken(tok, "identifier")
		}
		return &ast.Ident{Leaf: p.leaf()}, nil
	case token.QuotedIdent:
		return &ast.Ident{Leaf: p.leaf()}, nil
	case token.String:
		// A string literal whose quote matches the dialect's
		// identifier quote is accepted as an identifier (spec §4.4).
		if len(tok.Text) > 0 && tok.Text[0] == p.dialect.IdentifierQuote() {
			return &ast.Ident{Leaf: p.leaf()}, nil
		}
	}
	return nil, fromUnexpectedToken(tok, "identifier")
}

func (p *Parser) parseName() (*ast.Name, error) {
	first, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	name := &ast.Name{Parts: []*ast.Ident{first}}
	for p.isPunct(token.Dot) {
		dot := &ast.Punct{Leaf: p.leaf()}
		part, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		name.Dots = append(name.Dots, dot)
		name.Parts = append(name.Parts, part)
	}
	return name, nil
}

// ParseStatement dispatches on the first non-comment token's
// upper-cased text (spec §4.4's statement dispatch table) and
// requires the stream to reach eof immediately afterward.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	leading := p.takeLeadingComments()

	if p.isPunct(token.LParen) {
		return p.finishStatement(p.parseParenOrUnion(leading))
	}

	tok := p.cur()
	if tok.Kind != token.Ident {
		return nil, fromUnexpectedToken(tok, "statement")
	}

	switch tok.Upper() {
	case "SELECT", "WITH":
		return p.finishStatement(p.parseSelectOrUnion(leading))
	case "INSERT":
		return p.finishStatement(p.parseInsert(leading))
	case "REPLACE":
		return p.finishStatement(p.parseReplace(leading))
	case "UPDATE":
		return p.finishStatement(p.parseUpdate(leading))
	case "DELETE":
		return p.finishStatement(p.parseDelete(leading))
	case "START", "BEGIN", "COMMIT", "ROLLBACK":
		return p.finishStatement(p.parseTransaction(leading))
	case "SET":
		return p.finishStatement(p.parseSet(leading))
	case "SHOW", "DESCRIBE", "DESC":
		return p.finishStatement(p.parseShow(leading))
	case "FLUSH":
		return p.finishStatement(p.parseFlush(leading))
	case "RENAME":
		return p.finishStatement(p.parseRenameTable(leading))
	case "TRUNCATE":
		return p.finishStatement(p.parseTruncate(leading))
	case "DROP":
		return p.finishStatement(p.parseDrop(leading))
	case "CREATE":
		return p.finishStatement(p.parseCreate(leading))
	case "ALTER":
		return p.finishStatement(p.parseAlterTable(leading))
	case "EXPLAIN":
		return p.finishStatement(p.parseExplain(leading))
	default:
		return nil, fromUnexpectedToken(tok, "statement")
	}
}

func (p *Parser) finishStatement(stmt ast.Statement, err error) (ast.Statement, error) {
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, fromUnexpectedToken(p.cur(), "end of statement")
	}
	return stmt, nil
}

// takeLeadingComments detaches any comment tokens sitting before the
// first real token of a statement.
func (p *Parser) takeLeadingComments() []token.Item {
	var leading []token.Item
	for p.cur().Kind == token.Comment {
		leading = append(leading, p.advance())
	}
	return leading
}

func (p *Parser) requireFeature(feature dialect.Feature, name string, at token.Item) error {
	if !p.dialect.Supports(feature) {
		return fromDisallowed(at, p.dialect, name)
	}
	return nil
}
