// Package lexer implements sqltree's lossless tokenizer: every byte of
// the input is accounted for by some token's text or the gap between
// two tokens, so the original source can always be reconstructed.
package lexer

import (
	"fmt"

	"github.com/relaysql/sqltree/location"
	"github.com/relaysql/sqltree/token"
)

// TokenizeError is a fatal lexical error: an unexpected character, an
// unterminated string, or an unterminated block comment.
type TokenizeError struct {
	Message  string
	Location location.Location
}

func (e *TokenizeError) Error() string {
	return e.Message + "\n" + e.Location.Excerpt()
}

// twoCharPuncts lists the punctuation sequences that are preferred
// over their one-character prefix when both are possible, per the
// tokenizer's punctuation rule.
var twoCharPuncts = map[string]bool{
	">=": true, "<=": true, "<>": true, "!=": true,
	">>": true, "<<": true, "&&": true, "||": true,
	"::": true,
}

var oneCharPuncts = map[byte]bool{
	'.': true, '(': true, ')': true, ',': true, '+': true, '*': true,
	'>': true, '<': true, '=': true, '!': true, '/': true, '-': true,
	'~': true, '&': true, '^': true, '|': true, '[': true, ']': true,
	';': true, ':': true,
}

// Lex tokenizes sql in full and returns the token stream, always
// ending with a single Kind==token.EOF item whose location points one
// byte past the end of the input. On the first lexical error it
// returns a *TokenizeError.
func Lex(sql string) ([]token.Item, error) {
	l := &lexer{sql: sql}
	var items []token.Item
	for {
		it, err := l.next()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		if it.Kind == token.EOF {
			return items, nil
		}
	}
}

type lexer struct {
	sql string
	pos int
}

func (l *lexer) errorAt(start int, format string, args ...any) error {
	return &TokenizeError{
		Message:  fmt.Sprintf(format, args...),
		Location: location.New(l.sql, start, start),
	}
}

func (l *lexer) next() (token.Item, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.sql) {
		return token.Item{Kind: token.EOF, Location: location.New(l.sql, start, start)}, nil
	}

	c := l.sql[l.pos]
	switch {
	case isLetter(c):
		return l.scanIdent(start), nil
	case c == '%':
		return l.scanPercent(start)
	case c == '?':
		l.pos++
		return token.Item{Kind: token.Param, Text: "?", Location: location.New(l.sql, start, start)}, nil
	case c == '{':
		return l.scanBraced(start)
	case c == '-' && l.peekAt(1) == '-':
		return l.scanLineComment(start, 2), nil
	case c == '#':
		return l.scanLineComment(start, 1), nil
	case c == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment(start)
	case isDigit(c):
		return l.scanNumber(start), nil
	case c == '`' || c == '\'' || c == '"':
		return l.scanString(start, c)
	case oneCharPuncts[c]:
		return l.scanPunct(start), nil
	default:
		return token.Item{}, l.errorAt(start, "unexpected character %q", c)
	}
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.sql) {
		return 0
	}
	return l.sql[l.pos+off]
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.sql) {
		switch l.sql[l.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			l.pos++
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnumUnderscore(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func (l *lexer) scanIdent(start int) token.Item {
	l.pos++
	for l.pos < len(l.sql) && isAlnumUnderscore(l.sql[l.pos]) {
		l.pos++
	}
	return token.Item{Kind: token.Ident, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}
}

// scanPercent handles rule 3: %<ident> placeholder, %(<ident>)<ident?>
// placeholder, %% punctuation, or bare % punctuation.
func (l *lexer) scanPercent(start int) (token.Item, error) {
	next := l.peekAt(1)
	switch {
	case isLetter(next):
		l.pos++ // consume %
		for l.pos < len(l.sql) && isAlnumUnderscore(l.sql[l.pos]) {
			l.pos++
		}
		return token.Item{Kind: token.Param, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}, nil
	case next == '(':
		l.pos += 2 // consume %(
		for l.pos < len(l.sql) && l.sql[l.pos] != ')' {
			l.pos++
		}
		if l.pos >= len(l.sql) {
			return token.Item{}, l.errorAt(start, "unterminated %%(...) placeholder")
		}
		l.pos++ // consume )
		for l.pos < len(l.sql) && isAlnumUnderscore(l.sql[l.pos]) {
			l.pos++
		}
		return token.Item{Kind: token.Param, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}, nil
	case next == '%':
		l.pos += 2
		return token.Item{Kind: token.Op, Text: "%%", Location: location.New(l.sql, start, l.pos-1)}, nil
	default:
		l.pos++
		return token.Item{Kind: token.Op, Text: "%", Location: location.New(l.sql, start, l.pos-1)}, nil
	}
}

func (l *lexer) scanBraced(start int) (token.Item, error) {
	l.pos++ // consume {
	for l.pos < len(l.sql) && l.sql[l.pos] != '}' {
		l.pos++
	}
	if l.pos >= len(l.sql) {
		return token.Item{}, l.errorAt(start, "unterminated { ... } placeholder")
	}
	l.pos++ // consume }
	return token.Item{Kind: token.Param, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}, nil
}

func (l *lexer) scanLineComment(start, markerLen int) token.Item {
	l.pos += markerLen
	for l.pos < len(l.sql) && l.sql[l.pos] != '\n' {
		l.pos++
	}
	if l.pos < len(l.sql) {
		l.pos++ // include the newline, per rule 6/8 ("to the next newline... inclusive")
	}
	return token.Item{Kind: token.Comment, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}
}

func (l *lexer) scanBlockComment(start int) (token.Item, error) {
	l.pos += 2 // consume /*
	for {
		if l.pos >= len(l.sql) {
			return token.Item{}, l.errorAt(start, "unterminated block comment")
		}
		if l.sql[l.pos] == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			return token.Item{Kind: token.Comment, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}, nil
		}
		l.pos++
	}
}

func (l *lexer) scanNumber(start int) token.Item {
	for l.pos < len(l.sql) && isDigit(l.sql[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.sql) && l.sql[l.pos] == '.' && l.pos+1 < len(l.sql) && isDigit(l.sql[l.pos+1]) {
		l.pos++
		for l.pos < len(l.sql) && isDigit(l.sql[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.sql) && (l.sql[l.pos] == 'e' || l.sql[l.pos] == 'E') {
		mark := l.pos
		p := l.pos + 1
		if p < len(l.sql) && l.sql[p] == '-' {
			p++
		}
		if p < len(l.sql) && isDigit(l.sql[p]) {
			l.pos = p
			for l.pos < len(l.sql) && isDigit(l.sql[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = mark
		}
	}
	return token.Item{Kind: token.Number, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}
}

// scanString consumes a quoted run for any of the three quote
// characters. The quote characters themselves remain part of Text so
// the parser can recover which quote style was used (spec §4.2 rule
// 10): `` ` `` for backtick-quoted identifiers, `'` for string
// literals, `"` for double-quoted identifiers (or string literals,
// dialect-dependent). `''` inside a `'`-string is a literal `'`.
func (l *lexer) scanString(start int, quote byte) (token.Item, error) {
	l.pos++ // consume opening quote
	for {
		if l.pos >= len(l.sql) {
			return token.Item{}, l.errorAt(start, "unterminated %c-quoted string", quote)
		}
		c := l.sql[l.pos]
		if c == '\\' && quote != '`' && l.pos+1 < len(l.sql) {
			l.pos += 2
			continue
		}
		if c == quote {
			if l.peekAt(1) == quote {
				l.pos += 2
				continue
			}
			l.pos++
			kind := token.String
			if quote != '\'' {
				kind = token.QuotedIdent
			}
			return token.Item{Kind: kind, Text: l.sql[start:l.pos], Location: location.New(l.sql, start, l.pos-1)}, nil
		}
		l.pos++
	}
}

func (l *lexer) scanPunct(start int) token.Item {
	three := l.sql[start:min(start+3, len(l.sql))]
	two := l.sql[start:min(start+2, len(l.sql))]
	switch {
	case len(three) == 3 && three == "<=>":
		l.pos += 3
	case len(two) == 2 && twoCharPuncts[two]:
		l.pos += 2
	default:
		l.pos++
	}
	text := l.sql[start:l.pos]
	kind := token.Op
	switch text {
	case "*":
		kind = token.Star
	case "(":
		kind = token.LParen
	case ")":
		kind = token.RParen
	case "[":
		kind = token.LBracket
	case "]":
		kind = token.RBracket
	case ",":
		kind = token.Comma
	case ";":
		kind = token.Semicolon
	case ".":
		kind = token.Dot
	}
	return token.Item{Kind: kind, Text: text, Location: location.New(l.sql, start, l.pos-1)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
