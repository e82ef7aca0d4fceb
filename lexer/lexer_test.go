package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/token"
)

func kinds(items []token.Item) []token.Kind {
	out := make([]token.Kind, len(items))
	for i, it := range items {
		out[i] = it.Kind
	}
	return out
}

func TestLexBasicSelect(t *testing.T) {
	items, err := Lex("SELECT * FROM users")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.Ident, token.Star, token.Ident, token.Ident, token.EOF}, kinds(items))
	assert.Equal(t, "SELECT", items[0].Text)
	assert.Equal(t, "*", items[1].Text)
}

func TestLexStringWithDoubledQuote(t *testing.T) {
	items, err := Lex(`SELECT 'it''s'`)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, token.String, items[1].Kind)
	assert.Equal(t, `'it''s'`, items[1].Text)
}

func TestLexDoubleQuotedStringHonorsBackslashEscape(t *testing.T) {
	items, err := Lex(`SELECT "a\"b" FROM t`)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), 2)
	assert.Equal(t, token.QuotedIdent, items[1].Kind)
	assert.Equal(t, `"a\"b"`, items[1].Text)
}

func TestLexBacktickIdentDoublesQuoteToEscape(t *testing.T) {
	items, err := Lex("SELECT `a``b` FROM t")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(items), 2)
	assert.Equal(t, token.QuotedIdent, items[1].Kind)
	assert.Equal(t, "`a``b`", items[1].Text)
}

func TestLexUnterminatedStringIsFatal(t *testing.T) {
	_, err := Lex("SELECT 'abc")
	require.Error(t, err)
	var tokErr *TokenizeError
	require.ErrorAs(t, err, &tokErr)
}

func TestLexUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, err := Lex("SELECT 1 /* oops")
	require.Error(t, err)
}

func TestLexLineCommentIncludesNewline(t *testing.T) {
	items, err := Lex("SELECT 1 -- hi\nFROM t")
	require.NoError(t, err)
	var comment token.Item
	for _, it := range items {
		if it.Kind == token.Comment {
			comment = it
		}
	}
	assert.Equal(t, "-- hi\n", comment.Text)
}

func TestLexTwoCharOperatorsPreferred(t *testing.T) {
	items, err := Lex("a <> b >= c")
	require.NoError(t, err)
	var ops []string
	for _, it := range items {
		if it.Kind == token.Op {
			ops = append(ops, it.Text)
		}
	}
	assert.Equal(t, []string{"<>", ">="}, ops)
}

func TestLexNumberForms(t *testing.T) {
	items, err := Lex("123 1.5 1e10 2E-3")
	require.NoError(t, err)
	var nums []string
	for _, it := range items {
		if it.Kind == token.Number {
			nums = append(nums, it.Text)
		}
	}
	assert.Equal(t, []string{"123", "1.5", "1e10", "2E-3"}, nums)
}

func TestLexTotalityReconstructsSource(t *testing.T) {
	sql := "SELECT a, b -- trailing\nFROM `t` WHERE x = 'y''z'"
	items, err := Lex(sql)
	require.NoError(t, err)

	var b strings.Builder
	prevEnd := -1
	for _, it := range items {
		if it.Kind == token.EOF {
			break
		}
		b.WriteString(sql[prevEnd+1 : it.Location.Start])
		b.WriteString(it.Text)
		prevEnd = it.Location.End
	}
	b.WriteString(sql[prevEnd+1:])
	assert.Equal(t, sql, b.String())
}

func TestLexUnexpectedCharacterIsFatal(t *testing.T) {
	_, err := Lex("SELECT $")
	require.Error(t, err)
}
