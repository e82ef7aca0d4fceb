package location

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRoundTrip(t *testing.T) {
	sql := "SELECT 1"
	loc := New(sql, 0, 5)
	assert.Equal(t, "SELECT", loc.Text())
}

func TestUnionSpansBoth(t *testing.T) {
	sql := "SELECT a, b FROM t"
	a := New(sql, 7, 7)
	b := New(sql, 10, 10)
	u := Union(a, b)
	require.Equal(t, 7, u.Start)
	require.Equal(t, 10, u.End)
}

func TestExcerptUnderlinesRange(t *testing.T) {
	sql := "SELECT * FROM\nwhere x = 1"
	loc := New(sql, 14, 18)
	excerpt := loc.Excerpt()
	assert.Contains(t, excerpt, "where x = 1")
	assert.Contains(t, excerpt, "^^^^^")
}

func TestExcerptUnderlinesSpanAcrossLines(t *testing.T) {
	sql := "SELECT 'abc\ndef' FROM t"
	start := strings.Index(sql, "'abc")
	end := strings.Index(sql, "def'") + len("def'") - 1
	loc := New(sql, start, end)
	excerpt := loc.Excerpt()
	lines := strings.Split(excerpt, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "SELECT 'abc", lines[0])
	assert.Equal(t, "       ^^^^", lines[1])
	assert.Equal(t, "def' FROM t", lines[2])
	assert.Equal(t, "^^^^", lines[3])
}

func TestLineColCountsNewlines(t *testing.T) {
	sql := "a\nb\nc"
	line, col := New(sql, 0, 0).LineCol(4)
	assert.Equal(t, 3, line)
	assert.Equal(t, 1, col)
}
