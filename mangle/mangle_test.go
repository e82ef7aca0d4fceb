package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/lexer"
)

func mangled(t *testing.T, sql string) []string {
	t.Helper()
	items, err := lexer.Lex(sql)
	require.NoError(t, err)
	out := Mangle(Distinguish(items, dialect.Default), dialect.Default)
	texts := make([]string, len(out))
	for i, it := range out {
		texts[i] = it.Text
	}
	return texts
}

func TestMangleFoldsNotIn(t *testing.T) {
	texts := mangled(t, "x NOT IN (1)")
	assert.Contains(t, texts, "NOT IN")
}

func TestMangleFoldsIsNot(t *testing.T) {
	texts := mangled(t, "x IS NOT NULL")
	assert.Contains(t, texts, "IS NOT")
}

func TestMangleDoesNotFoldUnrelatedPairs(t *testing.T) {
	texts := mangled(t, "SELECT NOT x")
	assert.NotContains(t, texts, "SELECT NOT")
}

func TestMangleAttachesTrailingComment(t *testing.T) {
	items, err := lexer.Lex("SELECT x -- c\nFROM y")
	require.NoError(t, err)
	out := Mangle(Distinguish(items, dialect.Default), dialect.Default)

	var sawComment bool
	for _, it := range out {
		if len(it.Trailing) > 0 {
			sawComment = true
			assert.Equal(t, "-- c\n", it.Trailing[0].Text)
		}
	}
	assert.True(t, sawComment)
}

func TestMangleKeepsTrailingCommentAcrossTwoWordOperatorFold(t *testing.T) {
	items, err := lexer.Lex("x IS /* note */ NOT NULL")
	require.NoError(t, err)
	out := Mangle(Distinguish(items, dialect.Default), dialect.Default)

	var foundFold bool
	for _, it := range out {
		if it.Text == "IS NOT" {
			foundFold = true
			require.NotEmpty(t, it.Trailing, "comment attached before the fold must survive the merge")
			assert.Equal(t, "/* note */", it.Trailing[0].Text)
		}
	}
	require.True(t, foundFold)
}
