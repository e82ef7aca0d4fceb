package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionIsInUnboundedMatchesNilOnly(t *testing.T) {
	assert.True(t, VersionIsIn(nil, nil, nil))
	assert.False(t, VersionIsIn(nil, nil, Version{8}))
	assert.True(t, VersionIsIn(Version{8, 0}, Version{8}, nil))
	assert.False(t, VersionIsIn(Version{7, 9}, Version{8}, nil))
}

func TestSupportsMySQLVsRedshift(t *testing.T) {
	mysql := Dialect{Vendor: MySQL}
	redshift := Dialect{Vendor: Redshift}
	assert.True(t, mysql.Supports(InsertIgnore))
	assert.False(t, redshift.Supports(InsertIgnore))
	assert.False(t, mysql.Supports(DeleteUsing))
	assert.True(t, redshift.Supports(DeleteUsing))
}

func TestSQLCacheModifierVersionGated(t *testing.T) {
	old := Dialect{Vendor: MySQL, Version: Version{5, 7}}
	new8 := Dialect{Vendor: MySQL, Version: Version{8}}
	assert.True(t, old.Supports(SQLCacheModifier))
	assert.False(t, new8.Supports(SQLCacheModifier))
}

func TestIdentifierQuotePerVendor(t *testing.T) {
	assert.Equal(t, byte('`'), Dialect{Vendor: MySQL}.IdentifierQuote())
	assert.Equal(t, byte('"'), Dialect{Vendor: Presto}.IdentifierQuote())
	assert.Equal(t, byte('"'), Dialect{Vendor: Redshift}.IdentifierQuote())
}

func TestKeywordsContainsExpectedWords(t *testing.T) {
	mysql := Dialect{Vendor: MySQL}
	assert.True(t, mysql.IsKeyword("SELECT"))
	assert.True(t, mysql.IsKeyword("WHERE"))
	assert.False(t, mysql.IsKeyword("NOTAKEYWORD"))

	presto := Dialect{Vendor: Presto}
	assert.True(t, presto.IsKeyword("UNNEST"))

	redshift := Dialect{Vendor: Redshift}
	assert.True(t, redshift.IsKeyword("BACKUP"))
}

func TestMySQL8AddsNewKeywords(t *testing.T) {
	old := Dialect{Vendor: MySQL, Version: Version{5, 7}}
	new8 := Dialect{Vendor: MySQL, Version: Version{8}}
	oldSet := old.Keywords()
	newSet := new8.Keywords()
	require.GreaterOrEqual(t, len(newSet), len(oldSet))
}

func TestSelectModifiersOrderedGroups(t *testing.T) {
	mysql := Dialect{Vendor: MySQL}
	groups := mysql.SelectModifiers()
	require.NotEmpty(t, groups)
	assert.Equal(t, SelectModifierGroup{"ALL", "DISTINCT", "DISTINCTROW"}, groups[0])

	presto := Dialect{Vendor: Presto}
	assert.Equal(t, []SelectModifierGroup{{"ALL", "DISTINCT"}}, presto.SelectModifiers())
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("8.0.1")
	require.NoError(t, err)
	assert.Equal(t, Version{8, 0, 1}, v)

	_, err = ParseVersion("x.y")
	assert.Error(t, err)
}
