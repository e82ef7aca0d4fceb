package dialect

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/mysql_base_keywords.yaml
var mysqlBaseYAML []byte

//go:embed data/mysql8_new_keywords.yaml
var mysql8NewYAML []byte

//go:embed data/presto_keywords.yaml
var prestoYAML []byte

//go:embed data/redshift_keywords.yaml
var redshiftYAML []byte

type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

func loadKeywordSet(data []byte) map[string]struct{} {
	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		// The embedded files are generated at build time from a known
		// source; a parse failure here means the module itself is
		// broken, not a runtime condition callers can act on.
		panic("dialect: invalid embedded keyword data: " + err.Error())
	}
	set := make(map[string]struct{}, len(kf.Keywords))
	for _, kw := range kf.Keywords {
		set[kw] = struct{}{}
	}
	return set
}

var (
	mysqlBaseKeywords     = sync.OnceValue(func() map[string]struct{} { return loadKeywordSet(mysqlBaseYAML) })
	mysql8NewKeywords     = sync.OnceValue(func() map[string]struct{} { return loadKeywordSet(mysql8NewYAML) })
	prestoKeywordSet      = sync.OnceValue(func() map[string]struct{} { return loadKeywordSet(prestoYAML) })
	redshiftKeywordSet    = sync.OnceValue(func() map[string]struct{} { return loadKeywordSet(redshiftYAML) })
	mysqlKeywordsCache    sync.Map // Version.String() -> map[string]struct{}
)

// computeMySQLKeywords merges the base MySQL reserved set with the 8.0
// delta when version indicates 8.0 or later (or is unspecified, which
// means "latest").
func computeMySQLKeywords(version Version) map[string]struct{} {
	key := version.String()
	if cached, ok := mysqlKeywordsCache.Load(key); ok {
		return cached.(map[string]struct{})
	}

	base := mysqlBaseKeywords()
	merged := make(map[string]struct{}, len(base))
	for kw := range base {
		merged[kw] = struct{}{}
	}
	if VersionIsIn(version, Version{8}, nil) {
		for kw := range mysql8NewKeywords() {
			merged[kw] = struct{}{}
		}
	}
	mysqlKeywordsCache.Store(key, merged)
	return merged
}

// Keywords returns the set of reserved words for this dialect. The
// underlying tables are parsed from embedded YAML once per process via
// sync.OnceValue, then merged per MySQL version and cached, matching
// the "compute once, race-safe on identical content" requirement for
// the keyword-set cache.
func (d Dialect) Keywords() map[string]struct{} {
	switch d.Vendor {
	case MySQL:
		return computeMySQLKeywords(d.Version)
	case Presto:
		return prestoKeywordSet()
	case Redshift:
		return redshiftKeywordSet()
	default:
		panic("dialect: unknown vendor")
	}
}

// IsKeyword reports whether word (already upper-cased by the caller)
// is reserved in this dialect.
func (d Dialect) IsKeyword(upperWord string) bool {
	_, ok := d.Keywords()[upperWord]
	return ok
}
