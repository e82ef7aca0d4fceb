// Package dialect models the SQL vendors this module understands and
// the feature/keyword differences between them.
package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

// Vendor identifies a SQL dialect family.
type Vendor int

const (
	MySQL Vendor = iota + 1
	Presto
	Redshift
)

func (v Vendor) String() string {
	switch v {
	case MySQL:
		return "mysql"
	case Presto:
		return "presto"
	case Redshift:
		return "redshift"
	default:
		return fmt.Sprintf("Vendor(%d)", int(v))
	}
}

// Version is a dot-separated version tuple, e.g. (8,) or (5,7). A nil
// Version means "the most recent version" per original_source's
// convention: a feature with no end_version matches a nil Version.
type Version []int

// ParseVersion parses a "8.0.1"-style string into a Version.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("dialect: invalid version component %q: %w", p, err)
		}
		v[i] = n
	}
	return v, nil
}

func (v Version) String() string {
	if v == nil {
		return ""
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// compare returns -1, 0, or 1 comparing v to other component-wise,
// treating a missing trailing component as 0 (so (8) == (8,0)).
func (v Version) compare(other Version) int {
	n := len(v)
	if len(other) > n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		var a, b int
		if i < len(v) {
			a = v[i]
		}
		if i < len(other) {
			b = other[i]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// VersionIsIn reports whether version falls within [start, end) where
// either bound may be nil (unbounded). A nil version is treated as the
// latest release, matching only ranges with no end bound, mirroring
// original_source's version_is_in.
func VersionIsIn(version Version, start, end Version) bool {
	if version == nil {
		return end == nil
	}
	if start != nil && version.compare(start) < 0 {
		return false
	}
	if end != nil && version.compare(end) >= 0 {
		return false
	}
	return true
}

// Feature is a capability that may or may not be supported by a given
// dialect, optionally gated by version.
type Feature int

const (
	RequireIntoForIgnore Feature = iota + 1
	SupportValueForInsert
	InsertIgnore
	DefaultValuesOnInsert
	InsertSelectRequireParens
	Replace
	WithClause
	RequireFromForDelete
	UpdateLimit
	DeleteUsing
	CommaOffset
	LimitAll
	InsertOnDuplicateKeyUpdate
	StraightJoin
	SQLCacheModifier
	LateralJoin
	QualifyClause
)

type versionRange struct {
	start, end Version
}

type featureRule struct {
	perVendor      map[Vendor]bool
	perVendorRange map[Vendor]versionRange
}

var featureTable = map[Feature]featureRule{
	RequireIntoForIgnore: {
		perVendor: map[Vendor]bool{MySQL: false, Redshift: true},
	},
	SupportValueForInsert: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	InsertIgnore: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	DefaultValuesOnInsert: {
		perVendor: map[Vendor]bool{MySQL: false, Redshift: true},
	},
	InsertSelectRequireParens: {
		perVendor: map[Vendor]bool{MySQL: false, Redshift: true},
	},
	Replace: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	WithClause: {
		perVendor: map[Vendor]bool{MySQL: true, Presto: true, Redshift: true},
	},
	RequireFromForDelete: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	UpdateLimit: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	DeleteUsing: {
		perVendor: map[Vendor]bool{MySQL: false, Redshift: true},
	},
	CommaOffset: {
		perVendor: map[Vendor]bool{MySQL: true, Redshift: false},
	},
	LimitAll: {
		perVendor: map[Vendor]bool{MySQL: false, Redshift: true},
	},
	InsertOnDuplicateKeyUpdate: {
		perVendor: map[Vendor]bool{MySQL: true, Presto: false, Redshift: false},
	},
	StraightJoin: {
		perVendor: map[Vendor]bool{MySQL: true, Presto: false, Redshift: false},
	},
	SQLCacheModifier: {
		perVendor:      map[Vendor]bool{Presto: false, Redshift: false},
		perVendorRange: map[Vendor]versionRange{MySQL: {start: nil, end: Version{8}}},
	},
	LateralJoin: {
		perVendor: map[Vendor]bool{MySQL: false, Presto: true, Redshift: true},
	},
	QualifyClause: {
		perVendor: map[Vendor]bool{MySQL: false, Presto: false, Redshift: false},
	},
}

var identifierQuote = map[Vendor]byte{
	MySQL:    '`',
	Presto:   '"',
	Redshift: '"',
}

// Dialect is a specific vendor and optional version.
type Dialect struct {
	Vendor Vendor
	// Version is nil for "most recent version".
	Version Version
	// TrinoExtensions marks a Presto dialect as Trino's fork. Keywords
	// and Supports do not consult it, so a Trino dialect has the same
	// reserved words and features as Presto. See SPEC_FULL.md Open
	// Question (d).
	TrinoExtensions bool
}

// Default is the dialect used when none is specified: MySQL, latest.
var Default = Dialect{Vendor: MySQL}

func (d Dialect) String() string {
	name := d.Vendor.String()
	if d.Version != nil {
		name += " " + d.Version.String()
	}
	return name
}

// Supports reports whether d supports the given feature. Every Feature
// constant must be handled by featureTable; an unhandled Feature is a
// programming error in this package, not a user-facing condition.
func (d Dialect) Supports(f Feature) bool {
	rule, ok := featureTable[f]
	if !ok {
		panic(fmt.Sprintf("dialect: no rule registered for feature %d", f))
	}
	if rng, ok := rule.perVendorRange[d.Vendor]; ok {
		return VersionIsIn(d.Version, rng.start, rng.end)
	}
	if b, ok := rule.perVendor[d.Vendor]; ok {
		return b
	}
	// Vendors not named in the table default to supported, matching
	// original_source's dict.get(vendor, True).
	return true
}

// IdentifierQuote returns the quote character this dialect uses for
// delimited identifiers: backtick for MySQL, double-quote otherwise.
func (d Dialect) IdentifierQuote() byte {
	return identifierQuote[d.Vendor]
}

// SelectModifierGroup is one set of mutually-exclusive SELECT modifier
// keywords (e.g. ALL vs DISTINCT), in the order the dialect allows
// them to appear.
type SelectModifierGroup []string

// SelectModifiers returns this dialect's ordered SELECT modifier
// groups, per original_source's get_select_modifiers.
func (d Dialect) SelectModifiers() []SelectModifierGroup {
	switch d.Vendor {
	case MySQL:
		cacheGroup := SelectModifierGroup{"SQL_CACHE", "SQL_NO_CACHE"}
		if VersionIsIn(d.Version, Version{8}, nil) {
			cacheGroup = SelectModifierGroup{"SQL_NO_CACHE"}
		}
		return []SelectModifierGroup{
			{"ALL", "DISTINCT", "DISTINCTROW"},
			{"HIGH_PRIORITY"},
			{"STRAIGHT_JOIN"},
			{"SQL_SMALL_RESULT"},
			{"SQL_BIG_RESULT"},
			{"SQL_BUFFER_RESULT"},
			cacheGroup,
			{"SQL_CALC_FOUND_ROWS"},
		}
	case Presto, Redshift:
		return []SelectModifierGroup{{"ALL", "DISTINCT"}}
	default:
		panic(fmt.Sprintf("dialect: no select modifiers for vendor %v", d.Vendor))
	}
}
