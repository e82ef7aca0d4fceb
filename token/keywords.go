package token

import "github.com/relaysql/sqltree/dialect"

// IsReservedIn reports whether text is a reserved keyword under d,
// case-insensitively. It keeps the teacher's fast-path-before-
// allocating shape (check for already-uppercase input before paying
// for a case fold) but defers the actual reserved-word table to
// dialect, since sqltree's keyword set is dialect-dependent rather
// than fixed at compile time.
func IsReservedIn(d dialect.Dialect, text string) bool {
	if isUpperASCII(text) {
		return d.IsKeyword(text)
	}
	return d.IsKeyword(toUpper(text))
}

func isUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			return false
		}
	}
	return true
}
