package fuzz

import (
	"testing"

	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/format"
	"github.com/relaysql/sqltree/parser"
)

// TestFuzzRegressions documents specific edge cases discovered by
// fuzzing. When fuzzing finds a new crash, add a case here with a note
// explaining what the input exercises.
func TestFuzzRegressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		note  string
	}{
		{
			name:  "function with IN keyword inside",
			input: "SELECT A(*IN",
			note:  "parser must not panic on an incomplete function call abutting a keyword",
		},
		{
			name:  "function with IS keyword inside",
			input: "SELECT A(*IS",
			note:  "parser must not panic on an incomplete function call abutting a keyword",
		},
		{
			name:  "function with BETWEEN keyword inside",
			input: "SELECT A(*BETWEEN",
			note:  "parser must not panic on an incomplete function call abutting a keyword",
		},
		{
			name:  "function with LIKE keyword inside",
			input: "SELECT A(*LIKE",
			note:  "parser must not panic on an incomplete function call abutting a keyword",
		},
		{
			name:  "double unary minus",
			input: "SELECT - -0",
			note:  "multiple unary operators",
		},
		{
			name:  "double unary minus no space",
			input: "SELECT --0",
			note:  "could lex as a line comment or as double minus",
		},
		{
			name:  "empty input",
			input: "",
			note:  "empty input must not panic",
		},
		{
			name:  "only whitespace",
			input: "   \t\n\r  ",
			note:  "whitespace-only input must not panic",
		},
		{
			name:  "only semicolons",
			input: ";;;",
			note:  "statement-terminator-only input must not panic",
		},
		{
			name:  "unclosed string",
			input: "SELECT 'unclosed",
			note:  "unterminated string literal must error, not panic",
		},
		{
			name:  "unclosed parenthesis",
			input: "SELECT (1 + 2",
			note:  "missing closing paren must error, not panic",
		},
		{
			name:  "too many close parens",
			input: "SELECT (1))",
			note:  "extra closing paren must error, not panic",
		},
		{
			name:  "null byte",
			input: "SELECT\x00*",
			note:  "a null byte in the input must not panic the lexer",
		},
		{
			name:  "deeply nested parens",
			input: "SELECT ((((((((((1))))))))))",
			note:  "deep expression nesting must not blow the stack in a small test run",
		},
		{
			name:  "very long identifier",
			input: "SELECT aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa FROM t",
			note:  "a 100-character identifier must lex and parse normally",
		},
		{
			name:  "insert with incomplete SET",
			input: "INSERT INTO a SET",
			note:  "SET is not valid INSERT syntax and must error cleanly",
		},
		{
			name:  "trailing operator",
			input: "SELECT * % 0",
			note:  "a dangling binary operator must error, not panic",
		},
		{
			name:  "qualified name followed by unexpected paren",
			input: "SELECT * FROM a.(b)",
			note:  "a dotted name followed by a parenthesized expression must not panic",
		},
		{
			name:  "where placeholder then trailing token",
			input: "SELECT * FROM t ? GROUP BY a",
			note:  "a placeholder consumed in the WHERE slot leaves GROUP BY to parse normally",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("parser panicked: %v\ninput: %q\nnote: %s", r, tt.input, tt.note)
				}
			}()

			stmt, err := parser.Parse(tt.input, dialect.Default)
			if err != nil {
				return
			}
			if stmt == nil {
				return
			}

			formatted := format.Format(stmt, dialect.Default)
			if formatted == "" {
				t.Logf("warning: valid parse but empty format for: %q", tt.input)
			}
		})
	}
}

// TestFuzzRoundTrip checks that valid SQL round-trips through
// parse/format/parse/format without drifting. Add cases here when
// fuzzing finds a formatting instability.
func TestFuzzRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		d     dialect.Dialect
	}{
		{"simple select", "SELECT * FROM t", dialect.Default},
		{"select with alias", "SELECT a AS b FROM t", dialect.Default},
		{"join", "SELECT * FROM t1 JOIN t2 ON t1.id = t2.id", dialect.Default},
		{"subquery", "SELECT * FROM (SELECT 1) AS sub", dialect.Default},
		{"cte", "WITH cte AS (SELECT 1) SELECT * FROM cte", dialect.Default},
		{"union", "SELECT 1 UNION SELECT 2", dialect.Default},
		{"parenthesized union", "(SELECT 1) UNION (SELECT 2)", dialect.Default},
		{"case expression", "SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t", dialect.Default},
		{"multi-level identifier", "SELECT a.b.c.d FROM a.b.c", dialect.Default},
		{"function with keyword-like name", "SELECT ANY(x) FROM t", dialect.Default},
		{"where placeholder", "SELECT * FROM t ?", dialect.Default},
		{"limit comma offset", "SELECT * FROM t LIMIT 5, 10", dialect.Dialect{Vendor: dialect.MySQL}},
		{"limit all", "SELECT * FROM t LIMIT ALL", dialect.Dialect{Vendor: dialect.Redshift}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parser.Parse(tt.input, tt.d)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			formatted1 := format.Format(stmt, tt.d)
			if formatted1 == "" {
				t.Fatal("format returned empty string")
			}

			stmt2, err := parser.Parse(formatted1, tt.d)
			if err != nil {
				t.Fatalf("re-parse failed: %v\nformatted: %s", err, formatted1)
			}

			formatted2 := format.Format(stmt2, tt.d)
			if formatted1 != formatted2 {
				t.Errorf("round-trip mismatch:\ninput:     %s\nformatted: %s\nre-format: %s",
					tt.input, formatted1, formatted2)
			}
		})
	}
}
