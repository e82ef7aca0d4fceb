package fuzz

import (
	"testing"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/format"
	"github.com/relaysql/sqltree/lexer"
	"github.com/relaysql/sqltree/parser"
	"github.com/relaysql/sqltree/token"
	"github.com/relaysql/sqltree/visitor"
)

// FuzzParse tests that the parser doesn't panic on arbitrary input and
// that a successful parse round-trips through format stably.
func FuzzParse(f *testing.F) {
	seeds := []string{
		// Basic SELECT
		"SELECT * FROM users",
		"SELECT id, name FROM users WHERE status = 'active'",
		"SELECT a.id, b.name FROM a JOIN b ON a.id = b.a_id",
		"SELECT DISTINCT a, b FROM t",
		"SELECT ALL * FROM t",

		// DML
		"INSERT INTO users (id, name) VALUES (1, 'test')",
		"INSERT INTO t (a, b) VALUES (1, 2), (3, 4), (5, 6)",
		"UPDATE users SET name = 'new' WHERE id = 1",
		"UPDATE t SET a = 1, b = 2, c = 3 WHERE x > 0",
		"DELETE FROM users WHERE id = 1",
		"DELETE FROM t USING t2 WHERE t.id = t2.id",
		"REPLACE INTO t (a, b) VALUES (1, 2)",
		"INSERT IGNORE INTO t (a) VALUES (1)",
		"INSERT INTO t (a) VALUES (1) ON DUPLICATE KEY UPDATE a = 2",

		// Subqueries
		"SELECT * FROM users WHERE id IN (SELECT user_id FROM orders)",
		"SELECT * FROM (SELECT 1 FROM t) AS sub",
		"SELECT (SELECT MAX(id) FROM t2) FROM t",
		"SELECT * FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",

		// CTE
		"WITH cte AS (SELECT 1) SELECT * FROM cte",
		"WITH cte1 AS (SELECT 1), cte2 AS (SELECT 2) SELECT * FROM cte1, cte2",

		// CASE expressions
		"SELECT CASE WHEN x = 1 THEN 'a' ELSE 'b' END FROM t",
		"SELECT CASE x WHEN 1 THEN 'one' WHEN 2 THEN 'two' END FROM t",

		// DDL
		"CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(255))",
		"CREATE TABLE t (id INT NOT NULL, name TEXT DEFAULT 'x', UNIQUE(id))",
		"CREATE TABLE IF NOT EXISTS t (id INT)",
		"ALTER TABLE users ADD COLUMN email VARCHAR(255)",
		"ALTER TABLE t DROP COLUMN a",
		"DROP TABLE IF EXISTS users",
		"TRUNCATE TABLE t",
		"RENAME TABLE a TO b",

		// Indexes
		"CREATE INDEX idx ON t (a, b)",
		"CREATE UNIQUE INDEX idx ON t (a)",
		"DROP INDEX idx ON t",

		// Clauses
		"SELECT * FROM users LIMIT 10 OFFSET 20",
		"SELECT * FROM t LIMIT 10, 20",
		"SELECT * FROM t ORDER BY a ASC, b DESC",
		"SELECT * FROM t GROUP BY a HAVING COUNT(*) > 1",
		"SELECT * FROM t GROUP BY a, b, c",

		// Placeholder clause slots
		"SELECT * FROM t ?",
		"SELECT * FROM t WHERE a = 1 GROUP BY ?",
		"SELECT * FROM t WHERE a = 1 GROUP BY a HAVING ?",
		"UPDATE t SET a = 1 ?",
		"DELETE FROM t ?",

		// Functions
		"SELECT COALESCE(a, b, c) FROM t",
		"SELECT CAST(x AS INT) FROM t",

		// Operators
		"SELECT * FROM t WHERE a BETWEEN 1 AND 10",
		"SELECT * FROM t WHERE a NOT BETWEEN 1 AND 10",
		"SELECT * FROM t WHERE name LIKE '%test%'",
		"SELECT * FROM t WHERE name LIKE '%x%' ESCAPE '#'",
		"SELECT * FROM t WHERE a IN (1, 2, 3)",
		"SELECT * FROM t WHERE a NOT IN (1, 2, 3)",
		"SELECT * FROM t WHERE a IS NULL",
		"SELECT * FROM t WHERE a IS NOT NULL",
		"SELECT * FROM t WHERE a <=> b",

		// Arithmetic and boolean
		"SELECT 1 + 2 * 3 - 4 / 5",
		"SELECT a % b FROM t",
		"SELECT NOT a AND b OR c FROM t",
		"SELECT -1, +2, ~3 FROM t",

		// JOINs
		"SELECT * FROM t1 NATURAL JOIN t2",
		"SELECT * FROM t1 LEFT OUTER JOIN t2 ON t1.id = t2.id",
		"SELECT * FROM t1 RIGHT JOIN t2 ON a = b",
		"SELECT * FROM t1 CROSS JOIN t2",
		"SELECT * FROM t1 JOIN t2 ON a = b JOIN t3 ON c = d",
		"SELECT * FROM t1, t2, t3",

		// Set operations
		"SELECT 1 UNION SELECT 2",
		"SELECT 1 UNION ALL SELECT 2",
		"(SELECT 1) UNION (SELECT 2)",
		"SELECT 1 UNION SELECT 2 UNION ALL SELECT 3",

		// Locking (MySQL/Redshift)
		"SELECT * FROM t FOR UPDATE",
		"SELECT * FROM t FOR SHARE",

		// Multi-level identifiers
		"SELECT * FROM schema.table",
		"SELECT schema.table.column FROM schema.table",
		"SELECT a.b.c.d.e FROM a.b.c.d",

		// Qualified stars
		"SELECT t.* FROM t",
		"SELECT a.b.* FROM a.b",

		// Comments
		"SELECT /* comment */ * FROM t",
		"SELECT * FROM t -- line comment",
		"SELECT /* multi\nline\ncomment */ 1",

		// Literals
		"SELECT 1e10, 1.5e-3, .5 FROM t",
		"SELECT 0x1A FROM t",
		"SELECT TRUE, FALSE, NULL FROM t",
		"SELECT 'string', 'with''escape' FROM t",
		"SELECT `backtick` FROM `table`",

		// Edge cases
		"",
		" ",
		"SELECT 1",
		"(SELECT 1)",
		"((SELECT 1))",
		"SELECT ((a + b) * (c - d)) FROM t",

		// Misc
		"EXPLAIN SELECT * FROM t",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked on input: %q\npanic: %v", sql, r)
			}
		}()

		stmt, err := parser.Parse(sql, dialect.Default)
		if err != nil {
			return
		}
		if stmt == nil {
			return
		}

		formatted := format.Format(stmt, dialect.Default)
		if formatted == "" {
			t.Errorf("formatted output is empty for valid parse of: %q", sql)
			return
		}

		stmt2, err := parser.Parse(formatted, dialect.Default)
		if err != nil {
			t.Errorf("re-parse failed:\noriginal:  %q\nformatted: %q\nerror: %v", sql, formatted, err)
			return
		}
		if stmt2 == nil {
			t.Errorf("re-parse returned nil for: %q", formatted)
			return
		}

		formatted2 := format.Format(stmt2, dialect.Default)
		if formatted != formatted2 {
			t.Errorf("round-trip mismatch:\noriginal: %q\nfirst:    %q\nsecond:   %q", sql, formatted, formatted2)
		}
	})
}

// FuzzLexer tests that the lexer doesn't panic on arbitrary input and
// always returns a token stream terminated by a single EOF.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"SELECT * FROM users",
		"INSERT INTO t VALUES (1)",
		"UPDATE t SET a = 1",
		"DELETE FROM t",

		"'string with ''escapes'''",
		"'multi\nline\nstring'",
		"`backtick quoted`",
		"`with ``escape```",

		"-- line comment\nSELECT 1",
		"/* block comment */ SELECT 1",
		"# mysql line comment\nSELECT 1",

		"1.5e-10",
		"1.5E+10",
		".5",
		"5.",
		"0x1A2B",
		"123456789",

		":named_param",
		"@variable",
		"@@global",
		"?",

		"a <> b",
		"a != b",
		"a <= b",
		"a >= b",
		"a <=> b",
		"a << b",
		"a >> b",
		"a || b",

		"",
		"\x00\x01\x02",
		"SELECT\t\n\r *",
		"идентификатор",
		"表名",

		"::::",
		";;;;",
		"((()))",
		"/**/",
		"--\n",
		"''",
		"``",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("lexer panicked on input: %q\npanic: %v", input, r)
			}
		}()

		items, err := lexer.Lex(input)
		if err != nil {
			return
		}
		if len(items) == 0 {
			t.Errorf("lexer returned no tokens for: %q", input)
			return
		}
		last := items[len(items)-1]
		if last.Kind != token.EOF {
			t.Errorf("token stream for %q did not end in EOF, got %v", input, last.Kind)
		}
	})
}

// FuzzWalk tests walking the CST for parseable input.
func FuzzWalk(f *testing.F) {
	seeds := []string{
		"SELECT a, b FROM t WHERE c = 1",
		"SELECT * FROM a JOIN b ON a.id = b.id",
		"SELECT (SELECT 1) FROM t",
		"SELECT CASE WHEN a THEN b ELSE c END FROM t",
		"SELECT * FROM t ?",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, sql string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("walk panicked on input: %q\npanic: %v", sql, r)
			}
		}()

		stmt, err := parser.Parse(sql, dialect.Default)
		if err != nil || stmt == nil {
			return
		}

		count := 0
		visitor.Inspect(stmt, func(n ast.Node) bool {
			count++
			return true
		})

		visitor.Inspect(stmt, func(n ast.Node) bool {
			return count < 5
		})
	})
}
