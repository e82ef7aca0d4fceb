// Package tools provides small analyses built on top of a parsed
// statement, the way original_source/sqltree/tools.py builds get_tables
// on top of its own parser and visitor.
package tools

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
	"github.com/relaysql/sqltree/parser"
	"github.com/relaysql/sqltree/visitor"
)

// tableCollector implements visitor.Visitor, recording the dotted name
// of every SimpleTableName it sees.
type tableCollector struct {
	tables []string
	log    logrus.FieldLogger
}

func (c *tableCollector) Visit(node ast.Node) visitor.Visitor {
	if t, ok := node.(*ast.SimpleTableName); ok {
		c.tables = append(c.tables, dottedName(t.Name, c.log))
	}
	return c
}

func dottedName(n *ast.Name, log logrus.FieldLogger) string {
	if len(n.Parts) == 0 {
		log.Warn("table name with no identifier parts")
		return ""
	}
	parts := make([]string, len(n.Parts))
	for i, id := range n.Parts {
		parts[i] = id.Text()
	}
	return strings.Join(parts, ".")
}

// GetTables parses sql under d and returns the dotted name of every
// table referenced by it (FROM, JOIN, INSERT/UPDATE/DELETE targets,
// DDL subjects), in source order, duplicates included.
func GetTables(sql string, d dialect.Dialect) ([]string, error) {
	stmt, err := parser.Parse(sql, d)
	if err != nil {
		return nil, err
	}
	c := &tableCollector{log: logrus.StandardLogger()}
	visitor.Walk(c, stmt)
	return c.tables, nil
}

// GetDistinctTables is GetTables with duplicates removed, preserving
// the order of first occurrence.
func GetDistinctTables(sql string, d dialect.Dialect) ([]string, error) {
	tables, err := GetTables(sql, d)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(tables))
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
