package format

import "github.com/relaysql/sqltree/ast"

// formatCommaList renders items separated by ", " on one line if that
// fits, otherwise one item per (indented) line with a trailing comma
// on every line but the last, matching original_source's
// write_comma_separated_list layout rule.
func formatCommaList[T ast.Node](p *printer, items []ast.WithTrailingComma[T], writeItem func(T)) {
	if len(items) == 0 {
		return
	}
	if p.tryOneLine(func() {
		for i, it := range items {
			if i > 0 {
				p.write(", ")
			}
			writeItem(it.Item)
		}
	}) {
		return
	}
	p.indented(func() {
		for i, it := range items {
			p.newline()
			writeItem(it.Item)
			if i < len(items)-1 {
				p.write(",")
			}
		}
	})
}
