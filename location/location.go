// Package location tracks source ranges and renders caret-underlined
// excerpts for diagnostics.
package location

import "strings"

// Location is an inclusive-start, inclusive-end byte range into a
// source string. End points at the last byte of the range, not one
// past it, so a single-byte token has Start == End.
type Location struct {
	SQL   string
	Start int
	End   int
}

// New builds a Location over sql spanning [start, end].
func New(sql string, start, end int) Location {
	return Location{SQL: sql, Start: start, End: end}
}

// Union returns the smallest Location spanning both a and b. Both must
// refer to the same source string.
func Union(a, b Location) Location {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Location{SQL: a.SQL, Start: start, End: end}
}

// Text returns the exact source slice this Location covers.
func (l Location) Text() string {
	if l.Start < 0 || l.End+1 > len(l.SQL) || l.Start > l.End {
		return ""
	}
	return l.SQL[l.Start : l.End+1]
}

// LineCol returns the 1-based line and column of offset within l.SQL.
func (l Location) LineCol(offset int) (line, col int) {
	line = 1
	lastNewline := -1
	for i := 0; i < offset && i < len(l.SQL); i++ {
		if l.SQL[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	col = offset - lastNewline
	return line, col
}

// Excerpt renders every source line the range touches, each followed
// by its own caret run underneath the portion of that line the range
// covers, in the style of original_source's location.py display: a
// span that crosses a line boundary gets a fresh caret run under each
// line rather than stopping at the first one.
func (l Location) Excerpt() string {
	if l.SQL == "" {
		return ""
	}
	start := clamp(l.Start, 0, len(l.SQL))
	matchEnd := clamp(l.End+1, start, len(l.SQL))

	lineStart := strings.LastIndexByte(l.SQL[:start], '\n') + 1
	lastLineEnd := len(l.SQL)
	if rel := strings.IndexByte(l.SQL[matchEnd:], '\n'); rel >= 0 {
		lastLineEnd = matchEnd + rel
	}

	text := l.SQL[lineStart:lastLineEnd]
	matchStartCol := start - lineStart
	matchEndCol := matchEnd - lineStart
	// A zero-width match (End < Start, never produced by the lexer but
	// not worth guarding against upstream) still underlines one column.
	effectiveEndCol := matchEndCol
	if effectiveEndCol <= matchStartCol {
		effectiveEndCol = matchStartCol + 1
	}

	var b strings.Builder
	offset := 0
	for {
		lineEnd := len(text)
		nl := strings.IndexByte(text[offset:], '\n')
		if nl >= 0 {
			lineEnd = offset + nl
		}

		if offset > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text[offset:lineEnd])

		if matchStartCol < lineEnd && effectiveEndCol > offset {
			capStart := max(matchStartCol, offset)
			capEnd := min(effectiveEndCol, lineEnd)
			if capEnd <= capStart {
				capEnd = capStart + 1
			}
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", capStart-offset))
			b.WriteString(strings.Repeat("^", capEnd-capStart))
		}

		if nl < 0 || lineEnd >= effectiveEndCol {
			break
		}
		offset = lineEnd + 1
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
