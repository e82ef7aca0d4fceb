// Package format renders a parsed ast.Statement back into SQL text,
// normalizing keyword case and whitespace rather than replaying the
// original source verbatim. It follows a speculative layout strategy
// (spec §4.6): most constructs that might span multiple lines are
// first tried on one line, and only reflowed across lines when the
// one-line attempt would run past the configured line length. AND/OR/XOR
// chains and JOINs are always broken across lines. A line that cannot
// be broken further is left longer than the limit.
package format

import (
	"bytes"
	"strings"

	"github.com/relaysql/sqltree/ast"
	"github.com/relaysql/sqltree/dialect"
)

// Options controls rendering.
type Options struct {
	// MaxLineLength is the column at which a one-line rendering is
	// abandoned in favor of a multi-line one. 0 means DefaultMaxLineLength.
	MaxLineLength int
	// Indent is the unit of indentation used for each nesting level.
	Indent string
}

// DefaultMaxLineLength matches original_source's formatter default.
const DefaultMaxLineLength = 88

// DefaultOptions is used by Format when no Options is given.
var DefaultOptions = Options{MaxLineLength: DefaultMaxLineLength, Indent: "    "}

// Format renders stmt to SQL text under d's keyword set using the
// default options. It is the `format(node, dialect)` library entry
// point (spec §6).
func Format(stmt ast.Statement, d dialect.Dialect) string {
	return FormatWithOptions(stmt, d, DefaultOptions)
}

// FormatWithOptions renders stmt with an explicit Options.
func FormatWithOptions(stmt ast.Statement, d dialect.Dialect, opts Options) string {
	if opts.MaxLineLength == 0 {
		opts.MaxLineLength = DefaultMaxLineLength
	}
	if opts.Indent == "" {
		opts.Indent = DefaultOptions.Indent
	}
	p := &printer{opts: opts, dialect: d}
	p.writeLeadingComments(leadingComments(stmt))
	p.formatStatement(stmt)
	return p.buf.String()
}

func leadingComments(stmt ast.Statement) []string {
	var out []string
	for _, c := range stmt.LeadingComments() {
		out = append(out, c.Text)
	}
	return out
}

// printer accumulates output and tracks enough state to decide
// whether the line in progress has grown too long.
type printer struct {
	buf         bytes.Buffer
	opts        Options
	dialect     dialect.Dialect
	indentLevel int
	lineStart   int // byte offset in buf of the start of the current line
	speculating int // depth of nested tryOneLine attempts in progress
}

// lineTooLong is a control-flow signal (spec §4.6's LineTooLong):
// panicked from deep inside a speculative one-line attempt and
// recovered by tryOneLine, unwinding straight back to the caller that
// decides to reflow rather than threading an error return through
// every formatting method.
type lineTooLong struct{}

func (p *printer) currentLineLen() int {
	return p.buf.Len() - p.lineStart
}

func (p *printer) checkLineLength() {
	if p.speculating > 0 && p.currentLineLen() > p.opts.MaxLineLength {
		panic(lineTooLong{})
	}
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
	p.checkLineLength()
}

func (p *printer) writeKeyword(s string) {
	p.write(strings.ToUpper(s))
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.lineStart = p.buf.Len()
	p.write(strings.Repeat(p.opts.Indent, p.indentLevel))
}

func (p *printer) writeLeadingComments(comments []string) {
	for _, c := range comments {
		p.write(strings.TrimRight(c, "\r\n"))
		p.newline()
	}
}

// checkpoint snapshots enough state to roll back a failed one-line
// attempt: the buffer contents and the line-start marker.
type checkpoint struct {
	bufLen    int
	lineStart int
}

func (p *printer) mark() checkpoint {
	return checkpoint{bufLen: p.buf.Len(), lineStart: p.lineStart}
}

func (p *printer) restore(c checkpoint) {
	p.buf.Truncate(c.bufLen)
	p.lineStart = c.lineStart
}

// tryOneLine attempts fn, which must write only additions to the
// buffer (no newlines), and rolls back to the checkpoint if it
// overflows the line length or explicitly gives up. It reports
// whether the one-line rendering succeeded.
func (p *printer) tryOneLine(fn func()) (ok bool) {
	c := p.mark()
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, isLineTooLong := r.(lineTooLong); !isLineTooLong {
				panic(r)
			}
			p.restore(c)
			ok = false
		}
	}()
	fn()
	return true
}

func (p *printer) indented(fn func()) {
	p.indentLevel++
	fn()
	p.indentLevel--
}
