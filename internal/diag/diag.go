// Package diag renders a parse error as a short block of text pointing at
// the offending position:
//
//	[line 1, column 4] error: found unexpected end of stream
//	a: "b
//	   ^~~~~~~~~~
package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/willabides/yamlgraph/internal/termcolor"
	"github.com/willabides/yamlgraph/internal/yamlh"
)

const (
	leftCut     = " ..."
	caretTildes = 10
)

// Options controls rendering.
type Options struct {
	// Width is the console width. Values below 1 select
	// termcolor.DefaultWidth.
	Width int
	Color bool
}

// Render writes the diagnostic for err to w. text is the decoded input the
// error's mark points into.
func Render(w io.Writer, text []byte, err *yamlh.Error, opts Options) error {
	width := opts.Width
	if width < 1 {
		width = termcolor.DefaultWidth
	}
	styles := termcolor.NewStyles(w, opts.Color)

	msg := err.Message
	if err.ContextMessage != "" {
		msg = err.ContextMessage + ": " + msg
	}

	context, column := contextLine(text, err.Mark, width)

	var b strings.Builder
	fmt.Fprintf(&b, "[line %d, column %d] %s: %s\n", err.Mark.Line+1, err.Mark.Column+1, styles.Error.Render("error"), msg)
	b.WriteString(context)
	b.WriteByte('\n')
	b.WriteString(caretPadding(context, column))
	b.WriteString(styles.Caret.Render("^" + strings.Repeat("~", caretTildes)))
	b.WriteByte('\n')
	_, werr := io.WriteString(w, b.String())
	return werr
}

// contextLine returns the line containing mark, cut to at most width
// characters starting no more than width/2 characters before the mark, and
// the column of the mark within the returned text.
func contextLine(text []byte, mark yamlh.Mark, width int) (string, int) {
	pos := mark.Pos
	if pos > len(text) {
		pos = len(text)
	}
	if pos < 0 {
		pos = 0
	}
	start := pos
	for start > 0 && text[start-1] != '\n' && text[start-1] != '\r' {
		start--
	}
	end := pos
	for end < len(text) && text[end] != '\n' && text[end] != '\r' {
		end++
	}
	line := []rune(string(text[start:end]))

	column := utf8.RuneCount(text[start:pos])
	from := 0
	prefix := ""
	if half := width / 2; column > half {
		from = column - half
		prefix = leftCut
	}
	room := width - utf8.RuneCountInString(prefix)
	to := len(line)
	if to-from > room {
		to = from + room
	}
	if to < from {
		to = from
	}
	return prefix + string(line[from:to]), utf8.RuneCountInString(prefix) + column - from
}

// caretPadding returns column characters of blank space lining up with the
// first column characters of context. Tabs are kept so the caret lands under
// the mark in a terminal.
func caretPadding(context string, column int) string {
	var b strings.Builder
	for _, r := range context {
		if column == 0 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		column--
	}
	b.WriteString(strings.Repeat(" ", column))
	return b.String()
}
