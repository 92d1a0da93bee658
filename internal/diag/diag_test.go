package diag

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

func TestRender(t *testing.T) {
	text := []byte("a: 1\nb: \"c\n")
	mark := yamlh.Mark{Pos: 8, Line: 1, Column: 3}
	err := yamlh.NewContextError(yamlh.KindUnterminatedScalar,
		"while scanning a quoted scalar", mark, mark, "found unexpected end of stream")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, text, err, Options{}))
	require.Equal(t, ""+
		"[line 2, column 4] error: while scanning a quoted scalar: found unexpected end of stream\n"+
		"b: \"c\n"+
		"   ^~~~~~~~~~\n",
		buf.String())
}

func TestRenderColor(t *testing.T) {
	text := []byte("[a, b")
	err := yamlh.NewError(yamlh.KindUnexpectedToken, yamlh.Mark{Pos: 5, Column: 5}, "did not find expected ',' or ']'")

	var plain, colored bytes.Buffer
	require.NoError(t, Render(&plain, text, err, Options{Width: 80}))
	require.NoError(t, Render(&colored, text, err, Options{Width: 80, Color: true}))
	require.NotEqual(t, plain.String(), colored.String())
	require.Equal(t, plain.String(), regexp.MustCompile("\x1b\\[[0-9;]*m").ReplaceAllString(colored.String(), ""))
	require.Equal(t, "[a, b\n     ^~~~~~~~~~\n", strings.SplitN(plain.String(), "\n", 2)[1])
}

func TestRenderKeepsTabs(t *testing.T) {
	text := []byte("[a,\tb,\t*x]\n")
	mark := yamlh.Mark{Pos: 7, Column: 7}
	err := yamlh.NewError(yamlh.KindUnknownAlias, mark, "unknown anchor 'x' referenced")

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, text, err, Options{Width: 80}))
	require.Equal(t, ""+
		"[line 1, column 8] error: unknown anchor 'x' referenced\n"+
		"[a,\tb,\t*x]\n"+
		"   \t  \t^~~~~~~~~~\n",
		buf.String())
}

func TestContextLine(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mark   yamlh.Mark
		width  int
		line   string
		column int
	}{
		{
			name:  "short line",
			text:  "a: 1\nbb: *x\n",
			mark:  yamlh.Mark{Pos: 9, Line: 1, Column: 4},
			width: 80,
			line:  "bb: *x", column: 4,
		},
		{
			name:  "cut on the left",
			text:  strings.Repeat("a", 30) + "X",
			mark:  yamlh.Mark{Pos: 30, Column: 30},
			width: 20,
			line:  " ..." + strings.Repeat("a", 10) + "X", column: 14,
		},
		{
			name:  "cut on the right",
			text:  "X" + strings.Repeat("b", 30),
			mark:  yamlh.Mark{},
			width: 10,
			line:  "X" + strings.Repeat("b", 9), column: 0,
		},
		{
			name:  "multibyte",
			text:  "é: *x",
			mark:  yamlh.Mark{Pos: 4, Column: 3},
			width: 80,
			line:  "é: *x", column: 3,
		},
		{
			name:  "mark at end of input",
			text:  "a: [",
			mark:  yamlh.Mark{Pos: 4, Column: 4},
			width: 80,
			line:  "a: [", column: 4,
		},
		{
			name:  "mark past end of input",
			text:  "a",
			mark:  yamlh.Mark{Pos: 10},
			width: 80,
			line:  "a", column: 1,
		},
		{
			name:  "carriage return",
			text:  "a\r\nb: *x\r\n",
			mark:  yamlh.Mark{Pos: 6, Line: 1, Column: 3},
			width: 80,
			line:  "b: *x", column: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			line, column := contextLine([]byte(test.text), test.mark, test.width)
			require.Equal(t, test.line, line)
			require.Equal(t, test.column, column)
		})
	}
}
