package scanner

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willabides/yamlgraph/internal/yamlh"
)

func scanAll(t *testing.T, input string, opts ...Option) ([]yamlh.Token, error) {
	t.Helper()
	s, err := New([]byte(input), opts...)
	require.NoError(t, err)
	return s.All()
}

func tokenTypes(tokens []yamlh.Token) []yamlh.TokenType {
	types := make([]yamlh.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func scalars(tokens []yamlh.Token) []string {
	var values []string
	for _, tok := range tokens {
		if tok.Type == yamlh.SCALAR_TOKEN {
			values = append(values, tok.Value)
		}
	}
	return values
}

func TestTokenStream(t *testing.T) {
	tokens, err := scanAll(t, "a: [b, c]\nd:\n  - e\n")
	require.NoError(t, err)
	require.Equal(t, []yamlh.TokenType{
		yamlh.STREAM_START_TOKEN,
		yamlh.BLOCK_MAPPING_START_TOKEN,
		yamlh.KEY_TOKEN, yamlh.SCALAR_TOKEN, yamlh.VALUE_TOKEN,
		yamlh.FLOW_SEQUENCE_START_TOKEN,
		yamlh.SCALAR_TOKEN, yamlh.FLOW_ENTRY_TOKEN, yamlh.SCALAR_TOKEN,
		yamlh.FLOW_SEQUENCE_END_TOKEN,
		yamlh.KEY_TOKEN, yamlh.SCALAR_TOKEN, yamlh.VALUE_TOKEN,
		yamlh.BLOCK_SEQUENCE_START_TOKEN, yamlh.BLOCK_ENTRY_TOKEN, yamlh.SCALAR_TOKEN, yamlh.BLOCK_END_TOKEN,
		yamlh.BLOCK_END_TOKEN,
		yamlh.STREAM_END_TOKEN,
	}, tokenTypes(tokens))
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, scalars(tokens))
}

func TestEmptyFlowCollectionKeys(t *testing.T) {
	tests := []struct {
		input string
		want  []yamlh.TokenType
	}{
		{"[]: b\n", []yamlh.TokenType{
			yamlh.STREAM_START_TOKEN,
			yamlh.BLOCK_MAPPING_START_TOKEN,
			yamlh.KEY_TOKEN, yamlh.FLOW_SEQUENCE_START_TOKEN, yamlh.FLOW_SEQUENCE_END_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.STREAM_END_TOKEN,
		}},
		{"{}: b\n", []yamlh.TokenType{
			yamlh.STREAM_START_TOKEN,
			yamlh.BLOCK_MAPPING_START_TOKEN,
			yamlh.KEY_TOKEN, yamlh.FLOW_MAPPING_START_TOKEN, yamlh.FLOW_MAPPING_END_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.STREAM_END_TOKEN,
		}},
		{"- {}: x\n", []yamlh.TokenType{
			yamlh.STREAM_START_TOKEN,
			yamlh.BLOCK_SEQUENCE_START_TOKEN, yamlh.BLOCK_ENTRY_TOKEN,
			yamlh.BLOCK_MAPPING_START_TOKEN,
			yamlh.KEY_TOKEN, yamlh.FLOW_MAPPING_START_TOKEN, yamlh.FLOW_MAPPING_END_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.STREAM_END_TOKEN,
		}},
		{"a: {}\n{}: b\n", []yamlh.TokenType{
			yamlh.STREAM_START_TOKEN,
			yamlh.BLOCK_MAPPING_START_TOKEN,
			yamlh.KEY_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.FLOW_MAPPING_START_TOKEN, yamlh.FLOW_MAPPING_END_TOKEN,
			yamlh.KEY_TOKEN, yamlh.FLOW_MAPPING_START_TOKEN, yamlh.FLOW_MAPPING_END_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.STREAM_END_TOKEN,
		}},
		{"[[]]: x\n", []yamlh.TokenType{
			yamlh.STREAM_START_TOKEN,
			yamlh.BLOCK_MAPPING_START_TOKEN,
			yamlh.KEY_TOKEN, yamlh.FLOW_SEQUENCE_START_TOKEN,
			yamlh.FLOW_SEQUENCE_START_TOKEN, yamlh.FLOW_SEQUENCE_END_TOKEN,
			yamlh.FLOW_SEQUENCE_END_TOKEN,
			yamlh.VALUE_TOKEN, yamlh.SCALAR_TOKEN,
			yamlh.BLOCK_END_TOKEN,
			yamlh.STREAM_END_TOKEN,
		}},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			tokens, err := scanAll(t, test.input)
			require.NoError(t, err)
			require.Equal(t, test.want, tokenTypes(tokens))
		})
	}
}

func TestTokenMarks(t *testing.T) {
	tokens, err := scanAll(t, "a: 1\nbb: 2\n")
	require.NoError(t, err)
	var keys []yamlh.Token
	for _, tok := range tokens {
		if tok.Type == yamlh.SCALAR_TOKEN {
			keys = append(keys, tok)
		}
	}
	require.Len(t, keys, 4)
	require.Equal(t, yamlh.Mark{Pos: 5, Line: 1, Column: 0}, keys[2].Start)
	require.Equal(t, yamlh.Mark{Pos: 7, Line: 1, Column: 2}, keys[2].End)
	require.Equal(t, "line 2, column 5", keys[3].Start.String())
}

func TestScalarValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		value string
		style yamlh.ScalarStyle
	}{
		{"plain", "hello world", "hello world", yamlh.PLAIN_SCALAR_STYLE},
		{"plain multi-line", "a\n b\n\n c", "a b\nc", yamlh.PLAIN_SCALAR_STYLE},
		{"plain with colon", "a:b", "a:b", yamlh.PLAIN_SCALAR_STYLE},
		{"plain with hash", "a#b", "a#b", yamlh.PLAIN_SCALAR_STYLE},
		{"plain comment", "a #b", "a", yamlh.PLAIN_SCALAR_STYLE},
		{"single quoted", "'it''s'", "it's", yamlh.SINGLE_QUOTED_SCALAR_STYLE},
		{"single quoted folding", "'a\n  b\n\n  c'", "a b\nc", yamlh.SINGLE_QUOTED_SCALAR_STYLE},
		{"double quoted escapes", `"a\tb\n\x41\u00e9\/\\\""`, "a\tb\nA\u00e9/\\\"", yamlh.DOUBLE_QUOTED_SCALAR_STYLE},
		{"double quoted long escape", `"\U0001F600"`, "\U0001F600", yamlh.DOUBLE_QUOTED_SCALAR_STYLE},
		{"double quoted escaped break", "\"a\\\n  b\"", "ab", yamlh.DOUBLE_QUOTED_SCALAR_STYLE},
		{"literal", "|\n a\n b\n", "a\nb\n", yamlh.LITERAL_SCALAR_STYLE},
		{"literal strip", "|-\n a\n b\n\n", "a\nb", yamlh.LITERAL_SCALAR_STYLE},
		{"literal keep", "|+\n a\n\n", "a\n\n", yamlh.LITERAL_SCALAR_STYLE},
		{"literal indentation indicator", "|2\n   a\n  b\n", " a\nb\n", yamlh.LITERAL_SCALAR_STYLE},
		{"literal more indented", "|\n a\n  b\n", "a\n b\n", yamlh.LITERAL_SCALAR_STYLE},
		{"folded", ">\n a\n b\n\n c\n", "a b\nc\n", yamlh.FOLDED_SCALAR_STYLE},
		{"folded more indented", ">\n a\n  b\n c\n", "a\n b\nc\n", yamlh.FOLDED_SCALAR_STYLE},
		{"crlf", "|\r\n a\r\n b\r\n", "a\nb\n", yamlh.LITERAL_SCALAR_STYLE},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := scanAll(t, test.input)
			require.NoError(t, err)
			var found []yamlh.Token
			for _, tok := range tokens {
				if tok.Type == yamlh.SCALAR_TOKEN {
					found = append(found, tok)
				}
			}
			require.Len(t, found, 1)
			require.Equal(t, test.value, found[0].Value)
			require.Equal(t, test.style, found[0].Style)
		})
	}
}

func TestFlowScalarsEndOnIndicators(t *testing.T) {
	tokens, err := scanAll(t, "{a: [b,c], d?e: f}")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d?e", "f"}, scalars(tokens))
}

func TestTagTokens(t *testing.T) {
	tests := []struct {
		input  string
		handle string
		suffix string
	}{
		{"!!str a", "!!", "str"},
		{"!foo a", "!", "foo"},
		{"!e!bar a", "!e!", "bar"},
		{"!<tag:example.com,2000:x> a", "", "tag:example.com,2000:x"},
		{"! a", "", "!"},
		{"!a%21b c", "!", "a!b"},
		{"[!foo, b]", "!", "foo"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			tokens, err := scanAll(t, test.input)
			require.NoError(t, err)
			var tag *yamlh.Token
			for i := range tokens {
				if tokens[i].Type == yamlh.TAG_TOKEN {
					tag = &tokens[i]
					break
				}
			}
			require.NotNil(t, tag)
			require.Equal(t, test.handle, tag.Value)
			require.Equal(t, test.suffix, tag.Suffix)
		})
	}
}

func TestAnchorAndAlias(t *testing.T) {
	tokens, err := scanAll(t, "a: &x 1\nb: *x\n")
	require.NoError(t, err)
	var anchors, aliases []string
	for _, tok := range tokens {
		switch tok.Type {
		case yamlh.ANCHOR_TOKEN:
			anchors = append(anchors, tok.Value)
		case yamlh.ALIAS_TOKEN:
			aliases = append(aliases, tok.Value)
		}
	}
	require.Equal(t, []string{"x"}, anchors)
	require.Equal(t, []string{"x"}, aliases)
}

func TestDirectives(t *testing.T) {
	tokens, err := scanAll(t, "%YAML 1.2\n%TAG !e! tag:example.com,2000: # comment\n--- a\n")
	require.NoError(t, err)
	require.Equal(t, []yamlh.TokenType{
		yamlh.STREAM_START_TOKEN,
		yamlh.VERSION_DIRECTIVE_TOKEN,
		yamlh.TAG_DIRECTIVE_TOKEN,
		yamlh.DOCUMENT_START_TOKEN,
		yamlh.SCALAR_TOKEN,
		yamlh.STREAM_END_TOKEN,
	}, tokenTypes(tokens))
	require.Equal(t, int8(1), tokens[1].Major)
	require.Equal(t, int8(2), tokens[1].Minor)
	require.Equal(t, "!e!", tokens[2].Value)
	require.Equal(t, "tag:example.com,2000:", tokens[2].Prefix)
}

func TestAllowedTabs(t *testing.T) {
	inputs := []string{
		"[a,\tb]",
		"a:\tb",
		"-\ta",
		"\t# only a comment\na: 1",
		"a: 1\n\t\nb: 2",
		"{\n\ta: b\n}",
		"a: 'x\n\ty'",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := scanAll(t, input)
			require.NoError(t, err)
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  yamlh.ErrorKind
		mark  yamlh.Mark
	}{
		{
			name:  "tab indentation",
			input: "a:\n\tb: 1\n",
			kind:  yamlh.KindMalformedIndentation,
			mark:  yamlh.Mark{Pos: 3, Line: 1, Column: 0},
		},
		{
			name:  "tab after spaces",
			input: "a:\n  \tb: 1\n",
			kind:  yamlh.KindMalformedIndentation,
			mark:  yamlh.Mark{Pos: 5, Line: 1, Column: 2},
		},
		{
			name:  "tab in block scalar indentation",
			input: "a: |\n\tb\n",
			kind:  yamlh.KindMalformedIndentation,
			mark:  yamlh.Mark{Pos: 5, Line: 1, Column: 0},
		},
		{
			name:  "zero indentation indicator",
			input: "|0\n a\n",
			kind:  yamlh.KindMalformedIndentation,
			mark:  yamlh.Mark{Pos: 1, Line: 0, Column: 1},
		},
		{
			name:  "unterminated double quote",
			input: `"abc`,
			kind:  yamlh.KindUnterminatedScalar,
			mark:  yamlh.Mark{},
		},
		{
			name:  "unterminated single quote",
			input: "a: 'abc\n",
			kind:  yamlh.KindUnterminatedScalar,
			mark:  yamlh.Mark{Pos: 3, Line: 0, Column: 3},
		},
		{
			name:  "document indicator in quoted scalar",
			input: "'abc\n---\n'",
			kind:  yamlh.KindUnterminatedScalar,
			mark:  yamlh.Mark{},
		},
		{
			name:  "unknown directive",
			input: "%FOO bar\n---\n",
			kind:  yamlh.KindUnknownDirective,
			mark:  yamlh.Mark{},
		},
		{
			name:  "bad version",
			input: "%YAML 1.x\n---\n",
			kind:  yamlh.KindBadDirective,
			mark:  yamlh.Mark{Pos: 8, Line: 0, Column: 8},
		},
		{
			name:  "unknown escape",
			input: `"\q"`,
			kind:  yamlh.KindUnexpectedToken,
			mark:  yamlh.Mark{Pos: 1, Line: 0, Column: 1},
		},
		{
			name:  "invalid indicator",
			input: "@foo",
			kind:  yamlh.KindUnexpectedToken,
			mark:  yamlh.Mark{},
		},
		{
			name:  "block entry in mapping value",
			input: "a: - b",
			kind:  yamlh.KindUnexpectedToken,
			mark:  yamlh.Mark{Pos: 3, Line: 0, Column: 3},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := scanAll(t, test.input)
			require.Error(t, err)
			var yerr *yamlh.Error
			require.True(t, errors.As(err, &yerr))
			require.Equal(t, test.kind, yerr.Kind)
			require.Equal(t, test.mark, yerr.Mark)
			require.ErrorIs(t, err, test.kind.Sentinel())
		})
	}
}

func TestMaxDepth(t *testing.T) {
	_, err := scanAll(t, "[[[[a]]]]", WithMaxDepth(3))
	require.ErrorIs(t, err, yamlh.ErrDepthExceeded)

	_, err = scanAll(t, "[[[a]]]", WithMaxDepth(3))
	require.NoError(t, err)

	_, err = scanAll(t, strings.Repeat("[", 20000))
	require.ErrorIs(t, err, yamlh.ErrDepthExceeded)
}

func TestStickyError(t *testing.T) {
	s, err := New([]byte("a:\n\tb"))
	require.NoError(t, err)
	_, err = s.All()
	require.Error(t, err)
	_, err2 := s.Next()
	require.Equal(t, err, err2)
}

func TestStreamEndRepeats(t *testing.T) {
	s, err := New([]byte("a"))
	require.NoError(t, err)
	_, err = s.All()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		tok, err := s.Next()
		require.NoError(t, err)
		require.Equal(t, yamlh.STREAM_END_TOKEN, tok.Type)
	}
}

func TestReader(t *testing.T) {
	t.Run("utf-16le", func(t *testing.T) {
		input := []byte{0xFF, 0xFE, 'a', 0, ':', 0, ' ', 0, 'b', 0}
		s, err := New(input)
		require.NoError(t, err)
		require.Equal(t, "a: b", string(s.Text()))
		tokens, err := s.All()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, scalars(tokens))
	})

	t.Run("utf-16be", func(t *testing.T) {
		input := []byte{0xFE, 0xFF, 0, 'x'}
		s, err := New(input)
		require.NoError(t, err)
		require.Equal(t, "x", string(s.Text()))
	})

	t.Run("utf-8 bom", func(t *testing.T) {
		s, err := New([]byte("\xEF\xBB\xBFa: 1"))
		require.NoError(t, err)
		require.Equal(t, "a: 1", string(s.Text()))
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		_, err := New([]byte("a: \xff"))
		require.ErrorIs(t, err, yamlh.ErrReader)
		var yerr *yamlh.Error
		require.True(t, errors.As(err, &yerr))
		require.Equal(t, yamlh.Mark{Pos: 3, Line: 0, Column: 3}, yerr.Mark)
	})

	t.Run("control character", func(t *testing.T) {
		_, err := New([]byte("a\nb\x01"))
		require.ErrorIs(t, err, yamlh.ErrReader)
		var yerr *yamlh.Error
		require.True(t, errors.As(err, &yerr))
		require.Equal(t, yamlh.Mark{Pos: 3, Line: 1, Column: 1}, yerr.Mark)
	})

	t.Run("io.Reader", func(t *testing.T) {
		s, err := NewReader(strings.NewReader("- a\n- b\n"))
		require.NoError(t, err)
		tokens, err := s.All()
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, scalars(tokens))
	})
}
