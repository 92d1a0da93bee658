//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package scanner

import (
	"unicode/utf8"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// Chomping methods for block scalars.
const (
	chompStrip = -1
	chompClip  = 0
	chompKeep  = 1
)

func (s *Scanner) atDocumentIndicator() bool {
	b, pos := s.buf, s.pos
	return s.mark.Column == 0 &&
		((b[pos] == '-' && b[pos+1] == '-' && b[pos+2] == '-') ||
			(b[pos] == '.' && b[pos+1] == '.' && b[pos+2] == '.')) &&
		yamlh.IsBlankZ(b, pos+3)
}

// Scan a literal or folded block scalar.
func (s *Scanner) scanBlockScalar(literal bool) (yamlh.Token, error) {
	const context = "while scanning a block scalar"
	start := s.mark
	s.skip()

	// Chomping and indentation indicators, in either order.
	chomping, increment := chompClip, 0
	scanChomping := func() {
		if s.ch() == '+' || s.ch() == '-' {
			chomping = chompKeep
			if s.ch() == '-' {
				chomping = chompStrip
			}
			s.skip()
		}
	}
	scanIncrement := func() error {
		if !yamlh.IsDigit(s.buf, s.pos) {
			return nil
		}
		if s.ch() == '0' {
			return s.errorf(yamlh.KindMalformedIndentation, context, start, s.mark,
				"found an indentation indicator equal to 0")
		}
		increment = yamlh.AsDigit(s.buf, s.pos)
		s.skip()
		return nil
	}
	if s.ch() == '+' || s.ch() == '-' {
		scanChomping()
		if err := scanIncrement(); err != nil {
			return yamlh.Token{}, err
		}
	} else {
		if err := scanIncrement(); err != nil {
			return yamlh.Token{}, err
		}
		scanChomping()
	}

	// Eat whitespace and a comment to the end of the line.
	for yamlh.IsBlank(s.buf, s.pos) {
		s.skip()
	}
	if s.ch() == '#' {
		for !yamlh.IsBreakZ(s.buf, s.pos) {
			s.skip()
		}
	}
	if !yamlh.IsBreakZ(s.buf, s.pos) {
		return yamlh.Token{}, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
			"did not find expected comment or line break")
	}
	s.skipLine()

	end := s.mark

	indent := 0
	if increment > 0 {
		if s.indent >= 0 {
			indent = s.indent + increment
		} else {
			indent = increment
		}
	}

	var value, leadingBreak, trailingBreaks []byte
	if err := s.scanBlockScalarBreaks(&indent, &trailingBreaks, start, &end); err != nil {
		return yamlh.Token{}, err
	}

	var leadingBlank, trailingBlank bool
	for s.mark.Column == indent && !yamlh.IsZ(s.buf, s.pos) {
		// At the start of a non-empty line.
		trailingBlank = yamlh.IsBlank(s.buf, s.pos)

		// Fold the previous line break unless either side is more indented.
		if !literal && !leadingBlank && !trailingBlank && len(leadingBreak) > 0 && leadingBreak[0] == '\n' {
			if len(trailingBreaks) == 0 {
				value = append(value, ' ')
			}
		} else {
			value = append(value, leadingBreak...)
		}
		leadingBreak = leadingBreak[:0]

		value = append(value, trailingBreaks...)
		trailingBreaks = trailingBreaks[:0]

		leadingBlank = yamlh.IsBlank(s.buf, s.pos)

		for !yamlh.IsBreakZ(s.buf, s.pos) {
			value = s.read(value)
		}
		end = s.mark

		leadingBreak = s.readLine(leadingBreak)

		if err := s.scanBlockScalarBreaks(&indent, &trailingBreaks, start, &end); err != nil {
			return yamlh.Token{}, err
		}
	}

	if chomping != chompStrip {
		value = append(value, leadingBreak...)
	}
	if chomping == chompKeep {
		value = append(value, trailingBreaks...)
	}

	style := yamlh.LITERAL_SCALAR_STYLE
	if !literal {
		style = yamlh.FOLDED_SCALAR_STYLE
	}
	return yamlh.Token{
		Type:  yamlh.SCALAR_TOKEN,
		Start: start,
		End:   end,
		Value: string(value),
		Style: style,
	}, nil
}

// Eat indentation and empty lines of a block scalar. When *indent is 0 it
// is set from the most indented of the leading empty lines and the first
// content line.
func (s *Scanner) scanBlockScalarBreaks(indent *int, breaks *[]byte, start yamlh.Mark, end *yamlh.Mark) error {
	maxIndent := 0
	for {
		for (*indent == 0 || s.mark.Column < *indent) && yamlh.IsSpace(s.buf, s.pos) {
			s.skip()
		}
		if s.mark.Column > maxIndent {
			maxIndent = s.mark.Column
		}

		if (*indent == 0 || s.mark.Column < *indent) && yamlh.IsTab(s.buf, s.pos) {
			return s.errorf(yamlh.KindMalformedIndentation, "while scanning a block scalar", start, s.mark,
				"found a tab character where an indentation space is expected")
		}

		if !yamlh.IsBreak(s.buf, s.pos) {
			break
		}
		*breaks = s.readLine(*breaks)
	}

	if *indent == 0 {
		*indent = maxIndent
		if *indent < s.indent+1 {
			*indent = s.indent + 1
		}
		if *indent < 1 {
			*indent = 1
		}
	}
	return nil
}

// Scan a single- or double-quoted scalar.
func (s *Scanner) scanFlowScalar(single bool) (yamlh.Token, error) {
	const context = "while scanning a quoted scalar"
	start := s.mark
	s.skip()

	var value, leadingBreak, trailingBreaks, whitespaces []byte
	for {
		if s.atDocumentIndicator() {
			return yamlh.Token{}, s.errorf(yamlh.KindUnterminatedScalar, context, start, start,
				"found unexpected document indicator")
		}
		if yamlh.IsZ(s.buf, s.pos) {
			return yamlh.Token{}, s.errorf(yamlh.KindUnterminatedScalar, context, start, start,
				"found unexpected end of stream")
		}

		// Non-blank characters.
		leadingBlanks := false
		for !yamlh.IsBlankZ(s.buf, s.pos) {
			c := s.ch()
			switch {
			case single && c == '\'' && s.at(1) == '\'':
				value = append(value, '\'')
				s.skip()
				s.skip()
				continue
			case single && c == '\'':
			case !single && c == '"':
			case !single && c == '\\' && yamlh.IsBreak(s.buf, s.pos+1):
				// An escaped line break.
				s.skip()
				s.skipLine()
				leadingBlanks = true
			case !single && c == '\\':
				var err error
				value, err = s.scanEscape(value, start)
				if err != nil {
					return yamlh.Token{}, err
				}
				continue
			default:
				value = s.read(value)
				continue
			}
			break
		}

		if single && s.ch() == '\'' || !single && s.ch() == '"' {
			break
		}

		// Blanks and line breaks.
		for yamlh.IsBlank(s.buf, s.pos) || yamlh.IsBreak(s.buf, s.pos) {
			if yamlh.IsBlank(s.buf, s.pos) {
				if !leadingBlanks {
					whitespaces = s.read(whitespaces)
				} else {
					s.skip()
				}
			} else if !leadingBlanks {
				whitespaces = whitespaces[:0]
				leadingBreak = s.readLine(leadingBreak)
				leadingBlanks = true
			} else {
				trailingBreaks = s.readLine(trailingBreaks)
			}
		}

		// Join the whitespace or fold the line breaks.
		if leadingBlanks {
			if len(leadingBreak) > 0 && leadingBreak[0] == '\n' {
				if len(trailingBreaks) == 0 {
					value = append(value, ' ')
				} else {
					value = append(value, trailingBreaks...)
				}
			} else {
				value = append(value, leadingBreak...)
				value = append(value, trailingBreaks...)
			}
			trailingBreaks = trailingBreaks[:0]
			leadingBreak = leadingBreak[:0]
		} else {
			value = append(value, whitespaces...)
			whitespaces = whitespaces[:0]
		}
	}

	// The closing quote.
	s.skip()

	style := yamlh.SINGLE_QUOTED_SCALAR_STYLE
	if !single {
		style = yamlh.DOUBLE_QUOTED_SCALAR_STYLE
	}
	return yamlh.Token{
		Type:  yamlh.SCALAR_TOKEN,
		Start: start,
		End:   s.mark,
		Value: string(value),
		Style: style,
	}, nil
}

var simpleEscapes = map[byte]string{
	'0':  "\x00",
	'a':  "\x07",
	'b':  "\x08",
	't':  "\x09",
	'\t': "\x09",
	'n':  "\x0A",
	'v':  "\x0B",
	'f':  "\x0C",
	'r':  "\x0D",
	'e':  "\x1B",
	' ':  " ",
	'"':  "\"",
	'\'': "'",
	'/':  "/",
	'\\': "\\",
	'N':  "\u0085",
	'_':  " ",
	'L':  " ",
	'P':  " ",
}

var codeLengths = map[byte]int{
	'x': 2,
	'u': 4,
	'U': 8,
}

// Decode one escape sequence of a double-quoted scalar.
func (s *Scanner) scanEscape(dst []byte, start yamlh.Mark) ([]byte, error) {
	const context = "while parsing a quoted scalar"
	c := s.at(1)
	if esc, ok := simpleEscapes[c]; ok {
		s.skip()
		s.skip()
		return append(dst, esc...), nil
	}
	length, ok := codeLengths[c]
	if !ok {
		return nil, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark, "found unknown escape character")
	}
	s.skip()
	s.skip()

	var code rune
	for k := 0; k < length; k++ {
		if !yamlh.IsHex(s.buf, s.pos+k) {
			return nil, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
				"did not find expected hexadecimal number")
		}
		code = code<<4 + rune(yamlh.AsHex(s.buf, s.pos+k))
	}
	if (code >= 0xD800 && code <= 0xDFFF) || code > 0x10FFFF {
		return nil, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
			"found invalid Unicode character escape code")
	}
	for k := 0; k < length; k++ {
		s.skip()
	}
	return utf8.AppendRune(dst, code), nil
}

// Scan a plain scalar.
func (s *Scanner) scanPlainScalar() (yamlh.Token, error) {
	var value, leadingBreak, trailingBreaks, whitespaces []byte
	var leadingBlanks bool
	indent := s.indent + 1

	start := s.mark
	end := s.mark

	for {
		if s.atDocumentIndicator() {
			break
		}
		if s.ch() == '#' {
			break
		}

		for !yamlh.IsBlankZ(s.buf, s.pos) {
			// Indicators that end a plain scalar.
			if s.ch() == ':' && (yamlh.IsBlankZ(s.buf, s.pos+1) ||
				s.flowLevel > 0 && yamlh.IsFlowIndicator(s.buf, s.pos+1)) {
				break
			}
			if s.flowLevel > 0 && (s.ch() == '?' && yamlh.IsBlankZ(s.buf, s.pos+1) || yamlh.IsFlowIndicator(s.buf, s.pos)) {
				break
			}

			if leadingBlanks || len(whitespaces) > 0 {
				if leadingBlanks {
					if leadingBreak[0] == '\n' {
						if len(trailingBreaks) == 0 {
							value = append(value, ' ')
						} else {
							value = append(value, trailingBreaks...)
						}
					} else {
						value = append(value, leadingBreak...)
						value = append(value, trailingBreaks...)
					}
					trailingBreaks = trailingBreaks[:0]
					leadingBreak = leadingBreak[:0]
					leadingBlanks = false
				} else {
					value = append(value, whitespaces...)
					whitespaces = whitespaces[:0]
				}
			}

			value = s.read(value)
			end = s.mark
		}

		if !(yamlh.IsBlank(s.buf, s.pos) || yamlh.IsBreak(s.buf, s.pos)) {
			break
		}

		for yamlh.IsBlank(s.buf, s.pos) || yamlh.IsBreak(s.buf, s.pos) {
			if yamlh.IsBlank(s.buf, s.pos) {
				// A tab may not stand in for the continuation indentation.
				if leadingBlanks && s.mark.Column < indent && yamlh.IsTab(s.buf, s.pos) && s.flowLevel == 0 {
					return yamlh.Token{}, s.errorf(yamlh.KindMalformedIndentation, "while scanning a plain scalar", start, s.mark,
						"found a tab character that violates indentation")
				}
				if !leadingBlanks {
					whitespaces = s.read(whitespaces)
				} else {
					s.skip()
				}
			} else if !leadingBlanks {
				whitespaces = whitespaces[:0]
				leadingBreak = s.readLine(leadingBreak)
				leadingBlanks = true
			} else {
				trailingBreaks = s.readLine(trailingBreaks)
			}
		}

		if s.flowLevel == 0 && s.mark.Column < indent {
			break
		}
	}

	// A line break inside the scalar allows a simple key to follow it.
	if leadingBlanks {
		s.simpleKeyAllowed = true
	}

	return yamlh.Token{
		Type:  yamlh.SCALAR_TOKEN,
		Start: start,
		End:   end,
		Value: string(value),
		Style: yamlh.PLAIN_SCALAR_STYLE,
	}, nil
}
