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

// Package scanner turns YAML text into a lazy stream of tokens.
//
// The scanner tracks an indentation stack for block collections and a flow
// level for '[' and '{'. Block collection starts and ends are not explicit
// in YAML text, so the scanner synthesises BLOCK-SEQUENCE-START,
// BLOCK-MAPPING-START and BLOCK-END tokens from indentation. Keys of block
// and flow mappings are usually not introduced by '?', so a KEY token is
// inserted retroactively when the ':' indicator of a simple key is found.
//
// For example,
//
//	a: [b, c]
//	d:
//	  - e
//
// produces
//
//	STREAM-START
//	BLOCK-MAPPING-START
//	KEY SCALAR("a") VALUE
//	FLOW-SEQUENCE-START SCALAR("b") FLOW-ENTRY SCALAR("c") FLOW-SEQUENCE-END
//	KEY SCALAR("d") VALUE
//	BLOCK-SEQUENCE-START BLOCK-ENTRY SCALAR("e") BLOCK-END
//	BLOCK-END
//	STREAM-END
package scanner

import (
	"fmt"
	"io"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// DefaultMaxDepth bounds both the flow level and the indentation stack.
const DefaultMaxDepth = 10000

// YAML 1.2 limits an implicit key to 1024 characters on a
// single line.
const maxSimpleKeyLength = 1024

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxDepth sets the nesting limit. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		s.maxDepth = depth
	}
}

// Scanner produces tokens from one input. It is not safe for concurrent use.
type Scanner struct {
	buf  []byte // decoded input followed by padding
	pos  int
	mark yamlh.Mark

	// byte offset of the first character of the current line
	lineStart int

	tokens       []yamlh.Token
	head         int
	parsed       int // number of tokens handed out and skipped
	streamStart  bool
	streamEnd    bool
	err          error
	lastEndToken yamlh.Token

	indent  int
	indents []int

	flowLevel int
	maxDepth  int

	simpleKeyAllowed bool
	simpleKeys       []yamlh.SimpleKey
	simpleKeysByTok  map[int]int
}

// New returns a scanner over input. The input is decoded and validated
// first, so a reader error is reported here rather than mid-stream.
func New(input []byte, opts ...Option) (*Scanner, error) {
	buf, err := decodeInput(input)
	if err != nil {
		return nil, err
	}
	s := &Scanner{
		buf:      buf,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewReader reads all of r and returns a scanner over it.
func NewReader(r io.Reader, opts ...Option) (*Scanner, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, yamlh.NewError(yamlh.KindReader, yamlh.Mark{}, fmt.Sprintf("read error: %v", err))
	}
	return New(input, opts...)
}

// Text returns the decoded input.
func (s *Scanner) Text() []byte {
	return s.buf[:len(s.buf)-padding]
}

// Peek returns the next token without consuming it. The returned pointer
// is valid until the next call to Skip or Next.
func (s *Scanner) Peek() (*yamlh.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := s.fetchMoreTokens(); err != nil {
		s.err = err
		return nil, err
	}
	if s.head == len(s.tokens) {
		// Only reachable once STREAM-END has been skipped.
		return &s.lastEndToken, nil
	}
	return &s.tokens[s.head], nil
}

// Skip consumes the token returned by the last Peek. STREAM-END is never
// consumed; every later Peek returns it again.
func (s *Scanner) Skip() {
	if s.head == len(s.tokens) {
		return
	}
	tok := s.tokens[s.head]
	if tok.Type == yamlh.STREAM_END_TOKEN {
		s.lastEndToken = tok
	}
	s.head++
	s.parsed++
}

// Next returns and consumes the next token.
func (s *Scanner) Next() (yamlh.Token, error) {
	tok, err := s.Peek()
	if err != nil {
		return yamlh.Token{}, err
	}
	t := *tok
	s.Skip()
	return t, nil
}

// All scans the remaining input and returns every token up to and
// including STREAM-END.
func (s *Scanner) All() ([]yamlh.Token, error) {
	var out []yamlh.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Type == yamlh.STREAM_END_TOKEN {
			return out, nil
		}
	}
}

func (s *Scanner) ch() byte {
	return s.buf[s.pos]
}

func (s *Scanner) at(offset int) byte {
	return s.buf[s.pos+offset]
}

// Advance past one character.
func (s *Scanner) skip() {
	s.pos += yamlh.Width(s.buf[s.pos])
	s.mark.Pos = s.pos
	s.mark.Column++
}

// Advance past one line break.
func (s *Scanner) skipLine() {
	switch {
	case yamlh.IsCRLF(s.buf, s.pos):
		s.pos += 2
	case yamlh.IsBreak(s.buf, s.pos):
		s.pos += yamlh.Width(s.buf[s.pos])
	default:
		return
	}
	s.newLine()
}

func (s *Scanner) newLine() {
	s.mark.Pos = s.pos
	s.mark.Line++
	s.mark.Column = 0
	s.lineStart = s.pos
}

// Copy one character to dst and advance.
func (s *Scanner) read(dst []byte) []byte {
	w := yamlh.Width(s.buf[s.pos])
	dst = append(dst, s.buf[s.pos:s.pos+w]...)
	s.pos += w
	s.mark.Pos = s.pos
	s.mark.Column++
	return dst
}

// Copy one line break to dst and advance. CR LF, CR, LF and NEL are
// normalised to LF. LS and PS are kept.
func (s *Scanner) readLine(dst []byte) []byte {
	b := s.buf
	switch {
	case b[s.pos] == '\r' && b[s.pos+1] == '\n':
		dst = append(dst, '\n')
		s.pos += 2
	case b[s.pos] == '\r' || b[s.pos] == '\n':
		dst = append(dst, '\n')
		s.pos++
	case b[s.pos] == 0xC2 && b[s.pos+1] == 0x85:
		dst = append(dst, '\n')
		s.pos += 2
	case b[s.pos] == 0xE2 && b[s.pos+1] == 0x80 && (b[s.pos+2] == 0xA8 || b[s.pos+2] == 0xA9):
		dst = append(dst, b[s.pos:s.pos+3]...)
		s.pos += 3
	default:
		return dst
	}
	s.newLine()
	return dst
}

// atLineIndent reports whether only indentation precedes the current
// position on this line.
func (s *Scanner) atLineIndent() bool {
	for i := s.lineStart; i < s.pos; {
		switch {
		case s.buf[i] == ' ':
			i++
		case yamlh.IsBOM(s.buf, i):
			i += 3
		default:
			return false
		}
	}
	return true
}

// restIsBlank reports whether only blanks and possibly a comment follow
// the current position on this line.
func (s *Scanner) restIsBlank() bool {
	i := s.pos
	for yamlh.IsBlank(s.buf, i) {
		i++
	}
	return s.buf[i] == '#' || yamlh.IsBreakZ(s.buf, i)
}

func (s *Scanner) errorf(kind yamlh.ErrorKind, context string, contextMark, mark yamlh.Mark, format string, args ...interface{}) error {
	if context == "" {
		return yamlh.NewError(kind, mark, fmt.Sprintf(format, args...))
	}
	return yamlh.NewContextError(kind, context, contextMark, mark, fmt.Sprintf(format, args...))
}

func (s *Scanner) insertToken(pos int, tok yamlh.Token) {
	// Move the queue to the start of the buffer when it is full.
	if s.head > 0 && len(s.tokens) == cap(s.tokens) {
		n := copy(s.tokens, s.tokens[s.head:])
		s.tokens = s.tokens[:n]
		s.head = 0
	}
	if pos < 0 {
		s.tokens = append(s.tokens, tok)
		return
	}
	i := s.head + pos
	s.tokens = append(s.tokens, yamlh.Token{})
	copy(s.tokens[i+1:], s.tokens[i:])
	s.tokens[i] = tok
}

// Ensure the token queue holds at least one token that cannot be preceded
// by a retroactively inserted KEY.
func (s *Scanner) fetchMoreTokens() error {
	for {
		if s.head < len(s.tokens) {
			idx, ok := s.simpleKeysByTok[s.parsed]
			if !ok {
				return nil
			}
			valid, err := s.simpleKeyIsValid(&s.simpleKeys[idx])
			if err != nil {
				return err
			}
			if !valid {
				return nil
			}
		} else if s.streamEnd {
			return nil
		}
		if err := s.fetchNextToken(); err != nil {
			return err
		}
	}
}

func (s *Scanner) fetchNextToken() error {
	if !s.streamStart {
		s.fetchStreamStart()
		return nil
	}

	if err := s.scanToNextToken(); err != nil {
		return err
	}

	s.unrollIndent(s.mark.Column)

	b, pos := s.buf, s.pos

	if yamlh.IsZ(b, pos) {
		return s.fetchStreamEnd()
	}

	if s.mark.Column == 0 && b[pos] == '%' {
		return s.fetchDirective()
	}

	if s.mark.Column == 0 && b[pos] == '-' && b[pos+1] == '-' && b[pos+2] == '-' && yamlh.IsBlankZ(b, pos+3) {
		return s.fetchDocumentIndicator(yamlh.DOCUMENT_START_TOKEN)
	}

	if s.mark.Column == 0 && b[pos] == '.' && b[pos+1] == '.' && b[pos+2] == '.' && yamlh.IsBlankZ(b, pos+3) {
		return s.fetchDocumentIndicator(yamlh.DOCUMENT_END_TOKEN)
	}

	switch {
	case b[pos] == '[':
		return s.fetchFlowCollectionStart(yamlh.FLOW_SEQUENCE_START_TOKEN)
	case b[pos] == '{':
		return s.fetchFlowCollectionStart(yamlh.FLOW_MAPPING_START_TOKEN)
	case b[pos] == ']':
		return s.fetchFlowCollectionEnd(yamlh.FLOW_SEQUENCE_END_TOKEN)
	case b[pos] == '}':
		return s.fetchFlowCollectionEnd(yamlh.FLOW_MAPPING_END_TOKEN)
	case b[pos] == ',':
		return s.fetchFlowEntry()
	case b[pos] == '-' && yamlh.IsBlankZ(b, pos+1):
		return s.fetchBlockEntry()
	case b[pos] == '?' && (s.flowLevel > 0 || yamlh.IsBlankZ(b, pos+1)):
		return s.fetchKey()
	case b[pos] == ':' && (s.flowLevel > 0 || yamlh.IsBlankZ(b, pos+1)):
		return s.fetchValue()
	case b[pos] == '*':
		return s.fetchAnchor(yamlh.ALIAS_TOKEN)
	case b[pos] == '&':
		return s.fetchAnchor(yamlh.ANCHOR_TOKEN)
	case b[pos] == '!':
		return s.fetchTag()
	case b[pos] == '|' && s.flowLevel == 0:
		return s.fetchBlockScalar(true)
	case b[pos] == '>' && s.flowLevel == 0:
		return s.fetchBlockScalar(false)
	case b[pos] == '\'':
		return s.fetchFlowScalar(true)
	case b[pos] == '"':
		return s.fetchFlowScalar(false)
	}

	// A plain scalar may start with any non-blank character except the
	// indicators. '-', '?' and ':' may start one when followed by a
	// non-blank character.
	if !(yamlh.IsBlankZ(b, pos) || isIndicator(b[pos])) ||
		(b[pos] == '-' && !yamlh.IsBlank(b, pos+1)) ||
		(s.flowLevel == 0 && (b[pos] == '?' || b[pos] == ':') && !yamlh.IsBlankZ(b, pos+1)) {
		return s.fetchPlainScalar()
	}

	return s.errorf(yamlh.KindUnexpectedToken, "while scanning for the next token", s.mark, s.mark,
		"found character that cannot start any token")
}

func isIndicator(c byte) bool {
	switch c {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return true
	}
	return false
}

func (s *Scanner) simpleKeyIsValid(key *yamlh.SimpleKey) (bool, error) {
	if !key.Possible {
		return false, nil
	}
	if key.Mark.Line < s.mark.Line || key.Mark.Pos+maxSimpleKeyLength < s.mark.Pos {
		if key.Required {
			return false, s.errorf(yamlh.KindUnexpectedToken, "while scanning a simple key", key.Mark, s.mark,
				"could not find expected ':'")
		}
		key.Possible = false
		return false, nil
	}
	return true, nil
}

// Save a potential simple key at the current position.
func (s *Scanner) saveSimpleKey() error {
	// A simple key is required in the block context when the current
	// column coincides with the indentation level.
	required := s.flowLevel == 0 && s.indent == s.mark.Column

	if !s.simpleKeyAllowed {
		return nil
	}
	key := yamlh.SimpleKey{
		Possible:    true,
		Required:    required,
		TokenNumber: s.parsed + (len(s.tokens) - s.head),
		Mark:        s.mark,
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeys[len(s.simpleKeys)-1] = key
	s.simpleKeysByTok[key.TokenNumber] = len(s.simpleKeys) - 1
	return nil
}

// Remove the potential simple key at the current flow level.
func (s *Scanner) removeSimpleKey() error {
	i := len(s.simpleKeys) - 1
	if s.simpleKeys[i].Possible {
		if s.simpleKeys[i].Required {
			return s.errorf(yamlh.KindUnexpectedToken, "while scanning a simple key", s.simpleKeys[i].Mark, s.mark,
				"could not find expected ':'")
		}
		s.simpleKeys[i].Possible = false
		delete(s.simpleKeysByTok, s.simpleKeys[i].TokenNumber)
	}
	return nil
}

func (s *Scanner) increaseFlowLevel() error {
	s.simpleKeys = append(s.simpleKeys, yamlh.SimpleKey{
		TokenNumber: s.parsed + (len(s.tokens) - s.head),
		Mark:        s.mark,
	})
	s.flowLevel++
	if s.flowLevel > s.maxDepth {
		return s.errorf(yamlh.KindDepthExceeded, "", s.mark, s.mark, "exceeded max depth of %d", s.maxDepth)
	}
	return nil
}

func (s *Scanner) decreaseFlowLevel() {
	if s.flowLevel > 0 {
		s.flowLevel--
		last := len(s.simpleKeys) - 1
		// The placeholder pushed for the level shares its token number with
		// a key saved for the opening bracket one level up.
		tn := s.simpleKeys[last].TokenNumber
		if idx, ok := s.simpleKeysByTok[tn]; ok && idx == last {
			delete(s.simpleKeysByTok, tn)
		}
		s.simpleKeys = s.simpleKeys[:last]
	}
}

// Push the current indentation level and insert a collection start token
// when column is deeper than the current level. number is the absolute
// token number to insert at, or -1 to append.
func (s *Scanner) rollIndent(column, number int, typ yamlh.TokenType, mark yamlh.Mark) error {
	if s.flowLevel > 0 {
		return nil
	}
	if s.indent >= column {
		return nil
	}
	s.indents = append(s.indents, s.indent)
	s.indent = column
	if len(s.indents) > s.maxDepth {
		return s.errorf(yamlh.KindDepthExceeded, "", mark, mark, "exceeded max depth of %d", s.maxDepth)
	}
	if number > -1 {
		number -= s.parsed
	}
	s.insertToken(number, yamlh.Token{Type: typ, Start: mark, End: mark})
	return nil
}

// Pop indentation levels deeper than column, appending a BLOCK-END for each.
func (s *Scanner) unrollIndent(column int) {
	if s.flowLevel > 0 {
		return
	}
	for s.indent > column {
		s.insertToken(-1, yamlh.Token{Type: yamlh.BLOCK_END_TOKEN, Start: s.mark, End: s.mark})
		s.indent = s.indents[len(s.indents)-1]
		s.indents = s.indents[:len(s.indents)-1]
	}
}

func (s *Scanner) fetchStreamStart() {
	s.indent = -1
	s.simpleKeys = append(s.simpleKeys, yamlh.SimpleKey{})
	s.simpleKeysByTok = make(map[int]int)
	s.simpleKeyAllowed = true
	s.streamStart = true
	s.insertToken(-1, yamlh.Token{Type: yamlh.STREAM_START_TOKEN, Start: s.mark, End: s.mark})
}

func (s *Scanner) fetchStreamEnd() error {
	// Force a new line.
	if s.mark.Column != 0 {
		s.mark.Column = 0
		s.mark.Line++
	}
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	s.streamEnd = true
	s.insertToken(-1, yamlh.Token{Type: yamlh.STREAM_END_TOKEN, Start: s.mark, End: s.mark})
	return nil
}

func (s *Scanner) fetchDirective() error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	tok, err := s.scanDirective()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchDocumentIndicator(typ yamlh.TokenType) error {
	s.unrollIndent(-1)
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	start := s.mark
	s.skip()
	s.skip()
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: typ, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchFlowCollectionStart(typ yamlh.TokenType) error {
	// '[' and '{' may start a simple key.
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	if err := s.increaseFlowLevel(); err != nil {
		return err
	}
	s.simpleKeyAllowed = true
	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: typ, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchFlowCollectionEnd(typ yamlh.TokenType) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.decreaseFlowLevel()
	// No simple keys after ']' and '}'.
	s.simpleKeyAllowed = false
	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: typ, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchFlowEntry() error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = true
	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: yamlh.FLOW_ENTRY_TOKEN, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchBlockEntry() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return s.errorf(yamlh.KindUnexpectedToken, "", s.mark, s.mark,
				"block sequence entries are not allowed in this context")
		}
		if err := s.rollIndent(s.mark.Column, -1, yamlh.BLOCK_SEQUENCE_START_TOKEN, s.mark); err != nil {
			return err
		}
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = true
	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: yamlh.BLOCK_ENTRY_TOKEN, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchKey() error {
	if s.flowLevel == 0 {
		if !s.simpleKeyAllowed {
			return s.errorf(yamlh.KindUnexpectedToken, "", s.mark, s.mark,
				"mapping keys are not allowed in this context")
		}
		if err := s.rollIndent(s.mark.Column, -1, yamlh.BLOCK_MAPPING_START_TOKEN, s.mark); err != nil {
			return err
		}
	}
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = s.flowLevel == 0
	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: yamlh.KEY_TOKEN, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchValue() error {
	key := &s.simpleKeys[len(s.simpleKeys)-1]

	valid, err := s.simpleKeyIsValid(key)
	if err != nil {
		return err
	}
	if valid {
		s.insertToken(key.TokenNumber-s.parsed, yamlh.Token{Type: yamlh.KEY_TOKEN, Start: key.Mark, End: key.Mark})
		if err := s.rollIndent(key.Mark.Column, key.TokenNumber, yamlh.BLOCK_MAPPING_START_TOKEN, key.Mark); err != nil {
			return err
		}
		key.Possible = false
		delete(s.simpleKeysByTok, key.TokenNumber)
		// A simple key cannot follow another simple key.
		s.simpleKeyAllowed = false
	} else {
		// The ':' follows a complex key, or starts a value with an empty key.
		if s.flowLevel == 0 {
			if !s.simpleKeyAllowed {
				return s.errorf(yamlh.KindUnexpectedToken, "", s.mark, s.mark,
					"mapping values are not allowed in this context")
			}
			if err := s.rollIndent(s.mark.Column, -1, yamlh.BLOCK_MAPPING_START_TOKEN, s.mark); err != nil {
				return err
			}
		}
		s.simpleKeyAllowed = s.flowLevel == 0
	}

	start := s.mark
	s.skip()
	s.insertToken(-1, yamlh.Token{Type: yamlh.VALUE_TOKEN, Start: start, End: s.mark})
	return nil
}

func (s *Scanner) fetchAnchor(typ yamlh.TokenType) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	tok, err := s.scanAnchor(typ)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchTag() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	tok, err := s.scanTag()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchBlockScalar(literal bool) error {
	if err := s.removeSimpleKey(); err != nil {
		return err
	}
	// A simple key may follow a block scalar.
	s.simpleKeyAllowed = true
	tok, err := s.scanBlockScalar(literal)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchFlowScalar(single bool) error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	tok, err := s.scanFlowScalar(single)
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

func (s *Scanner) fetchPlainScalar() error {
	if err := s.saveSimpleKey(); err != nil {
		return err
	}
	s.simpleKeyAllowed = false
	tok, err := s.scanPlainScalar()
	if err != nil {
		return err
	}
	s.insertToken(-1, tok)
	return nil
}

// Eat blanks, comments and line breaks up to the next token.
//
// Tabs are allowed in the flow context, after indicators, and on lines
// that hold nothing but blanks and a comment. A tab in the indentation of
// a block context line with content is an error.
func (s *Scanner) scanToNextToken() error {
	for {
		if s.mark.Column == 0 && yamlh.IsBOM(s.buf, s.pos) {
			s.skip()
		}

		for {
			if s.ch() == ' ' {
				s.skip()
				continue
			}
			if s.ch() == '\t' {
				if s.flowLevel == 0 && s.atLineIndent() && !s.restIsBlank() {
					return s.errorf(yamlh.KindMalformedIndentation, "", s.mark, s.mark,
						"found a tab character where an indentation space is expected")
				}
				s.skip()
				continue
			}
			break
		}

		if s.ch() == '#' {
			for !yamlh.IsBreakZ(s.buf, s.pos) {
				s.skip()
			}
		}

		if !yamlh.IsBreak(s.buf, s.pos) {
			return nil
		}
		s.skipLine()
		// In the block context, a new line may start a simple key.
		if s.flowLevel == 0 {
			s.simpleKeyAllowed = true
		}
	}
}
