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
	"github.com/willabides/yamlgraph/internal/yamlh"
)

const maxVersionNumberLength = 2

// Scan a VERSION-DIRECTIVE or TAG-DIRECTIVE token.
//
// Scope:
//
//	%YAML    1.2    # a comment \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanDirective() (yamlh.Token, error) {
	const context = "while scanning a directive"
	start := s.mark
	s.skip()

	name, err := s.scanDirectiveName(start)
	if err != nil {
		return yamlh.Token{}, err
	}

	var tok yamlh.Token
	switch name {
	case "YAML":
		major, minor, err := s.scanVersionDirectiveValue(start)
		if err != nil {
			return yamlh.Token{}, err
		}
		tok = yamlh.Token{
			Type:  yamlh.VERSION_DIRECTIVE_TOKEN,
			Start: start,
			End:   s.mark,
			Major: major,
			Minor: minor,
		}
	case "TAG":
		handle, prefix, err := s.scanTagDirectiveValue(start)
		if err != nil {
			return yamlh.Token{}, err
		}
		tok = yamlh.Token{
			Type:   yamlh.TAG_DIRECTIVE_TOKEN,
			Start:  start,
			End:    s.mark,
			Value:  handle,
			Prefix: prefix,
		}
	default:
		return yamlh.Token{}, s.errorf(yamlh.KindUnknownDirective, context, start, start,
			"found unknown directive name %q", name)
	}

	// Eat the rest of the line including any comments.
	for yamlh.IsBlank(s.buf, s.pos) {
		s.skip()
	}
	if s.ch() == '#' {
		for !yamlh.IsBreakZ(s.buf, s.pos) {
			s.skip()
		}
	}
	if !yamlh.IsBreakZ(s.buf, s.pos) {
		return yamlh.Token{}, s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"did not find expected comment or line break")
	}
	s.skipLine()
	return tok, nil
}

// Scope:
//
//	%YAML   1.2     # a comment \n
//	 ^^^^
func (s *Scanner) scanDirectiveName(start yamlh.Mark) (string, error) {
	const context = "while scanning a directive"
	var name []byte
	for yamlh.IsAlpha(s.buf, s.pos) {
		name = s.read(name)
	}
	if len(name) == 0 {
		return "", s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"could not find expected directive name")
	}
	if !yamlh.IsBlankZ(s.buf, s.pos) {
		return "", s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"found unexpected non-alphabetical character")
	}
	return string(name), nil
}

// Scope:
//
//	%YAML   1.2     # a comment \n
//	     ^^^^^^
func (s *Scanner) scanVersionDirectiveValue(start yamlh.Mark) (major, minor int8, _ error) {
	for yamlh.IsBlank(s.buf, s.pos) {
		s.skip()
	}
	major, err := s.scanVersionDirectiveNumber(start)
	if err != nil {
		return 0, 0, err
	}
	if s.ch() != '.' {
		return 0, 0, s.errorf(yamlh.KindBadDirective, "while scanning a %YAML directive", start, s.mark,
			"did not find expected digit or '.' character")
	}
	s.skip()
	minor, err = s.scanVersionDirectiveNumber(start)
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

func (s *Scanner) scanVersionDirectiveNumber(start yamlh.Mark) (int8, error) {
	const context = "while scanning a %YAML directive"
	var value, length int8
	for yamlh.IsDigit(s.buf, s.pos) {
		length++
		if length > maxVersionNumberLength {
			return 0, s.errorf(yamlh.KindBadDirective, context, start, s.mark,
				"found extremely long version number")
		}
		value = value*10 + int8(yamlh.AsDigit(s.buf, s.pos))
		s.skip()
	}
	if length == 0 {
		return 0, s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"did not find expected version number")
	}
	return value, nil
}

// Scope:
//
//	%TAG    !yaml!  tag:yaml.org,2002:  \n
//	    ^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^
func (s *Scanner) scanTagDirectiveValue(start yamlh.Mark) (handle, prefix string, _ error) {
	const context = "while scanning a %TAG directive"
	for yamlh.IsBlank(s.buf, s.pos) {
		s.skip()
	}
	h, err := s.scanTagHandle(true, start)
	if err != nil {
		return "", "", err
	}
	if !yamlh.IsBlank(s.buf, s.pos) {
		return "", "", s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"did not find expected whitespace")
	}
	for yamlh.IsBlank(s.buf, s.pos) {
		s.skip()
	}
	p, err := s.scanTagURI(true, nil, start)
	if err != nil {
		return "", "", err
	}
	if !yamlh.IsBlankZ(s.buf, s.pos) {
		return "", "", s.errorf(yamlh.KindBadDirective, context, start, s.mark,
			"did not find expected whitespace or line break")
	}
	return string(h), string(p), nil
}

func (s *Scanner) scanAnchor(typ yamlh.TokenType) (yamlh.Token, error) {
	context := "while scanning an anchor"
	if typ == yamlh.ALIAS_TOKEN {
		context = "while scanning an alias"
	}
	start := s.mark
	s.skip()

	var name []byte
	for yamlh.IsAlpha(s.buf, s.pos) {
		name = s.read(name)
	}

	// The name must be followed by a blank or one of '?', ':', ',', ']',
	// '}', '%', '@' and '`'.
	c := s.ch()
	if len(name) == 0 || !(yamlh.IsBlankZ(s.buf, s.pos) || c == '?' || c == ':' || c == ',' ||
		c == ']' || c == '}' || c == '%' || c == '@' || c == '`') {
		return yamlh.Token{}, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
			"did not find expected alphabetic or numeric character")
	}
	return yamlh.Token{
		Type:  typ,
		Start: start,
		End:   s.mark,
		Value: string(name),
	}, nil
}

// Scan a TAG token. The handle is "" for verbatim tags and for the lone
// non-specific tag "!".
func (s *Scanner) scanTag() (yamlh.Token, error) {
	const context = "while scanning a tag"
	start := s.mark

	var handle, suffix []byte
	if s.at(1) == '<' {
		// Verbatim: !<uri>
		s.skip()
		s.skip()
		var err error
		suffix, err = s.scanTagURI(false, nil, start)
		if err != nil {
			return yamlh.Token{}, err
		}
		if s.ch() != '>' {
			return yamlh.Token{}, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
				"did not find the expected '>'")
		}
		s.skip()
	} else {
		// Either '!suffix' or '!handle!suffix'.
		var err error
		handle, err = s.scanTagHandle(false, start)
		if err != nil {
			return yamlh.Token{}, err
		}
		if len(handle) > 1 && handle[0] == '!' && handle[len(handle)-1] == '!' {
			suffix, err = s.scanTagURI(false, nil, start)
			if err != nil {
				return yamlh.Token{}, err
			}
		} else {
			// Not a handle after all; what was read belongs to the suffix.
			suffix, err = s.scanTagURI(false, handle, start)
			if err != nil {
				return yamlh.Token{}, err
			}
			handle = []byte{'!'}
			// The lone '!' tag.
			if len(suffix) == 0 {
				handle, suffix = suffix, handle
			}
		}
	}

	if !yamlh.IsBlankZ(s.buf, s.pos) && !(s.flowLevel > 0 && yamlh.IsFlowIndicator(s.buf, s.pos)) {
		return yamlh.Token{}, s.errorf(yamlh.KindUnexpectedToken, context, start, s.mark,
			"did not find expected whitespace or line break")
	}

	return yamlh.Token{
		Type:   yamlh.TAG_TOKEN,
		Start:  start,
		End:    s.mark,
		Value:  string(handle),
		Suffix: string(suffix),
	}, nil
}

func (s *Scanner) scanTagHandle(directive bool, start yamlh.Mark) ([]byte, error) {
	context := "while scanning a tag"
	kind := yamlh.KindUnexpectedToken
	if directive {
		context = "while scanning a %TAG directive"
		kind = yamlh.KindBadDirective
	}
	if s.ch() != '!' {
		return nil, s.errorf(kind, context, start, s.mark, "did not find expected '!'")
	}

	handle := s.read(nil)
	for yamlh.IsAlpha(s.buf, s.pos) {
		handle = s.read(handle)
	}

	if s.ch() == '!' {
		handle = s.read(handle)
	} else if directive && string(handle) != "!" {
		// In a %TAG directive the handle must be complete. In a tag it may
		// be the start of the suffix.
		return nil, s.errorf(kind, context, start, s.mark, "did not find expected '!'")
	}
	return handle, nil
}

func (s *Scanner) isURIChar() bool {
	if yamlh.IsAlpha(s.buf, s.pos) {
		return true
	}
	switch s.ch() {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', '.', '!', '~', '*', '\'', '(', ')', '%':
		return true
	case ',', '[', ']':
		// These end a tag inside a flow collection.
		return s.flowLevel == 0
	}
	return false
}

// Scan a tag URI. head holds characters already read by scanTagHandle,
// including the leading '!', which is dropped.
func (s *Scanner) scanTagURI(directive bool, head []byte, start yamlh.Mark) ([]byte, error) {
	context := "while parsing a tag"
	kind := yamlh.KindUnexpectedToken
	if directive {
		context = "while parsing a %TAG directive"
		kind = yamlh.KindBadDirective
	}

	var uri []byte
	hasTag := len(head) > 0
	if len(head) > 1 {
		uri = append(uri, head[1:]...)
	}

	for s.isURIChar() {
		if s.ch() == '%' {
			var err error
			uri, err = s.scanURIEscapes(kind, context, start, uri)
			if err != nil {
				return nil, err
			}
		} else {
			uri = s.read(uri)
		}
		hasTag = true
	}

	if !hasTag {
		return nil, s.errorf(kind, context, start, s.mark, "did not find expected tag URI")
	}
	return uri, nil
}

// Decode URI-escaped octets forming one UTF-8 character.
func (s *Scanner) scanURIEscapes(kind yamlh.ErrorKind, context string, start yamlh.Mark, dst []byte) ([]byte, error) {
	w := 1024
	for w > 0 {
		if !(s.ch() == '%' && yamlh.IsHex(s.buf, s.pos+1) && yamlh.IsHex(s.buf, s.pos+2)) {
			return nil, s.errorf(kind, context, start, s.mark, "did not find URI escaped octet")
		}
		octet := byte((yamlh.AsHex(s.buf, s.pos+1) << 4) + yamlh.AsHex(s.buf, s.pos+2))
		if w == 1024 {
			w = yamlh.Width(octet)
			if w == 0 {
				return nil, s.errorf(kind, context, start, s.mark, "found an incorrect leading UTF-8 octet")
			}
		} else if octet&0xC0 != 0x80 {
			return nil, s.errorf(kind, context, start, s.mark, "found an incorrect trailing UTF-8 octet")
		}
		dst = append(dst, octet)
		s.skip()
		s.skip()
		s.skip()
		w--
	}
	return dst, nil
}
