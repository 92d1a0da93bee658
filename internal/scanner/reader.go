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
	"bytes"
	"unicode/utf8"

	"github.com/willabides/yamlgraph/internal/yamlh"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// padding is the number of NUL bytes appended after the input so the
// character classes can look up to three bytes ahead without bounds checks.
const padding = 4

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func newReaderError(text []byte, pos int, problem string) error {
	return yamlh.NewError(yamlh.KindReader, markAt(text, pos), problem)
}

// decodeInput converts raw input to validated UTF-8 followed by padding.
//
// UTF-16 input is recognised by its byte order mark only. A UTF-8 byte
// order mark is dropped.
func decodeInput(raw []byte) ([]byte, error) {
	var text []byte
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
		if err != nil {
			return nil, yamlh.NewError(yamlh.KindReader, yamlh.Mark{}, "invalid UTF-16 input: "+err.Error())
		}
		text = decoded
	case bytes.HasPrefix(raw, bomUTF8):
		text = raw[len(bomUTF8):]
	default:
		text = raw
	}

	for pos := 0; pos < len(text); {
		r, w := utf8.DecodeRune(text[pos:])
		if r == utf8.RuneError && w <= 1 {
			return nil, newReaderError(text, pos, "invalid UTF-8 octet")
		}
		if !yamlh.IsPrintable(r) {
			return nil, newReaderError(text, pos, "control characters are not allowed")
		}
		pos += w
	}

	buf := make([]byte, len(text)+padding)
	copy(buf, text)
	return buf, nil
}

// markAt computes the mark of byte offset pos in text.
func markAt(text []byte, pos int) yamlh.Mark {
	mark := yamlh.Mark{}
	for i := 0; i < pos && i < len(text); {
		_, w := utf8.DecodeRune(text[i:])
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			w = 2
			mark.Line++
			mark.Column = 0
		case text[i] == '\n' || text[i] == '\r':
			mark.Line++
			mark.Column = 0
		default:
			mark.Column++
		}
		i += w
		mark.Pos = i
	}
	return mark
}
