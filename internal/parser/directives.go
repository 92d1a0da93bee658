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

package parser

import (
	"fmt"
	"sort"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// DefaultTagDirectives are present in every directive table.
var DefaultTagDirectives = []yamlh.TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: yamlh.CORE_TAG_PREFIX},
}

// Directives is the %YAML and %TAG state that applies to a document.
type Directives struct {
	// Version is nil when no %YAML directive was seen.
	Version *yamlh.VersionDirective

	// Tags maps a tag handle to its prefix.
	Tags map[string]string

	// Directives declared for the current document. Used to reject
	// duplicates without rejecting persisted ones.
	versionDeclared bool
	declared        map[string]bool
}

// NewDirectives returns a table holding only the default tag handles.
func NewDirectives() *Directives {
	d := &Directives{}
	d.Reset()
	return d
}

// Reset restores the default table.
func (d *Directives) Reset() {
	d.Version = nil
	d.Tags = make(map[string]string, len(DefaultTagDirectives))
	for _, td := range DefaultTagDirectives {
		d.Tags[td.Handle] = td.Prefix
	}
	d.beginDocument()
}

// beginDocument forgets which directives were declared without dropping
// their values.
func (d *Directives) beginDocument() {
	d.versionDeclared = false
	d.declared = map[string]bool{}
}

// Add records a directive token.
func (d *Directives) Add(tok *yamlh.Token) error {
	const context = "while parsing directives"
	switch tok.Type {
	case yamlh.VERSION_DIRECTIVE_TOKEN:
		if d.versionDeclared {
			return yamlh.NewContextError(yamlh.KindDuplicateDirective, context, tok.Start, tok.Start,
				"found duplicate %YAML directive")
		}
		if tok.Major != 1 {
			return yamlh.NewContextError(yamlh.KindBadDirective, context, tok.Start, tok.Start,
				fmt.Sprintf("found incompatible YAML document version %d.%d", tok.Major, tok.Minor))
		}
		d.versionDeclared = true
		d.Version = &yamlh.VersionDirective{Major: tok.Major, Minor: tok.Minor}
	case yamlh.TAG_DIRECTIVE_TOKEN:
		if d.declared[tok.Value] {
			return yamlh.NewContextError(yamlh.KindDuplicateDirective, context, tok.Start, tok.Start,
				"found duplicate %TAG directive")
		}
		d.declared[tok.Value] = true
		d.Tags[tok.Value] = tok.Prefix
	default:
		panic("internal error: not a directive token: " + tok.Type.String())
	}
	return nil
}

// Resolve expands a tag token to a full tag. A verbatim tag and the lone
// '!' have an empty handle and are returned as they are.
func (d *Directives) Resolve(handle, suffix string, mark yamlh.Mark) (string, error) {
	if handle == "" {
		return suffix, nil
	}
	prefix, ok := d.Tags[handle]
	if !ok {
		return "", yamlh.NewContextError(yamlh.KindUnresolvedTag, "while parsing a node", mark, mark,
			fmt.Sprintf("found undefined tag handle %q", handle))
	}
	return prefix + suffix, nil
}

// List returns the tag directives sorted by handle, defaults included.
func (d *Directives) List() []yamlh.TagDirective {
	out := make([]yamlh.TagDirective, 0, len(d.Tags))
	for handle, prefix := range d.Tags {
		out = append(out, yamlh.TagDirective{Handle: handle, Prefix: prefix})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Handle < out[j].Handle
	})
	return out
}
