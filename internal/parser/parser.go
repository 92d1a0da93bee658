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

// Package parser drives the scanner's tokens through the YAML grammar and
// reports each document to an yamlh.EventHandler.
package parser

import (
	"errors"
	"io"

	"github.com/willabides/yamlgraph/internal/scanner"
	"github.com/willabides/yamlgraph/internal/yamlh"
)

// ErrNotLoaded is returned by HandleNextDocument before Load.
var ErrNotLoaded = errors.New("parser: no input loaded")

// Option configures a Parser.
type Option func(*Parser)

// WithPersistDirectives keeps %YAML and %TAG directives in effect for the
// documents that follow the one that declared them.
func WithPersistDirectives(persist bool) Option {
	return func(p *Parser) {
		p.persist = persist
	}
}

// WithMaxDepth bounds the nesting of collections. Values below 1 select
// scanner.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 1 {
			depth = scanner.DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// Parser is a recursive descent parser over one input stream. It is not
// safe for concurrent use.
type Parser struct {
	persist  bool
	maxDepth int

	scanner    *scanner.Scanner
	directives *Directives
	depth      int
	err        error

	streamStarted bool
	// The previous document was closed by '...', so the next one may be
	// implicit and may carry directives.
	ended bool
}

// New returns a parser with no input.
func New(opts ...Option) *Parser {
	p := &Parser{
		maxDepth: scanner.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads all of r and resets the parser to the start of it.
func (p *Parser) Load(r io.Reader) error {
	s, err := scanner.NewReader(r, scanner.WithMaxDepth(p.maxDepth))
	return p.reset(s, err)
}

// LoadBytes resets the parser to the start of input.
func (p *Parser) LoadBytes(input []byte) error {
	s, err := scanner.New(input, scanner.WithMaxDepth(p.maxDepth))
	return p.reset(s, err)
}

func (p *Parser) reset(s *scanner.Scanner, err error) error {
	p.scanner = s
	p.directives = NewDirectives()
	p.depth = 0
	p.err = err
	p.streamStarted = false
	p.ended = true
	return err
}

// Text returns the decoded input, or nil before a successful Load.
func (p *Parser) Text() []byte {
	if p.scanner == nil {
		return nil
	}
	return p.scanner.Text()
}

// Directives returns the directive table of the current or last document.
func (p *Parser) Directives() *Directives {
	return p.directives
}

// HandleNextDocument sends the events of the next document to h. It returns
// false without error at the end of the stream. After an error every later
// call returns the same error.
func (p *Parser) HandleNextDocument(h yamlh.EventHandler) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	if p.scanner == nil {
		return false, ErrNotLoaded
	}
	found, err := p.parseDocument(h)
	if err != nil {
		p.err = err
		return false, err
	}
	return found, nil
}

func (p *Parser) peek() (*yamlh.Token, error) {
	return p.scanner.Peek()
}

func (p *Parser) skip() {
	p.scanner.Skip()
}

func unexpected(context string, contextMark yamlh.Mark, tok *yamlh.Token, problem string) error {
	return yamlh.NewContextError(yamlh.KindUnexpectedToken, context, contextMark, tok.Start, problem)
}
