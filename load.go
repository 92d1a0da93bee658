//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package yamlgraph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/willabides/yamlgraph/internal/diag"
	"github.com/willabides/yamlgraph/internal/logging"
	"github.com/willabides/yamlgraph/internal/parser"
	"github.com/willabides/yamlgraph/internal/termcolor"
	"github.com/willabides/yamlgraph/internal/yamlh"
)

// Loader runs the scanner, parser and builder over whole inputs. A Loader
// holds only its options, so one Loader may be used from several
// goroutines.
type Loader struct {
	managed           bool
	diagnostics       io.Writer
	color             ColorMode
	width             int
	logger            *log.Logger
	persistDirectives bool
	maxDepth          int
}

// NewLoader returns an unmanaged Loader unless opts say otherwise.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		diagnostics: os.Stderr,
		color:       ColorAuto,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) log() *log.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.Default()
}

// Load returns the first document of r. Anything after the first document
// is not read for errors. An empty stream gives an undefined Node and no
// error.
func (l *Loader) Load(r io.Reader) (Node, error) {
	input, err := l.read(r)
	if err != nil {
		return Node{}, err
	}
	return l.loadFirst(input)
}

// LoadString is Load over a string.
func (l *Loader) LoadString(s string) (Node, error) {
	return l.loadFirst([]byte(s))
}

// LoadFile is Load over the contents of the named file. A file that cannot
// be read gives an error matching ErrBadFile that wraps the *fs.PathError.
func (l *Loader) LoadFile(path string) (Node, error) {
	input, err := l.readFile(path)
	if err != nil {
		return Node{}, err
	}
	return l.loadFirst(input)
}

// LoadAll returns every document of r in order, each in its own Arena. The
// first error aborts the whole stream and no documents are returned.
func (l *Loader) LoadAll(r io.Reader) (Documents, error) {
	input, err := l.read(r)
	if err != nil {
		return nil, err
	}
	return l.loadAll(input)
}

// LoadAllString is LoadAll over a string.
func (l *Loader) LoadAllString(s string) (Documents, error) {
	return l.loadAll([]byte(s))
}

// LoadAllFromFile is LoadAll over the contents of the named file.
func (l *Loader) LoadAllFromFile(path string) (Documents, error) {
	input, err := l.readFile(path)
	if err != nil {
		return nil, err
	}
	return l.loadAll(input)
}

func (l *Loader) newParser() *parser.Parser {
	return parser.New(
		parser.WithPersistDirectives(l.persistDirectives),
		parser.WithMaxDepth(l.maxDepth),
	)
}

func (l *Loader) read(r io.Reader) ([]byte, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, l.fail(nil, &yamlh.Error{
			Kind:    yamlh.KindReader,
			Message: "read error: " + err.Error(),
			Err:     err,
		})
	}
	return input, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	l.log().Debug("reading file", logging.FieldPath, path)
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, l.fail(nil, &yamlh.Error{
			Kind:    yamlh.KindBadFile,
			Message: "bad file",
			Err:     err,
		})
	}
	return input, nil
}

func (l *Loader) loadFirst(input []byte) (Node, error) {
	p := l.newParser()
	if err := p.LoadBytes(input); err != nil {
		return Node{}, l.fail(input, err)
	}
	b := NewBuilder()
	found, err := p.HandleNextDocument(b)
	if err != nil {
		return Node{}, l.fail(l.text(p, input), err)
	}
	if !found {
		l.log().Debug("no documents in input", logging.FieldBytes, len(input))
		return Node{}, nil
	}
	root := b.Root()
	l.log().Debug("loaded document", logging.FieldNodes, root.Arena().Len())
	return root, nil
}

func (l *Loader) loadAll(input []byte) (Documents, error) {
	p := l.newParser()
	if err := p.LoadBytes(input); err != nil {
		return nil, l.fail(input, err)
	}
	docs := Documents{}
	for {
		b := NewBuilder()
		found, err := p.HandleNextDocument(b)
		if err != nil {
			docs.Release()
			return nil, l.fail(l.text(p, input), err)
		}
		if !found {
			break
		}
		docs = append(docs, b.Root())
	}
	l.log().Debug("loaded stream", logging.FieldDocuments, len(docs))
	return docs, nil
}

func (l *Loader) text(p *parser.Parser, input []byte) []byte {
	if text := p.Text(); text != nil {
		return text
	}
	return input
}

// fail logs err, renders it in managed mode, and returns it unchanged.
func (l *Loader) fail(text []byte, err error) error {
	var yerr *yamlh.Error
	if !errors.As(err, &yerr) {
		l.log().Debug("load failed", logging.FieldError, err)
		return err
	}
	l.log().Debug("load failed",
		logging.FieldKind, yerr.Kind.String(),
		logging.FieldLine, yerr.Mark.Line+1,
		logging.FieldColumn, yerr.Mark.Column+1,
		logging.FieldManaged, l.managed,
		logging.FieldError, err,
	)
	if !l.managed || !yerr.HasMark() {
		return err
	}
	width := l.width
	if width < 1 {
		width = termcolor.Width(l.diagnostics)
	}
	opts := diag.Options{
		Width: width,
		Color: termcolor.Resolve(l.color),
	}
	if rerr := diag.Render(l.diagnostics, text, yerr, opts); rerr != nil {
		l.log().Debug("writing diagnostic", logging.FieldError, rerr)
	}
	return err
}

//nolint:gochecknoglobals // shared unmanaged loader for the package functions
var defaultLoader = NewLoader()

// Load returns the first document of r using an unmanaged Loader.
func Load(r io.Reader) (Node, error) {
	return defaultLoader.Load(r)
}

// LoadString returns the first document of s using an unmanaged Loader.
func LoadString(s string) (Node, error) {
	return defaultLoader.LoadString(s)
}

// LoadFile returns the first document of the named file using an
// unmanaged Loader.
func LoadFile(path string) (Node, error) {
	return defaultLoader.LoadFile(path)
}

// LoadAll returns every document of r using an unmanaged Loader.
func LoadAll(r io.Reader) (Documents, error) {
	return defaultLoader.LoadAll(r)
}

// LoadAllString returns every document of s using an unmanaged Loader.
func LoadAllString(s string) (Documents, error) {
	return defaultLoader.LoadAllString(s)
}

// LoadAllFromFile returns every document of the named file using an
// unmanaged Loader.
func LoadAllFromFile(path string) (Documents, error) {
	return defaultLoader.LoadAllFromFile(path)
}

// MustLoadString is LoadString that panics on error. It is meant for
// literals in tests and initializers.
func MustLoadString(s string) Node {
	n, err := LoadString(s)
	if err != nil {
		panic(fmt.Sprintf("yamlgraph: MustLoadString: %v", err))
	}
	return n
}
