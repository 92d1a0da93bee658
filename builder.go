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
	"fmt"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// Builder is an EventHandler that materializes one document into a new
// Arena. An alias appends the id of the anchored node instead of copying
// it, which is how shared and cyclic structure comes about.
//
// A Builder handles a single document. Events that do not nest properly
// are a bug in the producer and cause a panic.
type Builder struct {
	nodes   []nodeData
	anchors map[string]int
	stack   []int
	root    int
	started bool
	done    *Arena
}

var _ EventHandler = (*Builder)(nil)

// NewBuilder returns a Builder waiting for OnDocumentStart.
func NewBuilder() *Builder {
	return &Builder{root: -1}
}

// Root returns the root of the completed document, or an undefined Node if
// the document has not ended.
func (b *Builder) Root() Node {
	if b.done == nil || b.root < 0 {
		return Node{}
	}
	return Node{arena: b.done, id: b.root}
}

func (b *Builder) OnDocumentStart(Mark) error {
	if b.started {
		failf("document started twice")
	}
	b.started = true
	b.anchors = map[string]int{}
	return nil
}

func (b *Builder) OnDocumentEnd() error {
	b.mustBeOpen()
	if len(b.stack) != 0 {
		failf("document ended with %d open collections", len(b.stack))
	}
	if b.root < 0 {
		failf("document ended without a root node")
	}
	b.done = newArena(b.nodes)
	b.nodes = nil
	// Anchor names only matter while aliases are being resolved.
	b.anchors = nil
	return nil
}

func (b *Builder) OnNull(mark Mark, anchor string) error {
	b.mustBeOpen()
	b.add(nodeData{kind: NullNode, mark: mark, anchor: anchor})
	return nil
}

func (b *Builder) OnAlias(mark Mark, anchor string) error {
	b.mustBeOpen()
	id, ok := b.anchors[anchor]
	if !ok {
		return yamlh.NewError(yamlh.KindUnknownAlias, mark, fmt.Sprintf("unknown anchor '%s' referenced", anchor))
	}
	b.attach(id)
	return nil
}

func (b *Builder) OnScalar(mark Mark, tag, anchor string, style ScalarStyle, value string) error {
	b.mustBeOpen()
	b.add(nodeData{
		kind:        ScalarNode,
		tag:         tag,
		anchor:      anchor,
		value:       value,
		mark:        mark,
		scalarStyle: style,
	})
	return nil
}

func (b *Builder) OnSequenceStart(mark Mark, tag, anchor string, style CollectionStyle) error {
	b.mustBeOpen()
	id := b.add(nodeData{
		kind:            SequenceNode,
		tag:             tag,
		anchor:          anchor,
		mark:            mark,
		collectionStyle: style,
	})
	b.stack = append(b.stack, id)
	return nil
}

func (b *Builder) OnSequenceEnd() error {
	b.pop(SequenceNode)
	return nil
}

func (b *Builder) OnMapStart(mark Mark, tag, anchor string, style CollectionStyle) error {
	b.mustBeOpen()
	id := b.add(nodeData{
		kind:            MapNode,
		tag:             tag,
		anchor:          anchor,
		mark:            mark,
		collectionStyle: style,
	})
	b.stack = append(b.stack, id)
	return nil
}

func (b *Builder) OnMapEnd() error {
	id := b.pop(MapNode)
	if len(b.nodes[id].children)%2 != 0 {
		failf("map ended with a key and no value")
	}
	return nil
}

// add stores a new node, registers its anchor before any child can refer to
// it, and attaches it to the open collection.
func (b *Builder) add(d nodeData) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, d)
	if d.anchor != "" {
		b.anchors[d.anchor] = id
	}
	b.attach(id)
	return id
}

func (b *Builder) attach(id int) {
	if len(b.stack) == 0 {
		if b.root >= 0 {
			failf("second root node in one document")
		}
		b.root = id
		return
	}
	parent := &b.nodes[b.stack[len(b.stack)-1]]
	parent.children = append(parent.children, id)
}

func (b *Builder) pop(kind NodeType) int {
	b.mustBeOpen()
	if len(b.stack) == 0 {
		failf("%s end without a start", kind)
	}
	id := b.stack[len(b.stack)-1]
	if b.nodes[id].kind != kind {
		failf("%s end closes a %s", kind, b.nodes[id].kind)
	}
	b.stack = b.stack[:len(b.stack)-1]
	return id
}

func (b *Builder) mustBeOpen() {
	if !b.started || b.done != nil {
		failf("event outside of a document")
	}
}

func failf(format string, args ...interface{}) {
	panic("yamlgraph: internal error: " + fmt.Sprintf(format, args...))
}
