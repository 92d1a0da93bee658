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
)

// NodeType identifies the shape of a Node.
type NodeType int8

const (
	UndefinedNode NodeType = iota
	NullNode
	ScalarNode
	SequenceNode
	MapNode
)

func (t NodeType) String() string {
	switch t {
	case NullNode:
		return "null"
	case ScalarNode:
		return "scalar"
	case SequenceNode:
		return "sequence"
	case MapNode:
		return "map"
	}
	return "undefined"
}

// Node is a handle to a node in an Arena. The zero Node is undefined.
// Handles compare equal with == only when they refer to the same node.
type Node struct {
	arena *Arena
	id    int
}

// Pair is one entry of a map.
type Pair struct {
	Key   Node
	Value Node
}

func (n Node) data() (*nodeData, error) {
	return n.arena.lookup(n.id)
}

// IsValid reports whether n refers to a node in a live arena.
func (n Node) IsValid() bool {
	_, err := n.data()
	return err == nil
}

// Type returns UndefinedNode for invalid handles.
func (n Node) Type() NodeType {
	d, err := n.data()
	if err != nil {
		return UndefinedNode
	}
	return d.kind
}

func (n Node) IsNull() bool     { return n.Type() == NullNode }
func (n Node) IsScalar() bool   { return n.Type() == ScalarNode }
func (n Node) IsSequence() bool { return n.Type() == SequenceNode }
func (n Node) IsMap() bool      { return n.Type() == MapNode }

// Arena returns the arena that owns n, or nil for the zero Node.
func (n Node) Arena() *Arena {
	return n.arena
}

// Is reports whether n and other are the same node. Two aliases of one
// anchor are the same node.
func (n Node) Is(other Node) bool {
	return n.IsValid() && n.arena == other.arena && n.id == other.id
}

// Scalar returns the text of a scalar node.
func (n Node) Scalar() (string, error) {
	d, err := n.data()
	if err != nil {
		return "", err
	}
	if d.kind != ScalarNode {
		return "", invalidNodeError(fmt.Sprintf("scalar requested from a %s node", d.kind))
	}
	return d.value, nil
}

// Tag returns the resolved tag. Untagged plain scalars and collections have
// the tag "?", untagged quoted and block scalars have "!", and null nodes
// have "".
func (n Node) Tag() (string, error) {
	d, err := n.data()
	if err != nil {
		return "", err
	}
	return d.tag, nil
}

// Anchor returns the anchor the node was defined with, if any.
func (n Node) Anchor() string {
	d, err := n.data()
	if err != nil {
		return ""
	}
	return d.anchor
}

// Mark returns where the node starts in the input.
func (n Node) Mark() Mark {
	d, err := n.data()
	if err != nil {
		return Mark{}
	}
	return d.mark
}

// Style returns the presentation style of a scalar.
func (n Node) Style() ScalarStyle {
	d, err := n.data()
	if err != nil {
		return AnyScalarStyle
	}
	return d.scalarStyle
}

// CollectionStyle returns whether a sequence or map was written in block or
// flow style.
func (n Node) CollectionStyle() CollectionStyle {
	d, err := n.data()
	if err != nil {
		return AnyCollectionStyle
	}
	return d.collectionStyle
}

// Len returns the number of items of a sequence or entries of a map, and 0
// for every other node.
func (n Node) Len() int {
	d, err := n.data()
	if err != nil {
		return 0
	}
	switch d.kind {
	case SequenceNode:
		return len(d.children)
	case MapNode:
		return len(d.children) / 2
	}
	return 0
}

// Children returns the items of a sequence.
func (n Node) Children() ([]Node, error) {
	d, err := n.data()
	if err != nil {
		return nil, err
	}
	if d.kind != SequenceNode {
		return nil, invalidNodeError(fmt.Sprintf("children requested from a %s node", d.kind))
	}
	children := make([]Node, len(d.children))
	for i, id := range d.children {
		children[i] = Node{arena: n.arena, id: id}
	}
	return children, nil
}

// Pairs returns the entries of a map in source order. Duplicate keys are
// all present.
func (n Node) Pairs() ([]Pair, error) {
	d, err := n.data()
	if err != nil {
		return nil, err
	}
	if d.kind != MapNode {
		return nil, invalidNodeError(fmt.Sprintf("pairs requested from a %s node", d.kind))
	}
	pairs := make([]Pair, len(d.children)/2)
	for i := range pairs {
		pairs[i] = Pair{
			Key:   Node{arena: n.arena, id: d.children[2*i]},
			Value: Node{arena: n.arena, id: d.children[2*i+1]},
		}
	}
	return pairs, nil
}

// Index returns item i of a sequence, or an undefined Node.
func (n Node) Index(i int) Node {
	d, err := n.data()
	if err != nil || d.kind != SequenceNode || i < 0 || i >= len(d.children) {
		return Node{}
	}
	return Node{arena: n.arena, id: d.children[i]}
}

// Get returns the value of the first entry of a map whose key is a scalar
// with the given text, or an undefined Node.
func (n Node) Get(key string) Node {
	d, err := n.data()
	if err != nil || d.kind != MapNode {
		return Node{}
	}
	for i := 0; i+1 < len(d.children); i += 2 {
		k, err := n.arena.lookup(d.children[i])
		if err != nil {
			return Node{}
		}
		if k.kind == ScalarNode && k.value == key {
			return Node{arena: n.arena, id: d.children[i+1]}
		}
	}
	return Node{}
}

func (n Node) String() string {
	d, err := n.data()
	if err != nil {
		return "<invalid>"
	}
	switch d.kind {
	case ScalarNode:
		return fmt.Sprintf("scalar(%q)", d.value)
	case SequenceNode:
		return fmt.Sprintf("sequence(len=%d)", len(d.children))
	case MapNode:
		return fmt.Sprintf("map(len=%d)", len(d.children)/2)
	}
	return d.kind.String()
}

// Documents is the result of LoadAll, one node per document.
type Documents []Node

// Release releases the arena of every document.
func (docs Documents) Release() {
	for _, doc := range docs {
		doc.arena.Release()
	}
}
