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
	"strconv"
)

// Emit replays the graph rooted at n to h as one document. A node reached
// more than once is emitted in full the first time, with an anchor, and as
// an alias afterwards. Anchors of the source are kept where their names
// are unique among the emitted anchors; other anchored nodes get a
// generated name.
func Emit(n Node, h EventHandler) error {
	if _, err := n.data(); err != nil {
		return err
	}
	e := &replay{
		arena:   n.arena,
		h:       h,
		names:   map[int]string{},
		used:    map[string]bool{},
		emitted: map[int]bool{},
	}
	shared, err := sharedNodes(n)
	if err != nil {
		return err
	}
	e.shared = shared
	if err := h.OnDocumentStart(n.Mark()); err != nil {
		return err
	}
	if err := e.node(n.id); err != nil {
		return err
	}
	return h.OnDocumentEnd()
}

// Clone builds a copy of the graph rooted at n in a new Arena by replaying
// it through a Builder. Shared nodes stay shared and cycles stay cycles.
func Clone(n Node) (Node, error) {
	b := NewBuilder()
	if err := Emit(n, b); err != nil {
		return Node{}, err
	}
	return b.Root(), nil
}

// sharedNodes returns the ids reachable from root more than once.
func sharedNodes(root Node) (map[int]bool, error) {
	refs := map[int]int{}
	stack := []int{root.id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		refs[id]++
		if refs[id] > 1 {
			continue
		}
		d, err := root.arena.lookup(id)
		if err != nil {
			return nil, err
		}
		stack = append(stack, d.children...)
	}
	shared := map[int]bool{}
	for id, count := range refs {
		if count > 1 {
			shared[id] = true
		}
	}
	return shared, nil
}

type replay struct {
	arena   *Arena
	h       EventHandler
	shared  map[int]bool
	names   map[int]string
	used    map[string]bool
	emitted map[int]bool
	counter int
}

// anchorFor names the anchor of node id, or returns "" when the node needs
// none.
func (e *replay) anchorFor(id int, d *nodeData) string {
	if d.anchor == "" && !e.shared[id] {
		return ""
	}
	name := d.anchor
	for name == "" || e.used[name] {
		e.counter++
		name = strconv.Itoa(e.counter)
	}
	e.used[name] = true
	e.names[id] = name
	return name
}

func (e *replay) node(id int) error {
	d, err := e.arena.lookup(id)
	if err != nil {
		return err
	}
	if e.emitted[id] {
		return e.h.OnAlias(d.mark, e.names[id])
	}
	e.emitted[id] = true
	anchor := e.anchorFor(id, d)
	switch d.kind {
	case NullNode:
		return e.h.OnNull(d.mark, anchor)
	case ScalarNode:
		return e.h.OnScalar(d.mark, d.tag, anchor, d.scalarStyle, d.value)
	case SequenceNode:
		if err := e.h.OnSequenceStart(d.mark, d.tag, anchor, d.collectionStyle); err != nil {
			return err
		}
		for _, child := range d.children {
			if err := e.node(child); err != nil {
				return err
			}
		}
		return e.h.OnSequenceEnd()
	case MapNode:
		if err := e.h.OnMapStart(d.mark, d.tag, anchor, d.collectionStyle); err != nil {
			return err
		}
		for _, child := range d.children {
			if err := e.node(child); err != nil {
				return err
			}
		}
		return e.h.OnMapEnd()
	}
	return invalidNodeError("cannot emit an undefined node")
}
