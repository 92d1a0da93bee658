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
	"io"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// yaml.v3 only emits anchors made of these characters.
var v3AnchorName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ToYAMLv3 converts the graph rooted at n to a yaml.v3 document node. The
// first occurrence of a shared node carries an anchor and later occurrences
// become alias nodes pointing at it, so cycles convert without recursion
// into themselves.
func ToYAMLv3(n Node) (*yaml.Node, error) {
	if _, err := n.data(); err != nil {
		return nil, err
	}
	shared, err := sharedNodes(n)
	if err != nil {
		return nil, err
	}
	c := &v3converter{
		arena:  n.arena,
		shared: shared,
		done:   map[int]*yaml.Node{},
		used:   map[string]bool{},
	}
	root, err := c.node(n.id)
	if err != nil {
		return nil, err
	}
	mark := n.Mark()
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Line:    mark.Line + 1,
		Column:  mark.Column + 1,
		Content: []*yaml.Node{root},
	}, nil
}

// Encode writes each document to w as YAML text, separated by "---".
func Encode(w io.Writer, docs ...Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for i, doc := range docs {
		v3, err := ToYAMLv3(doc)
		if err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if err := enc.Encode(v3); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
	}
	return enc.Close()
}

type v3converter struct {
	arena   *Arena
	shared  map[int]bool
	done    map[int]*yaml.Node
	used    map[string]bool
	counter int
}

func (c *v3converter) anchorName(d *nodeData) string {
	name := d.anchor
	for !v3AnchorName.MatchString(name) || c.used[name] {
		c.counter++
		name = "anchor" + strconv.Itoa(c.counter)
	}
	c.used[name] = true
	return name
}

func (c *v3converter) node(id int) (*yaml.Node, error) {
	d, err := c.arena.lookup(id)
	if err != nil {
		return nil, err
	}
	if target, ok := c.done[id]; ok {
		return &yaml.Node{
			Kind:   yaml.AliasNode,
			Value:  target.Anchor,
			Alias:  target,
			Line:   d.mark.Line + 1,
			Column: d.mark.Column + 1,
		}, nil
	}
	out := &yaml.Node{
		Line:   d.mark.Line + 1,
		Column: d.mark.Column + 1,
		Tag:    Node{arena: c.arena, id: id}.ShortTag(),
	}
	if c.shared[id] {
		out.Anchor = c.anchorName(d)
	}
	c.done[id] = out
	if d.tag != "" && d.tag != yamlh.PLAIN_NON_SPECIFIC_TAG && d.tag != yamlh.QUOTED_NON_SPECIFIC_TAG {
		out.Style |= yaml.TaggedStyle
	}
	switch d.kind {
	case NullNode:
		out.Kind = yaml.ScalarNode
		out.Value = "null"
	case ScalarNode:
		out.Kind = yaml.ScalarNode
		out.Value = d.value
		switch d.scalarStyle {
		case SingleQuotedStyle:
			out.Style |= yaml.SingleQuotedStyle
		case DoubleQuotedStyle:
			out.Style |= yaml.DoubleQuotedStyle
		case LiteralStyle:
			out.Style |= yaml.LiteralStyle
		case FoldedStyle:
			out.Style |= yaml.FoldedStyle
		}
	case SequenceNode, MapNode:
		out.Kind = yaml.SequenceNode
		if d.kind == MapNode {
			out.Kind = yaml.MappingNode
		}
		if d.collectionStyle == FlowStyle {
			out.Style |= yaml.FlowStyle
		}
		out.Content = make([]*yaml.Node, 0, len(d.children))
		for _, child := range d.children {
			v3child, err := c.node(child)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, v3child)
		}
	}
	return out, nil
}
