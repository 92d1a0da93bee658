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

package yamlgraph_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/willabides/yamlgraph"
)

var encodeTests = []struct {
	yaml string
	want string
}{
	{"a: 1\nb: 2\n", "a: 1\nb: 2\n"},
	{"a: &x 1\nb: *x\n", "a: &x 1\nb: *x\n"},
	{"[a, b]", "[a, b]\n"},
	{"a: 'b'", "a: 'b'\n"},
	{"a: \"1\"", "a: \"1\"\n"},
	{"a: ~", "a: null\n"},
	{"a:\n  b: c\n", "a:\n  b: c\n"},
	{"- x\n- y\n", "- x\n- y\n"},
	{"&a [*a]", "&a [*a]\n"},
	{"!local x", "!local x\n"},
	{"a: &x {b: 1}\nc: &x [2]\nd: *x\ne: x\n", "a: {b: 1}\nc: &x [2]\nd: *x\ne: x\n"},
}

func TestEncode(t *testing.T) {
	for _, item := range encodeTests {
		t.Run(item.yaml, func(t *testing.T) {
			root, err := yamlgraph.LoadString(item.yaml)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, yamlgraph.Encode(&buf, root))
			require.Equal(t, item.want, buf.String())
		})
	}
}

func TestEncodeDocuments(t *testing.T) {
	docs, err := yamlgraph.LoadAllString("a\n---\n[b]\n")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, yamlgraph.Encode(&buf, docs...))
	require.Equal(t, "a\n---\n[b]\n", buf.String())

	docs.Release()
	err = yamlgraph.Encode(&buf, docs...)
	require.ErrorIs(t, err, yamlgraph.ErrInvalidNode)
}

func TestToYAMLv3Sharing(t *testing.T) {
	root, err := yamlgraph.LoadString("x: &a {y: *a}\nz: *a\n")
	require.NoError(t, err)
	doc, err := yamlgraph.ToYAMLv3(root)
	require.NoError(t, err)
	require.Equal(t, yamlv3.DocumentNode, doc.Kind)

	m := doc.Content[0]
	require.Equal(t, yamlv3.MappingNode, m.Kind)
	x := m.Content[1]
	require.Equal(t, "a", x.Anchor)
	require.Equal(t, yamlv3.AliasNode, x.Content[1].Kind)
	require.Same(t, x, x.Content[1].Alias)
	require.Same(t, x, m.Content[3].Alias)

	var out struct {
		Z map[string]interface{} `yaml:"z"`
	}
	require.Error(t, m.Decode(&out), "yaml.v3 rejects the cycle")
}

func TestToYAMLv3Tags(t *testing.T) {
	root, err := yamlgraph.LoadString("[1, '1', !!str 2, ~, !e x]")
	require.NoError(t, err)
	doc, err := yamlgraph.ToYAMLv3(root)
	require.NoError(t, err)
	var tags []string
	var tagged []bool
	for _, item := range doc.Content[0].Content {
		tags = append(tags, item.Tag)
		tagged = append(tagged, item.Style&yamlv3.TaggedStyle != 0)
	}
	require.Equal(t, []string{"!!int", "!!str", "!!str", "!!null", "!e"}, tags)
	require.Equal(t, []bool{false, false, true, false, true}, tagged)
}

func TestToYAMLv3Invalid(t *testing.T) {
	_, err := yamlgraph.ToYAMLv3(yamlgraph.Node{})
	require.ErrorIs(t, err, yamlgraph.ErrInvalidNode)
}

// differentialTests are inputs both parsers accept. Their node shapes must
// match once tags, styles and anchors are ignored.
var differentialTests = []string{
	`{}`,
	`v: hi`,
	`v: true`,
	`v: 0b10`,
	`v: .Inf`,
	`123`,
	`canonical: 6.8523e+5`,
	`empty:`,
	`canonical: ~`,
	`~: null key`,
	`seq: [A,B]`,
	`seq: [A,B,C,]`,
	"seq:\n - A\n - B\n - C",
	"a: {b: c, 1: d}",
	"'1': '\"2\"'",
	"v:\n- A\n- 'B\n\n  C'\n",
	"v: !!float '1.1'",
	"%TAG !y! tag:yaml.org,2002:\n---\nv: !y!int '1'",
	"v: ! test",
	"a: &x 1\nb: &y 2\nc: *x\nd: *y\n",
	"a: &a {c: 1}\nb: *a",
	"a: {b: https://github.com/go-yaml/yaml}",
	"a: [https://github.com/go-yaml/yaml]",
	"a: 3s",
	"a: \"\\u00e9\\t\\x41\"",
	"a: |\n  line 1\n  line 2\n",
	"a: >-\n  folded\n  text\n\n  para\n",
	"? complex\n: key\n? [x]\n: y\n",
	"- - a\n  - b\n- c: d\n  e: f\n",
	"a:\n  - b\n  -\n  - c: d\n",
	"plain: multi\n  line\n  scalar\n",
	"{a: [1, {b: 2}], c: }",
	"--- text\n...\n",
	"[]: b\n",
	"{}: b\n",
	"- {}: x\n",
	"- []: x\n",
	"a: {}\n{}: b\n",
	"[[]]: x\n",
}

func TestDifferentialYAMLv3(t *testing.T) {
	for _, input := range differentialTests {
		t.Run(input, func(t *testing.T) {
			var want yamlv3.Node
			require.NoError(t, yamlv3.Unmarshal([]byte(input), &want))
			root, err := yamlgraph.LoadString(input)
			require.NoError(t, err)
			require.Equal(t, v3Shape(&want), graphShape(root))

			// and the converted graph matches what yaml.v3 read itself
			doc, err := yamlgraph.ToYAMLv3(root)
			require.NoError(t, err)
			require.Equal(t, v3Shape(&want), v3Shape(doc))
		})
	}
}

func graphShape(n yamlgraph.Node) string {
	switch n.Type() {
	case yamlgraph.NullNode:
		return "null"
	case yamlgraph.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "null"
		}
		s, _ := n.Scalar()
		return fmt.Sprintf("%q", s)
	case yamlgraph.SequenceNode:
		children, _ := n.Children()
		parts := make([]string, 0, len(children))
		for _, child := range children {
			parts = append(parts, graphShape(child))
		}
		return "[" + strings.Join(parts, ",") + "]"
	case yamlgraph.MapNode:
		pairs, _ := n.Pairs()
		parts := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			parts = append(parts, graphShape(pair.Key)+":"+graphShape(pair.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return "undefined"
}

func v3Shape(n *yamlv3.Node) string {
	switch n.Kind {
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return "undefined"
		}
		return v3Shape(n.Content[0])
	case yamlv3.AliasNode:
		return v3Shape(n.Alias)
	case yamlv3.ScalarNode:
		if n.ShortTag() == "!!null" {
			return "null"
		}
		return fmt.Sprintf("%q", n.Value)
	case yamlv3.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, child := range n.Content {
			parts = append(parts, v3Shape(child))
		}
		return "[" + strings.Join(parts, ",") + "]"
	case yamlv3.MappingNode:
		parts := make([]string, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			parts = append(parts, v3Shape(n.Content[i])+":"+v3Shape(n.Content[i+1]))
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return "undefined"
}
