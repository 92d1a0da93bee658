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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/yamlgraph"
)

var cloneTests = []string{
	"a: 1\nb: 2\n",
	"- a\n- 'b'\n- \"c\"\n- |\n  d\n- >\n  e\n",
	"x: &anchor\n  y: 1\nz: *anchor\n",
	"&a\nself: *a\n",
	"a: &x 1\nb: &y 2\nc: *x\nd: *y\n",
	"a: &a [1, 2]\nb: *a\nc: [*a, *a]\n",
	"First occurrence: &anchor Foo\nSecond occurrence: *anchor\nOverride anchor: &anchor Bar\nReuse anchor: *anchor\n",
	"--- !!map\n? !!seq [a]\n: !local {}\n",
	"{a, b: c, : d, e: }",
	"~",
	"&a [&b [*a, *b], *b]",
	"a: &m {k: &v v}\nb: *v\nc: *m\n",
}

func TestClone(t *testing.T) {
	for i, input := range cloneTests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			root, err := yamlgraph.LoadString(input)
			require.NoError(t, err)
			clone, err := yamlgraph.Clone(root)
			require.NoError(t, err)
			require.True(t, yamlgraph.Equal(root, clone))
			require.True(t, yamlgraph.Equal(clone, root))
			require.NotSame(t, root.Arena(), clone.Arena())
			require.Equal(t, root.Arena().Len(), clone.Arena().Len())

			// the clone does not depend on the source
			root.Arena().Release()
			require.True(t, clone.IsValid())
			again, err := yamlgraph.LoadString(input)
			require.NoError(t, err)
			require.True(t, yamlgraph.Equal(again, clone))
		})
	}
}

func TestCloneKeepsSharing(t *testing.T) {
	root, err := yamlgraph.LoadString("x: &anchor\n  y: 1\nz: *anchor\n")
	require.NoError(t, err)
	clone, err := yamlgraph.Clone(root)
	require.NoError(t, err)
	require.True(t, clone.Get("x").Is(clone.Get("z")))
	require.False(t, clone.Get("x").Is(root.Get("x")))
}

func TestCloneCycle(t *testing.T) {
	root, err := yamlgraph.LoadString("&a\nself: *a\nname: loop\n")
	require.NoError(t, err)
	clone, err := yamlgraph.Clone(root)
	require.NoError(t, err)
	require.True(t, clone.Get("self").Is(clone))
	require.True(t, yamlgraph.Equal(root, clone))
}

func TestCloneInvalid(t *testing.T) {
	_, err := yamlgraph.Clone(yamlgraph.Node{})
	require.ErrorIs(t, err, yamlgraph.ErrInvalidNode)

	root, err := yamlgraph.LoadString("a")
	require.NoError(t, err)
	root.Arena().Release()
	_, err = yamlgraph.Clone(root)
	require.ErrorIs(t, err, yamlgraph.ErrInvalidNode)
}

func TestEmitAnchors(t *testing.T) {
	// The second "x" anchor shadows the first, so the shared node needs a
	// fresh name on replay.
	root, err := yamlgraph.LoadString("a: &x [1]\nb: *x\nc: &x 2\nd: *x\n")
	require.NoError(t, err)
	var rec yamlgraph.EventRecorder
	require.NoError(t, yamlgraph.Emit(root, &rec))

	var props []string
	for _, ev := range rec.Events {
		if ev.Anchor != "" {
			props = append(props, ev.Type.String()+" "+ev.Anchor)
		}
	}
	require.Equal(t, []string{
		"sequence start x",
		"alias x",
		"scalar 1",
		"alias 1",
	}, props)

	clone := yamlgraph.NewBuilder()
	require.NoError(t, rec.Replay(clone))
	require.True(t, yamlgraph.Equal(root, clone.Root()))
}

func TestEmitSubtree(t *testing.T) {
	root, err := yamlgraph.LoadString("a: &x {b: *x}\nc: 1\n")
	require.NoError(t, err)
	var rec yamlgraph.EventRecorder
	require.NoError(t, yamlgraph.Emit(root.Get("a"), &rec))
	b := yamlgraph.NewBuilder()
	require.NoError(t, rec.Replay(b))
	sub := b.Root()
	require.True(t, sub.IsMap())
	require.Equal(t, 1, sub.Len())
	require.True(t, sub.Get("b").Is(sub))
}

func TestEmitHandlerError(t *testing.T) {
	root, err := yamlgraph.LoadString("[a, b]")
	require.NoError(t, err)
	boom := errors.New("boom")
	err = yamlgraph.Emit(root, &failingHandler{EventRecorder: &yamlgraph.EventRecorder{}, err: boom})
	require.ErrorIs(t, err, boom)
}

type failingHandler struct {
	*yamlgraph.EventRecorder
	err error
}

func (f *failingHandler) OnScalar(yamlgraph.Mark, string, string, yamlgraph.ScalarStyle, string) error {
	return f.err
}

var equalTests = []struct {
	a, b  string
	equal bool
}{
	{"a: 1", "a: 1", true},
	{"a: 1", "{a: 1}", true},
	{"a: 1", "a: 2", false},
	{"a: 1", "a: '1'", false},
	{"[1, 2]", "[2, 1]", false},
	{"[1, 2]", "[1, 2, 3]", false},
	{"[1]", "{1: ~}", false},
	{"~", "null", true},
	{"~", "''", false},
	{"!!str a", "!!str a", true},
	{"!!str a", "a", false},
	{"[&a x, *a]", "[x, x]", false},
	{"[&a x, *a]", "[&b x, *b]", true},
	{"[&a [1], *a, [1]]", "[&a [1], [1], *a]", false},
	{"&a [*a]", "&a [*a]", true},
	{"&a [*a]", "[[[]]]", false},
	{"&a [&b [*a]]", "&a [&b [*b]]", false},
}

func TestEqual(t *testing.T) {
	for i, item := range equalTests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a, err := yamlgraph.LoadString(item.a)
			require.NoError(t, err)
			b, err := yamlgraph.LoadString(item.b)
			require.NoError(t, err)
			require.Equal(t, item.equal, yamlgraph.Equal(a, b))
			require.Equal(t, item.equal, yamlgraph.Equal(b, a))
			require.True(t, yamlgraph.Equal(a, a))
		})
	}
}

func TestEqualInvalid(t *testing.T) {
	a, err := yamlgraph.LoadString("a")
	require.NoError(t, err)
	require.True(t, yamlgraph.Equal(yamlgraph.Node{}, yamlgraph.Node{}))
	require.False(t, yamlgraph.Equal(a, yamlgraph.Node{}))

	empty, err := yamlgraph.LoadString("")
	require.NoError(t, err)
	require.True(t, yamlgraph.Equal(empty, yamlgraph.Node{}))
}
