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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/yamlgraph"
)

func TestBuilderEvents(t *testing.T) {
	b := yamlgraph.NewBuilder()
	require.False(t, b.Root().IsValid())

	m := yamlgraph.Mark{}
	require.NoError(t, b.OnDocumentStart(m))
	require.NoError(t, b.OnMapStart(m, "?", "top", yamlgraph.BlockStyle))
	require.NoError(t, b.OnScalar(m, "?", "", yamlgraph.PlainStyle, "items"))
	require.NoError(t, b.OnSequenceStart(m, "?", "", yamlgraph.FlowStyle))
	require.NoError(t, b.OnNull(m, "n"))
	require.NoError(t, b.OnAlias(m, "n"))
	require.NoError(t, b.OnAlias(m, "top"))
	require.NoError(t, b.OnSequenceEnd())
	require.NoError(t, b.OnMapEnd())
	require.False(t, b.Root().IsValid())
	require.NoError(t, b.OnDocumentEnd())

	root := b.Root()
	require.True(t, root.IsMap())
	items := root.Get("items")
	require.Equal(t, 3, items.Len())
	require.True(t, items.Index(0).IsNull())
	require.True(t, items.Index(0).Is(items.Index(1)))
	require.True(t, items.Index(2).Is(root))
}

func TestBuilderUnknownAlias(t *testing.T) {
	_, err := yamlgraph.LoadString("a: 1\nb: *nope\n")
	require.ErrorIs(t, err, yamlgraph.ErrUnknownAlias)
	var yerr *yamlgraph.Error
	require.ErrorAs(t, err, &yerr)
	require.Equal(t, yamlgraph.KindUnknownAlias, yerr.Kind)
	require.Equal(t, yamlgraph.Mark{Pos: 8, Line: 1, Column: 3}, yerr.Mark)
	require.Equal(t, "yaml: line 2, column 4: unknown anchor 'nope' referenced", err.Error())
}

func TestBuilderAliasBeforeAnchor(t *testing.T) {
	_, err := yamlgraph.LoadString("a: *x\nb: &x 1\n")
	require.ErrorIs(t, err, yamlgraph.ErrUnknownAlias)
}

func TestBuilderAnchorsAreScopedToDocument(t *testing.T) {
	_, err := yamlgraph.LoadAllString("a: &x 1\n---\nb: *x\n")
	require.ErrorIs(t, err, yamlgraph.ErrUnknownAlias)
}

func TestBuilderPanicsOnUnbalancedEvents(t *testing.T) {
	m := yamlgraph.Mark{}
	tests := map[string]func(b *yamlgraph.Builder){
		"end without start": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnSequenceEnd()
		},
		"mismatched end": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnSequenceStart(m, "?", "", yamlgraph.BlockStyle)
			_ = b.OnMapEnd()
		},
		"open collection at document end": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnMapStart(m, "?", "", yamlgraph.BlockStyle)
			_ = b.OnDocumentEnd()
		},
		"key without value": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnMapStart(m, "?", "", yamlgraph.BlockStyle)
			_ = b.OnScalar(m, "?", "", yamlgraph.PlainStyle, "k")
			_ = b.OnMapEnd()
		},
		"two roots": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnNull(m, "")
			_ = b.OnNull(m, "")
		},
		"no root": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnDocumentEnd()
		},
		"event before document": func(b *yamlgraph.Builder) {
			_ = b.OnNull(m, "")
		},
		"second document": func(b *yamlgraph.Builder) {
			_ = b.OnDocumentStart(m)
			_ = b.OnNull(m, "")
			_ = b.OnDocumentEnd()
			_ = b.OnDocumentStart(m)
		},
	}
	for name, events := range tests {
		t.Run(name, func(t *testing.T) {
			require.PanicsWithValue(t, panicValue(t, events), func() {
				events(yamlgraph.NewBuilder())
			})
		})
	}
}

// panicValue runs events and returns what they panicked with, after
// checking it is an internal error.
func panicValue(t *testing.T, events func(b *yamlgraph.Builder)) (value interface{}) {
	t.Helper()
	defer func() {
		value = recover()
		require.NotNil(t, value)
		require.Contains(t, value, "yamlgraph: internal error: ")
	}()
	events(yamlgraph.NewBuilder())
	return nil
}
