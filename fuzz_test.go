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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/willabides/yamlgraph"
)

func FuzzLoad(f *testing.F) {
	for _, input := range differentialTests {
		f.Add([]byte(input))
	}
	for _, input := range cloneTests {
		f.Add([]byte(input))
	}
	for _, item := range loadErrorTests {
		f.Add([]byte(item.yaml))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		docs, err := yamlgraph.LoadAll(bytes.NewReader(input))
		if err != nil {
			var yerr *yamlgraph.Error
			require.ErrorAs(t, err, &yerr)
			require.NotNil(t, yerr.Kind.Sentinel(), err.Error())
			require.Nil(t, docs)
			return
		}
		defer docs.Release()
		for _, doc := range docs {
			clone, err := yamlgraph.Clone(doc)
			require.NoError(t, err)
			require.True(t, yamlgraph.Equal(doc, clone))
			require.Equal(t, doc.Arena().Len(), clone.Arena().Len())
			clone.Arena().Release()
		}
	})
}
