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
	"sync/atomic"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// nodeData is the arena-owned record behind a Node.
type nodeData struct {
	kind   NodeType
	tag    string
	anchor string
	value  string
	mark   Mark

	scalarStyle     ScalarStyle
	collectionStyle CollectionStyle

	// Sequence items, or map keys and values interleaved.
	children []int
}

// Arena owns every node of one document. Nodes refer to each other by
// index, so shared and cyclic structure is released as a unit.
type Arena struct {
	nodes atomic.Pointer[[]nodeData]
}

func newArena(nodes []nodeData) *Arena {
	a := &Arena{}
	a.nodes.Store(&nodes)
	return a
}

// Release drops the arena's storage. Nodes from the arena become invalid.
// Release may be called more than once and concurrently with readers.
func (a *Arena) Release() {
	if a == nil {
		return
	}
	a.nodes.Store(nil)
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a == nil || a.nodes.Load() == nil
}

// Len returns the number of nodes the arena holds, or 0 once released.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	nodes := a.nodes.Load()
	if nodes == nil {
		return 0
	}
	return len(*nodes)
}

func (a *Arena) lookup(id int) (*nodeData, error) {
	if a == nil {
		return nil, invalidNodeError("undefined node")
	}
	nodes := a.nodes.Load()
	if nodes == nil {
		return nil, invalidNodeError("node used after its arena was released")
	}
	if id < 0 || id >= len(*nodes) {
		return nil, invalidNodeError("node id out of range")
	}
	return &(*nodes)[id], nil
}

func invalidNodeError(msg string) error {
	return &yamlh.Error{Kind: yamlh.KindInvalidNode, Message: msg}
}
