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

// Equal reports whether a and b are structurally equal. Kinds, tags, scalar
// text and the order of items and entries must match. Styles, anchors and
// marks are ignored. Sharing must match too: if a node is reached twice in
// a, the corresponding node must be reached at the same places in b, so a
// cyclic graph only equals another cyclic graph of the same shape.
//
// Two undefined or released nodes are equal.
func Equal(a, b Node) bool {
	if !a.IsValid() || !b.IsValid() {
		return !a.IsValid() && !b.IsValid()
	}
	type edge struct{ a, b int }
	aToB := map[int]int{}
	bToA := map[int]int{}
	stack := []edge{{a.id, b.id}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if mapped, ok := aToB[e.a]; ok {
			if mapped != e.b {
				return false
			}
			continue
		}
		if _, ok := bToA[e.b]; ok {
			return false
		}
		aToB[e.a] = e.b
		bToA[e.b] = e.a
		ad, err := a.arena.lookup(e.a)
		if err != nil {
			return false
		}
		bd, err := b.arena.lookup(e.b)
		if err != nil {
			return false
		}
		if ad.kind != bd.kind || ad.tag != bd.tag || ad.value != bd.value {
			return false
		}
		if len(ad.children) != len(bd.children) {
			return false
		}
		for i := len(ad.children) - 1; i >= 0; i-- {
			stack = append(stack, edge{ad.children[i], bd.children[i]})
		}
	}
	return true
}
