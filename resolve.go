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
	"regexp"
	"strings"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

const (
	nullTag  = "!!null"
	boolTag  = "!!bool"
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	seqTag   = "!!seq"
	mapTag   = "!!map"
)

// YAML 1.2 core schema.
var (
	coreNull  = regexp.MustCompile(`^(?:~|null|Null|NULL|)$`)
	coreBool  = regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE)$`)
	coreInt   = regexp.MustCompile(`^(?:[-+]?[0-9]+|0o[0-7]+|0x[0-9a-fA-F]+)$`)
	coreFloat = regexp.MustCompile(`^(?:[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?|[-+]?\.(?:inf|Inf|INF)|\.(?:nan|NaN|NAN))$`)
)

// resolveScalar returns the core schema tag of an untagged plain scalar.
func resolveScalar(value string) string {
	switch {
	case coreNull.MatchString(value):
		return nullTag
	case coreBool.MatchString(value):
		return boolTag
	case coreInt.MatchString(value):
		return intTag
	case coreFloat.MatchString(value):
		return floatTag
	}
	return strTag
}

// shortTag abbreviates tags under tag:yaml.org,2002: to the "!!" form.
func shortTag(tag string) string {
	if strings.HasPrefix(tag, yamlh.CORE_TAG_PREFIX) {
		return "!!" + tag[len(yamlh.CORE_TAG_PREFIX):]
	}
	return tag
}

// ShortTag returns the tag of n in "!!" form, resolving non-specific tags
// with the core schema. Plain scalars resolve by their text, other
// scalars to !!str, and collections to !!seq or !!map. Application tags
// are returned unchanged. Invalid nodes have no tag.
func (n Node) ShortTag() string {
	d, err := n.data()
	if err != nil {
		return ""
	}
	switch d.tag {
	case "":
		if d.kind == NullNode {
			return nullTag
		}
	case yamlh.PLAIN_NON_SPECIFIC_TAG, yamlh.QUOTED_NON_SPECIFIC_TAG:
	default:
		return shortTag(d.tag)
	}
	switch d.kind {
	case SequenceNode:
		return seqTag
	case MapNode:
		return mapTag
	case ScalarNode:
		if d.tag == yamlh.PLAIN_NON_SPECIFIC_TAG && d.scalarStyle == PlainStyle {
			return resolveScalar(d.value)
		}
		return strTag
	}
	return ""
}
