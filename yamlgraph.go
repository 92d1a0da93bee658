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

// Package yamlgraph parses YAML streams into graphs of nodes.
//
// Each document is owned by an Arena. Aliases do not copy the anchored node;
// they become a second edge to it, so a document can share nodes and can
// refer to itself:
//
//	root, err := yamlgraph.LoadString("x: &a {y: 1}\nz: *a\n")
//	if err != nil {
//		return err
//	}
//	root.Get("x").Is(root.Get("z")) // true
//
// Nodes are read-only handles. Releasing an arena invalidates every node in
// it, after which accessors fail with ErrInvalidNode.
package yamlgraph

import (
	"github.com/willabides/yamlgraph/internal/yamlh"
)

type (
	// Mark is a 0-based position in the decoded input.
	Mark = yamlh.Mark

	// EventHandler receives the structural events of one document.
	EventHandler = yamlh.EventHandler

	// EventRecorder is an EventHandler that records events for later replay.
	EventRecorder = yamlh.EventRecorder

	// Event is one recorded EventHandler call.
	Event = yamlh.Event

	ScalarStyle     = yamlh.ScalarStyle
	CollectionStyle = yamlh.CollectionStyle

	// Error is the error type returned for malformed input, unknown
	// aliases, released nodes and unreadable files.
	Error = yamlh.Error

	ErrorKind = yamlh.ErrorKind
)

const (
	AnyScalarStyle     = yamlh.ANY_SCALAR_STYLE
	PlainStyle         = yamlh.PLAIN_SCALAR_STYLE
	SingleQuotedStyle  = yamlh.SINGLE_QUOTED_SCALAR_STYLE
	DoubleQuotedStyle  = yamlh.DOUBLE_QUOTED_SCALAR_STYLE
	LiteralStyle       = yamlh.LITERAL_SCALAR_STYLE
	FoldedStyle        = yamlh.FOLDED_SCALAR_STYLE
	AnyCollectionStyle = yamlh.ANY_COLLECTION_STYLE
	BlockStyle         = yamlh.BLOCK_COLLECTION_STYLE
	FlowStyle          = yamlh.FLOW_COLLECTION_STYLE
)

const (
	KindUnknown              = yamlh.KindUnknown
	KindReader               = yamlh.KindReader
	KindMalformedIndentation = yamlh.KindMalformedIndentation
	KindUnterminatedScalar   = yamlh.KindUnterminatedScalar
	KindUnexpectedToken      = yamlh.KindUnexpectedToken
	KindUnknownDirective     = yamlh.KindUnknownDirective
	KindBadDirective         = yamlh.KindBadDirective
	KindDuplicateDirective   = yamlh.KindDuplicateDirective
	KindUnresolvedTag        = yamlh.KindUnresolvedTag
	KindUnknownAlias         = yamlh.KindUnknownAlias
	KindDepthExceeded        = yamlh.KindDepthExceeded
	KindInvalidNode          = yamlh.KindInvalidNode
	KindBadFile              = yamlh.KindBadFile
)

// Sentinels for use with errors.Is.
var (
	ErrReader               = yamlh.ErrReader
	ErrMalformedIndentation = yamlh.ErrMalformedIndentation
	ErrUnterminatedScalar   = yamlh.ErrUnterminatedScalar
	ErrUnexpectedToken      = yamlh.ErrUnexpectedToken
	ErrUnknownDirective     = yamlh.ErrUnknownDirective
	ErrBadDirective         = yamlh.ErrBadDirective
	ErrDuplicateDirective   = yamlh.ErrDuplicateDirective
	ErrUnresolvedTag        = yamlh.ErrUnresolvedTag
	ErrUnknownAlias         = yamlh.ErrUnknownAlias
	ErrDepthExceeded        = yamlh.ErrDepthExceeded
	ErrInvalidNode          = yamlh.ErrInvalidNode
	ErrBadFile              = yamlh.ErrBadFile
)
