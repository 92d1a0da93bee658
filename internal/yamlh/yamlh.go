//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package yamlh holds the vocabulary shared by the scanner, the parser and
// the node builder: marks, tokens, events, the event handler contract and
// the error model.
package yamlh

import (
	"fmt"
)

// Mark is a position in the input. All fields are 0-based.
type Mark struct {
	Pos    int // Byte offset into the decoded input.
	Line   int
	Column int // Counted in characters.
}

func (m Mark) String() string {
	return fmt.Sprintf("line %d, column %d", m.Line+1, m.Column+1)
}

type VersionDirective struct {
	Major int8
	Minor int8
}

func (v VersionDirective) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

type TagDirective struct {
	Handle string
	Prefix string
}

type ScalarStyle int8

// Scalar styles.
const (
	ANY_SCALAR_STYLE ScalarStyle = iota

	PLAIN_SCALAR_STYLE
	SINGLE_QUOTED_SCALAR_STYLE
	DOUBLE_QUOTED_SCALAR_STYLE
	LITERAL_SCALAR_STYLE
	FOLDED_SCALAR_STYLE
)

var scalarStyleStrings = []string{
	ANY_SCALAR_STYLE:           "any",
	PLAIN_SCALAR_STYLE:         "plain",
	SINGLE_QUOTED_SCALAR_STYLE: "single-quoted",
	DOUBLE_QUOTED_SCALAR_STYLE: "double-quoted",
	LITERAL_SCALAR_STYLE:       "literal",
	FOLDED_SCALAR_STYLE:        "folded",
}

func (s ScalarStyle) String() string {
	if s < 0 || int(s) >= len(scalarStyleStrings) {
		return fmt.Sprintf("unknown scalar style %d", s)
	}
	return scalarStyleStrings[s]
}

type CollectionStyle int8

// Sequence and mapping styles.
const (
	ANY_COLLECTION_STYLE CollectionStyle = iota

	BLOCK_COLLECTION_STYLE
	FLOW_COLLECTION_STYLE
)

func (s CollectionStyle) String() string {
	switch s {
	case BLOCK_COLLECTION_STYLE:
		return "block"
	case FLOW_COLLECTION_STYLE:
		return "flow"
	}
	return "any"
}

type TokenType int

// Token types.
const (
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN
	STREAM_END_TOKEN

	VERSION_DIRECTIVE_TOKEN
	TAG_DIRECTIVE_TOKEN
	DOCUMENT_START_TOKEN
	DOCUMENT_END_TOKEN

	BLOCK_SEQUENCE_START_TOKEN
	BLOCK_MAPPING_START_TOKEN
	BLOCK_END_TOKEN

	FLOW_SEQUENCE_START_TOKEN
	FLOW_SEQUENCE_END_TOKEN
	FLOW_MAPPING_START_TOKEN
	FLOW_MAPPING_END_TOKEN

	BLOCK_ENTRY_TOKEN
	FLOW_ENTRY_TOKEN
	KEY_TOKEN
	VALUE_TOKEN

	ALIAS_TOKEN
	ANCHOR_TOKEN
	TAG_TOKEN
	SCALAR_TOKEN
)

var tokenStrings = []string{
	NO_TOKEN:                   "NO-TOKEN",
	STREAM_START_TOKEN:         "STREAM-START",
	STREAM_END_TOKEN:           "STREAM-END",
	VERSION_DIRECTIVE_TOKEN:    "VERSION-DIRECTIVE",
	TAG_DIRECTIVE_TOKEN:        "TAG-DIRECTIVE",
	DOCUMENT_START_TOKEN:       "DOCUMENT-START",
	DOCUMENT_END_TOKEN:         "DOCUMENT-END",
	BLOCK_SEQUENCE_START_TOKEN: "BLOCK-SEQUENCE-START",
	BLOCK_MAPPING_START_TOKEN:  "BLOCK-MAPPING-START",
	BLOCK_END_TOKEN:            "BLOCK-END",
	FLOW_SEQUENCE_START_TOKEN:  "FLOW-SEQUENCE-START",
	FLOW_SEQUENCE_END_TOKEN:    "FLOW-SEQUENCE-END",
	FLOW_MAPPING_START_TOKEN:   "FLOW-MAPPING-START",
	FLOW_MAPPING_END_TOKEN:     "FLOW-MAPPING-END",
	BLOCK_ENTRY_TOKEN:          "BLOCK-ENTRY",
	FLOW_ENTRY_TOKEN:           "FLOW-ENTRY",
	KEY_TOKEN:                  "KEY",
	VALUE_TOKEN:                "VALUE",
	ALIAS_TOKEN:                "ALIAS",
	ANCHOR_TOKEN:               "ANCHOR",
	TAG_TOKEN:                  "TAG",
	SCALAR_TOKEN:               "SCALAR",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenStrings) {
		return fmt.Sprintf("<unknown token %d>", int(tt))
	}
	return tokenStrings[tt]
}

// Token is a single lexical unit produced by the scanner.
type Token struct {
	Type TokenType

	Start, End Mark

	// Anchor or alias name, scalar text, tag handle, or %TAG handle.
	Value string

	// Tag suffix (TAG_TOKEN).
	Suffix string

	// %TAG prefix (TAG_DIRECTIVE_TOKEN).
	Prefix string

	// SCALAR_TOKEN only.
	Style ScalarStyle

	// VERSION_DIRECTIVE_TOKEN only.
	Major, Minor int8
}

func (t Token) String() string {
	switch t.Type {
	case SCALAR_TOKEN:
		return fmt.Sprintf("%s(%q, %s)", t.Type, t.Value, t.Style)
	case ALIAS_TOKEN, ANCHOR_TOKEN:
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	case TAG_TOKEN:
		return fmt.Sprintf("%s(%q, %q)", t.Type, t.Value, t.Suffix)
	case TAG_DIRECTIVE_TOKEN:
		return fmt.Sprintf("%s(%q, %q)", t.Type, t.Value, t.Prefix)
	case VERSION_DIRECTIVE_TOKEN:
		return fmt.Sprintf("%s(%d, %d)", t.Type, t.Major, t.Minor)
	}
	return t.Type.String()
}

type EventType int8

// Event types.
const (
	NO_EVENT EventType = iota

	DOCUMENT_START_EVENT
	DOCUMENT_END_EVENT
	NULL_EVENT
	ALIAS_EVENT
	SCALAR_EVENT
	SEQUENCE_START_EVENT
	SEQUENCE_END_EVENT
	MAPPING_START_EVENT
	MAPPING_END_EVENT
)

var eventStrings = []string{
	NO_EVENT:             "none",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	NULL_EVENT:           "null",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventStrings[e]
}

// Event is the recorded form of one EventHandler call.
type Event struct {
	Type EventType

	// Zero for end events.
	Mark Mark

	// SCALAR, SEQUENCE_START, MAPPING_START, NULL and ALIAS.
	Anchor string

	// SCALAR, SEQUENCE_START and MAPPING_START.
	Tag string

	// SCALAR only.
	Value string

	ScalarStyle     ScalarStyle
	CollectionStyle CollectionStyle
}

func (e Event) String() string {
	switch e.Type {
	case SCALAR_EVENT:
		return fmt.Sprintf("%s tag=%q anchor=%q style=%s value=%q", e.Type, e.Tag, e.Anchor, e.ScalarStyle, e.Value)
	case SEQUENCE_START_EVENT, MAPPING_START_EVENT:
		return fmt.Sprintf("%s tag=%q anchor=%q style=%s", e.Type, e.Tag, e.Anchor, e.CollectionStyle)
	case NULL_EVENT, ALIAS_EVENT:
		return fmt.Sprintf("%s anchor=%q", e.Type, e.Anchor)
	}
	return e.Type.String()
}

const (
	NULL_TAG      = "tag:yaml.org,2002:null"
	BOOL_TAG      = "tag:yaml.org,2002:bool"
	STR_TAG       = "tag:yaml.org,2002:str"
	INT_TAG       = "tag:yaml.org,2002:int"
	FLOAT_TAG     = "tag:yaml.org,2002:float"
	TIMESTAMP_TAG = "tag:yaml.org,2002:timestamp"
	SEQ_TAG       = "tag:yaml.org,2002:seq"
	MAP_TAG       = "tag:yaml.org,2002:map"

	// Non-specific tags. Untagged plain scalars and collections carry "?",
	// untagged quoted and block scalars carry "!".
	PLAIN_NON_SPECIFIC_TAG  = "?"
	QUOTED_NON_SPECIFIC_TAG = "!"

	// The prefix the secondary handle "!!" expands to.
	CORE_TAG_PREFIX = "tag:yaml.org,2002:"
)

// SimpleKey holds information about a potential simple key.
type SimpleKey struct {
	Possible    bool
	Required    bool
	TokenNumber int
	Mark        Mark
}
