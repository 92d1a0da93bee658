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

package parser

import (
	"fmt"

	"github.com/willabides/yamlgraph/internal/yamlh"
)

// The parser implements the following grammar:
//
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
// block_node_or_indentless_sequence    ::=
//                          ALIAS
//                          | properties (block_content | indentless_block_sequence)?
//                          | block_content
//                          | indentless_block_sequence
// block_node           ::= ALIAS
//                          | properties block_content?
//                          | block_content
// flow_node            ::= ALIAS
//                          | properties flow_content?
//                          | flow_content
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
// block_content        ::= block_collection | flow_collection | SCALAR
// flow_content         ::= flow_collection | SCALAR
// block_collection     ::= block_sequence | block_mapping
// flow_collection      ::= flow_sequence | flow_mapping
// block_sequence       ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
// block_mapping        ::= BLOCK-MAPPING_START
//                          ((KEY block_node_or_indentless_sequence?)?
//                          (VALUE block_node_or_indentless_sequence?)?)*
//                          BLOCK-END
// flow_sequence        ::= FLOW-SEQUENCE-START
//                          (flow_sequence_entry FLOW-ENTRY)*
//                          flow_sequence_entry?
//                          FLOW-SEQUENCE-END
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
// flow_mapping         ::= FLOW-MAPPING-START
//                          (flow_mapping_entry FLOW-ENTRY)*
//                          flow_mapping_entry?
//                          FLOW-MAPPING-END
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
// A document is reported with OnDocumentStart, the events of its root
// node, and OnDocumentEnd. Empty content without a tag is reported with
// OnNull.

func isType(tok *yamlh.Token, types ...yamlh.TokenType) bool {
	for _, t := range types {
		if tok.Type == t {
			return true
		}
	}
	return false
}

func isDirective(tok *yamlh.Token) bool {
	return isType(tok, yamlh.VERSION_DIRECTIVE_TOKEN, yamlh.TAG_DIRECTIVE_TOKEN)
}

// Parse the productions:
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocument(h yamlh.EventHandler) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if !p.streamStarted {
		if tok.Type != yamlh.STREAM_START_TOKEN {
			return false, unexpected("", tok.Start, tok, "did not find expected <stream-start>")
		}
		p.streamStarted = true
		p.skip()
		if tok, err = p.peek(); err != nil {
			return false, err
		}
	}

	// Extra document end indicators.
	for tok.Type == yamlh.DOCUMENT_END_TOKEN {
		p.ended = true
		p.skip()
		if tok, err = p.peek(); err != nil {
			return false, err
		}
	}

	if tok.Type == yamlh.STREAM_END_TOKEN {
		return false, nil
	}

	if p.persist {
		p.directives.beginDocument()
	} else {
		p.directives.Reset()
	}

	explicit := false
	start := tok.Start
	if isDirective(tok) || tok.Type == yamlh.DOCUMENT_START_TOKEN {
		if isDirective(tok) && !p.ended {
			return false, unexpected("", tok.Start, tok, "found directive without a preceding document end marker")
		}
		for isDirective(tok) {
			if err = p.directives.Add(tok); err != nil {
				return false, err
			}
			p.skip()
			if tok, err = p.peek(); err != nil {
				return false, err
			}
		}
		if tok.Type != yamlh.DOCUMENT_START_TOKEN {
			return false, unexpected("", tok.Start, tok, "did not find expected <document start>")
		}
		explicit = true
		p.skip()
	} else if !p.ended {
		return false, unexpected("", tok.Start, tok, "did not find expected <document start>")
	}
	p.ended = false

	if err = h.OnDocumentStart(start); err != nil {
		return false, err
	}

	if tok, err = p.peek(); err != nil {
		return false, err
	}
	if explicit && isType(tok,
		yamlh.VERSION_DIRECTIVE_TOKEN,
		yamlh.TAG_DIRECTIVE_TOKEN,
		yamlh.DOCUMENT_START_TOKEN,
		yamlh.DOCUMENT_END_TOKEN,
		yamlh.STREAM_END_TOKEN) {
		err = h.OnNull(tok.Start, "")
	} else {
		err = p.parseNode(h, true, false)
	}
	if err != nil {
		return false, err
	}

	if tok, err = p.peek(); err != nil {
		return false, err
	}
	switch tok.Type {
	case yamlh.DOCUMENT_END_TOKEN:
		p.ended = true
		p.skip()
	case yamlh.DOCUMENT_START_TOKEN, yamlh.STREAM_END_TOKEN:
	case yamlh.VERSION_DIRECTIVE_TOKEN, yamlh.TAG_DIRECTIVE_TOKEN:
		return false, unexpected("", tok.Start, tok, "found directive without a preceding document end marker")
	default:
		return false, unexpected("while parsing a document", start, tok, "did not find expected <document end>")
	}

	if err = h.OnDocumentEnd(); err != nil {
		return false, err
	}
	return true, nil
}

// isNullLiteral reports whether a plain untagged scalar spells null.
func isNullLiteral(value string) bool {
	switch value {
	case "~", "null", "Null", "NULL":
		return true
	}
	return false
}

// Parse the productions:
// block_node_or_indentless_sequence    ::=
//
//	ALIAS
//	| properties (block_content | indentless_block_sequence)?
//	| block_content
//	| indentless_block_sequence
//
// block_node           ::= ALIAS
//
//	| properties block_content?
//	| block_content
//
// flow_node            ::= ALIAS
//
//	| properties flow_content?
//	| flow_content
//
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
func (p *Parser) parseNode(h yamlh.EventHandler, block, indentless bool) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	if tok.Type == yamlh.ALIAS_TOKEN {
		mark, anchor := tok.Start, tok.Value
		p.skip()
		return h.OnAlias(mark, anchor)
	}

	start := tok.Start
	var anchor, tag string
	var tagged bool
	for i := 0; i < 2; i++ {
		switch {
		case tok.Type == yamlh.ANCHOR_TOKEN && anchor == "":
			anchor = tok.Value
		case tok.Type == yamlh.TAG_TOKEN && !tagged:
			tagged = true
			tag, err = p.directives.Resolve(tok.Value, tok.Suffix, tok.Start)
			if err != nil {
				return err
			}
		default:
			continue
		}
		p.skip()
		if tok, err = p.peek(); err != nil {
			return err
		}
	}

	collectionTag := tag
	if !tagged {
		collectionTag = yamlh.PLAIN_NON_SPECIFIC_TAG
	}

	switch {
	case indentless && tok.Type == yamlh.BLOCK_ENTRY_TOKEN:
		if err = p.enter(start); err != nil {
			return err
		}
		defer p.leave()
		if err = h.OnSequenceStart(start, collectionTag, anchor, yamlh.BLOCK_COLLECTION_STYLE); err != nil {
			return err
		}
		return p.parseIndentlessSequence(h)

	case tok.Type == yamlh.SCALAR_TOKEN:
		value, style := tok.Value, tok.Style
		p.skip()
		if !tagged {
			if style == yamlh.PLAIN_SCALAR_STYLE {
				if isNullLiteral(value) {
					return h.OnNull(start, anchor)
				}
				tag = yamlh.PLAIN_NON_SPECIFIC_TAG
			} else {
				tag = yamlh.QUOTED_NON_SPECIFIC_TAG
			}
		}
		return h.OnScalar(start, tag, anchor, style, value)

	case tok.Type == yamlh.FLOW_SEQUENCE_START_TOKEN:
		if err = p.enter(start); err != nil {
			return err
		}
		defer p.leave()
		if err = h.OnSequenceStart(start, collectionTag, anchor, yamlh.FLOW_COLLECTION_STYLE); err != nil {
			return err
		}
		return p.parseFlowSequence(h)

	case tok.Type == yamlh.FLOW_MAPPING_START_TOKEN:
		if err = p.enter(start); err != nil {
			return err
		}
		defer p.leave()
		if err = h.OnMapStart(start, collectionTag, anchor, yamlh.FLOW_COLLECTION_STYLE); err != nil {
			return err
		}
		return p.parseFlowMapping(h)

	case block && tok.Type == yamlh.BLOCK_SEQUENCE_START_TOKEN:
		if err = p.enter(start); err != nil {
			return err
		}
		defer p.leave()
		if err = h.OnSequenceStart(start, collectionTag, anchor, yamlh.BLOCK_COLLECTION_STYLE); err != nil {
			return err
		}
		return p.parseBlockSequence(h)

	case block && tok.Type == yamlh.BLOCK_MAPPING_START_TOKEN:
		if err = p.enter(start); err != nil {
			return err
		}
		defer p.leave()
		if err = h.OnMapStart(start, collectionTag, anchor, yamlh.BLOCK_COLLECTION_STYLE); err != nil {
			return err
		}
		return p.parseBlockMapping(h)

	case anchor != "" || tagged:
		// Properties with empty content.
		if !tagged || tag == yamlh.PLAIN_NON_SPECIFIC_TAG {
			return h.OnNull(start, anchor)
		}
		return h.OnScalar(start, tag, anchor, yamlh.PLAIN_SCALAR_STYLE, "")
	}

	context := "while parsing a flow node"
	if block {
		context = "while parsing a block node"
	}
	return unexpected(context, start, tok, "did not find expected node content")
}

// enter records one more level of collection nesting.
func (p *Parser) enter(mark yamlh.Mark) error {
	p.depth++
	if p.depth > p.maxDepth {
		return yamlh.NewError(yamlh.KindDepthExceeded, mark, fmt.Sprintf("exceeded max depth of %d", p.maxDepth))
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Parse an optional block node. An absent node, signalled by a token in
// stop, is reported as null at mark.
func (p *Parser) parseOptionalNode(h yamlh.EventHandler, mark yamlh.Mark, block, indentless bool, stop ...yamlh.TokenType) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if isType(tok, stop...) {
		return h.OnNull(mark, "")
	}
	return p.parseNode(h, block, indentless)
}

// Parse the productions:
// block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
//
//	********************  *********** *             *********
func (p *Parser) parseBlockSequence(h yamlh.EventHandler) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	start := tok.Start
	p.skip()

	for {
		if tok, err = p.peek(); err != nil {
			return err
		}
		switch tok.Type {
		case yamlh.BLOCK_ENTRY_TOKEN:
			mark := tok.End
			p.skip()
			err = p.parseOptionalNode(h, mark, true, false,
				yamlh.BLOCK_ENTRY_TOKEN, yamlh.BLOCK_END_TOKEN)
			if err != nil {
				return err
			}
		case yamlh.BLOCK_END_TOKEN:
			p.skip()
			return h.OnSequenceEnd()
		default:
			return unexpected("while parsing a block collection", start, tok, "did not find expected '-' indicator")
		}
	}
}

// Parse the productions:
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
//
//	*********** *
func (p *Parser) parseIndentlessSequence(h yamlh.EventHandler) error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Type != yamlh.BLOCK_ENTRY_TOKEN {
			return h.OnSequenceEnd()
		}
		mark := tok.End
		p.skip()
		err = p.parseOptionalNode(h, mark, true, false,
			yamlh.BLOCK_ENTRY_TOKEN, yamlh.KEY_TOKEN, yamlh.VALUE_TOKEN, yamlh.BLOCK_END_TOKEN)
		if err != nil {
			return err
		}
	}
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	*******************
//	((KEY block_node_or_indentless_sequence?)?
//	  *** *
//	(VALUE block_node_or_indentless_sequence?)?)*
//	 ***** *
//	BLOCK-END
//	*********
//
// A VALUE without a KEY has an empty key.
func (p *Parser) parseBlockMapping(h yamlh.EventHandler) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	start := tok.Start
	p.skip()

	for {
		if tok, err = p.peek(); err != nil {
			return err
		}
		switch tok.Type {
		case yamlh.KEY_TOKEN:
			mark := tok.End
			p.skip()
			err = p.parseOptionalNode(h, mark, true, true,
				yamlh.KEY_TOKEN, yamlh.VALUE_TOKEN, yamlh.BLOCK_END_TOKEN)
		case yamlh.VALUE_TOKEN:
			err = h.OnNull(tok.Start, "")
		case yamlh.BLOCK_END_TOKEN:
			p.skip()
			return h.OnMapEnd()
		default:
			return unexpected("while parsing a block mapping", start, tok, "did not find expected key")
		}
		if err != nil {
			return err
		}

		if tok, err = p.peek(); err != nil {
			return err
		}
		if tok.Type != yamlh.VALUE_TOKEN {
			if err = h.OnNull(tok.Start, ""); err != nil {
				return err
			}
			continue
		}
		mark := tok.End
		p.skip()
		err = p.parseOptionalNode(h, mark, true, true,
			yamlh.KEY_TOKEN, yamlh.VALUE_TOKEN, yamlh.BLOCK_END_TOKEN)
		if err != nil {
			return err
		}
	}
}

// Parse the productions:
// flow_sequence        ::= FLOW-SEQUENCE-START
//
//	*******************
//	(flow_sequence_entry FLOW-ENTRY)*
//	 *                   **********
//	flow_sequence_entry?
//	*
//	FLOW-SEQUENCE-END
//	*****************
//
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (p *Parser) parseFlowSequence(h yamlh.EventHandler) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	start := tok.Start
	p.skip()

	for first := true; ; first = false {
		if tok, err = p.peek(); err != nil {
			return err
		}
		if tok.Type == yamlh.FLOW_SEQUENCE_END_TOKEN {
			p.skip()
			return h.OnSequenceEnd()
		}
		if !first {
			if tok.Type != yamlh.FLOW_ENTRY_TOKEN {
				return unexpected("while parsing a flow sequence", start, tok, "did not find expected ',' or ']'")
			}
			p.skip()
			if tok, err = p.peek(); err != nil {
				return err
			}
			if tok.Type == yamlh.FLOW_SEQUENCE_END_TOKEN {
				p.skip()
				return h.OnSequenceEnd()
			}
		}

		if tok.Type == yamlh.KEY_TOKEN {
			err = p.parseFlowSequenceEntryMapping(h)
		} else {
			err = p.parseNode(h, false, false)
		}
		if err != nil {
			return err
		}
	}
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*** *     ***** *
//
// The entry is reported as a single-pair flow mapping.
func (p *Parser) parseFlowSequenceEntryMapping(h yamlh.EventHandler) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	err = h.OnMapStart(tok.Start, yamlh.PLAIN_NON_SPECIFIC_TAG, "", yamlh.FLOW_COLLECTION_STYLE)
	if err != nil {
		return err
	}
	mark := tok.End
	p.skip()

	err = p.parseOptionalNode(h, mark, false, false,
		yamlh.VALUE_TOKEN, yamlh.FLOW_ENTRY_TOKEN, yamlh.FLOW_SEQUENCE_END_TOKEN)
	if err != nil {
		return err
	}
	if err = p.parseFlowValue(h, yamlh.FLOW_SEQUENCE_END_TOKEN); err != nil {
		return err
	}
	return h.OnMapEnd()
}

// Parse the optional VALUE flow_node? part of a flow entry.
func (p *Parser) parseFlowValue(h yamlh.EventHandler, end yamlh.TokenType) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Type != yamlh.VALUE_TOKEN {
		return h.OnNull(tok.Start, "")
	}
	mark := tok.End
	p.skip()
	return p.parseOptionalNode(h, mark, false, false, yamlh.FLOW_ENTRY_TOKEN, end)
}

// Parse the productions:
// flow_mapping         ::= FLOW-MAPPING-START
//
//	******************
//	(flow_mapping_entry FLOW-ENTRY)*
//	 *                  **********
//	flow_mapping_entry?
//	******************
//	FLOW-MAPPING-END
//	****************
//
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - *** *     ***** *
func (p *Parser) parseFlowMapping(h yamlh.EventHandler) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	start := tok.Start
	p.skip()

	for first := true; ; first = false {
		if tok, err = p.peek(); err != nil {
			return err
		}
		if tok.Type == yamlh.FLOW_MAPPING_END_TOKEN {
			p.skip()
			return h.OnMapEnd()
		}
		if !first {
			if tok.Type != yamlh.FLOW_ENTRY_TOKEN {
				return unexpected("while parsing a flow mapping", start, tok, "did not find expected ',' or '}'")
			}
			p.skip()
			if tok, err = p.peek(); err != nil {
				return err
			}
			if tok.Type == yamlh.FLOW_MAPPING_END_TOKEN {
				p.skip()
				return h.OnMapEnd()
			}
		}

		if tok.Type == yamlh.KEY_TOKEN {
			mark := tok.End
			p.skip()
			err = p.parseOptionalNode(h, mark, false, false,
				yamlh.VALUE_TOKEN, yamlh.FLOW_ENTRY_TOKEN, yamlh.FLOW_MAPPING_END_TOKEN)
			if err != nil {
				return err
			}
			if err = p.parseFlowValue(h, yamlh.FLOW_MAPPING_END_TOKEN); err != nil {
				return err
			}
			continue
		}

		if tok.Type == yamlh.VALUE_TOKEN {
			// An empty key, as in {: b}.
			if err = h.OnNull(tok.Start, ""); err != nil {
				return err
			}
			if err = p.parseFlowValue(h, yamlh.FLOW_MAPPING_END_TOKEN); err != nil {
				return err
			}
			continue
		}

		// A lone key with an empty value, as in {a, b}.
		if err = p.parseNode(h, false, false); err != nil {
			return err
		}
		if tok, err = p.peek(); err != nil {
			return err
		}
		if err = h.OnNull(tok.Start, ""); err != nil {
			return err
		}
	}
}
