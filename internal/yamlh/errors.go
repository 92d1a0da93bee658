package yamlh

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindReader
	KindMalformedIndentation
	KindUnterminatedScalar
	KindUnexpectedToken
	KindUnknownDirective
	KindBadDirective
	KindDuplicateDirective
	KindUnresolvedTag
	KindUnknownAlias
	KindDepthExceeded
	KindInvalidNode
	KindBadFile
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrReader               = errors.New("unreadable input")
	ErrMalformedIndentation = errors.New("malformed indentation")
	ErrUnterminatedScalar   = errors.New("unterminated scalar")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnknownDirective     = errors.New("unknown directive")
	ErrBadDirective         = errors.New("bad directive")
	ErrDuplicateDirective   = errors.New("duplicate directive")
	ErrUnresolvedTag        = errors.New("unresolved tag shorthand")
	ErrUnknownAlias         = errors.New("unknown alias target")
	ErrDepthExceeded        = errors.New("maximum nesting depth exceeded")
	ErrInvalidNode          = errors.New("invalid node")
	ErrBadFile              = errors.New("bad file")
)

var kindSentinels = map[ErrorKind]error{
	KindReader:               ErrReader,
	KindMalformedIndentation: ErrMalformedIndentation,
	KindUnterminatedScalar:   ErrUnterminatedScalar,
	KindUnexpectedToken:      ErrUnexpectedToken,
	KindUnknownDirective:     ErrUnknownDirective,
	KindBadDirective:         ErrBadDirective,
	KindDuplicateDirective:   ErrDuplicateDirective,
	KindUnresolvedTag:        ErrUnresolvedTag,
	KindUnknownAlias:         ErrUnknownAlias,
	KindDepthExceeded:        ErrDepthExceeded,
	KindInvalidNode:          ErrInvalidNode,
	KindBadFile:              ErrBadFile,
}

func (k ErrorKind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return "unknown error"
}

// Sentinel returns the sentinel error for k, or nil for KindUnknown.
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

// positional reports whether errors of this kind point into the input.
func (k ErrorKind) positional() bool {
	return k != KindInvalidNode && k != KindBadFile && k != KindUnknown
}

// Error is returned by every stage of the pipeline.
type Error struct {
	Kind ErrorKind

	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// NewError returns an *Error of the given kind at mark.
func NewError(kind ErrorKind, mark Mark, message string) *Error {
	return &Error{Kind: kind, Mark: mark, Message: message}
}

// NewContextError is NewError with a context, as in "while parsing a block
// mapping at line 1, column 1".
func NewContextError(kind ErrorKind, contextMessage string, contextMark, mark Mark, message string) *Error {
	return &Error{
		Kind:           kind,
		ContextMark:    contextMark,
		ContextMessage: contextMessage,
		Mark:           mark,
		Message:        message,
	}
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if !e.Kind.positional() {
		builder.WriteString(e.Message)
		if e.Err != nil {
			fmt.Fprintf(&builder, ": %v", e.Err)
		}
		return builder.String()
	}
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.Sentinel()
	return sentinel != nil && target == sentinel
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HasMark reports whether Mark points into the input.
func (e *Error) HasMark() bool {
	return e.Kind.positional()
}
