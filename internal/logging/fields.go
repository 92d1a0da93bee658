package logging

// Field names for structured logging.
const (
	FieldError     = "error"
	FieldPath      = "path"
	FieldDocuments = "documents"
	FieldNodes     = "nodes"
	FieldBytes     = "bytes"
	FieldKind      = "kind"
	FieldLine      = "line"
	FieldColumn    = "column"
	FieldManaged   = "managed"
	FieldVersion   = "version"
	FieldCommit    = "commit"
	FieldBuilt     = "built"
)
