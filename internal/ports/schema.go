package ports

import "context"

// PreprocessedFile is a scoped handle to an expanded descriptor. Close
// removes the backing file and is safe to call more than once.
type PreprocessedFile interface {
	Path() string
	Close() error
}

// PreprocessorPort expands macros and includes in a descriptor.
//
// A nonzero exit of the expansion command is reported with
// errbuilder.CodeFailedPrecondition; every other failure uses
// errbuilder.CodeInternal.
type PreprocessorPort interface {
	Preprocess(ctx context.Context, path string) (PreprocessedFile, error)
}

// SchemaEnginePort checks a document against the descriptor schema.
//
// Validate returns the schema engine's structural error log, empty when the
// document is valid. A document that is not well-formed is reported as an
// error with errbuilder.CodeInvalidArgument.
type SchemaEnginePort interface {
	Validate(ctx context.Context, document []byte) ([]string, error)
}
