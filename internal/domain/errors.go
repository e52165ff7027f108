package domain

import "errors"

var (
	// ErrNotFound is returned when deleting a candidate that has no
	// indexed chunks.
	ErrNotFound = errors.New("candidate not found")

	// ErrNoDocuments is returned when an ingest run finds no
	// supported files in the data directory.
	ErrNoDocuments = errors.New("no supported documents found")

	// ErrDimensionMismatch means the embedder returned a vector whose
	// length differs from its declared dimension. This is a
	// configuration problem (wrong model at one end), not a transient
	// failure.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnsupportedFormat is returned for files no extractor claims.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
