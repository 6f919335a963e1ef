package vectorstore

import "errors"

var (
	// ErrEmptyNamespace is returned when a namespace is not provided.
	ErrEmptyNamespace = errors.New("namespace cannot be empty")

	// ErrDimensionMismatch indicates a record whose vector length differs
	// from the vectors already held by the index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
