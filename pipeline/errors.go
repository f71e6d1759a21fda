package pipeline

import "errors"

var (
	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")

	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrResponderRequired is returned when a responder is not provided.
	ErrResponderRequired = errors.New("responder required")

	// ErrInvalidMaxAttempts is returned when retry is configured with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be > 0")

	// ErrInvalidConfig is returned when pipeline configuration is invalid.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")
)
