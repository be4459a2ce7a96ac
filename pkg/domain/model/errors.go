package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors forming the error taxonomy of the service. Handlers map
// these to HTTP status codes; none of them is retried automatically.
var (
	// ErrInvalidInput covers blank required fields, out-of-range chunking
	// parameters and oversized files.
	ErrInvalidInput = goerr.New("invalid input")

	// ErrNotFound covers missing media paths and unknown meetings.
	ErrNotFound = goerr.New("not found")

	// ErrExternalService wraps encoder, transcription, summarization and
	// LLM completion failures into a single processing-failed condition.
	ErrExternalService = goerr.New("external service failed")
)
