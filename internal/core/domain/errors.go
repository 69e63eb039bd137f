package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrNoExtractableText indicates the uploaded document produced no usable
	// text (e.g. a scanned image-only PDF). Fatal for the ingestion run.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrIngestInProgress indicates an ingestion is already running for the article
	ErrIngestInProgress = errors.New("ingestion already in progress")

	// ErrAttemptBusy indicates another chat turn is in flight for the attempt
	ErrAttemptBusy = errors.New("attempt busy")

	// ErrEmbeddingUnavailable indicates no embedding service is configured
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrChatUnavailable indicates no chat completion service is configured
	ErrChatUnavailable = errors.New("chat service unavailable")

	// ErrMalformedCompletion indicates a structured completion response could
	// not be parsed as JSON
	ErrMalformedCompletion = errors.New("malformed completion response")

	// ErrServiceUnavailable indicates an external AI service could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")
)
