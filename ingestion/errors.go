package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a document repository is not provided.
	ErrRepositoryRequired = errors.New("document repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrCollectionNotEmpty is returned when the target collection already
	// holds documents and a rebuild was not requested. The existing
	// collection is left unchanged.
	ErrCollectionNotEmpty = errors.New("collection already holds documents; pass rebuild to delete and rebuild")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding result count mismatch")

	// ErrMissingHeader is returned when the catalog CSV has no header row.
	ErrMissingHeader = errors.New("catalog CSV has no header row")
)
