package storage

import (
	"context"

	"github.com/poiesic/animerec/core"
)

// DocumentRepository provides operations for one named collection of indexed
// documents. Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// AddDocuments upserts one or more documents into the collection.
	// Documents with an existing ID are overwritten. The whole call is a
	// single transaction; callers batching a large ingestion run get
	// per-batch atomicity only.
	AddDocuments(ctx context.Context, docs ...*core.Document) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every document in the collection. Used for the
	// explicit delete-and-rebuild path of the ingestion pipeline.
	DeleteAll(ctx context.Context) error

	// FindSimilar finds the documents nearest to the given vector by inner
	// product, up to limit results, highest score first. Documents without
	// vectors are skipped.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SimilarityMatch, error)

	// Collection returns the collection name this repository is bound to.
	Collection() string

	// Close releases resources held by the repository.
	Close() error
}
