package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/animerec/core"
	"github.com/poiesic/animerec/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
// Each repository is bound to one named collection.
type DocumentRepository struct {
	backend    *Backend
	collection string
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a repository bound to the named collection.
func NewDocumentRepository(backend *Backend, collection string) (storage.DocumentRepository, error) {
	if collection == "" {
		return nil, storage.ErrEmptyCollection
	}

	return &DocumentRepository{
		backend:    backend,
		collection: collection,
	}, nil
}

// Collection returns the collection name this repository is bound to.
func (r *DocumentRepository) Collection() string {
	return r.collection
}

// Close releases repository resources. The backend stays open; it may be
// shared by repositories for other collections.
func (r *DocumentRepository) Close() error {
	return nil
}

// AddDocuments upserts one or more documents into the collection.
func (r *DocumentRepository) AddDocuments(ctx context.Context, docs ...*core.Document) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if err := core.ValidateDocument(doc); err != nil {
				return err
			}

			key := makeDocumentKey(r.collection, doc.Id)
			value := storage.MarshalDocument(doc)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (*core.Document, error) {
	var doc *core.Document

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDocumentKey(r.collection, id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			doc, err = storage.UnmarshalDocument(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Count returns the number of documents in the collection.
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll removes every document in the collection.
func (r *DocumentRepository) DeleteAll(ctx context.Context) error {
	return r.backend.DropPrefix(makeCollectionPrefix(r.collection))
}

// FindSimilar finds the documents nearest to the given vector by inner
// product. For unit-norm vectors the inner product equals cosine similarity.
// The scan is brute-force over the collection; retrieval breadth is bounded
// by limit.
func (r *DocumentRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SimilarityMatch, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var matches []*core.SimilarityMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeCollectionPrefix(r.collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}

			// Skip documents without embeddings
			if len(doc.Vector) == 0 {
				continue
			}

			matches = append(matches, &core.SimilarityMatch{
				Document: doc,
				Score:    core.Dot(vector, doc.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(matches, func(a, b *core.SimilarityMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
