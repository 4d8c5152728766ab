package ingestion

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/poiesic/animerec/ai/mock"
	"github.com/poiesic/animerec/core"
	"github.com/poiesic/animerec/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository("test")
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, p)
		p.Release()
	})

	t.Run("with options", func(t *testing.T) {
		p, err := NewPipeline(repo, provider,
			WithChunkSize(500),
			WithChunkOverlap(50),
			WithBatchSize(10),
			WithPoolSize(2),
			WithLogger(nil),
		)
		require.NoError(t, err)
		assert.NotNil(t, p)
		p.Release()
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil, provider)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(repo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		_, err := NewPipeline(repo, provider, WithChunkSize(0))
		assert.Error(t, err)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := NewPipeline(repo, provider, WithBatchSize(0))
		assert.Error(t, err)
	})
}

func TestPipelineRun(t *testing.T) {
	ctx := context.Background()
	csv := "title,genre,rating\nAkira,Sci-Fi,8.0\nMonster,Thriller,8.8\nMushishi,Fantasy,8.6\n"

	t.Run("populates the collection", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider(), WithBatchSize(2))
		require.NoError(t, err)
		defer p.Release()

		stats, err := p.Run(ctx, writeCSV(t, csv), false)
		require.NoError(t, err)

		assert.Equal(t, 3, stats.Rows)
		assert.Equal(t, 3, stats.Chunks) // short rows stay single chunks
		assert.Equal(t, 2, stats.Batches)
		assert.Equal(t, 3, stats.Indexed)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("persisted vectors are unit norm", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, writeCSV(t, csv), false)
		require.NoError(t, err)

		for _, id := range []string{"0", "1", "2"} {
			doc, err := repo.GetDocument(ctx, id)
			require.NoError(t, err)
			require.NotEmpty(t, doc.Vector)
			assert.InDelta(t, 1.0, core.Norm(doc.Vector), 1e-5, "document %s", id)
		}
	})

	t.Run("chunk ids are sequential and unique", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()

		stats, err := p.Run(ctx, writeCSV(t, csv), false)
		require.NoError(t, err)

		for i := 0; i < stats.Chunks; i++ {
			_, err := repo.GetDocument(ctx, strconv.Itoa(i))
			assert.NoError(t, err, "chunk %d", i)
		}
	})

	t.Run("long rows are split into multiple chunks", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		long := "synopsis: " + strings.Repeat("a story about space pirates ", 20)
		longCSV := "title,synopsis\nBebop,\"" + long + "\"\n"

		p, err := NewPipeline(repo, mock.NewMockProvider(), WithChunkSize(100))
		require.NoError(t, err)
		defer p.Release()

		stats, err := p.Run(ctx, writeCSV(t, longCSV), false)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Rows)
		assert.Greater(t, stats.Chunks, 1)
	})

	t.Run("deterministic chunking", func(t *testing.T) {
		run := func(collection string) *Stats {
			repo, backend, err := badger.NewMemoryRepository(collection)
			require.NoError(t, err)
			defer func() {
				repo.Close()
				backend.Close()
			}()

			p, err := NewPipeline(repo, mock.NewMockProvider(), WithChunkSize(100))
			require.NoError(t, err)
			defer p.Release()

			stats, err := p.Run(ctx, writeCSV(t, csv), false)
			require.NoError(t, err)
			return stats
		}

		first := run("a")
		second := run("b")
		assert.Equal(t, first.Chunks, second.Chunks)
	})

	t.Run("populated collection aborts without rebuild", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, writeCSV(t, csv), false)
		require.NoError(t, err)

		before, err := repo.GetDocument(ctx, "0")
		require.NoError(t, err)

		// Second run without rebuild must leave the collection untouched
		other := "title,genre\nDifferent,Comedy\n"
		_, err = p.Run(ctx, writeCSV(t, other), false)
		assert.ErrorIs(t, err, ErrCollectionNotEmpty)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		after, err := repo.GetDocument(ctx, "0")
		require.NoError(t, err)
		assert.Equal(t, before.Text, after.Text)
	})

	t.Run("rebuild drops and repopulates", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, writeCSV(t, csv), false)
		require.NoError(t, err)

		other := "title,genre\nDifferent,Comedy\n"
		stats, err := p.Run(ctx, writeCSV(t, other), true)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Indexed)

		doc, err := repo.GetDocument(ctx, "0")
		require.NoError(t, err)
		assert.Contains(t, doc.Text, "Different")
	})

	t.Run("embedding failure is reported", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}
		provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, writeCSV(t, csv), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding service down")
	})

	t.Run("embedding count mismatch is reported", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil // always one vector
		}
		provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

		p, err := NewPipeline(repo, provider)
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, writeCSV(t, csv), false)
		assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)
	})

	t.Run("missing csv fails", func(t *testing.T) {
		repo, backend, err := badger.NewMemoryRepository("test")
		require.NoError(t, err)
		defer func() {
			repo.Close()
			backend.Close()
		}()

		p, err := NewPipeline(repo, mock.NewMockProvider())
		require.NoError(t, err)
		defer p.Release()

		_, err = p.Run(ctx, "/nonexistent/catalog.csv", false)
		assert.Error(t, err)
	})
}
