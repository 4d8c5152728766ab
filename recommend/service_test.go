package recommend

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/poiesic/animerec/ai/mock"
	"github.com/poiesic/animerec/core"
	"github.com/poiesic/animerec/storage"
	"github.com/poiesic/animerec/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.DocumentRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository("test")
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func seedDocuments(t *testing.T, repo storage.DocumentRepository, n int) {
	t.Helper()
	docs := make([]*core.Document, 0, n)
	for i := 0; i < n; i++ {
		vec := make([]float32, 4)
		vec[i%4] = 1
		docs = append(docs, &core.Document{
			Id:     strconv.Itoa(i),
			Text:   "title: Anime " + strconv.Itoa(i),
			Vector: vec,
		})
	}
	require.NoError(t, repo.AddDocuments(context.Background(), docs...))
}

func TestNewService(t *testing.T) {
	repo := newTestRepository(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewService(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, s)
		assert.Equal(t, defaultSearchK, s.searchK)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewService(nil, provider)
		assert.Equal(t, ErrRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewService(repo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("search k clamped to twenty", func(t *testing.T) {
		s, err := NewService(repo, provider, WithSearchK(50))
		require.NoError(t, err)
		assert.Equal(t, 20, s.searchK)
	})

	t.Run("invalid search k", func(t *testing.T) {
		_, err := NewService(repo, provider, WithSearchK(0))
		assert.Error(t, err)
	})
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("returns validated recommendations", func(t *testing.T) {
		repo := newTestRepository(t)
		seedDocuments(t, repo, 5)

		s, err := NewService(repo, mock.NewMockProvider())
		require.NoError(t, err)

		result := s.Recommend(ctx, "space bounty hunters")
		require.NotNil(t, result)
		assert.Equal(t, "space bounty hunters", result.Query)
		assert.Empty(t, result.Err)
		require.Len(t, result.Recommendations, 2)
		assert.Equal(t, "Cowboy Bebop", result.Recommendations[0].Title)
	})

	t.Run("empty collection still serves", func(t *testing.T) {
		repo := newTestRepository(t)

		s, err := NewService(repo, mock.NewMockProvider())
		require.NoError(t, err)

		result := s.Recommend(ctx, "anything")
		assert.Empty(t, result.Err)
		assert.Len(t, result.Recommendations, 2)
	})

	t.Run("empty query degrades without touching upstream", func(t *testing.T) {
		repo := newTestRepository(t)

		embedder := mock.NewMockEmbedder()
		provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

		s, err := NewService(repo, provider)
		require.NoError(t, err)

		for _, query := range []string{"", "   ", "\t\n"} {
			result := s.Recommend(ctx, query)
			require.NotNil(t, result)
			assert.Equal(t, query, result.Query)
			assert.NotNil(t, result.Recommendations)
			assert.Empty(t, result.Recommendations)
			assert.Equal(t, ErrEmptyQuery.Error(), result.Err)
		}
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("embedding failure yields error result", func(t *testing.T) {
		repo := newTestRepository(t)

		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("embedding host unreachable")
		}
		provider := mock.NewMockProviderWithServices(embedder, mock.NewMockGenerator())

		s, err := NewService(repo, provider)
		require.NoError(t, err)

		result := s.Recommend(ctx, "query")
		assert.Equal(t, "query", result.Query)
		assert.NotNil(t, result.Recommendations)
		assert.Empty(t, result.Recommendations)
		assert.Contains(t, result.Err, "embedding host unreachable")
	})

	t.Run("generation failure yields error result", func(t *testing.T) {
		repo := newTestRepository(t)
		seedDocuments(t, repo, 3)

		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "", errors.New("model overloaded")
		}
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

		s, err := NewService(repo, provider)
		require.NoError(t, err)

		result := s.Recommend(ctx, "query")
		assert.Empty(t, result.Recommendations)
		assert.Contains(t, result.Err, "model overloaded")
	})

	t.Run("unparseable response yields error result", func(t *testing.T) {
		repo := newTestRepository(t)
		seedDocuments(t, repo, 3)

		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			return "Sorry, I can only answer in prose.", nil
		}
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

		s, err := NewService(repo, provider)
		require.NoError(t, err)

		result := s.Recommend(ctx, "query")
		assert.Empty(t, result.Recommendations)
		assert.Contains(t, result.Err, "no JSON array")
	})

	t.Run("prompt carries context and query", func(t *testing.T) {
		repo := newTestRepository(t)
		seedDocuments(t, repo, 3)

		var capturedSystem, capturedUser string
		generator := mock.NewMockGenerator()
		generator.GenerateFunc = func(ctx context.Context, system, user string) (string, error) {
			capturedSystem = system
			capturedUser = user
			return "[]", nil
		}
		provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

		s, err := NewService(repo, provider)
		require.NoError(t, err)

		result := s.Recommend(ctx, "mecha with drama")
		assert.Empty(t, result.Err)
		assert.Contains(t, capturedSystem, "anime recommender")
		assert.Contains(t, capturedUser, "User question or preference: mecha with drama")
		assert.Contains(t, capturedUser, "title: Anime")
	})

	t.Run("retrieval honors search k", func(t *testing.T) {
		repo := newTestRepository(t)
		seedDocuments(t, repo, 10)

		s, err := NewService(repo, mock.NewMockProvider(), WithSearchK(3))
		require.NoError(t, err)

		var retrieved int
		monitor := &captureMonitor{
			afterRetrieval: func(matches []*core.SimilarityMatch) { retrieved = len(matches) },
		}

		result := s.RecommendWithMonitor(ctx, "query", monitor)
		assert.Empty(t, result.Err)
		assert.Equal(t, 3, retrieved)
	})
}

// captureMonitor records selected pipeline stages for assertions.
type captureMonitor struct {
	noopMonitor
	afterRetrieval func(matches []*core.SimilarityMatch)
}

func (c *captureMonitor) AfterRetrieval(matches []*core.SimilarityMatch) {
	if c.afterRetrieval != nil {
		c.afterRetrieval(matches)
	}
}
