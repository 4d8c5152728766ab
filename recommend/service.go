// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/animerec/ai"
	"github.com/poiesic/animerec/core"
	"github.com/poiesic/animerec/storage"
)

const (
	defaultSearchK = 15

	// maxSearchK caps retrieval regardless of configuration.
	maxSearchK = 20
)

// Service answers recommendation queries against the vector index.
type Service struct {
	repository storage.DocumentRepository
	embedder   ai.Embedder
	generator  ai.Generator
	searchK    int
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithSearchK sets how many catalog chunks are retrieved per query.
// Values above 20 are clamped to 20. Default is 15.
func WithSearchK(k int) Option {
	return func(s *Service) error {
		if k < 1 {
			return fmt.Errorf("search k must be positive, got %d", k)
		}
		if k > maxSearchK {
			k = maxSearchK
		}
		s.searchK = k
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a new recommendation service.
func NewService(repository storage.DocumentRepository, provider ai.AIProvider, opts ...Option) (*Service, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Service{
		repository: repository,
		embedder:   provider.Embedder(),
		generator:  provider.Generator(),
		searchK:    defaultSearchK,
		logger:     slog.Default().With("component", "recommend"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Recommend answers a query with validated recommendations.
func (s *Service) Recommend(ctx context.Context, query string) *core.RecommendationResult {
	return s.RecommendWithMonitor(ctx, query, nil)
}

// RecommendWithMonitor answers a query with monitoring. The monitor receives
// callbacks at each stage of the pipeline.
//
// The returned result always carries the query. On any upstream failure the
// recommendation list is empty and Err holds the failure text; no Go error
// escapes this method.
func (s *Service) RecommendWithMonitor(ctx context.Context, query string, monitor Monitor) *core.RecommendationResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)
	result := &core.RecommendationResult{
		Query:           query,
		Recommendations: []core.Recommendation{},
	}

	fail := func(stage string, err error) *core.RecommendationResult {
		s.logger.Error("recommendation failed", "stage", stage, "query", query, "err", err)
		result.Err = err.Error()
		monitor.Finish(result)
		return result
	}

	if strings.TrimSpace(query) == "" {
		return fail("validation", ErrEmptyQuery)
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return fail("embedding", err)
	}
	monitor.AfterEmbedding(embedding)

	matches, err := s.repository.FindSimilar(ctx, embedding, s.searchK)
	if err != nil {
		return fail("retrieval", err)
	}
	monitor.AfterRetrieval(matches)

	contextWindow := formatContext(matches)
	monitor.AfterContextBuild(contextWindow)

	response, err := s.generator.Generate(ctx, systemPrompt, userPrompt(contextWindow, query))
	if err != nil {
		return fail("generation", err)
	}
	monitor.AfterGeneration(response)

	recs, err := parseRecommendations(response)
	if err != nil {
		return fail("parsing", err)
	}

	result.Recommendations = recs
	s.logger.Info("recommendation served",
		"query", query, "retrieved", len(matches), "recommendations", len(recs))
	monitor.Finish(result)

	return result
}
