package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/animerec/ai"
	"github.com/poiesic/animerec/core"
	"github.com/poiesic/animerec/storage"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 0
	defaultBatchSize    = 100
)

// Pipeline orchestrates the ingestion of a CSV catalog into the vector index.
// It manages chunking, concurrent embedding of batches, vector normalization,
// and batched upserts.
type Pipeline struct {
	repository   storage.DocumentRepository
	embedder     ai.Embedder
	pool         *ants.Pool
	chunkSize    int
	chunkOverlap int
	batchSize    int
	logger       *slog.Logger
}

// Stats reports the outcome of an ingestion run. Indexed is the collection's
// final document count as reported by storage; it is logged but not verified
// against Chunks.
type Stats struct {
	Rows    int
	Chunks  int
	Batches int
	Indexed int
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunkSize sets the maximum chunk length in characters.
// Default is 1000.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		p.chunkSize = size
		return nil
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks in characters.
// Default is 0.
func WithChunkOverlap(overlap int) Option {
	return func(p *Pipeline) error {
		if overlap < 0 {
			return fmt.Errorf("chunk overlap cannot be negative, got %d", overlap)
		}
		p.chunkOverlap = overlap
		return nil
	}
}

// WithBatchSize sets the number of chunks embedded and upserted per batch.
// Default is 100.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent batch embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(repository storage.DocumentRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository:   repository,
		embedder:     provider.Embedder(),
		pool:         pool,
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
		batchSize:    defaultBatchSize,
		logger:       slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run ingests the CSV catalog at csvPath into the repository's collection.
//
// If the collection already holds documents, Run aborts with
// ErrCollectionNotEmpty unless rebuild is true, in which case the existing
// collection is dropped first. A failed embedding or upsert batch does not
// roll back batches that already committed.
func (p *Pipeline) Run(ctx context.Context, csvPath string, rebuild bool) (*Stats, error) {
	rows, err := LoadCatalog(csvPath)
	if err != nil {
		return nil, err
	}
	p.logger.Info("loaded catalog", "path", csvPath, "rows", len(rows))

	chunks, err := p.split(rows)
	if err != nil {
		return nil, err
	}
	p.logger.Info("split catalog into chunks", "chunks", len(chunks))

	// Rebuild gate: a populated collection is only dropped on explicit request.
	existing, err := p.repository.Count(ctx)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		if !rebuild {
			return nil, fmt.Errorf("%w: %d existing documents in %q",
				ErrCollectionNotEmpty, existing, p.repository.Collection())
		}
		p.logger.Warn("dropping populated collection for rebuild",
			"collection", p.repository.Collection(), "documents", existing)
		if err := p.repository.DeleteAll(ctx); err != nil {
			return nil, err
		}
	}

	stats := &Stats{Rows: len(rows), Chunks: len(chunks)}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		runErrs  []error
		recordFn = func(err error) {
			errMu.Lock()
			runErrs = append(runErrs, err)
			errMu.Unlock()
		}
	)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := min(start+p.batchSize, len(chunks))
		batch := chunks[start:end]
		batchNum := stats.Batches
		stats.Batches++

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.processBatch(ctx, batch); err != nil {
				p.logger.Error("batch failed", "batch", batchNum, "err", err)
				recordFn(fmt.Errorf("batch %d: %w", batchNum, err))
				return
			}
			p.logger.Info("batch committed", "batch", batchNum, "documents", len(batch))
		})
		if submitErr != nil {
			wg.Done()
			recordFn(submitErr)
			break
		}
	}

	wg.Wait()

	// Report the final count; it is informational only.
	indexed, countErr := p.repository.Count(ctx)
	if countErr == nil {
		stats.Indexed = indexed
		p.logger.Info("ingestion finished",
			"collection", p.repository.Collection(), "indexed", indexed)
	}

	if len(runErrs) > 0 {
		return stats, errors.Join(runErrs...)
	}
	return stats, nil
}

// split chunks every flattened row and assigns sequential string IDs unique
// within this run.
func (p *Pipeline) split(rows []string) ([]*core.Document, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(p.chunkSize),
		textsplitter.WithChunkOverlap(p.chunkOverlap),
	)

	var docs []*core.Document
	for _, row := range rows {
		parts, err := splitter.SplitText(row)
		if err != nil {
			return nil, fmt.Errorf("splitting row: %w", err)
		}
		for _, part := range parts {
			docs = append(docs, &core.Document{
				Id:   strconv.Itoa(len(docs)),
				Text: part,
			})
		}
	}
	return docs, nil
}

// processBatch embeds one batch of chunks, normalizes the vectors to unit
// length, and upserts the documents.
func (p *Pipeline) processBatch(ctx context.Context, batch []*core.Document) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("%w: expected %d, received %d",
			ErrEmbeddingCountMismatch, len(batch), len(vectors))
	}

	for i, vector := range vectors {
		if err := core.NormalizeL2(vector); err != nil {
			return fmt.Errorf("normalizing vector for chunk %s: %w", batch[i].Id, err)
		}
		batch[i].Vector = vector
	}

	return p.repository.AddDocuments(ctx, batch...)
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
