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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/animerec/ai"
	"github.com/poiesic/animerec/ai/openai"
	"github.com/poiesic/animerec/config"
	"github.com/poiesic/animerec/ingestion"
	"github.com/poiesic/animerec/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "animerec-ingest",
		Usage: "Build the anime vector index from a CSV catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "csv",
				Aliases: []string{"c"},
				Usage:   "Path to the catalog CSV file (overrides CSV_FILE_PATH)",
			},
			&cli.BoolFlag{
				Name:  "rebuild",
				Usage: "Delete and rebuild an already populated collection",
			},
		},
		Before: setupLogger,
		Action: ingestCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	csvPath := cfg.CSVFilePath
	if c.String("csv") != "" {
		csvPath = c.String("csv")
	}

	backend, err := badger.OpenBackend(cfg.DBPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend, cfg.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.EmbeddingHost),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
		ai.WithChatModel(cfg.GroqModelName),
		ai.WithChatToken(cfg.GroqAPIKey),
		ai.WithTemperature(cfg.GroqTemperature),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	pipeline, err := ingestion.NewPipeline(repo, provider,
		ingestion.WithChunkSize(cfg.ChunkSize),
		ingestion.WithChunkOverlap(cfg.ChunkOverlap),
		ingestion.WithBatchSize(cfg.BatchSize),
	)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	stats, err := pipeline.Run(ctx, csvPath, c.Bool("rebuild"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rows: %d\n", stats.Rows)
	fmt.Fprintf(os.Stderr, "Chunks: %d\n", stats.Chunks)
	fmt.Fprintf(os.Stderr, "Batches: %d\n", stats.Batches)
	fmt.Fprintf(os.Stderr, "Indexed: %d\n", stats.Indexed)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
