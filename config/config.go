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


package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings, sourced from the environment with an
// optional .env file.
type Config struct {
	// Groq (chat model)
	GroqAPIKey      string
	GroqModelName   string
	GroqTemperature float64

	// Embeddings
	EmbeddingHost  string
	EmbeddingModel string

	// Vector store
	DBPath         string
	CollectionName string

	// Ingestion
	CSVFilePath  string
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int

	// Retrieval
	SearchK int

	// HTTP
	Port        string
	GinMode     string
	CORSOrigins []string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first if present. GROQ_API_KEY is required.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModelName:   getEnv("GROQ_MODEL_NAME", "llama-3.3-70b-versatile"),
		GroqTemperature: getEnvFloat("GROQ_TEMPERATURE", 0),

		EmbeddingHost:  getEnv("EMBEDDING_HOST", "http://localhost:11434"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "all-minilm"),

		DBPath:         getEnv("DB_PATH", "./anime_db"),
		CollectionName: getEnv("COLLECTION_NAME", "anime_embeddings"),

		CSVFilePath:  getEnv("CSV_FILE_PATH", "./data/anime.csv"),
		ChunkSize:    getEnvInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 0),
		BatchSize:    getEnvInt("BATCH_SIZE", 100),

		SearchK: getEnvInt("SEARCH_K", 10),

		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "release"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
	}

	// Validate required fields
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
