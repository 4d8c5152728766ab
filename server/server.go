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


package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/poiesic/animerec/recommend"
)

const apiVersion = "1.0.0"

// Server serves the recommendation API over HTTP.
type Server struct {
	service     *recommend.Service
	router      *gin.Engine
	corsOrigins []string
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithCORSOrigins sets the allowed CORS origins.
// Default is "*".
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) error {
		if len(origins) == 0 {
			return errors.New("at least one CORS origin required")
		}
		s.corsOrigins = origins
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server around the recommendation service.
func NewServer(service *recommend.Service, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, errors.New("recommendation service required")
	}

	s := &Server{
		service:     service,
		corsOrigins: []string{"*"},
		logger:      slog.Default().With("component", "server"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(s.corsOrigins) == 1 && s.corsOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.corsOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.POST("/recommend", s.handleRecommend)

	return router
}

// Handler returns the underlying HTTP handler, suitable for http.Server and
// for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails. Callers wanting graceful shutdown
// should wrap Handler in their own http.Server.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.router.Run(addr)
}

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Anime Movie Recommender API",
		"version": apiVersion,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleRecommend answers with a bare JSON array of recommendations.
// Client errors use 400, upstream failures 500, both with a detail field.
func (s *Server) handleRecommend(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Query cannot be empty"})
		return
	}

	result := s.service.Recommend(c.Request.Context(), req.Query)
	if result.Err != "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": "Recommendation error: " + result.Err,
		})
		return
	}

	c.JSON(http.StatusOK, result.Recommendations)
}

// NewHTTPServer wraps the handler in an http.Server with sane timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
