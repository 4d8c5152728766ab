package recommend

import "errors"

var (
	// ErrRepositoryRequired is returned when a document repository is not provided.
	ErrRepositoryRequired = errors.New("document repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is reported when a query is empty or whitespace only.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNoJSONArray is returned when no JSON array can be located in the
	// model response.
	ErrNoJSONArray = errors.New("no JSON array found in model response")
)
