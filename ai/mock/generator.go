package mock

import "context"

// defaultResponse is the canned model output returned when no custom behavior
// is injected. It is a valid bare JSON array so parser-dependent tests work
// out of the box.
const defaultResponse = `[
  {"recommended_title": "Cowboy Bebop", "genre": ["Action", "Sci-Fi"], "rating": 8.8, "match_score": 0.95},
  {"recommended_title": "Samurai Champloo", "genre": ["Action", "Adventure"], "rating": 8.5, "match_score": 0.88}
]`

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a fixed valid JSON array of recommendations.
	GenerateFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns the injected response or the default canned JSON array.
func (m *MockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, userPrompt)
	}

	return defaultResponse, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
