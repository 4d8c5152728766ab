package recommend

import "github.com/poiesic/animerec/core"

// Monitor provides hooks to observe the recommendation pipeline.
// Implement this interface to track intermediate steps during a request.
type Monitor interface {
	Start(query string)
	AfterEmbedding(vector []float32)
	AfterRetrieval(matches []*core.SimilarityMatch)
	AfterContextBuild(context string)
	AfterGeneration(response string)
	Finish(result *core.RecommendationResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                  {}
func (n *noopMonitor) AfterRetrieval(_ []*core.SimilarityMatch)    {}
func (n *noopMonitor) AfterContextBuild(_ string)                  {}
func (n *noopMonitor) AfterGeneration(_ string)                    {}
func (n *noopMonitor) Finish(_ *core.RecommendationResult)         {}
