package core

// Document is an indexed catalog chunk: the unit of embedding and retrieval.
// Documents are immutable once written; rebuilding the collection is the only
// way to change them.
type Document struct {
	// Id is a string identifier unique within an ingestion run ("0", "1", ...).
	Id string

	// Text is the chunk contents, a bounded-length fragment of a flattened
	// catalog row.
	Text string

	// Vector is the embedding for Text, L2-normalized before persistence so
	// that inner product approximates cosine similarity.
	Vector []float32
}

// Recommendation is a single anime recommendation produced by the language
// model and validated before being returned to a caller.
type Recommendation struct {
	Title      string   `json:"recommended_title"`
	Genre      []string `json:"genre"`
	Rating     float64  `json:"rating"`
	MatchScore float64  `json:"match_score"`
}

// RecommendationResult is the outcome of a query pipeline run. The pipeline
// never fails outright: upstream and parse errors are carried in Err alongside
// an empty recommendation list.
type RecommendationResult struct {
	Query           string           `json:"query"`
	Recommendations []Recommendation `json:"recommendations"`
	Err             string           `json:"error,omitempty"`
}

// SimilarityMatch is a document match from vector similarity search.
type SimilarityMatch struct {
	Document *Document
	Score    float32
}
