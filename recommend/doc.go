// Package recommend implements the retrieval-augmented recommendation
// service. A query is embedded, similar catalog chunks are retrieved from
// the vector index, and a bounded context window is handed to the language
// model, whose reply is parsed and validated into structured
// recommendations.
//
// Recommend never fails with a Go error. Upstream failures (embedding,
// retrieval, generation, parsing) surface as a result with an empty
// recommendation list and a populated Err field, so callers can always
// serialize the outcome.
package recommend
