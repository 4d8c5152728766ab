// Package ingestion provides the batch pipeline that populates the vector index.
//
// The Pipeline type manages the one-shot ingestion workflow for a CSV catalog:
//   - Loading catalog rows and flattening them into text documents
//   - Splitting documents into fixed-size chunks with configured overlap
//   - Generating embeddings in batches and normalizing them to unit length
//   - Upserting (id, text, vector) documents into the collection batch by batch
//
// Embedding batches are processed concurrently using a worker pool. A failed
// batch does not roll back batches that already committed; the run reports
// the failure and exits non-zero at the CLI.
//
// Re-running against a populated collection aborts with ErrCollectionNotEmpty
// unless a rebuild was explicitly requested, in which case the collection is
// dropped first.
package ingestion
