// Package ingestion provides the document indexing pipeline.
//
// The Pipeline type runs one document through fetch, page extraction,
// chunking, embedding and a batched vector store write:
//   - Fetch the raw document bytes from the document repository
//   - Extract an ordered sequence of pages
//   - Chunk each page into overlapping windows (concurrent, per page)
//   - Embed each chunk and assign it a content-hash ID (concurrent, per chunk)
//   - Upsert the resulting vectors under the document's namespace
//
// Concurrent stages run on bounded worker pools to keep the number of
// in-flight embedding calls under the provider's limits. All stages are
// fail-fast: the first error cancels remaining work and the run fails
// before anything more is written. Because vector IDs are content hashes,
// re-running a failed ingestion is safe and convergent.
package ingestion
