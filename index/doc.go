// Package index provides an in-memory vector index over knowledge chunks.
//
// Chunks are stored with unit-length embedding vectors so cosine
// similarity reduces to a dot product at query time. The Index type is
// safe for concurrent use: searches may run while chunks are being added
// and never observe a partially-inserted entry.
package index
