// Package retrieve finds knowledge chunks relevant to a support ticket.
//
// The Retriever builds a query from the ticket text and the classified
// topic's hint keywords, embeds it, and searches the in-memory knowledge
// index. Chunks below the configured relevance threshold are dropped; an
// empty result signals the answer generator to fall back to a no-evidence
// response rather than fabricating citations.
package retrieve
