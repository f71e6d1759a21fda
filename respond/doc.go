// Package respond generates grounded answers for support tickets.
//
// The Responder composes a prompt from the ticket, its classification
// and the retrieved knowledge chunks tagged [S1]..[Sn], invokes the
// language model, and extracts the citation tags the answer actually
// used. Tickets with no retrieved evidence get a canned fallback answer
// without a model call, so the system never fabricates citations.
package respond
