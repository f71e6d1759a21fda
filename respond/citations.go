package respond

import (
	"regexp"
	"strconv"

	"github.com/ticketry/ticketry/core"
)

var citationPattern = regexp.MustCompile(`\[S(\d+)\]`)

// extractCitations collects the chunk ids cited in the answer text.
// Tags outside the supplied set are dropped. Ids appear once each, in
// order of first citation.
func extractCitations(answer string, chunks []*core.RetrievedChunk) []core.ID {
	matches := citationPattern.FindAllStringSubmatch(answer, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[core.ID]bool, len(chunks))
	var cited []core.ID
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(chunks) {
			continue
		}
		id := chunks[n-1].Chunk.Id
		if seen[id] {
			continue
		}
		seen[id] = true
		cited = append(cited, id)
	}
	return cited
}
