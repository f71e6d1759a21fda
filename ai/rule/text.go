package rule

import "strings"

// Stop words filtered out before keyword matching
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "my": true, "after": true, "keeps": true,
}

// tokenSet splits text into words, lowercases, trims punctuation,
// removes stop words, and returns the remainder as a set.
func tokenSet(text string) map[string]bool {
	words := strings.Fields(text)
	tokens := make(map[string]bool, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			tokens[cleaned] = true
		}
	}

	return tokens
}
