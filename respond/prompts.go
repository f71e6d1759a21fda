package respond

import (
	"fmt"
	"strings"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
)

const answerSystemPrompt = `You are a customer support assistant for a data catalog product.
Answer the customer's question using ONLY the numbered sources provided.
Cite every claim with the tag of the source it came from, for example [S1].
Do not invent sources or cite tags that were not provided.
If the sources do not cover the question, say so plainly and suggest contacting support.`

const answerPromptTemplate = `Customer ticket:
%s

Classification: topic=%s, sentiment=%s, priority=%s

Sources:
%s

Write a concise, helpful reply to the customer. Cite sources inline with their tags.`

// buildAnswerPrompt composes the generation prompt. Chunks must be in
// relevance order; the tag [Sn] refers to the nth chunk, 1-based.
func buildAnswerPrompt(ticket *core.Ticket, classification *core.Classification, chunks []*core.RetrievedChunk) ai.Prompt {
	var sources strings.Builder
	for i, rc := range chunks {
		fmt.Fprintf(&sources, "[S%d] %s\n%s\n\n", i+1, rc.Chunk.Title, rc.Chunk.Text)
	}

	topic, sentiment, priority := "unknown", "unknown", "unknown"
	if classification != nil {
		topic = classification.Topic.String()
		sentiment = classification.Sentiment.String()
		priority = classification.Priority.String()
	}

	return ai.Prompt{
		System: answerSystemPrompt,
		User: fmt.Sprintf(answerPromptTemplate,
			strings.TrimSpace(ticket.Text),
			topic, sentiment, priority,
			strings.TrimSpace(sources.String())),
	}
}
