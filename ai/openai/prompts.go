package openai

import (
	"fmt"
	"strings"

	"github.com/ticketry/ticketry/core"
)

const classificationSystemPrompt = `You are an expert customer-support ticket classifier.`

const classificationPromptTemplate = `Classify the following customer support ticket.

Ticket:
%s

Classify the ticket according to the following criteria:

1. TOPIC (choose the single most relevant one): %s
2. SENTIMENT (choose the most appropriate): %s
3. PRIORITY (choose based on urgency and impact): %s
   - urgent: critical issues blocking business operations or security incidents
   - high: important issues affecting core functionality
   - medium: issues that need attention but are not immediately critical
   - low: general questions, feature requests, or minor issues

Output ONLY valid JSON. Do not include any preamble, explanation, greeting,
or acknowledgment. Start your response directly with the opening brace { and
end with the closing brace }. Your output must exactly follow this shape:

{
    "topic": "chosen_topic",
    "sentiment": "chosen_sentiment",
    "priority": "chosen_priority",
    "topic_confidence": 0.0,
    "sentiment_confidence": 0.0,
    "priority_confidence": 0.0,
    "reasoning": "brief explanation of your classification"
}

Rules:
- Each label must be one of the listed values, exactly as written.
- Confidence values are numbers between 0 and 1.
- The JSON must parse without errors; no trailing commas, no extra keys,
  and no extraneous text outside the object.`

// buildClassificationPrompt creates the user prompt with the valid
// label sets embedded.
func buildClassificationPrompt(ticketText string) string {
	return fmt.Sprintf(classificationPromptTemplate,
		ticketText,
		joinTopics(),
		joinSentiments(),
		joinPriorities())
}

func joinTopics() string {
	names := make([]string, 0, len(core.Topics))
	for _, topic := range core.Topics {
		names = append(names, topic.String())
	}
	return strings.Join(names, ", ")
}

func joinSentiments() string {
	names := make([]string, 0, len(core.Sentiments))
	for _, sentiment := range core.Sentiments {
		names = append(names, sentiment.String())
	}
	return strings.Join(names, ", ")
}

func joinPriorities() string {
	names := make([]string, 0, len(core.Priorities))
	for _, priority := range core.Priorities {
		names = append(names, priority.String())
	}
	return strings.Join(names, ", ")
}
