package rule

import (
	"context"
	"log/slog"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
)

// Classifier is a keyword-based ticket classifier that runs entirely
// in-process. It serves as the lightweight local alternative to the
// language-model classifier: always reachable, never retried, and
// honest about its confidence.
type Classifier struct {
	logger *slog.Logger
}

var _ ai.Classifier = (*Classifier)(nil)

// NewClassifier creates a rule-based classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		logger: slog.Default().With("component", "rule-classifier"),
	}
}

var topicKeywords = map[core.Topic][]string{
	core.TopicAccountAccess: {"login", "password", "reset", "signin", "sign-in", "locked", "lockout", "credentials", "2fa", "mfa"},
	core.TopicSSO:           {"sso", "saml", "oidc", "okta", "azure-ad", "identity"},
	core.TopicConnector:     {"connector", "snowflake", "bigquery", "redshift", "databricks", "crawl", "sync"},
	core.TopicLineage:       {"lineage", "upstream", "downstream", "dependency"},
	core.TopicAPISDK:        {"api", "sdk", "endpoint", "token", "rest", "webhook", "rate"},
	core.TopicGlossary:      {"glossary", "term", "definition", "taxonomy"},
	core.TopicSensitiveData: {"pii", "gdpr", "privacy", "compliance", "security", "breach", "sensitive"},
	core.TopicBilling:       {"billing", "invoice", "payment", "subscription", "charge", "refund"},
	core.TopicBestPractices: {"recommend", "practice", "practices", "convention", "approach"},
	core.TopicHowTo:         {"how", "guide", "tutorial", "setup", "configure", "create"},
	core.TopicProduct:       {"feature", "request", "roadmap", "product", "ui", "dashboard"},
}

var sentimentKeywords = map[core.Sentiment][]string{
	core.SentimentNegative: {"failing", "fails", "fail", "broken", "error", "errors", "cannot", "frustrated", "angry", "unacceptable", "crash", "stuck", "wrong", "bad"},
	core.SentimentPositive: {"thanks", "thank", "great", "love", "awesome", "works", "perfect", "appreciate"},
}

var priorityKeywords = map[core.Priority][]string{
	core.PriorityUrgent: {"outage", "down", "production", "breach", "critical", "urgent", "blocker", "emergency"},
	core.PriorityHigh:   {"failing", "fails", "broken", "blocked", "cannot", "error", "severe"},
	core.PriorityLow:    {"wondering", "question", "curious", "feature", "suggestion", "minor", "someday"},
}

// Classify assigns labels by counting keyword matches against the
// ticket text. Unmatched fields fall back to the generic defaults at
// low confidence. It never returns an error.
func (c *Classifier) Classify(_ context.Context, ticket *core.Ticket) (*core.Classification, error) {
	tokens := tokenSet(ticket.Text)

	topic, topicHits := bestMatch(tokens, topicKeywords)
	sentiment, sentimentHits := bestMatch(tokens, sentimentKeywords)
	priority, priorityHits := bestMatch(tokens, priorityKeywords)

	classification := &core.Classification{
		Topic:               core.TopicProduct,
		Sentiment:           core.SentimentNeutral,
		Priority:            core.PriorityMedium,
		TopicConfidence:     fallbackConfidence,
		SentimentConfidence: fallbackConfidence,
		PriorityConfidence:  fallbackConfidence,
		Reasoning:           "keyword-based classification",
	}
	if topicHits > 0 {
		classification.Topic = topic
		classification.TopicConfidence = matchConfidence(topicHits)
	}
	if sentimentHits > 0 {
		classification.Sentiment = sentiment
		classification.SentimentConfidence = matchConfidence(sentimentHits)
	}
	if priorityHits > 0 {
		classification.Priority = priority
		classification.PriorityConfidence = matchConfidence(priorityHits)
	}

	c.logger.Debug("classified ticket",
		"ticket", ticket.Id,
		"topic", classification.Topic,
		"sentiment", classification.Sentiment,
		"priority", classification.Priority)
	return classification, nil
}

const fallbackConfidence = 0.25

// matchConfidence maps a keyword hit count onto [0.5, 0.9].
func matchConfidence(hits int) float64 {
	confidence := 0.35 + 0.15*float64(hits)
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}

// bestMatch returns the label with the most keyword hits. Ties resolve
// to the label checked first in the table's iteration; callers treat
// equal-scoring labels as interchangeable at this confidence level.
func bestMatch[T comparable](tokens map[string]bool, table map[T][]string) (T, int) {
	var best T
	bestHits := 0
	for label, keywords := range table {
		hits := 0
		for _, keyword := range keywords {
			if tokens[keyword] {
				hits++
			}
		}
		if hits > bestHits {
			best = label
			bestHits = hits
		}
	}
	return best, bestHits
}
