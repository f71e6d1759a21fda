package core

import "strings"

// Topic categorizes what a ticket is about. The set is closed so
// downstream consumers can switch exhaustively; TopicUnknown is the
// degraded value used when classification is unavailable.
type Topic int

const (
	TopicUnknown Topic = iota
	TopicHowTo
	TopicProduct
	TopicConnector
	TopicLineage
	TopicAPISDK
	TopicSSO
	TopicGlossary
	TopicBestPractices
	TopicSensitiveData
	TopicAccountAccess
	TopicBilling
)

var topicNames = map[Topic]string{
	TopicUnknown:       "unknown",
	TopicHowTo:         "how-to",
	TopicProduct:       "product",
	TopicConnector:     "connector",
	TopicLineage:       "lineage",
	TopicAPISDK:        "api-sdk",
	TopicSSO:           "sso",
	TopicGlossary:      "glossary",
	TopicBestPractices: "best-practices",
	TopicSensitiveData: "sensitive-data",
	TopicAccountAccess: "account-access",
	TopicBilling:       "billing",
}

// Topics lists every valid topic except TopicUnknown, in a stable order.
// Used when building classification prompts.
var Topics = []Topic{
	TopicHowTo, TopicProduct, TopicConnector, TopicLineage, TopicAPISDK,
	TopicSSO, TopicGlossary, TopicBestPractices, TopicSensitiveData,
	TopicAccountAccess, TopicBilling,
}

func (t Topic) String() string {
	if name, ok := topicNames[t]; ok {
		return name
	}
	return "unknown"
}

// topicAliases maps normalized label variants a model may emit to the
// nearest valid topic.
var topicAliases = map[string]Topic{
	"howto":          TopicHowTo,
	"how-to-guide":   TopicHowTo,
	"question":       TopicHowTo,
	"api":            TopicAPISDK,
	"sdk":            TopicAPISDK,
	"apisdk":         TopicAPISDK,
	"single-sign-on": TopicSSO,
	"authentication": TopicAccountAccess,
	"login":          TopicAccountAccess,
	"account":        TopicAccountAccess,
	"password":       TopicAccountAccess,
	"security":       TopicSensitiveData,
	"privacy":        TopicSensitiveData,
	"compliance":     TopicSensitiveData,
	"payment":        TopicBilling,
	"invoice":        TopicBilling,
	"feature-request": TopicProduct,
	"data-lineage":    TopicLineage,
	"business-glossary": TopicGlossary,
}

// ParseTopic maps a free-form label to a topic. The second return is
// true only for an exact match; callers lower confidence when an alias
// was needed. Unrecognized labels map to TopicUnknown.
func ParseTopic(s string) (Topic, bool) {
	norm := normalizeLabel(s)
	for topic, name := range topicNames {
		if topic != TopicUnknown && norm == name {
			return topic, true
		}
	}
	if topic, ok := topicAliases[norm]; ok {
		return topic, false
	}
	return TopicUnknown, false
}

// Sentiment captures the customer's emotional tone.
type Sentiment int

const (
	SentimentUnknown Sentiment = iota
	SentimentNegative
	SentimentNeutral
	SentimentPositive
)

var sentimentNames = map[Sentiment]string{
	SentimentUnknown:  "unknown",
	SentimentNegative: "negative",
	SentimentNeutral:  "neutral",
	SentimentPositive: "positive",
}

// Sentiments lists every valid sentiment except SentimentUnknown.
var Sentiments = []Sentiment{SentimentNegative, SentimentNeutral, SentimentPositive}

func (s Sentiment) String() string {
	if name, ok := sentimentNames[s]; ok {
		return name
	}
	return "unknown"
}

var sentimentAliases = map[string]Sentiment{
	"frustrated":   SentimentNegative,
	"angry":        SentimentNegative,
	"upset":        SentimentNegative,
	"annoyed":      SentimentNegative,
	"unhappy":      SentimentNegative,
	"curious":      SentimentNeutral,
	"calm":         SentimentNeutral,
	"matter-of-fact": SentimentNeutral,
	"happy":        SentimentPositive,
	"satisfied":    SentimentPositive,
	"pleased":      SentimentPositive,
	"grateful":     SentimentPositive,
}

// ParseSentiment maps a free-form label to a sentiment; see ParseTopic
// for the exact-match semantics of the second return.
func ParseSentiment(s string) (Sentiment, bool) {
	norm := normalizeLabel(s)
	for sentiment, name := range sentimentNames {
		if sentiment != SentimentUnknown && norm == name {
			return sentiment, true
		}
	}
	if sentiment, ok := sentimentAliases[norm]; ok {
		return sentiment, false
	}
	return SentimentUnknown, false
}

// Priority ranks urgency and impact.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var priorityNames = map[Priority]string{
	PriorityUnknown: "unknown",
	PriorityLow:     "low",
	PriorityMedium:  "medium",
	PriorityHigh:    "high",
	PriorityUrgent:  "urgent",
}

// Priorities lists every valid priority except PriorityUnknown.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// priorityAliases covers the P0/P1/P2 scheme used by older tooling.
var priorityAliases = map[string]Priority{
	"p0":        PriorityUrgent,
	"p0-high":   PriorityUrgent,
	"critical":  PriorityUrgent,
	"blocker":   PriorityUrgent,
	"p1":        PriorityMedium,
	"p1-medium": PriorityMedium,
	"normal":    PriorityMedium,
	"p2":        PriorityLow,
	"p2-low":    PriorityLow,
	"minor":     PriorityLow,
}

// ParsePriority maps a free-form label to a priority; see ParseTopic
// for the exact-match semantics of the second return.
func ParsePriority(s string) (Priority, bool) {
	norm := normalizeLabel(s)
	for priority, name := range priorityNames {
		if priority != PriorityUnknown && norm == name {
			return priority, true
		}
	}
	if priority, ok := priorityAliases[norm]; ok {
		return priority, false
	}
	return PriorityUnknown, false
}

// normalizeLabel lowercases a label and collapses separators and
// punctuation so "P0 (High)" and "p0-high" compare equal.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '/':
			b.WriteRune('-')
		}
	}
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
