package retrieve

import (
	"strings"

	"github.com/ticketry/ticketry/core"
)

// topicHints are appended to the ticket text when building the search
// query so retrieval favors documentation for the classified topic.
// TopicUnknown and TopicProduct deliberately have no hints: they cover
// too broad a surface to sharpen the query.
var topicHints = map[core.Topic][]string{
	core.TopicHowTo:         {"how to", "guide", "steps"},
	core.TopicConnector:     {"connector", "crawler", "integration", "source"},
	core.TopicLineage:       {"lineage", "upstream", "downstream"},
	core.TopicAPISDK:        {"api", "sdk", "endpoint", "token"},
	core.TopicSSO:           {"sso", "saml", "single sign-on", "identity provider"},
	core.TopicGlossary:      {"glossary", "term", "category"},
	core.TopicBestPractices: {"best practices", "governance", "recommendation"},
	core.TopicSensitiveData: {"sensitive", "pii", "masking", "classification"},
	core.TopicAccountAccess: {"login", "password", "account", "access"},
	core.TopicBilling:       {"billing", "invoice", "subscription", "plan"},
}

// BuildQuery produces the text to embed for a ticket. The classified
// topic's hint keywords are appended to steer the search; unknown or
// unhinted topics leave the text as-is.
func BuildQuery(ticket *core.Ticket, classification *core.Classification) string {
	text := strings.TrimSpace(ticket.Text)
	if classification == nil {
		return text
	}
	hints, ok := topicHints[classification.Topic]
	if !ok {
		return text
	}
	return text + "\n" + strings.Join(hints, " ")
}
