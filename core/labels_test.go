package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopic(t *testing.T) {
	t.Run("exact matches", func(t *testing.T) {
		for _, topic := range Topics {
			parsed, exact := ParseTopic(topic.String())
			assert.Equal(t, topic, parsed)
			assert.True(t, exact)
		}
	})

	t.Run("normalization", func(t *testing.T) {
		parsed, exact := ParseTopic("  How-To ")
		assert.Equal(t, TopicHowTo, parsed)
		assert.True(t, exact)

		parsed, exact = ParseTopic("API/SDK")
		assert.Equal(t, TopicAPISDK, parsed)
		assert.True(t, exact)

		parsed, exact = ParseTopic("Best practices")
		assert.Equal(t, TopicBestPractices, parsed)
		assert.True(t, exact)
	})

	t.Run("aliases are inexact", func(t *testing.T) {
		parsed, exact := ParseTopic("login")
		assert.Equal(t, TopicAccountAccess, parsed)
		assert.False(t, exact)

		parsed, exact = ParseTopic("Security")
		assert.Equal(t, TopicSensitiveData, parsed)
		assert.False(t, exact)
	})

	t.Run("unrecognized maps to unknown", func(t *testing.T) {
		parsed, exact := ParseTopic("weather")
		assert.Equal(t, TopicUnknown, parsed)
		assert.False(t, exact)
	})
}

func TestParseSentiment(t *testing.T) {
	t.Run("exact matches", func(t *testing.T) {
		for _, sentiment := range Sentiments {
			parsed, exact := ParseSentiment(sentiment.String())
			assert.Equal(t, sentiment, parsed)
			assert.True(t, exact)
		}
	})

	t.Run("legacy labels coerce to nearest", func(t *testing.T) {
		parsed, exact := ParseSentiment("Frustrated")
		assert.Equal(t, SentimentNegative, parsed)
		assert.False(t, exact)

		parsed, exact = ParseSentiment("Angry")
		assert.Equal(t, SentimentNegative, parsed)
		assert.False(t, exact)

		parsed, exact = ParseSentiment("Curious")
		assert.Equal(t, SentimentNeutral, parsed)
		assert.False(t, exact)
	})

	t.Run("unrecognized maps to unknown", func(t *testing.T) {
		parsed, _ := ParseSentiment("purple")
		assert.Equal(t, SentimentUnknown, parsed)
	})
}

func TestParsePriority(t *testing.T) {
	t.Run("exact matches", func(t *testing.T) {
		for _, priority := range Priorities {
			parsed, exact := ParsePriority(priority.String())
			assert.Equal(t, priority, parsed)
			assert.True(t, exact)
		}
	})

	t.Run("P0 scheme coerces", func(t *testing.T) {
		parsed, exact := ParsePriority("P0 (High)")
		assert.Equal(t, PriorityUrgent, parsed)
		assert.False(t, exact)

		parsed, exact = ParsePriority("P1 (Medium)")
		assert.Equal(t, PriorityMedium, parsed)
		assert.False(t, exact)

		parsed, exact = ParsePriority("P2 (Low)")
		assert.Equal(t, PriorityLow, parsed)
		assert.False(t, exact)
	})

	t.Run("unrecognized maps to unknown", func(t *testing.T) {
		parsed, _ := ParsePriority("sometime")
		assert.Equal(t, PriorityUnknown, parsed)
	})
}

func TestLabelStrings(t *testing.T) {
	assert.Equal(t, "unknown", TopicUnknown.String())
	assert.Equal(t, "unknown", SentimentUnknown.String())
	assert.Equal(t, "unknown", PriorityUnknown.String())
	assert.Equal(t, "account-access", TopicAccountAccess.String())
	assert.Equal(t, "urgent", PriorityUrgent.String())

	// Out-of-range values must not panic.
	assert.Equal(t, "unknown", Topic(99).String())
	assert.Equal(t, "unknown", Sentiment(99).String())
	assert.Equal(t, "unknown", Priority(99).String())
}
