package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordView(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		record := NewProcessingRecord(&Ticket{Id: "t-1", Text: "hi", CreatedAt: time.Now().UTC()})
		record.Classification = &Classification{
			Topic:               TopicAccountAccess,
			Sentiment:           SentimentNegative,
			Priority:            PriorityHigh,
			TopicConfidence:     0.9,
			SentimentConfidence: 0.8,
			PriorityConfidence:  0.7,
			Reasoning:           "login failure",
		}
		record.Generation = &GenerationResult{
			AnswerText:    "Try resetting again.",
			CitedChunkIds: []ID{42, 7},
			UsedFallback:  false,
		}

		view := record.View()
		assert.Equal(t, "t-1", view.TicketId)
		assert.Equal(t, "account-access", view.Topic)
		assert.Equal(t, "negative", view.Sentiment)
		assert.Equal(t, "high", view.Priority)
		assert.Equal(t, 0.9, view.TopicConfidence)
		assert.Equal(t, []uint64{42, 7}, view.CitedChunkIds)
		assert.False(t, view.UsedFallback)
		assert.Equal(t, "pending", view.Status)
	})

	t.Run("failed record without classification", func(t *testing.T) {
		record := NewProcessingRecord(&Ticket{Id: "t-2", Text: ""})
		record.Fail(FailureMalformedTicket)

		view := record.View()
		assert.Equal(t, "failed", view.Status)
		assert.Equal(t, FailureMalformedTicket, view.FailureReason)
		assert.Equal(t, "unknown", view.Topic)
		assert.Equal(t, "unknown", view.Sentiment)
		assert.Equal(t, "unknown", view.Priority)
		assert.Zero(t, view.TopicConfidence)
		assert.Empty(t, view.AnswerText)
	})
}
