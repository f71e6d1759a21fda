package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketry/ticketry/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestMarshalUnmarshalKnowledgeChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		chunk *core.KnowledgeChunk
	}{
		{
			name: "minimal chunk",
			chunk: &core.KnowledgeChunk{
				Id:         core.ID(1),
				Title:      "Resetting your password",
				Text:       "Use the reset link on the login page.",
				InsertedAt: now,
			},
		},
		{
			name: "chunk with vector and metadata",
			chunk: &core.KnowledgeChunk{
				Id:          core.ID(2),
				SourceDocId: "kb-auth-001",
				Title:       "SSO configuration",
				Text:        "Configure SAML in the admin console.",
				Vector:      []float32{0.1, 0.2, 0.3, 0.4, 0.5},
				Metadata:    map[string]string{"section": "auth", "version": "2"},
				InsertedAt:  now,
			},
		},
		{
			name: "unicode text",
			chunk: &core.KnowledgeChunk{
				Id:         core.ID(3),
				Title:      "Glossary: 世界",
				Text:       "Términos con acentos y émojis 🌍",
				InsertedAt: now,
			},
		},
		{
			name: "long vector",
			chunk: &core.KnowledgeChunk{
				Id:         core.IDFromContent("long vector chunk"),
				Title:      "Large embedding",
				Text:       "body",
				Vector:     make([]float32, 1536),
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalKnowledgeChunk(tt.chunk)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalKnowledgeChunk(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.SourceDocId, decoded.SourceDocId)
			assert.Equal(t, tt.chunk.Title, decoded.Title)
			assert.Equal(t, tt.chunk.Text, decoded.Text)
			assert.True(t, tt.chunk.InsertedAt.Equal(decoded.InsertedAt))
			// Handle nil vs empty slice
			if len(tt.chunk.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.chunk.Vector, decoded.Vector)
			}
			if len(tt.chunk.Metadata) == 0 {
				assert.Empty(t, decoded.Metadata)
			} else {
				assert.Equal(t, tt.chunk.Metadata, decoded.Metadata)
			}
		})
	}
}

func TestUnmarshalKnowledgeChunk_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalKnowledgeChunk(tt.data)
			require.Error(t, err)
			if len(tt.data) == 0 {
				assert.ErrorIs(t, err, ErrTruncatedData)
			} else {
				assert.ErrorIs(t, err, ErrSerializationFailed)
			}
		})
	}
}

func TestMarshalUnmarshalProcessingRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	ticket := &core.Ticket{
		Id:        "TICK-1001",
		Text:      "My login keeps failing after password reset",
		CreatedAt: now,
		Metadata:  map[string]string{"channel": "email"},
	}

	record := core.NewProcessingRecord(ticket)
	record.Classification = &core.Classification{
		Topic:               core.TopicAccountAccess,
		Sentiment:           core.SentimentNegative,
		Priority:            core.PriorityHigh,
		TopicConfidence:     0.92,
		SentimentConfidence: 0.88,
		PriorityConfidence:  0.75,
		Reasoning:           "login failure after reset",
	}
	require.NoError(t, record.Advance(core.StatusClassified))
	record.Retrieval = []*core.RetrievedChunk{
		{
			Chunk: &core.KnowledgeChunk{
				Id:         core.ID(7),
				Title:      "Password reset",
				Text:       "Reset flow troubleshooting.",
				InsertedAt: now,
			},
			Score: 0.87,
		},
	}
	require.NoError(t, record.Advance(core.StatusRetrieved))
	record.Generation = &core.GenerationResult{
		AnswerText:    "Try clearing cached credentials [S1].",
		CitedChunkIds: []core.ID{7},
	}
	require.NoError(t, record.Advance(core.StatusGenerated))

	data := MarshalProcessingRecord(record)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalProcessingRecord(data)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	require.NotNil(t, decoded.Ticket)
	assert.Equal(t, ticket.Id, decoded.Ticket.Id)
	assert.Equal(t, ticket.Text, decoded.Ticket.Text)
	assert.True(t, ticket.CreatedAt.Equal(decoded.Ticket.CreatedAt))

	require.NotNil(t, decoded.Classification)
	assert.Equal(t, core.TopicAccountAccess, decoded.Classification.Topic)
	assert.InDelta(t, 0.92, decoded.Classification.TopicConfidence, 0.0001)

	require.Len(t, decoded.Retrieval, 1)
	assert.Equal(t, core.ID(7), decoded.Retrieval[0].Chunk.Id)
	assert.InDelta(t, 0.87, float64(decoded.Retrieval[0].Score), 0.0001)

	require.NotNil(t, decoded.Generation)
	assert.Equal(t, record.Generation.AnswerText, decoded.Generation.AnswerText)
	assert.Equal(t, []core.ID{7}, decoded.Generation.CitedChunkIds)

	assert.Equal(t, core.StatusGenerated, decoded.Status)
	assert.Empty(t, decoded.FailureReason)
	require.Len(t, decoded.Transitions, 4)
	for i, tr := range record.Transitions {
		assert.Equal(t, tr.Status, decoded.Transitions[i].Status)
		assert.True(t, tr.At.Truncate(time.Microsecond).Equal(decoded.Transitions[i].At))
	}
}

func TestMarshalUnmarshalProcessingRecord_FailedAndSparse(t *testing.T) {
	record := core.NewProcessingRecord(&core.Ticket{Id: "TICK-2", Text: "  "})
	record.Fail(core.FailureMalformedTicket)

	data := MarshalProcessingRecord(record)
	decoded, err := UnmarshalProcessingRecord(data)
	require.NoError(t, err)

	assert.Equal(t, core.StatusFailed, decoded.Status)
	assert.Equal(t, core.FailureMalformedTicket, decoded.FailureReason)
	assert.Nil(t, decoded.Classification)
	assert.Nil(t, decoded.Generation)
	assert.Empty(t, decoded.Retrieval)
}

func TestRoundTripConsistency(t *testing.T) {
	t.Run("multiple marshal-unmarshal cycles", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		original := &core.KnowledgeChunk{
			Id:          core.ID(999),
			SourceDocId: "kb-999",
			Title:       "Consistency",
			Text:        "Testing consistency",
			Vector:      []float32{0.1, 0.2, 0.3},
			Metadata:    map[string]string{"a": "b"},
			InsertedAt:  now,
		}

		current := original
		for i := 0; i < 3; i++ {
			data := MarshalKnowledgeChunk(current)
			decoded, err := UnmarshalKnowledgeChunk(data)
			require.NoError(t, err)
			current = decoded
		}

		assert.Equal(t, original.Id, current.Id)
		assert.Equal(t, original.Text, current.Text)
		assert.Equal(t, original.Vector, current.Vector)
		assert.Equal(t, original.Metadata, current.Metadata)
	})
}
