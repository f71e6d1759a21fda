package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/ai/mock"
	"github.com/ticketry/ticketry/core"
)

func retrievedChunks(texts ...string) []*core.RetrievedChunk {
	chunks := make([]*core.RetrievedChunk, len(texts))
	for i, text := range texts {
		chunks[i] = &core.RetrievedChunk{
			Chunk: &core.KnowledgeChunk{
				Id:    core.ID(i + 100),
				Title: "doc",
				Text:  text,
			},
			Score: 0.9,
		}
	}
	return chunks
}

func TestNewResponder_Validation(t *testing.T) {
	_, err := NewResponder(nil)
	assert.ErrorIs(t, err, ErrGeneratorRequired)
}

func TestRespond_CitationsExtracted(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "Reset your password from the profile page [S1]. See also the SSO guide [S2].", nil
	}

	r, err := NewResponder(gen)
	require.NoError(t, err)

	chunks := retrievedChunks("password reset steps", "sso configuration")
	result, err := r.Respond(context.Background(), &core.Ticket{Id: "t-1", Text: "How do I reset?"}, nil, chunks)
	require.NoError(t, err)

	assert.False(t, result.UsedFallback)
	assert.Equal(t, []core.ID{100, 101}, result.CitedChunkIds)
}

func TestRespond_InventedCitationsDropped(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "Answer with a real tag [S1], an invented one [S7], and a repeat [S1].", nil
	}

	r, err := NewResponder(gen)
	require.NoError(t, err)

	result, err := r.Respond(context.Background(), &core.Ticket{Id: "t-2", Text: "q"}, nil, retrievedChunks("only source"))
	require.NoError(t, err)

	assert.Equal(t, []core.ID{100}, result.CitedChunkIds)
}

func TestRespond_NoEvidenceFallback(t *testing.T) {
	gen := mock.NewMockGenerator()

	r, err := NewResponder(gen)
	require.NoError(t, err)

	result, err := r.Respond(context.Background(), &core.Ticket{Id: "t-3", Text: "q"}, nil, nil)
	require.NoError(t, err)

	assert.True(t, result.UsedFallback)
	assert.Equal(t, NoEvidenceAnswer, result.AnswerText)
	assert.Empty(t, result.CitedChunkIds)
	// The language model is never consulted without evidence.
	assert.Equal(t, 0, gen.CallCount())
}

func TestRespond_GenerationFailurePropagates(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "", ai.ErrGenerationUnavailable
	}

	r, err := NewResponder(gen)
	require.NoError(t, err)

	_, err = r.Respond(context.Background(), &core.Ticket{Id: "t-4", Text: "q"}, nil, retrievedChunks("source"))
	assert.True(t, errors.Is(err, ai.ErrGenerationUnavailable))
}

func TestRespond_EmptyAnswerIsUnavailable(t *testing.T) {
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		return "   ", nil
	}

	r, err := NewResponder(gen)
	require.NoError(t, err)

	_, err = r.Respond(context.Background(), &core.Ticket{Id: "t-5", Text: "q"}, nil, retrievedChunks("source"))
	assert.True(t, errors.Is(err, ai.ErrGenerationUnavailable))
}

func TestRespond_PromptCarriesSourcesAndClassification(t *testing.T) {
	var captured ai.Prompt
	gen := mock.NewMockGenerator()
	gen.GenerateFunc = func(ctx context.Context, prompt ai.Prompt) (string, error) {
		captured = prompt
		return "ok [S1]", nil
	}

	r, err := NewResponder(gen)
	require.NoError(t, err)

	cls := &core.Classification{
		Topic:     core.TopicAccountAccess,
		Sentiment: core.SentimentNegative,
		Priority:  core.PriorityHigh,
	}
	_, err = r.Respond(context.Background(), &core.Ticket{Id: "t-6", Text: "Cannot log in"}, cls, retrievedChunks("reset instructions"))
	require.NoError(t, err)

	assert.Contains(t, captured.User, "Cannot log in")
	assert.Contains(t, captured.User, "[S1]")
	assert.Contains(t, captured.User, "reset instructions")
	assert.Contains(t, captured.User, "topic=account-access")
	assert.Contains(t, captured.System, "Cite every claim")
}

func TestExtractCitations(t *testing.T) {
	chunks := retrievedChunks("a", "b", "c")

	tests := []struct {
		name     string
		answer   string
		expected []core.ID
	}{
		{"no tags", "plain answer", nil},
		{"single tag", "see [S2]", []core.ID{101}},
		{"order of first citation", "[S3] then [S1] then [S3]", []core.ID{102, 100}},
		{"zero index invalid", "bad [S0]", nil},
		{"out of range dropped", "[S4] only", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractCitations(tt.answer, chunks))
		})
	}
}

func TestIsRAGTopic(t *testing.T) {
	assert.True(t, IsRAGTopic(core.TopicHowTo))
	assert.True(t, IsRAGTopic(core.TopicAccountAccess))
	assert.False(t, IsRAGTopic(core.TopicBilling))
	assert.False(t, IsRAGTopic(core.TopicUnknown))
}
