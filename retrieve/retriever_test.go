package retrieve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/ai/mock"
	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/index"
)

func seedIndex(t *testing.T, chunks ...*core.KnowledgeChunk) *index.Index {
	t.Helper()
	ix := index.NewIndex()
	for _, c := range chunks {
		require.NoError(t, ix.Add(c))
	}
	return ix
}

// fixedEmbedder returns the same vector for every query.
func fixedEmbedder(vector []float32) *mock.MockEmbedder {
	e := mock.NewMockEmbedder()
	e.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
	return e
}

func TestNewRetriever_Validation(t *testing.T) {
	ix := index.NewIndex()
	embedder := mock.NewMockEmbedder()

	t.Run("nil index rejected", func(t *testing.T) {
		_, err := NewRetriever(nil, embedder)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("nil embedder rejected", func(t *testing.T) {
		_, err := NewRetriever(ix, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("invalid topK rejected", func(t *testing.T) {
		_, err := NewRetriever(ix, embedder, WithTopK(0))
		assert.ErrorIs(t, err, index.ErrInvalidTopK)
	})

	t.Run("invalid threshold rejected", func(t *testing.T) {
		_, err := NewRetriever(ix, embedder, WithThreshold(1.5))
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("defaults applied", func(t *testing.T) {
		r, err := NewRetriever(ix, embedder)
		require.NoError(t, err)
		assert.Equal(t, DefaultTopK, r.TopK())
		assert.Equal(t, DefaultThreshold, r.Threshold())
	})
}

func TestRetrieve_ThresholdFiltering(t *testing.T) {
	ix := seedIndex(t,
		&core.KnowledgeChunk{Id: 1, Text: "login troubleshooting", Vector: []float32{1, 0, 0}},
		&core.KnowledgeChunk{Id: 2, Text: "loosely related", Vector: []float32{1, 1, 0}},
		&core.KnowledgeChunk{Id: 3, Text: "unrelated", Vector: []float32{0, 0, 1}},
	)

	r, err := NewRetriever(ix, fixedEmbedder([]float32{1, 0, 0}), WithThreshold(0.9))
	require.NoError(t, err)

	ticket := &core.Ticket{Id: "t-1", Text: "Cannot sign in"}
	results, err := r.Retrieve(context.Background(), ticket, nil)
	require.NoError(t, err)

	// Only the exact match clears a 0.9 threshold.
	require.Len(t, results, 1)
	assert.Equal(t, core.ID(1), results[0].Chunk.Id)
	assert.InDelta(t, 1.0, float64(results[0].Score), 0.0001)
}

func TestRetrieve_AllBelowThresholdReturnsEmpty(t *testing.T) {
	ix := seedIndex(t,
		&core.KnowledgeChunk{Id: 1, Text: "unrelated", Vector: []float32{0, 0, 1}},
	)

	r, err := NewRetriever(ix, fixedEmbedder([]float32{1, 0, 0}), WithThreshold(0.5))
	require.NoError(t, err)

	results, err := r.Retrieve(context.Background(), &core.Ticket{Id: "t-2", Text: "query"}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r, err := NewRetriever(index.NewIndex(), fixedEmbedder([]float32{1, 0, 0}))
	require.NoError(t, err)

	results, err := r.Retrieve(context.Background(), &core.Ticket{Id: "t-3", Text: "query"}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_EmbedderFailurePropagates(t *testing.T) {
	ix := seedIndex(t,
		&core.KnowledgeChunk{Id: 1, Text: "chunk", Vector: []float32{1, 0, 0}},
	)
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, ai.ErrEmbeddingUnavailable
	}

	r, err := NewRetriever(ix, embedder)
	require.NoError(t, err)

	_, err = r.Retrieve(context.Background(), &core.Ticket{Id: "t-4", Text: "query"}, nil)
	assert.True(t, errors.Is(err, ai.ErrEmbeddingUnavailable))
}

func TestRetrieve_TopKLimitsResults(t *testing.T) {
	ix := seedIndex(t,
		&core.KnowledgeChunk{Id: 1, Text: "a", Vector: []float32{1, 0, 0}},
		&core.KnowledgeChunk{Id: 2, Text: "b", Vector: []float32{1, 0.1, 0}},
		&core.KnowledgeChunk{Id: 3, Text: "c", Vector: []float32{1, 0.2, 0}},
	)

	r, err := NewRetriever(ix, fixedEmbedder([]float32{1, 0, 0}), WithTopK(2), WithThreshold(0))
	require.NoError(t, err)

	results, err := r.Retrieve(context.Background(), &core.Ticket{Id: "t-5", Text: "query"}, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestBuildQuery(t *testing.T) {
	ticket := &core.Ticket{Id: "t-6", Text: "SAML assertion rejected"}

	t.Run("nil classification leaves text untouched", func(t *testing.T) {
		assert.Equal(t, "SAML assertion rejected", BuildQuery(ticket, nil))
	})

	t.Run("topic hints appended", func(t *testing.T) {
		cls := &core.Classification{Topic: core.TopicSSO}
		q := BuildQuery(ticket, cls)
		assert.Contains(t, q, "SAML assertion rejected")
		assert.Contains(t, q, "single sign-on")
	})

	t.Run("unknown topic adds nothing", func(t *testing.T) {
		cls := &core.Classification{Topic: core.TopicUnknown}
		assert.Equal(t, "SAML assertion rejected", BuildQuery(ticket, cls))
	})
}
