package mock

import (
	"context"
	"sync/atomic"

	"github.com/ticketry/ticketry/core"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, returns a fixed neutral classification.
	ClassifyFunc func(ctx context.Context, ticket *core.Ticket) (*core.Classification, error)

	// Incremented atomically; pipelines call mocks from pool goroutines.
	callCount atomic.Int64
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns the injected classification, or a fixed neutral one.
func (m *MockClassifier) Classify(ctx context.Context, ticket *core.Ticket) (*core.Classification, error) {
	m.callCount.Add(1)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, ticket)
	}

	return &core.Classification{
		Topic:               core.TopicProduct,
		Sentiment:           core.SentimentNeutral,
		Priority:            core.PriorityMedium,
		TopicConfidence:     0.5,
		SentimentConfidence: 0.5,
		PriorityConfidence:  0.5,
		Reasoning:           "mock classification",
	}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount.Store(0)
	m.ClassifyFunc = nil
}
