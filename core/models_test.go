package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("password reset FAQ")
		id2 := IDFromContent("password reset FAQ")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		id1 := IDFromContent("password reset FAQ")
		id2 := IDFromContent("SSO configuration guide")
		assert.NotEqual(t, id1, id2)
	})
}

func TestProcessingRecordAdvance(t *testing.T) {
	ticket := &Ticket{Id: "t-1", Text: "help", CreatedAt: time.Now().UTC()}

	t.Run("happy path advances through all stages", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		assert.Equal(t, StatusPending, record.Status)

		require.NoError(t, record.Advance(StatusClassified))
		require.NoError(t, record.Advance(StatusRetrieved))
		require.NoError(t, record.Advance(StatusGenerated))

		assert.Equal(t, StatusGenerated, record.Status)
		assert.Len(t, record.Transitions, 4)
		for i := 1; i < len(record.Transitions); i++ {
			assert.False(t, record.Transitions[i].At.Before(record.Transitions[i-1].At))
		}
	})

	t.Run("regression rejected", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		require.NoError(t, record.Advance(StatusRetrieved))
		assert.ErrorIs(t, record.Advance(StatusClassified), ErrStatusRegression)
		assert.ErrorIs(t, record.Advance(StatusRetrieved), ErrStatusRegression)
	})

	t.Run("terminal status is final", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		require.NoError(t, record.Advance(StatusClassified))
		require.NoError(t, record.Advance(StatusRetrieved))
		require.NoError(t, record.Advance(StatusGenerated))
		assert.ErrorIs(t, record.Advance(StatusGenerated), ErrStatusRegression)
	})

	t.Run("advance to failed must use Fail", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		assert.ErrorIs(t, record.Advance(StatusFailed), ErrStatusRegression)
	})
}

func TestProcessingRecordFail(t *testing.T) {
	ticket := &Ticket{Id: "t-2", Text: "help", CreatedAt: time.Now().UTC()}

	t.Run("fail from any non-terminal stage", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		require.NoError(t, record.Advance(StatusClassified))
		record.Fail(FailureCancelled)
		assert.Equal(t, StatusFailed, record.Status)
		assert.Equal(t, FailureCancelled, record.FailureReason)
	})

	t.Run("fail after generated is a no-op", func(t *testing.T) {
		record := NewProcessingRecord(ticket)
		require.NoError(t, record.Advance(StatusClassified))
		require.NoError(t, record.Advance(StatusRetrieved))
		require.NoError(t, record.Advance(StatusGenerated))
		record.Fail(FailureCancelled)
		assert.Equal(t, StatusGenerated, record.Status)
		assert.Empty(t, record.FailureReason)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "classified", StatusClassified.String())
	assert.Equal(t, "retrieved", StatusRetrieved.String())
	assert.Equal(t, "generated", StatusGenerated.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
