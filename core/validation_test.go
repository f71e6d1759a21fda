package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateTicket(t *testing.T) {
	t.Run("valid ticket", func(t *testing.T) {
		ticket := &Ticket{
			Id:        "t-1",
			Text:      "My login keeps failing after password reset",
			CreatedAt: time.Now().UTC(),
		}
		assert.NoError(t, ValidateTicket(ticket))
	})

	t.Run("nil ticket", func(t *testing.T) {
		assert.ErrorIs(t, ValidateTicket(nil), ErrMalformedTicket)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateTicket(&Ticket{Id: "t-2", Text: ""})
		assert.ErrorIs(t, err, ErrMalformedTicket)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		err := ValidateTicket(&Ticket{Id: "t-3", Text: "   \n\t"})
		assert.ErrorIs(t, err, ErrMalformedTicket)
	})

	t.Run("future timestamp", func(t *testing.T) {
		ticket := &Ticket{
			Id:        "t-4",
			Text:      "hello",
			CreatedAt: time.Now().Add(2 * time.Hour),
		}
		err := ValidateTicket(ticket)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("zero timestamp allowed", func(t *testing.T) {
		assert.NoError(t, ValidateTicket(&Ticket{Id: "t-5", Text: "hello"}))
	})
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		chunk := &KnowledgeChunk{
			SourceDocId: "docs/resets",
			Title:       "Password resets",
			Text:        "To reset your password, open settings.",
		}
		assert.NoError(t, ValidateChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		assert.ErrorIs(t, ValidateChunk(nil), ErrInvalidChunk)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateChunk(&KnowledgeChunk{SourceDocId: "d"})
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("missing vector allowed", func(t *testing.T) {
		assert.NoError(t, ValidateChunk(&KnowledgeChunk{Text: "passage"}))
	})
}
