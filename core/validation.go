// Copyright 2025 Ticketry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateTicket validates a Ticket according to domain rules.
//
// Validation rules:
//   - Text must not be empty or whitespace-only
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Id (the pipeline mints one when absent)
//   - Metadata (free-form)
func ValidateTicket(ticket *Ticket) error {
	if ticket == nil {
		return fmt.Errorf("%w: ticket is nil", ErrMalformedTicket)
	}

	if strings.TrimSpace(ticket.Text) == "" {
		return fmt.Errorf("%w: %w", ErrMalformedTicket, ErrEmptyText)
	}

	if !ticket.CreatedAt.IsZero() && !IsValidTimestamp(ticket.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrMalformedTicket, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateChunk validates a KnowledgeChunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - Vector (can be empty until the ingestion path embeds it)
//   - Id (0 is valid; content-based IDs are assigned on store)
func ValidateChunk(chunk *KnowledgeChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if strings.TrimSpace(chunk.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	return nil
}

// IsValidTimestamp reports whether a timestamp is not in the future.
// A small clock-skew allowance is applied.
func IsValidTimestamp(t time.Time) bool {
	return !t.After(time.Now().Add(time.Minute))
}
