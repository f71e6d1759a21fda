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


package pipeline

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds the tunable policy for ticket processing.
type Config struct {
	// StageTimeout bounds each external-capability call (classification,
	// embedding, generation), per attempt.
	StageTimeout time.Duration

	// MaxRetries is the number of additional attempts after the first,
	// applied only to transient failures.
	MaxRetries int

	// RetryBaseDelay is the initial backoff delay; it doubles per retry.
	RetryBaseDelay time.Duration

	// PoolSize is the number of tickets processed concurrently by
	// ProcessAll. Zero selects a size from the machine's CPU count.
	PoolSize int

	// MinTopicConfidence is the classification confidence below which a
	// finished record is flagged for human review.
	MinTopicConfidence float64

	// MinEvidenceScore is the best retrieval score below which a
	// finished record is flagged for human review.
	MinEvidenceScore float32

	// RouteNonRAGTopics short-circuits generation for topics handled by
	// a human queue, answering with a routing message instead.
	RouteNonRAGTopics bool
}

// DefaultConfig returns the default processing policy.
func DefaultConfig() Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return Config{
		StageTimeout:       30 * time.Second,
		MaxRetries:         2,
		RetryBaseDelay:     500 * time.Millisecond,
		PoolSize:           poolSize,
		MinTopicConfidence: 0.5,
		MinEvidenceScore:   0.6,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.StageTimeout <= 0 {
		return fmt.Errorf("%w: stage timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidConfig)
	}
	if c.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: retry base delay must be positive", ErrInvalidConfig)
	}
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: pool size must not be negative", ErrInvalidConfig)
	}
	if c.MinTopicConfidence < 0 || c.MinTopicConfidence > 1 {
		return fmt.Errorf("%w: min topic confidence must be in [0, 1]", ErrInvalidConfig)
	}
	if c.MinEvidenceScore < 0 || c.MinEvidenceScore > 1 {
		return fmt.Errorf("%w: min evidence score must be in [0, 1]", ErrInvalidConfig)
	}
	return nil
}
