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

import "errors"

// Domain validation errors
var (
	// ErrMalformedTicket indicates a ticket failed validation. Malformed
	// tickets are terminal: they are never retried.
	ErrMalformedTicket = errors.New("malformed ticket")

	// ErrEmptyText indicates the ticket or chunk text is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidChunk indicates a KnowledgeChunk failed validation.
	ErrInvalidChunk = errors.New("invalid knowledge chunk")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrStatusRegression indicates an attempt to move a processing
	// record backwards or out of a terminal status.
	ErrStatusRegression = errors.New("status cannot regress")
)
