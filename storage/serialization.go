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


package storage

import (
	"fmt"

	"github.com/ticketry/ticketry/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) == 0 {
		return 0, ErrTruncatedData
	}
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalKnowledgeChunk serializes a KnowledgeChunk to bytes.
func MarshalKnowledgeChunk(chunk *core.KnowledgeChunk) []byte {
	buf := make([]byte, core.KnowledgeChunkMUS.Size(*chunk))
	core.KnowledgeChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalKnowledgeChunk deserializes a KnowledgeChunk from bytes.
func UnmarshalKnowledgeChunk(data []byte) (*core.KnowledgeChunk, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	chunk, _, err := core.KnowledgeChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &chunk, nil
}

// MarshalProcessingRecord serializes a ProcessingRecord to bytes.
func MarshalProcessingRecord(record *core.ProcessingRecord) []byte {
	buf := make([]byte, core.ProcessingRecordMUS.Size(*record))
	core.ProcessingRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalProcessingRecord deserializes a ProcessingRecord from bytes.
func UnmarshalProcessingRecord(data []byte) (*core.ProcessingRecord, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	record, _, err := core.ProcessingRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &record, nil
}
