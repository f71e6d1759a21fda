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


package index

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ticketry/ticketry/core"
)

// DefaultMaxTopK is the upper bound on search breadth when no other
// maximum is configured.
const DefaultMaxTopK = 50

type entry struct {
	chunk  *core.KnowledgeChunk
	vector []float32 // unit length
	order  int
}

// Index is an in-memory vector index over knowledge chunks.
//
// Vectors are normalized to unit length on insert so search reduces to a
// dot product. The index supports concurrent searches during writes; a
// chunk and its vector become visible atomically together.
type Index struct {
	mu      sync.RWMutex
	entries []entry
	byId    map[core.ID]int
	dim     int
	maxTopK int
	nextOrd int
}

// Option configures an Index.
type Option func(*Index)

// WithMaxTopK overrides the maximum allowed search breadth.
func WithMaxTopK(maxTopK int) Option {
	return func(ix *Index) {
		if maxTopK > 0 {
			ix.maxTopK = maxTopK
		}
	}
}

// NewIndex creates an empty index.
func NewIndex(opts ...Option) *Index {
	ix := &Index{
		byId:    make(map[core.ID]int),
		maxTopK: DefaultMaxTopK,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Add inserts a chunk into the index, normalizing its vector.
// Re-adding a chunk with an existing id replaces the stored entry in
// place, keeping its original insertion order for tie-breaking.
func (ix *Index) Add(chunk *core.KnowledgeChunk) error {
	if err := core.ValidateChunk(chunk); err != nil {
		return err
	}
	if len(chunk.Vector) == 0 {
		return ErrMissingVector
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.dim == 0 {
		ix.dim = len(chunk.Vector)
	} else if len(chunk.Vector) != ix.dim {
		return fmt.Errorf("%w: got %d, index holds %d", ErrDimensionMismatch, len(chunk.Vector), ix.dim)
	}

	e := entry{
		chunk:  chunk,
		vector: NormalizeVector(chunk.Vector),
	}

	if pos, ok := ix.byId[chunk.Id]; ok {
		e.order = ix.entries[pos].order
		ix.entries[pos] = e
		return nil
	}

	e.order = ix.nextOrd
	ix.nextOrd++
	ix.byId[chunk.Id] = len(ix.entries)
	ix.entries = append(ix.entries, e)
	return nil
}

// Search returns up to topK chunks ranked by cosine similarity to the
// query vector, highest first. Equal scores keep insertion order.
// An empty index yields an empty result. topK larger than the index
// size returns all entries; topK outside (0, maxTopK] is rejected.
func (ix *Index) Search(queryVector []float32, topK int) ([]*core.RetrievedChunk, error) {
	if topK <= 0 || topK > ix.maxTopK {
		return nil, fmt.Errorf("%w: %d (must be in 1..%d)", ErrInvalidTopK, topK, ix.maxTopK)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return []*core.RetrievedChunk{}, nil
	}
	if ix.dim != 0 && len(queryVector) != ix.dim {
		return nil, fmt.Errorf("%w: query has %d, index holds %d", ErrDimensionMismatch, len(queryVector), ix.dim)
	}

	query := NormalizeVector(queryVector)

	type scored struct {
		entry entry
		score float32
	}
	results := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, scored{entry: e, score: DotProduct(query, e.vector)})
	}

	// Stable sort keeps earlier insertions first on equal score.
	slices.SortStableFunc(results, func(a, b scored) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return a.entry.order - b.entry.order
	})

	if len(results) > topK {
		results = results[:topK]
	}

	out := make([]*core.RetrievedChunk, len(results))
	for i, r := range results {
		out[i] = &core.RetrievedChunk{Chunk: r.entry.chunk, Score: r.score}
	}
	return out, nil
}

// Len returns the number of chunks currently indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// MaxTopK returns the configured maximum search breadth.
func (ix *Index) MaxTopK() int {
	return ix.maxTopK
}
