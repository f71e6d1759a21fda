package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for knowledge chunks.
// It is generated using content-based hashing so identical passages
// always map to the same chunk.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Ticket represents a single customer-support request.
// Tickets are immutable once handed to the pipeline; the pipeline owns
// the ticket for the duration of processing.
type Ticket struct {
	Id        string
	Text      string
	CreatedAt time.Time
	Metadata  map[string]string // Optional metadata (e.g., "channel", "customer")
}

// Classification holds the labels assigned to a ticket, with a
// per-field confidence in [0,1].
type Classification struct {
	Topic               Topic
	Sentiment           Sentiment
	Priority            Priority
	TopicConfidence     float64
	SentimentConfidence float64
	PriorityConfidence  float64
	Reasoning           string // Model-provided justification, surfaced to agents
}

// KnowledgeChunk is a bounded-length passage of a source document,
// the unit of retrieval. Chunks are immutable once ingested.
type KnowledgeChunk struct {
	Id          ID
	SourceDocId string
	Title       string
	Text        string
	Vector      []float32 // Embedding, populated at ingestion
	Metadata    map[string]string
	InsertedAt  time.Time
}

// RetrievedChunk pairs a knowledge chunk with its relevance score
// for a particular query. Transient, recomputed per query.
type RetrievedChunk struct {
	Chunk *KnowledgeChunk
	Score float32
}

// GenerationResult is the output of the answer-generation stage.
type GenerationResult struct {
	AnswerText    string
	CitedChunkIds []ID // Subset of the retrieved chunks the answer actually cites
	UsedFallback  bool
}

// Status tracks a ticket's progress through the pipeline.
type Status int

const (
	StatusPending Status = iota
	StatusClassified
	StatusRetrieved
	StatusGenerated
	StatusFailed
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusClassified:
		return "classified"
	case StatusRetrieved:
		return "retrieved"
	case StatusGenerated:
		return "generated"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusGenerated || s == StatusFailed
}

// Failure reasons recorded on terminally failed records.
const (
	FailureMalformedTicket = "malformed ticket"
	FailureCancelled       = "cancelled"
)

// StageTransition records when a record entered a status.
type StageTransition struct {
	Status Status
	At     time.Time
}

// ProcessingRecord aggregates everything the pipeline produced for one
// ticket. Each record is exclusively owned by its pipeline run until
// completion, then handed off to the consumer.
type ProcessingRecord struct {
	Ticket         *Ticket
	Classification *Classification
	Retrieval      []*RetrievedChunk
	Generation     *GenerationResult
	Status         Status
	FailureReason  string
	Escalate       bool // Set when results should be reviewed by a human
	Transitions    []StageTransition
}

// NewProcessingRecord creates a pending record for the given ticket.
func NewProcessingRecord(ticket *Ticket) *ProcessingRecord {
	return &ProcessingRecord{
		Ticket: ticket,
		Status: StatusPending,
		Transitions: []StageTransition{
			{Status: StatusPending, At: time.Now().UTC()},
		},
	}
}

// Advance moves the record to the next status. Status only moves
// forward; any attempt to regress or to leave a terminal status
// returns ErrStatusRegression.
func (r *ProcessingRecord) Advance(next Status) error {
	if r.Status.Terminal() || next <= r.Status {
		return ErrStatusRegression
	}
	if next == StatusFailed {
		return ErrStatusRegression // use Fail, which records a reason
	}
	r.Status = next
	r.Transitions = append(r.Transitions, StageTransition{Status: next, At: time.Now().UTC()})
	return nil
}

// Fail moves the record to the terminal failed status with a reason.
// Failing an already-terminal record is a no-op.
func (r *ProcessingRecord) Fail(reason string) {
	if r.Status.Terminal() {
		return
	}
	r.Status = StatusFailed
	r.FailureReason = reason
	r.Transitions = append(r.Transitions, StageTransition{Status: StatusFailed, At: time.Now().UTC()})
}
