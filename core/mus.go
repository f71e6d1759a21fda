package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted core types. Timestamps are encoded
// as Unix microseconds and restored in UTC.

var (
	IDMUS               = idMUS{}
	TicketMUS           = ticketMUS{}
	ClassificationMUS   = classificationMUS{}
	KnowledgeChunkMUS   = knowledgeChunkMUS{}
	RetrievedChunkMUS   = retrievedChunkMUS{}
	GenerationResultMUS = generationResultMUS{}
	StageTransitionMUS  = stageTransitionMUS{}
	ProcessingRecordMUS = processingRecordMUS{}

	timeMUS     = timeMicroMUS{}
	vectorMUS   = ord.NewSliceSer[float32](raw.Float32)
	metadataMUS = ord.NewMapSer[string, string](ord.String, ord.String)
	idSliceMUS  = ord.NewSliceSer[ID](IDMUS)

	ticketPtrMUS         = ord.NewPtrSer[Ticket](TicketMUS)
	classificationPtrMUS = ord.NewPtrSer[Classification](ClassificationMUS)
	chunkPtrMUS          = ord.NewPtrSer[KnowledgeChunk](KnowledgeChunkMUS)
	generationPtrMUS     = ord.NewPtrSer[GenerationResult](GenerationResultMUS)
	retrievalMUS         = ord.NewSliceSer[*RetrievedChunk](retrievedChunkPtrMUS{})
	transitionsMUS       = ord.NewSliceSer[StageTransition](StageTransitionMUS)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type timeMicroMUS struct{}

func (timeMicroMUS) Marshal(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (time.Time, int, error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func (timeMicroMUS) Size(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMicroMUS) Skip(bs []byte) (int, error) {
	return varint.Int64.Skip(bs)
}

type ticketMUS struct{}

func (ticketMUS) Marshal(t Ticket, bs []byte) (n int) {
	n = ord.String.Marshal(t.Id, bs)
	n += ord.String.Marshal(t.Text, bs[n:])
	n += timeMUS.Marshal(t.CreatedAt, bs[n:])
	n += metadataMUS.Marshal(t.Metadata, bs[n:])
	return n
}

func (ticketMUS) Unmarshal(bs []byte) (t Ticket, n int, err error) {
	var n1 int
	if t.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if t.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	if t.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:]); err != nil {
		return t, n + n1, err
	}
	n += n1
	return t, n, nil
}

func (ticketMUS) Size(t Ticket) int {
	return ord.String.Size(t.Id) +
		ord.String.Size(t.Text) +
		timeMUS.Size(t.CreatedAt) +
		metadataMUS.Size(t.Metadata)
}

func (ticketMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = timeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = metadataMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type classificationMUS struct{}

func (classificationMUS) Marshal(c Classification, bs []byte) (n int) {
	n = varint.Int.Marshal(int(c.Topic), bs)
	n += varint.Int.Marshal(int(c.Sentiment), bs[n:])
	n += varint.Int.Marshal(int(c.Priority), bs[n:])
	n += raw.Float64.Marshal(c.TopicConfidence, bs[n:])
	n += raw.Float64.Marshal(c.SentimentConfidence, bs[n:])
	n += raw.Float64.Marshal(c.PriorityConfidence, bs[n:])
	n += ord.String.Marshal(c.Reasoning, bs[n:])
	return n
}

func (classificationMUS) Unmarshal(bs []byte) (c Classification, n int, err error) {
	var (
		n1 int
		v  int
	)
	if v, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	c.Topic = Topic(v)
	if v, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.Sentiment = Sentiment(v)
	if v, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.Priority = Priority(v)
	if c.TopicConfidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.SentimentConfidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.PriorityConfidence, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Reasoning, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	return c, n + n1, nil
}

func (classificationMUS) Size(c Classification) int {
	return varint.Int.Size(int(c.Topic)) +
		varint.Int.Size(int(c.Sentiment)) +
		varint.Int.Size(int(c.Priority)) +
		raw.Float64.Size(c.TopicConfidence) +
		raw.Float64.Size(c.SentimentConfidence) +
		raw.Float64.Size(c.PriorityConfidence) +
		ord.String.Size(c.Reasoning)
}

func (classificationMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		if n1, err = varint.Int.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	for i := 0; i < 3; i++ {
		if n1, err = raw.Float64.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type knowledgeChunkMUS struct{}

func (knowledgeChunkMUS) Marshal(c KnowledgeChunk, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.SourceDocId, bs[n:])
	n += ord.String.Marshal(c.Title, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	n += metadataMUS.Marshal(c.Metadata, bs[n:])
	n += timeMUS.Marshal(c.InsertedAt, bs[n:])
	return n
}

func (knowledgeChunkMUS) Unmarshal(bs []byte) (c KnowledgeChunk, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.SourceDocId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Metadata, n1, err = metadataMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	return c, n + n1, nil
}

func (knowledgeChunkMUS) Size(c KnowledgeChunk) int {
	return IDMUS.Size(c.Id) +
		ord.String.Size(c.SourceDocId) +
		ord.String.Size(c.Title) +
		ord.String.Size(c.Text) +
		vectorMUS.Size(c.Vector) +
		metadataMUS.Size(c.Metadata) +
		timeMUS.Size(c.InsertedAt)
}

func (knowledgeChunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	for i := 0; i < 3; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	if n1, err = vectorMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = metadataMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = timeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type retrievedChunkMUS struct{}

func (retrievedChunkMUS) Marshal(r RetrievedChunk, bs []byte) (n int) {
	n = chunkPtrMUS.Marshal(r.Chunk, bs)
	n += raw.Float32.Marshal(r.Score, bs[n:])
	return n
}

func (retrievedChunkMUS) Unmarshal(bs []byte) (r RetrievedChunk, n int, err error) {
	var n1 int
	if r.Chunk, n, err = chunkPtrMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.Score, n1, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	return r, n + n1, nil
}

func (retrievedChunkMUS) Size(r RetrievedChunk) int {
	return chunkPtrMUS.Size(r.Chunk) + raw.Float32.Size(r.Score)
}

func (retrievedChunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = chunkPtrMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = raw.Float32.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

// retrievedChunkPtrMUS serializes *RetrievedChunk elements inside the
// retrieval slice. Nil elements are not stored by the pipeline.
type retrievedChunkPtrMUS struct{}

func (retrievedChunkPtrMUS) Marshal(r *RetrievedChunk, bs []byte) int {
	return RetrievedChunkMUS.Marshal(*r, bs)
}

func (retrievedChunkPtrMUS) Unmarshal(bs []byte) (*RetrievedChunk, int, error) {
	r, n, err := RetrievedChunkMUS.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	return &r, n, nil
}

func (retrievedChunkPtrMUS) Size(r *RetrievedChunk) int {
	return RetrievedChunkMUS.Size(*r)
}

func (retrievedChunkPtrMUS) Skip(bs []byte) (int, error) {
	return RetrievedChunkMUS.Skip(bs)
}

type generationResultMUS struct{}

func (generationResultMUS) Marshal(g GenerationResult, bs []byte) (n int) {
	n = ord.String.Marshal(g.AnswerText, bs)
	n += idSliceMUS.Marshal(g.CitedChunkIds, bs[n:])
	n += ord.Bool.Marshal(g.UsedFallback, bs[n:])
	return n
}

func (generationResultMUS) Unmarshal(bs []byte) (g GenerationResult, n int, err error) {
	var n1 int
	if g.AnswerText, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if g.CitedChunkIds, n1, err = idSliceMUS.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	n += n1
	if g.UsedFallback, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return g, n + n1, err
	}
	return g, n + n1, nil
}

func (generationResultMUS) Size(g GenerationResult) int {
	return ord.String.Size(g.AnswerText) +
		idSliceMUS.Size(g.CitedChunkIds) +
		ord.Bool.Size(g.UsedFallback)
}

func (generationResultMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ord.String.Skip(bs); err != nil {
		return
	}
	if n1, err = idSliceMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type stageTransitionMUS struct{}

func (stageTransitionMUS) Marshal(s StageTransition, bs []byte) (n int) {
	n = varint.Int.Marshal(int(s.Status), bs)
	n += timeMUS.Marshal(s.At, bs[n:])
	return n
}

func (stageTransitionMUS) Unmarshal(bs []byte) (s StageTransition, n int, err error) {
	var (
		n1 int
		v  int
	)
	if v, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	s.Status = Status(v)
	if s.At, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	return s, n + n1, nil
}

func (stageTransitionMUS) Size(s StageTransition) int {
	return varint.Int.Size(int(s.Status)) + timeMUS.Size(s.At)
}

func (stageTransitionMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = varint.Int.Skip(bs); err != nil {
		return
	}
	if n1, err = timeMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}

type processingRecordMUS struct{}

func (processingRecordMUS) Marshal(r ProcessingRecord, bs []byte) (n int) {
	n = ticketPtrMUS.Marshal(r.Ticket, bs)
	n += classificationPtrMUS.Marshal(r.Classification, bs[n:])
	n += retrievalMUS.Marshal(r.Retrieval, bs[n:])
	n += generationPtrMUS.Marshal(r.Generation, bs[n:])
	n += varint.Int.Marshal(int(r.Status), bs[n:])
	n += ord.String.Marshal(r.FailureReason, bs[n:])
	n += ord.Bool.Marshal(r.Escalate, bs[n:])
	n += transitionsMUS.Marshal(r.Transitions, bs[n:])
	return n
}

func (processingRecordMUS) Unmarshal(bs []byte) (r ProcessingRecord, n int, err error) {
	var (
		n1 int
		v  int
	)
	if r.Ticket, n, err = ticketPtrMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.Classification, n1, err = classificationPtrMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Retrieval, n1, err = retrievalMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Generation, n1, err = generationPtrMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if v, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.Status = Status(v)
	if r.FailureReason, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Escalate, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Transitions, n1, err = transitionsMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	return r, n + n1, nil
}

func (processingRecordMUS) Size(r ProcessingRecord) int {
	return ticketPtrMUS.Size(r.Ticket) +
		classificationPtrMUS.Size(r.Classification) +
		retrievalMUS.Size(r.Retrieval) +
		generationPtrMUS.Size(r.Generation) +
		varint.Int.Size(int(r.Status)) +
		ord.String.Size(r.FailureReason) +
		ord.Bool.Size(r.Escalate) +
		transitionsMUS.Size(r.Transitions)
}

func (processingRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = ticketPtrMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = classificationPtrMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = retrievalMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = generationPtrMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = varint.Int.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = transitionsMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	return n + n1, nil
}
