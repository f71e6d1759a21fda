package core

// RecordView is the flattened shape handed to the dashboard and
// bulk-processing consumers. Field names are part of the wire contract.
type RecordView struct {
	TicketId            string   `json:"ticketId"`
	Topic               string   `json:"topic"`
	Sentiment           string   `json:"sentiment"`
	Priority            string   `json:"priority"`
	TopicConfidence     float64  `json:"topicConfidence"`
	SentimentConfidence float64  `json:"sentimentConfidence"`
	PriorityConfidence  float64  `json:"priorityConfidence"`
	Reasoning           string   `json:"reasoning,omitempty"`
	AnswerText          string   `json:"answerText,omitempty"`
	CitedChunkIds       []uint64 `json:"citedChunkIds,omitempty"`
	UsedFallback        bool     `json:"usedFallback"`
	Escalate            bool     `json:"escalate"`
	Status              string   `json:"status"`
	FailureReason       string   `json:"failureReason,omitempty"`
}

// View projects a processing record into its consumer shape.
func (r *ProcessingRecord) View() *RecordView {
	view := &RecordView{
		Status:        r.Status.String(),
		FailureReason: r.FailureReason,
		Escalate:      r.Escalate,
	}
	if r.Ticket != nil {
		view.TicketId = r.Ticket.Id
	}

	classification := r.Classification
	if classification == nil {
		classification = &Classification{}
	}
	view.Topic = classification.Topic.String()
	view.Sentiment = classification.Sentiment.String()
	view.Priority = classification.Priority.String()
	view.TopicConfidence = classification.TopicConfidence
	view.SentimentConfidence = classification.SentimentConfidence
	view.PriorityConfidence = classification.PriorityConfidence
	view.Reasoning = classification.Reasoning

	if r.Generation != nil {
		view.AnswerText = r.Generation.AnswerText
		view.UsedFallback = r.Generation.UsedFallback
		view.CitedChunkIds = make([]uint64, 0, len(r.Generation.CitedChunkIds))
		for _, id := range r.Generation.CitedChunkIds {
			view.CitedChunkIds = append(view.CitedChunkIds, uint64(id))
		}
	}
	return view
}
