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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Confidence applied when a label had to be coerced from an alias, and
// when the model's output could not be parsed at all.
const (
	coercedConfidencePenalty = 0.6
	defaultConfidence        = 0.25
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// rawClassification matches the JSON shape requested from the LLM.
type rawClassification struct {
	Topic               string  `json:"topic"`
	Sentiment           string  `json:"sentiment"`
	Priority            string  `json:"priority"`
	TopicConfidence     float64 `json:"topic_confidence"`
	SentimentConfidence float64 `json:"sentiment_confidence"`
	PriorityConfidence  float64 `json:"priority_confidence"`
	Reasoning           string  `json:"reasoning"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new ticket classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify assigns topic, sentiment and priority labels to a ticket.
// Out-of-enum labels are coerced to the nearest valid value with a
// confidence penalty; responses that remain unparseable after retries
// yield the default classification rather than an error. Only an
// unreachable capability returns ai.ErrClassificationUnavailable.
func (c *Classifier) Classify(ctx context.Context, ticket *core.Ticket) (*core.Classification, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classificationSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildClassificationPrompt(ticket.Text))},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var raw rawClassification
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.1), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate classification", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %v", ai.ErrClassificationUnavailable, err)
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return defaultClassification("empty model response"), nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return defaultClassification("default classification: unparseable model output"), nil
	}

	classification := coerce(&raw)
	c.logger.Debug("classified ticket",
		"ticket", ticket.Id,
		"topic", classification.Topic,
		"sentiment", classification.Sentiment,
		"priority", classification.Priority)
	return classification, nil
}

// coerce maps the raw model output onto the closed label sets,
// lowering confidence for inexact matches.
func coerce(raw *rawClassification) *core.Classification {
	classification := &core.Classification{Reasoning: raw.Reasoning}

	topic, exact := core.ParseTopic(raw.Topic)
	classification.Topic, classification.TopicConfidence =
		coerceLabel(topic != core.TopicUnknown, exact, clamp(raw.TopicConfidence), topic, core.TopicProduct)

	sentiment, exact := core.ParseSentiment(raw.Sentiment)
	classification.Sentiment, classification.SentimentConfidence =
		coerceLabel(sentiment != core.SentimentUnknown, exact, clamp(raw.SentimentConfidence), sentiment, core.SentimentNeutral)

	priority, exact := core.ParsePriority(raw.Priority)
	classification.Priority, classification.PriorityConfidence =
		coerceLabel(priority != core.PriorityUnknown, exact, clamp(raw.PriorityConfidence), priority, core.PriorityMedium)

	return classification
}

// coerceLabel picks the final label and confidence for one field.
// known: the parser recognized the label (possibly via alias);
// exact: the label matched an enum name verbatim.
func coerceLabel[T comparable](known, exact bool, confidence float64, parsed, fallback T) (T, float64) {
	if !known {
		return fallback, defaultConfidence
	}
	if confidence == 0 {
		confidence = 0.7 // model omitted confidence
	}
	if !exact {
		confidence *= coercedConfidencePenalty
	}
	return parsed, confidence
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// defaultClassification mirrors the historical behavior of defaulting
// to a generic product ticket when the model output is unusable.
func defaultClassification(reasoning string) *core.Classification {
	return &core.Classification{
		Topic:               core.TopicProduct,
		Sentiment:           core.SentimentNeutral,
		Priority:            core.PriorityMedium,
		TopicConfidence:     defaultConfidence,
		SentimentConfidence: defaultConfidence,
		PriorityConfidence:  defaultConfidence,
		Reasoning:           reasoning,
	}
}
