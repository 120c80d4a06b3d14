// Package insights answers free-form questions and produces executive
// summaries over stored feedback. It assembles a compact textual context
// from recent items and hands it to the LLM provider; the model's prose is
// returned as-is.
package insights

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"feedbackpulse/pkg/llm"
	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

const (
	askContextSize    = 30
	summaryWindowSize = 100

	answerFallback  = "I could not produce an answer for that question. Please try again."
	summaryFallback = "The summary could not be generated. Please try again."
)

const askPromptTemplate = `You are analyzing customer feedback for a product team.

Recent feedback (newest first):
%s

Question: %s

Answer the question specifically, citing examples from the feedback above.`

const summaryPromptTemplate = `You are writing an executive summary of customer feedback for a product team.

Feedback from the last %d days (newest first):
%s

Produce a summary covering:
- Overall sentiment split
- Key themes
- Notable praise
- Improvement areas
- Three concrete action items`

// Service selects recent feedback, renders it into context, and queries the
// generation capability.
type Service struct {
	store    store.Store
	provider llm.Provider
}

// New creates an insights service.
func New(s store.Store, provider llm.Provider) *Service {
	return &Service{store: s, provider: provider}
}

// Ask answers a free-text question over the most recent feedback. A
// generation failure propagates to the caller; an empty response degrades
// to a fixed fallback string.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	items, err := s.store.Recent(ctx, askContextSize)
	if err != nil {
		return "", fmt.Errorf("failed to read feedback context: %w", err)
	}

	prompt := fmt.Sprintf(askPromptTemplate, renderContext(items), question)

	answer, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		log.Printf("Provider returned empty answer, using fallback")
		return answerFallback, nil
	}
	return answer, nil
}

// Summarize produces an executive summary of the last `days` days. When no
// feedback falls inside the window the deterministic no-feedback message is
// returned without calling the provider.
func (s *Service) Summarize(ctx context.Context, days int) (string, error) {
	items, err := s.store.Recent(ctx, summaryWindowSize)
	if err != nil {
		return "", fmt.Errorf("failed to read feedback context: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	var windowed []types.FeedbackItem
	for _, item := range items {
		if !item.Timestamp.Before(cutoff) {
			windowed = append(windowed, item)
		}
	}
	if len(windowed) == 0 {
		return fmt.Sprintf("No feedback received in the last %d days.", days), nil
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, days, renderContext(windowed))

	summary, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if strings.TrimSpace(summary) == "" {
		log.Printf("Provider returned empty summary, using fallback")
		return summaryFallback, nil
	}
	return summary, nil
}

// renderContext formats items one per line for the model:
// [sentiment, score:S] (source): content
func renderContext(items []types.FeedbackItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "[%s, score:%g] (%s): %s\n", item.Sentiment, item.Score, item.Source, item.Content)
	}
	return b.String()
}
