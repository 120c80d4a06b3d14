// Package pipeline turns raw feedback submissions into classified,
// persisted records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"feedbackpulse/pkg/classifier"
	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

// Pipeline classifies and persists feedback. Items are processed strictly
// one by one: a classification failure degrades that item to the fallback
// judgment, and no item's failure blocks the rest of the batch.
type Pipeline struct {
	classifier *classifier.Classifier
	store      store.Store
}

// New creates an ingestion pipeline.
func New(c *classifier.Classifier, s store.Store) *Pipeline {
	return &Pipeline{classifier: c, store: s}
}

// Ingest classifies and persists each input in order and returns the
// persisted items. Inputs missing source or content, and inputs whose
// insert fails, are reported in the joined error; valid items in the same
// batch are still persisted.
func (p *Pipeline) Ingest(ctx context.Context, inputs []types.FeedbackInput) ([]types.FeedbackItem, error) {
	items := make([]types.FeedbackItem, 0, len(inputs))
	var errs []error

	for i, input := range inputs {
		if input.Content == "" {
			errs = append(errs, fmt.Errorf("feedback[%d]: content is required", i))
			continue
		}
		if input.Source == "" {
			errs = append(errs, fmt.Errorf("feedback[%d]: source is required", i))
			continue
		}

		result := p.classifier.Classify(ctx, input.Content)
		if result.FallbackApplied {
			log.Printf("Classification fell back for feedback[%d] (source: %s)", i, input.Source)
		}

		item := types.FeedbackItem{
			ID:        uuid.New().String(),
			Source:    input.Source,
			Content:   input.Content,
			Timestamp: parseTimestamp(input.Timestamp),
			Sentiment: result.Classification.Sentiment,
			Score:     result.Classification.Score,
			Themes:    result.Classification.Themes,
			Metadata:  input.Metadata,
		}

		if err := p.store.Insert(ctx, item); err != nil {
			errs = append(errs, fmt.Errorf("feedback[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}

	return items, errors.Join(errs...)
}

// parseTimestamp accepts the caller-supplied RFC 3339 timestamp. Items may
// be backdated; an absent or unparseable value defaults to ingestion time.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Printf("Unparseable timestamp %q, using ingestion time", value)
		return time.Now().UTC()
	}
	return ts
}
