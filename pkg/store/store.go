// Package store persists classified feedback and answers the grouped
// aggregations the analytics layer is built on.
package store

import (
	"context"

	"feedbackpulse/pkg/types"
)

// Store is the narrow persistence interface the rest of the engine reads
// and writes through. Implementations must give consistent snapshots: a
// read never observes a partially applied insert.
type Store interface {
	// Insert appends one classified item. IDs are unique across the store.
	Insert(ctx context.Context, item types.FeedbackItem) error

	// Recent returns up to limit items, newest first by timestamp.
	Recent(ctx context.Context, limit int) ([]types.FeedbackItem, error)

	// Total returns the number of stored items.
	Total(ctx context.Context) (int, error)

	// SentimentCounts groups item counts by sentiment.
	SentimentCounts(ctx context.Context) (types.SentimentCounts, error)

	// AverageScore is the mean score across all items, 0 for an empty store.
	AverageScore(ctx context.Context) (float64, error)

	// SourceCounts groups item counts by source value.
	SourceCounts(ctx context.Context) (map[string]int, error)

	// DailyStats buckets the last `days` days by calendar date, ascending.
	// Days with no items produce no entry.
	DailyStats(ctx context.Context, days int) ([]types.TrendPoint, error)

	Close() error
}
