package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpulse/pkg/types"
)

func TestMemoryStoreRecentOrdersNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 29, 9, 0, 0, 0, time.UTC)

	// Inserted out of timestamp order; Recent must sort by timestamp.
	for i, offset := range []time.Duration{time.Hour, 3 * time.Hour, 2 * time.Hour} {
		require.NoError(t, s.Insert(ctx, types.FeedbackItem{
			ID:        string(rune('a' + i)),
			Source:    "survey",
			Content:   "text",
			Timestamp: base.Add(offset),
			Sentiment: types.SentimentNeutral,
			Score:     5,
		}))
	}

	items, err := s.Recent(ctx, 2)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
}

func TestMemoryStoreAggregates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	avg, err := s.AverageScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	now := time.Now().UTC()
	inserts := []types.FeedbackItem{
		{ID: "1", Source: "app_store", Sentiment: types.SentimentPositive, Score: 8, Timestamp: now},
		{ID: "2", Source: "app_store", Sentiment: types.SentimentNegative, Score: 2, Timestamp: now},
		{ID: "3", Source: "support_ticket", Sentiment: types.SentimentNeutral, Score: 5, Timestamp: now},
	}
	for _, item := range inserts {
		require.NoError(t, s.Insert(ctx, item))
	}

	total, err := s.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	counts, err := s.SentimentCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SentimentCounts{Positive: 1, Neutral: 1, Negative: 1}, counts)

	avg, err = s.AverageScore(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg, 1e-9)

	sources, err := s.SourceCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"app_store": 2, "support_ticket": 1}, sources)
}

func TestMemoryStoreDailyStats(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	items := []types.FeedbackItem{
		{ID: "1", Sentiment: types.SentimentPositive, Score: 9, Timestamp: now},
		{ID: "2", Sentiment: types.SentimentNegative, Score: 3, Timestamp: now},
		{ID: "3", Sentiment: types.SentimentPositive, Score: 7, Timestamp: now.Add(-72 * time.Hour)},
		{ID: "4", Sentiment: types.SentimentNeutral, Score: 5, Timestamp: now.Add(-45 * 24 * time.Hour)}, // outside window
	}
	for _, item := range items {
		require.NoError(t, s.Insert(ctx, item))
	}

	points, err := s.DailyStats(ctx, 30)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, now.Add(-72*time.Hour).Format("2006-01-02"), points[0].Date)
	assert.Equal(t, 1, points[0].Total)
	assert.Equal(t, now.Format("2006-01-02"), points[1].Date)
	assert.Equal(t, 2, points[1].Total)
	assert.Equal(t, 1, points[1].Positive)
	assert.Equal(t, 1, points[1].Negative)
	assert.InDelta(t, 6.0, points[1].AvgScore, 1e-9)
}
