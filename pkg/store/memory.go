package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"feedbackpulse/pkg/types"
)

// MemoryStore keeps feedback in process memory. It backs the server when no
// database is configured, and the tests. A single RWMutex serializes all
// access, so reads always see whole inserts.
type MemoryStore struct {
	mu    sync.RWMutex
	items []types.FeedbackItem
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []types.FeedbackItem{}}
}

func (s *MemoryStore) Close() error { return nil }

// Insert appends one classified feedback item.
func (s *MemoryStore) Insert(_ context.Context, item types.FeedbackItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

// Recent returns up to limit items, newest first by timestamp.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]types.FeedbackItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := make([]types.FeedbackItem, len(s.items))
	copy(sorted, s.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	if limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Total returns the number of stored items.
func (s *MemoryStore) Total(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// SentimentCounts groups item counts by sentiment.
func (s *MemoryStore) SentimentCounts(_ context.Context) (types.SentimentCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts types.SentimentCounts
	for _, item := range s.items {
		switch item.Sentiment {
		case types.SentimentPositive:
			counts.Positive++
		case types.SentimentNeutral:
			counts.Neutral++
		case types.SentimentNegative:
			counts.Negative++
		}
	}
	return counts, nil
}

// AverageScore is the mean score across all items, 0 for an empty store.
func (s *MemoryStore) AverageScore(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		return 0, nil
	}
	var sum float64
	for _, item := range s.items {
		sum += item.Score
	}
	return sum / float64(len(s.items)), nil
}

// SourceCounts groups item counts by source.
func (s *MemoryStore) SourceCounts(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, item := range s.items {
		counts[item.Source]++
	}
	return counts, nil
}

// DailyStats buckets the last `days` days by calendar date, ascending.
func (s *MemoryStore) DailyStats(_ context.Context, days int) ([]types.TrendPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	type bucket struct {
		total    int
		positive int
		negative int
		scoreSum float64
	}
	buckets := make(map[string]*bucket)
	for _, item := range s.items {
		if item.Timestamp.Before(cutoff) {
			continue
		}
		day := item.Timestamp.UTC().Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.total++
		switch item.Sentiment {
		case types.SentimentPositive:
			b.positive++
		case types.SentimentNegative:
			b.negative++
		}
		b.scoreSum += item.Score
	}

	dates := make([]string, 0, len(buckets))
	for day := range buckets {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	points := make([]types.TrendPoint, 0, len(dates))
	for _, day := range dates {
		b := buckets[day]
		points = append(points, types.TrendPoint{
			Date:     day,
			Total:    b.total,
			Positive: b.positive,
			Negative: b.negative,
			AvgScore: b.scoreSum / float64(b.total),
		})
	}
	return points, nil
}
