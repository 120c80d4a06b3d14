// Package analytics derives dashboard statistics, trend series, and theme
// health from the feedback store. Everything is recomputed from current
// store state per request; there is no cache to invalidate.
package analytics

import (
	"context"
	"fmt"
	"math"

	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

const (
	dashboardTrendDays = 30
	topThemeCount      = 10
	recentSampleSize   = 10
)

// Engine computes aggregate views over the feedback store.
type Engine struct {
	store        store.Store
	recentWindow int // working-set cap for theme stats
}

// NewEngine creates an aggregation engine. recentWindow bounds the item set
// used for top themes and theme health; <= 0 selects the default of 100.
func NewEngine(s store.Store, recentWindow int) *Engine {
	if recentWindow <= 0 {
		recentWindow = 100
	}
	return &Engine{store: s, recentWindow: recentWindow}
}

// Dashboard computes the full snapshot from current store state.
func (e *Engine) Dashboard(ctx context.Context) (*types.DashboardSnapshot, error) {
	total, err := e.store.Total(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	sentiments, err := e.store.SentimentCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sentiment: %w", err)
	}

	avg, err := e.store.AverageScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate score: %w", err)
	}

	sources, err := e.store.SourceCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sources: %w", err)
	}

	recent, err := e.store.Recent(ctx, e.recentWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent feedback: %w", err)
	}

	trend, err := e.Trends(ctx, dashboardTrendDays)
	if err != nil {
		return nil, err
	}

	sample := recent
	if len(sample) > recentSampleSize {
		sample = sample[:recentSampleSize]
	}

	return &types.DashboardSnapshot{
		TotalFeedback:   total,
		SentimentCounts: sentiments,
		AvgScore:        round1(avg),
		TopThemes:       TopThemes(recent, topThemeCount),
		Trend:           trend,
		ThemeHealth:     ThemeHealthScores(recent, topThemeCount),
		SourceBreakdown: sources,
		RecentFeedback:  sample,
	}, nil
}

// Trends returns the day-bucketed series for the last `days` days, averages
// rounded for presentation. Days with no items are absent, not zero.
func (e *Engine) Trends(ctx context.Context, days int) ([]types.TrendPoint, error) {
	points, err := e.store.DailyStats(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}
	for i := range points {
		points[i].AvgScore = round1(points[i].AvgScore)
	}
	if points == nil {
		points = []types.TrendPoint{}
	}
	return points, nil
}

// round1 rounds to one decimal place for presentation; stored values are
// untouched.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
