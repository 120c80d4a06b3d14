package analytics

import (
	"math"
	"sort"

	"feedbackpulse/pkg/types"
)

// Theme-health banding thresholds, as consumed by the dashboard.
const (
	healthyAbove        = 20
	needsAttentionBelow = -20
)

// TopThemes flattens themes across the given working set, counts
// occurrences, and returns the n most frequent. Ties keep first-seen order.
func TopThemes(items []types.FeedbackItem, n int) []types.ThemeCount {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		for _, theme := range item.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
		}
	}

	ranked := make([]types.ThemeCount, 0, len(order))
	for _, theme := range order {
		ranked = append(ranked, types.ThemeCount{Theme: theme, Count: counts[theme]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// ThemeHealthScores computes a net-sentiment percentage per theme over the
// working set: ((positive - negative) / mentions) * 100, rounded to an
// integer. An item mentions a theme once per occurrence in its theme list.
// Themes are ranked by total mentions descending; the top n are returned.
func ThemeHealthScores(items []types.FeedbackItem, n int) []types.ThemeHealth {
	accum := make(map[string]*types.ThemeHealth)
	var order []string
	for _, item := range items {
		for _, theme := range item.Themes {
			h := accum[theme]
			if h == nil {
				h = &types.ThemeHealth{Theme: theme}
				accum[theme] = h
				order = append(order, theme)
			}
			h.Mentions++
			switch item.Sentiment {
			case types.SentimentPositive:
				h.Positive++
			case types.SentimentNegative:
				h.Negative++
			}
		}
	}

	ranked := make([]types.ThemeHealth, 0, len(order))
	for _, theme := range order {
		h := accum[theme]
		if h.Mentions > 0 { // cannot be zero once created, guarded anyway
			h.Score = int(math.Round(float64(h.Positive-h.Negative) / float64(h.Mentions) * 100))
		}
		h.Status = HealthStatus(h.Score)
		ranked = append(ranked, *h)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mentions > ranked[j].Mentions
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// HealthStatus maps a theme health score onto its display band.
func HealthStatus(score int) string {
	switch {
	case score > healthyAbove:
		return "healthy"
	case score < needsAttentionBelow:
		return "needs attention"
	default:
		return "mixed"
	}
}
