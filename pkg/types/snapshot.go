package types

// SentimentCounts holds per-sentiment item counts.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// ThemeCount is one entry of the ranked top-themes list.
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// ThemeHealth summarizes net sentiment for one theme over the recent
// working set. Score is an integer percentage in [-100, 100].
type ThemeHealth struct {
	Theme    string `json:"theme"`
	Score    int    `json:"score"`
	Mentions int    `json:"mentions"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Status   string `json:"status"` // "healthy", "mixed", "needs attention"
}

// TrendPoint is one calendar day of the day-bucketed trend series. Days
// with no items produce no point.
type TrendPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Total    int     `json:"total"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	AvgScore float64 `json:"avgScore"`
}

// DashboardSnapshot is the full derived view of the store, recomputed per
// request.
type DashboardSnapshot struct {
	TotalFeedback   int             `json:"totalFeedback"`
	SentimentCounts SentimentCounts `json:"sentimentCounts"`
	AvgScore        float64         `json:"avgScore"`
	TopThemes       []ThemeCount    `json:"topThemes"`
	Trend           []TrendPoint    `json:"trend"`
	ThemeHealth     []ThemeHealth   `json:"themeHealth"`
	SourceBreakdown map[string]int  `json:"sourceBreakdown"`
	RecentFeedback  []FeedbackItem  `json:"recentFeedback"`
}
