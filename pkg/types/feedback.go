package types

import "time"

// FeedbackInput is a single raw feedback submission before classification.
type FeedbackInput struct {
	Source    string            `json:"source"`
	Content   string            `json:"content"`
	Timestamp string            `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Classification is the structured judgment produced for one feedback item.
type Classification struct {
	Sentiment string   `json:"sentiment"` // "positive", "neutral", "negative"
	Score     float64  `json:"score"`     // satisfaction, 0-10
	Themes    []string `json:"themes"`
}

// FeedbackItem is a classified, persisted feedback record. Sentiment and
// score are always present: classification falls back to neutral/5 rather
// than leaving them unset.
type FeedbackItem struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Sentiment string            `json:"sentiment"`
	Score     float64           `json:"score"`
	Themes    []string          `json:"themes"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Sentiment values assigned by classification.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)
