package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpulse/pkg/llm"
	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

func seed(t *testing.T, s *store.MemoryStore, age time.Duration, sentiment string, score float64, source, content string) {
	t.Helper()
	require.NoError(t, s.Insert(context.Background(), types.FeedbackItem{
		ID:        content,
		Source:    source,
		Content:   content,
		Timestamp: time.Now().UTC().Add(-age),
		Sentiment: sentiment,
		Score:     score,
	}))
}

func TestAskBuildsContextFromRecentFeedback(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, time.Hour, types.SentimentPositive, 9, "app_store", "Love the new dashboard")
	seed(t, s, 2*time.Hour, types.SentimentNegative, 2, "support_ticket", "Export is broken")

	provider := &llm.FakeProvider{Response: "Users praise the dashboard but exports fail."}
	svc := New(s, provider)

	answer, err := svc.Ask(context.Background(), "What do users think?")
	require.NoError(t, err)
	assert.Equal(t, "Users praise the dashboard but exports fail.", answer)

	require.Len(t, provider.Prompts, 1)
	prompt := provider.Prompts[0]
	assert.Contains(t, prompt, "[positive, score:9] (app_store): Love the new dashboard")
	assert.Contains(t, prompt, "[negative, score:2] (support_ticket): Export is broken")
	assert.Contains(t, prompt, "What do users think?")
}

func TestAskPropagatesGenerationFailure(t *testing.T) {
	s := store.NewMemoryStore()
	provider := &llm.FakeProvider{Err: errors.New("rate limited")}
	svc := New(s, provider)

	_, err := svc.Ask(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate answer")
}

func TestAskFallsBackOnEmptyResponse(t *testing.T) {
	s := store.NewMemoryStore()
	provider := &llm.FakeProvider{Response: "   \n"}
	svc := New(s, provider)

	answer, err := svc.Ask(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, answerFallback, answer)
}

func TestSummarizeEmptyWindowSkipsProvider(t *testing.T) {
	s := store.NewMemoryStore()
	// Only feedback outside the 7-day window
	seed(t, s, 20*24*time.Hour, types.SentimentPositive, 8, "survey", "old praise")

	provider := &llm.FakeProvider{Response: "should never be used"}
	svc := New(s, provider)

	summary, err := svc.Summarize(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "No feedback received in the last 7 days.", summary)
	assert.Empty(t, provider.Prompts)
}

func TestSummarizeFiltersToWindow(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, time.Hour, types.SentimentPositive, 9, "survey", "recent praise")
	seed(t, s, 20*24*time.Hour, types.SentimentNegative, 2, "survey", "old complaint")

	provider := &llm.FakeProvider{Response: "Overall positive."}
	svc := New(s, provider)

	summary, err := svc.Summarize(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Overall positive.", summary)

	require.Len(t, provider.Prompts, 1)
	assert.Contains(t, provider.Prompts[0], "recent praise")
	assert.NotContains(t, provider.Prompts[0], "old complaint")
}

func TestSummarizeFallsBackOnEmptyResponse(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, time.Hour, types.SentimentNeutral, 5, "survey", "something")

	provider := &llm.FakeProvider{ResponseFn: func(string) (string, error) { return "", nil }}
	svc := New(s, provider)

	summary, err := svc.Summarize(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, summaryFallback, summary)
}
