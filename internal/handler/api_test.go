package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpulse/internal/pipeline"
	"feedbackpulse/pkg/analytics"
	"feedbackpulse/pkg/classifier"
	"feedbackpulse/pkg/insights"
	"feedbackpulse/pkg/llm"
	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

func newTestAPI(provider llm.Provider) *API {
	s := store.NewMemoryStore()
	return NewAPI(
		pipeline.New(classifier.New(provider), s),
		analytics.NewEngine(s, 100),
		insights.New(s, provider),
		s,
	)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(target))
}

func TestIngestThenDashboard(t *testing.T) {
	provider := &llm.FakeProvider{
		ResponseFn: func(prompt string) (string, error) {
			if strings.Contains(prompt, "Love") {
				return `{"sentiment": "positive", "score": 9, "themes": ["ux"]}`, nil
			}
			return `{"sentiment": "negative", "score": 3, "themes": ["performance"]}`, nil
		},
	}
	api := newTestAPI(provider)

	body := `{"feedback": [
		{"source": "app_store", "content": "Love this app!", "timestamp": "2026-08-30T09:00:00Z"},
		{"source": "support_ticket", "content": "Too slow lately", "timestamp": "2026-08-31T10:00:00Z"}
	]}`
	rec := httptest.NewRecorder()
	api.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var ingestResp struct {
		Success   bool `json:"success"`
		Processed int  `json:"processed"`
	}
	decodeBody(t, rec, &ingestResp)
	assert.True(t, ingestResp.Success)
	assert.Equal(t, 2, ingestResp.Processed)

	rec = httptest.NewRecorder()
	api.HandleDashboard(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap types.DashboardSnapshot
	decodeBody(t, rec, &snap)
	assert.Equal(t, 2, snap.TotalFeedback)
	assert.Equal(t, 1, snap.SentimentCounts.Positive)
	assert.Equal(t, 1, snap.SentimentCounts.Negative)
	assert.Equal(t, 6.0, snap.AvgScore)
	assert.Len(t, snap.TopThemes, 2)
	assert.Equal(t, map[string]int{"app_store": 1, "support_ticket": 1}, snap.SourceBreakdown)
}

func TestIngestRejectsUnparseableBody(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp["error"])
}

func TestIngestReportsInvalidItems(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	body := `{"feedback": [{"source": "survey", "content": "fine"}, {"source": "survey"}]}`
	rec := httptest.NewRecorder()
	api.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp["error"], "content is required")
}

func TestIngestRequiresPost(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleIngest(rec, httptest.NewRequest(http.MethodGet, "/ingest", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecentFeedbackLimit(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	var inputs []string
	for i := 0; i < 5; i++ {
		inputs = append(inputs, `{"source": "survey", "content": "item"}`)
	}
	body := `{"feedback": [` + strings.Join(inputs, ",") + `]}`
	rec := httptest.NewRecorder()
	api.HandleIngest(rec, httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	api.HandleRecent(rec, httptest.NewRequest(http.MethodGet, "/feedback?limit=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Feedback []types.FeedbackItem `json:"feedback"`
	}
	decodeBody(t, rec, &resp)
	assert.Len(t, resp.Feedback, 3)
}

func TestRecentFeedbackEmptyStore(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleRecent(rec, httptest.NewRequest(http.MethodGet, "/feedback", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"feedback":[]`)
}

func TestAskReturnsAnswer(t *testing.T) {
	provider := &llm.FakeProvider{Response: "Mostly positive."}
	api := newTestAPI(provider)

	rec := httptest.NewRecorder()
	api.HandleAsk(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "How are users feeling?"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Mostly positive.", resp["answer"])
}

func TestAskRequiresQuestion(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleAsk(rec, httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryDefaultsToSevenDays(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleSummary(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "No feedback received in the last 7 days.", resp["summary"])
}

func TestTrendsEmptyStore(t *testing.T) {
	api := newTestAPI(&llm.FakeProvider{})

	rec := httptest.NewRecorder()
	api.HandleTrends(rec, httptest.NewRequest(http.MethodGet, "/trends?days=30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trends":[]`)
}

func TestQueryIntIgnoresBadValues(t *testing.T) {
	assert.Equal(t, 50, queryInt(httptest.NewRequest(http.MethodGet, "/feedback", nil), "limit", 50))
	assert.Equal(t, 50, queryInt(httptest.NewRequest(http.MethodGet, "/feedback?limit=abc", nil), "limit", 50))
	assert.Equal(t, 50, queryInt(httptest.NewRequest(http.MethodGet, "/feedback?limit=-1", nil), "limit", 50))
	assert.Equal(t, 7, queryInt(httptest.NewRequest(http.MethodGet, "/feedback?limit=7", nil), "limit", 50))
}
