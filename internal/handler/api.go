package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"feedbackpulse/internal/pipeline"
	"feedbackpulse/pkg/analytics"
	"feedbackpulse/pkg/insights"
	"feedbackpulse/pkg/store"
	"feedbackpulse/pkg/types"
)

const (
	defaultRecentLimit = 50
	defaultSummaryDays = 7
	defaultTrendDays   = 30
)

// API holds the handlers for the feedback engine's HTTP surface.
type API struct {
	pipeline  *pipeline.Pipeline
	analytics *analytics.Engine
	insights  *insights.Service
	store     store.Store
}

// NewAPI creates the API handler set.
func NewAPI(p *pipeline.Pipeline, a *analytics.Engine, i *insights.Service, s store.Store) *API {
	return &API{pipeline: p, analytics: a, insights: i, store: s}
}

type ingestRequest struct {
	Feedback []types.FeedbackInput `json:"feedback"`
}

// HandleIngest accepts a batch of raw feedback and runs it through the
// classification pipeline.
func (a *API) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Failed to parse ingest request: %v", err)
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	defer r.Body.Close()

	items, err := a.pipeline.Ingest(r.Context(), req.Feedback)
	if err != nil {
		// Valid items in the batch are already persisted; the caller still
		// gets an error naming the rejected inputs.
		log.Printf("Ingest rejected %d of %d inputs: %v", len(req.Feedback)-len(items), len(req.Feedback), err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("Ingested %d feedback items", len(items))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"processed": len(items),
	})
}

// HandleDashboard returns the full snapshot, recomputed from store state.
func (a *API) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	snapshot, err := a.analytics.Dashboard(r.Context())
	if err != nil {
		log.Printf("Failed to compute dashboard: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// HandleRecent returns the most recent feedback items, newest first.
func (a *API) HandleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	limit := queryInt(r, "limit", defaultRecentLimit)
	items, err := a.store.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to read recent feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read feedback")
		return
	}
	if items == nil {
		items = []types.FeedbackItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": items})
}

type askRequest struct {
	Question string `json:"question"`
}

// HandleAsk answers a free-form question over recent feedback.
func (a *API) HandleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}
	defer r.Body.Close()

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := a.insights.Ask(r.Context(), req.Question)
	if err != nil {
		log.Printf("Failed to answer question: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate an answer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

// HandleSummary returns an executive summary for the requested day window.
func (a *API) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	days := queryInt(r, "days", defaultSummaryDays)
	summary, err := a.insights.Summarize(r.Context(), days)
	if err != nil {
		log.Printf("Failed to generate summary: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate a summary")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

// HandleTrends returns the day-bucketed trend series.
func (a *API) HandleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	days := queryInt(r, "days", defaultTrendDays)
	trends, err := a.analytics.Trends(r.Context(), days)
	if err != nil {
		log.Printf("Failed to compute trends: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute trends")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trends": trends})
}

// HandleHealth handles health check requests
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// queryInt reads a positive integer query parameter, falling back to the
// default when absent, unparseable, or non-positive.
func queryInt(r *http.Request, name string, def int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
