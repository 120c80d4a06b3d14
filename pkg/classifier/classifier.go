package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"feedbackpulse/pkg/llm"
	"feedbackpulse/pkg/types"
)

// Fallback values applied whenever classification cannot be completed.
// Ingestion must always produce a usable record, so the adapter never
// returns an error for a bad model response.
const (
	FallbackSentiment = types.SentimentNeutral
	FallbackScore     = 5
)

const classifyPromptTemplate = `Analyze this customer feedback and respond with ONLY a JSON object, no other text.

Feedback: %s

Respond with exactly this JSON shape:
{"sentiment": "positive" | "neutral" | "negative", "score": <number 0-10 for satisfaction>, "themes": [<up to 3 short topic labels>]}

JSON:`

// Result is the outcome of classifying one feedback item. FallbackApplied
// reports whether the full fallback replaced the model's judgment (a call
// failure or an unparseable response); per-field defaults on a parseable
// response do not set it.
type Result struct {
	Classification  types.Classification
	FallbackApplied bool
}

// Classifier turns raw feedback text into a structured judgment via the
// configured LLM provider.
type Classifier struct {
	provider llm.Provider
}

// New creates a classifier backed by the given provider.
func New(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify asks the provider to judge the feedback text. A single attempt:
// any failure degrades to the neutral fallback, never to an error.
func (c *Classifier) Classify(ctx context.Context, content string) Result {
	prompt := fmt.Sprintf(classifyPromptTemplate, content)

	raw, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Classification call failed, using fallback: %v", err)
		return fallbackResult()
	}

	jsonText, ok := extractJSONObject(raw)
	if !ok {
		log.Printf("No JSON object in classification response, using fallback")
		return fallbackResult()
	}

	// Per-field raw messages so one malformed field degrades to its default
	// without discarding the rest of the judgment.
	var payload struct {
		Sentiment json.RawMessage `json:"sentiment"`
		Score     json.RawMessage `json:"score"`
		Themes    json.RawMessage `json:"themes"`
	}
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		log.Printf("Failed to parse classification JSON, using fallback: %v", err)
		return fallbackResult()
	}

	return Result{Classification: types.Classification{
		Sentiment: parseSentiment(payload.Sentiment),
		Score:     parseScore(payload.Score),
		Themes:    parseThemes(payload.Themes),
	}}
}

func fallbackResult() Result {
	return Result{
		Classification: types.Classification{
			Sentiment: FallbackSentiment,
			Score:     FallbackScore,
			Themes:    []string{},
		},
		FallbackApplied: true,
	}
}

// extractJSONObject returns the first brace-delimited substring of the
// response. The model is instructed to return only JSON but is not trusted
// to: prose before or after the object is tolerated.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func parseSentiment(raw json.RawMessage) string {
	if raw == nil {
		return FallbackSentiment
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return FallbackSentiment
	}
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative:
		return s
	}
	log.Printf("Model returned invalid sentiment %q, using %q", s, FallbackSentiment)
	return FallbackSentiment
}

func parseScore(raw json.RawMessage) float64 {
	if raw == nil {
		return FallbackScore
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return FallbackScore
	}
	return f
}

func parseThemes(raw json.RawMessage) []string {
	if raw == nil {
		return []string{}
	}
	var themes []string
	if err := json.Unmarshal(raw, &themes); err != nil {
		return []string{}
	}
	if themes == nil {
		themes = []string{}
	}
	return themes
}
