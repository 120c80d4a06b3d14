package llm

import "context"

// FakeProvider returns scripted responses for offline use and tests.
// Response and Err script the next completion; ResponseFn, when set, takes
// precedence and can vary per prompt. Prompts records every prompt seen.
type FakeProvider struct {
	Response   string
	Err        error
	ResponseFn func(prompt string) (string, error)
	Prompts    []string
}

// Name returns the provider name
func (f *FakeProvider) Name() string { return "FakeLLM" }

// Complete returns the scripted response.
func (f *FakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.ResponseFn != nil {
		return f.ResponseFn(prompt)
	}
	if f.Err != nil {
		return "", f.Err
	}
	if f.Response == "" {
		return `{"sentiment": "neutral", "score": 5, "themes": []}`, nil
	}
	return f.Response, nil
}
