// Package langextract is the client for the external extraction service.
// The service itself is a black box; this package fixes only the
// request/response contract: résumé text goes in, labeled fragments plus
// optional nested list sections come out.
package langextract

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hyunjinee/resume-extract/internal/errs"
)

// EnvAPIKey is the environment variable holding the service credential
// when it is not supplied explicitly.
const EnvAPIKey = "LANGEXTRACT_API_KEY"

// EnvBaseURL optionally points the client at a different
// OpenAI-compatible endpoint.
const EnvBaseURL = "LANGEXTRACT_BASE_URL"

// Client is the minimal interface needed to call the extraction backend.
// It mirrors the chat-completion method of an OpenAI-compatible client so
// tests can substitute a fake.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Fragment is a single labeled text snippet returned by the service.
type Fragment struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Result is the loosely structured service output: a flat set of labeled
// fragments plus nested list-shaped sections. Missing sections stay nil;
// the reconciler tolerates every hole.
type Result struct {
	Fragments      []Fragment          `json:"extractions"`
	Experience     []map[string]string `json:"experience"`
	Education      []map[string]string `json:"education"`
	Projects       []map[string]string `json:"projects"`
	Certifications []map[string]string `json:"certifications"`
	Languages      []string            `json:"languages"`
	Confidence     *float64            `json:"confidence"`
}

// Processor drives extraction calls against one model.
type Processor struct {
	Client Client
	Model  string
}

// NewProcessor builds a service handle. The credential comes from apiKey
// or, when empty, from LANGEXTRACT_API_KEY; its absence is a hard
// configuration error here, not at call time.
func NewProcessor(apiKey, modelID, baseURL string) (*Processor, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, &errs.CredentialError{Reason: EnvAPIKey + " is not set and no API key was supplied"}
	}
	if baseURL == "" {
		baseURL = os.Getenv(EnvBaseURL)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Processor{Client: openai.NewClientWithConfig(cfg), Model: modelID}, nil
}

// Extract performs one extraction call and parses the JSON payload the
// service is contracted to return.
func (p *Processor) Extract(ctx context.Context, text string) (Result, error) {
	if p.Client == nil || p.Model == "" {
		return Result{}, &errs.ExtractionError{Reason: "extraction service not configured"}
	}

	resp, err := p.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(text)},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		return Result{}, classifyCallError(err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, &errs.ExtractionError{Reason: "service returned no choices"}
	}

	raw := stripFences(resp.Choices[0].Message.Content)
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Result{}, &errs.ExtractionError{Reason: "service returned unparsable payload", Cause: err}
	}
	return result, nil
}

// classifyCallError separates credential/authorization failures from
// generic service failures.
func classifyCallError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403 {
			return &errs.CredentialError{Reason: apiErr.Message}
		}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized") {
		return &errs.CredentialError{Reason: err.Error()}
	}
	return &errs.ExtractionError{Reason: "service call failed", Cause: err}
}

// stripFences removes a Markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
