// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/scivector/internal/httputil"
	"github.com/pdiddy/scivector/pkg/types"
)

// GeminiBackend calls the Gemini generateContent REST API with the image as
// inline data and the prompt as a text part.
type GeminiBackend struct {
	APIKey         string
	Model          string
	BaseURL        string
	ThinkingBudget int
	MaxRetries     int
	Client         *http.Client

	// Log receives rate-limit backoff notices. Nil discards.
	Log io.Writer
}

// NewGeminiBackend builds a backend from cfg, applying defaults for unset
// fields. A zero cfg.Timeout leaves the HTTP client without a deadline.
func NewGeminiBackend(cfg types.AIConfig) *GeminiBackend {
	cfg = cfg.WithDefaults()
	return &GeminiBackend{
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		BaseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		ThinkingBudget: cfg.ThinkingBudget,
		MaxRetries:     cfg.MaxRetries,
		Client:         &http.Client{Timeout: cfg.Timeout},
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	Thought    bool              `json:"thought,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ThinkingConfig geminiThinkingConfig `json:"thinkingConfig"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	ModelVersion string `json:"modelVersion"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// text concatenates the non-thought text parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// Generate sends one generateContent request and returns the answer text.
func (g *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MIMEType: req.MIMEType, Data: req.ImageData}},
				{Text: req.Prompt},
			},
		}},
		GenerationConfig: geminiGenerationConfig{
			ThinkingConfig: geminiThinkingConfig{ThinkingBudget: g.ThinkingBudget},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, g.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, g.MaxRetries, g.Log)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	if gResp.PromptFeedback != nil && gResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("Gemini blocked the prompt: %s", gResp.PromptFeedback.BlockReason)
	}

	return gResp.text(), nil
}
