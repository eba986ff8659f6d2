package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/config"
	"github.com/capgen/backend/internal/models"
)

// GeminiProvider calls the Gemini generateContent REST API directly. Google
// ships no standalone Go SDK worth the weight here; the wire format is a
// single JSON POST with inline base64 image data.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGemini(cfg config.GeminiConfig) *GeminiProvider {
	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (g *GeminiProvider) ID() string   { return Gemini }
func (g *GeminiProvider) Name() string { return "Google Gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

func (g *GeminiProvider) Generate(ctx context.Context, image []byte, mimeType, userContext string) (*models.CaptionResult, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: userPrompt(userContext)},
				{InlineData: &geminiInlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	jsonBody, err := sonic.Marshal(reqBody)
	if err != nil {
		return nil, g.fail(models.KindUpstreamUnavailable, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, g.fail(models.KindUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.fail(models.KindUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.fail(models.KindUpstreamUnavailable, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, g.fail(kindForStatus(resp.StatusCode), fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200)))
	}

	var gr geminiResponse
	if err := sonic.Unmarshal(body, &gr); err != nil {
		return nil, g.fail(models.KindMalformedResponse, fmt.Errorf("decode response: %w", err))
	}
	if gr.PromptFeedback.BlockReason != "" {
		return nil, g.fail(models.KindMalformedResponse, fmt.Errorf("content blocked: %s", gr.PromptFeedback.BlockReason))
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, g.fail(models.KindMalformedResponse, errors.New("no candidates returned"))
	}

	var text bytes.Buffer
	for _, part := range gr.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	result, err := parseCaption(text.String())
	if err != nil {
		return nil, g.fail(models.KindMalformedResponse, err)
	}
	return result, nil
}

func (g *GeminiProvider) fail(kind string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		kind = models.KindUpstreamUnavailable
	}
	return &models.ProviderError{Provider: Gemini, Kind: kind, Err: err}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return models.KindAuthFailed
	case http.StatusTooManyRequests:
		return models.KindRateLimited
	default:
		return models.KindUpstreamUnavailable
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}
