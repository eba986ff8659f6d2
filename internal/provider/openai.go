package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/capgen/backend/internal/config"
	"github.com/capgen/backend/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIProvider sends the image as a data URL content part on a chat
// completion request.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

func NewOpenAI(cfg config.OpenAIConfig) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		),
		model: cfg.Model,
	}
}

func (o *OpenAIProvider) ID() string   { return OpenAI }
func (o *OpenAIProvider) Name() string { return "OpenAI GPT-4" }

func (o *OpenAIProvider) Generate(ctx context.Context, image []byte, mimeType, userContext string) (*models.CaptionResult, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(userPrompt(userContext)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
		MaxCompletionTokens: openai.Int(1000),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, o.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, o.fail(models.KindMalformedResponse, errors.New("no choices returned"))
	}

	result, err := parseCaption(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, o.fail(models.KindMalformedResponse, err)
	}
	return result, nil
}

func (o *OpenAIProvider) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return o.fail(models.KindUpstreamUnavailable, err)
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return o.fail(models.KindAuthFailed, err)
		case http.StatusTooManyRequests:
			return o.fail(models.KindRateLimited, err)
		}
	}
	return o.fail(models.KindUpstreamUnavailable, err)
}

func (o *OpenAIProvider) fail(kind string, err error) error {
	return &models.ProviderError{Provider: OpenAI, Kind: kind, Err: err}
}
