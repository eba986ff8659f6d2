package provider

import (
	"context"

	"github.com/capgen/backend/internal/models"
)

// Provider identifiers, also used as request selectors and metric labels.
const (
	Gemini = "gemini"
	OpenAI = "openai"
)

// Provider is one multimodal AI service able to caption an image. Exactly one
// provider handles a given request; failures are never retried elsewhere.
type Provider interface {
	ID() string
	Name() string
	Generate(ctx context.Context, image []byte, mimeType, userContext string) (*models.CaptionResult, error)
}

const captionPrompt = `You are an expert social media content creator and copywriter.
Analyze the provided image and generate engaging, context-aware content.

You MUST respond with a valid JSON object in the following exact format:
{
    "short_caption": "A brief, engaging caption suitable for Instagram (1-2 sentences)",
    "long_description": "A detailed, professional description suitable for LinkedIn or blog posts (2-3 paragraphs)",
    "hashtags": ["hashtag1", "hashtag2", "hashtag3", "hashtag4", "hashtag5"],
    "cta": "A compelling call-to-action (1 sentence)"
}

Important:
- Adapt the tone and style based on the provided context/tone
- Make hashtags relevant and popular (without the # symbol)
- Ensure the CTA is actionable and engaging
- Return ONLY valid JSON, no additional text`

func userPrompt(context string) string {
	if context == "" {
		return captionPrompt
	}
	return captionPrompt + "\n\nContext/Tone: " + context
}
