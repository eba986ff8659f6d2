package models

import (
	"fmt"
	"strings"
)

const MaxContextLen = 500

// CaptionRequest carries one upload through the pipeline. It lives for the
// duration of a single HTTP request.
type CaptionRequest struct {
	Image    []byte
	MimeType string
	Context  string
	Provider string
}

// CaptionResult is the fixed output schema returned verbatim to the client.
type CaptionResult struct {
	ShortCaption    string   `json:"short_caption" example:"Golden hour over the bay."`
	LongDescription string   `json:"long_description" example:"The sun sets behind the marina..."`
	Hashtags        []string `json:"hashtags" example:"sunset,marina,goldenhour"`
	CTA             string   `json:"cta" example:"Share your favorite sunset spot below!"`
}

// Validate enforces the schema invariants: no blank fields, 1..10 hashtags,
// hashtags are bare words without '#' or whitespace.
func (c *CaptionResult) Validate() error {
	if strings.TrimSpace(c.ShortCaption) == "" {
		return fmt.Errorf("short_caption is empty")
	}
	if strings.TrimSpace(c.LongDescription) == "" {
		return fmt.Errorf("long_description is empty")
	}
	if strings.TrimSpace(c.CTA) == "" {
		return fmt.Errorf("cta is empty")
	}
	if len(c.Hashtags) == 0 {
		return fmt.Errorf("at least one hashtag is required")
	}
	if len(c.Hashtags) > 10 {
		return fmt.Errorf("too many hashtags: %d, maximum 10", len(c.Hashtags))
	}
	for _, tag := range c.Hashtags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("hashtags cannot be empty")
		}
		if strings.ContainsAny(tag, "# \t\n") {
			return fmt.Errorf("hashtag %q must be a bare word without '#'", tag)
		}
	}
	return nil
}

// ProviderInfo describes one configured provider. Availability is derived
// from configuration at startup and never changes afterwards.
type ProviderInfo struct {
	ID        string `json:"id" example:"gemini"`
	Name      string `json:"name" example:"Google Gemini"`
	Available bool   `json:"available" example:"true"`
	Default   bool   `json:"default" example:"true"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"1.0.0"`
}

type ErrorResponse struct {
	Detail string `json:"detail" example:"unsupported image type"`
}
