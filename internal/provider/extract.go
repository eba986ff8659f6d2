package provider

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/models"
	"github.com/tidwall/gjson"
)

// parseCaption turns a model's free-text reply into a CaptionResult. Models
// routinely wrap the JSON in prose or markdown fences, so extraction is
// best-effort: strip fences, take the outermost balanced object, then decode.
// Anything that does not yield a fully valid result is an error; callers wrap
// it as a malformed_response ProviderError.
func parseCaption(raw string) (*models.CaptionResult, error) {
	text := extractJSONObject(stripCodeFences(raw))
	if text == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("extracted text is not valid JSON")
	}

	var result models.CaptionResult
	if err := sonic.UnmarshalString(text, &result); err != nil {
		return nil, fmt.Errorf("failed to decode caption JSON: %w", err)
	}
	for i, tag := range result.Hashtags {
		result.Hashtags[i] = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("caption JSON failed validation: %w", err)
	}
	return &result, nil
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	} else {
		return text
	}
	if idx := strings.Index(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractJSONObject returns the first balanced top-level JSON object in s,
// or "" if none closes. String contents are skipped so braces inside values
// do not throw off the depth count.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
