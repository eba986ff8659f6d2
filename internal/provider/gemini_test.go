package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/capgen/backend/internal/config"
	"github.com/capgen/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTextResponse(t *testing.T, text string) string {
	t.Helper()
	part, err := sonic.MarshalString(map[string]string{"text": text})
	require.NoError(t, err)
	return `{"candidates":[{"content":{"parts":[` + part + `]}}]}`
}

func newGeminiForTest(baseURL string) *GeminiProvider {
	return NewGemini(config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: baseURL,
	})
}

func TestGemini_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 2)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Context/Tone: humorous")
		assert.Equal(t, "image/png", req.Contents[0].Parts[1].InlineData.MimeType)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiTextResponse(t, "```json\n"+validCaptionJSON+"\n```")))
	}))
	defer srv.Close()

	g := newGeminiForTest(srv.URL)
	result, err := g.Generate(context.Background(), []byte{0x89, 0x50}, "image/png", "humorous")
	require.NoError(t, err)
	assert.Equal(t, "Sunset over the bay.", result.ShortCaption)
	assert.Equal(t, []string{"sunset", "bay", "goldenhour"}, result.Hashtags)
}

func TestGemini_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
	}{
		{"auth", http.StatusUnauthorized, models.KindAuthFailed},
		{"bad key as 400", http.StatusBadRequest, models.KindAuthFailed},
		{"rate limited", http.StatusTooManyRequests, models.KindRateLimited},
		{"server error", http.StatusInternalServerError, models.KindUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			g := newGeminiForTest(srv.URL)
			_, err := g.Generate(context.Background(), []byte{1}, "image/png", "")

			var pErr *models.ProviderError
			require.True(t, errors.As(err, &pErr))
			assert.Equal(t, Gemini, pErr.Provider)
			assert.Equal(t, tt.kind, pErr.Kind)
		})
	}
}

func TestGemini_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiTextResponse(t, "no json here, sorry")))
	}))
	defer srv.Close()

	g := newGeminiForTest(srv.URL)
	result, err := g.Generate(context.Background(), []byte{1}, "image/png", "")
	assert.Nil(t, result)

	var pErr *models.ProviderError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, models.KindMalformedResponse, pErr.Kind)
}

func TestGemini_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can observe the client disconnect;
		// with unread body bytes, r.Context() is never canceled.
		_, _ = io.ReadAll(r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	g := newGeminiForTest(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Generate(ctx, []byte{1}, "image/png", "")
	var pErr *models.ProviderError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, models.KindUpstreamUnavailable, pErr.Kind)
}
