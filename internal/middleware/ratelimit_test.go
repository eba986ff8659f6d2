package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPRateLimiter_BurstThenDeny(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	h := l.Middleware(okHandler())

	require.Equal(t, http.StatusOK, doRequest(h, "1.2.3.4:1111").Code)
	require.Equal(t, http.StatusOK, doRequest(h, "1.2.3.4:2222").Code)

	rec := doRequest(h, "1.2.3.4:3333")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestIPRateLimiter_PerClientIsolation(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	h := l.Middleware(okHandler())

	require.Equal(t, http.StatusOK, doRequest(h, "1.2.3.4:1111").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(h, "1.2.3.4:1111").Code)

	assert.Equal(t, http.StatusOK, doRequest(h, "5.6.7.8:1111").Code)
}

func TestIPRateLimiter_UnlimitedWhenDisabled(t *testing.T) {
	l := NewIPRateLimiter(0, 1)
	h := l.Middleware(okHandler())

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, doRequest(h, "1.2.3.4:1111").Code)
	}
}
