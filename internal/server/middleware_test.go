package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCorrelationIDMiddleware_Generated(t *testing.T) {
	rr := httptest.NewRecorder()
	correlationIDMiddleware(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Len(t, rr.Header().Get("X-Correlation-ID"), 8)
}

func TestCorrelationIDMiddleware_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	correlationIDMiddleware(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, "req-123", rr.Header().Get("X-Correlation-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Correlation-ID", "corr-456")
	rr = httptest.NewRecorder()
	correlationIDMiddleware(okHandler()).ServeHTTP(rr, req)
	assert.Equal(t, "corr-456", rr.Header().Get("X-Correlation-ID"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rr := httptest.NewRecorder()
	corsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/portfolio/summary", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestCORSMiddleware_PassesThrough(t *testing.T) {
	rr := httptest.NewRecorder()
	corsMiddleware(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/portfolio/summary", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimitMiddleware(2)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	handler := rateLimitMiddleware(0)(okHandler())

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestResponseWriter_CapturesStatusAndBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	rw.Write([]byte("hello"))

	assert.Equal(t, http.StatusTeapot, rw.statusCode)
	assert.Equal(t, 5, rw.bytesWritten)
}
