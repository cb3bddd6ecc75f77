package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/veya-app/cosmic-engine/internal/infra/config"
)

func retryConfig(attempts int) config.RetryConfig {
	return config.RetryConfig{Enabled: true, MaxAttempts: attempts, BaseBackoff: time.Millisecond}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithRetryRecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	flaky := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rec := performRequest(t, withRetry(flaky, retryConfig(3), discardLogger()), "/api/v1/positions")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Equal(t, 2, attempts)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := performRequest(t, withRetry(failing, retryConfig(3), discardLogger()), "/api/v1/positions")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, 3, attempts)
}

func TestWithRetryNeverReplaysClientErrors(t *testing.T) {
	attempts := 0
	rejecting := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	})

	rec := performRequest(t, withRetry(rejecting, retryConfig(3), discardLogger()), "/api/v1/positions")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1, attempts)
}

func TestWithRetrySkipsNonGETMethods(t *testing.T) {
	attempts := 0
	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/positions", nil)
	rec := httptest.NewRecorder()
	withRetry(failing, retryConfig(3), discardLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, attempts)
}

func TestWithRetryDisabledPassesThrough(t *testing.T) {
	attempts := 0
	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := performRequest(t, withRetry(failing, config.RetryConfig{}, discardLogger()), "/api/v1/positions")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, attempts)
}
