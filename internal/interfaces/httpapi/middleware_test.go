package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	t.Run("missing configuration rejects everything", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/x", nil)
		req.Header.Set("X-Internal-Job-Token", "anything")
		RequireInternalJobToken("", okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("got %d, want 503", rec.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/x", nil)
		req.Header.Set("X-Internal-Job-Token", "wrong")
		RequireInternalJobToken("secret", okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/x", nil)
		RequireInternalJobToken("secret", okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("got %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes through", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/x", nil)
		req.Header.Set("X-Internal-Job-Token", " secret ")
		RequireInternalJobToken("secret", okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", rec.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("allowed origin is echoed", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
		req.Header.Set("Origin", "https://app.example.com")
		CORS([]string{"https://app.example.com"}, okHandler()).ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Fatalf("got allow-origin %q", got)
		}
		if got := rec.Header().Get("Vary"); got != "Origin" {
			t.Fatalf("expected Vary: Origin, got %q", got)
		}
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
		req.Header.Set("Origin", "https://elsewhere.example.com")
		CORS([]string{"*"}, okHandler()).ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("got allow-origin %q", got)
		}
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		CORS([]string{"https://app.example.com"}, okHandler()).ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("expected no allow-origin header, got %q", got)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("request itself must still be served, got %d", rec.Code)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/rankings", nil)
		req.Header.Set("Origin", "https://app.example.com")
		CORS([]string{"https://app.example.com"}, okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("got %d, want 204", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
			t.Fatalf("expected allow-methods header on preflight")
		}
	})

	t.Run("no origin header passes through untouched", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/rankings", nil)
		CORS([]string{"https://app.example.com"}, okHandler()).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("got %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Fatalf("expected no CORS headers, got %q", got)
		}
	})
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		if shouldTraceRequest(path) {
			t.Fatalf("health probe %q must not be traced", path)
		}
	}
	if !shouldTraceRequest("/v1/rankings") {
		t.Fatalf("api paths must be traced")
	}
}
