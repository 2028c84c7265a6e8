package cricfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/resilience"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

func TestClient_FetchMatches_FollowsPagination(t *testing.T) {
	t.Parallel()

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path != "/matches" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_token") != "secret-token" {
			t.Errorf("missing api token in query")
		}
		if r.URL.Query().Get("from") != "2021-04-01" {
			t.Errorf("unexpected from param %q", r.URL.Query().Get("from"))
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			_, _ = w.Write([]byte(`{
				"data": [
					{"id": "ipl-2021-m44", "date": "2021-05-02", "home_team": "Chennai Super Kings", "away_team": "Mumbai Indians", "competition": "Indian Premier League", "no_result": true, "format_overs": 20}
				],
				"pagination": {"count": 1, "per_page": 1, "current_page": 1, "has_more": true}
			}`))
		case "2":
			_, _ = w.Write([]byte(`{
				"data": [
					{"id": "ipl-2021-m27", "date": "2021-04-21", "home_team": "Punjab Kings", "away_team": "Kolkata Knight Riders", "competition": "Indian Premier League", "winner": "Punjab Kings"}
				],
				"pagination": {"count": 1, "per_page": 1, "current_page": 2, "has_more": false}
			}`))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
	})

	from := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 5, 31, 0, 0, 0, 0, time.UTC)
	matches, err := client.FetchMatches(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Fatalf("expected 2 requests, got=%d", got)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got=%d", len(matches))
	}
	if matches[0].ExternalID != "ipl-2021-m27" {
		t.Fatalf("expected matches sorted by date, first=%s", matches[0].ExternalID)
	}
	if matches[0].FormatOvers != 20 {
		t.Fatalf("expected default format overs 20, got=%d", matches[0].FormatOvers)
	}
	if matches[1].ExternalID != "ipl-2021-m44" || !matches[1].NoResult {
		t.Fatalf("unexpected second match %+v", matches[1])
	}
}

func TestClient_FetchDeliveries_SortsBallOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches/ipl-2021-m27/deliveries" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"innings": 1, "over": 2, "ball": 1, "striker": "KL Rahul", "bowler": "P Cummins", "batting_team": "Punjab Kings", "bowling_team": "Kolkata Knight Riders", "runs_off_bat": 4},
				{"innings": 1, "over": 1, "ball": 6, "striker": "MA Agarwal", "bowler": "P Cummins", "batting_team": "Punjab Kings", "bowling_team": "Kolkata Knight Riders", "wicket": true},
				{"innings": 1, "over": 1, "ball": 5, "striker": "MA Agarwal", "bowler": "P Cummins", "batting_team": "Punjab Kings", "bowling_team": "Kolkata Knight Riders", "runs_off_bat": 1, "extras": 1}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "secret-token"})

	rows, err := client.FetchDeliveries(context.Background(), "ipl-2021-m27")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 deliveries, got=%d", len(rows))
	}
	if rows[0].Over != 1 || rows[0].Ball != 5 {
		t.Fatalf("expected deliveries sorted by over/ball, first=%d.%d", rows[0].Over, rows[0].Ball)
	}
	if rows[1].Over != 1 || rows[1].Ball != 6 || !rows[1].Wicket {
		t.Fatalf("unexpected second delivery %+v", rows[1])
	}
	for _, row := range rows {
		if row.MatchExternalID != "ipl-2021-m27" {
			t.Fatalf("expected match id stamped on every delivery, got=%q", row.MatchExternalID)
		}
	}
}

func TestClient_FetchDeliveries_EmptyID(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0", Token: "secret-token"})
	if _, err := client.FetchDeliveries(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty match id")
	}
}

func TestClient_ExecuteRequest_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "pagination": {"has_more": false}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret-token",
		MaxRetries: 2,
	})

	matches, err := client.FetchMatches(context.Background(), time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty result, got=%d", len(matches))
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Fatalf("expected one retry, requests=%d", got)
	}
}

func TestClient_ExecuteRequest_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Token:      "secret-token",
		MaxRetries: 3,
	})

	if _, err := client.FetchMatches(context.Background(), time.Time{}, time.Time{}); err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Fatalf("expected no retries for 401, requests=%d", got)
	}
}

func TestClient_DoJSON_OpenCircuitRejectsRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Token:   "secret-token",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchMatches(context.Background(), time.Time{}, time.Time{}); err == nil {
		t.Fatalf("expected first request to fail")
	}

	_, err := client.FetchMatches(context.Background(), time.Time{}, time.Time{})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable from open circuit, got=%v", err)
	}
}

func TestSanitizeSensitiveText_RedactsToken(t *testing.T) {
	t.Parallel()

	out := sanitizeSensitiveText("dial tcp: api_token=secret-token refused", "secret-token")
	if strings.Contains(out, "secret-token") {
		t.Fatalf("token leaked: %s", out)
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	out := redactAPIURL("https://feeds.example/v2/matches?api_token=secret-token&page=1")
	if strings.Contains(out, "secret-token") {
		t.Fatalf("token leaked in url: %s", out)
	}
	if !strings.Contains(out, "api_token=REDACTED") {
		t.Fatalf("expected redacted token marker, got=%s", out)
	}
}
