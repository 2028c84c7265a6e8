package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/stats"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/infrastructure/repository/memory"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

const testJobToken = "job-token-for-tests"

// newSeededRouter assembles the full HTTP stack over the seeded memory
// repositories, mirroring the application container.
func newSeededRouter(t *testing.T) http.Handler {
	t.Helper()

	refRepo := memory.NewReferenceRepository(memory.SeedTeams(), memory.SeedLeagues(), memory.SeedHandedness())
	registry, err := usecase.BuildRegistry(context.Background(), refRepo)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	holder := identity.NewHolder(registry)

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	deliveryRepo := memory.NewDeliveryRepository(matchRepo, memory.SeedDeliveries())
	ratingRepo := memory.NewRatingRepository()
	cacheStore := cache.NewStore(time.Minute)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewHandler(
		usecase.NewAggregationService(holder, matchRepo, deliveryRepo, cacheStore),
		usecase.NewPhaseStatsService(holder, matchRepo, deliveryRepo),
		usecase.NewRankingService(holder, ratingRepo, cacheStore),
		usecase.NewRatingService(holder, matchRepo, ratingRepo, cacheStore, nil, 0, 0, 0),
		usecase.NewReferenceService(refRepo, holder, nil),
		usecase.NewFeedSyncService(nil, matchRepo, deliveryRepo, cacheStore, nil),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

func doRequest[T any](t *testing.T, router http.Handler, method, target, body string, header map[string]string) (int, testEnvelope[T]) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for key, value := range header {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env testEnvelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	status, env := doRequest[map[string]string](t, router, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("got %d, want 200", status)
	}
	if env.Data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", env.Data)
	}
}

func TestRouter_AggregateStats(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	body := `{"leagues":["IPL"],"group_by":["year"]}`
	status, env := doRequest[aggregateResponse](t, router, http.MethodPost, "/v1/stats/aggregate", body, nil)
	if status != http.StatusOK {
		t.Fatalf("got %d, want 200 (error: %+v)", status, env.Error)
	}
	if len(env.Data.Rows) != 2 {
		t.Fatalf("expected one row per year, got %d", len(env.Data.Rows))
	}
	if env.Data.MatchCount != 2 {
		t.Fatalf("expected match count 2, got %d", env.Data.MatchCount)
	}
	for _, row := range env.Data.Rows {
		if row.Metrics.Balls != 240 {
			t.Fatalf("expected 240 balls per year, got %d", row.Metrics.Balls)
		}
	}
}

func TestRouter_AggregateStats_GroupByMatchID(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	body := `{"leagues":["IPL"],"start_date":"2020-01-01","end_date":"2021-12-31","group_by":["match_id"]}`
	status, env := doRequest[aggregateResponse](t, router, http.MethodPost, "/v1/stats/aggregate", body, nil)
	if status != http.StatusOK {
		t.Fatalf("got %d, want 200 (error: %+v)", status, env.Error)
	}
	if len(env.Data.Rows) != env.Data.MatchCount {
		t.Fatalf("match_id grouping must yield one row per filtered match: %d rows, %d matches",
			len(env.Data.Rows), env.Data.MatchCount)
	}
	if len(env.Data.Rows) != 1 {
		t.Fatalf("expected the date window to keep one match, got %d rows", len(env.Data.Rows))
	}
	row := env.Data.Rows[0]
	if row.Key.String() != "ipl-2020-m30" {
		t.Fatalf("unexpected match row %q", row.Key.String())
	}
	if row.Metrics.Balls != 240 {
		t.Fatalf("expected both innings in one row, got %d balls", row.Metrics.Balls)
	}
}

func TestRouter_AggregateStats_BadRequests(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	cases := []struct {
		name string
		body string
	}{
		{"missing group_by", `{"leagues":["IPL"]}`},
		{"unknown metric", `{"group_by":["year"],"metric":"vibes"}`},
		{"unknown dimension", `{"group_by":["favourite_colour"]}`},
		{"unknown field", `{"group_by":["year"],"nope":true}`},
		{"malformed date", `{"group_by":["year"],"start_date":"yesterday"}`},
		{"unknown league", `{"group_by":["year"],"leagues":["Big Bash"]}`},
	}
	for _, tc := range cases {
		status, env := doRequest[any](t, router, http.MethodPost, "/v1/stats/aggregate", tc.body, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("%s: got %d, want 400", tc.name, status)
		}
		if env.Error == nil || env.Error.Status != "INVALID_ARGUMENT" {
			t.Fatalf("%s: unexpected error body: %+v", tc.name, env.Error)
		}
	}
}

func TestRouter_RecomputeAndRankings(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	// The job route is gated on the internal token.
	status, _ := doRequest[any](t, router, http.MethodPost, "/v1/internal/jobs/recompute-ratings", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("without token: got %d, want 401", status)
	}

	authed := map[string]string{"X-Internal-Job-Token": testJobToken}
	status, recompute := doRequest[usecase.RecomputeResult](t, router, http.MethodPost, "/v1/internal/jobs/recompute-ratings", "", authed)
	if status != http.StatusOK {
		t.Fatalf("recompute: got %d (error: %+v)", status, recompute.Error)
	}
	if recompute.Data.MatchCount != 6 || recompute.Data.SnapshotCount != 12 {
		t.Fatalf("unexpected recompute totals: %+v", recompute.Data)
	}

	status, rankings := doRequest[[]rankingDTO](t, router, http.MethodGet, "/v1/rankings?league=IPL", "", nil)
	if status != http.StatusOK {
		t.Fatalf("rankings: got %d (error: %+v)", status, rankings.Error)
	}
	if len(rankings.Data) != 6 {
		t.Fatalf("expected 6 ranked teams, got %d", len(rankings.Data))
	}
	for i, row := range rankings.Data {
		if row.Rank != i+1 {
			t.Fatalf("row %d carries rank %d", i, row.Rank)
		}
	}

	status, history := doRequest[[]ratingSnapshotDTO](t, router, http.MethodGet, "/v1/teams/dc/rating-history", "", nil)
	if status != http.StatusOK {
		t.Fatalf("rating history: got %d (error: %+v)", status, history.Error)
	}
	if len(history.Data) != 4 {
		t.Fatalf("expected 4 snapshots across the rename, got %d", len(history.Data))
	}
	if history.Data[0].MatchID != "ipl-2018-final" {
		t.Fatalf("history must start at the 2018 final, got %s", history.Data[0].MatchID)
	}
}

func TestRouter_RankingsValidation(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	status, _ := doRequest[any](t, router, http.MethodGet, "/v1/rankings", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing league: got %d, want 400", status)
	}

	status, _ = doRequest[any](t, router, http.MethodGet, "/v1/rankings?league=IPL&include_international=maybe", "", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad boolean: got %d, want 400", status)
	}
}

func TestRouter_PhaseStats(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)

	status, env := doRequest[stats.PhaseReport](t, router, http.MethodGet, "/v1/teams/dc/phase-stats?leagues=IPL", "", nil)
	if status != http.StatusOK {
		t.Fatalf("got %d (error: %+v)", status, env.Error)
	}
	if env.Data.TeamID != "dc" || len(env.Data.Phases) != 3 {
		t.Fatalf("unexpected report: %+v", env.Data)
	}

	status, _ = doRequest[any](t, router, http.MethodGet, "/v1/teams/gotham/phase-stats", "", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown team: got %d, want 404", status)
	}
}

func TestRouter_FeedSyncWithoutClient(t *testing.T) {
	t.Parallel()

	router := newSeededRouter(t)
	authed := map[string]string{"X-Internal-Job-Token": testJobToken}

	status, env := doRequest[any](t, router, http.MethodPost, "/v1/internal/sync/feed", "", authed)
	if status != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503 (error: %+v)", status, env.Error)
	}
}
