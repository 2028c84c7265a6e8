package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
)

func recomputedEnv(t *testing.T) *seededEnv {
	t.Helper()

	env := newSeededEnv(t)
	svc := newRatingService(env)
	if _, err := svc.Recompute(context.Background(), RecomputeInput{}); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	return env
}

func TestRankingService_RanksSeededLeague(t *testing.T) {
	t.Parallel()

	env := recomputedEnv(t)
	svc := NewRankingService(env.holder, env.ratingRepo, nil)

	rows, err := svc.Rankings(context.Background(), RankingQuery{League: "IPL"})
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 franchises, got %d", len(rows))
	}

	for i := 1; i < len(rows); i++ {
		if rows[i].Rating > rows[i-1].Rating {
			t.Fatalf("rows not in descending rating order at %d: %v > %v", i, rows[i].Rating, rows[i-1].Rating)
		}
	}

	// The Delhi franchise appears exactly once, under its current name, even
	// though its matches span both labels.
	var delhi []rating.Ranking
	for _, row := range rows {
		if row.TeamID == "dc" {
			delhi = append(delhi, row)
		}
	}
	if len(delhi) != 1 {
		t.Fatalf("expected one Delhi row, got %d", len(delhi))
	}
	if delhi[0].Name != "Delhi Capitals" || delhi[0].Short != "DC" {
		t.Fatalf("unexpected Delhi row: %+v", delhi[0])
	}
	if delhi[0].Rating == rating.DefaultBase {
		t.Fatalf("Delhi rating must have moved off the base")
	}
}

func TestRankingService_WindowFiltersStaleSnapshots(t *testing.T) {
	t.Parallel()

	env := recomputedEnv(t)
	svc := NewRankingService(env.holder, env.ratingRepo, nil)

	// Only dc, mi and pbks played in 2021.
	rows, err := svc.Rankings(context.Background(), RankingQuery{
		League: "IPL",
		From:   date(2021, time.January, 1),
	})
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 active teams, got %d", len(rows))
	}
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		seen[row.TeamID] = true
	}
	for _, teamID := range []string{"dc", "mi", "pbks"} {
		if !seen[teamID] {
			t.Fatalf("team %s missing from windowed rankings: %v", teamID, seen)
		}
	}
}

func TestRankingService_AsOfExcludesLaterMatches(t *testing.T) {
	t.Parallel()

	env := recomputedEnv(t)
	svc := NewRankingService(env.holder, env.ratingRepo, nil)

	// As of end-2019 only the 2018 final and the 2019 match have happened.
	rows, err := svc.Rankings(context.Background(), RankingQuery{
		League: "IPL",
		To:     date(2019, time.December, 31),
	})
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rated teams by end-2019, got %d", len(rows))
	}
	if rows[0].TeamID != "csk" {
		t.Fatalf("csk led after the 2018 final, got %s", rows[0].TeamID)
	}
}

func TestRankingService_InputValidation(t *testing.T) {
	t.Parallel()

	env := recomputedEnv(t)
	svc := NewRankingService(env.holder, env.ratingRepo, nil)
	ctx := context.Background()

	if _, err := svc.Rankings(ctx, RankingQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing league: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Rankings(ctx, RankingQuery{
		League: "IPL",
		From:   date(2021, time.May, 1),
		To:     date(2021, time.April, 1),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("inverted window: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Rankings(ctx, RankingQuery{League: "Big Bash"}); !errors.Is(err, identity.ErrUnknownLeague) {
		t.Fatalf("unknown league: expected ErrUnknownLeague, got %v", err)
	}
}

func TestRankingService_ServesCachedRows(t *testing.T) {
	t.Parallel()

	env := recomputedEnv(t)
	svc := NewRankingService(env.holder, env.ratingRepo, env.cache)
	ctx := context.Background()
	query := RankingQuery{League: "IPL", To: date(2021, time.December, 31)}

	first, err := svc.Rankings(ctx, query)
	if err != nil {
		t.Fatalf("first rankings: %v", err)
	}

	// Wiping the snapshots must not affect reads while the entry is live.
	if err := env.ratingRepo.ReplaceAll(ctx, "ipl", nil); err != nil {
		t.Fatalf("replace snapshots: %v", err)
	}

	second, err := svc.Rankings(ctx, query)
	if err != nil {
		t.Fatalf("second rankings: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected cached rows, got %d vs %d", len(second), len(first))
	}
}
