package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/logging"
)

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"
)

type RecomputeInput struct {
	// Leagues narrows the recompute to the named competitions (any known
	// label); empty recomputes every league in the registry.
	Leagues              []string
	IncludeInternational bool
	MaxWorkers           int
}

type RecomputeResult struct {
	LeagueCount   int                     `json:"league_count"`
	MatchCount    int                     `json:"match_count"`
	SnapshotCount int                     `json:"snapshot_count"`
	WorkerCount   int                     `json:"worker_count"`
	Leagues       []LeagueRecomputeResult `json:"leagues"`
}

type LeagueRecomputeResult struct {
	LeagueID            string `json:"league_id"`
	Status              string `json:"status"`
	Matches             int    `json:"matches"`
	Snapshots           int    `json:"snapshots"`
	SkippedUnknownTeams int    `json:"skipped_unknown_teams"`
	DurationMs          int64  `json:"duration_ms"`
	Message             string `json:"message,omitempty"`
}

type RatingService struct {
	identities     *identity.Holder
	matchRepo      match.Repository
	ratingRepo     rating.Repository
	cache          *cache.Store
	logger         *logging.Logger
	baseRating     float64
	kFactor        float64
	defaultWorkers int
}

func NewRatingService(
	identities *identity.Holder,
	matchRepo match.Repository,
	ratingRepo rating.Repository,
	cacheStore *cache.Store,
	logger *logging.Logger,
	baseRating, kFactor float64,
	defaultWorkers int,
) *RatingService {
	if logger == nil {
		logger = logging.Default()
	}
	if baseRating == 0 {
		baseRating = rating.DefaultBase
	}
	if kFactor == 0 {
		kFactor = rating.DefaultK
	}
	if defaultWorkers <= 0 {
		defaultWorkers = 4
	}

	return &RatingService{
		identities:     identities,
		matchRepo:      matchRepo,
		ratingRepo:     ratingRepo,
		cache:          cacheStore,
		logger:         logger,
		baseRating:     baseRating,
		kFactor:        kFactor,
		defaultWorkers: defaultWorkers,
	}
}

// Recompute rebuilds rating trajectories from scratch. Leagues are processed
// in parallel through a worker pool; matches inside a league stay strictly
// chronological. Re-running against the same match snapshot reproduces
// identical ratings, so a rerun after a team-identity correction is the
// supported repair path.
func (s *RatingService) Recompute(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.Recompute")
	defer span.End()

	registry := s.identities.Load()
	leagueIDs, err := s.resolveLeagueScope(registry, input)
	if err != nil {
		return RecomputeResult{}, err
	}
	if len(leagueIDs) == 0 {
		return RecomputeResult{}, fmt.Errorf("%w: no leagues to recompute", ErrInvalidInput)
	}

	workers := input.MaxWorkers
	if workers <= 0 {
		workers = s.defaultWorkers
	}
	if workers > len(leagueIDs) {
		workers = len(leagueIDs)
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create recompute pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]LeagueRecomputeResult, 0, len(leagueIDs))
	)
	for _, leagueID := range leagueIDs {
		leagueID := leagueID
		wg.Add(1)
		submitErr := workerPool.Submit(func() {
			defer wg.Done()
			item := s.recomputeLeague(ctx, registry, leagueID, input.IncludeInternational)
			mu.Lock()
			results = append(results, item)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			results = append(results, LeagueRecomputeResult{
				LeagueID: leagueID,
				Status:   recomputeStatusFailed,
				Message:  fmt.Sprintf("submit recompute task: %v", submitErr),
			})
			mu.Unlock()
		}
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool { return results[i].LeagueID < results[j].LeagueID })

	out := RecomputeResult{
		LeagueCount: len(leagueIDs),
		WorkerCount: workers,
		Leagues:     results,
	}
	for _, item := range results {
		out.MatchCount += item.Matches
		out.SnapshotCount += item.Snapshots
	}

	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "rankings:")
	}

	return out, nil
}

func (s *RatingService) resolveLeagueScope(registry *identity.Registry, input RecomputeInput) ([]string, error) {
	if len(input.Leagues) > 0 {
		seen := make(map[string]struct{}, len(input.Leagues))
		out := make([]string, 0, len(input.Leagues))
		for _, label := range input.Leagues {
			league, err := registry.ResolveLeague(label)
			if err != nil {
				return nil, err
			}
			if _, ok := seen[league.CanonicalID]; ok {
				continue
			}
			seen[league.CanonicalID] = struct{}{}
			out = append(out, league.CanonicalID)
		}
		sort.Strings(out)
		return out, nil
	}

	out := make([]string, 0)
	for _, leagueID := range registry.LeagueIDs() {
		league, _ := registry.LeagueByID(leagueID)
		if league.International && !input.IncludeInternational {
			continue
		}
		out = append(out, leagueID)
	}
	sort.Strings(out)
	return out, nil
}

func (s *RatingService) recomputeLeague(ctx context.Context, registry *identity.Registry, leagueID string, includeInternational bool) LeagueRecomputeResult {
	started := time.Now()
	result := LeagueRecomputeResult{LeagueID: leagueID}

	matches, err := s.matchRepo.ListChronological(ctx, match.Filter{
		LeagueLabels:         registry.LeagueAliasLabels(leagueID),
		IncludeInternational: includeInternational,
	})
	if err != nil {
		result.Status = recomputeStatusFailed
		result.Message = fmt.Sprintf("list matches: %v", err)
		result.DurationMs = time.Since(started).Milliseconds()
		return result
	}

	ledger := rating.NewLedger(s.baseRating, s.kFactor)
	snapshots := make([]rating.Snapshot, 0, len(matches)*2)
	for _, m := range matches {
		home, err := registry.ResolveTeamAt(m.HomeLabel, m.Date)
		if err != nil {
			result.SkippedUnknownTeams++
			continue
		}
		away, err := registry.ResolveTeamAt(m.AwayLabel, m.Date)
		if err != nil {
			result.SkippedUnknownTeams++
			continue
		}

		score, ok := homeScore(registry, m, home.CanonicalID)
		if !ok {
			result.SkippedUnknownTeams++
			continue
		}

		snapHome, snapAway, err := ledger.Apply(m.ID, m.Date, home.CanonicalID, away.CanonicalID, score)
		if err != nil {
			result.Status = recomputeStatusFailed
			result.Message = fmt.Sprintf("apply match %s: %v", m.ID, err)
			result.DurationMs = time.Since(started).Milliseconds()
			return result
		}
		snapHome.LeagueID = leagueID
		snapAway.LeagueID = leagueID
		snapshots = append(snapshots, snapHome, snapAway)
		result.Matches++
	}

	if err := s.ratingRepo.ReplaceAll(ctx, leagueID, snapshots); err != nil {
		result.Status = recomputeStatusFailed
		result.Message = fmt.Sprintf("store snapshots: %v", err)
		result.DurationMs = time.Since(started).Milliseconds()
		return result
	}

	if result.SkippedUnknownTeams > 0 {
		s.logger.WarnContext(ctx, "matches skipped during rating recompute",
			"league_id", leagueID,
			"skipped_unknown_teams", result.SkippedUnknownTeams,
		)
	}

	result.Status = recomputeStatusSuccess
	result.Snapshots = len(snapshots)
	result.DurationMs = time.Since(started).Milliseconds()
	return result
}

// homeScore maps a match result to the home side's ELO score. The winner
// label is resolved through the registry so a result recorded under an old
// franchise name still credits the right canonical side.
func homeScore(registry *identity.Registry, m match.Match, homeID string) (float64, bool) {
	if m.NoResult {
		return rating.ScoreNoResult, true
	}
	winner, err := registry.ResolveTeamAt(m.WinnerLabel, m.Date)
	if err != nil {
		return 0, false
	}
	if winner.CanonicalID == homeID {
		return rating.ScoreWin, true
	}
	return rating.ScoreLoss, true
}

// TeamRatingHistory returns a team's full snapshot trajectory in match order.
func (s *RatingService) TeamRatingHistory(ctx context.Context, teamID string) ([]rating.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RatingService.TeamRatingHistory")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if _, ok := s.identities.Load().TeamByID(teamID); !ok {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	items, err := s.ratingRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list rating history: %w", err)
	}
	return items, nil
}
