package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/stats"
)

type PhaseStatsService struct {
	identities   *identity.Holder
	matchRepo    match.Repository
	deliveryRepo delivery.Repository
}

func NewPhaseStatsService(
	identities *identity.Holder,
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
) *PhaseStatsService {
	return &PhaseStatsService{
		identities:   identities,
		matchRepo:    matchRepo,
		deliveryRepo: deliveryRepo,
	}
}

// PhaseStats splits the target team's filtered deliveries into phases and
// normalizes each phase's strike rate against the benchmark cohort: every
// other team matching the benchmark spec over the same window. The target and
// benchmark sets are independent reads and are fetched in parallel.
func (s *PhaseStatsService) PhaseStats(ctx context.Context, teamID string, spec, benchmarkSpec delivery.FilterSpec) (stats.PhaseReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PhaseStatsService.PhaseStats")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return stats.PhaseReport{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	registry := s.identities.Load()
	team, ok := registry.TeamByID(teamID)
	if !ok {
		return stats.PhaseReport{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	targetSpec := spec
	targetSpec.TeamID = team.CanonicalID

	benchmarkSpec.TeamID = ""
	if len(benchmarkSpec.Leagues) == 0 {
		benchmarkSpec.Leagues = spec.Leagues
	}
	if benchmarkSpec.StartDate.IsZero() {
		benchmarkSpec.StartDate = spec.StartDate
	}
	if benchmarkSpec.EndDate.IsZero() {
		benchmarkSpec.EndDate = spec.EndDate
	}

	var targetSet, benchmarkSet delivery.FilteredSet
	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		set, err := buildFilteredSet(ctx, registry, s.matchRepo, s.deliveryRepo, targetSpec)
		if err != nil {
			return fmt.Errorf("load target deliveries: %w", err)
		}
		targetSet = set
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		set, err := buildFilteredSet(ctx, registry, s.matchRepo, s.deliveryRepo, benchmarkSpec)
		if err != nil {
			return fmt.Errorf("load benchmark deliveries: %w", err)
		}
		benchmarkSet = set
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return stats.PhaseReport{}, err
	}

	benchmark := make([]delivery.Tagged, 0, len(benchmarkSet.Deliveries))
	benchmarkTeams := make(map[string]struct{})
	for _, d := range benchmarkSet.Deliveries {
		if d.BattingTeamID == team.CanonicalID {
			continue
		}
		benchmark = append(benchmark, d)
		benchmarkTeams[d.BattingTeamID] = struct{}{}
	}

	reportContext := fmt.Sprintf("%s vs %d-team benchmark, %s", team.Name, len(benchmarkTeams), spec.Describe())
	report := stats.BuildPhaseReport(
		team.CanonicalID,
		targetSet.Deliveries,
		benchmark,
		targetSet.MatchCount,
		len(benchmarkTeams),
		reportContext,
	)

	return report, nil
}
