package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
)

type RankingQuery struct {
	League               string
	From                 time.Time
	To                   time.Time
	IncludeInternational bool
}

type RankingService struct {
	identities *identity.Holder
	ratingRepo rating.Repository
	cache      *cache.Store
}

func NewRankingService(identities *identity.Holder, ratingRepo rating.Repository, cacheStore *cache.Store) *RankingService {
	return &RankingService{
		identities: identities,
		ratingRepo: ratingRepo,
		cache:      cacheStore,
	}
}

// Rankings lists teams by current rating within a league scope. Ratings are
// read from the latest snapshot per canonical team id inside the window, so
// a franchise keeps one row no matter how many labels it played under.
func (s *RankingService) Rankings(ctx context.Context, query RankingQuery) ([]rating.Ranking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rankings")
	defer span.End()

	query.League = strings.TrimSpace(query.League)
	if query.League == "" {
		return nil, fmt.Errorf("%w: league is required", ErrInvalidInput)
	}
	if !query.From.IsZero() && !query.To.IsZero() && query.To.Before(query.From) {
		return nil, fmt.Errorf("%w: window end precedes start", ErrInvalidInput)
	}

	registry := s.identities.Load()
	league, err := registry.ResolveLeague(query.League)
	if err != nil {
		return nil, err
	}

	leagueIDs := []string{league.CanonicalID}
	if query.IncludeInternational {
		for _, id := range registry.LeagueIDs() {
			other, _ := registry.LeagueByID(id)
			if other.International && other.CanonicalID != league.CanonicalID {
				leagueIDs = append(leagueIDs, other.CanonicalID)
			}
		}
		sort.Strings(leagueIDs)
	}

	asOf := query.To
	if asOf.IsZero() {
		asOf = time.Now()
	}

	key := fmt.Sprintf("rankings:%s:%s:%s:%t",
		league.CanonicalID, query.From.Format("2006-01-02"), asOf.Format("2006-01-02"), query.IncludeInternational)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if rows, ok := cached.([]rating.Ranking); ok {
				return rows, nil
			}
		}
	}

	latest, err := s.ratingRepo.LatestByTeam(ctx, leagueIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("load latest ratings: %w", err)
	}

	rows := make([]rating.Ranking, 0, len(latest))
	for teamID, snapshot := range latest {
		if !query.From.IsZero() && snapshot.MatchDate.Before(query.From) {
			continue
		}
		team, ok := registry.TeamByID(teamID)
		if !ok {
			continue
		}
		rows = append(rows, rating.Ranking{
			TeamID: team.CanonicalID,
			Name:   team.Name,
			Short:  team.Short,
			Rating: snapshot.RatingAfter,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	if s.cache != nil {
		s.cache.Set(ctx, key, rows)
	}

	return rows, nil
}
