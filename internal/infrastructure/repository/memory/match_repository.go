package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
	}
	return &MatchRepository{matches: byID}
}

func matchesFilter(m match.Match, filter match.Filter) bool {
	if !filter.StartDate.IsZero() && m.Date.Before(filter.StartDate) {
		return false
	}
	if !filter.EndDate.IsZero() && m.Date.After(filter.EndDate) {
		return false
	}
	if m.International && !filter.IncludeInternational {
		return false
	}
	if len(filter.LeagueLabels) > 0 {
		want := identity.NormalizeLabel(m.LeagueLabel)
		found := false
		for _, label := range filter.LeagueLabels {
			if identity.NormalizeLabel(label) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *MatchRepository) ListByFilter(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		if matchesFilter(item, filter) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) ListChronological(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	return r.ListByFilter(ctx, filter)
}

func (r *MatchRepository) UpsertMatches(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.matches[item.ID] = item
	}
	return nil
}
