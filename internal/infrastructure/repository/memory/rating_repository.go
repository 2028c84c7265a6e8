package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
)

type RatingRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]rating.Snapshot
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{byLeague: make(map[string][]rating.Snapshot)}
}

func (r *RatingRepository) ReplaceAll(_ context.Context, leagueID string, snapshots []rating.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLeague[leagueID] = append([]rating.Snapshot(nil), snapshots...)
	return nil
}

func (r *RatingRepository) LatestByTeam(_ context.Context, leagueIDs []string, asOf time.Time) (map[string]rating.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]rating.Snapshot)
	for _, leagueID := range leagueIDs {
		for _, snapshot := range r.byLeague[leagueID] {
			if snapshot.MatchDate.After(asOf) {
				continue
			}
			current, ok := out[snapshot.TeamID]
			if !ok || !snapshot.MatchDate.Before(current.MatchDate) {
				out[snapshot.TeamID] = snapshot
			}
		}
	}
	return out, nil
}

func (r *RatingRepository) ListByTeam(_ context.Context, teamID string) ([]rating.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rating.Snapshot, 0)
	for _, snapshots := range r.byLeague {
		for _, snapshot := range snapshots {
			if snapshot.TeamID == teamID {
				out = append(out, snapshot)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}
