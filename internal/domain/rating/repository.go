package rating

import (
	"context"
	"time"
)

// Repository persists rating snapshots. ReplaceAll swaps a league scope's
// snapshots atomically so recompute runs stay idempotent.
type Repository interface {
	ReplaceAll(ctx context.Context, leagueID string, snapshots []Snapshot) error
	LatestByTeam(ctx context.Context, leagueIDs []string, asOf time.Time) (map[string]Snapshot, error)
	ListByTeam(ctx context.Context, teamID string) ([]Snapshot, error)
}
