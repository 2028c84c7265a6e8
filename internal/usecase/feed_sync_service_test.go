package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

type stubFeedClient struct {
	matches    []ExternalMatch
	deliveries map[string][]ExternalDelivery
}

func (c *stubFeedClient) FetchMatches(_ context.Context, _, _ time.Time) ([]ExternalMatch, error) {
	return c.matches, nil
}

func (c *stubFeedClient) FetchDeliveries(_ context.Context, matchExternalID string) ([]ExternalDelivery, error) {
	return c.deliveries[matchExternalID], nil
}

func TestFeedSyncService_SyncWindow(t *testing.T) {
	t.Parallel()

	env := newSeededEnv(t)
	client := &stubFeedClient{
		matches: []ExternalMatch{
			{
				ExternalID:  "ipl-2022-m01",
				Date:        date(2022, time.April, 2),
				HomeLabel:   "Chennai Super Kings",
				AwayLabel:   "Mumbai Indians",
				LeagueLabel: "Tata IPL",
				WinnerLabel: "Chennai Super Kings",
				FormatOvers: 20,
			},
			{
				// No winner and no no-result marker: fails validation.
				ExternalID:  "ipl-2022-m02",
				Date:        date(2022, time.April, 3),
				HomeLabel:   "Punjab Kings",
				AwayLabel:   "Delhi Capitals",
				LeagueLabel: "Tata IPL",
				FormatOvers: 20,
			},
		},
		deliveries: map[string][]ExternalDelivery{
			"ipl-2022-m01": {
				{Innings: 1, Over: 1, Ball: 1, BattingLabel: "Chennai Super Kings", BowlingLabel: "Mumbai Indians", Runs: 4},
				{Innings: 1, Over: 1, Ball: 2, BattingLabel: "Chennai Super Kings", BowlingLabel: "Mumbai Indians", Runs: 1},
				// Ball zero fails validation and is skipped, not fatal.
				{Innings: 1, Over: 1, Ball: 0, BattingLabel: "Chennai Super Kings", BowlingLabel: "Mumbai Indians"},
			},
		},
	}

	svc := NewFeedSyncService(client, env.matchRepo, env.deliveryRepo, env.cache, nil)

	// A stale aggregate entry must not survive an ingest.
	env.cache.Set(context.Background(), "aggregate:stale", "stale")

	result, err := svc.SyncWindow(context.Background(), date(2022, time.April, 1), date(2022, time.April, 30))
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Equal(t, 1, result.Matches)
	require.Equal(t, 2, result.Deliveries)
	require.Equal(t, 2, result.Skipped)

	stored, err := env.matchRepo.ListByFilter(context.Background(), match.Filter{
		StartDate: date(2022, time.April, 1),
		EndDate:   date(2022, time.April, 30),
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "ipl-2022-m01", stored[0].ID)

	rows, err := env.deliveryRepo.ListByMatchFilter(context.Background(), match.Filter{
		StartDate: date(2022, time.April, 1),
		EndDate:   date(2022, time.April, 30),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, ok := env.cache.Get(context.Background(), "aggregate:stale")
	require.False(t, ok, "aggregate cache entries must be invalidated after a sync")
}

func TestFeedSyncService_RunIDsAreUnique(t *testing.T) {
	t.Parallel()

	env := newSeededEnv(t)
	client := &stubFeedClient{}
	svc := NewFeedSyncService(client, env.matchRepo, env.deliveryRepo, nil, nil)

	first, err := svc.SyncWindow(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	second, err := svc.SyncWindow(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)
}

func TestFeedSyncService_RequiresClient(t *testing.T) {
	t.Parallel()

	env := newSeededEnv(t)
	svc := NewFeedSyncService(nil, env.matchRepo, env.deliveryRepo, nil, nil)

	_, err := svc.SyncWindow(context.Background(), time.Time{}, time.Time{})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestFeedSyncService_RejectsInvertedWindow(t *testing.T) {
	t.Parallel()

	env := newSeededEnv(t)
	svc := NewFeedSyncService(&stubFeedClient{}, env.matchRepo, env.deliveryRepo, nil, nil)

	_, err := svc.SyncWindow(context.Background(), date(2022, time.May, 1), date(2022, time.April, 1))
	require.ErrorIs(t, err, ErrInvalidInput)
}
