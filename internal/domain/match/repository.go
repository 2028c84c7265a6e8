package match

import (
	"context"
	"time"
)

// Filter narrows match reads. LeagueLabels is the expanded alias set for the
// requested competitions; callers resolve canonical ids to every label each
// league has appeared under before the repository is touched, so renamed
// competitions match across eras.
type Filter struct {
	StartDate            time.Time
	EndDate              time.Time
	LeagueLabels         []string
	IncludeInternational bool
}

// Repository exposes match read and write operations.
type Repository interface {
	ListByFilter(ctx context.Context, filter Filter) ([]Match, error)
	ListChronological(ctx context.Context, filter Filter) ([]Match, error)
	UpsertMatches(ctx context.Context, items []Match) error
}
