package delivery

import (
	"context"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

// Repository exposes delivery read and write operations. Reads are keyed by
// match filters; per-delivery dimension tagging happens above the repository.
type Repository interface {
	ListByMatchFilter(ctx context.Context, filter match.Filter) ([]Delivery, error)
	UpsertDeliveries(ctx context.Context, items []Delivery) error
}
