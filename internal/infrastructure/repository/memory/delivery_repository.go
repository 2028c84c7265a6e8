package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

// DeliveryRepository stores deliveries keyed by match. Match-level filters are
// delegated to the match repository so both stores agree on what a window
// contains.
type DeliveryRepository struct {
	mu        sync.RWMutex
	byMatch   map[string][]delivery.Delivery
	matchRepo *MatchRepository
}

func NewDeliveryRepository(matchRepo *MatchRepository, deliveries []delivery.Delivery) *DeliveryRepository {
	byMatch := make(map[string][]delivery.Delivery)
	for _, item := range deliveries {
		byMatch[item.MatchID] = append(byMatch[item.MatchID], item)
	}
	return &DeliveryRepository{byMatch: byMatch, matchRepo: matchRepo}
}

func (r *DeliveryRepository) ListByMatchFilter(ctx context.Context, filter match.Filter) ([]delivery.Delivery, error) {
	matches, err := r.matchRepo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches for delivery filter: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]delivery.Delivery, 0)
	for _, m := range matches {
		out = append(out, r.byMatch[m.ID]...)
	}
	return out, nil
}

func (r *DeliveryRepository) UpsertDeliveries(_ context.Context, items []delivery.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing := r.byMatch[item.MatchID]
		replaced := false
		for i, current := range existing {
			if current.Innings == item.Innings && current.Over == item.Over && current.Ball == item.Ball {
				existing[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, item)
		}
		r.byMatch[item.MatchID] = existing
	}

	for matchID := range r.byMatch {
		items := r.byMatch[matchID]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Innings != items[j].Innings {
				return items[i].Innings < items[j].Innings
			}
			if items[i].Over != items[j].Over {
				return items[i].Over < items[j].Over
			}
			return items[i].Ball < items[j].Ball
		})
	}
	return nil
}
