package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/infrastructure/repository/memory"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/cache"
)

// seededEnv wires the memory repositories around the seed fixtures the way the
// application container does at startup.
type seededEnv struct {
	holder       *identity.Holder
	matchRepo    *memory.MatchRepository
	deliveryRepo *memory.DeliveryRepository
	ratingRepo   *memory.RatingRepository
	refRepo      *memory.ReferenceRepository
	cache        *cache.Store
}

func newSeededEnv(t *testing.T) *seededEnv {
	t.Helper()

	refRepo := memory.NewReferenceRepository(memory.SeedTeams(), memory.SeedLeagues(), memory.SeedHandedness())
	registry, err := BuildRegistry(context.Background(), refRepo)
	if err != nil {
		t.Fatalf("build registry from seeds: %v", err)
	}

	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	return &seededEnv{
		holder:       identity.NewHolder(registry),
		matchRepo:    matchRepo,
		deliveryRepo: memory.NewDeliveryRepository(matchRepo, memory.SeedDeliveries()),
		ratingRepo:   memory.NewRatingRepository(),
		refRepo:      refRepo,
		cache:        cache.NewStore(time.Minute),
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
