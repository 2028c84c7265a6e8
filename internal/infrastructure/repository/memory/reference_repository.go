package memory

import (
	"context"
	"sync"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
)

type ReferenceRepository struct {
	mu         sync.RWMutex
	teams      []identity.TeamIdentity
	leagues    []identity.LeagueIdentity
	handedness []identity.Handedness
}

func NewReferenceRepository(
	teams []identity.TeamIdentity,
	leagues []identity.LeagueIdentity,
	handedness []identity.Handedness,
) *ReferenceRepository {
	return &ReferenceRepository{
		teams:      append([]identity.TeamIdentity(nil), teams...),
		leagues:    append([]identity.LeagueIdentity(nil), leagues...),
		handedness: append([]identity.Handedness(nil), handedness...),
	}
}

func (r *ReferenceRepository) ListTeamIdentities(_ context.Context) ([]identity.TeamIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]identity.TeamIdentity(nil), r.teams...), nil
}

func (r *ReferenceRepository) ListLeagueIdentities(_ context.Context) ([]identity.LeagueIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]identity.LeagueIdentity(nil), r.leagues...), nil
}

func (r *ReferenceRepository) ListHandedness(_ context.Context) ([]identity.Handedness, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]identity.Handedness(nil), r.handedness...), nil
}
