package identity

import "context"

// Repository loads reference data the registry is built from.
type Repository interface {
	ListTeamIdentities(ctx context.Context) ([]TeamIdentity, error)
	ListLeagueIdentities(ctx context.Context) ([]LeagueIdentity, error)
	ListHandedness(ctx context.Context) ([]Handedness, error)
}
