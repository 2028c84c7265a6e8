package usecase

import (
	"context"
	"fmt"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/logging"
)

// ReferenceService owns the identity registry lifecycle: build at startup,
// rebuild-and-swap on refresh. Queries in flight keep the snapshot they
// started with.
type ReferenceService struct {
	repo   identity.Repository
	holder *identity.Holder
	logger *logging.Logger
}

func NewReferenceService(repo identity.Repository, holder *identity.Holder, logger *logging.Logger) *ReferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReferenceService{repo: repo, holder: holder, logger: logger}
}

// BuildRegistry loads reference data and constructs an immutable registry.
func BuildRegistry(ctx context.Context, repo identity.Repository) (*identity.Registry, error) {
	teams, err := repo.ListTeamIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team identities: %w", err)
	}
	leagues, err := repo.ListLeagueIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list league identities: %w", err)
	}
	handedness, err := repo.ListHandedness(ctx)
	if err != nil {
		return nil, fmt.Errorf("list handedness reference: %w", err)
	}

	registry, err := identity.NewRegistry(teams, leagues, handedness)
	if err != nil {
		return nil, fmt.Errorf("build identity registry: %w", err)
	}
	return registry, nil
}

// Refresh rebuilds the registry from reference data and swaps it in
// atomically.
func (s *ReferenceService) Refresh(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.Refresh")
	defer span.End()

	registry, err := BuildRegistry(ctx, s.repo)
	if err != nil {
		return err
	}

	s.holder.Swap(registry)
	s.logger.InfoContext(ctx, "identity registry refreshed",
		"teams", len(registry.Teams()),
		"leagues", len(registry.LeagueIDs()),
	)
	return nil
}
