package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	qb "github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/querybuilder"
)

// ReferenceRepository loads the identity reference tables the registry is
// built from.
type ReferenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListTeamIdentities(ctx context.Context) ([]identity.TeamIdentity, error) {
	teamQuery, teamArgs, err := qb.Select("canonical_id", "name", "short_name").
		From("teams").
		OrderBy("canonical_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var teamRows []teamTableModel
	if err := r.db.SelectContext(ctx, &teamRows, teamQuery, teamArgs...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	aliasQuery, aliasArgs, err := qb.Select("team_canonical_id", "label", "valid_from", "valid_to").
		From("team_aliases").
		OrderBy("team_canonical_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team aliases query: %w", err)
	}

	var aliasRows []teamAliasTableModel
	if err := r.db.SelectContext(ctx, &aliasRows, aliasQuery, aliasArgs...); err != nil {
		return nil, fmt.Errorf("select team aliases: %w", err)
	}

	aliasesByTeam := make(map[string][]identity.Alias, len(teamRows))
	for _, row := range aliasRows {
		aliasesByTeam[row.TeamCanonicalID] = append(aliasesByTeam[row.TeamCanonicalID], identity.Alias{
			Label:     row.Label,
			ValidFrom: row.ValidFrom,
			ValidTo:   row.ValidTo,
		})
	}

	out := make([]identity.TeamIdentity, 0, len(teamRows))
	for _, row := range teamRows {
		out = append(out, identity.TeamIdentity{
			CanonicalID: row.CanonicalID,
			Name:        row.Name,
			Short:       row.Short,
			Aliases:     aliasesByTeam[row.CanonicalID],
		})
	}
	return out, nil
}

func (r *ReferenceRepository) ListLeagueIdentities(ctx context.Context) ([]identity.LeagueIdentity, error) {
	leagueQuery, leagueArgs, err := qb.Select("canonical_id", "name", "is_international").
		From("leagues").
		OrderBy("canonical_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var leagueRows []leagueTableModel
	if err := r.db.SelectContext(ctx, &leagueRows, leagueQuery, leagueArgs...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	aliasQuery, aliasArgs, err := qb.Select("league_canonical_id", "label", "valid_from", "valid_to").
		From("league_aliases").
		OrderBy("league_canonical_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select league aliases query: %w", err)
	}

	var aliasRows []leagueAliasTableModel
	if err := r.db.SelectContext(ctx, &aliasRows, aliasQuery, aliasArgs...); err != nil {
		return nil, fmt.Errorf("select league aliases: %w", err)
	}

	aliasesByLeague := make(map[string][]identity.Alias, len(leagueRows))
	for _, row := range aliasRows {
		aliasesByLeague[row.LeagueCanonicalID] = append(aliasesByLeague[row.LeagueCanonicalID], identity.Alias{
			Label:     row.Label,
			ValidFrom: row.ValidFrom,
			ValidTo:   row.ValidTo,
		})
	}

	out := make([]identity.LeagueIdentity, 0, len(leagueRows))
	for _, row := range leagueRows {
		out = append(out, identity.LeagueIdentity{
			CanonicalID:   row.CanonicalID,
			Name:          row.Name,
			International: row.International,
			Aliases:       aliasesByLeague[row.CanonicalID],
		})
	}
	return out, nil
}

func (r *ReferenceRepository) ListHandedness(ctx context.Context) ([]identity.Handedness, error) {
	query, args, err := qb.Select("label", "bat_hand", "bowl_arm").
		From("players").
		OrderBy("label").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]identity.Handedness, 0, len(rows))
	for _, row := range rows {
		out = append(out, identity.Handedness{
			Player:  row.Label,
			BatHand: row.BatHand,
			BowlArm: row.BowlArm,
		})
	}
	return out, nil
}
