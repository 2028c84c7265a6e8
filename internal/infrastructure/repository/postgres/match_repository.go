package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	qb "github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchFilterConditions(filter match.Filter) []qb.Condition {
	conditions := make([]qb.Condition, 0, 4)
	if len(filter.LeagueLabels) > 0 {
		values := make([]any, 0, len(filter.LeagueLabels))
		for _, label := range filter.LeagueLabels {
			values = append(values, identity.NormalizeLabel(label))
		}
		conditions = append(conditions, qb.In("LOWER(league_label)", values))
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, qb.Expr("match_date >= ?", filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, qb.Expr("match_date <= ?", filter.EndDate))
	}
	if !filter.IncludeInternational {
		conditions = append(conditions, qb.Eq("is_international", false))
	}
	return conditions
}

func (r *MatchRepository) ListByFilter(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(matchFilterConditions(filter)...).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

// ListChronological shares the filter path with ListByFilter; the ordering
// guarantee is the contract rating recomputes depend on.
func (r *MatchRepository) ListChronological(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	return r.ListByFilter(ctx, filter)
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for match upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertQuery = `
INSERT INTO matches (
    id, match_date, home_label, away_label, league_label, event,
    winner_label, no_result, format_overs, is_international
) VALUES (
    :id, :match_date, :home_label, :away_label, :league_label, :event,
    :winner_label, :no_result, :format_overs, :is_international
)
ON CONFLICT (id)
DO UPDATE SET
    match_date = EXCLUDED.match_date,
    home_label = EXCLUDED.home_label,
    away_label = EXCLUDED.away_label,
    league_label = EXCLUDED.league_label,
    event = EXCLUDED.event,
    winner_label = EXCLUDED.winner_label,
    no_result = EXCLUDED.no_result,
    format_overs = EXCLUDED.format_overs,
    is_international = EXCLUDED.is_international,
    updated_at = NOW()`

	for _, item := range items {
		upsertSQL, upsertArgs, err := sqlx.Named(upsertQuery, map[string]any{
			"id":               item.ID,
			"match_date":       item.Date,
			"home_label":       item.HomeLabel,
			"away_label":       item.AwayLabel,
			"league_label":     item.LeagueLabel,
			"event":            item.Event,
			"winner_label":     item.WinnerLabel,
			"no_result":        item.NoResult,
			"format_overs":     item.FormatOvers,
			"is_international": item.International,
		})
		if err != nil {
			return fmt.Errorf("bind upsert match %s query: %w", item.ID, err)
		}
		upsertSQL = tx.Rebind(upsertSQL)
		if _, err := tx.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
			return fmt.Errorf("upsert match %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match upsert tx: %w", err)
	}

	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            row.ID,
		Date:          row.MatchDate,
		HomeLabel:     row.HomeLabel,
		AwayLabel:     row.AwayLabel,
		LeagueLabel:   row.LeagueLabel,
		Event:         row.Event,
		WinnerLabel:   row.WinnerLabel,
		NoResult:      row.NoResult,
		FormatOvers:   row.FormatOvers,
		International: row.International,
	}
}
