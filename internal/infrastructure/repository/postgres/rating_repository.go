package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	qb "github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/querybuilder"
)

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// ReplaceAll swaps a league's whole trajectory in one transaction. Recompute
// writes the full history every run, so partial updates are never needed.
func (r *RatingRepository) ReplaceAll(ctx context.Context, leagueID string, snapshots []rating.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for rating replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rating_snapshots WHERE league_id = $1`, leagueID); err != nil {
		return fmt.Errorf("delete rating snapshots league=%s: %w", leagueID, err)
	}

	if len(snapshots) > 0 {
		builder := qb.InsertInto("rating_snapshots").
			Columns("league_id", "team_id", "match_id", "match_date", "rating_before", "rating_after")
		for _, s := range snapshots {
			builder.Values(leagueID, s.TeamID, s.MatchID, s.MatchDate, s.RatingBefore, s.RatingAfter)
		}
		insertSQL, insertArgs, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert rating snapshots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("insert rating snapshots league=%s: %w", leagueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rating replace tx: %w", err)
	}

	return nil
}

func (r *RatingRepository) LatestByTeam(ctx context.Context, leagueIDs []string, asOf time.Time) (map[string]rating.Snapshot, error) {
	const query = `
SELECT DISTINCT ON (team_id)
    id, league_id, team_id, match_id, match_date, rating_before, rating_after
FROM rating_snapshots
WHERE league_id = ANY($1)
  AND match_date <= $2
ORDER BY team_id, match_date DESC, id DESC`

	var rows []ratingSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(leagueIDs), asOf); err != nil {
		return nil, fmt.Errorf("select latest ratings: %w", err)
	}

	out := make(map[string]rating.Snapshot, len(rows))
	for _, row := range rows {
		out[row.TeamID] = snapshotFromRow(row)
	}
	return out, nil
}

func (r *RatingRepository) ListByTeam(ctx context.Context, teamID string) ([]rating.Snapshot, error) {
	query, args, err := qb.Select("id", "league_id", "team_id", "match_id", "match_date", "rating_before", "rating_after").
		From("rating_snapshots").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rating history query: %w", err)
	}

	var rows []ratingSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rating history team=%s: %w", teamID, err)
	}

	out := make([]rating.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, snapshotFromRow(row))
	}
	return out, nil
}

func snapshotFromRow(row ratingSnapshotTableModel) rating.Snapshot {
	return rating.Snapshot{
		LeagueID:     row.LeagueID,
		TeamID:       row.TeamID,
		MatchID:      row.MatchID,
		MatchDate:    row.MatchDate,
		RatingBefore: row.RatingBefore,
		RatingAfter:  row.RatingAfter,
	}
}
