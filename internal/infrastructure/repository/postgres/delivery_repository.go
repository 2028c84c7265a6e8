package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
	qb "github.com/adityabalaji97/cricket-data-thing-sub003/internal/platform/querybuilder"
)

type DeliveryRepository struct {
	db *sqlx.DB
}

func NewDeliveryRepository(db *sqlx.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) ListByMatchFilter(ctx context.Context, filter match.Filter) ([]delivery.Delivery, error) {
	conditions := make([]qb.Condition, 0, 4)
	if len(filter.LeagueLabels) > 0 {
		values := make([]any, 0, len(filter.LeagueLabels))
		for _, label := range filter.LeagueLabels {
			values = append(values, identity.NormalizeLabel(label))
		}
		conditions = append(conditions, qb.In("LOWER(m.league_label)", values))
	}
	if !filter.StartDate.IsZero() {
		conditions = append(conditions, qb.Expr("m.match_date >= ?", filter.StartDate))
	}
	if !filter.EndDate.IsZero() {
		conditions = append(conditions, qb.Expr("m.match_date <= ?", filter.EndDate))
	}
	if !filter.IncludeInternational {
		conditions = append(conditions, qb.Eq("m.is_international", false))
	}

	query, args, err := qb.Select(
		"d.id", "d.match_id", "d.innings", "d.over_num", "d.ball_num",
		"d.striker", "d.non_striker", "d.bowler",
		"d.batting_label", "d.bowling_label",
		"d.runs", "d.extras", "d.wicket",
		"d.shot", "d.line", "d.length",
	).From("deliveries d JOIN matches m ON m.id = d.match_id").
		Where(conditions...).
		OrderBy("m.match_date", "d.match_id", "d.innings", "d.over_num", "d.ball_num").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select deliveries query: %w", err)
	}

	var rows []deliveryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select deliveries: %w", err)
	}

	out := make([]delivery.Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, delivery.Delivery{
			MatchID:      row.MatchID,
			Innings:      row.Innings,
			Over:         row.OverNum,
			Ball:         row.BallNum,
			Striker:      row.Striker,
			NonStriker:   row.NonStriker,
			Bowler:       row.Bowler,
			BattingLabel: row.BattingLabel,
			BowlingLabel: row.BowlingLabel,
			Runs:         row.Runs,
			Extras:       row.Extras,
			Wicket:       row.Wicket,
			Shot:         row.Shot,
			Line:         row.Line,
			Length:       row.Length,
		})
	}
	return out, nil
}

func (r *DeliveryRepository) UpsertDeliveries(ctx context.Context, items []delivery.Delivery) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for delivery upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertQuery = `
INSERT INTO deliveries (
    match_id, innings, over_num, ball_num,
    striker, non_striker, bowler,
    batting_label, bowling_label,
    runs, extras, wicket, shot, line, length
) VALUES (
    :match_id, :innings, :over_num, :ball_num,
    :striker, :non_striker, :bowler,
    :batting_label, :bowling_label,
    :runs, :extras, :wicket, :shot, :line, :length
)
ON CONFLICT (match_id, innings, over_num, ball_num)
DO UPDATE SET
    striker = EXCLUDED.striker,
    non_striker = EXCLUDED.non_striker,
    bowler = EXCLUDED.bowler,
    batting_label = EXCLUDED.batting_label,
    bowling_label = EXCLUDED.bowling_label,
    runs = EXCLUDED.runs,
    extras = EXCLUDED.extras,
    wicket = EXCLUDED.wicket,
    shot = EXCLUDED.shot,
    line = EXCLUDED.line,
    length = EXCLUDED.length`

	for _, item := range items {
		upsertSQL, upsertArgs, err := sqlx.Named(upsertQuery, map[string]any{
			"match_id":      item.MatchID,
			"innings":       item.Innings,
			"over_num":      item.Over,
			"ball_num":      item.Ball,
			"striker":       item.Striker,
			"non_striker":   item.NonStriker,
			"bowler":        item.Bowler,
			"batting_label": item.BattingLabel,
			"bowling_label": item.BowlingLabel,
			"runs":          item.Runs,
			"extras":        item.Extras,
			"wicket":        item.Wicket,
			"shot":          item.Shot,
			"line":          item.Line,
			"length":        item.Length,
		})
		if err != nil {
			return fmt.Errorf("bind upsert delivery query: %w", err)
		}
		upsertSQL = tx.Rebind(upsertSQL)
		if _, err := tx.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
			return fmt.Errorf("upsert delivery match=%s innings=%d over=%d ball=%d: %w",
				item.MatchID, item.Innings, item.Over, item.Ball, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delivery upsert tx: %w", err)
	}

	return nil
}
