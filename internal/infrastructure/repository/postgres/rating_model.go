package postgres

import "time"

type ratingSnapshotTableModel struct {
	ID           int64     `db:"id"`
	LeagueID     string    `db:"league_id"`
	TeamID       string    `db:"team_id"`
	MatchID      string    `db:"match_id"`
	MatchDate    time.Time `db:"match_date"`
	RatingBefore float64   `db:"rating_before"`
	RatingAfter  float64   `db:"rating_after"`
}
