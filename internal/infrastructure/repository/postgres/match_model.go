package postgres

import "time"

type matchTableModel struct {
	ID            string    `db:"id"`
	MatchDate     time.Time `db:"match_date"`
	HomeLabel     string    `db:"home_label"`
	AwayLabel     string    `db:"away_label"`
	LeagueLabel   string    `db:"league_label"`
	Event         string    `db:"event"`
	WinnerLabel   string    `db:"winner_label"`
	NoResult      bool      `db:"no_result"`
	FormatOvers   int       `db:"format_overs"`
	International bool      `db:"is_international"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
