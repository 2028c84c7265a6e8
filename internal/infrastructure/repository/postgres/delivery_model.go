package postgres

type deliveryTableModel struct {
	ID           int64  `db:"id"`
	MatchID      string `db:"match_id"`
	Innings      int    `db:"innings"`
	OverNum      int    `db:"over_num"`
	BallNum      int    `db:"ball_num"`
	Striker      string `db:"striker"`
	NonStriker   string `db:"non_striker"`
	Bowler       string `db:"bowler"`
	BattingLabel string `db:"batting_label"`
	BowlingLabel string `db:"bowling_label"`
	Runs         int    `db:"runs"`
	Extras       int    `db:"extras"`
	Wicket       bool   `db:"wicket"`
	Shot         string `db:"shot"`
	Line         string `db:"line"`
	Length       string `db:"length"`
}
