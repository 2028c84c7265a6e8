package delivery

import (
	"fmt"
	"time"
)

// Delivery is one ball bowled within a match. (MatchID, Innings, Over, Ball)
// uniquely identifies a delivery in well-formed data. Over numbers are
// 1-based. The Batting/Bowling labels are raw scorecard labels; canonical
// resolution and derived dimensions are attached at query time.
type Delivery struct {
	MatchID      string
	Innings      int
	Over         int
	Ball         int
	Striker      string
	NonStriker   string
	Bowler       string
	BattingLabel string
	BowlingLabel string
	Runs         int
	Extras       int
	Wicket       bool
	Shot         string
	Line         string
	Length       string
}

func (d Delivery) Validate() error {
	if d.MatchID == "" {
		return fmt.Errorf("delivery match id is required")
	}
	if d.Innings <= 0 {
		return fmt.Errorf("delivery innings must be positive")
	}
	if d.Over <= 0 {
		return fmt.Errorf("delivery over must be positive")
	}
	if d.Ball <= 0 {
		return fmt.Errorf("delivery ball must be positive")
	}
	if d.Runs < 0 || d.Extras < 0 {
		return fmt.Errorf("delivery runs and extras cannot be negative")
	}
	return nil
}

// Tagged is a delivery joined with its match context and derived dimensions,
// computed once per delivery when a filtered set is assembled.
type Tagged struct {
	Delivery

	MatchDate     time.Time
	Year          int
	LeagueID      string
	International bool

	BattingTeamID string
	BowlingTeamID string

	Phase         string
	CreaseCombo   string
	BallDirection string
}
