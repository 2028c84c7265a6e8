package rating

import (
	"errors"
	"time"
)

// ErrOutOfOrderUpdate reports a rating update applied against a match older
// than the team's last processed match. ELO is path-dependent, so this is a
// programming error in the caller's ordering, not a recoverable condition.
var ErrOutOfOrderUpdate = errors.New("rating update out of chronological order")

// Snapshot is one team's rating as of the match that produced it. Each match
// emits exactly one snapshot per participating team. LeagueID scopes the
// rating sequence to the competition it was computed over.
type Snapshot struct {
	TeamID       string
	LeagueID     string
	MatchID      string
	MatchDate    time.Time
	RatingBefore float64
	RatingAfter  float64
}

// Change returns the rating delta the match produced.
func (s Snapshot) Change() float64 {
	return s.RatingAfter - s.RatingBefore
}

// Ranking is one row of a rankings listing.
type Ranking struct {
	TeamID string
	Name   string
	Short  string
	Rating float64
}
