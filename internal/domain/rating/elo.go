package rating

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultBase = 1500.0
	DefaultK    = 32.0
)

// Match outcome scores.
const (
	ScoreWin      = 1.0
	ScoreLoss     = 0.0
	ScoreNoResult = 0.5
)

// Expected returns the expected score for a team rated ratingA against an
// opponent rated ratingB.
func Expected(ratingA, ratingB float64) float64 {
	return 1 / (1 + math.Pow(10, (ratingB-ratingA)/400))
}

// Update applies one result to a prior rating.
func Update(prior, actual, expected, k float64) float64 {
	return prior + k*(actual-expected)
}

// ApplyMatch produces the post-match ratings for both sides. actualA is the
// first team's score (1 win, 0 loss, 0.5 no-result); the second team's score
// is its complement.
func ApplyMatch(priorA, priorB, actualA, k float64) (newA, newB float64) {
	expectedA := Expected(priorA, priorB)
	newA = Update(priorA, actualA, expectedA, k)
	newB = Update(priorB, 1-actualA, 1-expectedA, k)
	return newA, newB
}

// Ledger threads a rating sequence per canonical team id through a strictly
// chronological stream of matches. It is deterministic: replaying the same
// ordered matches from the same starting state reproduces identical
// trajectories.
type Ledger struct {
	base    float64
	k       float64
	current map[string]float64
	lastAt  map[string]time.Time
}

func NewLedger(base, k float64) *Ledger {
	if base == 0 {
		base = DefaultBase
	}
	if k == 0 {
		k = DefaultK
	}
	return &Ledger{
		base:    base,
		k:       k,
		current: make(map[string]float64),
		lastAt:  make(map[string]time.Time),
	}
}

// Rating returns a team's current rating, or the base for unseen teams.
func (l *Ledger) Rating(teamID string) float64 {
	if r, ok := l.current[teamID]; ok {
		return r
	}
	return l.base
}

// Apply processes one match result keyed by canonical team ids and returns
// the snapshot per side. A match dated before either team's last processed
// match is rejected with ErrOutOfOrderUpdate.
func (l *Ledger) Apply(matchID string, matchDate time.Time, teamA, teamB string, scoreA float64) (Snapshot, Snapshot, error) {
	if teamA == "" || teamB == "" {
		return Snapshot{}, Snapshot{}, fmt.Errorf("both canonical team ids are required")
	}
	for _, teamID := range []string{teamA, teamB} {
		if last, ok := l.lastAt[teamID]; ok && matchDate.Before(last) {
			return Snapshot{}, Snapshot{}, fmt.Errorf(
				"%w: team %s match %s dated %s before last processed %s",
				ErrOutOfOrderUpdate, teamID, matchID,
				matchDate.Format("2006-01-02"), last.Format("2006-01-02"),
			)
		}
	}

	priorA, priorB := l.Rating(teamA), l.Rating(teamB)
	newA, newB := ApplyMatch(priorA, priorB, scoreA, l.k)

	l.current[teamA] = newA
	l.current[teamB] = newB
	l.lastAt[teamA] = matchDate
	l.lastAt[teamB] = matchDate

	snapA := Snapshot{TeamID: teamA, MatchID: matchID, MatchDate: matchDate, RatingBefore: priorA, RatingAfter: newA}
	snapB := Snapshot{TeamID: teamB, MatchID: matchID, MatchDate: matchDate, RatingBefore: priorB, RatingAfter: newB}
	return snapA, snapB, nil
}

// Ratings returns the current rating per team id.
func (l *Ledger) Ratings() map[string]float64 {
	out := make(map[string]float64, len(l.current))
	for teamID, r := range l.current {
		out[teamID] = r
	}
	return out
}
