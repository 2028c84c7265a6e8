package match

import (
	"fmt"
	"time"
)

// Match is one played fixture. Team and league fields carry the raw labels
// recorded on the scorecard; canonical resolution happens at query time so a
// registry refresh never requires rewriting history.
type Match struct {
	ID            string
	Date          time.Time
	HomeLabel     string
	AwayLabel     string
	LeagueLabel   string
	Event         string
	WinnerLabel   string
	NoResult      bool
	FormatOvers   int
	International bool
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.HomeLabel == "" || m.AwayLabel == "" {
		return fmt.Errorf("match requires two team labels")
	}
	if m.FormatOvers <= 0 {
		return fmt.Errorf("match format overs must be positive")
	}
	if m.WinnerLabel == "" && !m.NoResult {
		return fmt.Errorf("match requires a winner or the no-result marker")
	}
	if m.WinnerLabel != "" && m.NoResult {
		return fmt.Errorf("match cannot both have a winner and be a no-result")
	}
	return nil
}

// Year returns the calendar year the match was played in.
func (m Match) Year() int {
	return m.Date.Year()
}
