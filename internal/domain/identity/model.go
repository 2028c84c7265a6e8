package identity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownTeam   = errors.New("unknown team label")
	ErrUnknownLeague = errors.New("unknown league label")
)

// Alias is one raw label a team or league has been known by. A nil window
// bound means the alias is open-ended on that side.
type Alias struct {
	Label     string
	ValidFrom *time.Time
	ValidTo   *time.Time
}

func (a Alias) activeAt(at time.Time) bool {
	if a.ValidFrom != nil && at.Before(*a.ValidFrom) {
		return false
	}
	if a.ValidTo != nil && at.After(*a.ValidTo) {
		return false
	}
	return true
}

func (a Alias) overlaps(b Alias) bool {
	if a.ValidTo != nil && b.ValidFrom != nil && a.ValidTo.Before(*b.ValidFrom) {
		return false
	}
	if b.ValidTo != nil && a.ValidFrom != nil && b.ValidTo.Before(*a.ValidFrom) {
		return false
	}
	return true
}

// TeamIdentity is the canonical representation of a franchise across its
// whole history, including every name it has played under.
type TeamIdentity struct {
	CanonicalID string
	Name        string
	Short       string
	Aliases     []Alias
}

func (t TeamIdentity) Validate() error {
	if t.CanonicalID == "" {
		return fmt.Errorf("team canonical id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// LeagueIdentity is the canonical representation of a competition across
// sponsor renames.
type LeagueIdentity struct {
	CanonicalID   string
	Name          string
	Aliases       []Alias
	International bool
}

func (l LeagueIdentity) Validate() error {
	if l.CanonicalID == "" {
		return fmt.Errorf("league canonical id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	return nil
}

// Handedness holds batting hand and bowling arm reference data for a player.
type Handedness struct {
	Player  string
	BatHand string
	BowlArm string
}

const (
	HandRight   = "right"
	HandLeft    = "left"
	HandUnknown = ""
)
