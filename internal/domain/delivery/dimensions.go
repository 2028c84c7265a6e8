package delivery

import (
	"errors"
	"fmt"
	"math"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
)

var ErrInvalidOver = errors.New("invalid over for format")

// Innings phases. The split is a fixed partition of an innings by over
// number, per format.
const (
	PhasePowerplay = "powerplay"
	PhaseMiddle    = "middle_overs"
	PhaseDeath     = "death_overs"
)

// Crease combinations derived from striker and non-striker batting hands.
const (
	CreaseBothRight = "rhb_rhb"
	CreaseBothLeft  = "lhb_lhb"
	CreaseMixed     = "lhb_rhb"
	CreaseUnknown   = "unknown"
)

// Ball direction derived from bowler arm versus striker hand.
const (
	DirectionSameArm  = "same_arm"
	DirectionCrossArm = "cross_arm"
	DirectionUnknown  = "unknown"
)

type phaseBoundaries struct {
	powerplayEnd int
	middleEnd    int
}

// Known formats get their conventional splits; anything else falls back to a
// proportional partition (first 30% powerplay, last 25% death).
var boundariesByFormat = map[int]phaseBoundaries{
	20:  {powerplayEnd: 6, middleEnd: 15},
	50:  {powerplayEnd: 10, middleEnd: 40},
	100: {powerplayEnd: 25, middleEnd: 80}, // balls-based formats store "overs" as 5-ball sets
}

func boundariesFor(formatOvers int) phaseBoundaries {
	if b, ok := boundariesByFormat[formatOvers]; ok {
		return b
	}
	powerplayEnd := int(math.Round(float64(formatOvers) * 0.30))
	if powerplayEnd < 1 {
		powerplayEnd = 1
	}
	deathOvers := int(math.Round(float64(formatOvers) * 0.25))
	middleEnd := formatOvers - deathOvers
	if middleEnd <= powerplayEnd {
		middleEnd = powerplayEnd + 1
	}
	return phaseBoundaries{powerplayEnd: powerplayEnd, middleEnd: middleEnd}
}

// PhaseForOver classifies a 1-based over number within a format. An over
// outside the format's legal range is an error, never a defaulted phase.
func PhaseForOver(over, formatOvers int) (string, error) {
	if formatOvers <= 0 {
		return "", fmt.Errorf("%w: format overs %d", ErrInvalidOver, formatOvers)
	}
	if over <= 0 || over > formatOvers {
		return "", fmt.Errorf("%w: over %d in %d-over format", ErrInvalidOver, over, formatOvers)
	}

	b := boundariesFor(formatOvers)
	switch {
	case over <= b.powerplayEnd:
		return PhasePowerplay, nil
	case over <= b.middleEnd:
		return PhaseMiddle, nil
	default:
		return PhaseDeath, nil
	}
}

// CreaseComboFor labels the striker/non-striker handedness pairing.
// Unresolved handedness yields the unknown bucket rather than a dropped row.
func CreaseComboFor(striker, nonStriker identity.Handedness, strikerKnown, nonStrikerKnown bool) string {
	if !strikerKnown || !nonStrikerKnown || striker.BatHand == identity.HandUnknown || nonStriker.BatHand == identity.HandUnknown {
		return CreaseUnknown
	}
	if striker.BatHand == identity.HandRight && nonStriker.BatHand == identity.HandRight {
		return CreaseBothRight
	}
	if striker.BatHand == identity.HandLeft && nonStriker.BatHand == identity.HandLeft {
		return CreaseBothLeft
	}
	return CreaseMixed
}

// BallDirectionFor labels bowler arm versus striker hand.
func BallDirectionFor(bowler, striker identity.Handedness, bowlerKnown, strikerKnown bool) string {
	if !bowlerKnown || !strikerKnown || bowler.BowlArm == identity.HandUnknown || striker.BatHand == identity.HandUnknown {
		return DirectionUnknown
	}
	if bowler.BowlArm == striker.BatHand {
		return DirectionSameArm
	}
	return DirectionCrossArm
}
