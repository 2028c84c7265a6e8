package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
)

// Grouping dimension names accepted by Aggregate.
const (
	DimYear          = "year"
	DimPhase         = "phase"
	DimCreaseCombo   = "crease_combo"
	DimBallDirection = "ball_direction"
	DimMatchID       = "match_id"
	DimInnings       = "innings"
	DimBattingTeam   = "batting_team"
	DimBowlingTeam   = "bowling_team"
	DimLeague        = "league"
)

type dimensionFunc func(delivery.Tagged) string

var dimensionFuncs = map[string]dimensionFunc{
	DimYear:          func(d delivery.Tagged) string { return strconv.Itoa(d.Year) },
	DimPhase:         func(d delivery.Tagged) string { return d.Phase },
	DimCreaseCombo:   func(d delivery.Tagged) string { return d.CreaseCombo },
	DimBallDirection: func(d delivery.Tagged) string { return d.BallDirection },
	DimMatchID:       func(d delivery.Tagged) string { return d.MatchID },
	DimInnings:       func(d delivery.Tagged) string { return strconv.Itoa(d.Innings) },
	DimBattingTeam:   func(d delivery.Tagged) string { return d.BattingTeamID },
	DimBowlingTeam:   func(d delivery.Tagged) string { return d.BowlingTeamID },
	DimLeague:        func(d delivery.Tagged) string { return d.LeagueID },
}

// Dimensions lists the recognized dimension names in stable order.
func Dimensions() []string {
	out := make([]string, 0, len(dimensionFuncs))
	for name := range dimensionFuncs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func resolveDimensions(groupBy []string) ([]dimensionFunc, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("%w: group_by cannot be empty", ErrInvalidDimension)
	}

	funcs := make([]dimensionFunc, 0, len(groupBy))
	for _, name := range groupBy {
		fn, ok := dimensionFuncs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (recognized: %s)", ErrInvalidDimension, name, strings.Join(Dimensions(), ", "))
		}
		funcs = append(funcs, fn)
	}
	return funcs, nil
}
