package usecase

import (
	"context"
	"fmt"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/match"
)

// resolveMatchFilter translates a delivery filter spec into a storage-level
// match filter. Requested league labels are resolved through the league-alias
// registry and expanded to every label the competition has appeared under, so
// rows written under sponsor-era names still match.
func resolveMatchFilter(registry *identity.Registry, spec delivery.FilterSpec) (match.Filter, error) {
	filter := match.Filter{
		StartDate:            spec.StartDate,
		EndDate:              spec.EndDate,
		IncludeInternational: spec.IncludeInternational,
	}

	for _, label := range spec.Leagues {
		league, err := registry.ResolveLeague(label)
		if err != nil {
			return match.Filter{}, fmt.Errorf("resolve league filter: %w", err)
		}
		filter.LeagueLabels = append(filter.LeagueLabels, registry.LeagueAliasLabels(league.CanonicalID)...)
	}

	return filter, nil
}

// buildFilteredSet loads matches and deliveries for a filter spec and attaches
// the derived per-delivery dimensions. Deliveries whose team labels do not
// resolve are excluded and counted, never silently dropped.
func buildFilteredSet(
	ctx context.Context,
	registry *identity.Registry,
	matchRepo match.Repository,
	deliveryRepo delivery.Repository,
	spec delivery.FilterSpec,
) (delivery.FilteredSet, error) {
	if err := spec.Validate(); err != nil {
		return delivery.FilteredSet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter, err := resolveMatchFilter(registry, spec)
	if err != nil {
		return delivery.FilteredSet{}, err
	}

	matches, err := matchRepo.ListByFilter(ctx, filter)
	if err != nil {
		return delivery.FilteredSet{}, fmt.Errorf("list matches: %w", err)
	}
	matchByID := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}

	rows, err := deliveryRepo.ListByMatchFilter(ctx, filter)
	if err != nil {
		return delivery.FilteredSet{}, fmt.Errorf("list deliveries: %w", err)
	}

	set := delivery.FilteredSet{Deliveries: make([]delivery.Tagged, 0, len(rows))}
	seenMatches := make(map[string]struct{})
	for _, row := range rows {
		m, ok := matchByID[row.MatchID]
		if !ok {
			continue
		}

		tagged, ok, err := tagDelivery(registry, m, row)
		if err != nil {
			return delivery.FilteredSet{}, err
		}
		if !ok {
			set.ExcludedUnknownTeams++
			continue
		}
		if spec.TeamID != "" && tagged.BattingTeamID != spec.TeamID {
			continue
		}

		set.Deliveries = append(set.Deliveries, tagged)
		if _, seen := seenMatches[tagged.MatchID]; !seen {
			seenMatches[tagged.MatchID] = struct{}{}
		}
	}
	set.MatchCount = len(seenMatches)

	return set, nil
}

// tagDelivery computes the derived dimensions for one delivery. The second
// return is false when a team label cannot be resolved to a canonical id.
func tagDelivery(registry *identity.Registry, m match.Match, row delivery.Delivery) (delivery.Tagged, bool, error) {
	battingLabel := row.BattingLabel
	bowlingLabel := row.BowlingLabel
	if battingLabel == "" || bowlingLabel == "" {
		// Older ingests only recorded labels at match level; innings 1 bats
		// for the home side by convention there.
		if row.Innings%2 == 1 {
			battingLabel, bowlingLabel = m.HomeLabel, m.AwayLabel
		} else {
			battingLabel, bowlingLabel = m.AwayLabel, m.HomeLabel
		}
	}

	batting, err := registry.ResolveTeamAt(battingLabel, m.Date)
	if err != nil {
		return delivery.Tagged{}, false, nil
	}
	bowling, err := registry.ResolveTeamAt(bowlingLabel, m.Date)
	if err != nil {
		return delivery.Tagged{}, false, nil
	}

	phase, err := delivery.PhaseForOver(row.Over, m.FormatOvers)
	if err != nil {
		return delivery.Tagged{}, false, fmt.Errorf("tag delivery %s/%d/%d.%d: %w", row.MatchID, row.Innings, row.Over, row.Ball, err)
	}

	leagueID := ""
	if league, err := registry.ResolveLeague(m.LeagueLabel); err == nil {
		leagueID = league.CanonicalID
	}

	strikerHand, strikerKnown := registry.HandednessFor(row.Striker)
	nonStrikerHand, nonStrikerKnown := registry.HandednessFor(row.NonStriker)
	bowlerHand, bowlerKnown := registry.HandednessFor(row.Bowler)

	return delivery.Tagged{
		Delivery:      row,
		MatchDate:     m.Date,
		Year:          m.Year(),
		LeagueID:      leagueID,
		International: m.International,
		BattingTeamID: batting.CanonicalID,
		BowlingTeamID: bowling.CanonicalID,
		Phase:         phase,
		CreaseCombo:   delivery.CreaseComboFor(strikerHand, nonStrikerHand, strikerKnown, nonStrikerKnown),
		BallDirection: delivery.BallDirectionFor(bowlerHand, strikerHand, bowlerKnown, strikerKnown),
	}, true, nil
}
