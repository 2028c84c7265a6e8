package stats

import (
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
)

// PhaseLine is one phase of a report: the raw aggregates plus the strike rate
// normalized against the benchmark cohort (100 = exactly average). Normalized
// is nil when the benchmark has no balls in the phase.
type PhaseLine struct {
	Phase                string   `json:"phase"`
	Runs                 int      `json:"runs"`
	Balls                int      `json:"balls"`
	Wickets              int      `json:"wickets"`
	StrikeRate           float64  `json:"strike_rate"`
	BenchmarkStrikeRate  float64  `json:"benchmark_strike_rate"`
	NormalizedStrikeRate *float64 `json:"normalized_strike_rate"`
}

// PhaseReport is the phase-normalized view of a team's deliveries over a
// window, with enough context to judge how robust the benchmark is.
type PhaseReport struct {
	TeamID         string      `json:"team_id"`
	Phases         []PhaseLine `json:"phases"`
	TotalMatches   int         `json:"total_matches"`
	Context        string      `json:"context"`
	BenchmarkTeams int         `json:"benchmark_teams"`
}

// Phases in report order.
var phaseOrder = []string{delivery.PhasePowerplay, delivery.PhaseMiddle, delivery.PhaseDeath}

// BuildPhaseReport computes per-phase aggregates for the target set and
// normalizes each phase's strike rate against the benchmark cohort's strike
// rate over the same phase. A phase with no target balls reports zero raw
// figures; a phase with no benchmark balls reports a nil normalized value.
func BuildPhaseReport(teamID string, target, benchmark []delivery.Tagged, totalMatches, benchmarkTeams int, context string) PhaseReport {
	targetByPhase := metricsByPhase(target)
	benchmarkByPhase := metricsByPhase(benchmark)

	report := PhaseReport{
		TeamID:         teamID,
		Phases:         make([]PhaseLine, 0, len(phaseOrder)),
		TotalMatches:   totalMatches,
		Context:        context,
		BenchmarkTeams: benchmarkTeams,
	}

	for _, phase := range phaseOrder {
		t := targetByPhase[phase]
		b := benchmarkByPhase[phase]

		line := PhaseLine{
			Phase:               phase,
			Runs:                t.Runs,
			Balls:               t.Balls,
			Wickets:             t.Wickets,
			StrikeRate:          t.StrikeRate,
			BenchmarkStrikeRate: b.StrikeRate,
		}
		if b.Balls > 0 && b.StrikeRate > 0 {
			normalized := t.StrikeRate / b.StrikeRate * 100
			line.NormalizedStrikeRate = &normalized
		}
		report.Phases = append(report.Phases, line)
	}

	return report
}

func metricsByPhase(deliveries []delivery.Tagged) map[string]Metrics {
	out := make(map[string]Metrics, len(phaseOrder))
	for _, d := range deliveries {
		m := out[d.Phase]
		accumulate(&m, d)
		out[d.Phase] = m
	}
	for phase, m := range out {
		finalize(&m)
		out[phase] = m
	}
	return out
}
