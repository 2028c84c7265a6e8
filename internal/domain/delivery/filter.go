package delivery

import (
	"fmt"
	"time"
)

// FilterSpec narrows the delivery set a query runs over. Zero leagues means
// all leagues. TeamID is a canonical id and keeps only deliveries where the
// team batted. MinSampleSize drops result groups below N balls after
// aggregation, not individual deliveries.
type FilterSpec struct {
	StartDate            time.Time
	EndDate              time.Time
	Leagues              []string
	TeamID               string
	MinSampleSize        int
	IncludeInternational bool
}

func (f FilterSpec) Validate() error {
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return fmt.Errorf("filter end date %s precedes start date %s",
			f.EndDate.Format("2006-01-02"), f.StartDate.Format("2006-01-02"))
	}
	if f.MinSampleSize < 0 {
		return fmt.Errorf("minimum sample size cannot be negative")
	}
	return nil
}

// Describe renders the applied filters for report context strings.
func (f FilterSpec) Describe() string {
	out := "all deliveries"
	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		from := "beginning"
		to := "present"
		if !f.StartDate.IsZero() {
			from = f.StartDate.Format("2006-01-02")
		}
		if !f.EndDate.IsZero() {
			to = f.EndDate.Format("2006-01-02")
		}
		out += fmt.Sprintf(" from %s to %s", from, to)
	}
	if len(f.Leagues) > 0 {
		out += fmt.Sprintf(", leagues %v", f.Leagues)
	}
	if !f.IncludeInternational {
		out += ", internationals excluded"
	}
	if f.MinSampleSize > 0 {
		out += fmt.Sprintf(", minimum %d balls per group", f.MinSampleSize)
	}
	return out
}

// FilteredSet is the dimension-tagged delivery set a filter produced,
// together with audit counters for rows excluded during identity resolution.
// Exclusions are surfaced, never silent.
type FilteredSet struct {
	Deliveries           []Tagged
	MatchCount           int
	ExcludedUnknownTeams int
}
