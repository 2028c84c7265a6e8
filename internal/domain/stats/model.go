package stats

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("invalid grouping dimension")
	ErrUnknownMetric    = errors.New("unknown metric")
)

// GroupKey is the ordered tuple of dimension values shared by a set of
// deliveries. Computed per query, never persisted.
type GroupKey []string

func (k GroupKey) String() string {
	return strings.Join(k, "|")
}

// Less orders keys by their natural ascending order, the deterministic
// tie-breaker for rows with equal primary metric.
func (k GroupKey) Less(other GroupKey) bool {
	for i := range k {
		if i >= len(other) {
			return false
		}
		if k[i] != other[i] {
			return k[i] < other[i]
		}
	}
	return len(k) < len(other)
}

// Metrics are the per-group aggregates. StrikeRate is runs*100/balls and zero
// when no balls were faced.
type Metrics struct {
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Wickets    int     `json:"wickets"`
	Dismissals int     `json:"dismissals"`
	Dots       int     `json:"dots"`
	Boundaries int     `json:"boundaries"`
	StrikeRate float64 `json:"strike_rate"`
}

// AggregateRow carries metrics for one group key. Rolled-up parent rows live
// in SummaryBlock, never alongside leaf groups.
type AggregateRow struct {
	Key     GroupKey `json:"key"`
	Metrics Metrics  `json:"metrics"`
}

// ChildShare is one leaf group's share of its parent subtotal.
type ChildShare struct {
	Key     GroupKey `json:"key"`
	Percent float64  `json:"percent"`
}

// ParentSummary is the subtotal row for all children sharing a parent prefix,
// plus the percentage breakdown of each child's primary metric.
type ParentSummary struct {
	Key      GroupKey     `json:"key"`
	Subtotal Metrics      `json:"subtotal"`
	Children []ChildShare `json:"children"`
}

// SummaryBlock is only produced when summaries are requested and more than
// one parent-level group exists; percentages over a single group carry no
// information.
type SummaryBlock struct {
	Parents []ParentSummary `json:"parents"`
}

// Options tune one aggregation run. Metric selects the primary metric from
// the registry (empty = strike rate). Limit caps returned rows; a hit cap is
// reported through Truncated, never a silent cut.
type Options struct {
	ShowSummaryRows bool
	MinSampleSize   int
	Metric          string
	Limit           int
}

// Result is the output of one aggregation run.
type Result struct {
	Rows      []AggregateRow
	Summaries *SummaryBlock
	Truncated bool
}
