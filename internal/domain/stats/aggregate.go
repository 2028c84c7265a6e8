package stats

import (
	"sort"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
)

// Aggregate computes metrics for every combination of the requested dimension
// values across the tagged delivery set. Rows are ordered by descending
// primary metric, ties broken by ascending group key. An empty input yields
// empty rows, not an error.
func Aggregate(deliveries []delivery.Tagged, groupBy []string, opts Options) (Result, error) {
	dims, err := resolveDimensions(groupBy)
	if err != nil {
		return Result{}, err
	}
	primary, err := metricByName(opts.Metric)
	if err != nil {
		return Result{}, err
	}

	groups := make(map[string]*AggregateRow)
	order := make([]string, 0)
	for _, d := range deliveries {
		key := make(GroupKey, len(dims))
		for i, fn := range dims {
			key[i] = fn(d)
		}

		id := key.String()
		row, ok := groups[id]
		if !ok {
			row = &AggregateRow{Key: key}
			groups[id] = row
			order = append(order, id)
		}
		accumulate(&row.Metrics, d)
	}

	rows := make([]AggregateRow, 0, len(order))
	for _, id := range order {
		row := groups[id]
		finalize(&row.Metrics)
		if opts.MinSampleSize > 0 && row.Metrics.Balls < opts.MinSampleSize {
			continue
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := primary(rows[i].Metrics), primary(rows[j].Metrics)
		if vi != vj {
			return vi > vj
		}
		return rows[i].Key.Less(rows[j].Key)
	})

	result := Result{Rows: rows}
	if opts.ShowSummaryRows {
		result.Summaries = summarize(rows, primary)
	}
	if opts.Limit > 0 && len(result.Rows) > opts.Limit {
		result.Rows = result.Rows[:opts.Limit]
		result.Truncated = true
	}

	return result, nil
}

func accumulate(m *Metrics, d delivery.Tagged) {
	m.Runs += d.Runs
	m.Balls++
	if d.Wicket {
		m.Wickets++
		m.Dismissals++
	}
	if d.Runs == 0 && d.Extras == 0 {
		m.Dots++
	}
	if d.Runs == 4 || d.Runs == 6 {
		m.Boundaries++
	}
}

func finalize(m *Metrics) {
	if m.Balls > 0 {
		m.StrikeRate = float64(m.Runs) * 100 / float64(m.Balls)
	}
}

// summarize builds parent subtotals and percentage-of-parent breakdowns.
// It returns nil when fewer than two distinct parent-level groups exist:
// percentages over a single group are meaningless.
func summarize(rows []AggregateRow, primary MetricFunc) *SummaryBlock {
	if len(rows) == 0 {
		return nil
	}
	keyLen := len(rows[0].Key)
	if keyLen < 2 {
		return nil
	}

	// Child primary values are in hand while grouping, so shares need no
	// second pass over the rows.
	type parentAccum struct {
		summary ParentSummary
		values  []float64
		total   float64
	}
	parents := make(map[string]*parentAccum)
	parentOrder := make([]string, 0)
	for _, row := range rows {
		prefix := row.Key[:keyLen-1]
		id := prefix.String()
		parent, ok := parents[id]
		if !ok {
			parent = &parentAccum{summary: ParentSummary{Key: append(GroupKey(nil), prefix...)}}
			parents[id] = parent
			parentOrder = append(parentOrder, id)
		}

		parent.summary.Subtotal.Runs += row.Metrics.Runs
		parent.summary.Subtotal.Balls += row.Metrics.Balls
		parent.summary.Subtotal.Wickets += row.Metrics.Wickets
		parent.summary.Subtotal.Dismissals += row.Metrics.Dismissals
		parent.summary.Subtotal.Dots += row.Metrics.Dots
		parent.summary.Subtotal.Boundaries += row.Metrics.Boundaries
		parent.summary.Children = append(parent.summary.Children, ChildShare{Key: row.Key})

		value := primary(row.Metrics)
		parent.values = append(parent.values, value)
		parent.total += value
	}
	if len(parentOrder) < 2 {
		return nil
	}

	block := &SummaryBlock{Parents: make([]ParentSummary, 0, len(parentOrder))}
	for _, id := range parentOrder {
		parent := parents[id]
		finalize(&parent.summary.Subtotal)

		for i := range parent.summary.Children {
			// Zero-total parent yields 0% children instead of a division fault.
			if parent.total != 0 {
				parent.summary.Children[i].Percent = parent.values[i] * 100 / parent.total
			}
		}
		block.Parents = append(block.Parents, parent.summary)
	}

	sort.SliceStable(block.Parents, func(i, j int) bool {
		return block.Parents[i].Key.Less(block.Parents[j].Key)
	})
	return block
}
