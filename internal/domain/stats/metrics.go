package stats

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MetricFunc is one named, versioned metric computation: a pure function of a
// group's aggregates. Variants are swapped by explicit registration and
// selection, never by patching behavior at runtime.
type MetricFunc func(Metrics) float64

const DefaultMetric = "strike_rate"

var (
	metricMu    sync.RWMutex
	metricFuncs = map[string]MetricFunc{
		"strike_rate": func(m Metrics) float64 { return m.StrikeRate },
		"runs":        func(m Metrics) float64 { return float64(m.Runs) },
		"balls":       func(m Metrics) float64 { return float64(m.Balls) },
		"wickets":     func(m Metrics) float64 { return float64(m.Wickets) },
		"average": func(m Metrics) float64 {
			if m.Dismissals == 0 {
				return 0
			}
			return float64(m.Runs) / float64(m.Dismissals)
		},
		"boundary_rate": func(m Metrics) float64 {
			if m.Balls == 0 {
				return 0
			}
			return float64(m.Boundaries) * 100 / float64(m.Balls)
		},
		"dot_rate": func(m Metrics) float64 {
			if m.Balls == 0 {
				return 0
			}
			return float64(m.Dots) * 100 / float64(m.Balls)
		},
	}
)

// RegisterMetric adds a named metric variant. Overwriting an existing name is
// rejected so deployed variants stay addressable.
func RegisterMetric(name string, fn MetricFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("metric name and function are required")
	}

	metricMu.Lock()
	defer metricMu.Unlock()
	if _, exists := metricFuncs[name]; exists {
		return fmt.Errorf("metric %q is already registered", name)
	}
	metricFuncs[name] = fn
	return nil
}

func metricByName(name string) (MetricFunc, error) {
	if name == "" {
		name = DefaultMetric
	}

	metricMu.RLock()
	fn, ok := metricFuncs[name]
	metricMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownMetric, name, strings.Join(MetricNames(), ", "))
	}
	return fn, nil
}

// MetricNames lists registered metric variants in stable order.
func MetricNames() []string {
	metricMu.RLock()
	defer metricMu.RUnlock()

	out := make([]string, 0, len(metricFuncs))
	for name := range metricFuncs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
