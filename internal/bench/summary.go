package bench

import (
	"sort"
	"time"

	"github.com/san-kum/gridwalk/internal/search"
)

// Summary aggregates an ensemble's trials.
type Summary struct {
	Runs        int
	Found       int
	MeanVisited float64
	MeanPath    float64 // over runs that found a path
	MeanElapsed time.Duration
	Metrics     map[string]float64 // mean per metric
}

// FoundRate is the share of runs that reached the end.
func (s Summary) FoundRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Found) / float64(s.Runs)
}

// MetricNames returns the summarised metric names, sorted.
func (s Summary) MetricNames() []string {
	names := make([]string, 0, len(s.Metrics))
	for name := range s.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Summarize(trials []Trial) Summary {
	s := Summary{Runs: len(trials), Metrics: make(map[string]float64)}
	if len(trials) == 0 {
		return s
	}

	var visited, path int
	var elapsed time.Duration
	for _, t := range trials {
		visited += t.Visited
		elapsed += t.Elapsed
		if t.Outcome == search.PathFound {
			s.Found++
			path += t.PathLength
		}
		for name, v := range t.Metrics {
			s.Metrics[name] += v
		}
	}

	n := float64(len(trials))
	s.MeanVisited = float64(visited) / n
	s.MeanElapsed = elapsed / time.Duration(len(trials))
	if s.Found > 0 {
		s.MeanPath = float64(path) / float64(s.Found)
	}
	for name := range s.Metrics {
		s.Metrics[name] /= n
	}
	return s
}
