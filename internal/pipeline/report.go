package pipeline

import (
	"time"

	"github.com/pfrederiksen/elcap-firsts/internal/ascent"
	"github.com/pfrederiksen/elcap-firsts/internal/logger"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

// RouteResult is the extraction outcome for one route
type RouteResult struct {
	Index      int               `json:"index" yaml:"index"`
	Route      string            `json:"route" yaml:"route"`
	URL        string            `json:"url,omitempty" yaml:"url,omitempty"`
	Raw        string            `json:"raw" yaml:"raw"`
	Tokens     []string          `json:"tokens" yaml:"tokens"`
	Cleaned    []string          `json:"cleaned" yaml:"cleaned"`
	Dropped    []string          `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Confidence ascent.Confidence `json:"confidence" yaml:"confidence"`
	Names      []string          `json:"names" yaml:"names"`
	Overridden bool              `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// Report is the result of one survey
type Report struct {
	GeneratedAt     time.Time               `json:"generated_at" yaml:"generated_at"`
	Area            string                  `json:"area,omitempty" yaml:"area,omitempty"`
	Routes          []RouteResult           `json:"routes" yaml:"routes"`
	Leaderboard     []tally.Entry           `json:"leaderboard" yaml:"leaderboard"`
	NeedsReview     []int                   `json:"needs_review" yaml:"needs_review"`
	UnusedOverrides []int                   `json:"unused_overrides" yaml:"unused_overrides"`
	Metrics         *logger.MetricsSnapshot `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// OverrideCount returns how many routes took their names from the override table
func (r *Report) OverrideCount() int {
	n := 0
	for _, route := range r.Routes {
		if route.Overridden {
			n++
		}
	}
	return n
}

// Lists returns the final name list of every route, in index order.
func (r *Report) Lists() [][]string {
	lists := make([][]string, len(r.Routes))
	for i, route := range r.Routes {
		lists[i] = route.Names
	}
	return lists
}

// Credits returns the total number of first-ascent credits on the leaderboard
func (r *Report) Credits() int {
	return tally.Total(r.Leaderboard)
}
