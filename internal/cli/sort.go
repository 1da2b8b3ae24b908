package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
)

// SortOrder represents the available route orderings
type SortOrder string

const (
	SortByIndex      SortOrder = "index"
	SortByRoute      SortOrder = "route"
	SortByConfidence SortOrder = "confidence"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case SortByIndex, SortByRoute, SortByConfidence:
		return order, nil
	case "":
		return SortByIndex, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'index', 'route' or 'confidence')", s)
	}
}

// sortRoutes returns a sorted copy of routes
func sortRoutes(routes []pipeline.RouteResult, order SortOrder) []pipeline.RouteResult {
	sorted := make([]pipeline.RouteResult, len(routes))
	copy(sorted, routes)

	switch order {
	case SortByRoute:
		sort.SliceStable(sorted, func(i, j int) bool {
			if !strings.EqualFold(sorted[i].Route, sorted[j].Route) {
				return strings.ToLower(sorted[i].Route) < strings.ToLower(sorted[j].Route)
			}
			return sorted[i].Index < sorted[j].Index
		})
	case SortByConfidence:
		// least certain first, so review candidates lead
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Confidence != sorted[j].Confidence {
				return sorted[i].Confidence > sorted[j].Confidence
			}
			return sorted[i].Index < sorted[j].Index
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Index < sorted[j].Index
		})
	}

	return sorted
}
