package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/elcap-firsts/internal/ascent"
	"github.com/pfrederiksen/elcap-firsts/internal/logger"
	"github.com/pfrederiksen/elcap-firsts/internal/mountainproject"
	"github.com/pfrederiksen/elcap-firsts/internal/override"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

// RouteSource lists the routes to survey
type RouteSource interface {
	Routes(ctx context.Context) ([]mountainproject.Route, error)
}

// AttributionFetcher returns the raw first-ascent text of a route page
type AttributionFetcher interface {
	FetchAttribution(ctx context.Context, url string) (string, error)
}

// Pipeline wires a route source and a page fetcher to the extraction steps
type Pipeline struct {
	Source    RouteSource
	Fetcher   AttributionFetcher
	Overrides override.Table
	Area      string
	Log       *logger.Logger
	Metrics   *logger.Metrics
	Now       func() time.Time
}

// New creates a Pipeline that logs to the default logger
func New(source RouteSource, fetcher AttributionFetcher, overrides override.Table) *Pipeline {
	return &Pipeline{
		Source:    source,
		Fetcher:   fetcher,
		Overrides: overrides,
		Log:       logger.Default(),
		Metrics:   logger.NewMetrics(),
		Now:       time.Now,
	}
}

// Run fetches every route, extracts its first ascensionists and builds the report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := p.now()

	routes, err := p.Source.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching routes: %w", err)
	}
	p.metrics().SetGauge("routes.total", float64(len(routes)))
	p.log().Info("Fetched route list", logger.Fields{
		"routes": len(routes),
		"area":   p.Area,
	})

	results := make([]RouteResult, 0, len(routes))
	for i, route := range routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fetchStart := time.Now()
		raw, err := p.Fetcher.FetchAttribution(ctx, route.URL)
		if err != nil {
			p.metrics().IncrCounter("routes.failed")
			return nil, fmt.Errorf("route %d (%s): %w", i, route.Name, err)
		}
		p.metrics().RecordTiming("scraper.fetch", time.Since(fetchStart))
		p.metrics().IncrCounter("routes.fetched")

		result := Analyze(i, route, raw)
		p.log().Debug("Extracted first ascent", logger.Fields{
			"index":      i,
			"route":      route.Name,
			"raw":        raw,
			"names":      result.Cleaned,
			"confidence": result.Confidence.String(),
		})
		results = append(results, result)
	}

	report := Build(results, p.Overrides)
	report.GeneratedAt = p.now().UTC()
	report.Area = p.Area

	p.metrics().AddCounter("overrides.applied", int64(report.OverrideCount()))
	p.metrics().SetGauge("climbers.total", float64(len(report.Leaderboard)))
	p.metrics().RecordTiming("pipeline.run", p.now().Sub(start))
	snapshot := p.metrics().Snapshot()
	report.Metrics = &snapshot

	for _, index := range report.UnusedOverrides {
		p.log().Warn("Override index matched no route", logger.Fields{"index": index})
	}
	if len(report.NeedsReview) > 0 {
		p.log().Warn("Some attributions need review", logger.Fields{
			"count":   len(report.NeedsReview),
			"indexes": report.NeedsReview,
		})
	}
	p.log().Info("Survey complete", logger.Fields{
		"routes":   len(report.Routes),
		"climbers": len(report.Leaderboard),
	})

	return report, nil
}

// Analyze splits and cleans the attribution of one route.
func Analyze(index int, route mountainproject.Route, raw string) RouteResult {
	tokens := ascent.Split(raw)
	cleaned := ascent.CleanWithConfidence(tokens)
	return RouteResult{
		Index:      index,
		Route:      route.Name,
		URL:        route.URL,
		Raw:        raw,
		Tokens:     tokens,
		Cleaned:    cleaned.Names,
		Dropped:    cleaned.Dropped,
		Confidence: cleaned.Confidence,
		Names:      cleaned.Names,
	}
}

// Build applies overrides to the analyzed routes and counts the result.
// results must be ordered by index. The inputs are not modified.
func Build(results []RouteResult, overrides override.Table) *Report {
	lists := make([][]string, len(results))
	routes := make([]string, len(results))
	for i, r := range results {
		lists[i] = r.Cleaned
		routes[i] = r.Route
	}

	corrected, unused := overrides.Apply(lists, routes)

	report := &Report{
		Routes:          make([]RouteResult, len(results)),
		Leaderboard:     tally.Count(corrected),
		NeedsReview:     []int{},
		UnusedOverrides: unused,
	}
	for i, r := range results {
		_, overridden := overrides.Lookup(i, r.Route)
		r.Names = corrected[i]
		r.Overridden = overridden
		report.Routes[i] = r

		if !overridden && r.Confidence.NeedsReview() {
			report.NeedsReview = append(report.NeedsReview, i)
		}
	}

	return report
}

func (p *Pipeline) log() *logger.Logger {
	if p.Log == nil {
		return logger.Default()
	}
	return p.Log
}

func (p *Pipeline) metrics() *logger.Metrics {
	if p.Metrics == nil {
		p.Metrics = logger.NewMetrics()
	}
	return p.Metrics
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
