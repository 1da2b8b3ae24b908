// Package pipeline runs one first-ascent survey end to end.
//
// Routes come from a RouteSource, each route page's attribution from an
// AttributionFetcher. Every attribution is split and cleaned, the override
// table is applied once, and the corrected lists are counted into a
// leaderboard. Routes are processed one at a time and the first failure
// aborts the run.
package pipeline
