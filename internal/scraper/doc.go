// Package scraper provides HTTP fetching and HTML parsing for route pages.
//
// The scraper fetches a Mountain Project route page and extracts the raw
// first-ascent attribution from its details table. It looks for the row
// labelled "FA:" and, when no such row exists, falls back to a fixed
// row/column position in the table. Fetches are paced by a rate limiter,
// checked against robots.txt, and cached in memory for the life of the process.
package scraper
