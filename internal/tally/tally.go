// Package tally counts first-ascent credits per climber.
package tally

import (
	"sort"

	"github.com/pfrederiksen/elcap-firsts/internal/override"
)

// Entry is one climber and the number of first ascents credited to them.
type Entry struct {
	Name  string `json:"name" yaml:"name" parquet:"name"`
	Count int    `json:"count" yaml:"count" parquet:"count"`
}

// Frequency maps a climber name to a first-ascent count.
// Names match exactly: no case folding or whitespace normalization.
type Frequency map[string]int

// Frequencies flattens lists and counts every name.
func Frequencies(lists [][]string) Frequency {
	freq := make(Frequency)
	for _, names := range lists {
		for _, name := range names {
			freq[name]++
		}
	}
	return freq
}

// Entries returns the frequency as a leaderboard, highest count first.
// Equal counts are ordered by name.
func (f Frequency) Entries() []Entry {
	entries := make([]Entry, 0, len(f))
	for name, count := range f {
		entries = append(entries, Entry{Name: name, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

// Count flattens lists and returns the leaderboard.
func Count(lists [][]string) []Entry {
	return Frequencies(lists).Entries()
}

// Aggregate applies the override table to the cleaned lists exactly once and
// counts the result. routes names each list for route-keyed overrides and may
// be nil. The override index keys that matched no list are returned as well.
func Aggregate(lists [][]string, routes []string, overrides override.Table) ([]Entry, []int) {
	corrected, unused := overrides.Apply(lists, routes)
	return Count(corrected), unused
}

// Top returns at most n leading entries. n <= 0 returns all of them.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// AtLeast returns the leading entries whose count is at least min.
// entries must already be in leaderboard order.
func AtLeast(entries []Entry, min int) []Entry {
	for i, e := range entries {
		if e.Count < min {
			return entries[:i]
		}
	}
	return entries
}

// Total returns the sum of all counts.
func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}
