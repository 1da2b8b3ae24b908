package tally

import (
	"reflect"
	"testing"

	"github.com/pfrederiksen/elcap-firsts/internal/override"
)

func TestFrequencies(t *testing.T) {
	freq := Frequencies([][]string{{"A", "B"}, {"A"}})

	if freq["A"] != 2 {
		t.Errorf("freq[A] = %d, want 2", freq["A"])
	}
	if freq["B"] != 1 {
		t.Errorf("freq[B] = %d, want 1", freq["B"])
	}
}

func TestFrequencies_ExactMatch(t *testing.T) {
	freq := Frequencies([][]string{{"Tom Frost", "Tom Frost ", "tom frost"}})
	if len(freq) != 3 {
		t.Errorf("len(freq) = %d, want 3 distinct names", len(freq))
	}
}

func TestCount(t *testing.T) {
	lists := [][]string{
		{"Royal Robbins", "Chuck Pratt", "Tom Frost"},
		{"Royal Robbins", "Yvon Chouinard", "Chuck Pratt", "Tom Frost"},
		{"TM Herbert", "Royal Robbins"},
		{},
	}

	got := Count(lists)
	want := []Entry{
		{Name: "Royal Robbins", Count: 3},
		{Name: "Chuck Pratt", Count: 2},
		{Name: "Tom Frost", Count: 2},
		{Name: "TM Herbert", Count: 1},
		{Name: "Yvon Chouinard", Count: 1},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Count() = %+v, want %+v", got, want)
	}
}

func TestCount_Empty(t *testing.T) {
	if got := Count(nil); len(got) != 0 {
		t.Errorf("Count(nil) = %+v, want empty", got)
	}
}

func TestAggregate(t *testing.T) {
	table := override.New()
	table.ByIndex[1] = []string{"A"}
	table.ByIndex[4] = []string{"Nobody"}

	lists := [][]string{{"A", "B"}, {"Broken 1958"}}

	got, unused := Aggregate(lists, nil, table)
	want := []Entry{{Name: "A", Count: 2}, {Name: "B", Count: 1}}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(unused, []int{4}) {
		t.Errorf("unused = %v, want [4]", unused)
	}
	if lists[1][0] != "Broken 1958" {
		t.Error("Aggregate modified its input")
	}
}

func TestTop(t *testing.T) {
	entries := []Entry{{"A", 3}, {"B", 2}, {"C", 1}}

	tests := []struct {
		n    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{2, 2},
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		if got := Top(entries, tt.n); len(got) != tt.want {
			t.Errorf("Top(%d) len = %d, want %d", tt.n, len(got), tt.want)
		}
	}
}

func TestAtLeast(t *testing.T) {
	entries := []Entry{{"A", 3}, {"B", 2}, {"C", 1}, {"D", 1}}

	if got := AtLeast(entries, 2); len(got) != 2 {
		t.Errorf("AtLeast(2) = %+v, want 2 entries", got)
	}
	if got := AtLeast(entries, 1); len(got) != 4 {
		t.Errorf("AtLeast(1) = %+v, want 4 entries", got)
	}
	if got := AtLeast(entries, 5); len(got) != 0 {
		t.Errorf("AtLeast(5) = %+v, want none", got)
	}
}

func TestTotal(t *testing.T) {
	if got := Total([]Entry{{"A", 3}, {"B", 2}}); got != 5 {
		t.Errorf("Total() = %d, want 5", got)
	}
}
