package cli

import (
	"testing"

	"github.com/pfrederiksen/elcap-firsts/internal/ascent"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"index", SortByIndex, false},
		{"Route", SortByRoute, false},
		{" confidence ", SortByConfidence, false},
		{"", SortByIndex, false},
		{"date", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSortRoutes(t *testing.T) {
	routes := []pipeline.RouteResult{
		{Index: 0, Route: "The Nose", Confidence: ascent.Trimmed},
		{Index: 1, Route: "zodiac", Confidence: ascent.Guessed},
		{Index: 2, Route: "Lurking Fear", Confidence: ascent.Certain},
		{Index: 3, Route: "Aquarian Wall", Confidence: ascent.Guessed},
	}

	tests := []struct {
		name  string
		order SortOrder
		want  []int
	}{
		{"by index", SortByIndex, []int{0, 1, 2, 3}},
		{"by route ignores case", SortByRoute, []int{3, 2, 0, 1}},
		{"least certain first", SortByConfidence, []int{1, 3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortRoutes(routes, tt.order)
			for i, want := range tt.want {
				if got[i].Index != want {
					t.Errorf("position %d: index %d, want %d", i, got[i].Index, want)
				}
			}
		})
	}

	if routes[1].Index != 1 {
		t.Error("sortRoutes modified its input")
	}
}
