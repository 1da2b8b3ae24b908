package mountainproject

import (
	"math"
	"testing"
)

func TestFilterByArea(t *testing.T) {
	routes := []Route{
		{Name: "The Nose", Location: []string{"Yosemite Valley", "El Capitan"}},
		{Name: "Snake Dike", Location: []string{"Yosemite Valley", "Half Dome"}},
		{Name: "El Capitan Gully", Location: []string{"Yosemite Valley", "El Capitan Base"}},
		{Name: "No Location"},
	}

	got := FilterByArea(routes, "El Capitan")
	if len(got) != 1 || got[0].Name != "The Nose" {
		t.Errorf("FilterByArea() = %+v, want only The Nose", got)
	}
}

func TestRouteArea(t *testing.T) {
	if got := (Route{}).Area(); got != "" {
		t.Errorf("Area() = %q, want empty", got)
	}
	r := Route{Location: []string{"California", "El Capitan"}}
	if got := r.Area(); got != "El Capitan" {
		t.Errorf("Area() = %q, want El Capitan", got)
	}
}

func TestDistanceMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 37.732, -119.638, 37.732, -119.638, 0, 0.0001},
		{"one degree of latitude", 0, 0, 1, 0, 69.09, 0.1},
		{"el cap to half dome", 37.732, -119.638, 37.7459, -119.5332, 5.8, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("DistanceMiles() = %.3f, want %.3f±%.3f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestWithinMiles(t *testing.T) {
	routes := []Route{
		{Name: "The Nose", Latitude: 37.7340, Longitude: -119.6372},
		{Name: "Snake Dike", Latitude: 37.7459, Longitude: -119.5332},
		{Name: "Unknown"},
	}

	got := WithinMiles(routes, 37.732, -119.638, 1)
	if len(got) != 2 {
		t.Fatalf("len(WithinMiles) = %d, want 2", len(got))
	}
	if got[0].Name != "The Nose" || got[1].Name != "Unknown" {
		t.Errorf("WithinMiles() = %+v", got)
	}
}
