package mountainproject

import (
	"github.com/golang/geo/s2"
)

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * earthRadiusMiles
}

// WithinMiles keeps the routes no further than miles from lat/lon.
// Routes without coordinates are kept.
func WithinMiles(routes []Route, lat, lon, miles float64) []Route {
	filtered := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.Latitude == 0 && r.Longitude == 0 {
			filtered = append(filtered, r)
			continue
		}
		if DistanceMiles(lat, lon, r.Latitude, r.Longitude) <= miles {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
