package mountainproject

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Route is a route record as returned by get-routes-for-lat-lon.
type Route struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Rating    string   `json:"rating"`
	Stars     float64  `json:"stars"`
	StarVotes int      `json:"starVotes"`
	Pitches   Pitches  `json:"pitches"`
	Location  []string `json:"location"`
	URL       string   `json:"url"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
}

// InArea reports whether area is one of the route's location path elements.
func (r Route) InArea(area string) bool {
	for _, loc := range r.Location {
		if loc == area {
			return true
		}
	}
	return false
}

// Area returns the most specific element of the location path.
func (r Route) Area() string {
	if len(r.Location) == 0 {
		return ""
	}
	return r.Location[len(r.Location)-1]
}

// Pitches is a pitch count. The API sends either a number or an empty string.
type Pitches int

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pitches) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Pitches(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Pitches(n)
	return nil
}

// FilterByArea keeps the routes whose location path contains area.
func FilterByArea(routes []Route, area string) []Route {
	filtered := make([]Route, 0, len(routes))
	for _, r := range routes {
		if r.InArea(area) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
