package mountainproject

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRoutes = `{
  "routes": [
    {"id": 105924807, "name": "The Nose", "type": "Trad, Aid", "rating": "5.9 C2",
     "stars": 4.8, "starVotes": 612, "pitches": 31,
     "location": ["California", "Yosemite National Park", "Yosemite Valley", "Valley North Side", "El Capitan"],
     "url": "https://www.mountainproject.com/route/105924807/the-nose",
     "longitude": -119.6372, "latitude": 37.7340},
    {"id": 105862930, "name": "Snake Dike", "type": "Trad", "rating": "5.7 R",
     "stars": 3.9, "starVotes": 700, "pitches": "",
     "location": ["California", "Yosemite National Park", "Yosemite Valley", "Half Dome"],
     "url": "https://www.mountainproject.com/route/105862930/snake-dike",
     "longitude": -119.5332, "latitude": 37.7459},
    {"id": 105924808, "name": "Salathe Wall", "type": "Trad, Aid", "rating": "5.9 C2",
     "stars": 4.6, "starVotes": 200, "pitches": "35",
     "location": ["California", "Yosemite National Park", "Yosemite Valley", "Valley North Side", "El Capitan"],
     "url": "https://www.mountainproject.com/route/105924808/salathe-wall",
     "longitude": -119.6390, "latitude": 37.7330}
  ],
  "success": 1
}`

func TestRoutesForLatLon(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-routes-for-lat-lon" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, sampleRoutes)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("secret", server.URL)
	routes, err := client.RoutesForLatLon(context.Background(), Query{
		Lat:         37.732,
		Lon:         -119.638,
		MaxDistance: 1,
		MaxResults:  500,
	})
	if err != nil {
		t.Fatalf("RoutesForLatLon() error = %v", err)
	}

	if len(routes) != 3 {
		t.Fatalf("len(routes) = %d, want 3", len(routes))
	}

	wantQuery := map[string]string{
		"lat":         "37.732",
		"lon":         "-119.638",
		"maxDistance": "1",
		"maxResults":  "500",
		"key":         "secret",
	}
	for k, v := range wantQuery {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	nose := routes[0]
	if nose.Name != "The Nose" || nose.Pitches != 31 || nose.Area() != "El Capitan" {
		t.Errorf("unexpected first route: %+v", nose)
	}
	if routes[1].Pitches != 0 {
		t.Errorf("empty pitches = %d, want 0", routes[1].Pitches)
	}
	if routes[2].Pitches != 35 {
		t.Errorf("string pitches = %d, want 35", routes[2].Pitches)
	}
}

func TestRoutesForLatLon_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "", "API returned status 500"},
		{"bad json", http.StatusOK, "{not json", ""},
		{"api failure", http.StatusOK, `{"success": 0, "message": "Invalid key"}`, "API request failed: Invalid key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClientWithBaseURL("secret", server.URL)
			_, err := client.RoutesForLatLon(context.Background(), Query{Lat: 1, Lon: 1})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != "" && err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRoutesForLatLon_MissingKey(t *testing.T) {
	_, err := NewClient("").RoutesForLatLon(context.Background(), Query{})
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("error = %v, want ErrMissingKey", err)
	}
}

func TestAreaSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, sampleRoutes)
	}))
	defer server.Close()

	src := &AreaSource{
		Client: NewClientWithBaseURL("secret", server.URL),
		Query:  Query{Lat: 37.732, Lon: -119.638, MaxDistance: 1, MaxResults: 500},
		Area:   "El Capitan",
	}

	routes, err := src.Routes(context.Background())
	if err != nil {
		t.Fatalf("Routes() error = %v", err)
	}

	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}
	for _, r := range routes {
		if !r.InArea("El Capitan") {
			t.Errorf("route %q not in El Capitan", r.Name)
		}
	}
}
