package override

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed elcapitan.yaml
var elCapitanYAML []byte

// Table maps routes to corrected first-ascent name lists.
// An index entry wins over a route-name entry for the same route.
type Table struct {
	ByIndex map[int][]string    `yaml:"by_index,omitempty" json:"by_index,omitempty"`
	ByRoute map[string][]string `yaml:"by_route,omitempty" json:"by_route,omitempty"`
}

// New returns an empty table.
func New() Table {
	return Table{
		ByIndex: make(map[int][]string),
		ByRoute: make(map[string][]string),
	}
}

// Parse decodes a YAML override table.
func Parse(data []byte) (Table, error) {
	t := New()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing overrides: %w", err)
	}
	if t.ByIndex == nil {
		t.ByIndex = make(map[int][]string)
	}
	if t.ByRoute == nil {
		t.ByRoute = make(map[string][]string)
	}

	for index := range t.ByIndex {
		if index < 0 {
			return Table{}, fmt.Errorf("invalid override index: %d", index)
		}
	}

	return t, nil
}

// LoadFile reads a YAML override table from disk.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading overrides: %w", err)
	}
	return Parse(data)
}

// ElCapitan returns the built-in corrections for the El Capitan route list.
func ElCapitan() Table {
	t, err := Parse(elCapitanYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded El Capitan overrides: %v", err))
	}
	return t
}

// Len returns the number of entries in the table.
func (t Table) Len() int {
	return len(t.ByIndex) + len(t.ByRoute)
}

// Lookup returns the override for the route at index with the given name.
func (t Table) Lookup(index int, route string) ([]string, bool) {
	if names, ok := t.ByIndex[index]; ok {
		return clone(names), true
	}
	if route != "" {
		if names, ok := t.ByRoute[route]; ok {
			return clone(names), true
		}
	}
	return nil, false
}

// Apply returns a copy of lists with every overridden entry replaced.
// routes holds the route name for each list and may be nil. The second
// result lists the index keys that matched no entry, in ascending order.
func (t Table) Apply(lists [][]string, routes []string) ([][]string, []int) {
	out := make([][]string, len(lists))
	for i, names := range lists {
		route := ""
		if i < len(routes) {
			route = routes[i]
		}
		if replacement, ok := t.Lookup(i, route); ok {
			out[i] = replacement
			continue
		}
		out[i] = clone(names)
	}

	return out, t.UnusedIndexes(len(lists))
}

// UnusedIndexes returns the index keys that fall outside a list of size n.
func (t Table) UnusedIndexes(n int) []int {
	unused := make([]int, 0)
	for index := range t.ByIndex {
		if index >= n {
			unused = append(unused, index)
		}
	}
	sort.Ints(unused)
	return unused
}

// Merge returns a table holding the entries of t and other; other wins on conflicts.
func (t Table) Merge(other Table) Table {
	merged := New()
	for _, src := range []Table{t, other} {
		for index, names := range src.ByIndex {
			merged.ByIndex[index] = clone(names)
		}
		for route, names := range src.ByRoute {
			merged.ByRoute[route] = clone(names)
		}
	}
	return merged
}

// Marshal encodes the table as YAML.
func (t Table) Marshal() ([]byte, error) {
	return yaml.Marshal(t)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
