// Package structure provides the code structure providers that feed the
// impact engine its component and dependency topology.
package structure

import (
	"context"
	"sort"
)

// Component is a named unit of the analyzed system together with the names
// of the components it depends on. Components are value-like and read-only
// to the engine.
type Component struct {
	Name         string   `json:"name" yaml:"name"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// Provider supplies the component snapshot for one analysis call.
type Provider interface {
	// ListComponents returns all known components with their declared
	// dependency names. Called once per analysis.
	ListComponents(ctx context.Context) ([]Component, error)
}

// Static is a fixed in-memory provider, used in tests and for piping a
// pre-computed component list through the engine.
type Static struct {
	Components []Component
}

// ListComponents returns the fixed component list.
func (s *Static) ListComponents(ctx context.Context) ([]Component, error) {
	return s.Components, nil
}

// SortComponents orders components by name and each dependency list
// lexically, so providers with unordered sources produce stable snapshots.
func SortComponents(components []Component) {
	sort.Slice(components, func(i, j int) bool {
		return components[i].Name < components[j].Name
	})
	for i := range components {
		sort.Strings(components[i].Dependencies)
	}
}
