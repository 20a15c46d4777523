// Package catalog provides the game-data value types served by the API:
// resources, the modules crafted from them, and planets.
// Every record is identified by its name, which is unique within its collection.
package catalog

import (
	"errors"
	"strings"
)

// Collection names, used as keys in the debug dump and as metric labels.
const (
	CollectionModules   = "modules"
	CollectionResources = "resources"
	CollectionPlanets   = "planets"
)

var (
	// ErrNotFound is returned when a named record is absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a create targets a name that already exists.
	ErrConflict = errors.New("already exists")

	// ErrInvalid is returned when a record is missing a required field.
	ErrInvalid = errors.New("invalid record")
)

// Resource is a raw or refined material.
type Resource struct {
	Name        string   `json:"name"`
	Found       []string `json:"found"`
	CraftedIn   []string `json:"crafted_in,omitempty"`
	RefinedWith []string `json:"refined_with,omitempty"`
	Rate        []string `json:"rate,omitempty"` // "planet:rate" pairs for the Atmospheric Condenser
}

// Module is a printable item and the resources it costs.
type Module struct {
	Name         string   `json:"name"`
	ResourceCost []string `json:"resource_cost"`
	Printer      string   `json:"printer"`
}

// Planet is declared for completeness; no operation populates it yet.
type Planet struct {
	Name string `json:"name"`
}

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Modules   []Module   `json:"modules"`
	Resources []Resource `json:"resources"`
	Planets   []Planet   `json:"planets"`
}

// Validate reports whether the resource can be stored.
func (r Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Join(ErrInvalid, errors.New("resource name is required"))
	}
	return nil
}

// Validate reports whether the module can be stored.
func (m Module) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.Join(ErrInvalid, errors.New("module name is required"))
	}
	return nil
}

// ParseList splits a comma-separated value into trimmed items.
// An empty or blank input yields an empty, non-nil list.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate stored slices.
func (r Resource) Clone() Resource {
	r.Found = cloneList(r.Found)
	r.CraftedIn = cloneList(r.CraftedIn)
	r.RefinedWith = cloneList(r.RefinedWith)
	r.Rate = cloneList(r.Rate)
	return r
}

// Clone returns a deep copy so callers cannot mutate stored slices.
func (m Module) Clone() Module {
	m.ResourceCost = cloneList(m.ResourceCost)
	return m
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
