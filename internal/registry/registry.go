package registry

import (
	"github.com/mpyw/pathcheck/internal/checks"
	"github.com/mpyw/pathcheck/internal/engine"
)

// Factory creates a check for one member.
type Factory func(env checks.Env) engine.Check

// Entry is a registered check.
type Entry struct {
	Name           string
	Doc            string
	DefaultEnabled bool
	New            Factory
}

// Registry holds the known checks in registration order.
type Registry struct {
	entries []Entry
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a check. A later entry with the same name replaces the
// earlier one in place.
func (r *Registry) Register(e Entry) {
	for i := range r.entries {
		if r.entries[i].Name == e.Name {
			r.entries[i] = e
			return
		}
	}
	r.entries = append(r.entries, e)
}

// Entries returns all registered checks.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the names of all registered checks.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Enabled resolves the enabled set: names missing from overrides keep their
// default.
func (r *Registry) Enabled(overrides map[string]bool) map[string]bool {
	enabled := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		on, ok := overrides[e.Name]
		if !ok {
			on = e.DefaultEnabled
		}
		if on {
			enabled[e.Name] = true
		}
	}
	return enabled
}

// Build creates a fresh set of the enabled checks for one member, in
// registration order.
func (r *Registry) Build(env checks.Env, enabled map[string]bool) []engine.Check {
	var out []engine.Check
	for _, e := range r.entries {
		if enabled[e.Name] {
			out = append(out, e.New(env))
		}
	}
	return out
}
