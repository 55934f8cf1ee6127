package ai

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateTactics is returned when two domains claim the same tactic name.
var ErrDuplicateTactics = errors.New("tactics already registered")

// Registry maps tactic names, the IDs of their domains, to planners. Rosters
// refer to these names in a member's tactics field.
type Registry struct {
	byTactic map[string]*Planner
}

func NewRegistry() *Registry {
	return &Registry{byTactic: make(map[string]*Planner)}
}

// Register builds a planner for domain under the tactic name domain.ID.
// caller resolves Lua predicates and may be nil.
func (r *Registry) Register(domain *Domain, caller ScriptCaller) error {
	if _, taken := r.byTactic[domain.ID]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateTactics, domain.ID)
	}
	r.byTactic[domain.ID] = NewPlanner(domain, caller)
	return nil
}

// PlannerFor looks up the planner for a tactic name.
func (r *Registry) PlannerFor(tactic string) (*Planner, bool) {
	p, ok := r.byTactic[tactic]
	return p, ok
}

// Names returns the registered tactic names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byTactic))
	for n := range r.byTactic {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
