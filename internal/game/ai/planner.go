package ai

import "fmt"

// ScriptCaller evaluates preconditions that are not fact tests.
type ScriptCaller interface {
	// CallPredicate calls the named predicate with the planning facts.
	CallPredicate(name string, facts map[string]int) (bool, error)
}

// PlannedAction is one primitive action produced by the planner.
type PlannedAction struct {
	Operator string
	Action   string
	// Target is a combatant ID; empty for untargeted actions.
	Target string
}

// maxSteps bounds task expansion so a recursive domain cannot loop forever.
const maxSteps = 32

// Planner evaluates an HTN domain and produces an ordered action plan for
// the acting character's turn.
//
// Invariant: domain is non-nil.
type Planner struct {
	domain *Domain
	caller ScriptCaller
}

// NewPlanner constructs a Planner. caller may be nil, in which case
// predicate preconditions never hold.
//
// Precondition: domain must not be nil.
func NewPlanner(domain *Domain, caller ScriptCaller) *Planner {
	if domain == nil {
		panic("ai.NewPlanner: domain must not be nil")
	}
	return &Planner{domain: domain, caller: caller}
}

// Domain returns the planner's domain.
func (p *Planner) Domain() *Domain { return p.domain }

// Plan decomposes RootTask against state.
//
// Precondition: state.Self must not be nil.
// Postcondition: returns a non-nil slice (may be empty). Predicate failures
// are treated as precondition-false.
func (p *Planner) Plan(state *WorldState) ([]PlannedAction, error) {
	if state == nil || state.Self == nil {
		return nil, fmt.Errorf("ai: Plan: state and state.Self must not be nil")
	}

	queue := []string{RootTask}
	result := []PlannedAction{}

	for steps := 0; len(queue) > 0 && steps < maxSteps; steps++ {
		current := queue[0]
		queue = queue[1:]

		if op, ok := p.domain.OperatorByID(current); ok {
			result = append(result, PlannedAction{
				Operator: op.ID,
				Action:   op.Action,
				Target:   state.ResolveTarget(op.Target),
			})
			continue
		}

		method := p.findApplicableMethod(current, state)
		if method == nil {
			continue
		}
		next := make([]string, 0, len(method.Subtasks)+len(queue))
		next = append(next, method.Subtasks...)
		queue = append(next, queue...)
	}
	return result, nil
}

// findApplicableMethod returns the first Method for taskID whose precondition
// holds, or nil if none applies.
func (p *Planner) findApplicableMethod(taskID string, state *WorldState) *Method {
	for _, m := range p.domain.MethodsForTask(taskID) {
		if p.holds(m.Precondition, state) {
			return m
		}
	}
	return nil
}

func (p *Planner) holds(precondition string, state *WorldState) bool {
	t, err := parseTest(precondition)
	if err != nil {
		return false
	}
	if t.fact == "" {
		return true
	}
	if v, ok := state.Facts[t.fact]; ok {
		return t.eval(v)
	}
	if t.op != "" || p.caller == nil {
		return false
	}
	ok, err := p.caller.CallPredicate(t.fact, state.Facts)
	return err == nil && ok
}
