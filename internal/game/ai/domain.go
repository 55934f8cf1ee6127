// Package ai implements the Hierarchical Task Network (HTN) planner that
// picks combat actions for computer-controlled characters.
//
// HTN planning decomposes abstract tasks into primitive operators via ordered
// methods. Method preconditions compare facts about the encounter or call a
// Lua predicate; operators map to catalog action IDs.
package ai

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RootTask is the task every plan starts from.
const RootTask = "behave"

// ActionPass ends the turn without acting.
const ActionPass = "pass"

// Target tokens understood by WorldState.ResolveTarget.
const (
	TargetNone           = ""
	TargetSelf           = "self"
	TargetNearestEnemy   = "nearest_enemy"
	TargetWeakestEnemy   = "weakest_enemy"
	TargetWeakestAlly    = "weakest_ally"
	TargetStrongestEnemy = "strongest_enemy"
)

// Task is an abstract goal that can be decomposed by methods.
type Task struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

// Method decomposes a task into an ordered list of subtasks or operator IDs.
//
// Precondition is either a fact test ("hp_pct < 40", "can_cast_firebolt")
// or the name of a Lua predicate; empty means always applicable.
type Method struct {
	TaskID       string   `yaml:"task"`
	ID           string   `yaml:"id"`
	Precondition string   `yaml:"precondition"`
	Subtasks     []string `yaml:"subtasks"`
}

// Operator is a primitive step naming a catalog action and a target token.
type Operator struct {
	ID     string `yaml:"id"`
	Action string `yaml:"action"`
	Target string `yaml:"target"`
}

// Domain holds one HTN tactics domain.
//
// Invariant: all Task, Method, and Operator IDs are unique within their slice.
type Domain struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Tasks       []*Task     `yaml:"tasks"`
	Methods     []*Method   `yaml:"methods"`
	Operators   []*Operator `yaml:"operators"`
}

// Validate checks required fields, uniqueness, cross references and the
// syntax of fact-test preconditions.
//
// Postcondition: Returns nil, or an error describing every violation.
func (d *Domain) Validate() error {
	if d.ID == "" {
		return errors.New("ai: domain ID must not be empty")
	}
	var errs []string
	add := func(format string, args ...any) { errs = append(errs, fmt.Sprintf(format, args...)) }

	tasks := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		switch {
		case t.ID == "":
			add("task has empty ID")
		case tasks[t.ID]:
			add("duplicate task %q", t.ID)
		}
		tasks[t.ID] = true
	}
	if !tasks[RootTask] {
		add("missing root task %q", RootTask)
	}

	ops := make(map[string]bool, len(d.Operators))
	for _, op := range d.Operators {
		switch {
		case op.ID == "" || op.Action == "":
			add("operator %q needs an ID and an action", op.ID)
		case ops[op.ID]:
			add("duplicate operator %q", op.ID)
		case tasks[op.ID]:
			add("operator %q shadows a task", op.ID)
		}
		ops[op.ID] = true
		if !validTarget(op.Target) {
			add("operator %q: unknown target %q", op.ID, op.Target)
		}
	}

	methods := make(map[string]bool, len(d.Methods))
	for _, m := range d.Methods {
		if m.ID == "" || m.TaskID == "" {
			add("method %q needs an ID and a task", m.ID)
			continue
		}
		if methods[m.ID] {
			add("duplicate method %q", m.ID)
		}
		methods[m.ID] = true
		if !tasks[m.TaskID] {
			add("method %q: unknown task %q", m.ID, m.TaskID)
		}
		if len(m.Subtasks) == 0 {
			add("method %q: subtasks must not be empty", m.ID)
		}
		for _, sub := range m.Subtasks {
			if !tasks[sub] && !ops[sub] {
				add("method %q: subtask %q is neither a task nor an operator", m.ID, sub)
			}
		}
		if _, err := parseTest(m.Precondition); err != nil {
			add("method %q: %v", m.ID, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("ai: domain %q: %s", d.ID, strings.Join(errs, "; "))
	}
	return nil
}

func validTarget(token string) bool {
	switch token {
	case TargetNone, TargetSelf, TargetNearestEnemy, TargetWeakestEnemy, TargetWeakestAlly, TargetStrongestEnemy:
		return true
	}
	return false
}

// OperatorByID returns the operator with the given ID, or false if not found.
func (d *Domain) OperatorByID(id string) (*Operator, bool) {
	for _, op := range d.Operators {
		if op.ID == id {
			return op, true
		}
	}
	return nil, false
}

// MethodsForTask returns all methods that decompose taskID, in declaration order.
func (d *Domain) MethodsForTask(taskID string) []*Method {
	var out []*Method
	for _, m := range d.Methods {
		if m.TaskID == taskID {
			out = append(out, m)
		}
	}
	return out
}

// factTest is a parsed "fact op value" precondition. A bare name parses
// with op "" and means fact > 0, or a Lua predicate when no such fact exists.
type factTest struct {
	fact  string
	op    string
	value int
}

func parseTest(s string) (factTest, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return factTest{}, nil
	case 1:
		return factTest{fact: fields[0]}, nil
	case 3:
		switch fields[1] {
		case "<", "<=", ">", ">=", "==", "!=":
		default:
			return factTest{}, fmt.Errorf("precondition %q: unknown operator %q", s, fields[1])
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return factTest{}, fmt.Errorf("precondition %q: %w", s, err)
		}
		return factTest{fact: fields[0], op: fields[1], value: n}, nil
	}
	return factTest{}, fmt.Errorf("precondition %q: want a name or \"fact op value\"", s)
}

func (t factTest) eval(v int) bool {
	switch t.op {
	case "<":
		return v < t.value
	case "<=":
		return v <= t.value
	case ">":
		return v > t.value
	case ">=":
		return v >= t.value
	case "==":
		return v == t.value
	case "!=":
		return v != t.value
	}
	return v > 0
}

// DefaultDomain attacks the weakest living enemy while an attack is
// affordable and defends otherwise.
func DefaultDomain() *Domain {
	return &Domain{
		ID:          "default",
		Description: "Attack the weakest enemy; brace when out of action points.",
		Tasks:       []*Task{{ID: RootTask}},
		Methods: []*Method{
			{TaskID: RootTask, ID: "strike", Precondition: "can_attack", Subtasks: []string{"attack_weakest"}},
			{TaskID: RootTask, ID: "brace", Precondition: "can_defend", Subtasks: []string{"defend_self"}},
			{TaskID: RootTask, ID: "wait", Subtasks: []string{"pass"}},
		},
		Operators: []*Operator{
			{ID: "attack_weakest", Action: "attack", Target: TargetWeakestEnemy},
			{ID: "defend_self", Action: "defend", Target: TargetSelf},
			{ID: "pass", Action: ActionPass},
		},
	}
}

// yamlDomainFile wraps the YAML top-level key.
type yamlDomainFile struct {
	Domain *Domain `yaml:"domain"`
}

// LoadDomains reads all *.yaml and *.yml files from dir and returns parsed Domains.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns error if any YAML file fails to parse or validate.
func LoadDomains(dir string) ([]*Domain, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai: reading domains dir %q: %w", dir, err)
	}
	var domains []*Domain
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai: reading %s: %w", e.Name(), err)
		}
		var f yamlDomainFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("ai: parsing %s: %w", e.Name(), err)
		}
		if f.Domain == nil {
			return nil, fmt.Errorf("ai: %s missing top-level 'domain' key", e.Name())
		}
		if err := f.Domain.Validate(); err != nil {
			return nil, err
		}
		domains = append(domains, f.Domain)
	}
	return domains, nil
}
