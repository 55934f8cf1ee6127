package action

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog maps action IDs to descriptors and their resolvers.
type Catalog struct {
	actions   map[string]Action
	resolvers map[string]Resolver
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		actions:   make(map[string]Action),
		resolvers: make(map[string]Resolver),
	}
}

// Register adds a descriptor and its resolver.
//
// r may be nil and attached later with Bind.
// Postcondition: returns an error if a is invalid or its ID is already registered.
func (c *Catalog) Register(a Action, r Resolver) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("registering action %q: %w", a.ID, err)
	}
	if _, exists := c.actions[a.ID]; exists {
		return fmt.Errorf("action %q already registered", a.ID)
	}
	c.actions[a.ID] = a
	c.resolvers[a.ID] = r
	return nil
}

// Bind attaches r to an already registered action, replacing any existing resolver.
func (c *Catalog) Bind(id string, r Resolver) error {
	if _, ok := c.actions[id]; !ok {
		return fmt.Errorf("binding resolver: unknown action %q", id)
	}
	c.resolvers[id] = r
	return nil
}

// Action returns the descriptor registered under id.
func (c *Catalog) Action(id string) (Action, bool) {
	a, ok := c.actions[id]
	return a, ok
}

// Resolver returns the resolver registered under id.
func (c *Catalog) Resolver(id string) (Resolver, bool) {
	r, ok := c.resolvers[id]
	return r, ok && r != nil
}

// All returns every descriptor ordered by ID.
func (c *Catalog) All() []Action {
	out := make([]Action, 0, len(c.actions))
	for _, a := range c.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadActions reads every .yaml/.yml file in dir and returns the parsed,
// validated descriptors.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns an error on the first file that fails to parse or validate.
func LoadActions(dir string) ([]Action, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading actions dir %q: %w", dir, err)
	}
	var out []Action
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var a Action
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&a); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		out = append(out, a)
	}
	return out, nil
}
