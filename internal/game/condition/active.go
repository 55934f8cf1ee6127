package condition

// ActiveSet tracks the effects currently applied to one character, in
// insertion order. At most one effect per ID is active.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	effects []Effect
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{}
}

// Apply stores a copy of e, replacing any active effect with the same ID.
// Re-application moves the effect to the end of the tick order.
//
// Postcondition: Has(e.ID) is true and exactly one effect with e.ID is active.
func (s *ActiveSet) Apply(e Effect) {
	s.Remove(e.ID)
	s.effects = append(s.effects, e)
}

// Remove deletes the effect with the given ID. Absent IDs are a no-op.
func (s *ActiveSet) Remove(id string) {
	kept := s.effects[:0]
	for _, e := range s.effects {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.effects = kept
}

// Has reports whether the effect with id is active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Get returns a copy of the active effect with id.
func (s *ActiveSet) Get(id string) (Effect, bool) {
	for _, e := range s.effects {
		if e.ID == id {
			return e, true
		}
	}
	return Effect{}, false
}

// Len returns the number of active effects.
func (s *ActiveSet) Len() int { return len(s.effects) }

// All returns a copy of the active effects in tick order.
func (s *ActiveSet) All() []Effect {
	out := make([]Effect, len(s.effects))
	copy(out, s.effects)
	return out
}

// Tick runs one round of every active effect in insertion order: the OnTick
// behaviour, then a duration decrement, then at zero or below the OnExpire
// behaviour and removal. Unknown behaviour names do nothing.
//
// Postcondition: For every id in the returned slice, Has(id) is false.
func (s *ActiveSet) Tick(t Target, b *Behaviors) []string {
	var expired []string
	kept := make([]Effect, 0, len(s.effects))
	for _, e := range s.effects {
		b.run(e.OnTick, t, e)
		e.Duration--
		if e.Duration <= 0 {
			b.run(e.OnExpire, t, e)
			expired = append(expired, e.ID)
			continue
		}
		kept = append(kept, e)
	}
	s.effects = kept
	return expired
}
