package ai

// Combatant captures one encounter participant at planning time.
type Combatant struct {
	ID      string
	Name    string
	Side    string
	HP      int
	MaxHP   int
	Defense int
	Dead    bool
}

// HPPercent returns current HP as a whole percentage of MaxHP; 0 if MaxHP == 0.
func (c *Combatant) HPPercent() int {
	if c.MaxHP <= 0 {
		return 0
	}
	return c.HP * 100 / c.MaxHP
}

// WorldState is the snapshot passed to the planner for one acting character.
//
// Invariant: Self must not be nil and must appear in Combatants.
type WorldState struct {
	Self       *Combatant
	Combatants []*Combatant
	// Facts are the integer values preconditions test, keyed by name.
	Facts map[string]int
}

// Enemies returns all living combatants on a side other than Self's.
func (ws *WorldState) Enemies() []*Combatant {
	var out []*Combatant
	for _, c := range ws.Combatants {
		if !c.Dead && c.Side != ws.Self.Side {
			out = append(out, c)
		}
	}
	return out
}

// Allies returns all living combatants on Self's side, Self included.
func (ws *WorldState) Allies() []*Combatant {
	var out []*Combatant
	for _, c := range ws.Combatants {
		if !c.Dead && c.Side == ws.Self.Side {
			out = append(out, c)
		}
	}
	return out
}

// weakest returns the combatant with the lowest HP percentage; ties keep
// roster order.
func weakest(cs []*Combatant) *Combatant {
	if len(cs) == 0 {
		return nil
	}
	w := cs[0]
	for _, c := range cs[1:] {
		if c.HPPercent() < w.HPPercent() {
			w = c
		}
	}
	return w
}

func strongest(cs []*Combatant) *Combatant {
	if len(cs) == 0 {
		return nil
	}
	s := cs[0]
	for _, c := range cs[1:] {
		if c.HP > s.HP {
			s = c
		}
	}
	return s
}

// ResolveTarget maps a target token to a combatant ID.
//
// Postcondition: returns "" for TargetNone, for unknown tokens, and when no
// combatant qualifies.
func (ws *WorldState) ResolveTarget(token string) string {
	var c *Combatant
	switch token {
	case TargetSelf:
		c = ws.Self
	case TargetNearestEnemy:
		if enemies := ws.Enemies(); len(enemies) > 0 {
			c = enemies[0]
		}
	case TargetWeakestEnemy:
		c = weakest(ws.Enemies())
	case TargetStrongestEnemy:
		c = strongest(ws.Enemies())
	case TargetWeakestAlly:
		c = weakest(ws.Allies())
	}
	if c == nil {
		return ""
	}
	return c.ID
}
