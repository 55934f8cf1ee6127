// Package combat implements the turn-based encounter state machine, the
// damage formulas and the built-in action resolvers.
package combat

import "math"

// Phase is the step of ExecuteAction the encounter is in.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseInitiative
	PhaseAction
	PhaseResolution
	PhaseStatus
	PhaseEnd
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case PhaseInitiative:
		return "initiative"
	case PhaseAction:
		return "action"
	case PhaseResolution:
		return "resolution"
	case PhaseStatus:
		return "status"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// CriticalMultiplierPercent is the fixed critical hit multiplier, in percent.
const CriticalMultiplierPercent = 152

// CalculateDamage returns max(0, floor((base+modifier)*multiplier - defense)).
func CalculateDamage(base, modifier int, multiplier float64, defense int) int {
	d := int(math.Floor(float64(base+modifier)*multiplier - float64(defense)))
	if d < 0 {
		return 0
	}
	return d
}

// CalculateCriticalHit returns floor(damage * 1.52).
func CalculateCriticalHit(damage int) int {
	return floorDiv(damage*CriticalMultiplierPercent, 100)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
