// Package stats defines the six core attributes and the pure derivation of
// hit points, mana, defense, initiative and action points from them.
package stats

const (
	// MinAttribute is the lowest attribute value accepted at character creation.
	MinAttribute = 8
	// MaxAttribute is the highest attribute value accepted at character creation.
	MaxAttribute = 20
	// MaxActionPoints is the per-round action point budget of every character.
	MaxActionPoints = 23
)

// Attributes holds the six core ability scores of a character.
type Attributes struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// values returns the attributes in declaration order.
func (a Attributes) values() [6]int {
	return [6]int{a.Strength, a.Dexterity, a.Intelligence, a.Constitution, a.Wisdom, a.Charisma}
}

// Modifier computes the ability modifier for score using floor division:
// floor((score - 10) / 2).
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// Derived holds the statistics computed from attributes and level.
//
// Invariant: 0 <= HP <= MaxHP, 0 <= MP <= MaxMP, 0 <= ActionPoints <= MaxActionPoints.
type Derived struct {
	HP              int `json:"hp"`
	MaxHP           int `json:"max_hp"`
	MP              int `json:"mp"`
	MaxMP           int `json:"max_mp"`
	ActionPoints    int `json:"action_points"`
	MaxActionPoints int `json:"max_action_points"`
	Defense         int `json:"defense"`
	Initiative      int `json:"initiative"`
}

// Calculate derives a full, unwounded stat block from attrs at level.
//
// Precondition: level >= 1.
// Postcondition: HP == MaxHP, MP == MaxMP, ActionPoints == MaxActionPoints.
func Calculate(attrs Attributes, level int) Derived {
	hp := attrs.Constitution*10 + level*5
	mp := attrs.Intelligence*8 + level*3
	return Derived{
		HP:              hp,
		MaxHP:           hp,
		MP:              mp,
		MaxMP:           mp,
		ActionPoints:    MaxActionPoints,
		MaxActionPoints: MaxActionPoints,
		Defense:         attrs.Constitution/2 + attrs.Dexterity/3,
		Initiative:      attrs.Dexterity + attrs.Intelligence/2,
	}
}

// ValidateAttributes reports whether every attribute lies in [MinAttribute, MaxAttribute].
func ValidateAttributes(attrs Attributes) bool {
	for _, v := range attrs.values() {
		if v < MinAttribute || v > MaxAttribute {
			return false
		}
	}
	return true
}
