// Package progression implements the experience-to-level curve.
package progression

import "math"

// Curve describes the XP required per level as floor(Base * level^Exponent).
type Curve struct {
	Base     float64
	Exponent float64
}

// Default is the standard leveling curve.
var Default = Curve{Base: 1000, Exponent: 1.5}

// powEpsilon absorbs float error so exact powers such as 4^1.5 floor to 8.
const powEpsilon = 1e-9

// RequiredXP returns the experience needed to advance from level.
func (c Curve) RequiredXP(level int) int {
	return int(math.Floor(c.Base*math.Pow(float64(level), c.Exponent) + powEpsilon))
}

// TotalXPForLevel returns the cumulative experience threshold to reach level:
// the sum of RequiredXP(1..level).
func (c Curve) TotalXPForLevel(level int) int {
	total := 0
	for i := 1; i <= level; i++ {
		total += c.RequiredXP(i)
	}
	return total
}

// Level returns the level reached with xp experience. Level 1 is the floor;
// each cleared threshold TotalXPForLevel(level+1) adds one level.
//
// Postcondition: Returns >= 1.
func (c Curve) Level(xp int) int {
	level := 1
	for xp >= c.TotalXPForLevel(level+1) {
		level++
	}
	return level
}

// CanLevelUp reports whether xp clears the threshold for currentLevel+1.
func (c Curve) CanLevelUp(xp, currentLevel int) bool {
	return xp >= c.TotalXPForLevel(currentLevel+1)
}
