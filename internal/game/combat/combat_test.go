package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// fighter returns a character with STR 14, CON 10 (defense 8 at DEX 10) and
// initiative dex + 5.
func fighter(id string, dex int) *character.Character {
	return character.New(id, id, stats.Attributes{Strength: 14, Dexterity: dex, Intelligence: 10, Constitution: 10, Wisdom: 10, Charisma: 10})
}

// sequence is a dice.Source returning vals in order, modulo n.
type sequence struct {
	vals []int
	i    int
}

func (s *sequence) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestCalculateDamage(t *testing.T) {
	assert.Equal(t, 9, combat.CalculateDamage(10, 3, 1, 4))
	assert.Equal(t, 0, combat.CalculateDamage(2, 0, 1, 10))
	assert.Equal(t, 15, combat.CalculateDamage(10, 0, 1.5, 0))
	assert.Equal(t, 3, combat.CalculateDamage(5, 0, 0.75, 0))
}

func TestCalculateCriticalHit(t *testing.T) {
	assert.Equal(t, 13, combat.CalculateCriticalHit(9))
	assert.Equal(t, 0, combat.CalculateCriticalHit(0))
	assert.Equal(t, 152, combat.CalculateCriticalHit(100))
	assert.Equal(t, 24, combat.CalculateCriticalHit(16))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "resolution", combat.PhaseResolution.String())
	assert.Equal(t, "none", combat.Phase(99).String())
}

func TestProperty_CalculateDamageNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(-50, 200).Draw(rt, "base")
		mod := rapid.IntRange(-10, 10).Draw(rt, "mod")
		def := rapid.IntRange(0, 100).Draw(rt, "def")
		d := combat.CalculateDamage(base, mod, 1, def)
		if d < 0 {
			rt.Fatalf("negative damage %d", d)
		}
		if c := combat.CalculateCriticalHit(d); c < d {
			rt.Fatalf("critical %d below base %d", c, d)
		}
	})
}
