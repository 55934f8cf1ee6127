package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

func TestCalculate_ExampleScenario(t *testing.T) {
	attrs := stats.Attributes{
		Strength: 10, Dexterity: 10, Intelligence: 8,
		Constitution: 16, Wisdom: 10, Charisma: 10,
	}
	d := stats.Calculate(attrs, 1)
	assert.Equal(t, 165, d.HP)
	assert.Equal(t, 165, d.MaxHP)
	assert.Equal(t, 67, d.MP)
	assert.Equal(t, 67, d.MaxMP)
	assert.Equal(t, 11, d.Defense)
	assert.Equal(t, 14, d.Initiative)
	assert.Equal(t, 23, d.ActionPoints)
	assert.Equal(t, 23, d.MaxActionPoints)
}

func TestCalculate_LevelScaling(t *testing.T) {
	attrs := stats.Attributes{Strength: 12, Dexterity: 14, Intelligence: 12, Constitution: 12, Wisdom: 10, Charisma: 8}
	d1 := stats.Calculate(attrs, 1)
	d5 := stats.Calculate(attrs, 5)
	assert.Equal(t, 20, d5.MaxHP-d1.MaxHP)
	assert.Equal(t, 12, d5.MaxMP-d1.MaxMP)
	assert.Equal(t, d1.Defense, d5.Defense)
	assert.Equal(t, d1.Initiative, d5.Initiative)
}

func drawAttributes(rt *rapid.T) stats.Attributes {
	attr := rapid.IntRange(stats.MinAttribute, stats.MaxAttribute)
	return stats.Attributes{
		Strength:     attr.Draw(rt, "str"),
		Dexterity:    attr.Draw(rt, "dex"),
		Intelligence: attr.Draw(rt, "int"),
		Constitution: attr.Draw(rt, "con"),
		Wisdom:       attr.Draw(rt, "wis"),
		Charisma:     attr.Draw(rt, "cha"),
	}
}

func TestCalculate_Property_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attrs := drawAttributes(rt)
		level := rapid.IntRange(1, 50).Draw(rt, "level")
		assert.Equal(rt, stats.Calculate(attrs, level), stats.Calculate(attrs, level))
	})
}

func TestCalculate_Property_InvariantsHold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := stats.Calculate(drawAttributes(rt), rapid.IntRange(1, 50).Draw(rt, "level"))
		assert.Positive(rt, d.MaxHP)
		assert.Equal(rt, d.MaxHP, d.HP)
		assert.Equal(rt, d.MaxMP, d.MP)
		assert.GreaterOrEqual(rt, d.Defense, 0)
	})
}

func TestValidateAttributes(t *testing.T) {
	ok := stats.Attributes{Strength: 8, Dexterity: 20, Intelligence: 10, Constitution: 10, Wisdom: 10, Charisma: 10}
	assert.True(t, stats.ValidateAttributes(ok))

	low := ok
	low.Wisdom = 7
	assert.False(t, stats.ValidateAttributes(low))

	high := ok
	high.Charisma = 21
	assert.False(t, stats.ValidateAttributes(high))
}

func TestModifier(t *testing.T) {
	tests := []struct{ score, want int }{
		{10, 0}, {12, 1}, {8, -1}, {9, -1}, {20, 5}, {1, -5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stats.Modifier(tc.score), "score=%d", tc.score)
	}
}
