package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/dice"
)

// sequence returns values from vals in order, modulo n.
type sequence struct {
	vals []int
	i    int
}

func (s *sequence) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestRollResult_TotalAndString(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}},
		{"1d8+3", dice.Expression{Raw: "1d8+3", Count: 1, Sides: 8, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"4d6kh3", dice.Expression{Raw: "4d6kh3", Count: 4, Sides: 6, KeepHighest: 3}},
		{"4D6KH3+1", dice.Expression{Raw: "4D6KH3+1", Count: 4, Sides: 6, KeepHighest: 3, Modifier: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "2d1", "2d6kh2", "2d6kh0", "d6+", "abc",
		"101d6", "1000000000d6", "99999999999999999999d6", "1d1001"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, in)
	}
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestParse_Bounds(t *testing.T) {
	e, err := dice.Parse("100d1000")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, e.Count)
	assert.Equal(t, dice.MaxSides, e.Sides)
}

func TestRoll_KeepHighest(t *testing.T) {
	src := &sequence{vals: []int{0, 5, 2, 3}} // 1, 6, 3, 4
	r := dice.Roll(dice.MustParse("4d6kh3"), src)
	assert.Equal(t, []int{6, 4, 3}, r.Dice)
	assert.Equal(t, 13, r.Total())
}

func TestRoller_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	roller := dice.NewRoller(&sequence{vals: []int{19}}, zap.New(core))
	assert.Equal(t, 20, roller.D20())

	_, err := roller.RollExpr("1d8+2")
	require.NoError(t, err)
	entries := logs.FilterMessage("dice roll").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "d20", entries[0].ContextMap()["expression"])
}

func TestRoller_NilLogger(t *testing.T) {
	roller := dice.NewRoller(dice.NewSeededSource(1), nil)
	_, err := roller.RollExpr("bad")
	assert.Error(t, err)
}

func TestSeededSource_Deterministic(t *testing.T) {
	a, b := dice.NewSeededSource(42), dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestCryptoSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

func TestProperty_RollWithinBounds(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-5, 5).Draw(rt, "mod")
		r := dice.Roll(dice.Expression{Raw: "x", Count: count, Sides: sides, Modifier: mod}, src)
		if len(r.Dice) != count {
			rt.Fatalf("got %d dice, want %d", len(r.Dice), count)
		}
		for _, d := range r.Dice {
			if d < 1 || d > sides {
				rt.Fatalf("die %d outside [1,%d]", d, sides)
			}
		}
		if r.Total() < count+mod || r.Total() > count*sides+mod {
			rt.Fatalf("total %d out of range", r.Total())
		}
	})
}
