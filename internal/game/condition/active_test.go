package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// fakeTarget records vitals with the same clamping rules as a character.
type fakeTarget struct {
	d stats.Derived
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{d: stats.Derived{HP: 50, MaxHP: 100, MP: 10, MaxMP: 40, ActionPoints: 10, MaxActionPoints: stats.MaxActionPoints}}
}

func (f *fakeTarget) TakeDamage(n int) { f.d.HP = max(0, f.d.HP-n) }
func (f *fakeTarget) Heal(n int)       { f.d.HP = min(f.d.MaxHP, f.d.HP+n) }
func (f *fakeTarget) RestoreMana(n int) {
	f.d.MP = min(f.d.MaxMP, f.d.MP+n)
}
func (f *fakeTarget) AdjustActionPoints(delta int) {
	f.d.ActionPoints = min(f.d.MaxActionPoints, max(0, f.d.ActionPoints+delta))
}
func (f *fakeTarget) DerivedStats() stats.Derived { return f.d }

func TestActiveSet_Apply_ReplacesByID(t *testing.T) {
	s := condition.NewActiveSet()
	s.Apply(condition.Poison(3, 5))
	s.Apply(condition.Haste(2, 1))
	s.Apply(condition.Poison(6, 9))

	require.Equal(t, 2, s.Len())
	got, ok := s.Get("poison")
	require.True(t, ok)
	assert.Equal(t, 6, got.Duration)
	assert.Equal(t, 9, got.Magnitude)
	// Re-applied effect moves to the end of the order.
	all := s.All()
	assert.Equal(t, "haste", all[0].ID)
	assert.Equal(t, "poison", all[1].ID)
}

func TestActiveSet_Remove(t *testing.T) {
	s := condition.NewActiveSet()
	s.Apply(condition.Poison(3, 5))
	s.Remove("poison")
	assert.False(t, s.Has("poison"))
	s.Remove("poison")
	assert.Equal(t, 0, s.Len())
}

func TestActiveSet_All_ReturnsCopy(t *testing.T) {
	s := condition.NewActiveSet()
	s.Apply(condition.Poison(3, 5))
	all := s.All()
	all[0].Duration = 99
	got, _ := s.Get("poison")
	assert.Equal(t, 3, got.Duration)
}

func TestActiveSet_Tick_RegenerationHealsEachTick(t *testing.T) {
	target := newFakeTarget()
	s := condition.NewActiveSet()
	s.Apply(condition.Regeneration(2, 10))
	b := condition.NewBehaviors()

	expired := s.Tick(target, b)
	assert.Empty(t, expired)
	assert.Equal(t, 60, target.d.HP)

	expired = s.Tick(target, b)
	assert.Equal(t, []string{"regeneration"}, expired)
	assert.Equal(t, 70, target.d.HP)
	assert.False(t, s.Has("regeneration"))
}

func TestActiveSet_Tick_PoisonDamages(t *testing.T) {
	target := newFakeTarget()
	s := condition.NewActiveSet()
	s.Apply(condition.Poison(3, 5))
	s.Tick(target, condition.NewBehaviors())
	assert.Equal(t, 45, target.d.HP)
	got, _ := s.Get("poison")
	assert.Equal(t, 2, got.Duration)
}

func TestActiveSet_Tick_HasteGrantsCappedAP(t *testing.T) {
	target := newFakeTarget()
	target.d.ActionPoints = 22
	s := condition.NewActiveSet()
	s.Apply(condition.Haste(3, 5))
	s.Tick(target, condition.NewBehaviors())
	assert.Equal(t, stats.MaxActionPoints, target.d.ActionPoints)
}

func TestActiveSet_Tick_ParalysisDrainsThenRestores(t *testing.T) {
	target := newFakeTarget()
	s := condition.NewActiveSet()
	s.Apply(condition.Paralysis(2))
	b := condition.NewBehaviors()

	s.Tick(target, b)
	assert.Equal(t, 0, target.d.ActionPoints)

	expired := s.Tick(target, b)
	assert.Equal(t, []string{"paralysis"}, expired)
	assert.Equal(t, stats.MaxActionPoints, target.d.ActionPoints)
}

func TestActiveSet_Tick_UnknownBehaviorIsNoOp(t *testing.T) {
	target := newFakeTarget()
	s := condition.NewActiveSet()
	s.Apply(condition.Effect{ID: "odd", Name: "Odd", Kind: condition.Beneficial, Duration: 1, OnTick: "juggle"})
	before := target.d
	expired := s.Tick(target, condition.NewBehaviors())
	assert.Equal(t, []string{"odd"}, expired)
	assert.Equal(t, before, target.d)
}

func TestActiveSet_Tick_InsertionOrder(t *testing.T) {
	var order []string
	b := condition.NewBehaviors()
	require.NoError(t, b.Register("trace", condition.BehaviorFunc(func(_ condition.Target, e condition.Effect) {
		order = append(order, e.ID)
	})))
	s := condition.NewActiveSet()
	for _, id := range []string{"c", "a", "b"} {
		s.Apply(condition.Effect{ID: id, Name: id, Kind: condition.Beneficial, Duration: 2, OnTick: "trace"})
	}
	s.Tick(newFakeTarget(), b)
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestBehaviors_Register_Duplicate(t *testing.T) {
	b := condition.NewBehaviors()
	noop := condition.BehaviorFunc(func(condition.Target, condition.Effect) {})
	assert.Error(t, b.Register(condition.BehaviorHeal, noop))
	assert.Error(t, b.Register("", noop))
	assert.NoError(t, b.Register("custom", noop))
	_, ok := b.Get("custom")
	assert.True(t, ok)
}

func TestBehaviors_DrainAP_WithMagnitude(t *testing.T) {
	target := newFakeTarget()
	bh, ok := condition.NewBehaviors().Get(condition.BehaviorDrainAP)
	require.True(t, ok)
	bh.Apply(target, condition.Effect{Magnitude: 4})
	assert.Equal(t, 6, target.d.ActionPoints)
}

func TestProperty_Tick_EveryEffectExpiresAfterItsDuration(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		s := condition.NewActiveSet()
		maxDur := 0
		for i := 0; i < n; i++ {
			d := rapid.IntRange(1, 10).Draw(rt, "duration")
			maxDur = max(maxDur, d)
			s.Apply(condition.Effect{ID: string(rune('a' + i)), Name: "x", Kind: condition.Beneficial, Duration: d})
		}
		target := newFakeTarget()
		b := condition.NewBehaviors()
		total := 0
		for i := 0; i < maxDur; i++ {
			for _, e := range s.All() {
				if e.Duration < 1 {
					rt.Fatalf("effect %q active with duration %d", e.ID, e.Duration)
				}
			}
			total += len(s.Tick(target, b))
		}
		if s.Len() != 0 || total != n {
			rt.Fatalf("after %d ticks: %d active, %d expired of %d", maxDur, s.Len(), total, n)
		}
	})
}
