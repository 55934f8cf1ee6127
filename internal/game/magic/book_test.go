package magic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/magic"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

func mage(id string) *character.Character {
	return character.New(id, "Mage "+id, stats.Attributes{Strength: 8, Dexterity: 10, Intelligence: 16, Constitution: 10, Wisdom: 12, Charisma: 10})
}

func fireball() magic.Spell {
	return magic.Spell{ID: "fireball", Name: "Fireball", Category: "evocation", ManaCost: 30, Cooldown: 2, Level: 1, Targeted: true}
}

func newBook(t *testing.T) *magic.Book {
	t.Helper()
	b := magic.NewBehaviors()
	require.NoError(t, b.Register("fireball", magic.DamageSpell(20)))
	require.NoError(t, b.Register("mend", magic.HealSpell(15)))
	book := magic.NewBook(b)
	book.Learn(fireball())
	book.Learn(magic.Spell{ID: "mend", Name: "Mend", ManaCost: 10, Cooldown: 0, Level: 1})
	return book
}

func TestBook_Learn_StoresCopy(t *testing.T) {
	book := magic.NewBook(magic.NewBehaviors())
	s := fireball()
	book.Learn(s)
	s.Cooldown = 99
	got, ok := book.Spell("fireball")
	require.True(t, ok)
	assert.Equal(t, 2, got.Cooldown)
}

func TestBook_Cast_DeductsManaAndStartsCooldown(t *testing.T) {
	book := newBook(t)
	caster, target := mage("a"), mage("b")
	startMP := caster.Stats.MP

	res := book.Cast(caster, target, "fireball")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, 23, res.Damage) // 20 + INT 16 modifier 3
	assert.Equal(t, target.Stats.MaxHP-23, target.Stats.HP)
	assert.Equal(t, startMP-30, caster.Stats.MP)
	s, _ := book.Spell("fireball")
	assert.Equal(t, 2, s.CurrentCooldown)
	assert.False(t, book.CanCast(caster, "fireball"))
}

func TestBook_Cast_OnCooldownSpendsNothing(t *testing.T) {
	book := newBook(t)
	caster, target := mage("a"), mage("b")
	require.True(t, book.Cast(caster, target, "fireball").Success)
	mp := caster.Stats.MP

	res := book.Cast(caster, target, "fireball")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "cooldown")
	assert.Equal(t, mp, caster.Stats.MP)
}

func TestBook_UpdateCooldowns(t *testing.T) {
	book := newBook(t)
	caster, target := mage("a"), mage("b")
	require.True(t, book.Cast(caster, target, "fireball").Success)
	book.UpdateCooldowns()
	assert.False(t, book.CanCast(caster, "fireball"))
	book.UpdateCooldowns()
	assert.True(t, book.CanCast(caster, "fireball"))
	book.UpdateCooldowns()
	s, _ := book.Spell("fireball")
	assert.Equal(t, 0, s.CurrentCooldown)
}

func TestBook_Cast_Failures(t *testing.T) {
	book := newBook(t)
	caster := mage("a")

	assert.Equal(t, "Unknown spell nope", book.Cast(caster, nil, "nope").Message)
	assert.Equal(t, "No target specified", book.Cast(caster, nil, "fireball").Message)

	require.True(t, caster.SpendMana(caster.Stats.MP-5))
	res := book.Cast(caster, mage("b"), "fireball")
	assert.False(t, res.Success)
	assert.Equal(t, "Not enough mana for Fireball", res.Message)
	assert.Equal(t, 5, caster.Stats.MP)
}

func TestBook_Cast_NoBehavior(t *testing.T) {
	book := magic.NewBook(magic.NewBehaviors())
	book.Learn(fireball())
	caster := mage("a")
	mp := caster.Stats.MP
	res := book.Cast(caster, mage("b"), "fireball")
	assert.False(t, res.Success)
	assert.Equal(t, mp, caster.Stats.MP)
}

func TestHealSpell_DefaultsToCaster(t *testing.T) {
	book := newBook(t)
	caster := mage("a")
	caster.TakeDamage(40)
	res := book.Cast(caster, nil, "mend")
	require.True(t, res.Success)
	assert.Equal(t, caster.Stats.MaxHP-25, caster.Stats.HP)
}

func TestEffectSpell(t *testing.T) {
	b := magic.NewBehaviors()
	require.NoError(t, b.Register("venom", magic.EffectSpell(condition.Poison(3, 4), false)))
	require.NoError(t, b.Register("quicken", magic.EffectSpell(condition.Haste(2, 3), true)))
	book := magic.NewBook(b)
	book.Learn(magic.Spell{ID: "venom", Name: "Venom", ManaCost: 5, Level: 1, Targeted: true})
	book.Learn(magic.Spell{ID: "quicken", Name: "Quicken", ManaCost: 5, Level: 1})
	caster, target := mage("a"), mage("b")

	res := book.Cast(caster, target, "venom")
	require.True(t, res.Success)
	assert.Equal(t, []string{"poison"}, res.Effects)
	assert.True(t, target.Effects.Has("poison"))

	require.True(t, book.Cast(caster, target, "quicken").Success)
	assert.True(t, caster.Effects.Has("haste"))
	assert.False(t, target.Effects.Has("haste"))
}

func TestBehaviors_Register_Duplicate(t *testing.T) {
	b := magic.NewBehaviors()
	require.NoError(t, b.Register("x", magic.HealSpell(1)))
	assert.Error(t, b.Register("x", magic.HealSpell(1)))
	assert.Error(t, b.Register("", magic.HealSpell(1)))
}

func TestSpellResolver(t *testing.T) {
	books := magic.NewBooks()
	caster, target := mage("a"), mage("b")
	books.Add(caster.ID, newBook(t))

	catalog := action.NewCatalog()
	require.NoError(t, magic.RegisterSpells(catalog, books, []magic.Spell{fireball()}))
	a, ok := catalog.Action(magic.ActionID("fireball"))
	require.True(t, ok)
	assert.Equal(t, action.TypeSpell, a.Type)

	r, ok := catalog.Resolver(a.ID)
	require.True(t, ok)
	assert.True(t, r.Resolve(caster, target).Success)
	assert.False(t, r.Resolve(target, caster).Success, "target has no book")

	books.UpdateCooldowns()
	book, _ := books.Get(caster.ID)
	s, _ := book.Spell("fireball")
	assert.Equal(t, 1, s.CurrentCooldown)
}

func TestProperty_CastNeverOverspends(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := magic.NewBehaviors()
		_ = b.Register("zap", magic.DamageSpell(1))
		book := magic.NewBook(b)
		cost := rapid.IntRange(0, 120).Draw(rt, "cost")
		cd := rapid.IntRange(0, 3).Draw(rt, "cooldown")
		book.Learn(magic.Spell{ID: "zap", Name: "Zap", ManaCost: cost, Cooldown: cd, Level: 1})
		casts := rapid.IntRange(1, 10).Draw(rt, "casts")
		caster, target := mage("a"), mage("b")
		for i := 0; i < casts; i++ {
			before := caster.Stats.MP
			can := book.CanCast(caster, "zap")
			res := book.Cast(caster, target, "zap")
			if res.Success != can {
				rt.Fatalf("CanCast=%v but Cast success=%v", can, res.Success)
			}
			if !res.Success && caster.Stats.MP != before {
				rt.Fatalf("failed cast spent mana")
			}
			if caster.Stats.MP < 0 {
				rt.Fatalf("negative mana")
			}
			book.UpdateCooldowns()
		}
	})
}
