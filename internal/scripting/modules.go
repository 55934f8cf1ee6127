package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
)

// registerModules installs the engine table: engine.roll(expr) and engine.log(msg).
func (m *Manager) registerModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		if m.roller == nil {
			L.RaiseError("engine.roll: no dice roller configured")
			return 0
		}
		r, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("engine.roll: %s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(r.Total()))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("lua", zap.String("message", L.CheckString(1)))
		return 0
	}))
	L.SetGlobal("engine", engine)
}

// targetTable exposes t to Lua. Vital fields are refreshed after every call
// to one of its functions. Functions accept either target.f(n) or target:f(n).
func targetTable(L *lua.LState, t condition.Target) *lua.LTable {
	tbl := L.NewTable()
	refresh := func() {
		d := t.DerivedStats()
		L.SetField(tbl, "hp", lua.LNumber(d.HP))
		L.SetField(tbl, "max_hp", lua.LNumber(d.MaxHP))
		L.SetField(tbl, "mp", lua.LNumber(d.MP))
		L.SetField(tbl, "max_mp", lua.LNumber(d.MaxMP))
		L.SetField(tbl, "ap", lua.LNumber(d.ActionPoints))
		L.SetField(tbl, "max_ap", lua.LNumber(d.MaxActionPoints))
		L.SetField(tbl, "defense", lua.LNumber(d.Defense))
	}
	bind := func(name string, apply func(int)) {
		L.SetField(tbl, name, L.NewFunction(func(L *lua.LState) int {
			apply(L.CheckInt(L.GetTop()))
			refresh()
			return 0
		}))
	}
	bind("damage", t.TakeDamage)
	bind("heal", t.Heal)
	bind("restore_mana", t.RestoreMana)
	bind("adjust_ap", t.AdjustActionPoints)
	refresh()
	return tbl
}
