package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/dice"
)

// BehaviorPrefix marks Lua globals exported as effect behaviours.
const BehaviorPrefix = "effect_"

// Manager owns one sandboxed VM holding every loaded script.
// It is safe for concurrent use; calls into the VM are serialised.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager with an empty VM. roller may be nil, which
// makes engine.roll raise an error. A nil logger discards output.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
func NewManager(instLimit int, roller *dice.Roller, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{L: NewSandboxedState(), limit: instLimit, roller: roller, logger: logger}
	m.registerModules(m.L)
	return m
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns an error on the first file that fails to load.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	for _, path := range files {
		if err := m.LoadString(path, ""); err != nil {
			return err
		}
	}
	return nil
}

// LoadString executes src, or the file at name when src is empty.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := limited(m.L, m.limit, func() error {
		if src == "" {
			return m.L.DoFile(name)
		}
		return m.L.DoString(src)
	})
	if err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	m.logger.Debug("script loaded", zap.String("script", name))
	return nil
}

// Behaviors returns the names of every effect_ global function, sorted.
func (m *Manager) Behaviors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	m.L.G.Global.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok || v.Type() != lua.LTFunction {
			return
		}
		if strings.HasPrefix(string(name), BehaviorPrefix) {
			names = append(names, string(name))
		}
	})
	sort.Strings(names)
	return names
}

// RegisterBehaviors adds every effect_ function to b under its global name.
//
// Postcondition: Returns an error if a name is already registered in b.
func (m *Manager) RegisterBehaviors(b *condition.Behaviors) error {
	for _, name := range m.Behaviors() {
		fn := name
		bh := condition.BehaviorFunc(func(t condition.Target, e condition.Effect) {
			m.invoke(fn, t, e)
		})
		if err := b.Register(fn, bh); err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
	}
	return nil
}

// invoke calls the Lua function name(target, magnitude, effect_id). Runtime
// errors, including an exceeded instruction limit, are logged at warn level
// and never propagated.
func (m *Manager) invoke(name string, t condition.Target, e condition.Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn := m.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}
	err := limited(m.L, m.limit, func() error {
		return m.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
			targetTable(m.L, t), lua.LNumber(e.Magnitude), lua.LString(e.ID))
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("behavior", name),
			zap.String("effect", e.ID),
			zap.Error(err),
		)
	}
}

// CallPredicate calls the Lua function name(facts) and reports whether it
// returned a truthy value. facts is passed as a table of integer fields.
//
// Postcondition: Returns an error if name is not a function or the call fails.
func (m *Manager) CallPredicate(name string, facts map[string]int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn := m.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return false, fmt.Errorf("scripting: predicate %q is not a function", name)
	}
	tbl := m.L.NewTable()
	for k, v := range facts {
		tbl.RawSetString(k, lua.LNumber(v))
	}
	var ret lua.LValue = lua.LNil
	err := limited(m.L, m.limit, func() error {
		if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
			return err
		}
		ret = m.L.Get(-1)
		m.L.Pop(1)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("scripting: predicate %q: %w", name, err)
	}
	return lua.LVAsBool(ret), nil
}
