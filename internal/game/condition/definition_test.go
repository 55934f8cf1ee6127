package condition_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
)

func TestEffect_Validate(t *testing.T) {
	assert.NoError(t, condition.Haste(3, 2).Validate())

	bad := condition.Effect{Kind: "neutral"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id must not be empty")
	assert.Contains(t, err.Error(), "kind must be")
	assert.Contains(t, err.Error(), "duration must be")
}

func TestFactories(t *testing.T) {
	h := condition.Haste(3, 2)
	assert.Equal(t, condition.Beneficial, h.Kind)
	assert.Equal(t, condition.BehaviorGrantAP, h.OnTick)
	assert.Equal(t, 2, h.Magnitude)

	p := condition.Paralysis(1)
	assert.Equal(t, condition.Detrimental, p.Kind)
	assert.Equal(t, condition.BehaviorRestoreAP, p.OnExpire)
}

func TestDefaultRegistry_ValidatesAgainstBuiltins(t *testing.T) {
	reg := condition.DefaultRegistry()
	assert.Len(t, reg.All(), 4)
	assert.NoError(t, reg.Validate(condition.NewBehaviors()))

	reg.Register(condition.Effect{ID: "odd", Name: "Odd", Kind: condition.Beneficial, Duration: 1, OnTick: "juggle"})
	assert.Error(t, reg.Validate(condition.NewBehaviors()))
}

func TestRegistry_Get_ReturnsCopy(t *testing.T) {
	reg := condition.DefaultRegistry()
	e, ok := reg.Get("poison")
	require.True(t, ok)
	e.Duration = 100
	again, _ := reg.Get("poison")
	assert.NotEqual(t, 100, again.Duration)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `id: burning
name: Burning
kind: detrimental
duration: 2
magnitude: 7
on_tick: damage
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "burning.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chilled.yml"),
		[]byte("id: chilled\nname: Chilled\nkind: detrimental\nduration: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	reg, err := condition.LoadDirectory(dir)
	require.NoError(t, err)
	got, ok := reg.Get("burning")
	require.True(t, ok)
	assert.Equal(t, 7, got.Magnitude)
	_, ok = reg.Get("chilled")
	assert.True(t, ok, ".yml files load too")
	_, ok = reg.Get("haste")
	assert.True(t, ok, "built-ins remain registered")
}

func TestLoadDirectory_UnknownField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"),
		[]byte("id: x\nname: X\nkind: beneficial\nduration: 1\nstacks: 3\n"), 0o644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"),
		[]byte("id: x\nname: X\nkind: beneficial\nduration: 0\n"), 0o644))
	_, err := condition.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_MissingDir(t *testing.T) {
	_, err := condition.LoadDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
