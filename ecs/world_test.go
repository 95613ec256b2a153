package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				e := w.CreateEntity()
				require.True(t, e.Valid())
				ents = append(ents, e)
			}
			require.Len(t, w.Entities(), c.create)

			if c.destroyIndex >= 0 {
				require.True(t, w.DestroyEntity(ents[c.destroyIndex]))
				assert.False(t, w.IsAlive(ents[c.destroyIndex]))
				assert.False(t, w.DestroyEntity(ents[c.destroyIndex]), "double destroy")
				assert.Len(t, w.Entities(), c.create-1)
			}
		})
	}
}

func TestWorldRecycledSlotIsNewEntity(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := w.CreateEntity()
	require.NoError(t, Add(w, old, h, 1))
	require.True(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, Has(w, fresh, h), "components do not survive slot reuse")
	assert.ErrorIs(t, Add(w, old, h, 2), component.ErrEntityNotAlive)
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	require.NoError(t, Add(w, e1, hInt, 10))
	require.NoError(t, Add(w, e1, hStr, "a"))
	require.NoError(t, Add(w, e2, hStr, "b"))

	v, ok := Get(w, e1, hInt)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	_, ok = Get(w, e2, hInt)
	assert.False(t, ok)

	ptr, ok := GetPtr(w, e1, hInt)
	require.True(t, ok)
	*ptr = 11
	v, _ = Get(w, e1, hInt)
	assert.Equal(t, 11, v)

	assert.True(t, Remove(w, e1, hStr))
	assert.False(t, Remove(w, e1, hStr))
	assert.False(t, Has(w, e1, hStr))
	assert.True(t, Has(w, e2, hStr))

	var zero component.ComponentHandle[int]
	assert.ErrorIs(t, Add(w, e1, zero, 1), component.ErrInvalidComponentKind)
}

func TestWorldQuery(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponent[int]()
	kb := component.NewComponent[float64]()
	kc := component.NewComponent[bool]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	require.NoError(t, Add(w, e1, ka, 1))
	require.NoError(t, Add(w, e2, ka, 2))
	require.NoError(t, Add(w, e2, kb, 2.5))
	require.NoError(t, Add(w, e3, kb, 3.5))

	assert.ElementsMatch(t, []Entity{e1, e2}, w.Query(ka.Kind()))
	assert.Equal(t, []Entity{e2}, w.Query(ka.Kind(), kb.Kind()))
	assert.Empty(t, w.Query(ka.Kind(), kc.Kind()), "missing store")
	assert.Empty(t, w.Query())

	first, ok := w.First(kb.Kind(), ka.Kind())
	require.True(t, ok)
	assert.Equal(t, e2, first)

	require.True(t, w.DestroyEntity(e2))
	assert.Empty(t, w.Query(ka.Kind(), kb.Kind()))
	_, ok = w.First(ka.Kind(), kb.Kind())
	assert.False(t, ok)
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	hf := component.NewComponent[float64]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	require.NoError(t, Add(w, e1, h, 1))
	require.NoError(t, Add(w, e3, h, 3))
	require.NoError(t, Add(w, e3, hf, 0.5))

	var seen []Entity
	ForEach(w, h, func(e Entity, v *int) {
		seen = append(seen, e)
		*v *= 10
	})
	assert.ElementsMatch(t, []Entity{e1, e3}, seen)
	assert.NotContains(t, seen, e2)

	v, _ := Get(w, e3, h)
	assert.Equal(t, 30, v)

	var pairs []Entity
	ForEach2(w, h, hf, func(e Entity, _ *int, f *float64) {
		pairs = append(pairs, e)
		assert.Equal(t, 0.5, *f)
	})
	assert.Equal(t, []Entity{e3}, pairs)
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(*World) {
	*s.calls = append(*s.calls, s.name)
}

func TestSchedulerOrder(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	s.Add(countingSystem{&calls, "c"})
	s.Add(nil)

	s.Update(NewWorld())
	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Len(t, s.Systems(), 3)
}
