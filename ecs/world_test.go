package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/keel/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldAddEntity(t *testing.T) {
	w := newTestWorld()

	e := w.AddEntity(Position{X: 1, Y: 2}, Velocity{DX: 3, DY: 4})

	assert.True(t, w.IsLive(e))
	require.NotNil(t, ecs.GetComponent[Position](w, e))
	assert.Equal(t, float32(1), ecs.GetComponent[Position](w, e).X)
	assert.Equal(t, float32(3), ecs.GetComponent[Velocity](w, e).DX)
	assert.Nil(t, ecs.GetComponent[Health](w, e))
}

func TestWorldAddEntityPointerBundle(t *testing.T) {
	w := newTestWorld()

	// Pointer values in a bundle are dereferenced and copied in.
	e := w.AddEntity(&Position{X: 5}, &Name{Value: "hero"})

	assert.Equal(t, float32(5), ecs.GetComponent[Position](w, e).X)
	assert.Equal(t, "hero", ecs.GetComponent[Name](w, e).Value)
}

func TestWorldAddEntityUnregisteredComponent(t *testing.T) {
	w := ecs.NewWorld()

	type stranger struct{}
	assert.Panics(t, func() {
		w.AddEntity(stranger{})
	})
}

func TestWorldAddRemoveComponent(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity(Position{})

	ecs.AddComponent(w, e, Health{Current: 10, Max: 10})
	assert.True(t, ecs.HasComponent[Health](w, e))

	assert.True(t, ecs.RemoveComponent[Health](w, e))
	assert.False(t, ecs.HasComponent[Health](w, e))
	assert.Nil(t, ecs.GetComponent[Health](w, e))

	// Removing a component the entity does not hold reports false.
	assert.False(t, ecs.RemoveComponent[Health](w, e))
}

func TestWorldRemovingLastComponentKeepsEntity(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity(Position{})

	ecs.RemoveComponent[Position](w, e)

	assert.True(t, w.IsLive(e))
	assert.Contains(t, w.Entities(), e)
}

func TestWorldAddComponentOverwrites(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity(Score(1))

	ecs.AddComponent(w, e, Score(2))

	assert.Equal(t, Score(2), *ecs.GetComponent[Score](w, e))
}

func TestWorldDespawn(t *testing.T) {
	w := newTestWorld()
	e1 := w.AddEntity(Position{X: 1}, Health{Current: 5})
	e2 := w.AddEntity(Position{X: 2})

	assert.True(t, w.Despawn(e1))

	assert.False(t, w.IsLive(e1))
	assert.NotContains(t, w.Entities(), e1)
	assert.Nil(t, ecs.GetComponent[Position](w, e1))
	assert.Nil(t, ecs.GetComponent[Health](w, e1))

	// Other entities are untouched.
	assert.True(t, w.IsLive(e2))
	assert.Equal(t, float32(2), ecs.GetComponent[Position](w, e2).X)

	// Despawning again is a no-op.
	assert.False(t, w.Despawn(e1))
}

func TestWorldStaleHandleAfterReuse(t *testing.T) {
	w := newTestWorld()
	old := w.AddEntity(Position{X: 1})
	w.Despawn(old)

	reused := w.AddEntity(Position{X: 2})
	require.Equal(t, old.Index(), reused.Index())

	// The stale handle sees nothing and mutates nothing.
	assert.False(t, w.IsLive(old))
	assert.Nil(t, ecs.GetComponent[Position](w, old))
	assert.False(t, ecs.HasComponent[Position](w, old))
	ecs.AddComponent(w, old, Health{Current: 1})
	assert.False(t, ecs.HasComponent[Health](w, reused))
	assert.False(t, w.Despawn(old))
	assert.True(t, w.IsLive(reused))
}

func TestWorldEntitiesInsertionOrder(t *testing.T) {
	w := newTestWorld()
	a := w.AddEntity()
	b := w.AddEntity(Position{})
	c := w.AddEntity()

	assert.Equal(t, []ecs.Entity{a, b, c}, w.Entities())

	w.Despawn(b)
	assert.Equal(t, []ecs.Entity{a, c}, w.Entities())
}

func TestWorldComponentsOf(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity(Velocity{}, Position{})

	types := w.ComponentsOf(e)

	// Registration order, not bundle order.
	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[Position](),
		reflect.TypeFor[Velocity](),
	}, types)
}

func TestWorldComponentValue(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity(Name{Value: "npc"})

	id, ok := ecs.LookupComponentID[Name](w)
	require.True(t, ok)

	v := w.ComponentValue(e, id)
	require.NotNil(t, v)
	p, ok := v.(*Name)
	require.True(t, ok)
	assert.Equal(t, "npc", p.Value)

	// Mutation through the reflected pointer hits live storage.
	p.Value = "renamed"
	assert.Equal(t, "renamed", ecs.GetComponent[Name](w, e).Value)

	posID, _ := ecs.LookupComponentID[Position](w)
	assert.Nil(t, w.ComponentValue(e, posID))
}

func TestWorldComponentDropOnDespawn(t *testing.T) {
	type handleOwner struct {
		ID int
	}
	released := []int{}

	w := ecs.NewWorld()
	ecs.RegisterComponentWithDrop(w, func(h *handleOwner) {
		released = append(released, h.ID)
	})

	e := w.AddEntity(handleOwner{ID: 7})
	w.Despawn(e)

	assert.Equal(t, []int{7}, released)
}

func TestWorldCloseRunsDestructors(t *testing.T) {
	type handleOwner struct {
		ID int
	}
	released := map[int]bool{}

	w := ecs.NewWorld()
	ecs.RegisterComponentWithDrop(w, func(h *handleOwner) {
		released[h.ID] = true
	})

	w.AddEntity(handleOwner{ID: 1})
	w.AddEntity(handleOwner{ID: 2})
	w.Close()

	assert.Equal(t, map[int]bool{1: true, 2: true}, released)
}

func TestWorldResources(t *testing.T) {
	type frameCount struct {
		Value int
	}

	w := ecs.NewWorld()
	ecs.InsertResource(w, frameCount{Value: 1})

	res, err := ecs.ReadResource[frameCount](w)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Get().Value)
	res.Release()

	mut, err := ecs.WriteResource[frameCount](w)
	require.NoError(t, err)
	mut.Get().Value = 2
	mut.Release()

	res, err = ecs.ReadResource[frameCount](w)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Get().Value)
	res.Release()
}

func TestWorldResourceNotFound(t *testing.T) {
	type missing struct{}
	w := ecs.NewWorld()

	_, err := ecs.ReadResource[missing](w)
	var notFound *ecs.ResourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, reflect.TypeFor[missing](), notFound.Type)

	_, err = ecs.WriteResource[missing](w)
	assert.ErrorAs(t, err, &notFound)
}

func TestWorldResourceBorrowConflicts(t *testing.T) {
	type counter struct{ N int }
	w := ecs.NewWorld()
	ecs.InsertResource(w, counter{})

	// Two shared borrows coexist.
	r1, err := ecs.ReadResource[counter](w)
	require.NoError(t, err)
	r2, err := ecs.ReadResource[counter](w)
	require.NoError(t, err)

	// An exclusive borrow cannot join them.
	_, err = ecs.WriteResource[counter](w)
	var busy *ecs.ResourceBusyError
	require.ErrorAs(t, err, &busy)

	r1.Release()
	r2.Release()

	mut, err := ecs.WriteResource[counter](w)
	require.NoError(t, err)

	_, err = ecs.ReadResource[counter](w)
	assert.ErrorAs(t, err, &busy)
	mut.Release()
}

func TestWorldRemoveResource(t *testing.T) {
	type counter struct{ N int }
	w := ecs.NewWorld()
	ecs.InsertResource(w, counter{N: 3})

	v, ok := ecs.RemoveResource[counter](w)
	assert.True(t, ok)
	assert.Equal(t, 3, v.N)

	_, ok = ecs.RemoveResource[counter](w)
	assert.False(t, ok)

	_, err := ecs.ReadResource[counter](w)
	assert.Error(t, err)
}

func TestWorldIndependentResourceTypes(t *testing.T) {
	type alpha struct{ V int }
	type beta struct{ V int }

	w := ecs.NewWorld()
	ecs.InsertResource(w, alpha{V: 1})
	ecs.InsertResource(w, beta{V: 2})

	// Borrowing one type never blocks another.
	a, err := ecs.WriteResource[alpha](w)
	require.NoError(t, err)
	b, err := ecs.WriteResource[beta](w)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Get().V)
	assert.Equal(t, 2, b.Get().V)
	a.Release()
	b.Release()
}
