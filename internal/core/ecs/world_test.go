package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hp struct{ v int }

func TestEntityPoolNeverHandsOutZero(t *testing.T) {
	p := NewEntityPool()
	id := p.Create()
	assert.False(t, id.IsZero())
	assert.False(t, p.Alive(0))
}

func TestEntityPoolStaleReference(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "double destroy must be ignored")

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "index is recycled")
	assert.NotEqual(t, a, b, "generation differs")
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a))
	assert.Equal(t, 1, p.Live())
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	store := Store[hp](w.Registry())
	id := w.CreateEntity()
	store.Set(id, &hp{v: 3})

	var destroyed []EntityID
	w.OnDestroy(func(id EntityID, _ bool) { destroyed = append(destroyed, id) })

	w.MarkForDestruction(id, false)
	w.MarkForDestruction(id, false)
	assert.True(t, w.Alive(id), "destruction is deferred")
	assert.True(t, w.PendingDestruction(id))

	w.FlushDestroyQueue()
	assert.False(t, w.Alive(id))
	assert.False(t, store.Has(id))
	assert.Equal(t, []EntityID{id}, destroyed, "queued once")
	assert.False(t, w.PendingDestruction(id))
}

func TestWorldRecursiveDestroyTakesChildren(t *testing.T) {
	w := NewWorld()
	store := Store[hp](w.Registry())
	parent := w.CreateEntity()
	child := w.CreateEntity()
	grandchild := w.CreateEntity()
	store.Set(child, &hp{})
	w.Attach(child, parent)
	w.Attach(grandchild, child)

	p, ok := w.Parent(child)
	require.True(t, ok)
	assert.Equal(t, parent, p)

	w.MarkForDestruction(parent, true)
	w.FlushDestroyQueue()

	assert.False(t, w.Alive(parent))
	assert.False(t, w.Alive(child))
	assert.False(t, w.Alive(grandchild))
	assert.False(t, store.Has(child))
	assert.Empty(t, w.Children(parent))
}

func TestWorldPlainDestroyOrphansChildren(t *testing.T) {
	w := NewWorld()
	parent := w.CreateEntity()
	child := w.CreateEntity()
	w.Attach(child, parent)

	w.MarkForDestruction(parent, false)
	w.FlushDestroyQueue()

	assert.True(t, w.Alive(child))
	_, ok := w.Parent(child)
	assert.False(t, ok)
}

func TestWorldRecursiveUpgrade(t *testing.T) {
	w := NewWorld()
	parent := w.CreateEntity()
	child := w.CreateEntity()
	w.Attach(child, parent)

	w.MarkForDestruction(parent, false)
	w.MarkForDestruction(parent, true)
	w.FlushDestroyQueue()

	assert.False(t, w.Alive(child))
}

func TestEach2VisitsSharedIDsInOrder(t *testing.T) {
	r := NewRegistry()
	a := Store[hp](r)
	b := Store[string](r)
	s := "x"
	for _, id := range []EntityID{9, 3, 7, 1} {
		a.Set(id, &hp{v: int(id)})
	}
	for _, id := range []EntityID{7, 1, 9, 4} {
		b.Set(id, &s)
	}

	var seen []EntityID
	Each2(a, b, func(id EntityID, v *hp, _ *string) {
		assert.Equal(t, int(id), v.v)
		seen = append(seen, id)
	})
	assert.Equal(t, []EntityID{1, 7, 9}, seen)
}
