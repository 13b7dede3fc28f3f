package ecs

// World is the top-level ECS container. It owns the entity pool, the component
// registry, parent/child links, and a deferred destruction queue flushed by
// CleanupSystem each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []queuedDestroy
	queued       map[EntityID]struct{}
	children     map[EntityID][]EntityID
	parents      map[EntityID]EntityID
	onDestroy    func(id EntityID, recursive bool)
}

type queuedDestroy struct {
	id        EntityID
	recursive bool
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]queuedDestroy, 0, 64),
		queued:       make(map[EntityID]struct{}, 64),
		children:     make(map[EntityID][]EntityID),
		parents:      make(map[EntityID]EntityID),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// OnDestroy installs a callback invoked once for every queued entity that is
// actually destroyed by FlushDestroyQueue (not for its implicitly removed children).
func (w *World) OnDestroy(fn func(id EntityID, recursive bool)) {
	w.onDestroy = fn
}

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Attach records child as a dependent of parent. A recursive destroy of the
// parent takes the child with it.
func (w *World) Attach(child, parent EntityID) {
	if old, ok := w.parents[child]; ok {
		w.detach(child, old)
	}
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// Parent returns the entity child is attached to.
func (w *World) Parent(child EntityID) (EntityID, bool) {
	p, ok := w.parents[child]
	return p, ok
}

// Children returns the direct children of parent. The slice must not be modified.
func (w *World) Children(parent EntityID) []EntityID {
	return w.children[parent]
}

func (w *World) detach(child, parent EntityID) {
	siblings := w.children[parent]
	for i, c := range siblings {
		if c == child {
			siblings = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	if len(siblings) == 0 {
		delete(w.children, parent)
	} else {
		w.children[parent] = siblings
	}
	delete(w.parents, child)
}

// MarkForDestruction queues an entity for end-of-tick cleanup. Queuing the
// same entity twice in one tick is a no-op; a later recursive request
// upgrades an earlier plain one.
func (w *World) MarkForDestruction(id EntityID, recursive bool) {
	if !w.pool.Alive(id) {
		return
	}
	if _, ok := w.queued[id]; ok {
		if recursive {
			for i := range w.destroyQueue {
				if w.destroyQueue[i].id == id {
					w.destroyQueue[i].recursive = true
				}
			}
		}
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, queuedDestroy{id: id, recursive: recursive})
}

// PendingDestruction reports whether id is queued for this tick's flush.
func (w *World) PendingDestruction(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys all queued entities and clears their components.
// Called by CleanupSystem at the end of each tick.
func (w *World) FlushDestroyQueue() {
	for _, q := range w.destroyQueue {
		if !w.pool.Alive(q.id) {
			continue
		}
		w.destroy(q.id, q.recursive)
		if w.onDestroy != nil {
			w.onDestroy(q.id, q.recursive)
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
}

func (w *World) destroy(id EntityID, recursive bool) {
	kids := append([]EntityID(nil), w.children[id]...)
	for _, c := range kids {
		if recursive {
			w.destroy(c, true)
		} else {
			w.detach(c, id)
		}
	}
	if p, ok := w.parents[id]; ok {
		w.detach(id, p)
	}
	delete(w.children, id)
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}
