package scene

import (
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Registry maintains the set of interactive items and answers cursor-ray
// hit-test queries against them. Reparenting an item between tree-local
// and scene-global space never changes registry membership.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*Item
	tree  *Tree
}

// NewRegistry creates an empty registry over the given tree transform.
func NewRegistry(tree *Tree) *Registry {
	return &Registry{
		items: make(map[string]*Item),
		tree:  tree,
	}
}

// Tree returns the tree transform the registry resolves poses against.
func (r *Registry) Tree() *Tree {
	return r.tree
}

// Register adds an item to the registry. Registering an item twice
// replaces the earlier entry.
func (r *Registry) Register(item *Item) {
	if item == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

// Unregister removes an item by ID. Removing an unknown ID is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// Get returns the item with the given ID, or nil.
func (r *Registry) Get(id string) *Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id]
}

// Len returns the number of registered items.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Items returns all registered items ordered by ID, so per-tick command
// output is deterministic.
func (r *Registry) Items() []*Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HitTest casts a ray against every item's world-space bounding sphere
// and returns the nearest intersected item, or nil on a miss. Items in
// return flight are skipped so they cannot be grabbed mid-air.
func (r *Registry) HitTest(origin, dir mgl64.Vec3) *Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var nearest *Item
	nearestT := math.Inf(1)

	for _, it := range r.items {
		if it.IsReturning {
			continue
		}

		center := it.WorldPosition(r.tree)
		radius := it.Radius * it.Scale
		if it.Ownership == OwnershipTreeLocal {
			radius *= r.tree.Scale
		}

		t, ok := raySphere(origin, dir, center, radius)
		if !ok {
			continue
		}
		if t < nearestT {
			nearestT = t
			nearest = it
		}
	}

	return nearest
}

// raySphere intersects a ray with a sphere and returns the distance to
// the closest intersection in front of the origin.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c

	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	// Closest intersection in front of the origin.
	t := t0
	if t < 0 {
		t = t1
		if t < 0 {
			return 0, false
		}
	}

	return t, true
}
