// Package scene tracks the interactive objects of the ornament tree:
// photo items, the tree transform, and cursor-ray hit-testing.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Ownership says which coordinate space an item's current pose lives in.
// Reparenting is an explicit tag change plus a pose conversion, never an
// implicit graph-parent move.
type Ownership string

const (
	// OwnershipTreeLocal means the item's pose is relative to the tree
	// group and follows the tree's rotation and scale.
	OwnershipTreeLocal Ownership = "tree_local"
	// OwnershipSceneGlobal means the item's pose is in world space,
	// detached from the tree while focused or flying back.
	OwnershipSceneGlobal Ownership = "scene_global"
)

// Item represents one photo ornament hanging on the tree.
type Item struct {
	ID      string
	PhotoID string

	// Renderer object references; the daemon never draws these itself.
	MeshID   string
	BorderID string

	// OriginalPosition and OriginalRotation are the item's home pose in
	// tree-local space, fixed at creation. The return animation lands
	// exactly here.
	OriginalPosition mgl64.Vec3
	OriginalRotation mgl64.Quat

	// Position and Rotation are the current pose, in the space named by
	// Ownership.
	Position mgl64.Vec3
	Rotation mgl64.Quat

	// Scale eases toward TargetScale every tick (1 = resting size).
	Scale       float64
	TargetScale float64

	// Radius is the unscaled hit-sphere radius.
	Radius float64

	Ownership   Ownership
	Highlighted bool
	IsReturning bool
}

// NewItem creates an ornament at its home pose, owned by the tree.
func NewItem(id, photoID string, position mgl64.Vec3, rotation mgl64.Quat) *Item {
	return &Item{
		ID:               id,
		PhotoID:          photoID,
		MeshID:           "ornament-" + id,
		BorderID:         "border-" + id,
		OriginalPosition: position,
		OriginalRotation: rotation,
		Position:         position,
		Rotation:         rotation,
		Scale:            1,
		TargetScale:      1,
		Radius:           defaultItemRadius,
		Ownership:        OwnershipTreeLocal,
	}
}

// defaultItemRadius is the hit-sphere radius of an ornament at scale 1,
// in tree-local units.
const defaultItemRadius = 0.16

// WorldPosition resolves the item's current position into world space.
func (it *Item) WorldPosition(tree *Tree) mgl64.Vec3 {
	if it.Ownership == OwnershipSceneGlobal {
		return it.Position
	}
	return tree.WorldPosition(it.Position)
}

// WorldRotation resolves the item's current orientation into world space.
func (it *Item) WorldRotation(tree *Tree) mgl64.Quat {
	if it.Ownership == OwnershipSceneGlobal {
		return it.Rotation
	}
	return tree.WorldRotation(it.Rotation)
}

// Detach reparents the item into scene-global space, converting its pose
// so the item does not visibly move at the instant of the switch.
func (it *Item) Detach(tree *Tree) {
	if it.Ownership == OwnershipSceneGlobal {
		return
	}
	it.Position = tree.WorldPosition(it.Position)
	it.Rotation = tree.WorldRotation(it.Rotation)
	it.Ownership = OwnershipSceneGlobal
}

// SnapHome reparents the item back to the tree and lands it exactly on
// its recorded home pose, erasing any float drift from animation.
func (it *Item) SnapHome() {
	it.Ownership = OwnershipTreeLocal
	it.Position = it.OriginalPosition
	it.Rotation = it.OriginalRotation
	it.Scale = 1
	it.TargetScale = 1
	it.IsReturning = false
	it.Highlighted = false
}

// EaseScale moves Scale toward TargetScale with an exponential approach.
func (it *Item) EaseScale(dt float64) {
	it.Scale = approach(it.Scale, it.TargetScale, dt)
}
