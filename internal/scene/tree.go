package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// easeRate controls the exponential approach used for all smoothed
// transforms (tree yaw/scale, item scale). Higher converges faster.
const easeRate = 8.0

// Tree holds the shared transform of the whole ornament tree group.
// Rotation and Scale chase their targets each tick instead of snapping,
// which keeps pinch-driven motion from looking jittery.
type Tree struct {
	Position mgl64.Vec3

	Rotation       float64 // current yaw, radians
	TargetRotation float64

	Scale       float64 // uniform
	TargetScale float64
}

// NewTree creates a tree at the origin with identity transform.
func NewTree() *Tree {
	return &Tree{
		Scale:       1,
		TargetScale: 1,
	}
}

// WorldPosition maps a tree-local position into world space, applying
// the tree's current scale, yaw and position.
func (t *Tree) WorldPosition(local mgl64.Vec3) mgl64.Vec3 {
	rotated := mgl64.Rotate3DY(t.Rotation).Mul3x1(local.Mul(t.Scale))
	return rotated.Add(t.Position)
}

// WorldRotation maps a tree-local orientation into world space.
func (t *Tree) WorldRotation(local mgl64.Quat) mgl64.Quat {
	yaw := mgl64.QuatRotate(t.Rotation, mgl64.Vec3{0, 1, 0})
	return yaw.Mul(local)
}

// Ease advances rotation and scale toward their targets.
func (t *Tree) Ease(dt float64) {
	t.Rotation = approach(t.Rotation, t.TargetRotation, dt)
	t.Scale = approach(t.Scale, t.TargetScale, dt)
}

// approach moves value toward target with a critically-damped
// exponential step; frame-rate independent for varying dt.
func approach(value, target, dt float64) float64 {
	return value + (target-value)*(1-math.Exp(-easeRate*dt))
}
