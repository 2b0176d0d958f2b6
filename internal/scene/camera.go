package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera describes the fixed viewpoint the front-end renders from. The
// daemon only needs it to turn cursor positions into pick rays and to
// face focused items toward the viewer.
type Camera struct {
	position    mgl64.Vec3
	invViewProj mgl64.Mat4
}

// NewCamera builds a perspective camera looking from position at target.
func NewCamera(position, target mgl64.Vec3, fovY, aspect, near, far float64) *Camera {
	proj := mgl64.Perspective(fovY, aspect, near, far)
	view := mgl64.LookAtV(position, target, mgl64.Vec3{0, 1, 0})
	return &Camera{
		position:    position,
		invViewProj: proj.Mul4(view).Inv(),
	}
}

// DefaultCamera matches the front-end's scene setup: eye level with the
// tree, pulled back far enough to frame it at scale 2.
func DefaultCamera() *Camera {
	return NewCamera(
		mgl64.Vec3{0, 1.3, 4.2},
		mgl64.Vec3{0, 1.3, 0},
		mgl64.DegToRad(50),
		16.0/9.0,
		0.1,
		100,
	)
}

// Position returns the camera's world position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.position
}

// ScreenRay converts a cursor position in normalized device coordinates
// (x, y in [-1,1], y up) into a world-space pick ray by unprojecting the
// near and far plane points.
func (c *Camera) ScreenRay(nx, ny float64) (origin, dir mgl64.Vec3) {
	nearPoint := mgl64.Vec4{nx, ny, -1, 1}
	farPoint := mgl64.Vec4{nx, ny, 1, 1}

	nearWorld := c.invViewProj.Mul4x1(nearPoint)
	farWorld := c.invViewProj.Mul4x1(farPoint)

	if nearWorld[3] != 0 {
		nearWorld = nearWorld.Mul(1 / nearWorld[3])
	}
	if farWorld[3] != 0 {
		farWorld = farWorld.Mul(1 / farWorld[3])
	}

	origin = nearWorld.Vec3()
	dir = farWorld.Vec3().Sub(origin).Normalize()
	return origin, dir
}

// FacingRotation returns the orientation that points an item at the
// camera, used while an item is held in focus.
func (c *Camera) FacingRotation(at mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatLookAtV(at, c.position, mgl64.Vec3{0, 1, 0})
}
