package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Golden-angle spiral placement. Successive ornaments step around the
// trunk by the golden angle and climb the cone by the golden-ratio
// conjugate, so any number of photos spreads evenly without two ever
// sharing a spot. Placement depends only on the index: photos added
// later never move the ones already hanging.
const (
	goldenAngle     = 2.399963229728653 // pi * (3 - sqrt 5)
	goldenRatioConj = 0.618033988749895

	coneBottomY      = 0.45
	coneTopY         = 2.15
	coneBottomRadius = 0.95
	coneTopRadius    = 0.18
)

// OrnamentPlacement returns the deterministic tree-local home pose for
// the ornament with the given placement index, facing outward from the
// trunk.
func OrnamentPlacement(index int) (mgl64.Vec3, mgl64.Quat) {
	t := math.Mod(float64(index)*goldenRatioConj, 1.0)
	angle := float64(index) * goldenAngle

	y := coneBottomY + t*(coneTopY-coneBottomY)
	radius := coneBottomRadius + t*(coneTopRadius-coneBottomRadius)

	pos := mgl64.Vec3{
		radius * math.Cos(angle),
		y,
		radius * math.Sin(angle),
	}

	// Face outward: yaw the ornament so its front follows the radial
	// direction it hangs at.
	rot := mgl64.QuatRotate(-angle+math.Pi/2, mgl64.Vec3{0, 1, 0})

	return pos, rot
}
