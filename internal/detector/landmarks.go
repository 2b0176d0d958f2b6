// Package detector provides hand detection interfaces and landmark types.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a landmark position in normalized [0,1] camera space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame represents one hand observation: the 21 MediaPipe landmarks
// plus detection metadata. A nil *Frame means "no hand detected".
type Frame struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// FrameFromPoints builds a Frame from a raw landmark slice.
// A slice of any length other than 21 is malformed and yields nil,
// the same as no hand at all.
func FrameFromPoints(points []Point3D) *Frame {
	if len(points) != NumLandmarks {
		return nil
	}
	f := &Frame{}
	copy(f.Points[:], points)
	return f
}

// Distance3D calculates the Euclidean distance between two 3D points.
func Distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarDistance calculates the distance between two points in the
// camera plane, ignoring depth. Depth from a single camera is too noisy
// for threshold comparisons, so all gesture geometry works in x/y.
func PlanarDistance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PinchDistance returns the planar thumb-tip to index-tip distance.
func (f *Frame) PinchDistance() float64 {
	return PlanarDistance(f.Points[ThumbTip], f.Points[IndexTip])
}

// PinchMidpoint returns the point halfway between thumb tip and index tip,
// the anchor the interaction cursor tracks.
func (f *Frame) PinchMidpoint() Point3D {
	a := f.Points[ThumbTip]
	b := f.Points[IndexTip]
	return Point3D{
		X: (a.X + b.X) / 2,
		Y: (a.Y + b.Y) / 2,
		Z: (a.Z + b.Z) / 2,
	}
}

// FingerExtended reports whether the finger with the given tip and PIP
// indices is extended: the tip sits farther from the wrist than the
// second-to-last joint. The comparison is orientation-invariant for
// typical hand poses.
func (f *Frame) FingerExtended(tip, pip int) bool {
	wrist := f.Points[Wrist]
	return PlanarDistance(wrist, f.Points[tip]) > PlanarDistance(wrist, f.Points[pip])
}
