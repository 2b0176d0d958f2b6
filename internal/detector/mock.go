package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	frames []*Frame
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrames sets the hands that will be returned by Detect.
func (m *MockDetector) SetFrames(frames []*Frame) {
	m.frames = frames
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.frames, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset poses for tests. All poses share a wrist at (0.5, 0.8) with
// fingers pointing up (Y decreases upward in camera space). The
// coordinates are chosen so the planar wrist-distance extension test
// gives an unambiguous answer for every finger.

// fingerColumns maps finger order (index, middle, ring, pinky) to an X column.
var fingerColumns = [4]float64{0.56, 0.52, 0.48, 0.44}

// fingerJoints maps finger order to its MCP landmark index; PIP, DIP and
// tip follow consecutively in the MediaPipe layout.
var fingerJoints = [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

func basePose() *Frame {
	f := &Frame{Handedness: "Right", Score: 0.95}
	f.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}
	return f
}

func setExtendedFinger(f *Frame, finger int) {
	x := fingerColumns[finger]
	mcp := fingerJoints[finger]
	f.Points[mcp] = Point3D{X: x, Y: 0.68, Z: 0.0}
	f.Points[mcp+1] = Point3D{X: x, Y: 0.55, Z: 0.0}
	f.Points[mcp+2] = Point3D{X: x, Y: 0.45, Z: -0.01}
	f.Points[mcp+3] = Point3D{X: x, Y: 0.35, Z: -0.01}
}

func setCurledFinger(f *Frame, finger int) {
	x := fingerColumns[finger]
	mcp := fingerJoints[finger]
	f.Points[mcp] = Point3D{X: x, Y: 0.68, Z: -0.01}
	f.Points[mcp+1] = Point3D{X: x, Y: 0.62, Z: -0.04}
	f.Points[mcp+2] = Point3D{X: x, Y: 0.68, Z: -0.04}
	f.Points[mcp+3] = Point3D{X: x, Y: 0.74, Z: -0.02}
}

func setExtendedThumb(f *Frame) {
	f.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	f.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.70, Z: 0.01}
	f.Points[ThumbIP] = Point3D{X: 0.64, Y: 0.64, Z: 0.01}
	f.Points[ThumbTip] = Point3D{X: 0.68, Y: 0.58, Z: 0.01}
}

func setCurledThumb(f *Frame) {
	f.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	f.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.72, Z: -0.01}
	f.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.68, Z: -0.02}
	f.Points[ThumbTip] = Point3D{X: 0.54, Y: 0.68, Z: -0.02}
}

// OpenPalmPose returns a hand with all fingers and the thumb extended.
func OpenPalmPose() *Frame {
	f := basePose()
	setExtendedThumb(f)
	for i := 0; i < 4; i++ {
		setExtendedFinger(f, i)
	}
	return f
}

// FistPose returns a hand with all fingers and the thumb curled.
func FistPose() *Frame {
	f := basePose()
	setCurledThumb(f)
	for i := 0; i < 4; i++ {
		setCurledFinger(f, i)
	}
	return f
}

// PointingPose returns a hand with only the index finger extended.
func PointingPose() *Frame {
	f := basePose()
	setCurledThumb(f)
	setExtendedFinger(f, 0)
	for i := 1; i < 4; i++ {
		setCurledFinger(f, i)
	}
	return f
}

// ThumbsUpPose returns a hand with the thumb extended upward and the
// four fingers curled.
func ThumbsUpPose() *Frame {
	f := basePose()
	for i := 0; i < 4; i++ {
		setCurledFinger(f, i)
	}
	f.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.74, Z: 0.0}
	f.Points[ThumbMCP] = Point3D{X: 0.57, Y: 0.65, Z: 0.0}
	f.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.55, Z: 0.0}
	f.Points[ThumbTip] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	return f
}

// PinchPose returns a hand with thumb tip and index tip nearly touching.
// The remaining fingers are extended; a pinch must win regardless.
func PinchPose() *Frame {
	f := basePose()
	for i := 0; i < 4; i++ {
		setExtendedFinger(f, i)
	}
	f.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.76, Z: 0.0}
	f.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.68, Z: 0.01}
	f.Points[ThumbIP] = Point3D{X: 0.58, Y: 0.60, Z: 0.01}
	f.Points[ThumbTip] = Point3D{X: 0.565, Y: 0.505, Z: 0.01}
	f.Points[IndexTip] = Point3D{X: 0.56, Y: 0.50, Z: 0.0}
	return f
}

// PinchPoseAt returns a pinch pose with the pinch midpoint translated so
// its thumb/index midpoint lands at (x, y) in camera space.
func PinchPoseAt(x, y float64) *Frame {
	f := PinchPose()
	mid := f.PinchMidpoint()
	dx := x - mid.X
	dy := y - mid.Y
	for i := range f.Points {
		f.Points[i].X += dx
		f.Points[i].Y += dy
	}
	return f
}

// PoseWithPinchDistance returns an open-hand pose whose thumb-tip to
// index-tip planar distance equals d, centered near the frame middle.
// Useful for driving the tree-scale mapping in tests.
func PoseWithPinchDistance(d float64) *Frame {
	return PoseWithPinchDistanceAt(d, 0.5, 0.5)
}

// PoseWithPinchDistanceAt is PoseWithPinchDistance with the thumb/index
// midpoint placed at (x, y) in camera space.
func PoseWithPinchDistanceAt(d, x, y float64) *Frame {
	f := basePose()
	for i := 0; i < 4; i++ {
		setExtendedFinger(f, i)
	}
	setExtendedThumb(f)
	f.Points[IndexTip] = Point3D{X: x - d/2, Y: y, Z: 0.0}
	f.Points[ThumbTip] = Point3D{X: x + d/2, Y: y, Z: 0.0}
	return f
}
