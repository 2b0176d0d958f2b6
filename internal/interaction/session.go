// Package interaction holds the frame-by-frame controller that turns
// hand observations into scene manipulation: cursor tracking, pinch and
// flick handling, hover/focus transitions and tree rotate/scale.
package interaction

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/anim"
	"github.com/ayusman/gesturetree/internal/detector"
	"github.com/ayusman/gesturetree/internal/gesture"
	"github.com/ayusman/gesturetree/internal/logger"
	"github.com/ayusman/gesturetree/internal/scene"
)

// Calibration constants. Tuned by waving at the camera, not derived.
const (
	// pinchScaleMin/Max bound the raw pinch distance that maps onto the
	// tree scale range.
	pinchScaleMin = 0.05
	pinchScaleMax = 0.30
	treeScaleMin  = 0.5
	treeScaleMax  = 2.0

	// rotationGain converts horizontal cursor travel (NDC units) into
	// tree yaw radians while pinch-dragging.
	rotationGain = 3.5

	hoverScale = 1.35
	focusScale = 2.2

	// focusFollowBlend is the per-tick blend of a focused item toward
	// its viewing position; focusDragGain maps cursor displacement onto
	// world units around the anchor.
	focusFollowBlend = 0.25
	focusDragGain    = 0.9
)

// viewAnchor is the world point a focused item is held around, directly
// between the camera and the tree.
var viewAnchor = mgl64.Vec3{0, 1.3, 2.6}

// Config holds the session's tunable thresholds.
type Config struct {
	// FlickThreshold is the pinch-distance growth per tick, right after
	// a pinch release, that counts as a dismiss flick.
	FlickThreshold float64
	// CursorBlend is the per-tick fraction the smoothed cursor moves
	// toward the raw hand position. 1 snaps, smaller damps more.
	CursorBlend float64
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		FlickThreshold: 0.02,
		CursorBlend:    0.35,
	}
}

// Session is the single mutable interaction state for one run of the
// daemon. Step is not safe for concurrent use; the app calls it from
// exactly one tick loop.
type Session struct {
	registry *scene.Registry
	tree     *scene.Tree
	animator *anim.Animator
	camera   *scene.Camera
	config   Config

	cursor     mgl64.Vec2
	prevCursor mgl64.Vec2

	pinchDist     float64
	prevPinchDist float64
	pinching      bool
	wasPinching   bool

	handDetected bool

	hovered *scene.Item
	focused *scene.Item
}

// NewSession creates a session over the given scene.
func NewSession(registry *scene.Registry, animator *anim.Animator, camera *scene.Camera, config Config) *Session {
	if config.FlickThreshold <= 0 {
		config.FlickThreshold = DefaultConfig().FlickThreshold
	}
	if config.CursorBlend <= 0 || config.CursorBlend > 1 {
		config.CursorBlend = DefaultConfig().CursorBlend
	}
	return &Session{
		registry: registry,
		tree:     registry.Tree(),
		animator: animator,
		camera:   camera,
		config:   config,
	}
}

// Focused returns the currently focused item, or nil.
func (s *Session) Focused() *scene.Item { return s.focused }

// Hovered returns the currently hovered item, or nil.
func (s *Session) Hovered() *scene.Item { return s.hovered }

// HandDetected reports whether the last step saw a hand.
func (s *Session) HandDetected() bool { return s.handDetected }

// Step advances the state machine by one tick. frame is the most recent
// detection result, nil when no hand is visible; dt is the elapsed time
// since the previous tick. Any failure inside the step degrades to the
// idle branch for this tick instead of escaping to the caller.
func (s *Session) Step(frame *detector.Frame, dt float64) (out Output) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("interaction step failed, degrading to idle",
				zap.Any("reason", r))
			s.handDetected = false
			out = s.buildOutput(StatusWave, gesture.LabelNone)
		}
	}()

	label := gesture.Classify(frame)

	if frame == nil {
		s.handDetected = false
		s.pinching = false
		s.postStep(dt)
		return s.buildOutput(StatusWave, label)
	}

	s.readHand(frame, label)

	var status string
	switch {
	case s.focused != nil:
		status = s.stepFocused()
	default:
		origin, dir := s.camera.ScreenRay(s.cursor.X(), s.cursor.Y())
		if hit := s.registry.HitTest(origin, dir); hit != nil {
			status = s.stepHover(hit)
		} else {
			status = s.stepTree()
		}
	}

	s.postStep(dt)
	return s.buildOutput(status, label)
}

// readHand extracts per-tick hand measurements and smooths the cursor.
func (s *Session) readHand(frame *detector.Frame, label gesture.Label) {
	s.pinchDist = frame.PinchDistance()
	s.pinching = label == gesture.LabelPinch

	// Camera space has x growing right and y growing down, and the feed
	// is mirrored; flip both axes to land in NDC cursor space.
	mid := frame.PinchMidpoint()
	target := mgl64.Vec2{1 - 2*mid.X, 1 - 2*mid.Y}

	if !s.handDetected {
		// Hand just appeared: snap instead of easing in from stale
		// state, and suppress a phantom flick from the old distance.
		s.cursor = target
		s.prevCursor = target
		s.prevPinchDist = s.pinchDist
		s.wasPinching = s.pinching
		s.handDetected = true
		return
	}

	s.cursor = s.cursor.Add(target.Sub(s.cursor).Mul(s.config.CursorBlend))
}

// stepFocused handles the exclusive viewing mode: drag the item around
// the viewing anchor, or dismiss it on a flick.
func (s *Session) stepFocused() string {
	it := s.focused

	velocity := s.pinchDist - s.prevPinchDist
	if !s.pinching && velocity > s.config.FlickThreshold {
		s.focused = nil
		s.animator.StartReturn(it)
		logger.Info("item dismissed", zap.String("item", it.ID))
		return StatusReturning
	}

	target := viewAnchor.Add(mgl64.Vec3{
		s.cursor.X() * focusDragGain,
		s.cursor.Y() * focusDragGain,
		0,
	})
	it.Position = it.Position.Add(target.Sub(it.Position).Mul(focusFollowBlend))
	it.Rotation = mgl64.QuatSlerp(it.Rotation, s.camera.FacingRotation(it.Position), focusFollowBlend)
	it.TargetScale = focusScale

	return StatusFlickToDismiss
}

// stepHover handles the cursor resting on an item: highlight it and
// promote it to focus when a pinch begins.
func (s *Session) stepHover(hit *scene.Item) string {
	if s.hovered != nil && s.hovered != hit {
		s.unhover(s.hovered)
	}

	s.hovered = hit
	hit.Highlighted = true
	hit.TargetScale = hoverScale

	if s.pinching && !s.wasPinching {
		// Focus supersedes hover; never both on the same item.
		s.hovered = nil
		hit.Highlighted = false
		hit.Detach(s.tree)
		hit.TargetScale = focusScale
		s.focused = hit
		logger.Info("item opened", zap.String("item", hit.ID))
		return StatusOpening
	}

	return StatusPinchToOpen
}

// stepTree handles open-air gestures: pinch-drag rotates the tree,
// open pinch width sets its scale.
func (s *Session) stepTree() string {
	if s.hovered != nil {
		s.unhover(s.hovered)
		s.hovered = nil
	}

	if s.pinching {
		dx := s.cursor.X() - s.prevCursor.X()
		s.tree.TargetRotation += dx * rotationGain
		return StatusRotatingTree
	}

	t := (s.pinchDist - pinchScaleMin) / (pinchScaleMax - pinchScaleMin)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	s.tree.TargetScale = treeScaleMin + t*(treeScaleMax-treeScaleMin)
	return StatusPinchAir
}

func (s *Session) unhover(it *scene.Item) {
	it.Highlighted = false
	it.TargetScale = 1
}

// postStep runs unconditionally every tick: ease the smoothed
// transforms and snapshot current values for next tick's velocities.
func (s *Session) postStep(dt float64) {
	s.tree.Ease(dt)
	for _, it := range s.registry.Items() {
		if it.IsReturning {
			continue
		}
		it.EaseScale(dt)
	}

	s.prevPinchDist = s.pinchDist
	s.wasPinching = s.pinching
	s.prevCursor = s.cursor
}

// buildOutput snapshots the scene into renderer commands.
func (s *Session) buildOutput(status string, label gesture.Label) Output {
	items := s.registry.Items()

	out := Output{
		Status:  status,
		Gesture: label,
		Cursor: CursorCommand{
			Visible: s.handDetected,
			X:       s.cursor.X(),
			Y:       s.cursor.Y(),
			Color:   cursorColor(s.pinching),
			Scale:   cursorScale(s.pinching),
		},
		Tree: TreeCommand{
			Rotation: s.tree.Rotation,
			Scale:    s.tree.Scale,
		},
		Items: make([]ItemCommand, 0, len(items)),
	}

	for _, it := range items {
		out.Items = append(out.Items, itemCommand(it, s.tree))
	}

	return out
}

func cursorColor(pinching bool) string {
	if pinching {
		return "#ff5e5e"
	}
	return "#ffffff"
}

func cursorScale(pinching bool) float64 {
	if pinching {
		return 1.4
	}
	return 1.0
}
