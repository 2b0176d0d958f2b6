// Package anim drives eased return-to-tree animations for scene items.
package anim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/logger"
	"github.com/ayusman/gesturetree/internal/scene"
)

// ProgressStep is the progress advanced per tick. At 60 ticks/s a return
// flight takes about 0.8s.
const ProgressStep = 0.02

// task tracks one item's flight back to its home pose on the tree.
type task struct {
	item *scene.Item

	// Pose at the moment the flick happened, in world space.
	startPos mgl64.Vec3
	startRot mgl64.Quat
	startScl float64

	progress float64
}

// Animator advances all active return animations once per scheduler
// tick. Tasks are an explicit polled collection; nothing reschedules
// itself. Items animate independently, and the tree is free to keep
// rotating and scaling underneath them; the target pose is re-resolved
// through the tree transform every tick.
type Animator struct {
	mu    sync.Mutex
	tasks []*task
	tree  *scene.Tree
}

// New creates an Animator resolving home poses against the given tree.
func New(tree *scene.Tree) *Animator {
	return &Animator{tree: tree}
}

// StartReturn begins flying the item from its current pose back to its
// recorded home pose. The item is detached into world space for the
// flight and marked returning, which takes it out of hit-testing until
// it lands. Starting a second return for an item already in flight is a
// no-op.
func (a *Animator) StartReturn(item *scene.Item) {
	if item == nil || item.IsReturning {
		return
	}

	item.Detach(a.tree)
	item.IsReturning = true
	item.Highlighted = false
	item.TargetScale = 1

	a.mu.Lock()
	defer a.mu.Unlock()
	a.tasks = append(a.tasks, &task{
		item:     item,
		startPos: item.Position,
		startRot: item.Rotation,
		startScl: item.Scale,
	})

	logger.Debug("return animation started", zap.String("item", item.ID))
}

// Active returns the number of in-flight animations.
func (a *Animator) Active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tasks)
}

// Advance steps every active animation by one tick. Completed items
// reparent back to the tree and snap exactly onto their recorded home
// pose, so no float drift survives the flight.
func (a *Animator) Advance() {
	a.mu.Lock()
	defer a.mu.Unlock()

	remaining := a.tasks[:0]
	for _, tk := range a.tasks {
		if a.step(tk) {
			remaining = append(remaining, tk)
		}
	}
	// Drop references so finished tasks can be collected.
	for i := len(remaining); i < len(a.tasks); i++ {
		a.tasks[i] = nil
	}
	a.tasks = remaining
}

// Stop cancels all in-flight animations, snapping each item home. Used
// during teardown so no task mutates items after the session is gone.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, tk := range a.tasks {
		tk.item.SnapHome()
		a.tasks[i] = nil
	}
	a.tasks = a.tasks[:0]
}

// step advances one task; returns false once the item has landed.
func (a *Animator) step(tk *task) bool {
	tk.progress += ProgressStep

	if tk.progress >= 1 {
		tk.item.SnapHome()
		logger.Debug("return animation completed", zap.String("item", tk.item.ID))
		return false
	}

	// The home pose moves as the tree rotates and scales; chase its
	// current world-space location rather than where it was at launch.
	targetPos := a.tree.WorldPosition(tk.item.OriginalPosition)
	targetRot := a.tree.WorldRotation(tk.item.OriginalRotation)

	e := easeOutCubic(tk.progress)
	tk.item.Position = lerpVec3(tk.startPos, targetPos, e)
	tk.item.Rotation = mgl64.QuatSlerp(tk.startRot, targetRot, e)
	tk.item.Scale = tk.startScl + (1-tk.startScl)*e
	tk.item.TargetScale = tk.item.Scale

	return true
}

// easeOutCubic is 1-(1-p)^3: fast at launch, settling gently.
func easeOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
