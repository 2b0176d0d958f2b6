// Package app wires the GestureTree pipeline together: camera capture,
// hand detection, the interaction session, and the renderer output feed.
package app

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/anim"
	"github.com/ayusman/gesturetree/internal/capture"
	"github.com/ayusman/gesturetree/internal/detector"
	"github.com/ayusman/gesturetree/internal/interaction"
	"github.com/ayusman/gesturetree/internal/logger"
	"github.com/ayusman/gesturetree/internal/scene"
	"github.com/ayusman/gesturetree/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the capture rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the capture rate during active detection.
	ActiveFPS = 30
	// RenderFPS is the rate of the interaction tick loop.
	RenderFPS = 60
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	Mirror       bool
	MotionThresh float64
	IdleFPS      int
	ActiveFPS    int
	Interaction  interaction.Config
}

// App is the main application that orchestrates hand detection and the
// interactive ornament scene.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector

	registry *scene.Registry
	tree     *scene.Tree
	animator *anim.Animator
	session  *interaction.Session

	// latest is the newest detection result, written by the capture
	// loop and read by the render loop. nil means no hand.
	latest   *detector.Frame
	latestMu sync.Mutex

	onOutput func(interaction.Output)

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.MotionThresh <= 0 {
		config.MotionThresh = 1.0 // Default threshold: 1% pixel change
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = IdleFPS
	}
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = ActiveFPS
	}

	tree := scene.NewTree()
	registry := scene.NewRegistry(tree)
	animator := anim.New(tree)

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID, config.Mirror),
		motion:   capture.NewMotionDetector(config.MotionThresh),
		registry: registry,
		tree:     tree,
		animator: animator,
		session:  interaction.NewSession(registry, animator, scene.DefaultCamera(), config.Interaction),
		enabled:  false,
		stopCh:   nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		logger.Info("using MediaPipe hand detection")
	} else {
		logger.Warn("MediaPipe not available, using mock detector", zap.Error(err))
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables hand detection. When disabled the
// interaction session sees no hand and the scene idles.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.setLatest(nil)
	}
}

// IsEnabled returns whether hand detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera swaps the camera implementation. Must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnOutput registers the callback that receives each tick's renderer
// commands. Must be set before Start.
func (a *App) OnOutput(fn func(interaction.Output)) {
	a.onOutput = fn
}

// LoadPhotos hangs one ornament per stored photo, in upload order so
// every photo keeps its slot on the tree across restarts.
func (a *App) LoadPhotos() error {
	if a.config.Store == nil {
		return nil
	}

	photos, err := a.config.Store.Photos().List()
	if err != nil {
		return err
	}

	for i, p := range photos {
		pos, rot := scene.OrnamentPlacement(i)
		a.registry.Register(scene.NewItem(p.ID, p.ID, pos, rot))
	}

	logger.Info("loaded photos onto the tree", zap.Int("count", len(photos)))
	return nil
}

// AddPhoto hangs a new ornament for a freshly uploaded photo, taking
// the next placement slot.
func (a *App) AddPhoto(p *store.Photo) {
	pos, rot := scene.OrnamentPlacement(a.registry.Len())
	a.registry.Register(scene.NewItem(p.ID, p.ID, pos, rot))
}

// RemovePhoto takes an ornament off the tree.
func (a *App) RemovePhoto(id string) {
	a.registry.Unregister(id)
}

// Start opens the camera and begins the capture and render loops.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(a.config.IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(2)
	go a.runCaptureLoop(a.stopCh)
	go a.runRenderLoop(a.stopCh)

	logger.Info("pipeline started")
	return nil
}

// Stop halts both loops and releases resources. Items in flight snap
// back to their home poses so the persisted scene stays consistent.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.mu.Unlock()

	a.wg.Wait()

	a.animator.Stop()

	if err := a.camera.Close(); err != nil {
		logger.Warn("error closing camera", zap.Error(err))
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			logger.Warn("error closing detector", zap.Error(err))
		}
	}

	logger.Info("pipeline stopped")
}

func (a *App) setLatest(f *detector.Frame) {
	a.latestMu.Lock()
	a.latest = f
	a.latestMu.Unlock()
}

func (a *App) getLatest() *detector.Frame {
	a.latestMu.Lock()
	defer a.latestMu.Unlock()
	return a.latest
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Session returns the interaction session.
func (a *App) Session() *interaction.Session {
	return a.session
}

// Registry returns the scene item registry.
func (a *App) Registry() *scene.Registry {
	return a.registry
}

// Animator returns the return-flight animator.
func (a *App) Animator() *anim.Animator {
	return a.animator
}

