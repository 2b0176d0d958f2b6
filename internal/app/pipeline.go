package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/ayusman/gesturetree/internal/logger"
)

// runCaptureLoop reads camera frames and publishes the newest hand
// detection for the render loop. Capture rate follows motion:
//
// 1. Start in idle mode (idleFPS)
// 2. On motion detected, switch to active mode (activeFPS)
// 3. In active mode, run hand detection and publish the first hand
// 4. After 2s without motion, drop back to idle and publish no hand
func (a *App) runCaptureLoop(stop chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(a.config.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				logger.Warn("error reading frame", zap.Error(err))
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.config.ActiveFPS)
					frameInterval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(frameInterval)
					logger.Debug("switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(a.config.IdleFPS)
					frameInterval = time.Second / time.Duration(a.config.IdleFPS)
					ticker.Reset(frameInterval)
					a.setLatest(nil)
					logger.Debug("switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			d := a.Detector()
			if d == nil {
				frame.Close()
				continue
			}

			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				logger.Warn("error detecting hands", zap.Error(err))
				continue
			}

			// Single-hand interaction: the first hand wins.
			if len(hands) == 0 {
				a.setLatest(nil)
			} else {
				a.setLatest(hands[0])
			}
		}
	}
}

// runRenderLoop drives the interaction session and the return animator
// at a steady tick rate, pushing each tick's commands to the output
// callback.
func (a *App) runRenderLoop(stop chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Second / RenderFPS)
	defer ticker.Stop()

	last := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			out := a.session.Step(a.getLatest(), dt)
			a.animator.Advance()

			if a.onOutput != nil {
				a.onOutput(out)
			}
		}
	}
}
