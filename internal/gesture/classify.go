package gesture

import (
	"github.com/ayusman/gesturetree/internal/detector"
)

// PinchThreshold is the planar thumb-tip to index-tip distance below
// which a frame counts as a pinch. Tuned empirically against a 640x480
// camera at arm's length; a calibration constant, not a derived value.
const PinchThreshold = 0.04

// Classify maps one frame's hand geometry to a gesture label.
// It is a pure function: same frame, same label, no state between calls.
// A nil frame (no hand, or malformed input) classifies as LabelNone.
//
// Rules are evaluated in priority order, first match wins:
//
//  1. pinch: thumb tip and index tip closer than PinchThreshold
//  2. fist: four fingers and thumb all curled
//  3. pointing: index extended, the other three curled
//  4. open palm: all four fingers extended
//  5. thumb up: thumb extended, all four fingers curled
func Classify(f *detector.Frame) Label {
	if f == nil {
		return LabelNone
	}

	if f.PinchDistance() < PinchThreshold {
		return LabelPinch
	}

	index := f.FingerExtended(detector.IndexTip, detector.IndexPIP)
	middle := f.FingerExtended(detector.MiddleTip, detector.MiddlePIP)
	ring := f.FingerExtended(detector.RingTip, detector.RingPIP)
	pinky := f.FingerExtended(detector.PinkyTip, detector.PinkyPIP)
	thumb := f.FingerExtended(detector.ThumbTip, detector.ThumbIP)

	allCurled := !index && !middle && !ring && !pinky

	switch {
	case allCurled && !thumb:
		return LabelFist
	case index && !middle && !ring && !pinky:
		return LabelPointing
	case index && middle && ring && pinky:
		return LabelOpenPalm
	case allCurled && thumb:
		return LabelThumbUp
	default:
		return LabelNone
	}
}
