// Package gesture provides a stateless geometric hand-pose classifier.
package gesture

// Label represents a discrete gesture classification for one frame.
type Label string

const (
	// LabelNone means no recognizable pose, no hand, or a malformed frame.
	LabelNone Label = "none"
	// LabelOpenPalm means all four fingers extended.
	LabelOpenPalm Label = "open_palm"
	// LabelPinch means thumb tip and index tip within the pinch threshold.
	LabelPinch Label = "pinch"
	// LabelFist means all four fingers and the thumb curled.
	LabelFist Label = "fist"
	// LabelPointing means only the index finger extended.
	LabelPointing Label = "pointing"
	// LabelThumbUp means the thumb extended with all four fingers curled.
	LabelThumbUp Label = "thumb_up"
)

// String returns the label's wire representation.
func (l Label) String() string {
	return string(l)
}
