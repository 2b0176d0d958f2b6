package interaction

import (
	"github.com/ayusman/gesturetree/internal/gesture"
	"github.com/ayusman/gesturetree/internal/scene"
)

// Status strings shown by the front-end HUD. The browser displays these
// verbatim, so they are part of the wire contract.
const (
	StatusWave           = "WAVE HAND TO START"
	StatusFlickToDismiss = "FLICK TO DISMISS"
	StatusReturning      = "RETURNING..."
	StatusOpening        = "OPENING..."
	StatusPinchToOpen    = "PINCH TO OPEN"
	StatusRotatingTree   = "ROTATING TREE"
	StatusPinchAir       = "PINCH AIR TO ROTATE"
)

// CursorCommand positions the on-screen cursor.
type CursorCommand struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Color   string  `json:"color"`
	Scale   float64 `json:"scale"`
}

// TreeCommand carries the tree group transform.
type TreeCommand struct {
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// ItemCommand carries one ornament's render state. Position and
// rotation are world-space targets; Space tags which coordinate space
// currently owns the item.
type ItemCommand struct {
	ID       string     `json:"id"`
	PhotoID  string     `json:"photo_id"`
	Space    string     `json:"space"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"` // w, x, y, z
	Scale    float64    `json:"scale"`
	Border   bool       `json:"border"`
}

// Output is the full per-tick command set sent to the renderer.
type Output struct {
	Status  string        `json:"status"`
	Gesture gesture.Label `json:"gesture"`
	Cursor  CursorCommand `json:"cursor"`
	Tree    TreeCommand   `json:"tree"`
	Items   []ItemCommand `json:"items"`
}

func itemCommand(it *scene.Item, tree *scene.Tree) ItemCommand {
	pos := it.WorldPosition(tree)
	rot := it.WorldRotation(tree)
	return ItemCommand{
		ID:       it.ID,
		PhotoID:  it.PhotoID,
		Space:    string(it.Ownership),
		Position: [3]float64{pos.X(), pos.Y(), pos.Z()},
		Rotation: [4]float64{rot.W, rot.V.X(), rot.V.Y(), rot.V.Z()},
		Scale:    it.Scale,
		Border:   it.Highlighted,
	}
}
