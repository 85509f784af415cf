package dungeon

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// FacingOffset aligns atan2 angles with the icon rotation convention, where
// the sprite's forward direction is its image bottom.
const FacingOffset = -270.0

// FacingAngle returns the icon angle that faces pointer from center, in
// counter-clockwise degrees normalized into [0, 360).
func FacingAngle(pointer, center core.Vec2) float64 {
	rad := math.Atan2(pointer.Y-center.Y, pointer.X-center.X)
	return core.NormalizeDegrees(rad*180/math.Pi + FacingOffset)
}
