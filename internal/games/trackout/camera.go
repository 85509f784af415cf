package trackout

import (
	"math"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// cellAspect is how many horizontal cells match one vertical cell in length.
const cellAspect = 2.0

// Camera is a top-down view locked on a target, +Z pointing up the screen.
type Camera struct {
	Target       core.Vec2
	CellsPerUnit float64
	Cols, Rows   int
}

// ToCell returns the screen cell showing a world point.
func (c Camera) ToCell(p core.Vec2) (col, row int) {
	x := float64(c.Cols)/2 + (p.X-c.Target.X)*c.CellsPerUnit
	y := float64(c.Rows)/2 - (p.Y-c.Target.Y)*c.CellsPerUnit/cellAspect
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToWorld returns the world point at the centre of a cell.
func (c Camera) ToWorld(col, row int) core.Vec2 {
	x := (float64(col) + 0.5 - float64(c.Cols)/2) / c.CellsPerUnit
	y := (float64(c.Rows)/2 - float64(row) - 0.5) * cellAspect / c.CellsPerUnit
	return core.V(c.Target.X+x, c.Target.Y+y)
}

// Visible returns the world bounds covered by the screen.
func (c Camera) Visible() (minP, maxP core.Vec2) {
	hw := float64(c.Cols) / 2 / c.CellsPerUnit
	hh := float64(c.Rows) / 2 * cellAspect / c.CellsPerUnit
	return core.V(c.Target.X-hw, c.Target.Y-hh), core.V(c.Target.X+hw, c.Target.Y+hh)
}
