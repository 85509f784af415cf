package deck

import (
	"slices"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

// Options configures a Deck.
type Options struct {
	Cols, Rows   int     // screen size in cells
	CellW, CellH float64 // pixels per cell
	InitialView  ViewState
}

// PickRequest asks what lies under a screen pixel.
type PickRequest struct {
	X, Y     float64  // screen pixel
	Radius   float64  // pixels
	LayerIDs []string // empty means every pickable layer
}

// PickInfo describes a picking hit.
type PickInfo struct {
	LayerID    string
	Index      int
	Object     any
	Coordinate core.Vec2 // world coordinate under the pixel
}

// Deck holds the current view state and layer list. SetProps is called once
// per frame; queries and rendering use the last committed props.
type Deck struct {
	cols, rows   int
	cellW, cellH float64
	view         ViewState
	layers       []Layer
	viewport     Viewport
}

// New creates a deck with an initial view and no layers.
func New(opts Options) *Deck {
	d := &Deck{
		cols:  opts.Cols,
		rows:  opts.Rows,
		cellW: opts.CellW,
		cellH: opts.CellH,
		view:  opts.InitialView,
	}
	d.rebuild()
	return d
}

func (d *Deck) rebuild() {
	d.viewport = NewViewport(d.view, d.cols, d.rows, d.cellW, d.cellH)
}

// Resize changes the screen size in cells.
func (d *Deck) Resize(cols, rows int) {
	d.cols, d.rows = cols, rows
	d.rebuild()
}

// SetProps commits the view state and ordered layer list for this frame.
func (d *Deck) SetProps(view ViewState, layers []Layer) {
	d.view = view
	d.layers = layers
	d.rebuild()
}

// Viewport returns the active viewport.
func (d *Deck) Viewport() Viewport {
	return d.viewport
}

// Layers returns the committed layer list.
func (d *Deck) Layers() []Layer {
	return d.layers
}

// Coordinate returns the world coordinate under a screen pixel, or false
// when the viewport has no area.
func (d *Deck) Coordinate(px core.Vec2) (core.Vec2, bool) {
	if !d.viewport.Valid() {
		return core.Vec2{}, false
	}
	return d.viewport.Unproject(px), true
}

// PickObject returns the topmost pickable object under the request pixel.
// Layers later in the list are on top.
func (d *Deck) PickObject(req PickRequest) (PickInfo, bool) {
	if !d.viewport.Valid() {
		return PickInfo{}, false
	}
	px := core.V(req.X, req.Y)

	for i := len(d.layers) - 1; i >= 0; i-- {
		p, ok := d.layers[i].(Picker)
		if !ok {
			continue
		}
		if len(req.LayerIDs) > 0 && !slices.Contains(req.LayerIDs, p.ID()) {
			continue
		}
		idx, hit := p.Pick(d.viewport, px, req.Radius)
		if !hit {
			continue
		}
		return PickInfo{
			LayerID:    p.ID(),
			Index:      idx,
			Object:     p.Object(idx),
			Coordinate: d.viewport.Unproject(px),
		}, true
	}
	return PickInfo{}, false
}

// Render draws every layer in order into dst. The screen is not cleared.
func (d *Deck) Render(dst *core.Screen) {
	if dst.Width() != d.cols || dst.Height() != d.rows {
		d.Resize(dst.Width(), dst.Height())
	}
	if !d.viewport.Valid() {
		return
	}
	for _, l := range d.layers {
		l.Draw(dst, d.viewport)
	}
}
