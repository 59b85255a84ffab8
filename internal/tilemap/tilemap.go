// Package tilemap holds a parsed tile map: a visual tile layer, a sparse layer
// of tagged trigger cells used for collision and spawning, and the viewport
// that follows the player across it.
package tilemap

import (
	"math"
	"sort"
	"strings"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tilejump/internal/core"
)

// Well-known trigger properties.
const (
	PropBlockers = "blockers" // value holds any of "l", "r", "t", "b"
	PropPlayer   = "player"   // player start cell
	PropEnemy    = "enemy"    // enemy spawn cell
	PropReverse  = "reverse"  // enemies turn around here
)

// Properties are the key/value tags attached to a trigger cell.
type Properties map[string]string

// Has reports whether the property is present, regardless of its value.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Get returns the property value or "".
func (p Properties) Get(key string) string {
	return p[key]
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cell is one tagged grid cell, positioned in world pixels.
type Cell struct {
	Col, Row  int
	Left, Top float64
	W, H      float64
	Props     Properties
}

// Right returns the x-coordinate of the right edge.
func (c Cell) Right() float64 { return c.Left + c.W }

// Bottom returns the y-coordinate of the bottom edge.
func (c Cell) Bottom() float64 { return c.Top + c.H }

// Rect returns the cell as a world rectangle.
func (c Cell) Rect() core.RectF {
	return core.NewRectF(c.Left, c.Top, c.W, c.H)
}

// Blocks reports whether the cell blocks movement across the given side:
// 'l' (entering from the left), 'r', 't' (landing on top) or 'b'.
func (c Cell) Blocks(side byte) bool {
	return strings.IndexByte(c.Props.Get(PropBlockers), side) >= 0
}

// TriggerLayer is a sparse grid of tagged cells.
type TriggerLayer struct {
	cols, rows   int
	tileW, tileH float64
	cells        *intmap.Map[int, Properties]
}

// NewTriggerLayer creates an empty trigger layer.
func NewTriggerLayer(cols, rows, tileW, tileH int) *TriggerLayer {
	return &TriggerLayer{
		cols:  cols,
		rows:  rows,
		tileW: float64(tileW),
		tileH: float64(tileH),
		cells: intmap.New[int, Properties](64),
	}
}

// Set tags the cell at (col, row), merging with any existing properties.
// Out-of-range cells are ignored.
func (l *TriggerLayer) Set(col, row int, props Properties) {
	if col < 0 || col >= l.cols || row < 0 || row >= l.rows || len(props) == 0 {
		return
	}
	key := row*l.cols + col
	merged, ok := l.cells.Get(key)
	if !ok {
		merged = make(Properties, len(props))
	}
	for k, v := range props {
		merged[k] = v
	}
	l.cells.Put(key, merged)
}

// At returns the cell at (col, row) if it carries any tag.
func (l *TriggerLayer) At(col, row int) (Cell, bool) {
	if col < 0 || col >= l.cols || row < 0 || row >= l.rows {
		return Cell{}, false
	}
	props, ok := l.cells.Get(row*l.cols + col)
	if !ok {
		return Cell{}, false
	}
	return l.cell(col, row, props), true
}

// Len returns the number of tagged cells.
func (l *TriggerLayer) Len() int {
	return l.cells.Len()
}

func (l *TriggerLayer) cell(col, row int, props Properties) Cell {
	return Cell{
		Col:   col,
		Row:   row,
		Left:  float64(col) * l.tileW,
		Top:   float64(row) * l.tileH,
		W:     l.tileW,
		H:     l.tileH,
		Props: props,
	}
}

// Collide returns the cells carrying prop that overlap r, in row-major order.
func (l *TriggerLayer) Collide(r core.RectF, prop string) []Cell {
	c0 := core.Max(0, int(math.Floor(r.Left()/l.tileW)))
	r0 := core.Max(0, int(math.Floor(r.Top()/l.tileH)))
	c1 := core.Min(l.cols-1, int(math.Ceil(r.Right()/l.tileW))-1)
	r1 := core.Min(l.rows-1, int(math.Ceil(r.Bottom()/l.tileH))-1)

	var hits []Cell
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			props, ok := l.cells.Get(row*l.cols + col)
			if !ok || !props.Has(prop) {
				continue
			}
			c := l.cell(col, row, props)
			if c.Rect().Intersects(r) {
				hits = append(hits, c)
			}
		}
	}
	return hits
}

// Find returns every cell carrying prop, in row-major order.
func (l *TriggerLayer) Find(prop string) []Cell {
	var found []Cell
	for row := 0; row < l.rows; row++ {
		for col := 0; col < l.cols; col++ {
			props, ok := l.cells.Get(row*l.cols + col)
			if ok && props.Has(prop) {
				found = append(found, l.cell(col, row, props))
			}
		}
	}
	return found
}

// Map is a complete tile map.
type Map struct {
	Cols, Rows   int
	TileW, TileH int
	Tiles        *TileLayer
	Triggers     *TriggerLayer
}

// New creates an empty map of the given size.
func New(cols, rows, tileW, tileH int) *Map {
	return &Map{
		Cols:     cols,
		Rows:     rows,
		TileW:    tileW,
		TileH:    tileH,
		Tiles:    NewTileLayer(cols, rows),
		Triggers: NewTriggerLayer(cols, rows, tileW, tileH),
	}
}

// PixelWidth returns the map width in world pixels.
func (m *Map) PixelWidth() float64 {
	return float64(m.Cols * m.TileW)
}

// PixelHeight returns the map height in world pixels.
func (m *Map) PixelHeight() float64 {
	return float64(m.Rows * m.TileH)
}

// CellRect returns the world rectangle of the cell at (col, row).
func (m *Map) CellRect(col, row int) core.RectF {
	return core.NewRectF(float64(col*m.TileW), float64(row*m.TileH), float64(m.TileW), float64(m.TileH))
}
