package tilemap

import "github.com/vovakirdan/tilejump/internal/core"

// TileKind identifies how a visual tile is drawn.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileGround
	TileBrick
	TilePlatform
	TileDecor
)

// Glyph returns the terminal rune and color for a tile kind.
func (k TileKind) Glyph() (rune, core.Color) {
	switch k {
	case TileGround:
		return '█', core.ColorBrown
	case TileBrick:
		return '▓', core.ColorOrange
	case TilePlatform:
		return '▔', core.ColorGray
	case TileDecor:
		return '░', core.ColorGreen
	default:
		return ' ', core.ColorDefault
	}
}

// TileLayer is the dense grid of visual tiles.
type TileLayer struct {
	cols, rows int
	kinds      []TileKind
	colors     []core.Color // zero means "use the kind's default"
}

// NewTileLayer creates an empty tile layer.
func NewTileLayer(cols, rows int) *TileLayer {
	return &TileLayer{
		cols:   cols,
		rows:   rows,
		kinds:  make([]TileKind, cols*rows),
		colors: make([]core.Color, cols*rows),
	}
}

// Set places a tile. Out-of-range cells are ignored.
func (t *TileLayer) Set(col, row int, kind TileKind) {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return
	}
	t.kinds[row*t.cols+col] = kind
}

// SetColor overrides the color of a placed tile.
func (t *TileLayer) SetColor(col, row int, c core.Color) {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return
	}
	t.colors[row*t.cols+col] = c
}

// At returns the tile kind at (col, row), or TileEmpty out of range.
func (t *TileLayer) At(col, row int) TileKind {
	if col < 0 || col >= t.cols || row < 0 || row >= t.rows {
		return TileEmpty
	}
	return t.kinds[row*t.cols+col]
}

// Glyph returns the rune and color to draw at (col, row).
func (t *TileLayer) Glyph(col, row int) (rune, core.Color) {
	r, c := t.At(col, row).Glyph()
	if col >= 0 && col < t.cols && row >= 0 && row < t.rows {
		if override := t.colors[row*t.cols+col]; override != core.ColorDefault {
			c = override
		}
	}
	return r, c
}

// Count returns how many non-empty tiles the layer holds.
func (t *TileLayer) Count() int {
	n := 0
	for _, k := range t.kinds {
		if k != TileEmpty {
			n++
		}
	}
	return n
}
