package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilejump/internal/core"
)

func newTestMap() *Map {
	m := New(10, 6, 32, 32)
	for col := 0; col < 10; col++ {
		m.Triggers.Set(col, 5, Properties{PropBlockers: "lrtb"})
		m.Tiles.Set(col, 5, TileGround)
	}
	m.Triggers.Set(1, 4, Properties{PropPlayer: ""})
	m.Triggers.Set(6, 4, Properties{PropEnemy: ""})
	m.Triggers.Set(3, 4, Properties{PropReverse: ""})
	m.Triggers.Set(8, 4, Properties{PropReverse: ""})
	return m
}

func TestTriggerLayerFindIsRowMajor(t *testing.T) {
	m := newTestMap()

	reverse := m.Triggers.Find(PropReverse)
	require.Len(t, reverse, 2)
	assert.Equal(t, 3, reverse[0].Col)
	assert.Equal(t, 8, reverse[1].Col)

	start := m.Triggers.Find(PropPlayer)
	require.Len(t, start, 1)
	assert.Equal(t, 32.0, start[0].Left)
	assert.Equal(t, 128.0, start[0].Top)
}

func TestTriggerLayerCollide(t *testing.T) {
	m := newTestMap()

	t.Run("resting on top touches nothing", func(t *testing.T) {
		r := core.NewRectF(40, 128, 24, 32) // bottom edge == ground top
		assert.Empty(t, m.Triggers.Collide(r, PropBlockers))
	})

	t.Run("sinking into ground hits the cells below", func(t *testing.T) {
		r := core.NewRectF(40, 130, 30, 32)
		hits := m.Triggers.Collide(r, PropBlockers)
		require.Len(t, hits, 2)
		assert.Equal(t, 1, hits[0].Col)
		assert.Equal(t, 2, hits[1].Col)
	})

	t.Run("filters by property", func(t *testing.T) {
		r := core.NewRectF(96, 128, 32, 32)
		assert.Len(t, m.Triggers.Collide(r, PropReverse), 1)
		assert.Empty(t, m.Triggers.Collide(r, PropEnemy))
	})

	t.Run("outside the map", func(t *testing.T) {
		r := core.NewRectF(-100, -100, 20, 20)
		assert.Empty(t, m.Triggers.Collide(r, PropBlockers))
	})
}

func TestTriggerLayerSetMerges(t *testing.T) {
	l := NewTriggerLayer(4, 4, 16, 16)
	l.Set(1, 1, Properties{PropBlockers: "t"})
	l.Set(1, 1, Properties{PropReverse: ""})
	l.Set(9, 9, Properties{PropEnemy: ""}) // ignored

	c, ok := l.At(1, 1)
	require.True(t, ok)
	assert.True(t, c.Blocks('t'))
	assert.False(t, c.Blocks('l'))
	assert.True(t, c.Props.Has(PropReverse))
	assert.Equal(t, 1, l.Len())
}

func TestViewportClamps(t *testing.T) {
	m := New(40, 15, 32, 32) // 1280x480
	v := NewViewport(m, 640, 480)

	v.SetFocus(0, 0)
	assert.Equal(t, 320.0, v.FX)
	assert.Equal(t, 240.0, v.FY)

	v.SetFocus(5000, 100)
	assert.Equal(t, 960.0, v.FX)
	assert.Equal(t, core.NewRectF(640, 0, 640, 480), v.Rect())

	v.SetFocus(700, 240)
	x, y := v.Origin()
	assert.Equal(t, 380.0, x)
	assert.Equal(t, 0.0, y)
}

func TestViewportSmallerMapPinsToOrigin(t *testing.T) {
	m := New(5, 5, 32, 32)
	v := NewViewport(m, 640, 480)
	v.SetFocus(100, 100)

	x, y := v.Origin()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestTileLayerGlyphOverride(t *testing.T) {
	l := NewTileLayer(3, 3)
	l.Set(0, 0, TileBrick)
	l.SetColor(0, 0, core.ColorRed)

	r, c := l.Glyph(0, 0)
	assert.Equal(t, '▓', r)
	assert.Equal(t, core.ColorRed, c)
	assert.Equal(t, TileEmpty, l.At(5, 5))
	assert.Equal(t, 1, l.Count())
}
