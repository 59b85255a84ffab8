package formats

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// YAMLLevel is the on-disk structure of an ASCII level file.
type YAMLLevel struct {
	ID       string                     `yaml:"id"`
	Name     string                     `yaml:"name"`
	Tile     YAMLSize                   `yaml:"tile"`
	Legend   map[string]YAMLLegendEntry `yaml:"legend,omitempty"`
	Rows     []string                   `yaml:"rows"`
	Metadata map[string]string          `yaml:"metadata,omitempty"`
}

// YAMLSize is a tile size in pixels.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLLegendEntry describes what one map character means.
type YAMLLegendEntry struct {
	Tile     string            `yaml:"tile,omitempty"`
	Color    string            `yaml:"color,omitempty"`
	Blockers string            `yaml:"blockers,omitempty"`
	Props    map[string]string `yaml:"props,omitempty"`
}

// DefaultLegend is used for characters a level does not define itself.
func DefaultLegend() map[rune]YAMLLegendEntry {
	return map[rune]YAMLLegendEntry{
		'#': {Tile: "ground", Blockers: "lrtb"},
		'B': {Tile: "brick", Blockers: "lrtb"},
		'=': {Tile: "platform", Blockers: "t"},
		'"': {Tile: "decor"},
		'P': {Props: map[string]string{tilemap.PropPlayer: ""}},
		'E': {Props: map[string]string{tilemap.PropEnemy: ""}},
		'|': {Props: map[string]string{tilemap.PropReverse: ""}},
	}
}

// ParseYAML parses an ASCII-art level.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	tw, th := yl.Tile.W, yl.Tile.H
	if tw <= 0 {
		tw = 32
	}
	if th <= 0 {
		th = 32
	}

	cols := 0
	for _, row := range yl.Rows {
		cols = core.Max(cols, utf8.RuneCountInString(row))
	}

	legend := DefaultLegend()
	for key, entry := range yl.Legend {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) {
			return Level{}, fmt.Errorf("legend key %q must be a single character", key)
		}
		legend[r] = entry
	}

	m := tilemap.New(cols, len(yl.Rows), tw, th)
	for row, line := range yl.Rows {
		col := 0
		for _, ch := range line {
			if entry, ok := legend[ch]; ok {
				if err := applyLegend(m, col, row, entry); err != nil {
					return Level{}, fmt.Errorf("row %d col %d (%q): %w", row, col, ch, err)
				}
			}
			col++
		}
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Map:      m,
		Metadata: yl.Metadata,
	}, nil
}

func applyLegend(m *tilemap.Map, col, row int, e YAMLLegendEntry) error {
	kind, ok := ParseTileKind(e.Tile)
	if !ok {
		return fmt.Errorf("unknown tile kind %q", e.Tile)
	}
	m.Tiles.Set(col, row, kind)
	if e.Color != "" {
		c, ok := core.ParseColor(e.Color)
		if !ok {
			return fmt.Errorf("unknown color %q", e.Color)
		}
		m.Tiles.SetColor(col, row, c)
	}

	props := make(tilemap.Properties, len(e.Props)+1)
	for k, v := range e.Props {
		props[k] = v
	}
	if e.Blockers != "" {
		props[tilemap.PropBlockers] = e.Blockers
	}
	m.Triggers.Set(col, row, props)
	return nil
}
