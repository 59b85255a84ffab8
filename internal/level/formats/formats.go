// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tilejump/internal/tilemap"
)

// Level is a parsed level ready for validation.
type Level struct {
	ID       string
	Name     string
	Map      *tilemap.Map
	Metadata map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".tmx", ".yaml", ".yml"}
}

// Parse routes data to the parser for the given extension.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".tmx":
		return ParseTMX(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// ParseTileKind converts a tile kind name like "brick" to a TileKind.
func ParseTileKind(name string) (tilemap.TileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "empty", "none":
		return tilemap.TileEmpty, true
	case "ground", "solid":
		return tilemap.TileGround, true
	case "brick":
		return tilemap.TileBrick, true
	case "platform":
		return tilemap.TilePlatform, true
	case "decor", "grass":
		return tilemap.TileDecor, true
	default:
		return tilemap.TileEmpty, false
	}
}
