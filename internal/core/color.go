package core

import "strings"

// Color represents a foreground color for a screen cell.
// Values map onto ANSI colors in the terminal and onto RGB in the window.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
	"grey":           ColorGray,
	"brown":          ColorBrown,
}

// ParseColor converts a color name like "bright_green" to a Color.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// RGB returns an approximate 24-bit value for the color.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 170, 0, 0
	case ColorGreen:
		return 0, 170, 0
	case ColorYellow:
		return 170, 170, 0
	case ColorBlue:
		return 0, 0, 170
	case ColorMagenta:
		return 170, 0, 170
	case ColorCyan:
		return 0, 170, 170
	case ColorWhite:
		return 200, 200, 200
	case ColorBrightRed:
		return 255, 85, 85
	case ColorBrightGreen:
		return 85, 255, 85
	case ColorBrightYellow:
		return 255, 255, 85
	case ColorBrightBlue:
		return 85, 85, 255
	case ColorBrightMagenta:
		return 255, 85, 255
	case ColorBrightCyan:
		return 85, 255, 255
	case ColorBrightWhite:
		return 255, 255, 255
	case ColorOrange:
		return 255, 135, 0
	case ColorGray:
		return 138, 138, 138
	case ColorBrown:
		return 135, 95, 0
	default:
		return 220, 220, 220
	}
}
