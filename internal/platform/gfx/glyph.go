package gfx

import (
	"image/color"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Debug font glyph size in pixels.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

var palette = map[core.Color]color.RGBA{
	core.ColorDefault:       {220, 220, 220, 255},
	core.ColorRed:           {205, 49, 49, 255},
	core.ColorGreen:         {13, 188, 121, 255},
	core.ColorYellow:        {229, 229, 16, 255},
	core.ColorBlue:          {36, 114, 200, 255},
	core.ColorMagenta:       {188, 63, 188, 255},
	core.ColorCyan:          {17, 168, 205, 255},
	core.ColorWhite:         {229, 229, 229, 255},
	core.ColorBrightRed:     {241, 76, 76, 255},
	core.ColorBrightGreen:   {35, 209, 139, 255},
	core.ColorBrightYellow:  {245, 245, 67, 255},
	core.ColorBrightBlue:    {59, 142, 234, 255},
	core.ColorBrightMagenta: {214, 112, 214, 255},
	core.ColorBrightCyan:    {41, 184, 219, 255},
	core.ColorBrightWhite:   {255, 255, 255, 255},
	core.ColorOrange:        {255, 135, 0, 255},
	core.ColorGray:          {138, 138, 138, 255},
}

func paletteColor(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// isText reports whether r is printable by the debug font.
func isText(r rune) bool {
	return r > ' ' && r < 0x7f
}

// glyphRect returns the shape drawn for r inside a cell of the given size,
// relative to the cell's top-left corner.
func glyphRect(r rune, cell float64) (x, y, w, h float64) {
	thin := cell / 4
	switch r {
	case '█', '▓', '▒', '░', '■':
		return 0, 0, cell, cell
	case '▀':
		return 0, 0, cell, cell / 2
	case '▄':
		return 0, cell / 2, cell, cell / 2
	case '│', '┃', '║':
		return (cell - thin) / 2, 0, thin, cell
	case '─', '━', '═':
		return 0, (cell - thin) / 2, cell, thin
	case '·', '•', '∙':
		return (cell - thin) / 2, (cell - thin) / 2, thin, thin
	}
	inset := cell / 6
	return inset, inset, cell - 2*inset, cell - 2*inset
}

// toCell converts a pixel position to fractional cell coordinates.
func toCell(px, py, cell int) (float64, float64) {
	return float64(px) / float64(cell), float64(py) / float64(cell)
}

// repeatDue reports whether a key held for d ticks fires this tick: once
// on the first tick, then every interval ticks after delay.
func repeatDue(d, delay, interval int) bool {
	if d <= 0 {
		return false
	}
	if d == 1 {
		return true
	}
	return d > delay && (d-delay)%interval == 0
}
