package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
)

// LayerColors is the palette the stacker cycles through, one per layer.
var LayerColors = []Color{
	ColorBrightCyan,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightRed,
	ColorOrange,
	ColorBrightYellow,
	ColorBrightGreen,
}

// LayerColor returns the palette entry for a stack layer.
func LayerColor(level int) Color {
	if level < 0 {
		level = -level
	}
	return LayerColors[level%len(LayerColors)]
}
