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
	ColorBrown
	ColorPurple
)

// BlockPalette is the cycle of colours given to successive tower blocks.
var BlockPalette = []Color{
	ColorBrightRed,
	ColorCyan,
	ColorBlue,
	ColorGreen,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightBlue,
	ColorPurple,
	ColorBrightCyan,
	ColorOrange,
}

// PaletteColor returns the palette entry for the i-th block.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return BlockPalette[i%len(BlockPalette)]
}
