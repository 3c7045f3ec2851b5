package renderer

import (
	"fmt"
	"image/color"
	"strings"
)

// ColorTheme selects a Palette
type ColorTheme int

const (
	ThemeClassic ColorTheme = iota
	ThemeKiCad2020
	ThemeBlueTone
	ThemeEagle
	ThemeNord
)

// ThemeNames maps theme enum to the name used in configuration files
var ThemeNames = map[ColorTheme]string{
	ThemeClassic:   "classic",
	ThemeKiCad2020: "kicad2020",
	ThemeBlueTone:  "bluetone",
	ThemeEagle:     "eagle",
	ThemeNord:      "nord",
}

func (t ColorTheme) String() string {
	if name, ok := ThemeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ColorTheme(%d)", int(t))
}

// ParseTheme looks up a theme by name, ignoring case
func ParseTheme(name string) (ColorTheme, error) {
	for t, n := range ThemeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return ThemeClassic, fmt.Errorf("unknown color theme %q", name)
}

// Palette holds the colors used to draw a document.
// Copper layers are colored by their position in the layer stack.
type Palette struct {
	Copper     []color.NRGBA
	Outline    color.NRGBA // image outlines and non-copper shapes
	Boundary   color.NRGBA
	Keepout    color.NRGBA
	Pad        color.NRGBA
	Highlight  color.NRGBA
	Text       color.NRGBA
	Substrate  color.NRGBA
	Background color.NRGBA
}

// CopperColor returns the color of the copper layer at stack index i
func (p Palette) CopperColor(i int) color.NRGBA {
	if i < 0 || len(p.Copper) == 0 {
		return p.Outline
	}
	return p.Copper[i%len(p.Copper)]
}

var (
	colorPad        = color.NRGBA{R: 227, G: 183, B: 46, A: 255}  // gold
	colorHighlight  = color.NRGBA{R: 255, G: 255, B: 0, A: 255}   // bright yellow
	colorBackground = color.NRGBA{R: 0, G: 16, B: 35, A: 255}     // dark blue
	colorUnknown    = color.NRGBA{R: 128, G: 128, B: 128, A: 255} // gray
)

var palettes = map[ColorTheme]Palette{
	ThemeClassic: {
		Copper: []color.NRGBA{
			{R: 200, G: 52, B: 52, A: 255},  // front (red)
			{R: 77, G: 127, B: 196, A: 255}, // back (blue)
			{R: 127, G: 200, B: 127, A: 255},
			{R: 206, G: 125, B: 44, A: 255},
		},
		Outline:    color.NRGBA{R: 242, G: 237, B: 161, A: 255},
		Boundary:   color.NRGBA{R: 208, G: 210, B: 205, A: 255},
		Keepout:    color.NRGBA{R: 255, G: 38, B: 226, A: 90},
		Pad:        colorPad,
		Highlight:  colorHighlight,
		Text:       color.NRGBA{R: 242, G: 237, B: 161, A: 255},
		Substrate:  color.NRGBA{R: 20, G: 90, B: 50, A: 255},
		Background: colorBackground,
	},
	ThemeKiCad2020: {
		Copper: []color.NRGBA{
			{R: 179, G: 31, B: 31, A: 255},
			{R: 12, G: 98, B: 179, A: 255},
			{R: 194, G: 194, B: 0, A: 255},
			{R: 194, G: 0, B: 194, A: 255},
		},
		Outline:    color.NRGBA{R: 242, G: 237, B: 161, A: 255},
		Boundary:   color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		Keepout:    color.NRGBA{R: 255, G: 0, B: 255, A: 90},
		Pad:        colorPad,
		Highlight:  colorHighlight,
		Text:       color.NRGBA{R: 242, G: 237, B: 161, A: 255},
		Substrate:  color.NRGBA{R: 25, G: 95, B: 55, A: 255},
		Background: colorBackground,
	},
	ThemeBlueTone: {
		Copper: []color.NRGBA{
			{R: 72, G: 72, B: 200, A: 255},
			{R: 0, G: 132, B: 132, A: 255},
			{R: 127, G: 200, B: 200, A: 255},
			{R: 91, G: 195, B: 235, A: 255},
		},
		Outline:    color.NRGBA{R: 242, G: 242, B: 255, A: 255},
		Boundary:   color.NRGBA{R: 208, G: 210, B: 255, A: 255},
		Keepout:    color.NRGBA{R: 150, G: 150, B: 255, A: 90},
		Pad:        colorPad,
		Highlight:  colorHighlight,
		Text:       color.NRGBA{R: 242, G: 242, B: 255, A: 255},
		Substrate:  color.NRGBA{R: 20, G: 60, B: 90, A: 255},
		Background: colorBackground,
	},
	ThemeEagle: {
		Copper: []color.NRGBA{
			{R: 204, G: 0, B: 0, A: 255},
			{R: 0, G: 0, B: 204, A: 255},
			{R: 194, G: 194, B: 0, A: 255},
			{R: 194, G: 0, B: 194, A: 255},
		},
		Outline:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Boundary:   color.NRGBA{R: 255, G: 255, B: 0, A: 255},
		Keepout:    color.NRGBA{R: 255, G: 0, B: 255, A: 90},
		Pad:        colorPad,
		Highlight:  colorHighlight,
		Text:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Substrate:  color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Background: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
	},
	ThemeNord: {
		Copper: []color.NRGBA{
			{R: 191, G: 97, B: 106, A: 255},  // Nord11
			{R: 129, G: 161, B: 193, A: 255}, // Nord9
			{R: 163, G: 190, B: 140, A: 255}, // Nord14
			{R: 235, G: 203, B: 139, A: 255}, // Nord13
		},
		Outline:    color.NRGBA{R: 236, G: 239, B: 244, A: 255},
		Boundary:   color.NRGBA{R: 229, G: 233, B: 240, A: 255},
		Keepout:    color.NRGBA{R: 180, G: 142, B: 173, A: 90},
		Pad:        color.NRGBA{R: 235, G: 203, B: 139, A: 255},
		Highlight:  colorHighlight,
		Text:       color.NRGBA{R: 236, G: 239, B: 244, A: 255},
		Substrate:  color.NRGBA{R: 46, G: 52, B: 64, A: 255},
		Background: color.NRGBA{R: 36, G: 41, B: 51, A: 255},
	},
}

// PaletteFor returns the palette of a theme, falling back to classic
func PaletteFor(theme ColorTheme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[ThemeClassic]
}
