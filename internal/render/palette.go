package render

import (
	"image/color"
	"math"

	"github.com/Garsondee/battlepath/internal/model"
)

// terrainColors maps each TerrainKind to its fill colour. Unknown kinds use
// the open-ground colour.
var terrainColors = [...]color.NRGBA{
	model.TerrainOpen:     {R: 0xe6, G: 0xe6, B: 0xdc, A: 0xff},
	model.TerrainForest:   {R: 0x78, G: 0xaa, B: 0x78, A: 0xff},
	model.TerrainWater:    {R: 0x78, G: 0xa0, B: 0xc8, A: 0xff},
	model.TerrainUrban:    {R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff},
	model.TerrainMountain: {R: 0xb4, G: 0x96, B: 0x6b, A: 0xff},
	model.TerrainBlocked:  {R: 0x28, G: 0x28, B: 0x28, A: 0xff},
}

var (
	threatFill    = color.NRGBA{R: 150, G: 0, B: 0, A: alpha8(0.9)}
	threatOutline = color.NRGBA{R: 150, G: 0, B: 0, A: alpha8(0.5)}
	startFill     = color.NRGBA{R: 50, G: 120, B: 255, A: alpha8(0.95)}
	goalFill      = color.NRGBA{R: 255, G: 80, B: 80, A: alpha8(0.95)}
	pathStroke    = color.NRGBA{R: 0, G: 0, B: 0, A: 0xff}
)

// legendStops is the fixed green -> yellow -> red ramp at 0, 0.5 and 1.
var legendStops = [3]color.NRGBA{
	{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
	{R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
	{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
}

// TerrainColor returns the fill colour for k.
func TerrainColor(k model.TerrainKind) color.NRGBA {
	if int(k) >= len(terrainColors) {
		return terrainColors[model.TerrainOpen]
	}
	return terrainColors[k]
}

// LegendColor samples the legend ramp at t, clamped to [0, 1]. The ramp is
// independent of the data being displayed.
func LegendColor(t float64) color.NRGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a, b := legendStops[0], legendStops[1]
	f := t / 0.5
	if t > 0.5 {
		a, b = legendStops[1], legendStops[2]
		f = (t - 0.5) / 0.5
	}
	return color.NRGBA{
		R: lerp8(a.R, b.R, f),
		G: lerp8(a.G, b.G, f),
		B: lerp8(a.B, b.B, f),
		A: 0xff,
	}
}

// OverlayColor is the risk wash for a cell with the given alpha in [0, 1].
func OverlayColor(alpha float64) color.NRGBA {
	return color.NRGBA{R: 255, G: 0, B: 0, A: alpha8(alpha)}
}

func alpha8(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 0xff
	}
	return uint8(math.Round(a * 255))
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
