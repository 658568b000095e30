package viewer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/battlepath/internal/render"
)

const (
	legendBarHeight = 12
	legendFontSize  = 11
)

// legend draws the risk colour ramp with its numeric bounds.
type legend struct {
	src *text.GoTextFaceSource
}

func newLegend() *legend {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		// The embedded font always parses; fall back to no labels otherwise.
		return &legend{}
	}
	return &legend{src: src}
}

// Draw paints the ramp at (x, y) in screen pixels, w wide, with lo and hi
// printed under its ends.
func (l *legend) Draw(screen *ebiten.Image, x, y, w, scale, lo, hi float64) {
	h := float32(legendBarHeight * scale)
	cols := int(w)
	for i := 0; i < cols; i++ {
		t := float64(i) / float64(max(1, cols-1))
		vector.FillRect(screen, float32(x)+float32(i), float32(y), 1, h, render.LegendColor(t), false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), h, 1, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	if l.src == nil {
		return
	}
	face := &text.GoTextFace{Source: l.src, Size: legendFontSize * scale}
	ty := y + float64(h) + 2*scale
	l.label(screen, face, fmt.Sprintf("%.3f", lo), x, ty)
	hiText := fmt.Sprintf("%.3f", hi)
	tw, _ := text.Measure(hiText, face, 0)
	l.label(screen, face, hiText, x+w-tw, ty)
}

func (l *legend) label(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 210, B: 200, A: 255})
	text.Draw(screen, s, face, op)
}
