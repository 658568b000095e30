package viewer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/battlepath/internal/render"
)

// EbitenSurface is a render.Surface backed by an offscreen ebiten image. The
// image is reallocated only when the pixel size changes.
type EbitenSurface struct {
	img   *ebiten.Image
	scale float64
}

// Image returns the backing image, or nil before the first Reset.
func (s *EbitenSurface) Image() *ebiten.Image { return s.img }

// Scale returns the pixel density of the last Reset.
func (s *EbitenSurface) Scale() float64 { return s.scale }

func (s *EbitenSurface) Reset(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	pw := max(1, int(math.Ceil(float64(width)*scale)))
	ph := max(1, int(math.Ceil(float64(height)*scale)))
	if s.img == nil || s.img.Bounds().Dx() != pw || s.img.Bounds().Dy() != ph {
		if s.img != nil {
			s.img.Deallocate()
		}
		s.img = ebiten.NewImage(pw, ph)
	} else {
		s.img.Clear()
	}
	s.scale = scale
}

func (s *EbitenSurface) FillRect(x, y, w, h float32, c color.Color) {
	k := float32(s.scale)
	vector.FillRect(s.img, x*k, y*k, w*k, h*k, c, false)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float32, c color.Color) {
	k := float32(s.scale)
	vector.FillCircle(s.img, cx*k, cy*k, r*k, c, true)
}

func (s *EbitenSurface) StrokeCircle(cx, cy, r, width float32, c color.Color) {
	k := float32(s.scale)
	vector.StrokeCircle(s.img, cx*k, cy*k, r*k, width*k, c, true)
}

// StrokePolyline draws each segment with round joins so the path reads as one
// continuous line.
func (s *EbitenSurface) StrokePolyline(pts []render.Point, width float32, c color.Color) {
	k := float32(s.scale)
	w := width * k
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		vector.StrokeLine(s.img, a.X*k, a.Y*k, b.X*k, b.Y*k, w, c, true)
	}
	for _, p := range pts {
		vector.FillCircle(s.img, p.X*k, p.Y*k, w/2, c, true)
	}
}
