package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// RasterSurface draws into an in-memory RGBA image with an anti-aliasing
// rasterizer. It backs PNG export and headless rendering.
type RasterSurface struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float32
}

// NewRasterSurface returns an empty surface; call Reset before drawing.
func NewRasterSurface() *RasterSurface {
	return &RasterSurface{scale: 1}
}

// Image returns the current pixels. The image is replaced on every Reset.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// WritePNG encodes the current image.
func (s *RasterSurface) WritePNG(w io.Writer) error {
	if s.img == nil {
		return png.Encode(w, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}
	return png.Encode(w, s.img)
}

func (s *RasterSurface) Reset(width, height int, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.z = vector.NewRasterizer(pw, ph)
	s.z.DrawOp = draw.Over
	s.scale = float32(scale)
}

func (s *RasterSurface) FillRect(x, y, w, h float32, c color.Color) {
	if s.img == nil || w <= 0 || h <= 0 {
		return
	}
	s.polygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
	s.flush(c)
}

func (s *RasterSurface) FillCircle(cx, cy, r float32, c color.Color) {
	if s.img == nil || r <= 0 {
		return
	}
	s.circle(cx, cy, r, false)
	s.flush(c)
}

// StrokeCircle fills the ring between r-width/2 and r+width/2. The inner
// circle is wound the other way so the rasterizer leaves it empty.
func (s *RasterSurface) StrokeCircle(cx, cy, r, width float32, c color.Color) {
	if s.img == nil || r <= 0 || width <= 0 {
		return
	}
	s.circle(cx, cy, r+width/2, false)
	if inner := r - width/2; inner > 0 {
		s.circle(cx, cy, inner, true)
	}
	s.flush(c)
}

// StrokePolyline draws each segment as a quad with round joins and caps. All
// pieces share one winding so overlaps do not cancel.
func (s *RasterSurface) StrokePolyline(pts []Point, width float32, c color.Color) {
	if s.img == nil || len(pts) == 0 || width <= 0 {
		return
	}
	half := width / 2
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		s.polygon([]Point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
	}
	for _, p := range pts {
		s.circle(p.X, p.Y, half, false)
	}
	s.flush(c)
}

// polygon adds a closed path, reordered if needed so its signed area is
// positive (the same sense as circle with reverse=false).
func (s *RasterSurface) polygon(pts []Point) {
	var area float32
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	k := s.scale
	s.z.MoveTo(pts[0].X*k, pts[0].Y*k)
	for _, p := range pts[1:] {
		s.z.LineTo(p.X*k, p.Y*k)
	}
	s.z.ClosePath()
}

// circle adds a circle as four cubic arcs with increasing angle, or
// decreasing when reverse is set.
func (s *RasterSurface) circle(cx, cy, r float32, reverse bool) {
	k := s.scale
	cx, cy, r = cx*k, cy*k, r*k
	dir := float32(1)
	if reverse {
		dir = -1
	}
	at := func(q int) (float32, float32) {
		a := float64(q) * math.Pi / 2 * float64(dir)
		return float32(math.Cos(a)), float32(math.Sin(a))
	}
	x0, y0 := at(0)
	s.z.MoveTo(cx+r*x0, cy+r*y0)
	for q := 0; q < 4; q++ {
		ax, ay := at(q)
		bx, by := at(q + 1)
		// Tangent at angle θ in the travel direction is dir*(-sinθ, cosθ).
		c1x := ax - kappa*dir*ay
		c1y := ay + kappa*dir*ax
		c2x := bx + kappa*dir*by
		c2y := by - kappa*dir*bx
		s.z.CubeTo(cx+r*c1x, cy+r*c1y, cx+r*c2x, cy+r*c2y, cx+r*bx, cy+r*by)
	}
	s.z.ClosePath()
}

// flush composites the accumulated path in colour c and starts a new one.
func (s *RasterSurface) flush(c color.Color) {
	b := s.img.Bounds()
	s.z.Draw(s.img, b, image.NewUniform(c), image.Point{})
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}
