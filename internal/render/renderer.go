package render

import (
	"math"

	"github.com/Garsondee/battlepath/internal/model"
)

// maxOverlayAlpha caps the normalised risk before it is scaled to the wash.
const maxOverlayAlpha = 0.9

// overlayStrength scales the capped value into the final alpha.
const overlayStrength = 0.6

// Renderer paints a session onto a Surface. It holds no session state; every
// call draws the whole frame from its arguments.
type Renderer struct {
	// Scale is the device pixel density applied on every Reset (<= 0 means 1).
	Scale float64
}

// NewRenderer returns a renderer for the given device pixel density.
func NewRenderer(scale float64) *Renderer {
	return &Renderer{Scale: scale}
}

// Render draws grid, risk overlay, threats, start/goal and the scenario's
// full path.
func (r *Renderer) Render(dst Surface, g *model.Grid, sc *model.Scenario, riskOverlay bool, cellSize int) {
	r.RenderPath(dst, g, sc, riskOverlay, cellSize, sc.Path)
}

// RenderPath is Render with an explicit path, typically an animation prefix.
func (r *Renderer) RenderPath(dst Surface, g *model.Grid, sc *model.Scenario, riskOverlay bool, cellSize int, path []model.Cell) {
	if g == nil || cellSize <= 0 {
		return
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	dst.Reset(g.Cols()*cellSize, g.Rows()*cellSize, scale)
	cs := float32(cellSize)

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			k := g.At(model.Cell{Row: row, Col: col})
			dst.FillRect(float32(col)*cs, float32(row)*cs, cs-1, cs-1, TerrainColor(k))
		}
	}

	if sc == nil {
		return
	}
	if riskOverlay && sc.Risk != nil {
		drawRiskOverlay(dst, g, sc.Risk, cs)
	}

	for _, t := range sc.Threats {
		c := CellCenter(t.Cell(), cellSize)
		dst.FillCircle(c.X, c.Y, ThreatDiscRadius(cellSize), threatFill)
		dst.StrokeCircle(c.X, c.Y, ThreatOutlineRadius(t.Radius, cellSize), 1, threatOutline)
	}

	if sc.Start != nil {
		s := *sc.Start
		inset := cs * 0.12
		edge := cs * 0.75
		dst.FillRect(float32(s.Col)*cs+inset, float32(s.Row)*cs+inset, edge, edge, startFill)
	}
	if sc.Goal != nil {
		c := CellCenter(*sc.Goal, cellSize)
		dst.FillCircle(c.X, c.Y, GoalRadius(cellSize), goalFill)
	}

	if len(path) > 0 {
		pts := make([]Point, len(path))
		for i, p := range path {
			pts[i] = CellCenter(p, cellSize)
		}
		dst.StrokePolyline(pts, PathWidth(cellSize), pathStroke)
	}
}

// drawRiskOverlay washes cells red in proportion to their risk. Cells with no
// usable value are skipped so missing data never looks like zero risk.
func drawRiskOverlay(dst Surface, g *model.Grid, risk model.RiskField, cs float32) {
	maxRisk := model.PositiveRiskMax(risk)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			v, ok := risk.At(model.Cell{Row: row, Col: col})
			if !ok {
				continue
			}
			a, ok := OverlayAlpha(v, maxRisk)
			if !ok {
				continue
			}
			dst.FillRect(float32(col)*cs, float32(row)*cs, cs-1, cs-1, OverlayColor(a))
		}
	}
}

// OverlayAlpha returns min(0.9, v/maxRisk)*0.6 for finite v > 0. The second
// result is false when the cell should be left unpainted.
func OverlayAlpha(v, maxRisk float64) (float64, bool) {
	if !model.IsFinite(v) || v <= 0 {
		return 0, false
	}
	if maxRisk <= 0 || !model.IsFinite(maxRisk) {
		maxRisk = 1
	}
	return math.Min(maxOverlayAlpha, v/maxRisk) * overlayStrength, true
}

// CellCenter returns the logical pixel centre of c.
func CellCenter(c model.Cell, cellSize int) Point {
	cs := float32(cellSize)
	return Point{X: float32(c.Col)*cs + cs/2, Y: float32(c.Row)*cs + cs/2}
}

// ThreatDiscRadius is the radius of the filled threat marker.
func ThreatDiscRadius(cellSize int) float32 {
	return max32(4, float32(cellSize)/3)
}

// ThreatOutlineRadius is the influence ring radius, floored at 6px so small
// radii stay visible.
func ThreatOutlineRadius(radius float64, cellSize int) float32 {
	return max32(6, float32(radius)*float32(cellSize)/2)
}

// GoalRadius is the radius of the goal disc.
func GoalRadius(cellSize int) float32 {
	return max32(6, float32(cellSize)*0.28)
}

// PathWidth is the path stroke width.
func PathWidth(cellSize int) float32 {
	return max32(2, float32(cellSize)/6)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
