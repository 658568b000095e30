// Package viewer is the desktop front end: an ebiten Game that polls input,
// drives the editor and animator, talks to the planner asynchronously and
// draws the grid, legend and side panel.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/battlepath/internal/config"
	"github.com/Garsondee/battlepath/internal/editor"
	"github.com/Garsondee/battlepath/internal/logx"
	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/planner"
	"github.com/Garsondee/battlepath/internal/render"
)

// borderWidth is the logical pixel gap between the window edge and the grid.
const borderWidth = 24

// legendHeight is the space reserved under the grid for the risk legend.
const legendHeight = 44

// Planner is the subset of the planner client the viewer needs.
type Planner interface {
	FetchMap(ctx context.Context) (*model.Grid, error)
	ComputePath(ctx context.Context, req planner.PathRequest) (*planner.PathResponse, error)
	Randomize(ctx context.Context) ([]model.Threat, error)
}

type Game struct {
	cfg     *config.Config
	log     *logx.Logger
	planner Planner

	session  *model.Session // nil until the first map arrives
	ctrl     *editor.Controller
	anim     *editor.Animator
	status   *editor.StatusLog
	renderer *render.Renderer
	tracker  planner.Tracker
	results  chan result

	ctx    context.Context
	cancel context.CancelFunc

	cellSize    int
	riskOverlay bool
	showHUD     bool
	modeIndex   int

	// prefix is the animated part of the path; showPrefix selects it over
	// the full path.
	prefix     []model.Cell
	showPrefix bool

	lastSample *planner.RiskSample

	// Input edge detection.
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	prevCursor    [2]int

	// Window size in logical pixels, from Layout.
	outW, outH int
	scale      float64

	gridSurface *EbitenSurface
	dirty       bool
	hudBuf      *ebiten.Image
	legend      *legend
}

// New builds a viewer and starts loading the map.
func New(cfg *config.Config, p Planner, log *logx.Logger) *Game {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:         cfg,
		log:         log,
		planner:     p,
		anim:        editor.NewAnimator(nil),
		status:      editor.NewStatusLog(),
		renderer:    render.NewRenderer(1),
		results:     make(chan result, 8),
		ctx:         ctx,
		cancel:      cancel,
		cellSize:    config.ClampCellSize(cfg.CellSize),
		riskOverlay: cfg.RiskOverlay,
		showHUD:     true,
		prevKeys:    make(map[ebiten.Key]bool),
		outW:        cfg.WindowWidth,
		outH:        cfg.WindowHeight,
		scale:       1,
		gridSurface: &EbitenSurface{},
		dirty:       true,
		legend:      newLegend(),
	}
	g.ctrl = editor.NewController(cfg.DragMode, cfg.DefaultRadius, g.redraw)
	g.anim.OnStep = func(prefix []model.Cell) {
		g.prefix = prefix
		g.redraw()
	}
	g.status.Info("loading map from " + cfg.PlannerURL)
	g.requestMap()
	return g
}

// Close cancels outstanding planner requests.
func (g *Game) Close() { g.cancel() }

// Session returns the current session, or nil before the first map loads.
func (g *Game) Session() *model.Session { return g.session }

// Status returns the operator status log.
func (g *Game) Status() *editor.StatusLog { return g.status }

func (g *Game) redraw() { g.dirty = true }

func (g *Game) Update() error {
	g.drainResults()
	g.handleKeys()
	g.handlePointer()
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	g.anim.Advance(time.Second / time.Duration(tps))
	return nil
}

// handlePointer feeds edge-triggered mouse events to the controller.
func (g *Game) handlePointer() {
	if g.session == nil {
		return
	}
	down := isMouseButtonPressed(ebiten.MouseButtonLeft)
	mx, my := cursorPosition()
	px, py := g.toGrid(mx, my)
	switch {
	case down && !g.prevMouseLeft:
		g.ctrl.PointerDown(g.session, px, py, g.cellSize)
	case down && [2]int{mx, my} != g.prevCursor:
		g.ctrl.PointerMove(g.session, px, py, g.cellSize)
	case !down && g.prevMouseLeft:
		g.ctrl.PointerUp()
	}
	g.prevMouseLeft = down
	g.prevCursor = [2]int{mx, my}
}

// toGrid converts a cursor position in screen pixels to logical pixels
// relative to the grid origin.
func (g *Game) toGrid(mx, my int) (float64, float64) {
	s := g.scale
	if s <= 0 {
		s = 1
	}
	return float64(mx)/s - borderWidth, float64(my)/s - borderWidth
}

// setCellSize applies a zoom level, clamped to the configured range.
func (g *Game) setCellSize(n int) {
	n = config.ClampCellSize(n)
	if n != g.cellSize {
		g.cellSize = n
		g.redraw()
	}
}

// fitToWindow picks the largest cell size that shows the whole grid.
func (g *Game) fitToWindow() {
	if g.session == nil {
		return
	}
	grid := g.session.Grid()
	availW := g.outW - 2*borderWidth - panelWidth
	availH := g.outH - 2*borderWidth - legendHeight
	if grid.Cols() == 0 || grid.Rows() == 0 || availW <= 0 || availH <= 0 {
		return
	}
	g.setCellSize(min(availW/grid.Cols(), availH/grid.Rows()))
}

func (g *Game) currentScale() float64 {
	if g.cfg.DeviceScale > 0 {
		return g.cfg.DeviceScale
	}
	if s := deviceScale(); s > 0 {
		return s
	}
	return 1
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	s := g.scale

	legendY := float64(borderWidth*s) + 24*s
	if g.session == nil {
		ebitenutil.DebugPrintAt(screen, "loading map...", int(borderWidth*s), int(borderWidth*s))
	} else {
		if g.dirty || g.gridSurface.Scale() != s {
			g.renderGrid(s)
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(borderWidth*s, borderWidth*s)
		screen.DrawImage(g.gridSurface.Image(), &op)

		grid := g.session.Grid()
		gw := float32(grid.Cols()*g.cellSize) * float32(s)
		gh := float32(grid.Rows()*g.cellSize) * float32(s)
		ox, oy := float32(borderWidth*s), float32(borderWidth*s)
		vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

		legendY = float64(oy+gh) + 8*s
	}
	lo, hi := g.legendRange()
	g.legend.Draw(screen, float64(borderWidth*s), legendY, 240*s, s, lo, hi)

	g.drawPanel(screen)
}

// legendRange is the value span shown under the ramp; (0, 0) until a risk
// field arrives.
func (g *Game) legendRange() (lo, hi float64) {
	if g.session == nil {
		return model.ScaleRisk(nil)
	}
	return model.ScaleRisk(g.session.Scenario().Risk)
}

// renderGrid repaints the offscreen grid image from the session.
func (g *Game) renderGrid(scale float64) {
	sc := g.session.Scenario()
	path := sc.Path
	if g.showPrefix {
		path = g.prefix
	}
	g.renderer.Scale = scale
	g.renderer.RenderPath(g.gridSurface, g.session.Grid(), sc, g.riskOverlay, g.cellSize, path)
	g.dirty = false
}

// Layout reports a screen in device pixels so the grid renders crisply on
// high-density displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	if s := g.currentScale(); s != g.scale {
		g.scale = s
		g.hudBuf = nil
		g.redraw()
	}
	return int(math.Ceil(float64(outsideWidth) * g.scale)), int(math.Ceil(float64(outsideHeight) * g.scale))
}

// summary is the one-line description of the last planning result.
func summary(sc *model.Scenario) string {
	if !sc.HasPath() {
		return "no path"
	}
	return fmt.Sprintf("cost=%.2f len=%d", sc.Total, len(sc.Path))
}
