package viewer

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/battlepath/internal/editor"
	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/planner"
)

// panelWidth is the logical width of the side panel.
const panelWidth = 320

const (
	panelLineHeight = 14
	panelMaxThreats = 8
)

var hudKeys = []string{
	"LMB  toggle threat / drag",
	"G    drag mode",
	"O    risk overlay",
	"ENT  compute path",
	"SPC  animate  ESC stop",
	"R    randomize  X clear",
	"M    cycle mode",
	"[ ]  threat radius",
	"+ -  zoom  F fit",
	"P    export path",
	"^S ^O  save / load scenario",
	"^C ^V  copy / paste scenario",
	"^P  png  ^M meta  ^L map",
	"BKSP reload map  H help",
}

// panelLines builds the text rows of the side panel.
func (g *Game) panelLines() []string {
	lines := []string{
		"BATTLEPATH",
		"",
		fmt.Sprintf("planner: %s", g.cfg.PlannerURL),
	}
	var busy []string
	for _, k := range []planner.Kind{planner.KindMap, planner.KindPath, planner.KindRandomize} {
		if g.tracker.InFlight(k) {
			busy = append(busy, k.String())
		}
	}
	if len(busy) > 0 {
		lines = append(lines, "pending: "+strings.Join(busy, ", "))
	}
	lines = append(lines,
		fmt.Sprintf("drag=%s overlay=%s radius=%g cell=%d",
			onOff(g.ctrl.DragMode), onOff(g.riskOverlay), g.ctrl.DefaultRadius, g.cellSize),
	)
	if g.ctrl.State() != editor.DragIdle {
		lines = append(lines, "editor: "+g.ctrl.State().String())
	}
	if g.session == nil {
		return lines
	}

	sc := g.session.Scenario()
	grid := g.session.Grid()
	lines = append(lines,
		fmt.Sprintf("map %dx%d  mode %s", grid.Rows(), grid.Cols(), sc.Mode),
		fmt.Sprintf("start %s  goal %s", cellText(sc.Start), cellText(sc.Goal)),
		summary(sc),
	)
	if g.lastSample != nil {
		lines = append(lines, fmt.Sprintf("risk at start %s  goal %s",
			numberText(float64(g.lastSample.Start)), numberText(float64(g.lastSample.Goal))))
	}
	if g.anim.Running() {
		lines = append(lines, fmt.Sprintf("animating %d/%d", len(g.prefix), len(sc.Path)))
	}

	lines = append(lines, "", fmt.Sprintf("THREATS (%d)", len(sc.Threats)))
	for i, t := range sc.Threats {
		if i == panelMaxThreats {
			lines = append(lines, fmt.Sprintf("  ... %d more", len(sc.Threats)-i))
			break
		}
		lines = append(lines, fmt.Sprintf("  (%d,%d) range=%g", t.Row, t.Col, t.Radius))
	}
	if g.showHUD {
		lines = append(lines, "", "KEYS")
		for _, k := range hudKeys {
			lines = append(lines, "  "+k)
		}
	}
	return lines
}

// drawPanel renders the side panel at logical size and blits it scaled so
// the debug font stays legible on dense displays.
func (g *Game) drawPanel(screen *ebiten.Image) {
	h := max(1, g.outH)
	if g.hudBuf == nil || g.hudBuf.Bounds().Dy() != h {
		if g.hudBuf != nil {
			g.hudBuf.Deallocate()
		}
		g.hudBuf = ebiten.NewImage(panelWidth, h)
	}
	buf := g.hudBuf
	buf.Fill(color.RGBA{R: 10, G: 12, B: 10, A: 248})
	vector.StrokeLine(buf, 0, 0, 0, float32(h), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	y := 4
	for _, line := range g.panelLines() {
		ebitenutil.DebugPrintAt(buf, line, 8, y)
		y += panelLineHeight
	}

	// Status log fills the rest, newest at the bottom.
	y += panelLineHeight
	vector.FillRect(buf, 0, float32(y), panelWidth, 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(buf, "STATUS", 8, y+1)
	y += 20

	entries := g.status.Recent()
	maxVisible := max(0, (h-y)/panelLineHeight)
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	for i, e := range entries {
		latest := i == len(entries)-1
		if e.Severity == editor.SeverityError {
			vector.FillRect(buf, 2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 90, G: 24, B: 24, A: 200}, false)
		} else if latest {
			vector.FillRect(buf, 2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		line := fmt.Sprintf("%s %s", e.At.Format("15:04:05"), e.Message)
		ebitenutil.DebugPrintAt(buf, line, 8, y)
		y += panelLineHeight
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate(float64(g.outW-panelWidth)*g.scale, 0)
	screen.DrawImage(buf, &op)
}

func cellText(c *model.Cell) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func numberText(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
