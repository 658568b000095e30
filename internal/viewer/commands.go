package viewer

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/planner"
)

// zoomStep is the cell size change per wheel notch or +/- press.
const zoomStep = 2

// commandKeys are the keys polled each tick for edge detection.
var commandKeys = []ebiten.Key{
	ebiten.KeyG, ebiten.KeyO, ebiten.KeyEnter, ebiten.KeyR, ebiten.KeyX,
	ebiten.KeySpace, ebiten.KeyEscape, ebiten.KeyM, ebiten.KeyF,
	ebiten.KeyBracketLeft, ebiten.KeyBracketRight, ebiten.KeyP,
	ebiten.KeyBackspace, ebiten.KeyH, ebiten.KeyEqual, ebiten.KeyMinus,
	ebiten.KeyS, ebiten.KeyC, ebiten.KeyV, ebiten.KeyL,
}

// handleKeys processes edge-triggered key commands.
func (g *Game) handleKeys() {
	currentKeys := make(map[ebiten.Key]bool, len(commandKeys))
	for _, k := range commandKeys {
		currentKeys[k] = isKeyPressed(k)
	}
	pressed := func(k ebiten.Key) bool { return currentKeys[k] && !g.prevKeys[k] }
	ctrl := isKeyPressed(ebiten.KeyControl) || isKeyPressed(ebiten.KeyMeta)
	g.prevKeys = currentKeys
	g.handleZoom()

	// Plain-key commands are suppressed while a modifier is held.
	if ctrl {
		switch {
		case pressed(ebiten.KeyS):
			g.exportScenario()
		case pressed(ebiten.KeyO):
			g.importScenarioFile()
		case pressed(ebiten.KeyC):
			g.copyScenario()
		case pressed(ebiten.KeyV):
			g.pasteScenario()
		case pressed(ebiten.KeyP):
			g.exportSnapshot()
		case pressed(ebiten.KeyM):
			g.exportMeta()
		case pressed(ebiten.KeyL):
			g.loadMapPreview()
		}
		return
	}

	if pressed(ebiten.KeyG) {
		g.ctrl.DragMode = !g.ctrl.DragMode
		g.status.Info(fmt.Sprintf("drag mode %s", onOff(g.ctrl.DragMode)))
	}
	if pressed(ebiten.KeyO) {
		g.riskOverlay = !g.riskOverlay
		g.redraw()
	}
	if pressed(ebiten.KeyEnter) {
		g.computePath()
	}
	if pressed(ebiten.KeyR) {
		if !g.requestRandomize() {
			g.status.Info("randomize already running")
		}
	}
	if pressed(ebiten.KeyX) {
		g.clearThreats()
	}
	if pressed(ebiten.KeySpace) {
		g.startAnimation()
	}
	if pressed(ebiten.KeyEscape) {
		if g.anim.Running() {
			g.stopAnimation()
			g.status.Info("animation stopped")
		}
	}
	if pressed(ebiten.KeyM) {
		g.cycleMode()
	}
	if pressed(ebiten.KeyF) {
		g.fitToWindow()
	}
	if pressed(ebiten.KeyBracketLeft) {
		g.adjustRadius(-1)
	}
	if pressed(ebiten.KeyBracketRight) {
		g.adjustRadius(1)
	}
	if pressed(ebiten.KeyP) {
		g.exportPath()
	}
	if pressed(ebiten.KeyBackspace) {
		g.resetMap()
	}
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if pressed(ebiten.KeyEqual) {
		g.setCellSize(g.cellSize + zoomStep)
	}
	if pressed(ebiten.KeyMinus) {
		g.setCellSize(g.cellSize - zoomStep)
	}
}

func (g *Game) handleZoom() {
	_, wy := wheel()
	if wy != 0 {
		steps := int(math.Copysign(math.Ceil(math.Abs(wy)), wy))
		g.setCellSize(g.cellSize + steps*zoomStep)
	}
}

func (g *Game) computePath() {
	if g.session == nil {
		return
	}
	if g.tracker.InFlight(planner.KindPath) {
		g.status.Info("path request already running")
		return
	}
	g.stopAnimation()
	g.requestPath()
	g.status.Info("computing path...")
}

func (g *Game) resetMap() {
	if g.requestMap() {
		g.status.Info("reloading map")
	}
}

func (g *Game) clearThreats() {
	if g.session == nil {
		return
	}
	g.session.Scenario().Threats = []model.Threat{}
	g.status.Info("threats cleared")
	g.redraw()
}

func (g *Game) cycleMode() {
	if g.session == nil || len(g.cfg.Modes) == 0 {
		return
	}
	g.modeIndex = (g.modeIndex + 1) % len(g.cfg.Modes)
	g.session.Scenario().Mode = g.cfg.Modes[g.modeIndex]
	g.status.Info("mode " + g.cfg.Modes[g.modeIndex])
}

func (g *Game) adjustRadius(delta float64) {
	r := g.ctrl.DefaultRadius + delta
	if r < model.MinThreatRadius {
		r = model.MinThreatRadius
	}
	g.ctrl.DefaultRadius = r
}

func (g *Game) startAnimation() {
	if g.session == nil {
		return
	}
	if g.anim.Running() {
		return
	}
	if !g.anim.Start(g.session.Scenario().Path) {
		g.status.Info("no path to animate")
		return
	}
	g.prefix = nil
	g.showPrefix = true
	g.redraw()
}

// stopAnimation halts any replay and goes back to drawing the full path.
func (g *Game) stopAnimation() {
	g.anim.Stop()
	g.prefix = nil
	g.showPrefix = false
	g.redraw()
}

func (g *Game) exportScenario() {
	if g.session == nil {
		return
	}
	sc := g.session.Scenario()
	data, err := model.ExportScenario(sc, g.session.Grid().Meta(), sc.Mode)
	g.saveExport(scenarioFile, data, err)
}

func (g *Game) exportPath() {
	if g.session == nil {
		return
	}
	if !g.session.Scenario().HasPath() {
		g.status.Info("no path to export")
		return
	}
	data, err := model.ExportPath(g.session.Scenario().Path)
	g.saveExport(pathFile, data, err)
}

func (g *Game) exportMeta() {
	if g.session == nil {
		return
	}
	data, err := model.ExportMeta(g.session.Grid().Meta())
	g.saveExport(metaFile, data, err)
}

func (g *Game) exportSnapshot() {
	if g.session == nil {
		return
	}
	path := g.session.Scenario().Path
	if g.showPrefix {
		path = g.prefix
	}
	data, err := snapshotPNG(g.session, g.riskOverlay, g.cellSize, path)
	g.saveExport(snapshotFile, data, err)
}

func (g *Game) saveExport(name string, data []byte, err error) {
	if err == nil {
		var p string
		if p, err = writeExport(g.cfg.ExportDir, name, data); err == nil {
			g.status.Info("saved " + p)
			return
		}
	}
	g.log.Errorf("export %s: %v", name, err)
	g.status.Error("export failed: " + describe(err))
}

func (g *Game) importScenarioFile() {
	data, err := readImport(g.cfg.ExportDir, scenarioFile)
	if err != nil {
		g.status.Error("import failed: " + describe(err))
		return
	}
	g.importScenario(data, scenarioFile)
}

// importScenario decodes a scenario document and merges it into the session.
// A failed decode leaves the session untouched.
func (g *Game) importScenario(data []byte, source string) {
	if g.session == nil {
		return
	}
	p, err := model.ImportScenario(data)
	if err != nil {
		g.log.Warnf("import from %s: %v", source, err)
		g.status.Error("import failed: " + describe(err))
		return
	}
	g.session.Apply(p)
	for i, m := range g.cfg.Modes {
		if m == g.session.Scenario().Mode {
			g.modeIndex = i
		}
	}
	g.status.Info(fmt.Sprintf("imported scenario from %s (%d threats)", source, len(g.session.Scenario().Threats)))
	g.redraw()
}

func (g *Game) copyScenario() {
	if g.session == nil {
		return
	}
	sc := g.session.Scenario()
	data, err := model.ExportScenario(sc, g.session.Grid().Meta(), sc.Mode)
	if err == nil {
		err = clipboardWrite(string(data))
	}
	if err != nil {
		g.status.Error("copy failed: " + describe(err))
		return
	}
	g.status.Info("scenario copied to clipboard")
}

func (g *Game) pasteScenario() {
	text, err := clipboardRead()
	if err != nil {
		g.status.Error("paste failed: " + describe(err))
		return
	}
	g.importScenario([]byte(text), "clipboard")
}

// loadMapPreview replaces the grid with an all-open preview of a map file.
func (g *Game) loadMapPreview() {
	data, err := readImport(g.cfg.ExportDir, mapPreviewFile)
	if err == nil {
		var grid *model.Grid
		if grid, err = model.ParseMapPreview(data); err == nil {
			g.applyMap(grid)
			return
		}
	}
	g.status.Error("map preview failed: " + describe(err))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
