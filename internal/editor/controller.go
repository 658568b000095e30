package editor

import (
	"math"

	"github.com/Garsondee/battlepath/internal/model"
)

// DragState is the pointer state machine's current state.
type DragState uint8

const (
	DragIdle  DragState = iota // no drag in progress
	DragStart                  // moving the start cell
	DragGoal                   // moving the goal cell
)

func (d DragState) String() string {
	switch d {
	case DragStart:
		return "DRAGGING_START"
	case DragGoal:
		return "DRAGGING_GOAL"
	default:
		return "IDLE"
	}
}

// Controller turns pointer events into scenario edits. It runs on the input
// goroutine and never blocks.
type Controller struct {
	// DragMode lets a press on the start or goal cell pick it up instead of
	// toggling a threat there.
	DragMode bool
	// DefaultRadius is the influence radius given to new threats.
	DefaultRadius float64
	// Redraw is called synchronously after every state change.
	Redraw func()

	state DragState
}

// NewController returns an idle controller.
func NewController(dragMode bool, defaultRadius float64, redraw func()) *Controller {
	return &Controller{DragMode: dragMode, DefaultRadius: defaultRadius, Redraw: redraw}
}

// State returns the current drag state.
func (c *Controller) State() DragState { return c.state }

// CellAt maps a logical pixel position to a cell with floor(pixel/cellSize).
func CellAt(px, py float64, cellSize int) model.Cell {
	cs := float64(cellSize)
	return model.Cell{Row: int(math.Floor(py / cs)), Col: int(math.Floor(px / cs))}
}

// PointerDown handles a press at logical pixel (px, py). It reports whether the
// scenario changed.
func (c *Controller) PointerDown(s *model.Session, px, py float64, cellSize int) bool {
	if c.state != DragIdle || cellSize <= 0 {
		return false
	}
	cell := CellAt(px, py, cellSize)
	if !s.Grid().InBounds(cell) {
		return false
	}
	sc := s.Scenario()
	if c.DragMode {
		if sc.Start != nil && *sc.Start == cell {
			c.state = DragStart
			return false
		}
		if sc.Goal != nil && *sc.Goal == cell {
			c.state = DragGoal
			return false
		}
	}
	sc.ToggleThreat(cell, c.DefaultRadius)
	c.redraw()
	return true
}

// PointerMove moves the dragged endpoint. Positions outside the grid are
// ignored and leave start/goal where they were.
func (c *Controller) PointerMove(s *model.Session, px, py float64, cellSize int) bool {
	if c.state == DragIdle || cellSize <= 0 {
		return false
	}
	cell := CellAt(px, py, cellSize)
	if !s.Grid().InBounds(cell) {
		return false
	}
	sc := s.Scenario()
	switch c.state {
	case DragStart:
		sc.Start = &cell
	case DragGoal:
		sc.Goal = &cell
	}
	c.redraw()
	return true
}

// PointerUp ends any drag, wherever the pointer is.
func (c *Controller) PointerUp() {
	c.state = DragIdle
}

func (c *Controller) redraw() {
	if c.Redraw != nil {
		c.Redraw()
	}
}
