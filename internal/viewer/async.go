package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/planner"
)

// result is a finished planner call travelling back to the update goroutine.
type result struct {
	kind    planner.Kind
	seq     uint64
	grid    *model.Grid
	path    *planner.PathResponse
	threats []model.Threat
	err     error
}

// dispatch runs call on its own goroutine with the configured timeout. It
// returns false when a request of the same kind is already in flight.
func (g *Game) dispatch(kind planner.Kind, call func(ctx context.Context) result) bool {
	seq, ok := g.tracker.Begin(kind)
	if !ok {
		return false
	}
	g.log.Debugf("dispatch %s seq=%d", kind, seq)
	go func() {
		ctx, cancel := context.WithTimeout(g.ctx, g.cfg.RequestTimeout)
		defer cancel()
		r := call(ctx)
		r.kind, r.seq = kind, seq
		select {
		case g.results <- r:
		case <-g.ctx.Done():
		}
	}()
	return true
}

func (g *Game) requestMap() bool {
	return g.dispatch(planner.KindMap, func(ctx context.Context) result {
		grid, err := g.planner.FetchMap(ctx)
		return result{grid: grid, err: err}
	})
}

func (g *Game) requestPath() bool {
	if g.session == nil {
		return false
	}
	req := planner.NewPathRequest(g.session.Scenario())
	return g.dispatch(planner.KindPath, func(ctx context.Context) result {
		resp, err := g.planner.ComputePath(ctx, req)
		return result{path: resp, err: err}
	})
}

func (g *Game) requestRandomize() bool {
	return g.dispatch(planner.KindRandomize, func(ctx context.Context) result {
		threats, err := g.planner.Randomize(ctx)
		return result{threats: threats, err: err}
	})
}

// drainResults applies every completed response without blocking.
func (g *Game) drainResults() {
	for {
		select {
		case r := <-g.results:
			g.applyResult(r)
		default:
			return
		}
	}
}

func (g *Game) applyResult(r result) {
	if !g.tracker.Finish(r.kind, r.seq) {
		g.log.Debugf("discarding stale %s response seq=%d", r.kind, r.seq)
		return
	}
	if r.err != nil {
		g.log.Warnf("%s request failed: %v", r.kind, r.err)
		g.status.Error(fmt.Sprintf("%s failed: %s", r.kind, describe(r.err)))
		return
	}
	switch r.kind {
	case planner.KindMap:
		g.applyMap(r.grid)
	case planner.KindPath:
		g.applyPath(r.path)
	case planner.KindRandomize:
		g.applyThreats(r.threats)
	}
}

func (g *Game) applyMap(grid *model.Grid) {
	g.tracker.Invalidate(planner.KindPath)
	g.stopAnimation()
	if g.session == nil {
		g.session = model.NewSession(grid, g.cfg.Modes[g.modeIndex])
	} else {
		g.session.ReplaceGrid(grid)
	}
	g.lastSample = nil
	g.status.Info(fmt.Sprintf("map loaded: %dx%d", grid.Rows(), grid.Cols()))
	g.redraw()
}

// applyPath installs a planning result. The new scenario is built on a copy
// and swapped in whole.
func (g *Game) applyPath(resp *planner.PathResponse) {
	if g.session == nil || resp == nil {
		return
	}
	next := g.session.Scenario().Clone()
	if resp.Start != nil {
		c := *resp.Start
		next.Start = &c
	}
	if resp.Goal != nil {
		c := *resp.Goal
		next.Goal = &c
	}
	next.SetPlanResult(append([]model.Cell{}, resp.Path...), resp.Risk.Field(), float64(resp.Total))
	g.stopAnimation()
	g.session.ReplaceScenario(next)
	g.lastSample = resp.RiskSample
	if len(resp.Path) == 0 {
		g.status.Error("planner found no path")
	} else {
		g.status.Info(summary(next))
	}
	g.redraw()
}

func (g *Game) applyThreats(threats []model.Threat) {
	if g.session == nil {
		return
	}
	next := g.session.Scenario().Clone()
	next.Threats = append([]model.Threat{}, threats...)
	g.session.ReplaceScenario(next)
	g.status.Info(fmt.Sprintf("randomized %d threats", len(threats)))
	g.redraw()
}

// describe turns an error into short operator-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, planner.ErrNetworkFailure):
		return "planner unreachable"
	case errors.Is(err, planner.ErrBadResponse):
		return "planner sent a malformed response"
	case errors.Is(err, model.ErrMalformedScenario):
		return "malformed scenario"
	case errors.Is(err, model.ErrInvalidMapFile):
		return "invalid map file"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	return err.Error()
}
