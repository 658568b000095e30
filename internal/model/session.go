package model

// Session owns the grid and the scenario being edited. It is created once at
// startup; the grid and scenario are each swapped wholesale, never patched
// from outside.
type Session struct {
	grid     *Grid
	scenario *Scenario
}

// NewSession starts a session on grid with the map's default start and goal.
func NewSession(grid *Grid, mode string) *Session {
	s := &Session{grid: grid, scenario: &Scenario{Mode: mode}}
	start, goal := grid.DefaultEndpoints()
	s.scenario.Start = &start
	s.scenario.Goal = &goal
	return s
}

func (s *Session) Grid() *Grid         { return s.grid }
func (s *Session) Scenario() *Scenario { return s.scenario }

// ReplaceGrid installs a new map and clears the last planning result. Start
// and goal survive unless they fall outside the new map, in which case the
// map's defaults are used.
func (s *Session) ReplaceGrid(g *Grid) {
	next := s.scenario.Clone()
	next.ClearPlanResult()
	start, goal := g.DefaultEndpoints()
	if next.Start == nil || !g.InBounds(*next.Start) {
		next.Start = &start
	}
	if next.Goal == nil || !g.InBounds(*next.Goal) {
		next.Goal = &goal
	}
	s.grid = g
	s.scenario = next
}

// ReplaceScenario swaps in a fully built scenario.
func (s *Session) ReplaceScenario(sc *Scenario) {
	s.scenario = sc
}

// Apply merges an imported partial scenario: fields present in p replace the
// current ones, absent fields are kept. The merge happens on a copy which is
// then swapped in.
func (s *Session) Apply(p *PartialScenario) {
	next := s.scenario.Clone()
	if p.Threats != nil {
		next.Threats = append([]Threat(nil), p.Threats...)
	}
	if p.Start != nil {
		c := *p.Start
		next.Start = &c
	}
	if p.Goal != nil {
		c := *p.Goal
		next.Goal = &c
	}
	if p.Mode != "" {
		next.Mode = p.Mode
	}
	s.scenario = next
}
