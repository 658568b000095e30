package model

// SessionOption configures a session built by NewTestSession.
type SessionOption func(*testSessionConfig)

type testSessionConfig struct {
	rows, cols int
	terrain    map[Cell]TerrainKind
	meta       map[string]any
	mode       string
	start      *Cell
	goal       *Cell
	threats    []Threat
	path       []Cell
	risk       RiskField
	total      float64
}

// WithGridSize sets the map dimensions (default 3×3).
func WithGridSize(rows, cols int) SessionOption {
	return func(c *testSessionConfig) {
		c.rows, c.cols = rows, cols
	}
}

// WithTerrain paints one cell.
func WithTerrain(row, col int, k TerrainKind) SessionOption {
	return func(c *testSessionConfig) {
		c.terrain[Cell{Row: row, Col: col}] = k
	}
}

// WithMeta sets one meta key.
func WithMeta(key string, v any) SessionOption {
	return func(c *testSessionConfig) {
		c.meta[key] = v
	}
}

// WithMode sets the planner mode.
func WithMode(mode string) SessionOption {
	return func(c *testSessionConfig) { c.mode = mode }
}

// WithStart overrides the start cell.
func WithStart(row, col int) SessionOption {
	return func(c *testSessionConfig) { c.start = &Cell{Row: row, Col: col} }
}

// WithGoal overrides the goal cell.
func WithGoal(row, col int) SessionOption {
	return func(c *testSessionConfig) { c.goal = &Cell{Row: row, Col: col} }
}

// WithThreat appends a threat marker.
func WithThreat(row, col int, radius float64) SessionOption {
	return func(c *testSessionConfig) {
		c.threats = append(c.threats, Threat{Row: row, Col: col, Radius: radius})
	}
}

// WithPlanResult installs a planning result.
func WithPlanResult(path []Cell, risk RiskField, total float64) SessionOption {
	return func(c *testSessionConfig) {
		c.path, c.risk, c.total = path, risk, total
	}
}

// NewTestSession builds a deterministic session for tests and headless runs.
func NewTestSession(opts ...SessionOption) *Session {
	cfg := &testSessionConfig{
		rows:    3,
		cols:    3,
		terrain: map[Cell]TerrainKind{},
		meta:    map[string]any{},
		mode:    "SAFEST",
	}
	for _, o := range opts {
		o(cfg)
	}
	cells := make([][]TerrainKind, cfg.rows)
	for r := range cells {
		cells[r] = make([]TerrainKind, cfg.cols)
		for c := range cells[r] {
			if k, ok := cfg.terrain[Cell{Row: r, Col: c}]; ok {
				cells[r][c] = k
			}
		}
	}
	s := NewSession(NewGrid(cfg.rows, cfg.cols, cells, cfg.meta), cfg.mode)
	sc := s.Scenario()
	if cfg.start != nil {
		sc.Start = cfg.start
	}
	if cfg.goal != nil {
		sc.Goal = cfg.goal
	}
	sc.Threats = cfg.threats
	sc.SetPlanResult(cfg.path, cfg.risk, cfg.total)
	return s
}
