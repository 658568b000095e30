package model

import "strings"

// TerrainKind identifies the surface class of a cell.
type TerrainKind uint8

const (
	TerrainOpen     TerrainKind = iota // Default open ground
	TerrainForest                      // Woodland
	TerrainWater                       // River / lake
	TerrainUrban                       // Built-up area
	TerrainMountain                    // High ground
	TerrainBlocked                     // Impassable
	TerrainUnknown                     // Sent by a newer map service; drawn as open ground
	terrainKindCount                   // sentinel
)

var terrainNames = [terrainKindCount]string{
	TerrainOpen:     "OPEN",
	TerrainForest:   "FOREST",
	TerrainWater:    "WATER",
	TerrainUrban:    "URBAN",
	TerrainMountain: "MOUNTAIN",
	TerrainBlocked:  "BLOCKED",
	TerrainUnknown:  "UNKNOWN",
}

// ParseTerrain maps a wire name to a TerrainKind. Names are case-insensitive;
// anything unrecognised becomes TerrainUnknown rather than an error.
func ParseTerrain(s string) TerrainKind {
	up := strings.ToUpper(strings.TrimSpace(s))
	for k := TerrainOpen; k < TerrainUnknown; k++ {
		if terrainNames[k] == up {
			return k
		}
	}
	return TerrainUnknown
}

func (k TerrainKind) String() string {
	if k >= terrainKindCount {
		return terrainNames[TerrainUnknown]
	}
	return terrainNames[k]
}

// Cell is a (row, col) grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Grid is the terrain model for one map. It is never mutated after
// construction; a refresh builds a new Grid.
type Grid struct {
	rows  int
	cols  int
	cells []TerrainKind // row-major: index = row*cols + col
	costs []float64     // optional, same layout as cells
	meta  map[string]any
}

// MaxGridCells bounds rows*cols for any grid built from external input.
const MaxGridCells = 1 << 20

// ValidDimensions reports whether a rows×cols grid is non-empty and no larger
// than MaxGridCells.
func ValidDimensions(rows, cols int) bool {
	return rows > 0 && cols > 0 && rows <= MaxGridCells/cols
}

// NewGrid builds a grid from a rows×cols terrain matrix. Short rows are padded
// with open ground so a ragged payload still renders.
func NewGrid(rows, cols int, cells [][]TerrainKind, meta map[string]any) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]TerrainKind, rows*cols),
		meta:  copyMeta(meta),
	}
	for r := 0; r < rows && r < len(cells); r++ {
		for c := 0; c < cols && c < len(cells[r]); c++ {
			g.cells[r*cols+c] = cells[r][c]
		}
	}
	return g
}

// NewOpenGrid creates an all-open grid, used for map file previews.
func NewOpenGrid(rows, cols int, meta map[string]any) *Grid {
	return NewGrid(rows, cols, nil, meta)
}

// WithCosts returns a copy of g carrying a per-cell cost matrix.
func (g *Grid) WithCosts(costs [][]float64) *Grid {
	out := *g
	out.costs = make([]float64, g.rows*g.cols)
	for r := 0; r < g.rows && r < len(costs); r++ {
		for c := 0; c < g.cols && c < len(costs[r]); c++ {
			out.costs[r*g.cols+c] = costs[r][c]
		}
	}
	return &out
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the terrain at c, or TerrainOpen when out of bounds.
func (g *Grid) At(c Cell) TerrainKind {
	if !g.InBounds(c) {
		return TerrainOpen
	}
	return g.cells[c.Row*g.cols+c.Col]
}

// Cost returns the planner-supplied movement cost at c and whether one exists.
func (g *Grid) Cost(c Cell) (float64, bool) {
	if g.costs == nil || !g.InBounds(c) {
		return 0, false
	}
	return g.costs[c.Row*g.cols+c.Col], true
}

// Meta returns a copy of the opaque metadata map.
func (g *Grid) Meta() map[string]any {
	return copyMeta(g.meta)
}

// DefaultEndpoints returns the suggested start and goal for this map: the
// meta "start"/"goal" pairs when present, otherwise bottom-left and top-right.
func (g *Grid) DefaultEndpoints() (start, goal Cell) {
	start = Cell{Row: g.rows - 1, Col: 0}
	goal = Cell{Row: 0, Col: g.cols - 1}
	if c, ok := cellFromAny(g.meta["start"]); ok {
		start = c
	}
	if c, ok := cellFromAny(g.meta["goal"]); ok {
		goal = c
	}
	return start, goal
}

// cellFromAny accepts a decoded JSON pair such as []any{3, "4"}.
func cellFromAny(v any) (Cell, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) < 2 {
		return Cell{}, false
	}
	r, okR := intFromAny(pair[0])
	c, okC := intFromAny(pair[1])
	if !okR || !okC {
		return Cell{}, false
	}
	return Cell{Row: r, Col: c}, true
}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
