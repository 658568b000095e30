package plannerstub

import (
	"math/rand"

	"github.com/Garsondee/battlepath/internal/model"
)

// terrainCost is the movement cost table carried in map meta.
var terrainCost = map[model.TerrainKind]float64{
	model.TerrainOpen:     1.0,
	model.TerrainForest:   2.0,
	model.TerrainUrban:    1.5,
	model.TerrainWater:    7.0,
	model.TerrainMountain: 5.0,
	model.TerrainBlocked:  9999.0,
}

var (
	terrainChoices = []model.TerrainKind{
		model.TerrainOpen, model.TerrainForest, model.TerrainUrban,
		model.TerrainWater, model.TerrainMountain, model.TerrainBlocked,
	}
	terrainWeights = []float64{0.4, 0.2, 0.15, 0.1, 0.1, 0.05}
)

// battleMap is the stub's fixed map.
type battleMap struct {
	rows, cols int
	cells      [][]model.TerrainKind
	start      model.Cell
	goal       model.Cell
	enemies    []model.Threat
}

// generateMap draws a weighted random terrain map with open endpoints and a
// few threats away from the edges. With open set every cell is OPEN.
func generateMap(rows, cols, enemyCount int, open bool, rng *rand.Rand) *battleMap {
	m := &battleMap{rows: rows, cols: cols}
	m.cells = make([][]model.TerrainKind, rows)
	for r := range m.cells {
		m.cells[r] = make([]model.TerrainKind, cols)
		for c := range m.cells[r] {
			if !open {
				m.cells[r][c] = pickTerrain(rng)
			}
		}
	}
	m.start = model.Cell{Row: rows - 1, Col: rng.Intn(min(3, cols))}
	m.goal = model.Cell{Row: rng.Intn(min(3, rows)), Col: cols - 1}
	m.cells[m.start.Row][m.start.Col] = model.TerrainOpen
	m.cells[m.goal.Row][m.goal.Col] = model.TerrainOpen

	for i := 0; i < enemyCount && rows > 4 && cols > 4; i++ {
		m.enemies = append(m.enemies, model.Threat{
			Row:    2 + rng.Intn(rows-4),
			Col:    2 + rng.Intn(cols-4),
			Radius: float64(3 + rng.Intn(5)),
		})
	}
	return m
}

func pickTerrain(rng *rand.Rand) model.TerrainKind {
	x := rng.Float64()
	for i, w := range terrainWeights {
		if x < w {
			return terrainChoices[i]
		}
		x -= w
	}
	return model.TerrainOpen
}

func (m *battleMap) inBounds(c model.Cell) bool {
	return c.Row >= 0 && c.Row < m.rows && c.Col >= 0 && c.Col < m.cols
}

func (m *battleMap) cost(c model.Cell) float64 {
	return terrainCost[m.cells[c.Row][c.Col]]
}

// meta is the map description handed to clients, including suggested
// endpoints and the scripted threats.
func (m *battleMap) meta() map[string]any {
	costs := make(map[string]float64, len(terrainCost))
	for k, v := range terrainCost {
		costs[k.String()] = v
	}
	enemies := make([][3]float64, len(m.enemies))
	for i, e := range m.enemies {
		enemies[i] = [3]float64{float64(e.Row), float64(e.Col), e.Radius}
	}
	return map[string]any{
		"rows":    m.rows,
		"cols":    m.cols,
		"start":   []int{m.start.Row, m.start.Col},
		"goal":    []int{m.goal.Row, m.goal.Col},
		"terrain": costs,
		"enemies": enemies,
	}
}
