package plannerstub

import (
	"testing"

	"github.com/Garsondee/battlepath/internal/model"
)

func testMap(rows, cols int) *battleMap {
	m := &battleMap{rows: rows, cols: cols}
	m.cells = make([][]model.TerrainKind, rows)
	for r := range m.cells {
		m.cells[r] = make([]model.TerrainKind, cols)
	}
	return m
}

func flatRisk(rows, cols int) model.RiskField {
	return computeRisk(rows, cols, nil)
}

func TestFindPath_SameCell(t *testing.T) {
	m := testMap(3, 3)
	c := model.Cell{Row: 1, Col: 1}
	path, total, ok := m.findPath(c, c, flatRisk(3, 3), weightSafe)
	if !ok || len(path) != 1 || path[0] != c || total != 0 {
		t.Fatalf("findPath(c,c)=%v,%v,%v", path, total, ok)
	}
}

func TestFindPath_DetoursAroundWall(t *testing.T) {
	m := testMap(3, 3)
	m.cells[0][1] = model.TerrainBlocked
	m.cells[1][1] = model.TerrainBlocked
	path, total, ok := m.findPath(model.Cell{Row: 0, Col: 0}, model.Cell{Row: 0, Col: 2}, flatRisk(3, 3), weightFast)
	if !ok {
		t.Fatal("expected a route under the wall")
	}
	want := []model.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2}}
	if len(path) != len(want) {
		t.Fatalf("path=%v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path=%v, want %v", path, want)
		}
	}
	if total != 6 {
		t.Fatalf("total=%v, want 6", total)
	}
}

func TestFindPath_BlockedEndpoint(t *testing.T) {
	m := testMap(2, 2)
	m.cells[1][1] = model.TerrainBlocked
	if _, _, ok := m.findPath(model.Cell{Row: 0, Col: 0}, model.Cell{Row: 1, Col: 1}, flatRisk(2, 2), weightSafe); ok {
		t.Fatal("a blocked goal must be unreachable")
	}
}

func TestFindPath_SafestAvoidsRisk(t *testing.T) {
	// A threat sits on the direct row; the safe route takes the far row.
	m := testMap(3, 5)
	risk := flatRisk(3, 5)
	risk[0][2] = riskMax
	start, goal := model.Cell{Row: 0, Col: 0}, model.Cell{Row: 0, Col: 4}

	safe, _, ok := m.findPath(start, goal, risk, weightSafe)
	if !ok {
		t.Fatal("no safe path")
	}
	for _, c := range safe {
		if c == (model.Cell{Row: 0, Col: 2}) {
			t.Fatalf("SAFEST path %v crosses the threat", safe)
		}
	}
	if len(safe) != 7 {
		t.Fatalf("SAFEST path len=%d, want a 7-cell detour", len(safe))
	}
}

func TestFindPath_PrefersCheapTerrain(t *testing.T) {
	m := testMap(2, 3)
	m.cells[0][1] = model.TerrainWater
	path, total, ok := m.findPath(model.Cell{Row: 0, Col: 0}, model.Cell{Row: 0, Col: 2}, flatRisk(2, 3), weightFast)
	if !ok {
		t.Fatal("no path")
	}
	// Through water costs 7+1; around it costs 4.
	if total != 4 || len(path) != 5 {
		t.Fatalf("path=%v total=%v, want the 4-cost detour", path, total)
	}
}
