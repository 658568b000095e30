package plannerstub

import (
	"container/heap"

	"github.com/Garsondee/battlepath/internal/model"
)

type searchNode struct {
	cell   model.Cell
	g, h   float64
	parent *searchNode
	index  int // heap index
}

type openList []*searchNode

func (ol openList) Len() int           { return len(ol) }
func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }
func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}
func (ol *openList) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var dirs4 = [4]model.Cell{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}

func (m *battleMap) passable(c model.Cell) bool {
	return m.inBounds(c) && m.cells[c.Row][c.Col] != model.TerrainBlocked
}

// findPath runs A* over 4-connected cells. Entering a cell costs its terrain
// cost plus weight times its risk. It returns nil and ok=false when the goal
// cannot be reached.
func (m *battleMap) findPath(start, goal model.Cell, risk model.RiskField, weight float64) ([]model.Cell, float64, bool) {
	if !m.passable(start) || !m.passable(goal) {
		return nil, 0, false
	}
	key := func(c model.Cell) int { return c.Row*m.cols + c.Col }
	heuristic := func(c model.Cell) float64 {
		return float64(abs(c.Row-goal.Row) + abs(c.Col-goal.Col))
	}

	first := &searchNode{cell: start, h: heuristic(start)}
	ol := &openList{first}
	heap.Init(ol)
	closed := make(map[int]bool)
	best := map[int]*searchNode{key(start): first}

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*searchNode)
		if cur.cell == goal {
			return buildPath(cur), cur.g, true
		}
		k := key(cur.cell)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range dirs4 {
			next := model.Cell{Row: cur.cell.Row + d.Row, Col: cur.cell.Col + d.Col}
			if !m.passable(next) {
				continue
			}
			nk := key(next)
			if closed[nk] {
				continue
			}
			g := cur.g + m.cost(next) + weight*risk[next.Row][next.Col]
			if prev, ok := best[nk]; ok && g >= prev.g {
				continue
			}
			node := &searchNode{cell: next, g: g, h: heuristic(next), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil, 0, false
}

func buildPath(end *searchNode) []model.Cell {
	var path []model.Cell
	for n := end; n != nil; n = n.parent {
		path = append(path, n.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
