package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Garsondee/battlepath/internal/model"
)

// Number is a JSON number that also accepts null and the bare or quoted
// tokens Infinity, -Infinity and NaN. null and NaN decode as NaN.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", `"NaN"`, `"nan"`:
		*n = Number(math.NaN())
		return nil
	case `"Infinity"`, `"inf"`:
		*n = Number(math.Inf(1))
		return nil
	case `"-Infinity"`, `"-inf"`:
		*n = Number(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*n = Number(f)
	return nil
}

// Matrix is a rows×cols grid of Numbers.
type Matrix [][]Number

// Field converts m to a risk field; nil stays nil.
func (m Matrix) Field() model.RiskField {
	if m == nil {
		return nil
	}
	out := make(model.RiskField, len(m))
	for r, row := range m {
		out[r] = make([]float64, len(row))
		for c, v := range row {
			out[r][c] = float64(v)
		}
	}
	return out
}

// MapResponse is the body of GET /map.
type MapResponse struct {
	Rows  int            `json:"rows"`
	Cols  int            `json:"cols"`
	Cells [][]string     `json:"cells"`
	Costs Matrix         `json:"costs,omitempty"`
	Meta  map[string]any `json:"meta"`
}

// Grid builds the grid model the response describes.
func (m *MapResponse) Grid() (*model.Grid, error) {
	if !model.ValidDimensions(m.Rows, m.Cols) {
		return nil, fmt.Errorf("%w: map has %dx%d cells", ErrBadResponse, m.Rows, m.Cols)
	}
	cells := make([][]model.TerrainKind, len(m.Cells))
	for r, row := range m.Cells {
		cells[r] = make([]model.TerrainKind, len(row))
		for c, name := range row {
			cells[r][c] = model.ParseTerrain(name)
		}
	}
	g := model.NewGrid(m.Rows, m.Cols, cells, m.Meta)
	if m.Costs != nil {
		g = g.WithCosts(m.Costs.Field())
	}
	return g, nil
}

// PathRequest is the body of POST /path.
type PathRequest struct {
	Mode    string         `json:"mode"`
	Enemies []model.Threat `json:"enemies"`
	Start   *model.Cell    `json:"start,omitempty"`
	Goal    *model.Cell    `json:"goal,omitempty"`
}

// NewPathRequest snapshots the scenario fields the planner needs.
func NewPathRequest(sc *model.Scenario) PathRequest {
	req := PathRequest{
		Mode:    sc.Mode,
		Enemies: append([]model.Threat{}, sc.Threats...),
	}
	if sc.Start != nil {
		c := *sc.Start
		req.Start = &c
	}
	if sc.Goal != nil {
		c := *sc.Goal
		req.Goal = &c
	}
	return req
}

// RiskSample is the risk at the endpoints, reported alongside a path.
type RiskSample struct {
	Start Number `json:"start"`
	Goal  Number `json:"goal"`
}

// PathResponse is the body returned by POST /path.
type PathResponse struct {
	Path       []model.Cell `json:"path"`
	Total      Number       `json:"total"`
	Risk       Matrix       `json:"risk,omitempty"`
	Start      *model.Cell  `json:"start,omitempty"`
	Goal       *model.Cell  `json:"goal,omitempty"`
	RiskSample *RiskSample  `json:"risk_sample,omitempty"`
}

// RandomizeResponse is the body of GET /randomize.
type RandomizeResponse struct {
	Enemies []model.Threat `json:"enemies"`
}

// sanitize quotes the bare Infinity, -Infinity and NaN tokens some JSON
// encoders emit so encoding/json accepts the document. String contents are
// left untouched.
func sanitize(data []byte) []byte {
	if !bytes.Contains(data, []byte("Infinity")) && !bytes.Contains(data, []byte("NaN")) {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		b := data[i]
		if inString {
			out = append(out, b)
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		if b == '"' {
			inString = true
			out = append(out, b)
			continue
		}
		if tok := bareToken(data[i:]); tok != "" {
			out = append(out, '"')
			out = append(out, tok...)
			out = append(out, '"')
			i += len(tok) - 1
			continue
		}
		out = append(out, b)
	}
	return out
}

func bareToken(rest []byte) string {
	for _, tok := range []string{"-Infinity", "Infinity", "NaN"} {
		if bytes.HasPrefix(rest, []byte(tok)) {
			return tok
		}
	}
	return ""
}
