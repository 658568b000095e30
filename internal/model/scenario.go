package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// DefaultThreatRadius is applied to imported threats whose radius is missing or zero.
const DefaultThreatRadius = 4

// MinThreatRadius is the smallest radius a pointer-placed threat may carry.
const MinThreatRadius = 1

// Threat is a point threat with a radius of influence, in cells.
type Threat struct {
	Row    int
	Col    int
	Radius float64
}

// Cell returns the threat's grid position.
func (t Threat) Cell() Cell { return Cell{Row: t.Row, Col: t.Col} }

// RiskField is a rows×cols per-cell hazard matrix. Entries may be non-finite
// (no data).
type RiskField [][]float64

// Scenario is the mutable editing state of a session.
type Scenario struct {
	Start   *Cell
	Goal    *Cell
	Threats []Threat
	Mode    string

	// Last planning result. Path, Risk and Total are always replaced together.
	Path  []Cell
	Risk  RiskField
	Total float64
}

// Clone returns a deep copy so a replacement can be built off to the side.
func (s *Scenario) Clone() *Scenario {
	out := &Scenario{
		Threats: append([]Threat(nil), s.Threats...),
		Mode:    s.Mode,
		Path:    append([]Cell(nil), s.Path...),
		Total:   s.Total,
	}
	if s.Start != nil {
		c := *s.Start
		out.Start = &c
	}
	if s.Goal != nil {
		c := *s.Goal
		out.Goal = &c
	}
	if s.Risk != nil {
		out.Risk = make(RiskField, len(s.Risk))
		for i, row := range s.Risk {
			out.Risk[i] = append([]float64(nil), row...)
		}
	}
	return out
}

// ThreatIndexAt returns the index of the first threat (insertion order) on c, or -1.
func (s *Scenario) ThreatIndexAt(c Cell) int {
	for i, t := range s.Threats {
		if t.Row == c.Row && t.Col == c.Col {
			return i
		}
	}
	return -1
}

// ToggleThreat removes the first threat on c, or appends one with the given
// radius (clamped to MinThreatRadius). It reports whether a threat was added.
func (s *Scenario) ToggleThreat(c Cell, radius float64) bool {
	if i := s.ThreatIndexAt(c); i >= 0 {
		s.Threats = append(s.Threats[:i], s.Threats[i+1:]...)
		return false
	}
	if radius < MinThreatRadius || math.IsNaN(radius) {
		radius = MinThreatRadius
	}
	s.Threats = append(s.Threats, Threat{Row: c.Row, Col: c.Col, Radius: radius})
	return true
}

// SetPlanResult replaces path, risk and total in one step.
func (s *Scenario) SetPlanResult(path []Cell, risk RiskField, total float64) {
	s.Path = path
	s.Risk = risk
	s.Total = total
}

// ClearPlanResult drops the last planning result.
func (s *Scenario) ClearPlanResult() {
	s.SetPlanResult(nil, nil, 0)
}

// HasPath reports whether a planned path is available.
func (s *Scenario) HasPath() bool { return len(s.Path) > 0 }

// intFromAny converts loosely-typed decoded JSON to an int. Strings are parsed
// the way a lenient web client would ("12" -> 12).
func intFromAny(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
