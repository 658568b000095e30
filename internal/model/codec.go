package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MarshalJSON encodes a cell as [row, col].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON accepts [row, col] with extra trailing entries ignored.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	var pair []any
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if len(pair) < 2 {
		return fmt.Errorf("cell: want [row, col], got %d entries", len(pair))
	}
	r, okR := intFromAny(pair[0])
	col, okC := intFromAny(pair[1])
	if !okR || !okC {
		return fmt.Errorf("cell: non-integer coordinate in %s", data)
	}
	c.Row, c.Col = r, col
	return nil
}

// MarshalJSON encodes a threat as [row, col, radius].
func (t Threat) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]any{t.Row, t.Col, t.Radius})
}

// UnmarshalJSON accepts [row, col] or [row, col, radius]. A missing or falsy
// radius (null, false, 0, "") becomes DefaultThreatRadius.
func (t *Threat) UnmarshalJSON(data []byte) error {
	var entry []any
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("threat: %w", err)
	}
	if len(entry) < 2 {
		return fmt.Errorf("threat: want [row, col, radius], got %d entries", len(entry))
	}
	r, okR := intFromAny(entry[0])
	c, okC := intFromAny(entry[1])
	if !okR || !okC {
		return fmt.Errorf("threat: non-integer coordinate in %s", data)
	}
	radius := float64(DefaultThreatRadius)
	if len(entry) > 2 {
		v, ok := radiusFromAny(entry[2])
		if !ok {
			return fmt.Errorf("threat: bad radius in %s", data)
		}
		if v != 0 {
			radius = v
		}
	}
	*t = Threat{Row: r, Col: c, Radius: radius}
	return nil
}

// radiusFromAny returns 0 for falsy values so the caller applies the default.
func radiusFromAny(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case bool:
		if n {
			return 0, false
		}
		return 0, true
	case float64:
		if !IsFinite(n) {
			return 0, false
		}
		return n, true
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || !IsFinite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// scenarioDoc is the portable scenario document.
type scenarioDoc struct {
	Meta    map[string]any `json:"meta"`
	Enemies []Threat       `json:"enemies"`
	Start   *Cell          `json:"start,omitempty"`
	Goal    *Cell          `json:"goal,omitempty"`
	Mode    string         `json:"mode"`
}

// PartialScenario is the result of an import. Nil/empty fields were absent
// from the document and must leave the session untouched. An imported "meta"
// is checked for shape only; the map's own meta always wins.
type PartialScenario struct {
	Threats []Threat // nil when "enemies" was absent
	Start   *Cell
	Goal    *Cell
	Mode    string
}

// ExportScenario serialises the editable part of sc together with the map meta.
func ExportScenario(sc *Scenario, meta map[string]any, mode string) ([]byte, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	doc := scenarioDoc{
		Meta:    meta,
		Enemies: append([]Threat{}, sc.Threats...),
		Start:   sc.Start,
		Goal:    sc.Goal,
		Mode:    mode,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportScenario decodes a scenario document. Any shape problem returns an
// error wrapping ErrMalformedScenario and no partial result.
func ImportScenario(data []byte) (*PartialScenario, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScenario, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrMalformedScenario)
	}

	p := &PartialScenario{}
	if m, ok := raw["meta"]; ok && !isNull(m) {
		var meta map[string]any
		if err := json.Unmarshal(m, &meta); err != nil {
			return nil, fmt.Errorf("%w: meta: %v", ErrMalformedScenario, err)
		}
	}
	if e, ok := raw["enemies"]; ok && !isNull(e) {
		threats := []Threat{}
		if err := json.Unmarshal(e, &threats); err != nil {
			return nil, fmt.Errorf("%w: enemies: %v", ErrMalformedScenario, err)
		}
		p.Threats = threats
	}
	for _, f := range []struct {
		key string
		dst **Cell
	}{{"start", &p.Start}, {"goal", &p.Goal}} {
		v, ok := raw[f.key]
		if !ok || isNull(v) {
			continue
		}
		var c Cell
		if err := json.Unmarshal(v, &c); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedScenario, f.key, err)
		}
		*f.dst = &c
	}
	if m, ok := raw["mode"]; ok && !isNull(m) {
		if err := json.Unmarshal(m, &p.Mode); err != nil {
			return nil, fmt.Errorf("%w: mode: %v", ErrMalformedScenario, err)
		}
	}
	return p, nil
}

// ExportPath serialises a path as {"path": [[row, col], ...]}.
func ExportPath(path []Cell) ([]byte, error) {
	doc := struct {
		Path []Cell `json:"path"`
	}{Path: append([]Cell{}, path...)}
	return json.MarshalIndent(doc, "", "  ")
}

// ExportMeta serialises a map's metadata object on its own.
func ExportMeta(meta map[string]any) ([]byte, error) {
	if meta == nil {
		meta = map[string]any{}
	}
	return json.MarshalIndent(meta, "", "  ")
}

// ParseMapPreview reads a {rows, cols, ...} document and returns an all-open
// grid of that size. Real terrain is not reconstructed; the whole document
// becomes the grid meta.
func ParseMapPreview(data []byte) (*Grid, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse: %v", ErrInvalidMapFile, err)
	}
	rows, okR := intFromAny(doc["rows"])
	cols, okC := intFromAny(doc["cols"])
	if !okR || !okC || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows and cols must be positive integers", ErrInvalidMapFile)
	}
	if !ValidDimensions(rows, cols) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidMapFile, rows, cols, MaxGridCells)
	}
	return NewOpenGrid(rows, cols, doc), nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
