package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExportImport_RoundTrip(t *testing.T) {
	s := NewTestSession(
		WithGridSize(6, 6),
		WithStart(5, 1),
		WithGoal(0, 4),
		WithThreat(2, 2, 3),
		WithThreat(2, 2, 5), // duplicates by coordinate are legal
		WithThreat(4, 0, 1.5),
	)
	data, err := ExportScenario(s.Scenario(), s.Grid().Meta(), "FASTEST")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	p, err := ImportScenario(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if p.Start == nil || *p.Start != (Cell{5, 1}) {
		t.Fatalf("start=%v, want (5,1)", p.Start)
	}
	if p.Goal == nil || *p.Goal != (Cell{0, 4}) {
		t.Fatalf("goal=%v, want (0,4)", p.Goal)
	}
	want := s.Scenario().Threats
	if len(p.Threats) != len(want) {
		t.Fatalf("threats=%d, want %d", len(p.Threats), len(want))
	}
	for i := range want {
		if p.Threats[i] != want[i] {
			t.Fatalf("threat %d=%+v, want %+v", i, p.Threats[i], want[i])
		}
	}
	if p.Mode != "FASTEST" {
		t.Fatalf("mode=%q, want FASTEST", p.Mode)
	}
}

func TestExport_DocumentShape(t *testing.T) {
	s := NewTestSession(WithThreat(1, 1, 2), WithMeta("name", "ridge"))
	s.Scenario().Goal = nil
	data, err := ExportScenario(s.Scenario(), s.Grid().Meta(), "SAFEST")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("exported document is not JSON: %v", err)
	}
	if _, ok := doc["goal"]; ok {
		t.Fatal("unset goal must be absent from the document")
	}
	enemies, ok := doc["enemies"].([]any)
	if !ok || len(enemies) != 1 {
		t.Fatalf("enemies=%v", doc["enemies"])
	}
	e := enemies[0].([]any)
	if e[0].(float64) != 1 || e[1].(float64) != 1 || e[2].(float64) != 2 {
		t.Fatalf("enemy entry=%v, want [1,1,2]", e)
	}
	if doc["meta"].(map[string]any)["name"] != "ridge" {
		t.Fatalf("meta not carried: %v", doc["meta"])
	}
	if !strings.Contains(string(data), "\n  \"enemies\"") {
		t.Fatalf("expected two-space indentation, got:\n%s", data)
	}
}

func TestImport_RadiusDefaulting(t *testing.T) {
	doc := `{"enemies": [[1,2], [3,4,0], [5,6,null], [7,8,false], [9,10,6]]}`
	p, err := ImportScenario([]byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	wantRadius := []float64{4, 4, 4, 4, 6}
	for i, w := range wantRadius {
		if p.Threats[i].Radius != w {
			t.Fatalf("threat %d radius=%v, want %v", i, p.Threats[i].Radius, w)
		}
	}
}

func TestImport_MissingFieldsLeftUnset(t *testing.T) {
	p, err := ImportScenario([]byte(`{"unknown": 3}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if p.Threats != nil || p.Start != nil || p.Goal != nil || p.Mode != "" {
		t.Fatalf("expected empty partial scenario, got %+v", p)
	}
}

func TestImport_EmptyEnemiesIsPresent(t *testing.T) {
	p, err := ImportScenario([]byte(`{"enemies": []}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if p.Threats == nil || len(p.Threats) != 0 {
		t.Fatalf("empty enemies list should be present and empty, got %#v", p.Threats)
	}
}

func TestImport_OutOfBoundsPassesThrough(t *testing.T) {
	p, err := ImportScenario([]byte(`{"start": [99, -3]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if *p.Start != (Cell{99, -3}) {
		t.Fatalf("start=%v, want verbatim (99,-3)", *p.Start)
	}
}

func TestImport_Malformed(t *testing.T) {
	docs := []string{
		``,
		`not json`,
		`[1,2,3]`,
		`null`,
		`{"enemies": "lots"}`,
		`{"enemies": [[1]]}`,
		`{"enemies": [["a", 2, 3]]}`,
		`{"enemies": [[1, 2, "far"]]}`,
		`{"start": [1]}`,
		`{"goal": "top"}`,
		`{"mode": 7}`,
		`{"meta": [1]}`,
	}
	for _, d := range docs {
		if _, err := ImportScenario([]byte(d)); !errors.Is(err, ErrMalformedScenario) {
			t.Fatalf("ImportScenario(%q) err=%v, want ErrMalformedScenario", d, err)
		}
	}
}

func TestSession_ApplyLeavesStateOnFailure(t *testing.T) {
	s := NewTestSession(WithThreat(0, 0, 2))
	before := s.Scenario()
	if _, err := ImportScenario([]byte(`{"enemies": [[1]]}`)); err == nil {
		t.Fatal("expected malformed error")
	}
	if s.Scenario() != before || len(s.Scenario().Threats) != 1 {
		t.Fatal("session changed after a failed import")
	}
}

func TestImport_MetaIsShapeCheckedOnly(t *testing.T) {
	s := NewSession(NewOpenGrid(3, 3, map[string]any{"name": "live"}), "SAFEST")
	p, err := ImportScenario([]byte(`{"meta": {"name": "other"}, "mode": "FASTEST"}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	s.Apply(p)
	if s.Scenario().Mode != "FASTEST" {
		t.Fatalf("mode=%q, want FASTEST", s.Scenario().Mode)
	}
	if s.Grid().Meta()["name"] != "live" {
		t.Fatalf("grid meta=%v, imported meta must not replace it", s.Grid().Meta())
	}
}

func TestExportPath(t *testing.T) {
	data, err := ExportPath([]Cell{{2, 0}, {1, 1}, {0, 2}})
	if err != nil {
		t.Fatalf("export path: %v", err)
	}
	var doc struct {
		Path [][]int `json:"path"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Path) != 3 || doc.Path[1][0] != 1 || doc.Path[1][1] != 1 {
		t.Fatalf("path=%v", doc.Path)
	}
}

func TestParseMapPreview(t *testing.T) {
	g, err := ParseMapPreview([]byte(`{"rows": 4, "cols": 6, "name": "custom", "cells": [["WATER"]]}`))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if g.Rows() != 4 || g.Cols() != 6 {
		t.Fatalf("size=%dx%d, want 4x6", g.Rows(), g.Cols())
	}
	if g.At(Cell{0, 0}) != TerrainOpen {
		t.Fatal("preview must synthesise all-open terrain")
	}
	if g.Meta()["name"] != "custom" {
		t.Fatal("preview meta should be the whole document")
	}

	for _, d := range []string{`{"rows": 4}`, `{"rows": 0, "cols": 3}`, `{"rows": "x", "cols": 2}`, `garbage`} {
		if _, err := ParseMapPreview([]byte(d)); !errors.Is(err, ErrInvalidMapFile) {
			t.Fatalf("ParseMapPreview(%q) err=%v, want ErrInvalidMapFile", d, err)
		}
	}
}

func TestParseMapPreview_RejectsHugeGrids(t *testing.T) {
	for _, d := range []string{
		`{"rows": 4294967296, "cols": 4294967296}`,
		`{"rows": 2048, "cols": 1024}`,
		`{"rows": 1, "cols": 1048577}`,
	} {
		g, err := ParseMapPreview([]byte(d))
		if !errors.Is(err, ErrInvalidMapFile) {
			t.Fatalf("ParseMapPreview(%q) err=%v, want ErrInvalidMapFile", d, err)
		}
		if g != nil {
			t.Fatalf("ParseMapPreview(%q) returned a grid", d)
		}
	}
	g, err := ParseMapPreview([]byte(`{"rows": 1024, "cols": 1024}`))
	if err != nil {
		t.Fatalf("grid at the cell limit rejected: %v", err)
	}
	if g.At(Cell{1023, 1023}) != TerrainOpen {
		t.Fatal("corner cell should be open")
	}
}
