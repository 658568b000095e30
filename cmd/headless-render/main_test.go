package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/battlepath/internal/logx"
	"github.com/Garsondee/battlepath/internal/model"
)

func testOptions(t *testing.T) options {
	t.Helper()
	return options{
		rows:     6,
		cols:     8,
		seed:     7,
		cellSize: 10,
		mode:     "SAFEST",
		overlay:  true,
		out:      filepath.Join(t.TempDir(), "frame.png"),
		timeout:  5 * time.Second,
	}
}

func TestRun_AgainstInProcessStub(t *testing.T) {
	o := testOptions(t)
	rep, err := run(context.Background(), o, logx.Discard())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.rows != 6 || rep.cols != 8 {
		t.Fatalf("map %dx%d, want 6x8", rep.rows, rep.cols)
	}
	// Random terrain may wall the goal off; a found path must join the endpoints.
	if n := len(rep.path); n > 0 && (rep.path[0] != rep.start || rep.path[n-1] != rep.goal) {
		t.Fatalf("path %v does not join start %v and goal %v", rep.path, rep.start, rep.goal)
	}
	if rep.start.Row != 5 || rep.goal.Col != 7 {
		t.Fatalf("start=%v goal=%v, want stub endpoints on the map edges", rep.start, rep.goal)
	}
	total := 0
	for _, n := range rep.terrain {
		total += n
	}
	if total != 48 {
		t.Fatalf("terrain histogram counts %d cells, want 48", total)
	}

	data, err := os.ReadFile(o.out)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Fatalf("png %dx%d, want 80x60", b.Dx(), b.Dy())
	}
}

func TestRun_OpenTerrainAlwaysRoutes(t *testing.T) {
	o := testOptions(t)
	o.open = true
	rep, err := run(context.Background(), o, logx.Discard())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rep.terrain[model.TerrainOpen] != 48 {
		t.Fatalf("terrain=%v, want all 48 cells OPEN", rep.terrain)
	}
	n := len(rep.path)
	if n == 0 || rep.path[0] != rep.start || rep.path[n-1] != rep.goal {
		t.Fatalf("path %v does not join start %v and goal %v", rep.path, rep.start, rep.goal)
	}
	minLen := abs(rep.start.Row-rep.goal.Row) + abs(rep.start.Col-rep.goal.Col) + 1
	if n < minLen {
		t.Fatalf("path len=%d shorter than the Manhattan bound %d", n, minLen)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestRun_RandomizedThreats(t *testing.T) {
	o := testOptions(t)
	o.randomize = true
	rep, err := run(context.Background(), o, logx.Discard())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rep.threats) != 3 {
		t.Fatalf("threats=%d, want 3 from /randomize", len(rep.threats))
	}
	for _, th := range rep.threats {
		if th.Row < 0 || th.Row >= 6 || th.Col < 0 || th.Col >= 8 {
			t.Fatalf("threat %v outside the map", th)
		}
	}
}

func TestRun_UnreachablePlanner(t *testing.T) {
	o := testOptions(t)
	o.plannerURL = "http://127.0.0.1:1/api"
	o.timeout = time.Second
	if _, err := run(context.Background(), o, logx.Discard()); err == nil {
		t.Fatal("expected an error for an unreachable planner")
	}
	if _, err := os.Stat(o.out); !os.IsNotExist(err) {
		t.Fatal("no PNG should be written when the map cannot be fetched")
	}
}

func TestValidate(t *testing.T) {
	good := options{rows: 1, cols: 1, cellSize: 4, timeout: time.Second, out: "x.png"}
	if err := validate(good); err != nil {
		t.Fatalf("validate(good): %v", err)
	}
	bad := []options{
		{rows: 1, cols: 1, cellSize: 0, timeout: time.Second, out: "x.png"},
		{rows: 0, cols: 1, cellSize: 4, timeout: time.Second, out: "x.png"},
		{rows: 1, cols: 1, cellSize: 4, timeout: 0, out: "x.png"},
		{rows: 1, cols: 1, cellSize: 4, timeout: time.Second, out: " "},
	}
	for i, o := range bad {
		if err := validate(o); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
	remote := options{plannerURL: "http://x/api", cellSize: 4, timeout: time.Second, out: "x.png"}
	if err := validate(remote); err != nil {
		t.Fatalf("rows/cols are ignored with a remote planner: %v", err)
	}
}

func TestMetaThreats(t *testing.T) {
	meta := map[string]any{"enemies": []any{
		[]any{2.0, 3.0, 5.0},
		[]any{1.0, 1.0},
	}}
	got := metaThreats(meta)
	want := []model.Threat{{Row: 2, Col: 3, Radius: 5}, {Row: 1, Col: 1, Radius: model.DefaultThreatRadius}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("metaThreats=%v, want %v", got, want)
	}
	if got := metaThreats(map[string]any{"enemies": "nope"}); len(got) != 0 {
		t.Fatalf("malformed enemies gave %v", got)
	}
	if got := metaThreats(nil); got == nil || len(got) != 0 {
		t.Fatalf("missing enemies gave %v, want empty", got)
	}
}

func TestPrintReport(t *testing.T) {
	r := &report{
		source:  "stub seed=1",
		rows:    2,
		cols:    2,
		terrain: map[model.TerrainKind]int{model.TerrainOpen: 3, model.TerrainWater: 1},
		mode:    "FASTEST",
		threats: []model.Threat{{Row: 0, Col: 1, Radius: 3}},
		start:   model.Cell{Row: 1, Col: 0},
		goal:    model.Cell{Row: 0, Col: 1},
		path:    []model.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}},
		total:   3.25,
		riskLo:  0,
		riskHi:  1,
		out:     "frame.png",
	}
	var buf bytes.Buffer
	printReport(&buf, r)
	out := buf.String()
	for _, want := range []string{
		"map=2x2 mode=FASTEST",
		"OPEN",
		"WATER",
		"(0,1) range=3",
		"path: cost=3.25 len=3",
		"wrote frame.png",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "FOREST") {
		t.Fatalf("report lists terrain with no cells:\n%s", out)
	}
}
