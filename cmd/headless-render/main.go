package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/Garsondee/battlepath/internal/logx"
	"github.com/Garsondee/battlepath/internal/model"
	"github.com/Garsondee/battlepath/internal/planner"
	"github.com/Garsondee/battlepath/internal/plannerstub"
	"github.com/Garsondee/battlepath/internal/render"
)

type options struct {
	plannerURL string
	rows       int
	cols       int
	seed       int64
	cellSize   int
	mode       string
	randomize  bool
	open       bool
	overlay    bool
	out        string
	timeout    time.Duration
}

// report is what one headless run found.
type report struct {
	source  string
	rows    int
	cols    int
	terrain map[model.TerrainKind]int
	mode    string
	threats []model.Threat
	start   model.Cell
	goal    model.Cell
	path    []model.Cell
	total   float64
	riskLo  float64
	riskHi  float64
	sample  *planner.RiskSample
	out     string
}

func main() {
	var o options
	var level string

	flag.StringVar(&o.plannerURL, "planner", "", "planner base URL (empty = in-process stub)")
	flag.IntVar(&o.rows, "rows", 15, "stub map rows")
	flag.IntVar(&o.cols, "cols", 20, "stub map columns")
	flag.Int64Var(&o.seed, "seed", 42, "stub RNG seed")
	flag.IntVar(&o.cellSize, "cell", 24, "cell size in pixels")
	flag.StringVar(&o.mode, "mode", "SAFEST", "planner mode")
	flag.BoolVar(&o.randomize, "randomize", false, "ask the planner for random threats instead of the map's")
	flag.BoolVar(&o.open, "open", false, "stub map is all OPEN terrain")
	flag.BoolVar(&o.overlay, "overlay", true, "draw the risk overlay")
	flag.StringVar(&o.out, "out", "battlepath.png", "PNG output file")
	flag.DurationVar(&o.timeout, "timeout", 10*time.Second, "per-request timeout")
	flag.StringVar(&level, "log-level", "warn", "debug, info, warn, error or none")
	flag.Parse()

	if err := validate(o); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	rep, err := run(context.Background(), o, logx.New(os.Stderr, logx.ParseLevel(level)))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, rep)
}

func validate(o options) error {
	switch {
	case o.cellSize <= 0:
		return fmt.Errorf("-cell must be > 0")
	case o.plannerURL == "" && (o.rows <= 0 || o.cols <= 0):
		return fmt.Errorf("-rows and -cols must be > 0")
	case o.timeout <= 0:
		return fmt.Errorf("-timeout must be > 0")
	case strings.TrimSpace(o.out) == "":
		return fmt.Errorf("-out must name a file")
	}
	return nil
}

// run fetches a map, plans a path and writes the rendered frame to o.out.
func run(ctx context.Context, o options, lg *logx.Logger) (*report, error) {
	base := o.plannerURL
	source := base
	if base == "" {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, fmt.Errorf("listen: %w", err)
		}
		srv := plannerstub.New(plannerstub.Options{
			Rows: o.rows, Cols: o.cols, Enemies: 3, Seed: o.seed, RandomSize: 3, OpenTerrain: o.open,
		})
		go func() {
			if err := srv.Serve(ln); err != nil {
				lg.Warnf("stub: %v", err)
			}
		}()
		defer func() { _ = srv.Shutdown() }()
		base = "http://" + ln.Addr().String() + "/api"
		source = fmt.Sprintf("stub seed=%d", o.seed)
	}
	pc := planner.New(base, o.timeout, lg)

	grid, err := pc.FetchMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch map: %w", err)
	}
	s := model.NewSession(grid, o.mode)
	sc := s.Scenario()
	if o.randomize {
		if sc.Threats, err = pc.Randomize(ctx); err != nil {
			return nil, fmt.Errorf("randomize: %w", err)
		}
	} else {
		sc.Threats = metaThreats(grid.Meta())
	}

	resp, err := pc.ComputePath(ctx, planner.NewPathRequest(sc))
	if err != nil {
		return nil, fmt.Errorf("compute path: %w", err)
	}
	next := sc.Clone()
	if resp.Start != nil {
		next.Start = resp.Start
	}
	if resp.Goal != nil {
		next.Goal = resp.Goal
	}
	next.SetPlanResult(resp.Path, resp.Risk.Field(), float64(resp.Total))
	s.ReplaceScenario(next)

	surf := render.NewRasterSurface()
	render.NewRenderer(1).Render(surf, grid, next, o.overlay, o.cellSize)
	f, err := os.Create(o.out)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	if err := surf.WritePNG(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("write png: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close output: %w", err)
	}

	lo, hi := model.ScaleRisk(next.Risk)
	return &report{
		source:  source,
		rows:    grid.Rows(),
		cols:    grid.Cols(),
		terrain: terrainHistogram(grid),
		mode:    next.Mode,
		threats: next.Threats,
		start:   *next.Start,
		goal:    *next.Goal,
		path:    next.Path,
		total:   next.Total,
		riskLo:  lo,
		riskHi:  hi,
		sample:  resp.RiskSample,
		out:     o.out,
	}, nil
}

// metaThreats reads the scripted threats a map advertises under "enemies".
// Entries that do not decode yield no threats.
func metaThreats(meta map[string]any) []model.Threat {
	raw, ok := meta["enemies"]
	if !ok {
		return []model.Threat{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return []model.Threat{}
	}
	threats := []model.Threat{}
	if err := json.Unmarshal(data, &threats); err != nil {
		return []model.Threat{}
	}
	return threats
}

func terrainHistogram(g *model.Grid) map[model.TerrainKind]int {
	h := map[model.TerrainKind]int{}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			h[g.At(model.Cell{Row: r, Col: c})]++
		}
	}
	return h
}

func printReport(w io.Writer, r *report) {
	fmt.Fprintf(w, "=== Headless Path Report ===\n")
	fmt.Fprintf(w, "source=%s map=%dx%d mode=%s\n\n", r.source, r.rows, r.cols, r.mode)

	fmt.Fprintf(w, "terrain:\n")
	cells := r.rows * r.cols
	for k := model.TerrainOpen; k <= model.TerrainUnknown; k++ {
		n := r.terrain[k]
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-9s %5d (%5.1f%%)\n", k, n, pct(n, cells))
	}

	fmt.Fprintf(w, "\nthreats=%d\n", len(r.threats))
	for _, t := range r.threats {
		fmt.Fprintf(w, "  (%d,%d) range=%g\n", t.Row, t.Col, t.Radius)
	}

	fmt.Fprintf(w, "\nstart=(%d,%d) goal=(%d,%d)\n", r.start.Row, r.start.Col, r.goal.Row, r.goal.Col)
	if len(r.path) == 0 {
		fmt.Fprintf(w, "path: none\n")
	} else {
		fmt.Fprintf(w, "path: cost=%.2f len=%d\n", r.total, len(r.path))
	}
	fmt.Fprintf(w, "risk: min=%.3f max=%.3f\n", r.riskLo, r.riskHi)
	if r.sample != nil {
		fmt.Fprintf(w, "risk at start=%.4f goal=%.4f\n", float64(r.sample.Start), float64(r.sample.Goal))
	}
	fmt.Fprintf(w, "\nwrote %s\n", r.out)
}

func pct(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
